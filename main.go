package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nconklindev/tabi/internal/config"
	"github.com/nconklindev/tabi/internal/converter"
	"github.com/nconklindev/tabi/internal/ui"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usageLine = "Usage: tabi path/to/itinerary.xlsx [out.html]"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgFile string
		verbose bool
		pick    bool
		v       *viper.Viper
	)

	rootCmd := &cobra.Command{
		Use:   "tabi <input.xlsx> [out.html]",
		Short: "Turn a day's itinerary spreadsheet into a styled HTML page",
		Long: `tabi reads the active sheet of a workbook (or a CSV file) and writes a
self-contained HTML page listing the day's plan in three columns: time,
activity and note. The first row is used as the header when it has at
least two non-empty cells.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cmd.ErrOrStderr(), verbose)

			var used string
			var err error
			v, used, err = config.New(cfgFile)
			if err != nil {
				return err
			}
			if used != "" {
				log.WithField("file", used).Debug("using config file")
			}
			return bindFlags(cmd, v)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.OutOrStdout(), v, args, pick)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./tabi.yaml or ~/.config/tabi/tabi.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")
	rootCmd.Flags().BoolVar(&pick, "pick", false, "Choose the input spreadsheet interactively")
	rootCmd.Flags().String("escape", "", "How cell text is embedded: escape, sanitize, or raw")
	rootCmd.Flags().String("sheet", "", "Sheet to read (default: the active sheet)")
	rootCmd.Flags().Bool("raw-values", false, "Read cell values without number formatting")

	rootCmd.AddCommand(newVersionCmd(), newConfigCmd(&v))

	return rootCmd
}

// bindFlags lets flags that were set on the command line override the config.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	for key, name := range map[string]string{
		"escape":     "escape",
		"sheet":      "sheet",
		"raw_values": "raw-values",
	} {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return err
		}
	}
	return nil
}

func setupLogging(w io.Writer, verbose bool) {
	log.SetOutput(w)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
	if verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

func run(out io.Writer, v *viper.Viper, args []string, pick bool) error {
	if err := converter.CheckCapabilities(); err != nil {
		fmt.Fprintln(out, ui.Failure("spreadsheet support is unavailable; reinstall tabi built with github.com/xuri/excelize/v2"))
		return err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	if pick {
		var output string
		if len(args) > 0 {
			output = args[0]
		}
		result, err := ui.Run(cfg.Options("", output))
		if err != nil || result == nil {
			return err
		}
		fmt.Fprintln(out, ui.Success(result.OutputFile))
		return nil
	}

	if len(args) == 0 {
		fmt.Fprintln(out, usageLine)
		return nil
	}

	var output string
	if len(args) > 1 {
		output = args[1]
	}

	result, err := converter.Convert(cfg.Options(args[0], output), nil)
	if errors.Is(err, converter.ErrInputNotFound) {
		fmt.Fprintln(out, ui.Failure("file not found "+args[0]))
		return nil
	}
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"rows":   result.RowsRendered,
		"header": result.HeaderDetected,
	}).Debug("conversion finished")
	fmt.Fprintln(out, ui.Success(result.OutputFile))
	return nil
}
