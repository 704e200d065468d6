package main

import (
	"github.com/nconklindev/tabi/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newConfigCmd(v **viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Long: `Print the settings tabi would use, after merging the defaults, the config
file and TABI_* environment variables. The output is a valid tabi.yaml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*v)
			if err != nil {
				return err
			}
			out, err := cfg.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
