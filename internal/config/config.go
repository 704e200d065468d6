// Package config loads tabi settings from a YAML file, TABI_* environment
// variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nconklindev/tabi/internal/converter"

	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"
)

const (
	Name      = "tabi"
	EnvPrefix = "TABI"
)

// Config is the effective configuration of a run.
type Config struct {
	Lang          string   `mapstructure:"lang" yaml:"lang"`
	HeadingPrefix string   `mapstructure:"heading_prefix" yaml:"heading_prefix"`
	Caption       string   `mapstructure:"caption" yaml:"caption"`
	Footer        string   `mapstructure:"footer" yaml:"footer"`
	FontFamily    string   `mapstructure:"font_family" yaml:"font_family"`
	FontURL       string   `mapstructure:"font_url" yaml:"font_url"`
	Headers       []string `mapstructure:"headers" yaml:"headers"`

	// OutputName is the file written next to the input when no output path is given.
	OutputName string `mapstructure:"output_name" yaml:"output_name"`

	// Escape is one of escape, sanitize or raw.
	Escape    string `mapstructure:"escape" yaml:"escape"`
	Sheet     string `mapstructure:"sheet" yaml:"sheet,omitempty"`
	RawValues bool   `mapstructure:"raw_values" yaml:"raw_values"`
}

// New returns a viper instance with defaults set and the config file, if any,
// read. cfgFile overrides the search for ./tabi.yaml and ~/.config/tabi/tabi.yaml.
// It returns the path of the file used, or "" when none was found.
func New(cfgFile string) (*viper.Viper, string, error) {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(Name)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", Name))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return v, "", nil
		}
		return nil, "", fmt.Errorf("reading config: %w", err)
	}
	return v, v.ConfigFileUsed(), nil
}

// SetDefaults registers the built-in page settings on v.
func SetDefaults(v *viper.Viper) {
	page := converter.DefaultPage()
	v.SetDefault("lang", page.Lang)
	v.SetDefault("heading_prefix", page.HeadingPrefix)
	v.SetDefault("caption", page.Caption)
	v.SetDefault("footer", page.Footer)
	v.SetDefault("font_family", page.FontFamily)
	v.SetDefault("font_url", page.FontURL)
	v.SetDefault("headers", page.DefaultHeader[:])
	v.SetDefault("output_name", converter.DefaultOutputName)
	v.SetDefault("escape", string(page.Escape))
	v.SetDefault("sheet", "")
	v.SetDefault("raw_values", false)
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if len(c.Headers) != 3 {
		return fmt.Errorf("headers must list exactly 3 titles, got %d", len(c.Headers))
	}
	if _, err := converter.ParseEscapeMode(c.Escape); err != nil {
		return err
	}
	if c.OutputName == "" || c.OutputName != filepath.Base(c.OutputName) {
		return fmt.Errorf("output_name must be a plain file name, got %q", c.OutputName)
	}
	return nil
}

// Page converts the settings into the page description used for rendering.
func (c Config) Page() converter.Page {
	mode, err := converter.ParseEscapeMode(c.Escape)
	if err != nil {
		mode = converter.EscapeHTML
	}

	page := converter.Page{
		Lang:          c.Lang,
		HeadingPrefix: c.HeadingPrefix,
		Caption:       c.Caption,
		Footer:        c.Footer,
		FontFamily:    c.FontFamily,
		FontURL:       c.FontURL,
		Escape:        mode,
	}
	copy(page.DefaultHeader[:], c.Headers)
	return page
}

// Options builds the conversion options for one input and optional output.
func (c Config) Options(inputPath, outputPath string) converter.Options {
	return converter.Options{
		InputPath:  inputPath,
		OutputPath: outputPath,
		OutputName: c.OutputName,
		Read: converter.ReadOptions{
			Sheet:     c.Sheet,
			RawValues: c.RawValues,
		},
		Page: c.Page(),
	}
}

// YAML renders the configuration in the format New reads.
func (c Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return out, nil
}
