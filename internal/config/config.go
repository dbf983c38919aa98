// Package config loads treecmp settings from defaults, a config file,
// TREECMP_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/AndreyAkinshin/treecmp/internal/schema"
	"github.com/AndreyAkinshin/treecmp/pkg/treecmp"
)

// Config holds the resolved settings of one run.
type Config struct {
	RelTol      float64 `mapstructure:"rel_tol"`
	AbsTol      float64 `mapstructure:"abs_tol"`
	OrderedKeys bool    `mapstructure:"ordered_keys"`
	FailFast    bool    `mapstructure:"fail_fast"`
	NaNEqual    bool    `mapstructure:"nan_equal"`
	Description string  `mapstructure:"description"`
	Format      string  `mapstructure:"format"`
	InputFormat string  `mapstructure:"input_format"`
	Top         int     `mapstructure:"top"`
	LogLevel    string  `mapstructure:"log_level"`
	LogFormat   string  `mapstructure:"log_format"`

	// File is the config file that was read, empty if none.
	File string `mapstructure:"-"`
}

// LoadOptions controls where settings come from.
type LoadOptions struct {
	// ConfigFile is an explicit config file; it must exist.
	ConfigFile string

	// Dir is searched for .treecmp.{yaml,yml,json,toml} when ConfigFile is
	// empty. Defaults to the working directory.
	Dir string

	// Flags, when set, override every other source for flags the user
	// changed. Flag names are the keys with dashes ("rel-tol").
	Flags *pflag.FlagSet
}

// Load resolves the settings and validates them. Warnings describe settings
// that are legal but probably unintended.
func Load(opts LoadOptions) (*Config, []string, error) {
	v := viper.New()
	applyDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	file, err := readConfigFile(v, opts)
	if err != nil {
		return nil, nil, err
	}

	if opts.Flags != nil {
		if err := bindFlags(v, opts.Flags); err != nil {
			return nil, nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	cfg.File = file

	warnings, err := Validate(&cfg)
	if err != nil {
		return nil, warnings, err
	}
	return &cfg, warnings, nil
}

// readConfigFile merges the config file into v after checking it against the
// schema. Returns the path that was read.
func readConfigFile(v *viper.Viper, opts LoadOptions) (string, error) {
	fv := viper.New()
	if opts.ConfigFile != "" {
		fv.SetConfigFile(opts.ConfigFile)
	} else {
		dir := opts.Dir
		if dir == "" {
			dir = "."
		}
		fv.SetConfigName(ConfigName)
		fv.AddConfigPath(dir)
	}

	if err := fv.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile == "" && errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read config file: %w", err)
	}

	file := fv.ConfigFileUsed()
	if err := schema.ValidateSettings(fv.AllSettings()); err != nil {
		return "", fmt.Errorf("%s: %w", file, err)
	}
	if err := v.MergeConfigMap(fv.AllSettings()); err != nil {
		return "", fmt.Errorf("failed to merge config file: %w", err)
	}
	return file, nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for _, key := range Keys {
		flag := flags.Lookup(FlagName(key))
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", flag.Name, err)
		}
	}
	return nil
}

// FlagName returns the command-line flag name for a setting key.
func FlagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// Options converts the settings into comparison options.
func (c *Config) Options(sink treecmp.Sink) treecmp.Options {
	opts := treecmp.Options{
		RelTol:            c.RelTol,
		AbsTol:            c.AbsTol,
		OnMismatch:        sink,
		ExpectOrderedKeys: c.OrderedKeys,
		FailFast:          c.FailFast,
		NaNEqual:          c.NaNEqual,
	}
	if c.Description != "" {
		opts.Description = []string{c.Description}
	}
	return opts
}
