package config

import (
	"github.com/spf13/viper"

	"github.com/AndreyAkinshin/treecmp/pkg/treecmp"
)

// Setting keys, as used in config files. Environment variables use the
// upper-cased key with the TREECMP_ prefix; flags use dashes.
const (
	KeyRelTol      = "rel_tol"
	KeyAbsTol      = "abs_tol"
	KeyOrderedKeys = "ordered_keys"
	KeyFailFast    = "fail_fast"
	KeyNaNEqual    = "nan_equal"
	KeyDescription = "description"
	KeyFormat      = "format"
	KeyInputFormat = "input_format"
	KeyTop         = "top"
	KeyLogLevel    = "log_level"
	KeyLogFormat   = "log_format"
)

// Default configuration values.
const (
	DefaultRelTol      = treecmp.DefaultRelTol
	DefaultAbsTol      = 0.0
	DefaultFailFast    = false
	DefaultFormat      = "text"
	DefaultInputFormat = "auto"
	DefaultTop         = 10
	DefaultLogLevel    = "warn"
	DefaultLogFormat   = "text"

	EnvPrefix  = "TREECMP"
	ConfigName = ".treecmp"
)

// Keys lists every setting key.
var Keys = []string{
	KeyRelTol,
	KeyAbsTol,
	KeyOrderedKeys,
	KeyFailFast,
	KeyNaNEqual,
	KeyDescription,
	KeyFormat,
	KeyInputFormat,
	KeyTop,
	KeyLogLevel,
	KeyLogFormat,
}

// applyDefaults registers default values for every setting.
func applyDefaults(v *viper.Viper) {
	v.SetDefault(KeyRelTol, DefaultRelTol)
	v.SetDefault(KeyAbsTol, DefaultAbsTol)
	v.SetDefault(KeyOrderedKeys, false)
	v.SetDefault(KeyFailFast, DefaultFailFast)
	v.SetDefault(KeyNaNEqual, false)
	v.SetDefault(KeyDescription, "")
	v.SetDefault(KeyFormat, DefaultFormat)
	v.SetDefault(KeyInputFormat, DefaultInputFormat)
	v.SetDefault(KeyTop, DefaultTop)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFormat, DefaultLogFormat)
}
