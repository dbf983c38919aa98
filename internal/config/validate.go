package config

import (
	"fmt"
	"math"

	"github.com/AndreyAkinshin/treecmp/internal/decode"
	"github.com/AndreyAkinshin/treecmp/internal/logging"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a configuration for errors and returns warnings for
// settings that are legal but probably unintended.
func Validate(cfg *Config) (warnings []string, err error) {
	if err := validateTolerance(KeyRelTol, cfg.RelTol); err != nil {
		return nil, err
	}
	if err := validateTolerance(KeyAbsTol, cfg.AbsTol); err != nil {
		return nil, err
	}
	if err := validateOutput(cfg); err != nil {
		return nil, err
	}
	if err := validateLogging(cfg); err != nil {
		return nil, err
	}

	if cfg.RelTol >= 1 {
		warnings = append(warnings, fmt.Sprintf("%s is %v: any two numbers of the same sign will compare as close", KeyRelTol, cfg.RelTol))
	}
	if cfg.RelTol == 0 && cfg.AbsTol == 0 {
		warnings = append(warnings, fmt.Sprintf("%s and %s are both 0: numbers must match exactly", KeyRelTol, KeyAbsTol))
	}
	return warnings, nil
}

func validateTolerance(field string, tol float64) error {
	if math.IsNaN(tol) || tol < 0 {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be a non-negative number, got %v", tol),
		}
	}
	return nil
}

func validateOutput(cfg *Config) error {
	switch cfg.Format {
	case "text", "json":
	default:
		return &ValidationError{
			Field:   KeyFormat,
			Message: fmt.Sprintf("invalid value %q (must be \"text\" or \"json\")", cfg.Format),
		}
	}
	if _, err := decode.ParseFormat(cfg.InputFormat); err != nil {
		return &ValidationError{Field: KeyInputFormat, Message: err.Error()}
	}
	if cfg.Top < 0 {
		return &ValidationError{
			Field:   KeyTop,
			Message: fmt.Sprintf("must not be negative, got %d", cfg.Top),
		}
	}
	return nil
}

func validateLogging(cfg *Config) error {
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return &ValidationError{Field: KeyLogLevel, Message: err.Error()}
	}
	switch cfg.LogFormat {
	case "", logging.FormatText, logging.FormatJSON:
	default:
		return &ValidationError{
			Field:   KeyLogFormat,
			Message: fmt.Sprintf("invalid value %q (must be %q or %q)", cfg.LogFormat, logging.FormatText, logging.FormatJSON),
		}
	}
	return nil
}
