package treecmp

import (
	"fmt"
	"math"
)

// DefaultRelTol matches the relative tolerance of a plain closeness check.
const DefaultRelTol = 1e-9

// Options configures a comparison.
//
// The zero value compares numbers exactly, ignores key order, reports through
// the default logger and keeps going after a mismatch. Use DefaultOptions for
// the usual starting point.
type Options struct {
	// Description is prefixed onto every reported path.
	Description []string

	// RelTol is the relative tolerance for numeric leaves.
	RelTol float64

	// AbsTol is the absolute tolerance for numeric leaves.
	AbsTol float64

	// OnMismatch receives one formatted line per mismatch.
	// When nil, DefaultSink is resolved at the start of each comparison.
	OnMismatch Sink

	// ExpectOrderedKeys requires mappings to list their keys in the same order.
	ExpectOrderedKeys bool

	// FailFast stops the whole comparison at the first mismatch and returns
	// a *NotComparableError or *MiscompareError.
	FailFast bool

	// NaNEqual treats two NaN numbers as close.
	NaNEqual bool
}

// DefaultOptions returns the default comparison options.
func DefaultOptions() Options {
	return Options{
		RelTol:   DefaultRelTol,
		AbsTol:   0,
		FailFast: true,
	}
}

// ValidateOptions validates that tolerances are usable.
// Returns nil if valid, or an error wrapping ErrInvalidOptions.
func ValidateOptions(opts Options) error {
	if math.IsNaN(opts.RelTol) || opts.RelTol < 0 {
		return fmt.Errorf("%w: RelTol must be a non-negative number, got %v", ErrInvalidOptions, opts.RelTol)
	}
	if math.IsNaN(opts.AbsTol) || opts.AbsTol < 0 {
		return fmt.Errorf("%w: AbsTol must be a non-negative number, got %v", ErrInvalidOptions, opts.AbsTol)
	}
	return nil
}
