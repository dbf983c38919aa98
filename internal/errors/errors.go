// Package errors provides structured error types and exit codes for treecmp.
package errors

import (
	"errors"
	"fmt"
)

// Exit codes returned by the treecmp CLI.
const (
	ExitSuccess     = 0 // Inputs match
	ExitMismatch    = 1 // Inputs differ, or the run failed
	ExitConfigError = 2 // Invalid config, flags or arguments
	ExitInputError  = 3 // An input file is missing or cannot be decoded
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindMismatch
	KindConfig
	KindUsage
	KindInput
)

// TreecmpError is the base error type for the CLI.
type TreecmpError struct {
	Kind    ErrorKind
	Message string
	File    string // Input file if applicable
	Cause   error  // Underlying error
}

func (e *TreecmpError) Error() string {
	msg := e.Message
	if e.File != "" {
		msg = fmt.Sprintf("%s: %s", e.File, msg)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *TreecmpError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *TreecmpError) ExitCode() int {
	switch e.Kind {
	case KindConfig, KindUsage:
		return ExitConfigError
	case KindInput:
		return ExitInputError
	default:
		return ExitMismatch
	}
}

// Mismatch creates an error reporting that the inputs differ.
func Mismatch(message string) *TreecmpError {
	return &TreecmpError{Kind: KindMismatch, Message: message}
}

// Config wraps a configuration error.
func Config(err error) *TreecmpError {
	return &TreecmpError{Kind: KindConfig, Message: "invalid configuration", Cause: err}
}

// Usagef creates a usage error with formatting.
func Usagef(format string, args ...any) *TreecmpError {
	return &TreecmpError{Kind: KindUsage, Message: fmt.Sprintf(format, args...)}
}

// Input wraps an error reading or decoding an input file.
func Input(file string, err error) *TreecmpError {
	return &TreecmpError{Kind: KindInput, Message: "cannot load input", File: file, Cause: err}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *TreecmpError {
	return &TreecmpError{Kind: KindRuntime, Message: message, Cause: err}
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var te *TreecmpError
	if errors.As(err, &te) {
		return te.ExitCode()
	}
	return ExitMismatch
}
