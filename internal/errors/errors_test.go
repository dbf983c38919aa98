package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTreecmpError_Error(t *testing.T) {
	cause := errors.New("unexpected EOF")
	tests := []struct {
		name     string
		err      *TreecmpError
		expected string
	}{
		{
			name:     "message only",
			err:      &TreecmpError{Message: "something failed"},
			expected: "something failed",
		},
		{
			name:     "with file",
			err:      &TreecmpError{Message: "cannot load input", File: "a.json"},
			expected: "a.json: cannot load input",
		},
		{
			name:     "with file and cause",
			err:      Input("a.json", cause),
			expected: "a.json: cannot load input: unexpected EOF",
		},
		{
			name:     "usage",
			err:      Usagef("expected %d arguments, got %d", 2, 1),
			expected: "expected 2 arguments, got 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestTreecmpError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(cause, "wrapper")
	assert.Same(t, cause, err.Unwrap())
	assert.ErrorIs(t, err, cause)

	assert.Nil(t, Mismatch("no cause").Unwrap())
}

func TestTreecmpError_ExitCode(t *testing.T) {
	tests := []struct {
		name     string
		kind     ErrorKind
		expected int
	}{
		{"runtime", KindRuntime, ExitMismatch},
		{"mismatch", KindMismatch, ExitMismatch},
		{"config", KindConfig, ExitConfigError},
		{"usage", KindUsage, ExitConfigError},
		{"input", KindInput, ExitInputError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &TreecmpError{Kind: tt.kind}
			assert.Equal(t, tt.expected, err.ExitCode())
		})
	}
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitMismatch, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitMismatch, GetExitCode(Mismatch("inputs differ")))
	assert.Equal(t, ExitConfigError, GetExitCode(Config(errors.New("bad"))))
	assert.Equal(t, ExitInputError, GetExitCode(Input("x.yaml", errors.New("bad"))))

	wrapped := fmt.Errorf("run: %w", Input("x.yaml", errors.New("bad")))
	assert.Equal(t, ExitInputError, GetExitCode(wrapped))
}

func TestWrap(t *testing.T) {
	err := Wrap(errors.New("disk full"), "cannot write report")
	assert.Equal(t, KindRuntime, err.Kind)
	assert.Equal(t, "cannot write report: disk full", err.Error())
}
