// Package main tests for the treecmp CLI entry point.
package main

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain_BuildVerification verifies the binary builds successfully.
func TestMain_BuildVerification(t *testing.T) {
	t.Parallel()

	cmd := exec.Command("go", "build", "-o", os.DevNull, ".")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build main package: %s", out)
}

// TestMain_HelpFlag verifies the --help flag works correctly.
func TestMain_HelpFlag(t *testing.T) {
	t.Parallel()

	out, err := exec.Command("go", "run", ".", "--help").CombinedOutput()
	require.NoError(t, err, "--help failed: %s", out)
	assert.Contains(t, string(out), "treecmp [flags] <expected> <under-test>")
}

// TestMain_VersionFlag verifies the --version flag works correctly.
func TestMain_VersionFlag(t *testing.T) {
	t.Parallel()

	out, err := exec.Command("go", "run", ".", "--version").CombinedOutput()
	require.NoError(t, err, "--version failed: %s", out)
	assert.NotEmpty(t, out)
}

// TestMain_MismatchExitCode verifies a mismatch surfaces as exit code 1.
func TestMain_MismatchExitCode(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	expected := filepath.Join(dir, "expected.json")
	underTest := filepath.Join(dir, "actual.json")
	require.NoError(t, os.WriteFile(expected, []byte(`{"a": 1}`), 0o644))
	require.NoError(t, os.WriteFile(underTest, []byte(`{"a": 2}`), 0o644))

	bin := filepath.Join(dir, "treecmp")
	build, err := exec.Command("go", "build", "-o", bin, ".").CombinedOutput()
	require.NoError(t, err, "build failed: %s", build)

	out, err := exec.Command(bin, expected, underTest).CombinedOutput()
	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr), "expected a non-zero exit: %s", out)
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.Contains(t, string(out), "a : expected=1 != under_test=2")
}
