package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, warnings, err := Load(LoadOptions{Dir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.InDelta(t, DefaultRelTol, cfg.RelTol, 0)
	assert.Zero(t, cfg.AbsTol)
	assert.False(t, cfg.OrderedKeys)
	assert.False(t, cfg.FailFast)
	assert.Equal(t, DefaultFormat, cfg.Format)
	assert.Equal(t, DefaultInputFormat, cfg.InputFormat)
	assert.Equal(t, DefaultTop, cfg.Top)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Empty(t, cfg.File)
}

func TestLoad_DiscoversConfigFile(t *testing.T) {
	tests := map[string]string{
		".treecmp.yaml": "rel_tol: 0.01\nordered_keys: true\ntop: 3\n",
		".treecmp.json": `{"rel_tol": 0.01, "ordered_keys": true, "top": 3}`,
		".treecmp.toml": "rel_tol = 0.01\nordered_keys = true\ntop = 3\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeConfig(t, dir, name, content)

			cfg, _, err := Load(LoadOptions{Dir: dir})
			require.NoError(t, err)
			assert.InDelta(t, 0.01, cfg.RelTol, 1e-15)
			assert.True(t, cfg.OrderedKeys)
			assert.Equal(t, 3, cfg.Top)
			assert.Equal(t, path, cfg.File)
		})
	}
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "strict.yaml", "abs_tol: 0.5\nfail_fast: true\ndescription: nightly\n")

	cfg, _, err := Load(LoadOptions{ConfigFile: path})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, cfg.AbsTol, 0)
	assert.True(t, cfg.FailFast)
	assert.Equal(t, "nightly", cfg.Description)
}

func TestLoad_ExplicitConfigFileMissing(t *testing.T) {
	_, _, err := Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestLoad_SchemaViolations(t *testing.T) {
	tests := map[string]string{
		"negative tolerance": `{"rel_tol": -1}`,
		"unknown key":        `{"tolerance": 0.1}`,
		"wrong type":         `{"fail_fast": "sometimes"}`,
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, ".treecmp.json", content)
			_, _, err := Load(LoadOptions{Dir: dir})
			assert.ErrorContains(t, err, "config validation failed")
		})
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".treecmp.yaml", "rel_tol: 0.01\nformat: text\n")
	t.Setenv("TREECMP_REL_TOL", "0.2")
	t.Setenv("TREECMP_FORMAT", "json")

	cfg, _, err := Load(LoadOptions{Dir: dir})
	require.NoError(t, err)
	assert.InDelta(t, 0.2, cfg.RelTol, 1e-15)
	assert.Equal(t, "json", cfg.Format)
}

func TestLoad_FlagsOverrideEverything(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".treecmp.yaml", "rel_tol: 0.01\nabs_tol: 0.5\n")
	t.Setenv("TREECMP_REL_TOL", "0.2")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Float64(FlagName(KeyRelTol), DefaultRelTol, "")
	flags.Float64(FlagName(KeyAbsTol), DefaultAbsTol, "")
	require.NoError(t, flags.Parse([]string{"--rel-tol=0.25"}))

	cfg, _, err := Load(LoadOptions{Dir: dir, Flags: flags})
	require.NoError(t, err)
	assert.InDelta(t, 0.25, cfg.RelTol, 1e-15)
	assert.InDelta(t, 0.5, cfg.AbsTol, 0, "unchanged flags must not shadow the config file")
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("TREECMP_FORMAT", "xml")
	_, _, err := Load(LoadOptions{Dir: t.TempDir()})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, KeyFormat, verr.Field)
}

func TestValidate(t *testing.T) {
	t.Parallel()
	valid := func() *Config {
		return &Config{
			RelTol:      DefaultRelTol,
			Format:      DefaultFormat,
			InputFormat: DefaultInputFormat,
			Top:         DefaultTop,
			LogLevel:    DefaultLogLevel,
			LogFormat:   DefaultLogFormat,
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"valid", func(*Config) {}, ""},
		{"negative rel_tol", func(c *Config) { c.RelTol = -0.1 }, KeyRelTol},
		{"NaN abs_tol", func(c *Config) { c.AbsTol = math.NaN() }, KeyAbsTol},
		{"bad format", func(c *Config) { c.Format = "html" }, KeyFormat},
		{"bad input format", func(c *Config) { c.InputFormat = "csv" }, KeyInputFormat},
		{"negative top", func(c *Config) { c.Top = -1 }, KeyTop},
		{"bad log level", func(c *Config) { c.LogLevel = "chatty" }, KeyLogLevel},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, KeyLogFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := valid()
			tt.mutate(cfg)
			_, err := Validate(cfg)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestValidate_Warnings(t *testing.T) {
	t.Parallel()
	cfg := &Config{RelTol: 2, Format: "text", LogLevel: "info"}
	warnings, err := Validate(cfg)
	require.NoError(t, err)
	assert.Len(t, warnings, 1)

	cfg.RelTol = 0
	warnings, err = Validate(cfg)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "exactly")
}

func TestConfig_Options(t *testing.T) {
	t.Parallel()
	cfg := &Config{
		RelTol:      0.01,
		AbsTol:      0.001,
		OrderedKeys: true,
		FailFast:    true,
		NaNEqual:    true,
		Description: "run.1",
	}
	var lines []string
	opts := cfg.Options(func(msg string) { lines = append(lines, msg) })

	assert.InDelta(t, 0.01, opts.RelTol, 0)
	assert.InDelta(t, 0.001, opts.AbsTol, 0)
	assert.True(t, opts.ExpectOrderedKeys)
	assert.True(t, opts.FailFast)
	assert.True(t, opts.NaNEqual)
	assert.Equal(t, []string{"run.1"}, opts.Description)

	opts.OnMismatch("x")
	assert.Equal(t, []string{"x"}, lines)

	assert.Nil(t, (&Config{}).Options(nil).Description)
}
