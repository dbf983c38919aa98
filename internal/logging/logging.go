// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/AndreyAkinshin/treecmp/internal/version"
)

// Format values.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options is used to configure logging.
type Options struct {
	Format string     // "text" (default) or "json"
	Level  slog.Level // minimum level
	Output io.Writer  // defaults to os.Stderr
}

// configMutex serializes changes to the default logger.
var configMutex sync.Mutex

// ParseLevel converts a level name ("debug", "info", "warn", "error") into a
// slog.Level. The empty string means info.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// New builds a logger tagged with the application name.
func New(opts Options) (*slog.Logger, error) {
	handler, err := newHandler(opts)
	if err != nil {
		return nil, err
	}
	return tagged(handler), nil
}

// Configure installs an untagged logger as slog's default and returns the
// tagged one. treecmp.DefaultSink adds the name itself.
func Configure(opts Options) (*slog.Logger, error) {
	handler, err := newHandler(opts)
	if err != nil {
		return nil, err
	}

	configMutex.Lock()
	defer configMutex.Unlock()
	slog.SetDefault(slog.New(handler))

	return tagged(handler), nil
}

func newHandler(opts Options) (slog.Handler, error) {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: opts.Level}

	switch opts.Format {
	case "", FormatText:
		return slog.NewTextHandler(out, handlerOpts), nil
	case FormatJSON:
		return slog.NewJSONHandler(out, handlerOpts), nil
	default:
		return nil, fmt.Errorf("invalid log format %q (must be %q or %q)", opts.Format, FormatText, FormatJSON)
	}
}

func tagged(handler slog.Handler) *slog.Logger {
	return slog.New(handler).With(slog.String("logger", version.Name()))
}
