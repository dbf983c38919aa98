package treecmp

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/AndreyAkinshin/treecmp/internal/version"
)

// Sink receives one formatted line per mismatch.
type Sink func(msg string)

// LogSink reports mismatches at error level on logger.
func LogSink(logger *slog.Logger) Sink {
	return func(msg string) {
		logger.Error(msg)
	}
}

// DefaultSink logs through slog.Default, tagged with the application name.
// It is resolved when called, so later slog.SetDefault calls take effect.
func DefaultSink() Sink {
	return LogSink(slog.Default().With(slog.String("logger", version.Name())))
}

// WriterSink writes one line per mismatch to w. Safe for concurrent use.
func WriterSink(w io.Writer) Sink {
	var mu sync.Mutex
	return func(msg string) {
		mu.Lock()
		defer mu.Unlock()
		_, _ = fmt.Fprintln(w, msg)
	}
}

// Collect appends every mismatch line to dst. Not safe for concurrent use.
func Collect(dst *[]string) Sink {
	return func(msg string) {
		*dst = append(*dst, msg)
	}
}
