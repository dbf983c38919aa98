package treecmp

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogSink(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	LogSink(logger)("a : expected=1 != under_test=2")

	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), `msg="a : expected=1 != under_test=2"`)
}

func TestLogSink_TestLogger(t *testing.T) {
	t.Parallel()
	opts := DefaultOptions()
	opts.FailFast = false
	opts.OnMismatch = LogSink(slogt.New(t))

	ok, err := Equal([]any{1, 2}, []any{1, 3}, opts)
	require.NoError(t, err)
	assert.False(t, ok)
}

// Not parallel: replaces the process-wide default logger.
func TestDefaultSink(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))

	opts := DefaultOptions()
	opts.FailFast = false
	res, err := Compare(map[string]any{"x": "a"}, map[string]any{"x": "b"}, opts)
	require.NoError(t, err)
	assert.False(t, res.Match())

	out := buf.String()
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, `"logger":"treecmp"`)
	assert.Contains(t, out, `x : expected=\"a\" != under_test=\"b\"`)
}

func TestWriterSink(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	sink := WriterSink(&buf)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sink("line")
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 50)
	for _, l := range lines {
		assert.Equal(t, "line", l)
	}
}

func TestCollect(t *testing.T) {
	t.Parallel()
	var lines []string
	sink := Collect(&lines)
	sink("a")
	sink("b")
	assert.Equal(t, []string{"a", "b"}, lines)
}

func TestSink_CalledOncePerMismatch(t *testing.T) {
	t.Parallel()
	var lines []string
	opts := DefaultOptions()
	opts.FailFast = false
	opts.OnMismatch = Collect(&lines)

	res, err := Compare(
		map[string]any{"a": 1, "b": []any{1, 2}, "c": "x", "d": true, "e": map[string]any{"k": 1}},
		map[string]any{"a": 2, "b": []any{1}, "c": 3, "d": false, "e": map[string]any{"j": 1}},
		opts,
	)
	require.NoError(t, err)

	failures := 0
	for _, ok := range res.Outcomes() {
		if !ok {
			failures++
		}
	}
	assert.Len(t, lines, failures+len(res.Incompatibilities()))
	assert.Len(t, lines, 5)
}
