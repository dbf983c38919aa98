// Package decode reads structured files into treecmp values.
//
// JSON, YAML and TOML are supported, each optionally compressed with gzip or
// zstd. Mapping key order is preserved for every format so that ordered-key
// comparisons are meaningful.
package decode

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/AndreyAkinshin/treecmp/pkg/treecmp"
)

// Format names an input encoding.
type Format string

// Supported formats. FormatAuto selects the format from the file name.
const (
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat validates a format name. "auto" and "" both mean FormatAuto.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return FormatAuto, fmt.Errorf("unknown input format %q (must be json, yaml, toml or auto)", s)
	}
}

var compressedSuffixes = []string{".gz", ".zst", ".zstd"}

// DetectFormat selects a format from a file name. Compression suffixes are
// skipped; unknown extensions default to JSON.
func DetectFormat(path string) Format {
	name := strings.ToLower(filepath.Base(path))
	for _, suffix := range compressedSuffixes {
		if strings.HasSuffix(name, suffix) {
			name = strings.TrimSuffix(name, suffix)
			break
		}
	}
	switch filepath.Ext(name) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// File decodes the file at path. FormatAuto selects the format from the
// file name.
func File(path string, format Format) (treecmp.Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return treecmp.Value{}, err
	}
	defer func() { _ = f.Close() }()

	if format == FormatAuto {
		format = DetectFormat(path)
	}
	v, err := Reader(f, format)
	if err != nil {
		return treecmp.Value{}, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// Reader decodes r in the given format, transparently decompressing gzip and
// zstd streams. FormatAuto means JSON.
func Reader(r io.Reader, format Format) (treecmp.Value, error) {
	rc, err := decompress(r)
	if err != nil {
		return treecmp.Value{}, err
	}
	defer func() { _ = rc.Close() }()

	switch format {
	case FormatAuto, FormatJSON:
		return decodeJSON(rc)
	case FormatYAML:
		return decodeYAML(rc)
	case FormatTOML:
		return decodeTOML(rc)
	default:
		return treecmp.Value{}, fmt.Errorf("unsupported format %q", format)
	}
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// decompress sniffs the stream header and unwraps a gzip or zstd stream.
func decompress(r io.Reader) (io.ReadCloser, error) {
	br := bufio.NewReader(r)
	header, _ := br.Peek(len(zstdMagic))

	switch {
	case bytes.HasPrefix(header, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return zr, nil
	case bytes.HasPrefix(header, zstdMagic):
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return zr.IOReadCloser(), nil
	default:
		return io.NopCloser(br), nil
	}
}
