package decode

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/AndreyAkinshin/treecmp/pkg/treecmp"
)

// decodeTOML decodes into a Go map and restores table key order from the
// decoder metadata, which lists keys in document order.
func decodeTOML(r io.Reader) (treecmp.Value, error) {
	var data map[string]any
	md, err := toml.NewDecoder(r).Decode(&data)
	if err != nil {
		return treecmp.Value{}, fmt.Errorf("toml: %w", err)
	}
	return convertTOML(data, "", tomlKeyOrder(md.Keys())), nil
}

const tomlKeySep = "\x00"

// tomlKeyOrder maps each table path to its child keys in document order.
// Array-of-tables elements share the path of the array.
func tomlKeyOrder(keys []toml.Key) map[string][]string {
	order := make(map[string][]string)
	seen := make(map[string]bool)
	for _, key := range keys {
		if len(key) == 0 {
			continue
		}
		parent := strings.Join(key[:len(key)-1], tomlKeySep)
		full := strings.Join(key, tomlKeySep)
		if seen[full] {
			continue
		}
		seen[full] = true
		order[parent] = append(order[parent], key[len(key)-1])
	}
	return order
}

func convertTOML(v any, path string, order map[string][]string) treecmp.Value {
	switch t := v.(type) {
	case map[string]any:
		m := treecmp.NewMapping()
		for _, k := range orderedKeys(t, order[path]) {
			m.Set(k, convertTOML(t[k], childPath(path, k), order))
		}
		return treecmp.Map(m)
	case []map[string]any:
		elems := make([]treecmp.Value, len(t))
		for i, e := range t {
			elems[i] = convertTOML(e, path, order)
		}
		return treecmp.Seq(elems...)
	case []any:
		elems := make([]treecmp.Value, len(t))
		for i, e := range t {
			elems[i] = convertTOML(e, path, order)
		}
		return treecmp.Seq(elems...)
	case time.Time:
		return treecmp.Text(t.Format(time.RFC3339Nano))
	default:
		return treecmp.FromAny(t)
	}
}

func childPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + tomlKeySep + key
}

// orderedKeys lists the keys of m in document order. Keys the metadata does
// not know about follow in sorted order.
func orderedKeys(m map[string]any, known []string) []string {
	keys := make([]string, 0, len(m))
	used := make(map[string]bool, len(m))
	for _, k := range known {
		if _, ok := m[k]; ok && !used[k] {
			keys = append(keys, k)
			used[k] = true
		}
	}
	var rest []string
	for k := range m {
		if !used[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}
