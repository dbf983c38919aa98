// Package testhelper loads golden test cases and asserts that Go values match
// them within tolerance.
//
// A case file is a JSON, YAML or TOML mapping with an "output" entry (the
// expected value) and optional "input", "description", "skip" and "tags"
// entries. Cases of one suite live in <root>/<suite>/.
//
// Example usage in a Go test:
//
//	func TestSimulation(t *testing.T) {
//	    cases, err := testhelper.LoadSuite("testdata", "simulation")
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//
//	    for _, tc := range cases {
//	        t.Run(tc.Name, func(t *testing.T) {
//	            testhelper.AssertMatch(t, tc.Output, simulate(tc.Input), testhelper.Tolerance(1e-6, 0))
//	        })
//	    }
//	}
package testhelper

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AndreyAkinshin/treecmp/internal/decode"
	"github.com/AndreyAkinshin/treecmp/pkg/treecmp"
)

// Case is a single golden test case.
type Case struct {
	// Name is the file name without its extensions.
	Name string

	// Suite is the directory name of the suite.
	Suite string

	// Input is the input data, null when absent.
	Input treecmp.Value

	// Output is the expected value.
	Output treecmp.Value

	Description string
	Skip        bool
	Tags        []string
}

// caseExtensions are the file extensions LoadSuite picks up.
var caseExtensions = []string{".json", ".yaml", ".yml", ".toml", ".json.gz", ".yaml.gz", ".json.zst", ".yaml.zst"}

// LoadCase loads a single case file. The format follows the file extension.
func LoadCase(path string) (*Case, error) {
	v, err := decode.File(path, decode.FormatAuto)
	if err != nil {
		return nil, err
	}
	if v.Kind() != treecmp.KindMapping {
		return nil, fmt.Errorf("%s: case must be a mapping, got %s", path, v.Kind())
	}
	m := v.Mapping()

	output, ok := m.Get("output")
	if !ok {
		return nil, fmt.Errorf("%s: missing \"output\"", path)
	}
	tc := &Case{Name: caseName(path), Output: output}
	tc.Input, _ = m.Get("input")

	if d, ok := m.Get("description"); ok {
		if d.Kind() != treecmp.KindText {
			return nil, fmt.Errorf("%s: \"description\" must be text, got %s", path, d.Kind())
		}
		tc.Description = d.Text()
	}
	if s, ok := m.Get("skip"); ok {
		if s.Kind() != treecmp.KindBoolean {
			return nil, fmt.Errorf("%s: \"skip\" must be a boolean, got %s", path, s.Kind())
		}
		tc.Skip = s.Bool()
	}
	if tags, ok := m.Get("tags"); ok {
		if tags.Kind() != treecmp.KindSequence {
			return nil, fmt.Errorf("%s: \"tags\" must be a sequence, got %s", path, tags.Kind())
		}
		for _, tag := range tags.Elements() {
			tc.Tags = append(tc.Tags, tag.Text())
		}
	}
	return tc, nil
}

// LoadSuite loads every case in <root>/<suite>, sorted by name.
func LoadSuite(root, suite string) ([]Case, error) {
	entries, err := os.ReadDir(filepath.Join(root, suite))
	if err != nil {
		return nil, err
	}

	var cases []Case
	for _, entry := range entries {
		if entry.IsDir() || !isCaseFile(entry.Name()) {
			continue
		}
		tc, err := LoadCase(filepath.Join(root, suite, entry.Name()))
		if err != nil {
			return nil, err
		}
		tc.Suite = suite
		cases = append(cases, *tc)
	}

	sort.Slice(cases, func(i, j int) bool { return cases[i].Name < cases[j].Name })
	return cases, nil
}

// LoadAllSuites loads the cases of every suite under root.
func LoadAllSuites(root string) (map[string][]Case, error) {
	suites, err := ListSuites(root)
	if err != nil {
		return nil, err
	}

	all := make(map[string][]Case)
	for _, suite := range suites {
		cases, err := LoadSuite(root, suite)
		if err != nil {
			return nil, err
		}
		if len(cases) > 0 {
			all[suite] = cases
		}
	}
	return all, nil
}

// ListSuites returns the names of all suite directories under root.
// A missing root has no suites.
func ListSuites(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var suites []string
	for _, entry := range entries {
		if entry.IsDir() {
			suites = append(suites, entry.Name())
		}
	}
	return suites, nil
}

func isCaseFile(name string) bool {
	for _, ext := range caseExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func caseName(path string) string {
	base := filepath.Base(path)
	for _, ext := range caseExtensions {
		if strings.HasSuffix(base, ext) {
			return strings.TrimSuffix(base, ext)
		}
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
