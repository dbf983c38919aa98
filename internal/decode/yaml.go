package decode

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AndreyAkinshin/treecmp/pkg/treecmp"
)

// decodeYAML converts a single YAML document through its node tree, which
// keeps mapping order that decoding into a Go map would lose.
func decodeYAML(r io.Reader) (treecmp.Value, error) {
	dec := yaml.NewDecoder(r)

	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return treecmp.Value{}, errors.New("yaml: empty input")
		}
		return treecmp.Value{}, fmt.Errorf("yaml: %w", err)
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return treecmp.Value{}, fmt.Errorf("yaml: %w", err)
		}
		return treecmp.Value{}, errors.New("yaml: multiple documents are not supported")
	}

	c := &yamlConverter{active: make(map[*yaml.Node]bool)}
	v, err := c.convert(&doc)
	if err != nil {
		return treecmp.Value{}, fmt.Errorf("yaml: %w", err)
	}
	return v, nil
}

type yamlConverter struct {
	active map[*yaml.Node]bool // nodes on the current descent, for alias cycles
}

func (c *yamlConverter) convert(n *yaml.Node) (treecmp.Value, error) {
	if c.active[n] {
		return treecmp.Value{}, fmt.Errorf("line %d: recursive alias", n.Line)
	}
	c.active[n] = true
	defer delete(c.active, n)

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return treecmp.Null(), nil
		}
		return c.convert(n.Content[0])
	case yaml.AliasNode:
		return c.convert(n.Alias)
	case yaml.SequenceNode:
		elems := make([]treecmp.Value, len(n.Content))
		for i, child := range n.Content {
			v, err := c.convert(child)
			if err != nil {
				return treecmp.Value{}, err
			}
			elems[i] = v
		}
		return treecmp.Seq(elems...), nil
	case yaml.MappingNode:
		return c.convertMapping(n)
	case yaml.ScalarNode:
		return convertYAMLScalar(n)
	default:
		return treecmp.Value{}, fmt.Errorf("line %d: unsupported node kind %v", n.Line, n.Kind)
	}
}

// convertMapping keeps document order. Keys pulled in through a "<<" merge
// take the position of the merge key and never override explicit keys.
func (c *yamlConverter) convertMapping(n *yaml.Node) (treecmp.Value, error) {
	explicit := make(map[string]bool, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		if key := n.Content[i]; key.ShortTag() != "!!merge" {
			explicit[key.Value] = true
		}
	}

	m := treecmp.NewMapping()
	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valNode := n.Content[i], n.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			return treecmp.Value{}, fmt.Errorf("line %d: mapping keys must be scalars", keyNode.Line)
		}

		v, err := c.convert(valNode)
		if err != nil {
			return treecmp.Value{}, err
		}

		if keyNode.ShortTag() == "!!merge" {
			if err := mergeInto(m, v, explicit, keyNode.Line); err != nil {
				return treecmp.Value{}, err
			}
			continue
		}
		m.Set(keyNode.Value, v)
	}
	return treecmp.Map(m), nil
}

func mergeInto(dst *treecmp.Mapping, src treecmp.Value, explicit map[string]bool, line int) error {
	var sources []treecmp.Value
	switch src.Kind() {
	case treecmp.KindMapping:
		sources = []treecmp.Value{src}
	case treecmp.KindSequence:
		sources = src.Elements()
	default:
		return fmt.Errorf("line %d: merge value must be a mapping or a sequence of mappings", line)
	}

	for _, s := range sources {
		if s.Kind() != treecmp.KindMapping {
			return fmt.Errorf("line %d: merge value must be a mapping or a sequence of mappings", line)
		}
		for _, k := range s.Mapping().Keys() {
			if explicit[k] || dst.Has(k) {
				continue
			}
			v, _ := s.Mapping().Get(k)
			dst.Set(k, v)
		}
	}
	return nil
}

var integerLiteral = regexp.MustCompile(`^[-+]?[0-9][0-9_]*$`)

func convertYAMLScalar(n *yaml.Node) (treecmp.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return treecmp.Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return treecmp.Value{}, err
		}
		return treecmp.Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return treecmp.Int(i), nil
		}
		bi, ok := new(big.Int).SetString(n.Value, 0)
		if !ok {
			return treecmp.Value{}, fmt.Errorf("line %d: invalid integer %q", n.Line, n.Value)
		}
		return treecmp.FromAny(bi), nil
	case "!!float":
		// Integers beyond 64 bits resolve as floats; keep their digits.
		if integerLiteral.MatchString(n.Value) {
			return treecmp.ParseNumber(strings.ReplaceAll(n.Value, "_", ""))
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return treecmp.Value{}, err
		}
		return treecmp.Real(f), nil
	default:
		// !!str, !!timestamp, !!binary and custom tags compare as text.
		return treecmp.Text(n.Value), nil
	}
}
