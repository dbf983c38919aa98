package decode

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/AndreyAkinshin/treecmp/pkg/treecmp"
)

// decodeJSON walks the token stream so that object key order survives.
// Numbers keep their literal precision through json.Number.
func decodeJSON(r io.Reader) (treecmp.Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	v, err := readJSONValue(dec)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return treecmp.Value{}, errors.New("json: empty input")
		}
		return treecmp.Value{}, fmt.Errorf("json: %w", err)
	}

	if tok, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return treecmp.Value{}, fmt.Errorf("json: %w", err)
		}
		return treecmp.Value{}, fmt.Errorf("json: unexpected %v after top-level value", tok)
	}
	return v, nil
}

func readJSONValue(dec *json.Decoder) (treecmp.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return treecmp.Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return readJSONObject(dec)
		case '[':
			return readJSONArray(dec)
		default:
			return treecmp.Value{}, fmt.Errorf("unexpected delimiter %v", t)
		}
	case json.Number:
		return treecmp.ParseNumber(string(t))
	case string:
		return treecmp.Text(t), nil
	case bool:
		return treecmp.Bool(t), nil
	case nil:
		return treecmp.Null(), nil
	default:
		return treecmp.Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}

func readJSONObject(dec *json.Decoder) (treecmp.Value, error) {
	m := treecmp.NewMapping()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return treecmp.Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return treecmp.Value{}, fmt.Errorf("unexpected object key %v", tok)
		}
		v, err := readJSONValue(dec)
		if err != nil {
			return treecmp.Value{}, err
		}
		m.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return treecmp.Value{}, err
	}
	return treecmp.Map(m), nil
}

func readJSONArray(dec *json.Decoder) (treecmp.Value, error) {
	elems := []treecmp.Value{}
	for dec.More() {
		v, err := readJSONValue(dec)
		if err != nil {
			return treecmp.Value{}, err
		}
		elems = append(elems, v)
	}
	if _, err := dec.Token(); err != nil {
		return treecmp.Value{}, err
	}
	return treecmp.Seq(elems...), nil
}
