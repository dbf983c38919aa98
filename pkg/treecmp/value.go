package treecmp

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindOther Kind = iota
	KindNull
	KindBoolean
	KindInteger
	KindReal
	KindDecimal
	KindComplex
	KindText
	KindSequence
	KindMapping
)

var kindNames = [...]string{
	KindOther:    "other",
	KindNull:     "null",
	KindBoolean:  "boolean",
	KindInteger:  "integer",
	KindReal:     "real",
	KindDecimal:  "decimal",
	KindComplex:  "complex",
	KindText:     "text",
	KindSequence: "sequence",
	KindMapping:  "mapping",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// IsNumeric reports whether k belongs to the numeric family.
// Booleans are deliberately excluded.
func (k Kind) IsNumeric() bool {
	switch k {
	case KindInteger, KindReal, KindDecimal, KindComplex:
		return true
	default:
		return false
	}
}

// Value is a node of a structure under comparison.
// The zero Value is null.
type Value struct {
	kind  Kind
	b     bool
	i     int64
	f     float64
	d     *big.Float
	c     complex128
	s     string
	seq   []Value
	m     *Mapping
	other any
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBoolean, b: b} }

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInteger, i: i} }

// Real returns a real value.
func Real(f float64) Value { return Value{kind: KindReal, f: f} }

// Decimal returns an arbitrary-precision value. The argument is copied.
func Decimal(d *big.Float) Value {
	if d == nil {
		return Null()
	}
	return Value{kind: KindDecimal, d: new(big.Float).Copy(d)}
}

// Complex returns a complex value.
func Complex(c complex128) Value { return Value{kind: KindComplex, c: c} }

// Text returns a string value.
func Text(s string) Value { return Value{kind: KindText, s: s} }

// Seq returns an ordered sequence of values.
func Seq(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: KindSequence, seq: elems}
}

// Map returns a mapping value. A nil mapping is treated as empty.
func Map(m *Mapping) Value {
	if m == nil {
		m = NewMapping()
	}
	return Value{kind: KindMapping, m: m}
}

// Opaque wraps a Go value that has no dedicated variant.
func Opaque(v any) Value { return Value{kind: KindOther, other: v} }

// Kind returns the variant of v.
func (v Value) Kind() Kind {
	if v.kind == KindOther && v.other == nil {
		return KindNull
	}
	return v.kind
}

// Bool returns the boolean payload, or false for other kinds.
func (v Value) Bool() bool { return v.b }

// Int returns the integer payload, or 0 for other kinds.
func (v Value) Int() int64 { return v.i }

// Float returns the value as float64 for any numeric kind.
// The imaginary part of a complex value is dropped.
func (v Value) Float() float64 {
	switch v.kind {
	case KindInteger:
		return float64(v.i)
	case KindReal:
		return v.f
	case KindDecimal:
		f, _ := v.d.Float64()
		return f
	case KindComplex:
		return real(v.c)
	default:
		return 0
	}
}

// Complex returns the value as complex128 for any numeric kind.
func (v Value) Complex() complex128 {
	if v.kind == KindComplex {
		return v.c
	}
	return complex(v.Float(), 0)
}

// Decimal returns the arbitrary-precision payload, or nil for other kinds.
func (v Value) Decimal() *big.Float {
	if v.kind != KindDecimal {
		return nil
	}
	return new(big.Float).Copy(v.d)
}

// Text returns the string payload, or "" for other kinds.
func (v Value) Text() string { return v.s }

// Elements returns the elements of a sequence.
func (v Value) Elements() []Value { return v.seq }

// Len returns the number of elements or keys of a container, 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.seq)
	case KindMapping:
		return v.m.Len()
	default:
		return 0
	}
}

// Mapping returns the mapping payload, or nil for other kinds.
func (v Value) Mapping() *Mapping { return v.m }

// Interface returns the wrapped Go value of an opaque Value.
func (v Value) Interface() any { return v.other }

// GoType names the Go type the value carries.
func (v Value) GoType() string {
	switch v.Kind() {
	case KindNull:
		return "nil"
	case KindBoolean:
		return "bool"
	case KindInteger:
		return "int64"
	case KindReal:
		return "float64"
	case KindDecimal:
		return "*big.Float"
	case KindComplex:
		return "complex128"
	case KindText:
		return "string"
	case KindSequence:
		return "[]treecmp.Value"
	case KindMapping:
		return "*treecmp.Mapping"
	default:
		return fmt.Sprintf("%T", v.other)
	}
}

// String renders v for mismatch messages.
func (v Value) String() string {
	var sb strings.Builder
	v.write(&sb)
	return sb.String()
}

func (v Value) write(sb *strings.Builder) {
	switch v.Kind() {
	case KindNull:
		sb.WriteString("null")
	case KindBoolean:
		sb.WriteString(strconv.FormatBool(v.b))
	case KindInteger:
		sb.WriteString(strconv.FormatInt(v.i, 10))
	case KindReal:
		sb.WriteString(formatFloat(v.f))
	case KindDecimal:
		sb.WriteString(v.d.Text('g', -1))
	case KindComplex:
		sb.WriteString(formatComplex(v.c))
	case KindText:
		sb.WriteString(strconv.Quote(v.s))
	case KindSequence:
		sb.WriteByte('[')
		for i, e := range v.seq {
			if i > 0 {
				sb.WriteString(", ")
			}
			e.write(sb)
		}
		sb.WriteByte(']')
	case KindMapping:
		sb.WriteByte('{')
		for i, k := range v.m.keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strconv.Quote(k))
			sb.WriteString(": ")
			v.m.values[k].write(sb)
		}
		sb.WriteByte('}')
	default:
		fmt.Fprintf(sb, "%v", v.other)
	}
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !math.IsInf(f, 0) && !math.IsNaN(f) && !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func formatComplex(c complex128) string {
	im := imag(c)
	sign := "+"
	if im < 0 || (im == 0 && math.Signbit(im)) {
		sign = "-"
		im = -im
	}
	return "(" + strconv.FormatFloat(real(c), 'g', -1, 64) + sign + strconv.FormatFloat(im, 'g', -1, 64) + "i)"
}

// Mapping is a string-keyed map that remembers insertion order.
type Mapping struct {
	keys   []string
	values map[string]Value
}

// NewMapping returns an empty mapping. The zero Mapping is also ready to use.
func NewMapping() *Mapping {
	return &Mapping{values: make(map[string]Value)}
}

// Set stores value under key. Overwriting a key keeps its original position.
func (m *Mapping) Set(key string, value Value) *Mapping {
	if m.values == nil {
		m.values = make(map[string]Value)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
	return m
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (Value, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Mapping) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Len returns the number of keys.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// ParseNumber converts a decimal literal into the narrowest numeric Value:
// integers that fit int64 become Integer, other integers become Decimal,
// everything else becomes Real unless it overflows float64, in which case it
// becomes Decimal.
func ParseNumber(s string) (Value, error) {
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Int(i), nil
		}
		return parseDecimal(s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return parseDecimal(s)
		}
		return Value{}, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return Real(f), nil
}

func parseDecimal(s string) (Value, error) {
	d, _, err := big.ParseFloat(s, 10, decimalPrec, big.ToNearestEven)
	if err != nil {
		return Value{}, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return Value{kind: KindDecimal, d: d}, nil
}

// decimalPrec is the mantissa precision, in bits, of decoded decimals.
const decimalPrec = 256

// FromAny converts a Go value into a Value.
//
// Go maps carry no key order, so mappings built from them use sorted keys.
// Values that are already a Value or *Mapping are used as is.
func FromAny(x any) Value {
	switch t := x.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case *Value:
		if t == nil {
			return Null()
		}
		return *t
	case *Mapping:
		return Map(t)
	case bool:
		return Bool(t)
	case int:
		return Int(int64(t))
	case int8:
		return Int(int64(t))
	case int16:
		return Int(int64(t))
	case int32:
		return Int(int64(t))
	case int64:
		return Int(t)
	case uint:
		return fromUint(uint64(t))
	case uint8:
		return Int(int64(t))
	case uint16:
		return Int(int64(t))
	case uint32:
		return Int(int64(t))
	case uint64:
		return fromUint(t)
	case float32:
		return Real(float64(t))
	case float64:
		return Real(t)
	case complex64:
		return Complex(complex128(t))
	case complex128:
		return Complex(t)
	case string:
		return Text(t)
	case json.Number:
		v, err := ParseNumber(string(t))
		if err != nil {
			return Opaque(t)
		}
		return v
	case *big.Int:
		if t == nil {
			return Null()
		}
		if t.IsInt64() {
			return Int(t.Int64())
		}
		return Value{kind: KindDecimal, d: new(big.Float).SetPrec(decimalPrec).SetInt(t)}
	case *big.Float:
		if t == nil {
			return Null()
		}
		return Decimal(t)
	case *big.Rat:
		if t == nil {
			return Null()
		}
		return Value{kind: KindDecimal, d: new(big.Float).SetPrec(decimalPrec).SetRat(t)}
	case []any:
		elems := make([]Value, len(t))
		for i, e := range t {
			elems[i] = FromAny(e)
		}
		return Seq(elems...)
	case []Value:
		return Seq(t...)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := NewMapping()
		for _, k := range keys {
			m.Set(k, FromAny(t[k]))
		}
		return Map(m)
	}
	return fromReflect(reflect.ValueOf(x))
}

func fromUint(u uint64) Value {
	if u <= math.MaxInt64 {
		return Int(int64(u))
	}
	return Value{kind: KindDecimal, d: new(big.Float).SetPrec(decimalPrec).SetUint64(u)}
}

// fromReflect handles named types, typed slices and typed maps.
func fromReflect(rv reflect.Value) Value {
	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fromUint(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return Real(rv.Float())
	case reflect.Complex64, reflect.Complex128:
		return Complex(rv.Complex())
	case reflect.String:
		return Text(rv.String())
	case reflect.Slice, reflect.Array:
		elems := make([]Value, rv.Len())
		for i := range elems {
			elems[i] = FromAny(rv.Index(i).Interface())
		}
		return Seq(elems...)
	case reflect.Map:
		type entry struct {
			key   string
			value reflect.Value
		}
		entries := make([]entry, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			entries = append(entries, entry{key: fmt.Sprint(iter.Key().Interface()), value: iter.Value()})
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
		m := NewMapping()
		for _, e := range entries {
			m.Set(e.key, FromAny(e.value.Interface()))
		}
		return Map(m)
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null()
		}
		return FromAny(rv.Elem().Interface())
	}
	return Opaque(rv.Interface())
}
