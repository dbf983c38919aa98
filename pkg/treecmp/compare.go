// Package treecmp compares two nested structures of mappings, sequences and
// scalar leaves, and reports a pass/fail outcome for every leaf.
//
// Numbers of any kind (integer, real, decimal, complex) are compared with a
// relative/absolute tolerance; everything else is compared for equality.
// Unlike a plain deep-equality check, a comparison keeps going after a
// mismatch (unless FailFast is set) so that a caller gets the full picture:
// every leaf outcome, a pass rate and the numeric miscompares ordered by
// relative error.
//
// Example usage in a Go test:
//
//	func TestSimulation(t *testing.T) {
//	    opts := treecmp.DefaultOptions()
//	    opts.RelTol = 1e-6
//	    opts.FailFast = false
//	    opts.OnMismatch = func(msg string) { t.Log(msg) }
//
//	    res, err := treecmp.Compare(expected, runSimulation(), opts)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    if !res.Match() {
//	        rate, _ := res.PassRate()
//	        t.Errorf("pass rate %.2f", rate)
//	    }
//	}
package treecmp

import (
	"fmt"
	"reflect"
	"strings"

	"facette.io/natsort"
)

// Comparator owns the state of one comparison run.
//
// Repeated calls to Compare accumulate into the same result. The accumulated
// state stays available after a fail-fast abort.
type Comparator struct {
	opts   Options
	result *Result
}

// New returns a Comparator configured with opts.
func New(opts Options) *Comparator {
	opts.Description = append([]string(nil), opts.Description...)
	return &Comparator{opts: opts, result: newResult()}
}

// Compare walks expected and underTest in lockstep. Both may be a Value or
// any Go value accepted by FromAny.
//
// Returns an error wrapping ErrInvalidOptions for unusable options. With
// FailFast set, the first mismatch is returned as a *NotComparableError or
// *MiscompareError; otherwise mismatches only reach the sink and Compare
// returns nil.
func (c *Comparator) Compare(expected, underTest any) error {
	if err := ValidateOptions(c.opts); err != nil {
		return err
	}
	sink := c.opts.OnMismatch
	if sink == nil {
		sink = DefaultSink()
	}
	w := &walker{opts: c.opts, sink: sink, res: c.result}
	return w.compareValues(FromAny(expected), FromAny(underTest), Path(c.opts.Description))
}

// Match reports whether everything compared so far matched.
func (c *Comparator) Match() bool { return c.result.Match() }

// Outcomes returns the leaf outcomes in traversal order.
func (c *Comparator) Outcomes() []bool { return c.result.Outcomes() }

// PassRate returns the fraction of passed leaf comparisons.
func (c *Comparator) PassRate() (float64, error) { return c.result.PassRate() }

// Miscompares returns numeric miscompares, largest relative error first.
func (c *Comparator) Miscompares() []Miscompare { return c.result.Miscompares() }

// Incompatibilities returns the type incompatibilities found so far.
func (c *Comparator) Incompatibilities() []Incompatibility { return c.result.Incompatibilities() }

// Result returns a snapshot of the accumulated result.
func (c *Comparator) Result() *Result { return c.result.clone() }

// Compare runs a single comparison and returns its result.
// The result is non-nil even when a fail-fast error is returned, so the
// outcomes gathered before the abort remain available.
func Compare(expected, underTest any, opts Options) (*Result, error) {
	c := New(opts)
	err := c.Compare(expected, underTest)
	return c.result, err
}

// Equal reports whether expected matches underTest.
func Equal(expected, underTest any, opts Options) (bool, error) {
	res, err := Compare(expected, underTest, opts)
	if err != nil {
		return false, err
	}
	return res.Match(), nil
}

// Comparable reports whether two values can be compared: identical kinds, or
// two members of the numeric family. Opaque values also need identical Go
// types.
func Comparable(a, b Value) bool {
	ka, kb := a.Kind(), b.Kind()
	if ka == kb {
		if ka == KindOther {
			return reflect.TypeOf(a.other) == reflect.TypeOf(b.other)
		}
		return true
	}
	return ka.IsNumeric() && kb.IsNumeric()
}

type walker struct {
	opts Options
	sink Sink
	res  *Result
}

func (w *walker) compareValues(expected, underTest Value, path Path) error {
	if !Comparable(expected, underTest) {
		return w.notComparable(expected, underTest, path)
	}

	switch kind := expected.Kind(); {
	case kind == KindMapping:
		return w.compareMappings(expected, underTest, path)
	case kind == KindSequence:
		return w.compareSequences(expected, underTest, path)
	case kind.IsNumeric():
		return w.compareNumbers(expected, underTest, path)
	default:
		return w.compareScalars(expected, underTest, path)
	}
}

func (w *walker) compareMappings(expected, underTest Value, path Path) error {
	expKeys := expected.m.Keys()
	actKeys := underTest.m.Keys()

	if !keysMatch(expected.m, underTest.m, w.opts.ExpectOrderedKeys) {
		msg := fmt.Sprintf("%s : keys %s != %s", path, formatKeys(expKeys), formatKeys(actKeys))
		missing, unexpected := keyDifference(expected.m, underTest.m)
		if len(missing) > 0 || len(unexpected) > 0 {
			msg += fmt.Sprintf(" (missing: %s, unexpected: %s)", formatKeys(missing), formatKeys(unexpected))
		}
		return w.fail(expected, underTest, path, "key mismatch", msg)
	}

	for _, key := range expKeys {
		expVal, _ := expected.m.Get(key)
		actVal, _ := underTest.m.Get(key)
		if err := w.compareValues(expVal, actVal, path.With(key)); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) compareSequences(expected, underTest Value, path Path) error {
	if len(expected.seq) != len(underTest.seq) {
		msg := fmt.Sprintf("%s : can not compare sequences of different lengths : len(expected)=%d,len(under_test)=%d",
			path, len(expected.seq), len(underTest.seq))
		return w.fail(expected, underTest, path, "length mismatch", msg)
	}

	for i := range expected.seq {
		if err := w.compareValues(expected.seq[i], underTest.seq[i], path.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) compareNumbers(expected, underTest Value, path Path) error {
	a, b := expected.Complex(), underTest.Complex()
	if IsClose(a, b, w.opts.RelTol, w.opts.AbsTol, w.opts.NaNEqual) {
		w.res.record(true)
		return nil
	}
	msg := leafMessage(expected, underTest, path)
	w.res.addMiscompare(RelativeDifference(a, b), msg)
	return w.fail(expected, underTest, path, "values differ", msg)
}

func (w *walker) compareScalars(expected, underTest Value, path Path) error {
	equal, err := scalarsEqual(expected, underTest)
	if err != nil {
		// An unsupported equality is a failed leaf, but never aborts the run.
		w.res.record(false)
		w.sink(fmt.Sprintf("%s : %s,%s not supported (%v)", path, expected.GoType(), underTest.GoType(), err))
		return nil
	}
	if equal {
		w.res.record(true)
		return nil
	}
	return w.fail(expected, underTest, path, "values differ", leafMessage(expected, underTest, path))
}

func (w *walker) fail(expected, underTest Value, path Path, reason, msg string) error {
	w.res.record(false)
	w.sink(msg)
	if w.opts.FailFast {
		return &MiscompareError{Path: path, Expected: expected, UnderTest: underTest, Reason: reason}
	}
	return nil
}

func (w *walker) notComparable(expected, underTest Value, path Path) error {
	msg := fmt.Sprintf("%s : cannot compare %s (%s) with %s (%s)",
		path, expected.Kind(), expected.GoType(), underTest.Kind(), underTest.GoType())
	w.res.incompatibilities = append(w.res.incompatibilities, Incompatibility{
		Path:      path.String(),
		Expected:  expected.Kind(),
		UnderTest: underTest.Kind(),
		Message:   msg,
	})
	w.sink(msg)
	if w.opts.FailFast {
		return &NotComparableError{
			Path:          path,
			Expected:      expected.Kind(),
			UnderTest:     underTest.Kind(),
			ExpectedType:  expected.GoType(),
			UnderTestType: underTest.GoType(),
		}
	}
	return nil
}

func leafMessage(expected, underTest Value, path Path) string {
	return fmt.Sprintf("%s : expected=%s != under_test=%s", path, expected, underTest)
}

// scalarsEqual compares two leaves of the same kind. Opaque values use Go
// equality; an error is returned when their type does not support it.
func scalarsEqual(a, b Value) (equal bool, err error) {
	switch a.Kind() {
	case KindNull:
		return true, nil
	case KindBoolean:
		return a.b == b.b, nil
	case KindText:
		return a.s == b.s, nil
	}

	t := reflect.TypeOf(a.other)
	if !t.Comparable() {
		return false, fmt.Errorf("type %s does not support equality", t)
	}
	defer func() {
		// Interface fields holding uncomparable values panic at run time.
		if r := recover(); r != nil {
			equal, err = false, fmt.Errorf("%v", r)
		}
	}()
	return a.other == b.other, nil
}

func keysMatch(expected, underTest *Mapping, ordered bool) bool {
	if expected.Len() != underTest.Len() {
		return false
	}
	if ordered {
		for i, k := range expected.keys {
			if underTest.keys[i] != k {
				return false
			}
		}
		return true
	}
	for _, k := range expected.keys {
		if !underTest.Has(k) {
			return false
		}
	}
	return true
}

// keyDifference returns the keys missing from underTest and the keys
// underTest has in excess, both in natural order.
func keyDifference(expected, underTest *Mapping) (missing, unexpected []string) {
	for _, k := range expected.keys {
		if !underTest.Has(k) {
			missing = append(missing, k)
		}
	}
	for _, k := range underTest.keys {
		if !expected.Has(k) {
			unexpected = append(unexpected, k)
		}
	}
	natsort.Sort(missing)
	natsort.Sort(unexpected)
	return missing, unexpected
}

func formatKeys(keys []string) string {
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = fmt.Sprintf("%q", k)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
