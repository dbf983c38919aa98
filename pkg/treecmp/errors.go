package treecmp

import (
	"errors"
	"fmt"
)

var (
	// ErrNotComparable is wrapped by every *NotComparableError.
	ErrNotComparable = errors.New("values are not comparable")

	// ErrMiscompare is wrapped by every *MiscompareError.
	ErrMiscompare = errors.New("miscompare")

	// ErrNoOutcomes is returned by PassRate when no leaf was compared.
	ErrNoOutcomes = errors.New("no leaf comparisons were performed")

	// ErrInvalidOptions is wrapped by ValidateOptions errors.
	ErrInvalidOptions = errors.New("invalid options")
)

// NotComparableError reports two values of incompatible types at the same
// position.
type NotComparableError struct {
	Path          Path
	Expected      Kind
	UnderTest     Kind
	ExpectedType  string
	UnderTestType string
}

func (e *NotComparableError) Error() string {
	return fmt.Sprintf("%s: %v: %s (%s) vs %s (%s)",
		e.Path, ErrNotComparable, e.Expected, e.ExpectedType, e.UnderTest, e.UnderTestType)
}

func (e *NotComparableError) Unwrap() error {
	return ErrNotComparable
}

// MiscompareError reports the first failed comparison of a fail-fast run.
// For structural mismatches Expected and UnderTest hold the whole containers.
type MiscompareError struct {
	Path      Path
	Expected  Value
	UnderTest Value
	Reason    string
}

func (e *MiscompareError) Error() string {
	return fmt.Sprintf("%s: %s: expected=%s, under_test=%s", e.Path, e.Reason, e.Expected, e.UnderTest)
}

func (e *MiscompareError) Unwrap() error {
	return ErrMiscompare
}
