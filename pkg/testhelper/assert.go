package testhelper

import (
	"fmt"

	"github.com/AndreyAkinshin/treecmp/pkg/treecmp"
)

// TB is the subset of testing.TB the assertions need.
type TB interface {
	Helper()
	Errorf(format string, args ...any)
	FailNow()
}

// Tolerance returns non-fail-fast options with the given tolerances.
func Tolerance(relTol, absTol float64) treecmp.Options {
	opts := treecmp.DefaultOptions()
	opts.RelTol = relTol
	opts.AbsTol = absTol
	opts.FailFast = false
	return opts
}

// AssertMatch reports every mismatch between expected and actual as a test
// error and returns whether they matched. opts.OnMismatch is replaced.
func AssertMatch(t TB, expected, actual any, opts treecmp.Options) bool {
	t.Helper()

	var lines []string
	opts.OnMismatch = treecmp.Collect(&lines)
	res, err := treecmp.Compare(expected, actual, opts)
	if err != nil && len(lines) == 0 {
		t.Errorf("comparison failed: %v", err)
		return false
	}
	for _, line := range lines {
		t.Errorf("%s", line)
	}
	if res.Match() && err == nil {
		return true
	}
	t.Errorf("%s", summary(res))
	return false
}

// RequireMatch is AssertMatch followed by FailNow on a mismatch.
func RequireMatch(t TB, expected, actual any, opts treecmp.Options) {
	t.Helper()
	if !AssertMatch(t, expected, actual, opts) {
		t.FailNow()
	}
}

// AssertCase checks actual against the expected output of tc.
// Paths in mismatch messages start with the case name.
func AssertCase(t TB, tc Case, actual any, opts treecmp.Options) bool {
	t.Helper()
	opts.Description = []string{tc.Name}
	return AssertMatch(t, tc.Output, actual, opts)
}

func summary(res *treecmp.Result) string {
	rate, err := res.PassRate()
	if err != nil {
		return fmt.Sprintf("mismatch: %d incompatible value(s), no leaves compared", len(res.Incompatibilities()))
	}
	msg := fmt.Sprintf("mismatch: %d of %d leaves passed (%.2f%%)", res.Passed(), res.Total(), rate*100)
	if groups := res.Miscompares(); len(groups) > 0 && len(groups[0].Descriptions) > 0 {
		msg += fmt.Sprintf("; largest relative error %.3g at %s", groups[0].Magnitude, groups[0].Descriptions[0])
	}
	return msg
}
