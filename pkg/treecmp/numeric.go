package treecmp

import (
	"math"
	"math/cmplx"
)

// IsClose reports whether a and b are within tolerance of each other:
//
//	|a-b| <= max(relTol*max(|a|,|b|), absTol)
//
// Magnitudes are complex moduli, so real numbers are the special case of a
// zero imaginary part. An infinity is only close to an identical infinity.
// NaN is never close to anything unless nanEqual is set and both are NaN.
func IsClose(a, b complex128, relTol, absTol float64, nanEqual bool) bool {
	if a == b {
		return true
	}
	if cmplx.IsInf(a) || cmplx.IsInf(b) {
		return false
	}
	if cmplx.IsNaN(a) || cmplx.IsNaN(b) {
		return nanEqual && cmplx.IsNaN(a) && cmplx.IsNaN(b)
	}
	diff := cmplx.Abs(a - b)
	return diff <= relTol*cmplx.Abs(b) ||
		diff <= relTol*cmplx.Abs(a) ||
		diff <= absTol
}

// RelativeDifference returns min(|a-b|/|a|, |a-b|/|b|).
// A zero magnitude on either side yields NaN.
func RelativeDifference(a, b complex128) float64 {
	absA, absB := cmplx.Abs(a), cmplx.Abs(b)
	if absA == 0 || absB == 0 {
		return math.NaN()
	}
	diff := cmplx.Abs(a - b)
	return math.Min(diff/absA, diff/absB)
}
