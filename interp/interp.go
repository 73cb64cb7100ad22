// package interp provides helpers for interpolating fixed-point values.
package interp

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/pfcm/fixpt/fix"
)

// L does linear interpolation:
//
//	   L(a, b, c) = (1-c)*a + c*b
//		= a - c*a + c*b
//		= a + c*(b-a)
//
// Typically the last form is nice because it eliminates a multiplication,
// but b-a can leave the range of the format when a and b have opposite
// signs, so this uses the second. For c in [0, 1] the subtraction stays in
// range and the final addition follows the format's overflow policy.
func L[S constraints.Integer](a, b, c fix.Value[S]) fix.Value[S] {
	return a.Sub(c.Mul(a)).Add(c.Mul(b))
}

// Table returns n points evenly spaced from a to b inclusive, each computed
// with L. n must be at least 2, and n-1 must fit in S: int8 storage allows
// at most 128 points. Table panics otherwise.
func Table[S constraints.Integer](a, b fix.Value[S], n int) []fix.Value[S] {
	f := a.Fmt()
	if n < 2 || int64(S(n-1)) != int64(n-1) {
		panic(fmt.Sprintf("interp: can't make a table of %d points in %v", n, f))
	}
	out := make([]fix.Value[S], n)
	for i := range out {
		out[i] = L(a, b, f.IntDiv(S(i), S(n-1)))
	}
	return out
}
