// package elem provides elementary functions on fixed-point values: roots,
// logarithms, exponentials, powers and acos. Everything is computed in the
// argument's own format with integer arithmetic only, so precision is bounded
// by the format's fractional bits.
//
// Functions that can fail return a fix.Result. The value in a failed result
// is a placeholder (zero, or the format's maximum on overflow).
package elem

import (
	"math"

	"golang.org/x/exp/constraints"

	"github.com/pfcm/fixpt/fix"
	"github.com/pfcm/fixpt/internal/wide"
)

// sqrtIters bounds the Babylonian iteration in Sqrt.
const sqrtIters = 10

// Abs returns |x|. The minimum of a signed format has no positive
// counterpart and is returned unchanged.
func Abs[S constraints.Integer](x fix.Value[S]) fix.Value[S] {
	if x.IsNegative() {
		return x.Neg()
	}
	return x
}

// Sqrt returns the square root of x by Babylonian iteration seeded with x
// itself, stopping early once an iteration changes nothing. Large inputs
// don't always converge within the iteration limit; in s16.16 the worst case
// is a few thousandths off.
//
// x must not be negative.
func Sqrt[S constraints.Integer](x fix.Value[S]) fix.Value[S] {
	if x.IsZero() {
		return x
	}
	f := x.Fmt()
	xn := x
	for i := 0; i < sqrtIters; i++ {
		// (xn + x/xn)/2 on the raw bits, with the carry out of the sum kept
		// so it can't overflow the format.
		a, b := xn.Bits(), x.Div(xn).Bits()
		next := f.FromBits(a>>1 + b>>1 + a&b&1)
		if next.Equal(xn) {
			break
		}
		xn = next
	}
	return xn
}

// Log2 returns the base 2 logarithm of x using Turner's binary logarithm:
// reduce x into [1, 2) counting the shifts, then square repeatedly, each
// time the square reaches 2 another fractional bit of the result is set.
//
// Log2(0) is -inf and the log of a negative number is NaN, both flagged as
// invalid arguments. The result wraps if the format has too few whole bits to
// hold it.
func Log2[S constraints.Integer](x fix.Value[S]) fix.Result[S] {
	f := x.Fmt()
	switch {
	case x.IsZero():
		return fix.Result[S]{Val: f.FromInt(0), Err: fix.Errors{Code: fix.NegativeInfinity, InvalidArgument: true}}
	case x.IsNegative():
		return fix.Result[S]{Val: f.FromInt(0), Err: fix.Errors{Code: fix.NaN, InvalidArgument: true}}
	}
	frac := uint(f.Frac())
	one := uint64(1) << frac
	z, y := x.Bits(), int64(0)
	for z < one {
		z <<= 1
		y -= int64(one)
	}
	for z>>(frac+1) != 0 {
		z >>= 1
		y += int64(one)
	}
	// z is in [1, 2) so z*z fits in 2F+2 bits.
	calc := wide.For(frac + 1)
	for b := one >> 1; b != 0; b >>= 1 {
		z = calc.MulShiftUint(z, z, frac)
		if z == 0 {
			break
		}
		if z>>(frac+1) != 0 {
			z >>= 1
			y += int64(b)
		}
	}
	return fix.Result[S]{Val: f.FromBits(uint64(y))}
}

// Ln returns the natural logarithm of x, with the same errors as Log2.
func Ln[S constraints.Integer](x fix.Value[S]) fix.Result[S] {
	return scaleLog(x, math.Ln2)
}

// Log10 returns the base 10 logarithm of x, with the same errors as Log2.
func Log10[S constraints.Integer](x fix.Value[S]) fix.Result[S] {
	return scaleLog(x, math.Ln2/math.Ln10)
}

func scaleLog[S constraints.Integer](x fix.Value[S], scale float64) fix.Result[S] {
	r := Log2(x)
	if !r.Valid() {
		return r
	}
	return fix.Result[S]{Val: fix.Like(x, scale).Mul(r.Val)}
}

// maxTerms caps the Taylor series in Exp2.
const maxTerms = 64

// Exp2 returns 2^x. The integer part of x becomes a shift and the fractional
// part f goes through the Taylor series of e^(f ln 2), adding terms until they
// vanish at the format's precision. Negative exponents take the reciprocal.
//
// Results too large for the format are flagged as overflow with a positive
// infinity code, and carry the format's maximum. Results too small are
// flagged as underflow once they reach zero. The format must be able to
// represent 1, otherwise every input is an invalid argument.
func Exp2[S constraints.Integer](x fix.Value[S]) fix.Result[S] {
	f := x.Fmt()
	// exponents below this have an integer part 2^i that fits.
	avail := uint64(f.Whole())
	if f.Signed() {
		avail--
	}
	if avail == 0 {
		return fix.Result[S]{Val: f.FromInt(0), Err: fix.Errors{Code: fix.NaN, InvalidArgument: true}}
	}

	neg := x.IsNegative()
	a := Abs(x)
	i := a.Bits() >> uint(f.Frac())

	one := f.FromInt(1)
	t := fix.Like(x, math.Ln2).Mul(a.Fractional())
	term, sum := t, one.Add(t)
	for n := 2; n <= maxTerms && !term.IsZero(); n++ {
		term = fix.DivInt(term.Mul(t), S(n))
		sum = sum.Add(term)
	}

	switch {
	case i < avail && neg:
		return fix.Result[S]{Val: f.FromUint(1 << i).Mul(sum).Recip()}
	case i < avail:
		return fix.Result[S]{Val: f.FromUint(1 << i).Mul(sum)}
	case !neg:
		return fix.Result[S]{Val: f.Max(), Err: fix.Errors{Code: fix.PositiveInfinity, Overflow: true}}
	}
	var bits uint64
	if i < 64 {
		bits = sum.Recip().Bits() >> i
	}
	return fix.Result[S]{Val: f.FromBits(bits), Err: fix.Errors{Underflow: bits == 0}}
}

// Exp returns e^x, computed as 2^(x log2(e)).
func Exp[S constraints.Integer](x fix.Value[S]) fix.Result[S] {
	return Exp2(fix.Like(x, math.Log2E).Mul(x))
}

// Exp10 returns 10^x, computed as 2^(x log2(10)).
func Exp10[S constraints.Integer](x fix.Value[S]) fix.Result[S] {
	return Exp2(fix.Like(x, math.Ln10/math.Ln2).Mul(x))
}

// Pow returns x^y as 2^(y log2(x)). y is converted to x's format first.
// Errors from the logarithm are returned as they are, so x must be positive.
func Pow[S, T constraints.Integer](x fix.Value[S], y fix.Value[T]) fix.Result[S] {
	l := Log2(x)
	if !l.Valid() {
		return l
	}
	return Exp2(fix.Convert(x.Fmt(), y).Mul(l.Val))
}

// coefficients of the acos approximation from the Cg standard library,
// accurate to about 7e-5 in float.
const (
	acosA = -0.0187293
	acosB = 0.0742610
	acosC = -0.2121144
	acosD = 1.5707288
)

// Acos returns the arccosine of x in radians, in [0, pi]. It evaluates a cubic
// in |x| scaled by sqrt(1-|x|) and reflects it for negative x. The format
// needs room for pi; arguments outside [-1, 1] are invalid and give NaN.
func Acos[S constraints.Integer](x fix.Value[S]) fix.Result[S] {
	one := fix.Like(x, 1)
	a := Abs(x)
	if one.Less(a) {
		return fix.Result[S]{Val: x.Fmt().FromInt(0), Err: fix.Errors{Code: fix.NaN, InvalidArgument: true}}
	}
	r := fix.Like(x, acosA).Mul(a).Add(fix.Like(x, acosB))
	r = r.Mul(a).Add(fix.Like(x, acosC))
	r = r.Mul(a).Add(fix.Like(x, acosD))
	r = r.Mul(Sqrt(one.Sub(a)))
	if x.IsNegative() {
		r = fix.Like(x, math.Pi).Sub(r)
	}
	return fix.Result[S]{Val: r}
}
