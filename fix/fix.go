// package fix implements fixed-point numbers with a configurable number of
// whole and fractional bits on top of any Go integer type. A value is its raw
// storage divided by 2^F, where F is the number of fractional bits.
//
// Formats may use fewer bits than their storage type: an s2.2 value lives in
// an int8 with the top four bits always zero. Arithmetic masks every result
// back into the active bits and sign extends only when a signed reading is
// needed, so the raw storage of a value is always canonical.
package fix

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Number is any Go integer or floating point type.
type Number interface {
	constraints.Integer | constraints.Float
}

// Flag modifies how values are constructed.
type Flag uint8

const (
	// NoUnderflow makes a construction that would store exactly zero store
	// the smallest non-zero value with the sign of the input instead. This
	// includes constructing from zero itself.
	NoUnderflow Flag = 1 << iota
)

// Value is a fixed-point number in a Format. Values are immutable; every
// operation returns a new Value in the same format. The zero Value belongs to
// the zero Format (a plain integer).
//
// Values of different formats must not be combined or compared, convert them
// first with Convert.
type Value[S constraints.Integer] struct {
	f   Format[S]
	raw S
}

// FromRaw returns the value whose storage is exactly raw, after masking to
// the active bits.
func (f Format[S]) FromRaw(raw S) Value[S] {
	return f.FromBits(uint64(raw))
}

// FromBits is FromRaw for a bit pattern held in a uint64.
func (f Format[S]) FromBits(u uint64) Value[S] {
	return Value[S]{f: f, raw: S(u & f.mask())}
}

// flagged applies construction flags to the masked storage u.
func (f Format[S]) flagged(u uint64, neg bool, flags []Flag) Value[S] {
	var all Flag
	for _, fl := range flags {
		all |= fl
	}
	u &= f.mask()
	if all&NoUnderflow != 0 && u == 0 {
		u = 1
		if neg {
			u = f.mask()
		}
	}
	return f.FromBits(u)
}

// FromFloat returns v truncated towards zero to the nearest representable
// value. Values outside the range wrap; NaN and infinities give an
// unspecified result.
func (f Format[S]) FromFloat(v float64, flags ...Flag) Value[S] {
	return f.flagged(floatBits(math.Ldexp(v, int(f.frac))), v < 0, flags)
}

// floatBits truncates r to an integer and returns its two's complement bits.
func floatBits(r float64) uint64 {
	if r >= 1<<63 {
		return uint64(r)
	}
	return uint64(int64(r))
}

// FromInt returns the value i. Values outside the range wrap.
func (f Format[S]) FromInt(i int64, flags ...Flag) Value[S] {
	return f.flagged(uint64(i)<<f.frac, i < 0, flags)
}

// FromUint returns the value u. Values outside the range wrap.
func (f Format[S]) FromUint(u uint64, flags ...Flag) Value[S] {
	return f.flagged(u<<f.frac, false, flags)
}

// IntDiv returns a/b, computed from the integer quotient and the scaled
// remainder so that no precision is lost to an intermediate float. The result
// is truncated towards zero. It panics if b is zero.
//
// With NoUnderflow a zero quotient takes the sign of a, not of the quotient.
func (f Format[S]) IntDiv(a, b S, flags ...Flag) Value[S] {
	if f.Signed() {
		x, y := int64(a), int64(b)
		whole := uint64(x/y) << f.frac
		frac := uint64(f.calc().ShiftDivInt(x%y, uint(f.frac), y))
		return f.flagged(whole+frac, x < 0, flags)
	}
	x, y := uint64(a), uint64(b)
	whole := (x / y) << f.frac
	frac := f.calc().ShiftDivUint(x%y, uint(f.frac), y)
	return f.flagged(whole+frac, false, flags)
}

// DivInt returns v/d, dividing the raw storage directly. It panics if d is
// zero.
func DivInt[S constraints.Integer](v Value[S], d S, flags ...Flag) Value[S] {
	f := v.f
	if f.Signed() {
		return f.flagged(uint64(f.extend(v.bits())/int64(d)), v.IsNegative(), flags)
	}
	return f.flagged(v.bits()/uint64(d), false, flags)
}

// From returns v in format f. Floats are truncated towards zero, integers are
// exact if they are in range.
func From[S constraints.Integer, N Number](f Format[S], v N, flags ...Flag) Value[S] {
	if isFloat[N]() {
		return f.FromFloat(float64(v), flags...)
	}
	if v < 0 {
		return f.FromInt(int64(v), flags...)
	}
	return f.FromUint(uint64(v), flags...)
}

// Like returns x in the same format as v. It is the conversion to use when
// combining a value with a plain number:
//
//	y := v.Mul(fix.Like(v, 2))
func Like[S constraints.Integer, N Number](v Value[S], x N) Value[S] {
	return From(v.f, x)
}

func isFloat[N Number]() bool {
	var half N = 1
	half /= 2
	return half != 0
}

// Convert returns v in another format. If the fractional bits differ the
// magnitude is shifted, truncating towards zero when precision is lost; whole
// bits that don't fit in the destination are discarded.
func Convert[D, S constraints.Integer](to Format[D], v Value[S]) Value[D] {
	from := v.f
	mag, neg := v.bits(), false
	if from.Signed() {
		x := from.extend(mag)
		mag, neg = uint64(x), x < 0
		if neg {
			mag = -mag
		}
	}
	switch d := int(from.frac) - int(to.frac); {
	case d > 0:
		mag >>= uint(d)
	case d < 0:
		mag <<= uint(-d)
	}
	if neg {
		mag = -mag
	}
	return to.FromBits(mag)
}

// Fmt returns the format of v.
func (v Value[S]) Fmt() Format[S] { return v.f }

// Raw returns the storage of v. Bits above the format's total are zero.
func (v Value[S]) Raw() S { return v.raw }

// Bits returns the storage of v as an unsigned bit pattern.
func (v Value[S]) Bits() uint64 { return v.bits() }

func (v Value[S]) bits() uint64 { return uint64(v.raw) & v.f.mask() }

// Integer returns v with its fractional bits cleared.
func (v Value[S]) Integer() Value[S] {
	return v.f.FromBits(v.bits() &^ v.f.fracMask())
}

// Fractional returns v with its whole bits cleared.
func (v Value[S]) Fractional() Value[S] {
	return v.f.FromBits(v.bits() & v.f.fracMask())
}

// Int64 returns the integer part of v. Negative values round towards negative
// infinity, which is what shifting the two's complement storage gives.
func (v Value[S]) Int64() int64 {
	if v.f.Signed() {
		return v.f.extend(v.bits()) >> v.f.frac
	}
	return int64(v.bits() >> v.f.frac)
}

// Uint64 returns the integer part of v as an unsigned integer.
func (v Value[S]) Uint64() uint64 {
	if v.f.Signed() {
		return uint64(v.Int64())
	}
	return v.bits() >> v.f.frac
}

// Int converts v to an integer type T, discarding the fractional part.
func Int[T, S constraints.Integer](v Value[S]) T {
	if v.f.Signed() {
		return T(v.Int64())
	}
	return T(v.Uint64())
}

// Float64 returns v as a float64. It is exact unless the format has more than
// 53 significant bits in use.
func (v Value[S]) Float64() float64 {
	if v.f.Signed() {
		return math.Ldexp(float64(v.f.extend(v.bits())), -int(v.f.frac))
	}
	return math.Ldexp(float64(v.bits()), -int(v.f.frac))
}

// Float32 returns v as a float32.
func (v Value[S]) Float32() float32 { return float32(v.Float64()) }

// Float converts v to a floating point type T.
func Float[T constraints.Float, S constraints.Integer](v Value[S]) T {
	return T(v.Float64())
}

// IsNegative reports whether v < 0. It looks at the sign bit of the format,
// not of the storage type.
func (v Value[S]) IsNegative() bool {
	return v.f.Signed() && v.bits()>>(v.f.total()-1) != 0
}

// IsPositive reports whether v > 0.
func (v Value[S]) IsPositive() bool { return !v.IsNegative() && !v.IsZero() }

// IsNonnegative reports whether v >= 0.
func (v Value[S]) IsNonnegative() bool { return !v.IsNegative() }

// IsZero reports whether v == 0.
func (v Value[S]) IsZero() bool { return v.bits() == 0 }

// Equal reports whether v and w have the same storage.
func (v Value[S]) Equal(w Value[S]) bool { return v.bits() == w.bits() }

// Cmp returns -1, 0 or 1 if v is less than, equal to or greater than w.
func (v Value[S]) Cmp(w Value[S]) int {
	if v.f.Signed() {
		a, b := v.f.extend(v.bits()), v.f.extend(w.bits())
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	}
	a, b := v.bits(), w.bits()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Less reports whether v < w.
func (v Value[S]) Less(w Value[S]) bool { return v.Cmp(w) < 0 }
