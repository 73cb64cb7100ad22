// package wide provides the double-width accumulator used for fixed-point
// multiplication and division. Operands up to 32 bits are handled in 64 bit
// registers, anything wider goes through 128 bit integers.
package wide

import (
	"lukechampine.com/uint128"
)

// Calc selects the width of the scratch integer. It is never stored, it only
// decides how intermediate products and shifted dividends are computed.
type Calc uint8

const (
	// Calc64 is enough for operands of at most 32 bits.
	Calc64 Calc = 64
	// Calc128 covers operands of up to 64 bits.
	Calc128 Calc = 128
)

// For returns the accumulator needed for operands of the given bit width.
func For(bits uint) Calc {
	if bits <= 32 {
		return Calc64
	}
	return Calc128
}

// MulShiftInt returns (a*b)>>shift truncated to 64 bits. The shift is
// arithmetic, so negative products round towards negative infinity. shift
// is at most 64.
func (c Calc) MulShiftInt(a, b int64, shift uint) int64 {
	if c == Calc64 {
		return (a * b) >> shift
	}
	p := uint128.From64(abs(a)).Mul64(abs(b))
	if (a < 0) == (b < 0) {
		return int64(p.Rsh(shift).Lo)
	}
	// floor(-p/2^shift) is -ceil(p/2^shift).
	p = p.Add64(^uint64(0) >> (64 - shift))
	return -int64(p.Rsh(shift).Lo)
}

// MulShiftUint returns (a*b)>>shift truncated to 64 bits.
func (c Calc) MulShiftUint(a, b uint64, shift uint) uint64 {
	if c == Calc64 {
		return (a * b) >> shift
	}
	return uint128.From64(a).Mul64(b).Rsh(shift).Lo
}

// ShiftDivInt returns (a<<shift)/b truncated towards zero and then to 64
// bits. It panics if b is zero.
func (c Calc) ShiftDivInt(a int64, shift uint, b int64) int64 {
	if c == Calc64 {
		return (a << shift) / b
	}
	q := uint128.From64(abs(a)).Lsh(shift).Div64(abs(b)).Lo
	if (a < 0) != (b < 0) {
		return -int64(q)
	}
	return int64(q)
}

// ShiftDivUint returns (a<<shift)/b truncated to 64 bits. It panics if b is
// zero.
func (c Calc) ShiftDivUint(a uint64, shift uint, b uint64) uint64 {
	if c == Calc64 {
		return (a << shift) / b
	}
	return uint128.From64(a).Lsh(shift).Div64(b).Lo
}

// abs is |x| as an unsigned integer, so it holds even for math.MinInt64.
func abs(x int64) uint64 {
	if x < 0 {
		return -uint64(x)
	}
	return uint64(x)
}
