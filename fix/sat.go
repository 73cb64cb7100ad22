package fix

// sat.go is the overflow engine: addition and subtraction on the active bits
// of a format, wrapping or saturating according to its policy. The operands
// are always masked storage held in a uint64, and the results are masked
// again before they are stored.
//
// The saturating additions have more than one implementation. The top level
// functions use whichever did best in the benchmarks in sat_test.go; the
// differences are small.

// add is a+b under f's overflow policy.
func (f Format[S]) add(a, b uint64) uint64 {
	if f.policy != Saturating {
		return (a + b) & f.mask()
	}
	if f.Signed() {
		return f.ssadd(a, b)
	}
	return f.usadd(a, b)
}

// sub is a-b. It wraps under every policy, saturating subtraction is not
// implemented.
func (f Format[S]) sub(a, b uint64) uint64 {
	return (a - b) & f.mask()
}

// usadd is unsigned saturating addition.
func (f Format[S]) usadd(a, b uint64) uint64 {
	return f.usaddpre(a, b)
}

// checks for overflow first.
func (f Format[S]) usaddpre(a, b uint64) uint64 {
	// only one side needs checking, if this holds then max-b < a too.
	if max := f.maxBits(); max-a < b {
		return max
	}
	return a + b
}

// checks for overflow after the addition. The carry out of the active bits
// shows up as a result smaller than either operand once masked.
func (f Format[S]) usaddpost(a, b uint64) uint64 {
	x := (a + b) & f.mask()
	if x < a {
		return f.maxBits()
	}
	return x
}

// ssadd is signed saturating addition.
func (f Format[S]) ssadd(a, b uint64) uint64 {
	return f.ssaddbranch(a, b)
}

// ssaddbranch sign extends both operands and checks for overflow before
// adding. Neither max-y nor min-y can overflow given the sign checks.
func (f Format[S]) ssaddbranch(a, b uint64) uint64 {
	x, y := f.extend(a), f.extend(b)
	max, min := f.extend(f.maxBits()), f.extend(f.minBits())
	if x >= 0 && y >= 0 && x > max-y {
		return f.maxBits()
	}
	if x < 0 && y < 0 && x < min-y {
		return f.minBits()
	}
	return uint64(x+y) & f.mask()
}

// ssaddbranchless adds first and looks at the sign bits: overflow happened if
// the operands agree in sign and the result doesn't.
func (f Format[S]) ssaddbranchless(a, b uint64) uint64 {
	sign := f.total() - 1
	x := (a + b) & f.mask()
	same := ^(a ^ b) >> sign & 1
	s := ^(x ^ a) >> sign & 1
	if (s^same)&same != 0 {
		// max or min depending on the sign of a.
		x = f.maxBits() + a>>sign&1
	}
	return x
}

// ssaddbig adds in the full 64 bits so the bounds check is a clamp. It only
// works when the format has fewer than 64 active bits.
func (f Format[S]) ssaddbig(a, b uint64) uint64 {
	x := f.extend(a) + f.extend(b)
	x = max(min(x, f.extend(f.maxBits())), f.extend(f.minBits()))
	return uint64(x) & f.mask()
}
