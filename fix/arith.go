package fix

// Add returns v+w, wrapping or saturating according to the format.
func (v Value[S]) Add(w Value[S]) Value[S] {
	return v.f.FromBits(v.f.add(v.bits(), w.bits()))
}

// Sub returns v-w. Subtraction always wraps, even in saturating formats.
func (v Value[S]) Sub(w Value[S]) Value[S] {
	return v.f.FromBits(v.f.sub(v.bits(), w.bits()))
}

// Mul returns v*w truncated to the format's fractional bits. The product is
// formed in a scratch integer twice the storage width, so only the final
// narrowing loses bits; it wraps regardless of the overflow policy.
func (v Value[S]) Mul(w Value[S]) Value[S] {
	f := v.f
	if f.Signed() {
		p := f.calc().MulShiftInt(f.extend(v.bits()), f.extend(w.bits()), uint(f.frac))
		return f.FromBits(uint64(p))
	}
	return f.FromBits(f.calc().MulShiftUint(v.bits(), w.bits(), uint(f.frac)))
}

// Div returns v/w truncated towards zero. It panics if w is zero.
func (v Value[S]) Div(w Value[S]) Value[S] {
	f := v.f
	if f.Signed() {
		q := f.calc().ShiftDivInt(f.extend(v.bits()), uint(f.frac), f.extend(w.bits()))
		return f.FromBits(uint64(q))
	}
	return f.FromBits(f.calc().ShiftDivUint(v.bits(), uint(f.frac), w.bits()))
}

// Neg returns -v. The minimum of a signed format is its own negation, and in
// unsigned formats this is the two's complement of the storage.
func (v Value[S]) Neg() Value[S] {
	return v.f.FromBits(-v.bits())
}

// Recip returns 1/v. The format needs room for 1 itself: one unsigned whole
// bit, or two signed ones.
func (v Value[S]) Recip() Value[S] {
	return v.f.FromInt(1).Div(v)
}
