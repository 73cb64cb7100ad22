package sweep

// lfsr is a 16 bit Galois linear-feedback shift register. With the default
// taps it visits every non-zero state before repeating, which is plenty of
// noise for moving sample inputs off the grid and deterministic across runs.
type lfsr struct {
	state uint16
	taps  uint16
}

// x^16 + x^15 + x^13 + x^4 + 1
const defaultTaps uint16 = 0xd008

func newLFSR() *lfsr {
	return &lfsr{
		state: 0xffff,
		taps:  defaultTaps,
	}
}

// next advances the register and returns the new state as a fraction in
// (0, 1).
func (l *lfsr) next() float64 {
	fb := l.state & 1
	l.state >>= 1
	if fb == 1 {
		l.state ^= l.taps
	}
	return float64(l.state) / (1 << 16)
}
