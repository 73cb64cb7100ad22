package fix

import (
	"testing"
)

func TestAddOverflow(t *testing.T) {
	for _, c := range []struct {
		name string
		f    Format[int8]
		a, b float64
		raw  int8
	}{
		{"wrap", s22, 1.75, 0.25, 0b1000},
		{"sat", s22s, 1.75, 0.25, 0b0111},
		{"sat min", s22s, -1.75, -0.5, 0b1000},
		{"wrap min", s22, -1.75, -0.5, 0b0111},
		{"sat in range", s22s, -1.75, 0.5, 0b1011},
		{"sat mixed signs", s22s, 1.75, -2, 0b1111},
	} {
		a, b := c.f.FromFloat(c.a), c.f.FromFloat(c.b)
		if got := a.Add(b).Raw(); got != c.raw {
			t.Errorf("%s: %v + %v = %#b, want: %#b", c.name, c.a, c.b, got, c.raw)
		}
		if got := b.Add(a).Raw(); got != c.raw {
			t.Errorf("%s: %v + %v = %#b, want: %#b", c.name, c.b, c.a, got, c.raw)
		}
	}
}

func TestUnsignedAddOverflow(t *testing.T) {
	if got := u88s.FromInt(200).Add(u88s.FromInt(100)); !got.Equal(u88s.Max()) {
		t.Errorf("u8.8/sat 200+100 = %v, want: %v", got, u88s.Max())
	}
	if got := u88.FromInt(200).Add(u88.FromInt(100)).Float64(); got != 44 {
		t.Errorf("u8.8 200+100 = %v, want: 44", got)
	}
	if got := u88s.FromInt(200).Add(u88s.FromFloat(55.5)).Float64(); got != 255.5 {
		t.Errorf("u8.8/sat 200+55.5 = %v, want: 255.5", got)
	}
}

func TestSubWraps(t *testing.T) {
	// subtraction ignores the saturating policy.
	for _, f := range []Format[int8]{s22, s22s} {
		if got := f.FromInt(-2).Sub(f.FromFloat(0.25)).Float64(); got != 1.75 {
			t.Errorf("%v: -2 - 0.25 = %v, want: 1.75", f, got)
		}
	}
	if got := s16.FromFloat(1.5).Sub(s16.FromFloat(2.75)).Float64(); got != -1.25 {
		t.Errorf("1.5 - 2.75 = %v, want: -1.25", got)
	}
}

func TestMul(t *testing.T) {
	for _, c := range []struct {
		a, b, out float64
	}{
		{0, 1, 0},
		{0.5, 0.5, 0.25},
		{0.5, -0.5, -0.25},
		{-0.5, -0.5, 0.25},
		{1.5, 2.5, 3.75},
		{-1.5, 2.5, -3.75},
		{100, 100, 10000},
		{-1, -1, 1},
	} {
		for _, mul := range []struct {
			name string
			f    func(a, b float64) float64
		}{
			{"s16.16", func(a, b float64) float64 { return s16.FromFloat(a).Mul(s16.FromFloat(b)).Float64() }},
			{"s32.32", func(a, b float64) float64 { return s32.FromFloat(a).Mul(s32.FromFloat(b)).Float64() }},
		} {
			if got := mul.f(c.a, c.b); got != c.out {
				t.Errorf("%s: %v * %v = %v, want: %v", mul.name, c.a, c.b, got, c.out)
			}
		}
	}
	if got := u88.FromFloat(1.5).Mul(u88.FromFloat(3)).Float64(); got != 4.5 {
		t.Errorf("u8.8: 1.5 * 3 = %v", got)
	}
	if got := u32.FromFloat(65536.5).Mul(u32.FromInt(2)).Float64(); got != 131073 {
		t.Errorf("u32.32: 65536.5 * 2 = %v", got)
	}
	// s2.2 operands are sign extended before multiplying: -1 * -1 = 1.
	if got := s22.FromInt(-1).Mul(s22.FromInt(-1)).Float64(); got != 1 {
		t.Errorf("s2.2: -1 * -1 = %v", got)
	}
	// the product floors: -0.25 * 0.25 = -0.0625 is -0.25 in s2.2.
	if got := s22.FromFloat(-0.25).Mul(s22.FromFloat(0.25)).Float64(); got != -0.25 {
		t.Errorf("s2.2: -0.25 * 0.25 = %v", got)
	}
}

func TestDiv(t *testing.T) {
	for _, c := range []struct {
		a, b, out float64
	}{
		{3.75, 2.5, 1.5},
		{-3.75, 2.5, -1.5},
		{1, 4, 0.25},
		{1, 3, 21845.0 / 65536},
		{-1, 3, -21845.0 / 65536},
		{0, -7, 0},
	} {
		if got := s16.FromFloat(c.a).Div(s16.FromFloat(c.b)).Float64(); got != c.out {
			t.Errorf("s16.16: %v / %v = %v, want: %v", c.a, c.b, got, c.out)
		}
	}
	if got := s32.FromFloat(-3.75).Div(s32.FromFloat(2.5)).Float64(); got != -1.5 {
		t.Errorf("s32.32: -3.75 / 2.5 = %v", got)
	}
	if got := u32.FromInt(1).Div(u32.FromInt(1 << 20)).Float64(); got != 1.0/(1<<20) {
		t.Errorf("u32.32: 1 / 2^20 = %v", got)
	}
	if got := u88.FromInt(9).Div(u88.FromInt(4)).Float64(); got != 2.25 {
		t.Errorf("u8.8: 9 / 4 = %v", got)
	}
}

func TestDivByZeroPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("dividing by zero did not panic")
		}
	}()
	s16.FromInt(1).Div(s16.FromInt(0))
}

func TestDivInt(t *testing.T) {
	for _, c := range []struct {
		v   float64
		d   int32
		out float64
	}{
		{4.5, 2, 2.25},
		{-4.5, 2, -2.25},
		{4.5, -3, -1.5},
	} {
		if got := DivInt(s16.FromFloat(c.v), c.d).Float64(); got != c.out {
			t.Errorf("DivInt(%v, %d) = %v, want: %v", c.v, c.d, got, c.out)
		}
	}
	if got := DivInt(u88.FromInt(9), 2).Float64(); got != 4.5 {
		t.Errorf("u8.8: DivInt(9, 2) = %v", got)
	}
}

func TestNeg(t *testing.T) {
	for _, c := range []struct {
		in, out float64
	}{
		{0.25, -0.25},
		{-1.75, 1.75},
		{0, 0},
		{-2, -2},
	} {
		if got := s22.FromFloat(c.in).Neg().Float64(); got != c.out {
			t.Errorf("-(%v) = %v, want: %v", c.in, got, c.out)
		}
	}
}

func TestRecip(t *testing.T) {
	for _, c := range []struct {
		in, out float64
	}{
		{2, 0.5},
		{-4, -0.25},
		{0.5, 2},
		{3, 21845.0 / 65536},
	} {
		if got := s16.FromFloat(c.in).Recip().Float64(); got != c.out {
			t.Errorf("1/%v = %v, want: %v", c.in, got, c.out)
		}
	}
}
