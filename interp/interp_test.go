package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pfcm/fixpt/fix"
)

var (
	s17  = fix.MustFormat[int8](1, 7, fix.Saturating)
	s16  = fix.MustFormat[int32](16, 16, fix.Wrapping)
	u88s = fix.MustFormat[uint16](8, 8, fix.Saturating)
)

func TestL(t *testing.T) {
	f := func(f float64) fix.Value[int8] {
		return s17.FromFloat(f)
	}
	for _, c := range []struct {
		a, b, c fix.Value[int8]
		out     fix.Value[int8]
	}{{
		a:   f(0.5),
		b:   f(0),
		c:   s17.Max(),
		out: f(0.0078125),
	}, {
		a:   f(0.5),
		b:   f(-0.5),
		c:   f(0.5),
		out: f(0),
	}, {
		a:   f(-1),
		b:   f(0.5),
		c:   f(0.25),
		out: f(-0.625),
	}} {
		got := L(c.a, c.b, c.c)
		if !got.Equal(c.out) {
			t.Errorf("L(%v, %v, %v) = %v, want: %v", c.a, c.b, c.c, got, c.out)
		}
	}
}

func TestLWide(t *testing.T) {
	for _, c := range []struct {
		a, b, c, out float64
	}{
		{0, 10, 0.5, 5},
		{-100, 100, 0.25, -50},
		{3, 3, 0.9, 3},
		{1, 2, 0, 1},
		{1, 2, 1, 2},
	} {
		got := L(s16.FromFloat(c.a), s16.FromFloat(c.b), s16.FromFloat(c.c))
		assert.InDelta(t, c.out, got.Float64(), 1e-4, "L(%v, %v, %v)", c.a, c.b, c.c)
	}
}

func TestTable(t *testing.T) {
	got := Table(u88s.FromInt(0), u88s.FromInt(8), 5)
	want := []float64{0, 2, 4, 6, 8}
	if assert.Len(t, got, len(want)) {
		for i := range want {
			assert.Equal(t, want[i], got[i].Float64(), "point %d", i)
		}
	}
}

func TestTableSize(t *testing.T) {
	a, b := s17.FromInt(0), s17.Max()
	assert.Len(t, Table(a, b, 128), 128)
	assert.Panics(t, func() { Table(a, b, 129) }, "129 points needs a divisor of 128")
	assert.Panics(t, func() { Table(a, b, 1) })
	assert.Len(t, Table(s16.FromInt(0), s16.FromInt(1), 1000), 1000)
}

func TestLUnsigned(t *testing.T) {
	got := L(u88s.FromInt(200), u88s.FromInt(100), u88s.FromFloat(0.5))
	assert.Equal(t, 150.0, got.Float64())
}
