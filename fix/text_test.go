package fix

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
)

func TestString(t *testing.T) {
	for _, c := range []struct {
		v    Value[int32]
		want string
	}{
		{s16.FromFloat(-3.25), "-3.25"},
		{s16.FromInt(7), "7"},
		{s16.FromRaw(21845), "0.3333282470703125"},
		{s16.FromRaw(1), "0.0000152587890625"},
		{s16.Min(), "-32768"},
		{Value[int32]{}, "0"},
	} {
		if got := c.v.String(); got != c.want {
			t.Errorf("%#x: String() = %q, want: %q", c.v.Raw(), got, c.want)
		}
	}
	if got := u88.Max().String(); got != "255.99609375" {
		t.Errorf("u8.8 max = %q", got)
	}
	if got := s32.FromRaw(-1).String(); got != "-0.00000000023283064365386962890625" {
		t.Errorf("s32.32 -ulp = %q", got)
	}
}

func TestParse(t *testing.T) {
	for _, c := range []struct {
		in   string
		want Value[int32]
	}{
		{"4.5", s16.FromFloat(4.5)},
		{"-0.7", s16.FromFloat(-0.7)},
		{"0.3333282470703125", s16.FromRaw(21845)},
		{"0.33333333", s16.FromRaw(21845)},
		{"-32768", s16.Min()},
		{"1e2", s16.FromInt(100)},
		{"65537", s16.FromInt(1)},
	} {
		got, err := s16.Parse(c.in)
		if err != nil {
			t.Errorf("Parse(%q): %v", c.in, err)
			continue
		}
		if !got.Equal(c.want) {
			t.Errorf("Parse(%q) = %v, want: %v", c.in, got, c.want)
		}
	}
	if _, err := s16.Parse("one"); !errors.Is(err, ErrSyntax) {
		t.Errorf("Parse(\"one\"): err = %v, want: %v", err, ErrSyntax)
	}
}

func TestStringParseRoundTrip(t *testing.T) {
	for i := 0; i < 1<<16; i++ {
		v := u88.FromRaw(uint16(i))
		if got := u88.MustParse(v.String()); !got.Equal(v) {
			t.Fatalf("%#x: %q parsed as %#x", i, v.String(), got.Raw())
		}
	}
	for i := -1 << 20; i < 1<<20; i += 997 {
		v := s32.FromRaw(int64(i) << 13)
		if got := s32.MustParse(v.String()); !got.Equal(v) {
			t.Fatalf("%#x: %q parsed as %#x", v.Raw(), v.String(), got.Raw())
		}
	}
}

func TestTextMarshaling(t *testing.T) {
	type gains struct {
		Left, Right Value[int16]
	}
	in := gains{Left: s511.FromFloat(-1.5), Right: s511.FromFloat(0.125)}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(b), `{"Left":"-1.5","Right":"0.125"}`; got != want {
		t.Errorf("json.Marshal = %s, want: %s", got, want)
	}
	out := gains{Left: s511.FromInt(0), Right: s511.FromInt(0)}
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatal(err)
	}
	if !out.Left.Equal(in.Left) || !out.Right.Equal(in.Right) {
		t.Errorf("json.Unmarshal = %+v, want: %+v", out, in)
	}
	if out.Left.Fmt() != s511 {
		t.Errorf("unmarshaled format = %v, want: %v", out.Left.Fmt(), s511)
	}
}
