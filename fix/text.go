package fix

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ErrSyntax is returned when text can't be parsed as a decimal number.
var ErrSyntax = errors.New("fix: invalid decimal syntax")

// Decimal returns v exactly as a decimal. Every fixed-point value has a
// finite decimal expansion: raw/2^F is raw*5^F/10^F.
func (v Value[S]) Decimal() decimal.Decimal {
	n := new(big.Int)
	if v.f.Signed() {
		n.SetInt64(v.f.extend(v.bits()))
	} else {
		n.SetUint64(v.bits())
	}
	five := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(v.f.frac)), nil)
	return decimal.NewFromBigInt(n.Mul(n, five), -int32(v.f.frac))
}

// String returns the exact decimal expansion of v, without trailing zeros.
func (v Value[S]) String() string {
	return v.Decimal().String()
}

// Parse reads a decimal number, truncating it towards zero to the nearest
// representable value. There is no intermediate float, so every value String
// produces parses back exactly. Out of range values wrap.
func (f Format[S]) Parse(s string) (Value[S], error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Value[S]{f: f}, errors.Wrapf(ErrSyntax, "%q: %v", s, err)
	}
	scale := decimal.NewFromBigInt(new(big.Int).Lsh(big.NewInt(1), uint(f.frac)), 0)
	n := d.Mul(scale).BigInt()
	// two's complement low bits, big.Int.And works on infinite precision
	// two's complement so negatives come out right.
	n.And(n, new(big.Int).SetUint64(f.mask()))
	return f.FromBits(n.Uint64()), nil
}

// MustParse is Parse that panics on error.
func (f Format[S]) MustParse(s string) Value[S] {
	v, err := f.Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// MarshalText implements encoding.TextMarshaler.
func (v Value[S]) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The value keeps its
// format, so unmarshal into a value that already has the right one:
//
//	v := f.FromInt(0)
//	err := v.UnmarshalText(b)
func (v *Value[S]) UnmarshalText(b []byte) error {
	w, err := v.f.Parse(string(b))
	if err != nil {
		return err
	}
	*v = w
	return nil
}
