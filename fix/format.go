package fix

import (
	"fmt"
	"strconv"
	"strings"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"

	"github.com/pfcm/fixpt/internal/wide"
)

var (
	// ErrUnrepresentable is returned when a bit count does not fit any of the
	// standard integer widths.
	ErrUnrepresentable = errors.New("fix: no integer type holds that many bits")
	// ErrBadLayout is returned for inconsistent or unparseable layouts.
	ErrBadLayout = errors.New("fix: bad layout")
	// ErrUnsupportedOverflow is returned for overflow policies that are
	// reserved but not implemented.
	ErrUnsupportedOverflow = errors.New("fix: unsupported overflow policy")
	// ErrSignedness is returned when a layout's signedness doesn't match the
	// storage type it is being instantiated with.
	ErrSignedness = errors.New("fix: signedness does not match storage type")
)

// Overflow is the policy applied when addition leaves the representable range.
type Overflow uint8

const (
	// Wrapping discards the excess bits (two's complement wraparound).
	Wrapping Overflow = iota
	// Saturating clamps to the minimum or maximum value.
	Saturating
	// Trapping is reserved for reporting overflow and is not implemented;
	// NewFormat rejects it.
	Trapping
)

func (o Overflow) String() string {
	switch o {
	case Wrapping:
		return "wrap"
	case Saturating:
		return "sat"
	case Trapping:
		return "trap"
	}
	return fmt.Sprintf("Overflow(%d)", uint8(o))
}

// StorageBits returns the width of the smallest standard integer (8, 16, 32 or
// 64 bits) that can hold total bits. The sign bit is one of the total, so the
// answer is the same for both signednesses.
func StorageBits(signed bool, total int) (int, error) {
	switch {
	case total < 0:
		return 0, errors.Wrapf(ErrUnrepresentable, "%d bits", total)
	case total <= 8:
		return 8, nil
	case total <= 16:
		return 16, nil
	case total <= 32:
		return 32, nil
	case total <= 64:
		return 64, nil
	}
	return 0, errors.Wrapf(ErrUnrepresentable, "%d bits", total)
}

// Format describes a fixed-point representation backed by integers of type S:
// the number of whole and fractional bits and the overflow policy. For signed
// S the sign bit counts as a whole bit, so an s5.11 format has 16 active bits
// and ranges from -16 to just under 16.
//
// A Format is immutable. The zero Format is the integer format using every bit
// of S with no fractional bits, wrapping on overflow.
type Format[S constraints.Integer] struct {
	whole, frac uint8
	policy      Overflow
}

// NewFormat returns the format with the given number of whole and fractional
// bits. The total must fit in S.
func NewFormat[S constraints.Integer](whole, frac int, o Overflow) (Format[S], error) {
	var f Format[S]
	width := int(f.width())
	switch {
	case whole < 0 || frac < 0:
		return f, errors.Wrapf(ErrBadLayout, "negative bit count in %d.%d", whole, frac)
	case whole+frac == 0:
		return f, errors.Wrapf(ErrBadLayout, "no bits in %d.%d", whole, frac)
	case whole+frac > width:
		return f, errors.Wrapf(ErrBadLayout, "%d.%d needs %d bits, storage has %d", whole, frac, whole+frac, width)
	}
	switch o {
	case Wrapping, Saturating:
	default:
		return f, errors.Wrapf(ErrUnsupportedOverflow, "%v", o)
	}
	return Format[S]{whole: uint8(whole), frac: uint8(frac), policy: o}, nil
}

// MustFormat is NewFormat that panics on error. It is meant for package level
// variables.
func MustFormat[S constraints.Integer](whole, frac int, o Overflow) Format[S] {
	f, err := NewFormat[S](whole, frac, o)
	if err != nil {
		panic(err)
	}
	return f
}

// FormatOf instantiates a Layout with storage type S.
func FormatOf[S constraints.Integer](l Layout) (Format[S], error) {
	var f Format[S]
	if f.Signed() != l.Signed {
		return f, errors.Wrapf(ErrSignedness, "%v with %d bit storage", l, f.width())
	}
	return NewFormat[S](l.Whole, l.Frac, l.Overflow)
}

func (f Format[S]) width() uint {
	var s S
	return uint(unsafe.Sizeof(s)) * 8
}

// total is the number of active bits.
func (f Format[S]) total() uint {
	if t := uint(f.whole) + uint(f.frac); t != 0 {
		return t
	}
	return f.width()
}

// mask has the low total bits set.
func (f Format[S]) mask() uint64 {
	return ^uint64(0) >> (64 - f.total())
}

// fracMask has the low frac bits set.
func (f Format[S]) fracMask() uint64 {
	return uint64(1)<<f.frac - 1
}

// extend sign extends the active bits of u.
func (f Format[S]) extend(u uint64) int64 {
	sh := 64 - f.total()
	return int64(u<<sh) >> sh
}

func (f Format[S]) calc() wide.Calc {
	return wide.For(f.width())
}

// Whole is the number of integer bits, including the sign bit for signed
// formats.
func (f Format[S]) Whole() int { return int(f.total()) - int(f.frac) }

// Frac is the number of fractional bits.
func (f Format[S]) Frac() int { return int(f.frac) }

// Total is the number of active bits. It may be less than Width; the unused
// high bits of the storage are always zero.
func (f Format[S]) Total() int { return int(f.total()) }

// Width is the size of the backing storage in bits.
func (f Format[S]) Width() int { return int(f.width()) }

// CalcBits is the size of the scratch integer used for multiplication and
// division.
func (f Format[S]) CalcBits() int { return 2 * int(f.width()) }

// Signed reports whether the format is two's complement.
func (f Format[S]) Signed() bool { return ^S(0) < 0 }

// Overflow returns the format's overflow policy.
func (f Format[S]) Overflow() Overflow { return f.policy }

// Layout returns the storage independent description of f.
func (f Format[S]) Layout() Layout {
	return Layout{
		Signed:   f.Signed(),
		Whole:    f.Whole(),
		Frac:     f.Frac(),
		Overflow: f.policy,
	}
}

func (f Format[S]) String() string { return f.Layout().String() }

// maxBits is the raw storage of the largest value.
func (f Format[S]) maxBits() uint64 {
	if f.Signed() {
		return f.mask() >> 1
	}
	return f.mask()
}

// minBits is the raw storage of the smallest value.
func (f Format[S]) minBits() uint64 {
	if f.Signed() {
		return (f.mask() >> 1) + 1
	}
	return 0
}

// Max is the largest representable value.
func (f Format[S]) Max() Value[S] { return f.FromBits(f.maxBits()) }

// Min is the smallest representable value.
func (f Format[S]) Min() Value[S] { return f.FromBits(f.minBits()) }

// Layout is a fixed-point format without its storage type, as written in
// strings like "s16.16" or "u8.8/sat".
type Layout struct {
	Signed      bool
	Whole, Frac int
	Overflow    Overflow
}

// StorageBits picks the smallest standard integer width for l.
func (l Layout) StorageBits() (int, error) {
	return StorageBits(l.Signed, l.Whole+l.Frac)
}

func (l Layout) String() string {
	sign := "u"
	if l.Signed {
		sign = "s"
	}
	s := fmt.Sprintf("%s%d.%d", sign, l.Whole, l.Frac)
	if l.Overflow != Wrapping {
		s += "/" + l.Overflow.String()
	}
	return s
}

// ParseLayout parses layouts written as [su]<whole>.<frac>, optionally
// followed by "/wrap" or "/sat".
func ParseLayout(s string) (Layout, error) {
	var l Layout
	bits, policy, hasPolicy := strings.Cut(strings.TrimSpace(s), "/")
	if hasPolicy {
		switch policy {
		case "wrap":
			l.Overflow = Wrapping
		case "sat":
			l.Overflow = Saturating
		default:
			return l, errors.Wrapf(ErrBadLayout, "unknown overflow policy %q in %q", policy, s)
		}
	}
	if bits == "" {
		return l, errors.Wrapf(ErrBadLayout, "empty layout %q", s)
	}
	switch bits[0] {
	case 's':
		l.Signed = true
	case 'u':
	default:
		return l, errors.Wrapf(ErrBadLayout, "%q should start with s or u", s)
	}
	whole, frac, ok := strings.Cut(bits[1:], ".")
	if !ok {
		return l, errors.Wrapf(ErrBadLayout, "%q has no '.'", s)
	}
	var err error
	if l.Whole, err = strconv.Atoi(whole); err != nil {
		return l, errors.Wrapf(ErrBadLayout, "whole bits of %q: %v", s, err)
	}
	if l.Frac, err = strconv.Atoi(frac); err != nil {
		return l, errors.Wrapf(ErrBadLayout, "fractional bits of %q: %v", s, err)
	}
	if l.Whole < 0 || l.Frac < 0 || l.Whole+l.Frac == 0 {
		return l, errors.Wrapf(ErrBadLayout, "%q has no usable bits", s)
	}
	return l, nil
}
