package fix

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
)

// NumCode says what kind of number a result stands for. Fixed-point values
// can't hold infinities or NaN, so results carry them alongside.
type NumCode uint8

const (
	Normal NumCode = iota
	PositiveInfinity
	NegativeInfinity
	NaN
)

func (c NumCode) String() string {
	switch c {
	case Normal:
		return "normal"
	case PositiveInfinity:
		return "+inf"
	case NegativeInfinity:
		return "-inf"
	case NaN:
		return "NaN"
	}
	return fmt.Sprintf("NumCode(%d)", uint8(c))
}

// Errors collects what went wrong computing a result. The zero value means
// nothing did.
type Errors struct {
	Code            NumCode
	Overflow        bool
	Underflow       bool
	DivisionByZero  bool
	InvalidArgument bool
}

// OK reports whether no flag is set and the code is Normal.
func (e Errors) OK() bool { return e == Errors{} }

func (e Errors) Error() string {
	var parts []string
	if e.Code != Normal {
		parts = append(parts, e.Code.String())
	}
	for _, f := range []struct {
		set  bool
		name string
	}{
		{e.Overflow, "overflow"},
		{e.Underflow, "underflow"},
		{e.DivisionByZero, "division by zero"},
		{e.InvalidArgument, "invalid argument"},
	} {
		if f.set {
			parts = append(parts, f.name)
		}
	}
	if len(parts) == 0 {
		return "fix: ok"
	}
	return "fix: " + strings.Join(parts, ", ")
}

// Err returns e as an error, or nil if it is OK.
func (e Errors) Err() error {
	if e.OK() {
		return nil
	}
	return e
}

// Result is a value together with the errors from computing it. When Err is
// not OK, Val is whatever the computation left behind (usually zero or the
// format's maximum) and should not be trusted.
type Result[S constraints.Integer] struct {
	Val Value[S]
	Err Errors
}

// Valid reports whether r.Err is OK.
func (r Result[S]) Valid() bool { return r.Err.OK() }

// Unwrap splits r into the usual Go value and error pair.
func (r Result[S]) Unwrap() (Value[S], error) {
	return r.Val, r.Err.Err()
}
