// package sweep measures the accuracy of the elementary functions by
// evaluating them over a grid of inputs in a given format and comparing
// against the float64 functions in math.
package sweep

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
	"golang.org/x/sync/errgroup"

	"github.com/pfcm/fixpt/elem"
	"github.com/pfcm/fixpt/fix"
)

// ErrUnknownFunc is returned for cases naming a function that isn't swept.
var ErrUnknownFunc = errors.New("sweep: unknown function")

// Case is one format and function to measure.
type Case struct {
	Layout fix.Layout
	Func   string
	// Samples is the number of evenly spaced inputs, at least 2.
	Samples int
	// Jitter moves every input but the last by a pseudo-random fraction of
	// the grid step, to reach values the grid never lands on.
	Jitter bool
}

func (c Case) String() string { return fmt.Sprintf("%s(%v)", c.Func, c.Layout) }

// Report is the outcome of a Case. Errors are absolute for results with
// magnitude below 1 and relative above that.
type Report struct {
	Case
	// N is the number of inputs evaluated, Failed how many of them gave a
	// result that wasn't OK. Failed inputs don't count towards the errors.
	N, Failed int
	MaxErr    float64
	MeanErr   float64
	// Worst is the input with the largest error.
	Worst float64
}

// Funcs returns the names of the functions that can be swept.
func Funcs() []string {
	names := make([]string, 0, len(funcs))
	for n := range funcs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Run measures every case using at most workers goroutines, returning the
// reports in the same order as the cases. It stops early if ctx is done.
func Run(ctx context.Context, cases []Case, workers int) ([]Report, error) {
	reports := make([]Report, len(cases))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, c := range cases {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := measureCase(c)
			if err != nil {
				return errors.Wrapf(err, "measuring %v", c)
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// measureCase instantiates the case's layout with the right storage type.
func measureCase(c Case) (Report, error) {
	if _, ok := funcs[c.Func]; !ok {
		return Report{}, errors.Wrapf(ErrUnknownFunc, "%q", c.Func)
	}
	if c.Samples < 2 {
		return Report{}, errors.Errorf("need at least 2 samples, got %d", c.Samples)
	}
	bits, err := c.Layout.StorageBits()
	if err != nil {
		return Report{}, err
	}
	switch {
	case c.Layout.Signed && bits == 8:
		return measureLayout[int8](c)
	case c.Layout.Signed && bits == 16:
		return measureLayout[int16](c)
	case c.Layout.Signed && bits == 32:
		return measureLayout[int32](c)
	case c.Layout.Signed:
		return measureLayout[int64](c)
	case bits == 8:
		return measureLayout[uint8](c)
	case bits == 16:
		return measureLayout[uint16](c)
	case bits == 32:
		return measureLayout[uint32](c)
	}
	return measureLayout[uint64](c)
}

func measureLayout[S constraints.Integer](c Case) (Report, error) {
	f, err := fix.FormatOf[S](c.Layout)
	if err != nil {
		return Report{}, err
	}
	return measure(f, c), nil
}

// domain picks the inputs to sweep given the range of the format and the
// value of its least significant bit.
type domain func(min, max, ulp float64) (lo, hi float64)

// within clips [lo, hi] to the format's range.
func within(lo, hi float64) domain {
	return func(min, max, _ float64) (float64, float64) {
		return math.Max(lo, min), math.Min(hi, max)
	}
}

// positive is the format's range above zero.
func positive(_, max, ulp float64) (float64, float64) {
	return ulp, max
}

// below returns the exponents whose results stay under the format's
// maximum: for an exponential with base b that's up to log_b(max).
func below(logb func(float64) float64) domain {
	return func(min, max, _ float64) (float64, float64) {
		hi := logb(max) * 0.999
		return math.Max(min, -hi), hi
	}
}

var funcs = map[string]struct {
	ref    func(float64) float64
	domain domain
}{
	"sqrt":  {math.Sqrt, within(0, math.Inf(1))},
	"log2":  {math.Log2, positive},
	"ln":    {math.Log, positive},
	"log10": {math.Log10, positive},
	"exp2":  {math.Exp2, below(math.Log2)},
	"exp":   {math.Exp, below(math.Log)},
	"exp10": {func(x float64) float64 { return math.Pow(10, x) }, below(math.Log10)},
	"acos":  {math.Acos, within(-1, 1)},
}

// call evaluates the named function in the format of x.
func call[S constraints.Integer](name string, x fix.Value[S]) fix.Result[S] {
	switch name {
	case "sqrt":
		return fix.Result[S]{Val: elem.Sqrt(x)}
	case "log2":
		return elem.Log2(x)
	case "ln":
		return elem.Ln(x)
	case "log10":
		return elem.Log10(x)
	case "exp2":
		return elem.Exp2(x)
	case "exp":
		return elem.Exp(x)
	case "exp10":
		return elem.Exp10(x)
	case "acos":
		return elem.Acos(x)
	}
	panic("sweep: no function " + name)
}

func measure[S constraints.Integer](f fix.Format[S], c Case) Report {
	r := Report{Case: c}
	fun := funcs[c.Func]
	// wide formats' maximum rounds up to a power of two as a float64, and
	// converting that back would wrap.
	max := f.Max().Float64() * (1 - 1e-15)
	lo, hi := fun.domain(f.Min().Float64(), max, math.Ldexp(1, -f.Frac()))
	if !(lo < hi) {
		return r
	}
	var (
		sum   float64
		noise = newLFSR()
		step  = (hi - lo) / float64(c.Samples-1)
	)
	for i := 0; i < c.Samples; i++ {
		v := lo + step*float64(i)
		if c.Jitter && i < c.Samples-1 {
			v += step * noise.next()
		}
		x := f.FromFloat(v)
		r.N++
		res := call(c.Func, x)
		if !res.Valid() {
			r.Failed++
			continue
		}
		want := fun.ref(x.Float64())
		e := math.Abs(res.Val.Float64()-want) / math.Max(1, math.Abs(want))
		sum += e
		if e > r.MaxErr {
			r.MaxErr, r.Worst = e, x.Float64()
		}
	}
	if ok := r.N - r.Failed; ok > 0 {
		r.MeanErr = sum / float64(ok)
	}
	return r
}
