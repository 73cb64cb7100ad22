// show-fix shows the representations of fixed point numbers, mostly for
// debugging conversions etc.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"golang.org/x/exp/constraints"

	"github.com/pfcm/fixpt/fix"
	"github.com/pfcm/fixpt/interp"
)

var (
	formatsFlag = flag.String("formats", "s1.7,u1.7,s4.4,u4.4,s2.2,s2.2/sat", "comma separated list of `layouts` to show, like s16.16 or u8.8/sat")
	opsFlag     = flag.String("ops", "", "comma separated list of `operations` to show. Available operations are: "+strings.Join(opKeys, ", ")+". Defaults to all operations")
)

var opKeys = []string{"add", "sub", "mul", "div", "neg", "lerp"}

func main() {
	log.SetFlags(0)
	log.SetPrefix("show-fix: ")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), help)
		fmt.Fprintln(flag.CommandLine.Output(), "\nOptional arguments:")
		flag.PrintDefaults()
	}
	flag.Parse()

	if n := flag.NArg(); n < 1 || n > 2 {
		fail("Need exactly one or two arguments.")
	}

	layouts, err := parseLayouts(*formatsFlag)
	if err != nil {
		fail(err.Error())
	}
	ops, err := parseOps(*opsFlag)
	if err != nil {
		fail(err.Error())
	}

	var args []uint64
	for _, a := range flag.Args() {
		u, err := parse(a)
		if err != nil {
			fail(err.Error())
		}
		args = append(args, u)
	}

	w := tabwriter.NewWriter(os.Stdout, 11, 1, 1, ' ', 0)
	for _, l := range layouts {
		if err := show(w, l, ops, args); err != nil {
			log.Fatal(err)
		}
	}
	if err := w.Flush(); err != nil {
		log.Fatal(err)
	}
}

func parseLayouts(s string) ([]fix.Layout, error) {
	var result []fix.Layout
	for _, f := range strings.Split(s, ",") {
		l, err := fix.ParseLayout(f)
		if err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	return result, nil
}

func parseOps(os string) (map[string]bool, error) {
	all := make(map[string]bool)
	for _, o := range opKeys {
		all[o] = true
	}
	if os == "" {
		return all, nil
	}
	result := make(map[string]bool)
	for _, o := range strings.Split(os, ",") {
		if !all[o] {
			return nil, fmt.Errorf("unknown op %q", o)
		}
		result[o] = true
	}
	return result, nil
}

// parse reads a bit pattern. Negative literals are taken as two's complement
// so -1 is all ones in every format.
func parse(s string) (uint64, error) {
	if strings.HasPrefix(s, "-") {
		i, err := strconv.ParseInt(s, 0, 64)
		return uint64(i), err
	}
	return strconv.ParseUint(s, 0, 64)
}

// show picks the storage type for l and prints the arguments in it.
func show(w io.Writer, l fix.Layout, ops map[string]bool, args []uint64) error {
	bits, err := l.StorageBits()
	if err != nil {
		return err
	}
	switch {
	case l.Signed && bits == 8:
		return showLayout[int8](w, l, ops, args)
	case l.Signed && bits == 16:
		return showLayout[int16](w, l, ops, args)
	case l.Signed && bits == 32:
		return showLayout[int32](w, l, ops, args)
	case l.Signed:
		return showLayout[int64](w, l, ops, args)
	case bits == 8:
		return showLayout[uint8](w, l, ops, args)
	case bits == 16:
		return showLayout[uint16](w, l, ops, args)
	case bits == 32:
		return showLayout[uint32](w, l, ops, args)
	}
	return showLayout[uint64](w, l, ops, args)
}

func showLayout[S constraints.Integer](w io.Writer, l fix.Layout, ops map[string]bool, args []uint64) error {
	f, err := fix.FormatOf[S](l)
	if err != nil {
		return err
	}
	vals := make([]fix.Value[S], len(args))
	for i, a := range args {
		vals[i] = f.FromBits(a)
		fmt.Fprintf(w, "%v\t%0*b\t%v\t\n", f, f.Total(), vals[i].Bits(), vals[i])
	}
	if len(vals) == 2 {
		showOps(w, ops, vals[0], vals[1])
	}
	fmt.Fprintln(w)
	return nil
}

func showOps[S constraints.Integer](w io.Writer, ops map[string]bool, a, b fix.Value[S]) {
	f := a.Fmt()
	for _, o := range opKeys {
		if !ops[o] {
			continue
		}
		switch o {
		case "add":
			fmt.Fprintf(w, "%v\t%v + %v\t%v\t\n", f, a, b, a.Add(b))
		case "sub":
			fmt.Fprintf(w, "%v\t%v - %v\t%v\t\n", f, a, b, a.Sub(b))
		case "mul":
			fmt.Fprintf(w, "%v\t%v * %v\t%v\t\n", f, a, b, a.Mul(b))
		case "div":
			if b.IsZero() {
				fmt.Fprintf(w, "%v\t%v / %v\t-\t\n", f, a, b)
				continue
			}
			fmt.Fprintf(w, "%v\t%v / %v\t%v\t\n", f, a, b, a.Div(b))
		case "neg":
			fmt.Fprintf(w, "%v\t-(%v)\t%v\t\n", f, a, a.Neg())
		case "lerp":
			half := f.IntDiv(1, 2)
			fmt.Fprintf(w, "%v\tL(%v, %v, %v)\t%v\t\n", f, a, b, half, interp.L(a, b, half))
		}
	}
}

func fail(reason string) {
	fmt.Fprintln(os.Stderr, reason)
	fmt.Fprint(os.Stderr, help)
	os.Exit(1)
}

const help = `show-fix shows various fixed-point representations of the same
bit pattern.
Usage:
	show-fix [-formats] [-ops] num [num]

Where num is an integer literal in Go syntax, taken as the raw bits of each
format. If a second number is provided, also shows the results of various
operations between them.
`
