// fix-accuracy measures the elementary functions over a range of formats and
// prints a table of their errors against float64.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pfcm/fixpt/fix"
	"github.com/pfcm/fixpt/internal/sweep"
)

var (
	formatsFlag = flag.String("formats", "s16.16,u16.16,s8.24,s32.32", "comma separated list of `layouts` to measure")
	funcsFlag   = flag.String("funcs", "", "comma separated list of `functions` to measure. Available functions are: "+strings.Join(sweep.Funcs(), ", ")+". Defaults to all of them")
	samplesFlag = flag.Int("samples", 10000, "number of inputs per function and format")
	jitterFlag  = flag.Bool("jitter", false, "whether to move inputs off the evenly spaced grid")
	workersFlag = flag.Int("workers", runtime.NumCPU(), "number of cases to measure concurrently")
	profileFlag = flag.Bool("profile", false, "whether to write pprof profiles to the current working directory")
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("fix-accuracy: ")
	flag.Parse()

	cases, err := parseCases(*formatsFlag, *funcsFlag, *samplesFlag, *jitterFlag)
	if err != nil {
		log.Fatal(err)
	}

	if *profileFlag {
		finish, err := startProfiles()
		if err != nil {
			log.Fatalf("Starting profiling: %v", err)
		}
		defer func() {
			if err := finish(); err != nil {
				log.Fatalf("Finishing profiles: %v", err)
			}
		}()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	reports, err := sweep.Run(ctx, cases, *workersFlag)
	if err != nil {
		log.Fatal(err)
	}

	p := message.NewPrinter(language.English)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "format\tfunc\tinputs\tfailed\tmax err\tmean err\tworst at\t")
	for _, r := range reports {
		if r.N == 0 {
			fmt.Fprintf(w, "%v\t%s\t0\t-\t-\t-\t-\t\n", r.Layout, r.Func)
			continue
		}
		p.Fprintf(w, "%v\t%s\t%d\t%d\t%.3g\t%.3g\t%.6f\t\n", r.Layout, r.Func, r.N, r.Failed, r.MaxErr, r.MeanErr, r.Worst)
	}
	if err := w.Flush(); err != nil {
		log.Fatal(err)
	}
}

// parseCases makes a case for every format and function.
func parseCases(formats, funcs string, samples int, jitter bool) ([]sweep.Case, error) {
	names := sweep.Funcs()
	if funcs != "" {
		names = strings.Split(funcs, ",")
	}
	var cases []sweep.Case
	for _, s := range strings.Split(formats, ",") {
		l, err := fix.ParseLayout(s)
		if err != nil {
			return nil, err
		}
		for _, n := range names {
			cases = append(cases, sweep.Case{Layout: l, Func: n, Samples: samples, Jitter: jitter})
		}
	}
	return cases, nil
}

func startProfiles() (func() error, error) {
	cpu, err := os.Create("cpu.pprof")
	if err != nil {
		return nil, err
	}
	if err := pprof.StartCPUProfile(cpu); err != nil {
		return nil, fmt.Errorf("starting cpu profile: %w", err)
	}

	mem, err := os.Create("mem.pprof")
	if err != nil {
		return nil, err
	}
	return func() error {
		pprof.StopCPUProfile()
		if err := cpu.Close(); err != nil {
			return err
		}
		runtime.GC()
		if err := pprof.WriteHeapProfile(mem); err != nil {
			return err
		}
		return mem.Close()
	}, nil
}
