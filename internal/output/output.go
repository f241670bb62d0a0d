package output

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/efritz/pentimento"
	"github.com/sourcegraph/lsif-query/internal/parallel"
)

type Options struct {
	Verbosity      Verbosity
	ShowAnimations bool
}

type Verbosity int

const (
	NoOutput Verbosity = iota
	DefaultOutput
	VerboseOutput
	VeryVerboseOutput
)

// updateInterval is the duration between updates in withProgress.
var updateInterval = time.Second / 4

// ticker is the animated throbber used in printProgress.
var ticker = pentimento.NewAnimatedString([]string{
	"⠸", "⠼",
	"⠴", "⠦",
	"⠧", "⠇",
	"⠏", "⠋",
	"⠙", "⠹",
}, updateInterval)

var successPrefix = "✔"
var failurePrefix = "✗"

// WithProgress prints a spinner while the given function is active and reports whether
// it failed. The function's error is returned.
func WithProgress(name string, fn func() error, outputOptions Options) error {
	var err error

	ch := make(chan func(), 1)
	ch <- func() { err = fn() }
	close(ch)

	wg, count := parallel.Run(ch)
	WithProgressParallel(wg, name, outputOptions, count, 1, func() error { return err })
	return err
}

// WithProgressParallel will continuously print progress to stdout until the given wait group
// counter goes to zero. Progress is determined by the values of `c` (number of tasks completed)
// and the value `n` (total number of tasks). The status function is consulted once the wait
// group is done to decide between the success and failure markers.
func WithProgressParallel(wg *sync.WaitGroup, name string, outputOptions Options, c *uint64, n uint64, status func() error) {
	sync := make(chan struct{})
	go func() {
		wg.Wait()
		close(sync)
	}()

	withTitle(name, outputOptions, status, func(printer *pentimento.Printer) {
		for {
			select {
			case <-sync:
				return
			case <-time.After(updateInterval):
			}

			printProgress(printer, name, c, n)
		}
	})
}

// withTitle invokes withTitleAnimated withTitleStatic depending on the value of animated.
func withTitle(name string, outputOptions Options, status func() error, fn func(printer *pentimento.Printer)) {
	if outputOptions.Verbosity == NoOutput {
		fn(nil)
	} else if !outputOptions.ShowAnimations || outputOptions.Verbosity >= VeryVerboseOutput {
		withTitleStatic(name, outputOptions.Verbosity, status, fn)
	} else {
		withTitleAnimated(name, outputOptions.Verbosity, status, fn)
	}
}

// withTitleStatic invokes the given function with non-animated output.
func withTitleStatic(name string, verbosity Verbosity, status func() error, fn func(printer *pentimento.Printer)) {
	start := time.Now()
	fmt.Printf("%s\n", name)
	fn(nil)

	if err := status(); err != nil {
		fmt.Printf("Failed after %s.\n\n", Elapsed(start))
	} else if verbosity > DefaultOutput {
		fmt.Printf("Finished in %s.\n\n", Elapsed(start))
	}
}

// withTitleAnimated invokes the given function with animated output.
func withTitleAnimated(name string, verbosity Verbosity, status func() error, fn func(printer *pentimento.Printer)) {
	start := time.Now()
	fmt.Printf("%s %s... ", ticker, name)

	_ = pentimento.PrintProgress(func(printer *pentimento.Printer) error {
		defer func() {
			_ = printer.Reset()
		}()

		fn(printer)
		return nil
	})

	prefix, result := successPrefix, "Done"
	if status() != nil {
		prefix, result = failurePrefix, "Failed"
	}

	if verbosity > DefaultOutput {
		fmt.Printf("%s %s... %s (%s)\n", prefix, name, result, Elapsed(start))
	} else {
		fmt.Printf("%s %s... %s\n", prefix, name, result)
	}
}

// printProgress outputs a throbber, the given name, and the given number of tasks completed to
// the given printer.
func printProgress(printer *pentimento.Printer, name string, c *uint64, n uint64) {
	if printer == nil {
		return
	}

	content := pentimento.NewContent()

	if c == nil || n <= 1 {
		content.AddLine("%s %s...", ticker, name)
	} else {
		content.AddLine("%s %s... %d/%d\n", ticker, name, atomic.LoadUint64(c), n)
	}

	printer.WriteContent(content)
}
