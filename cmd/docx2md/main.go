package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args[1:], DefaultEnv()))
}

// runMain runs the command and maps its error to an exit code.
func runMain(args []string, env *Environment) int {
	ctx, stop := notifyContext(context.Background())
	defer stop()

	start := env.Now()
	err := run(ctx, args, env)
	if err == nil {
		return ExitSuccess
	}

	var batchErr *batchError
	if errors.As(err, &batchErr) {
		fmt.Fprintf(env.Stderr, "error: %v (%v)\n", err, env.Now().Sub(start).Round(time.Millisecond))
	} else {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, ""))
	}
	return exitCodeFor(err)
}

// setMaxProcs configures GOMAXPROCS for container CPU quotas.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func setMaxProcs(verbose bool, w io.Writer) {
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(w, format+"\n", args...)
		}))
		return
	}
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
}

// batchError reports failed conversions. It unwraps to the first failure
// so the exit code reflects it.
type batchError struct {
	failed int
	total  int
	first  error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d of %d conversion(s) failed", e.failed, e.total)
}

func (e *batchError) Unwrap() error { return e.first }

// isHelp reports whether parsing stopped on -h/--help.
func isHelp(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
