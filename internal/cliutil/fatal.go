// Package cliutil provides the process-exit helpers shared by the
// polyfuse command-line tool. Every fatal condition in this codebase
// funnels through here: there is no recovery path between main and the
// fusion engine, so these helpers are the only place that ever calls
// os.Exit outside of main itself.
package cliutil

import (
	"fmt"
	"os"
)

// Fatalf prints a formatted error message to stderr and exits with
// status 1. Use for usage errors, format errors, and invariant
// violations -- anything that isn't wrapping an underlying error value.
func Fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}

// FatalErr prints context plus an underlying error to stderr and exits
// with status 1. Use for I/O and allocation failures.
func FatalErr(context string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", context, err)
	os.Exit(1)
}
