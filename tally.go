// Package tally is a small in-process test harness.
//
// Tests are declared from init functions and run by Main:
//
//	func init() {
//		tally.Test("parse_int", func() error {
//			n, err := strconv.Atoi("42")
//			check.Equal(err, nil, "err", "nil")
//			check.Equal(n, 42, "n", "42")
//			return nil
//		})
//	}
//
//	func main() { tally.Main() }
//
// Tests run one at a time in name order. Each ends as PASS, FAIL (a check
// failed), EXCEPTION (the body returned or panicked with an error) or
// UNKNOWN EXCEPTION (any other panic), and the run finishes with a
// "Total passed: [n / total]" line.
package tally

import (
	"context"
	"io"
	"os"

	"github.com/dkoosis/tally/internal/cli"
	"github.com/dkoosis/tally/pkg/catalog"
	"github.com/dkoosis/tally/pkg/runner"
)

// Test registers body under name in the process-wide catalog. It panics
// on an empty or duplicate name.
func Test(name string, body catalog.Body) {
	catalog.Register(name, body)
}

// Main runs every registered test, prints the report to stdout and exits.
// The exit status is 0 unless --exit-on-failure (or its config and
// environment equivalents) is set and a test did not pass, or the command
// line is invalid.
func Main() {
	os.Exit(cli.Execute(os.Args[1:], catalog.Default, os.Stdout, os.Stderr))
}

// Run runs every registered test with the given options and writes the
// report to w. The catalog is sealed first.
func Run(ctx context.Context, w io.Writer, opts ...runner.Option) runner.Summary {
	return runner.New(w, opts...).RunCatalog(ctx, catalog.Default)
}
