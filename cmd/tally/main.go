// tally runs its own self-check suite through the harness it implements.
//
// Usage:
//
//	tally                       # run everything
//	tally --run 'check_*'       # run a subset
//	tally --exit-on-failure     # exit 1 if anything did not pass
//	tally list                  # print test names in run order
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dkoosis/tally/internal/cli"
	"github.com/dkoosis/tally/internal/selftest"
	"github.com/dkoosis/tally/pkg/catalog"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cat := catalog.New()
	if err := selftest.Register(cat); err != nil {
		fmt.Fprintf(stderr, "tally: %v\n", err)
		return cli.ExitUsage
	}
	return cli.Execute(args, cat, stdout, stderr)
}
