package runner

import (
	"fmt"
	"io"

	"github.com/dkoosis/tally/pkg/style"
)

// reporter is the single point of report output. Nothing else in a run
// writes to out.
type reporter struct {
	out io.Writer
	s   style.Styler
}

func newReporter(out io.Writer, s style.Styler) *reporter {
	return &reporter{out: out, s: s}
}

// Start writes the progress prefix for a test, without a newline.
func (w *reporter) Start(name string) {
	fmt.Fprintf(w.out, "Running test \"%s\" . . . ", name)
}

// Outcome finishes the line opened by Start. The reset goes before the
// newline so a styled label never bleeds into the next line.
func (w *reporter) Outcome(o Outcome) {
	text, codes := o.label()
	fmt.Fprintln(w.out, w.s.Wrap(text, codes...))
}

// Failures writes the failure trail. No-op when nothing failed.
func (w *reporter) Failures(failures []Result) {
	if len(failures) == 0 {
		return
	}
	fmt.Fprintln(w.out, "- - - Failures - - -")
	for _, f := range failures {
		fmt.Fprintf(w.out, " -> [%s] %s\n", f.Name, f.Message)
	}
}

// Total writes the blank separator line and the pass tally.
func (w *reporter) Total(passed, total int) {
	fmt.Fprintln(w.out)
	fmt.Fprintf(w.out, "Total passed: [%d / %d]\n", passed, total)
}
