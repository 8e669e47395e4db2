package runner

import (
	"time"

	"github.com/dkoosis/tally/pkg/style"
)

// Outcome classifies how a test body ended.
type Outcome int

const (
	// Pass: the body returned nil.
	Pass Outcome = iota
	// Fail: a check failed (a *diag.Failure was raised or returned).
	Fail
	// Exception: the body returned or panicked with any other error.
	Exception
	// UnknownFault: the body panicked with a non-error value or called
	// runtime.Goexit.
	UnknownFault
)

func (o Outcome) String() string {
	switch o {
	case Pass:
		return "pass"
	case Fail:
		return "fail"
	case Exception:
		return "exception"
	case UnknownFault:
		return "unknown"
	default:
		return "invalid"
	}
}

// label returns the report text and styling for o.
func (o Outcome) label() (string, []style.Code) {
	switch o {
	case Pass:
		return "PASS", []style.Code{style.Green}
	case Fail:
		return "FAIL", []style.Code{style.Red}
	case Exception:
		return "EXCEPTION", []style.Code{style.Yellow}
	default:
		return "UNKNOWN EXCEPTION", []style.Code{style.Red, style.Bold}
	}
}

// Result is the outcome of one test.
type Result struct {
	Name     string
	Outcome  Outcome
	Message  string // empty for Pass
	Duration time.Duration
}

// Summary is the outcome of a whole run.
type Summary struct {
	RunID    string
	Total    int
	Results  []Result // every test, in run order
	Failures []Result // non-passing tests, in run order
}

// Passed returns the number of passing tests.
func (s Summary) Passed() int {
	return s.Total - len(s.Failures)
}

// OK reports whether every test passed.
func (s Summary) OK() bool {
	return len(s.Failures) == 0
}

// ExitCode returns the process status for the run. Failures only change
// the status when exitOnFailure is set.
func (s Summary) ExitCode(exitOnFailure bool) int {
	if exitOnFailure && !s.OK() {
		return 1
	}
	return 0
}
