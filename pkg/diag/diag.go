// Package diag defines the failure value raised by a failed check.
package diag

import (
	"fmt"
	"strconv"

	"github.com/dkoosis/tally/pkg/style"
)

// Failure is a diagnostic error: a human-readable reason tagged with the
// source location of the check that produced it.
type Failure struct {
	reason string
	file   string
	line   int
}

// New returns a Failure for reason at line.
func New(reason string, line int) *Failure {
	return &Failure{reason: reason, line: line}
}

// At returns a Failure for reason at file:line.
func At(reason, file string, line int) *Failure {
	return &Failure{reason: reason, file: file, line: line}
}

// Reason returns the failure text without location.
func (f *Failure) Reason() string {
	if f == nil {
		return ""
	}
	return f.reason
}

// Line returns the call-site line.
func (f *Failure) Line() int {
	if f == nil {
		return 0
	}
	return f.line
}

// File returns the call-site file, or "" when unknown.
func (f *Failure) File() string {
	if f == nil {
		return ""
	}
	return f.file
}

// Render formats the failure as "Line <line>: <reason>" with the line
// number in bold.
func (f *Failure) Render(s style.Styler) string {
	if f == nil {
		return "Line " + s.Wrap("0", style.Bold) + ": "
	}
	return "Line " + s.Wrap(strconv.Itoa(f.line), style.Bold) + ": " + f.reason
}

// Error implements error. The text matches Render without styling.
func (f *Failure) Error() string {
	if f == nil {
		return "Line 0: "
	}
	return fmt.Sprintf("Line %d: %s", f.line, f.reason)
}
