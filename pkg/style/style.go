// Package style maps named terminal style tokens to ANSI SGR escape sequences.
package style

import (
	"github.com/charmbracelet/x/ansi"
)

// Code is a single SGR style token.
type Code int

// The closed set of tokens the report uses.
const (
	None   Code = 0
	Bold   Code = 1
	Red    Code = 31
	Green  Code = 32
	Yellow Code = 33
)

// Sequence returns the escape sequence activating all codes in order,
// e.g. Sequence(Red, Bold) == "\x1b[31;1m".
// Calling it with no codes is a programming error and panics.
func Sequence(codes ...Code) string {
	if len(codes) == 0 {
		panic("style: Sequence called with no codes")
	}
	attrs := make([]ansi.Attr, len(codes))
	for i, c := range codes {
		attrs[i] = ansi.Attr(c)
	}
	return ansi.SGR(attrs...)
}

// String returns the escape sequence for c alone.
func (c Code) String() string {
	return Sequence(c)
}

// Styler emits escape sequences only when Enabled is set, so the same
// report code serves terminals and plain log files.
type Styler struct {
	Enabled bool
}

// Seq returns Sequence(codes...) or "" when styling is disabled.
func (s Styler) Seq(codes ...Code) string {
	if len(codes) == 0 {
		panic("style: Seq called with no codes")
	}
	if !s.Enabled {
		return ""
	}
	return Sequence(codes...)
}

// Wrap styles text with codes and resets to the default style afterwards.
func (s Styler) Wrap(text string, codes ...Code) string {
	if len(codes) == 0 {
		panic("style: Wrap called with no codes")
	}
	if !s.Enabled {
		return text
	}
	return Sequence(codes...) + text + Sequence(None)
}
