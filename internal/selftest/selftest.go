// Package selftest is tally's own suite, written with tally. cmd/tally
// runs it.
package selftest

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"github.com/dkoosis/tally/pkg/catalog"
	"github.com/dkoosis/tally/pkg/check"
	"github.com/dkoosis/tally/pkg/diag"
	"github.com/dkoosis/tally/pkg/runner"
	"github.com/dkoosis/tally/pkg/style"
)

var suite = map[string]catalog.Body{
	"catalog_orders_by_name":     catalogOrdersByName,
	"catalog_rejects_duplicates": catalogRejectsDuplicates,
	"check_almost_equal":         checkAlmostEqual,
	"check_equal_and_unequal":    checkEqualAndUnequal,
	"check_fails_and_succeeds":   checkFailsAndSucceeds,
	"check_failure_messages":     checkFailureMessages,
	"check_true_and_false":       checkTrueAndFalse,
	"diag_render":                diagRender,
	"runner_reports_scenario":    runnerReportsScenario,
	"runner_survives_odd_panics": runnerSurvivesOddPanics,
	"style_sequences":            styleSequences,
}

// Register adds the suite to c.
func Register(c *catalog.Catalog) error {
	for name, body := range suite {
		if err := c.Add(name, body); err != nil {
			return err
		}
	}
	return nil
}

// caught runs fn and returns the Failure a check raised inside it.
func caught(fn func()) (f *diag.Failure) {
	defer func() {
		if r := recover(); r != nil {
			f, _ = r.(*diag.Failure)
		}
	}()
	fn()
	return nil
}

func styleSequences() error {
	check.Equal(style.Sequence(style.Red, style.Bold), "\x1b[31;1m", "Sequence(Red, Bold)", `"\x1b[31;1m"`)
	check.Equal(style.Green.String(), "\x1b[32m", "Green.String()", `"\x1b[32m"`)
	check.Equal(style.Styler{}.Wrap("x", style.Bold), "x", "disabled Wrap", `"x"`)
	return nil
}

func diagRender() error {
	f := diag.New("boom", 7)
	check.Equal(f.Render(style.Styler{Enabled: true}), "Line \x1b[1m7\x1b[0m: boom", "Render", "bold line")
	check.Equal(f.Error(), "Line 7: boom", "Error()", `"Line 7: boom"`)
	return nil
}

func checkTrueAndFalse() error {
	check.True(caught(func() { check.True(true, "true") }) == nil, "True(true) passes")
	check.True(caught(func() { check.False(false, "false") }) == nil, "False(false) passes")
	check.True(caught(func() { check.True(false, "x") }) != nil, "True(false) fails")
	check.True(caught(func() { check.False(true, "x") }) != nil, "False(true) fails")
	return nil
}

func checkEqualAndUnequal() error {
	check.True(caught(func() { check.Equal(2, 2, "2", "2") }) == nil, "Equal(2, 2) passes")
	check.True(caught(func() { check.Unequal("a", "b", "a", "b") }) == nil, "Unequal(a, b) passes")

	f := caught(func() { check.Equal(2, 3, "2", "3") })
	check.True(f != nil, "Equal(2, 3) fails")
	check.True(strings.Contains(f.Reason(), "NOT EQUAL"), "message says NOT EQUAL")
	check.True(strings.Contains(f.Reason(), "[2] and [3]"), "message echoes operands")
	return nil
}

func checkAlmostEqual() error {
	check.True(caught(func() { check.AlmostEqual(1.00005, 1.0, "1.00005", "1.0") }) == nil, "within tolerance")
	check.True(caught(func() { check.AlmostEqual(1.001, 1.0, "1.001", "1.0") }) != nil, "outside tolerance")
	return nil
}

func checkFailsAndSucceeds() error {
	boom := func() error { return errors.New("boom") }
	fine := func() error { return nil }

	check.Fails(boom, "boom()")
	check.Succeeds(fine, "fine()")
	check.True(caught(func() { check.Fails(fine, "fine()") }) != nil, "Fails(fine) fails")
	check.True(caught(func() { check.Succeeds(boom, "boom()") }) != nil, "Succeeds(boom) fails")
	return nil
}

func checkFailureMessages() error {
	tests := []struct {
		fn   func()
		want string
	}{
		{func() { check.True(false, "ok") }, `Expected TRUE, but was FALSE: "ok"`},
		{func() { check.False(true, "ok") }, `Expected FALSE, but was TRUE: "ok"`},
		{func() { check.Equal(1, 2, "a", "b") }, "Expected EQUAL, but was NOT EQUAL: [a] and [b]"},
		{func() { check.Unequal(1, 1, "a", "b") }, "Expected UNEQUAL, but was NOT UNEQUAL: [a] and [b]"},
		{func() { check.Fails(func() error { return nil }, "f()") }, `Expected EXCEPTION, but got NO EXCEPTION: "f()"`},
		{func() { check.Succeeds(func() error { return errors.New("e") }, "f()") }, `Expected NO EXCEPTION, but got EXCEPTION: "f()"`},
	}
	for _, tt := range tests {
		f := caught(tt.fn)
		check.True(f != nil, tt.want)
		check.Equal(f.Reason(), tt.want, "reason", tt.want)
	}
	return nil
}

func catalogOrdersByName() error {
	c := catalog.New()
	for _, n := range []string{"b", "c", "a"} {
		check.Succeeds(func() error { return c.Add(n, func() error { return nil }) }, "Add("+n+")")
	}
	all := c.All()
	check.Equal(len(all), 3, "len(all)", "3")
	check.Equal(all[0].Name+all[1].Name+all[2].Name, "abc", "names", `"abc"`)
	return nil
}

func catalogRejectsDuplicates() error {
	c := catalog.New()
	body := func() error { return nil }
	check.Succeeds(func() error { return c.Add("x", body) }, `Add("x")`)
	check.Fails(func() error { return c.Add("x", body) }, `Add("x") again`)
	check.Equal(c.Len(), 1, "c.Len()", "1")
	return nil
}

func runnerReportsScenario() error {
	c := catalog.New()
	check.Succeeds(func() error {
		return c.Add("test_a", func() error { check.Equal(1, 1, "1", "1"); return nil })
	}, `Add("test_a")`)
	check.Succeeds(func() error {
		return c.Add("test_b", func() error { check.Equal(1, 2, "1", "2"); return nil })
	}, `Add("test_b")`)
	check.Succeeds(func() error {
		return c.Add("test_c", func() error { panic(struct{}{}) })
	}, `Add("test_c")`)

	var buf bytes.Buffer
	sum := runner.New(&buf, runner.WithStyler(style.Styler{})).RunCatalog(context.Background(), c)

	check.Equal(sum.Total, 3, "sum.Total", "3")
	check.Equal(sum.Passed(), 1, "sum.Passed()", "1")
	check.Equal(len(sum.Failures), 2, "len(sum.Failures)", "2")
	check.Equal(sum.Failures[0].Outcome, runner.Fail, "test_b outcome", "Fail")
	check.Equal(sum.Failures[1].Outcome, runner.UnknownFault, "test_c outcome", "UnknownFault")

	out := buf.String()
	check.True(strings.Contains(out, "- - - Failures - - -"), "banner printed")
	check.True(strings.Contains(out, " -> [test_c] "+runner.UnknownFaultMessage), "fault listed")
	check.True(strings.HasSuffix(out, "\nTotal passed: [1 / 3]\n"), "tally printed last")
	return nil
}

func runnerSurvivesOddPanics() error {
	entries := []catalog.Entry{
		{Name: "int", Body: func() error { panic(1) }},
		{Name: "nil", Body: func() error { panic(nil) }},
		{Name: "ok", Body: func() error { return nil }},
	}
	var buf bytes.Buffer
	sum := runner.New(&buf).Run(context.Background(), entries)

	check.Equal(sum.Results[0].Outcome, runner.UnknownFault, "panic(1)", "UnknownFault")
	check.Equal(sum.Results[1].Outcome, runner.Exception, "panic(nil)", "Exception")
	check.Equal(sum.Results[2].Outcome, runner.Pass, "ok", "Pass")
	return nil
}
