package check

import (
	"errors"
	"math"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/tally/pkg/diag"
)

// failure runs fn and returns the Failure it panicked with, or nil.
func failure(t *testing.T, fn func()) (f *diag.Failure) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		var ok bool
		f, ok = r.(*diag.Failure)
		require.Truef(t, ok, "panic value %T is not *diag.Failure", r)
	}()
	fn()
	return nil
}

func TestTrueFalse(t *testing.T) {
	assert.Nil(t, failure(t, func() { True(1 == 1, "1 == 1") }))
	assert.Nil(t, failure(t, func() { False(1 == 2, "1 == 2") }))

	f := failure(t, func() { True(false, "len(xs) > 0") })
	require.NotNil(t, f)
	assert.Equal(t, `Expected TRUE, but was FALSE: "len(xs) > 0"`, f.Reason())

	f = failure(t, func() { False(true, "done") })
	require.NotNil(t, f)
	assert.Equal(t, `Expected FALSE, but was TRUE: "done"`, f.Reason())
}

func TestEqual(t *testing.T) {
	assert.Nil(t, failure(t, func() { Equal(2, 2, "2", "2") }))
	assert.Nil(t, failure(t, func() { Equal("a", "a", `"a"`, `"a"`) }))

	f := failure(t, func() { Equal(2, 3, "two", "three") })
	require.NotNil(t, f)
	assert.Equal(t, "Expected EQUAL, but was NOT EQUAL: [two] and [three]", f.Reason())
	assert.Contains(t, f.Reason(), "NOT EQUAL")
}

func TestUnequal(t *testing.T) {
	assert.Nil(t, failure(t, func() { Unequal(2, 3, "2", "3") }))

	f := failure(t, func() { Unequal(4, 4, "x", "y") })
	require.NotNil(t, f)
	assert.Equal(t, "Expected UNEQUAL, but was NOT UNEQUAL: [x] and [y]", f.Reason())
}

func TestEqual_UsesEqualMethod(t *testing.T) {
	utc := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	local := utc.In(time.FixedZone("X", 3600))
	require.False(t, utc == local)

	assert.Nil(t, failure(t, func() { Equal(utc, local, "utc", "local") }))
	assert.NotNil(t, failure(t, func() { Unequal(utc, local, "utc", "local") }))
}

func TestAlmostEqual(t *testing.T) {
	assert.Nil(t, failure(t, func() { AlmostEqual(1.00005, 1.0, "1.00005", "1.0") }))
	assert.Nil(t, failure(t, func() { AlmostEqual(-2.5, -2.50001, "a", "b") }))

	f := failure(t, func() { AlmostEqual(1.001, 1.0, "1.001", "1.0") })
	require.NotNil(t, f)
	assert.Equal(t, "Expected EQUAL, but was NOT EQUAL: [1.001] and [1.0]", f.Reason())

	assert.NotNil(t, failure(t, func() { AlmostEqual(math.NaN(), math.NaN(), "nan", "nan") }))
}

func TestFails(t *testing.T) {
	boom := errors.New("boom")

	assert.Nil(t, failure(t, func() { Fails(func() error { return boom }, "open()") }))
	assert.Nil(t, failure(t, func() { Fails(func() error { panic(boom) }, "open()") }))
	assert.Nil(t, failure(t, func() {
		Fails(func() error {
			var m map[string]int
			m["x"] = 1
			return nil
		}, "write to nil map")
	}))

	f := failure(t, func() { Fails(func() error { return nil }, "noop()") })
	require.NotNil(t, f)
	assert.Equal(t, `Expected EXCEPTION, but got NO EXCEPTION: "noop()"`, f.Reason())
}

func TestSucceeds(t *testing.T) {
	assert.Nil(t, failure(t, func() { Succeeds(func() error { return nil }, "noop()") }))

	f := failure(t, func() { Succeeds(func() error { return errors.New("x") }, "parse()") })
	require.NotNil(t, f)
	assert.Equal(t, `Expected NO EXCEPTION, but got EXCEPTION: "parse()"`, f.Reason())

	f = failure(t, func() { Succeeds(func() error { panic(errors.New("x")) }, "parse()") })
	require.NotNil(t, f)
	assert.Equal(t, `Expected NO EXCEPTION, but got EXCEPTION: "parse()"`, f.Reason())
}

func TestFailsAndSucceeds_LetUnknownFaultsThrough(t *testing.T) {
	assert.PanicsWithValue(t, 42, func() { Fails(func() error { panic(42) }, "f()") })
	assert.PanicsWithValue(t, "odd", func() { Succeeds(func() error { panic("odd") }, "f()") })
}

func TestFailsAndSucceeds_LetNestedFailuresThrough(t *testing.T) {
	f := failure(t, func() {
		Fails(func() error {
			True(false, "inner")
			return nil
		}, "outer")
	})
	require.NotNil(t, f)
	assert.Equal(t, `Expected TRUE, but was FALSE: "inner"`, f.Reason())

	f = failure(t, func() {
		Succeeds(func() error { return diag.New("returned", 1) }, "outer")
	})
	require.NotNil(t, f)
	assert.Equal(t, "returned", f.Reason())
}

func TestFails_CallsOnce(t *testing.T) {
	calls := 0
	Fails(func() error {
		calls++
		return errors.New("x")
	}, "count")
	assert.Equal(t, 1, calls)
}

func TestFail(t *testing.T) {
	f := failure(t, func() { Fail("unreachable") })
	require.NotNil(t, f)
	assert.Equal(t, "unreachable", f.Reason())
}

func TestLocation_IsCallSite(t *testing.T) {
	_, _, line, _ := runtime.Caller(0)
	f := failure(t, func() { True(false, "x") })
	require.NotNil(t, f)
	assert.Equal(t, line+1, f.Line())
	assert.Equal(t, "check_test.go", f.File())
}
