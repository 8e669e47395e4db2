// Package check is the assertion vocabulary used inside test bodies.
//
// A failing check panics with a *diag.Failure carrying the call-site line.
// The runner recovers it and reports the test as FAIL, so a body stops at
// the first failed check:
//
//	tally.Test("sum", func() error {
//		check.Equal(sum(2, 2), 4, "sum(2, 2)", "4")
//		return nil
//	})
//
// Go has no way to capture the source text of an argument, so every check
// takes the expression text explicitly. It is only echoed in the message.
package check

import (
	"errors"
	"math"
	"path/filepath"
	"runtime"

	"github.com/dkoosis/tally/pkg/diag"
)

// Tolerance is the absolute difference under which AlmostEqual treats two
// floats as equal.
const Tolerance = 0.0001

// True fails unless cond holds.
func True(cond bool, expr string) {
	if !cond {
		raise(`Expected TRUE, but was FALSE: "` + expr + `"`)
	}
}

// False fails if cond holds.
func False(cond bool, expr string) {
	if cond {
		raise(`Expected FALSE, but was TRUE: "` + expr + `"`)
	}
}

// Equal fails unless a equals b. Types with an Equal(T) bool method
// (time.Time, for one) are compared with it; everything else uses ==.
func Equal[T comparable](a, b T, aText, bText string) {
	if !equal(a, b) {
		raise("Expected EQUAL, but was NOT EQUAL: [" + aText + "] and [" + bText + "]")
	}
}

// Unequal fails if a equals b, using the same comparison as Equal.
func Unequal[T comparable](a, b T, aText, bText string) {
	if equal(a, b) {
		raise("Expected UNEQUAL, but was NOT UNEQUAL: [" + aText + "] and [" + bText + "]")
	}
}

// AlmostEqual fails unless |a-b| < Tolerance. NaN never compares equal.
func AlmostEqual(a, b float64, aText, bText string) {
	if !(math.Abs(a-b) < Tolerance) {
		raise("Expected EQUAL, but was NOT EQUAL: [" + aText + "] and [" + bText + "]")
	}
}

// Fails calls call once and fails unless it raised a recoverable error.
func Fails(call func() error, text string) {
	if !raises(call) {
		raise(`Expected EXCEPTION, but got NO EXCEPTION: "` + text + `"`)
	}
}

// Succeeds calls call once and fails if it raised a recoverable error.
func Succeeds(call func() error, text string) {
	if raises(call) {
		raise(`Expected NO EXCEPTION, but got EXCEPTION: "` + text + `"`)
	}
}

// Fail fails unconditionally with reason.
func Fail(reason string) {
	raise(reason)
}

type equaler[T any] interface {
	Equal(T) bool
}

func equal[T comparable](a, b T) bool {
	if eq, ok := any(a).(equaler[T]); ok {
		return eq.Equal(b)
	}
	return a == b
}

// raises reports whether call returned a non-nil error or panicked with an
// error value. Failures from nested checks and non-error panics are not
// recoverable errors and keep unwinding.
func raises(call func() error) (raised bool) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if err, ok := r.(error); ok && !isFailure(err) {
			raised = true
			return
		}
		panic(r)
	}()
	err := call()
	if err != nil && isFailure(err) {
		panic(err)
	}
	return err != nil
}

func isFailure(err error) bool {
	var f *diag.Failure
	return errors.As(err, &f)
}

// raise panics with a Failure located at the caller of the exported check.
func raise(reason string) {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		panic(diag.New(reason, 0))
	}
	panic(diag.At(reason, filepath.Base(file), line))
}
