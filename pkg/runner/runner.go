// Package runner executes catalog entries one at a time, classifies each
// outcome and writes the line-oriented report.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dkoosis/tally/pkg/catalog"
	"github.com/dkoosis/tally/pkg/diag"
	"github.com/dkoosis/tally/pkg/style"
)

// UnknownFaultMessage is reported for faults that carry no usable detail.
const UnknownFaultMessage = "Totally unknown error was thrown!"

// ErrDeadline is reported when a body outlives the per-test timeout.
var ErrDeadline = errors.New("test exceeded deadline")

// Runner runs tests sequentially and reports on them.
type Runner struct {
	out     io.Writer
	styler  style.Styler
	log     *zap.Logger
	timeout time.Duration
}

// Option configures a Runner.
type Option func(*Runner)

// WithStyler sets the styling used for outcome labels and failure lines.
func WithStyler(s style.Styler) Option {
	return func(r *Runner) { r.styler = s }
}

// WithLogger sets the debug logger. The report itself never goes there.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// WithTimeout bounds each test body. Zero disables the deadline.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) { r.timeout = d }
}

// New returns a Runner that writes its report to out. Styling is on by
// default.
func New(out io.Writer, opts ...Option) *Runner {
	r := &Runner{
		out:    out,
		styler: style.Styler{Enabled: true},
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunCatalog seals c and runs all of its entries.
func (r *Runner) RunCatalog(ctx context.Context, c *catalog.Catalog) Summary {
	c.Seal()
	return r.Run(ctx, c.All())
}

// Run executes entries in the order given and writes the report. It always
// runs to the end; individual failures only show up in the Summary.
func (r *Runner) Run(ctx context.Context, entries []catalog.Entry) Summary {
	sum := Summary{
		RunID:   uuid.NewString(),
		Total:   len(entries),
		Results: make([]Result, 0, len(entries)),
	}
	log := r.log.With(zap.String("run_id", sum.RunID))
	log.Debug("run started", zap.Int("tests", len(entries)), zap.Duration("timeout", r.timeout))

	rep := newReporter(r.out, r.styler)
	for _, e := range entries {
		rep.Start(e.Name)
		res := r.runOne(ctx, e)
		rep.Outcome(res.Outcome)

		sum.Results = append(sum.Results, res)
		if res.Outcome != Pass {
			sum.Failures = append(sum.Failures, res)
		}
		log.Debug("test finished",
			zap.String("test", res.Name),
			zap.Stringer("outcome", res.Outcome),
			zap.Duration("duration", res.Duration))
	}

	rep.Failures(sum.Failures)
	rep.Total(sum.Passed(), sum.Total)

	log.Debug("run finished", zap.Int("passed", sum.Passed()), zap.Int("total", sum.Total))
	return sum
}

func (r *Runner) runOne(ctx context.Context, e catalog.Entry) Result {
	res := Result{Name: e.Name}
	if err := ctx.Err(); err != nil {
		res.Outcome, res.Message = Exception, unexpected(err)
		return res
	}

	start := time.Now()
	v := r.invoke(ctx, e.Body)
	res.Duration = time.Since(start)
	res.Outcome, res.Message = r.describe(v)
	return res
}

// describe classifies v. Building the message calls into the body's error
// value, so a fault there is contained like any other fault of the test.
func (r *Runner) describe(v verdict) (o Outcome, msg string) {
	defer func() {
		if recover() != nil {
			o, msg = UnknownFault, UnknownFaultMessage
		}
	}()
	return r.classify(v)
}

// verdict is what came out of a body: an error (possibly nil), or an
// opaque fault.
type verdict struct {
	err   error
	fault bool
}

// invoke calls body on its own goroutine so that panics, runtime.Goexit
// and deadlines all end up as a verdict instead of taking down the run.
func (r *Runner) invoke(ctx context.Context, body catalog.Body) verdict {
	testCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		testCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	done := make(chan verdict, 1)
	go func() {
		returned := false
		defer func() {
			if !returned {
				done <- recovered(recover())
			}
		}()
		err := body()
		returned = true
		done <- verdict{err: err}
	}()

	select {
	case v := <-done:
		return v
	case <-testCtx.Done():
		if ctx.Err() == nil {
			return verdict{err: fmt.Errorf("%w of %s", ErrDeadline, r.timeout)}
		}
		return verdict{err: ctx.Err()}
	}
}

// recovered turns a recover() value into a verdict. A nil value means the
// goroutine is exiting through runtime.Goexit, since panic(nil) recovers
// as *runtime.PanicNilError.
func recovered(p any) verdict {
	if err, ok := p.(error); ok {
		return verdict{err: err}
	}
	return verdict{fault: true}
}

func (r *Runner) classify(v verdict) (Outcome, string) {
	if v.fault {
		return UnknownFault, UnknownFaultMessage
	}
	if v.err == nil {
		return Pass, ""
	}
	var f *diag.Failure
	if errors.As(v.err, &f) {
		return Fail, f.Render(r.styler)
	}
	return Exception, unexpected(v.err)
}

func unexpected(err error) string {
	return "Unexpected exception: " + err.Error()
}
