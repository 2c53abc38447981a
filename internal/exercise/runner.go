package exercise

import (
	"context"
	"errors"
	"fmt"
	"time"

	"growingcode/internal/store"

	"go.uber.org/zap"
)

// Recorder persists run outcomes. *store.HistoryStore satisfies it.
type Recorder interface {
	Record(ctx context.Context, r store.Run) (store.Run, error)
}

// Result is the outcome of one exercise run.
type Result struct {
	Exercise string
	Err      error
	Duration time.Duration
}

// Passed reports whether the exercise ran without error.
func (r Result) Passed() bool { return r.Err == nil }

// Runner invokes exercises and prints diagnostics when they fail.
type Runner struct {
	registry *Registry
	env      *Env
	painter  Painter
	history  Recorder
	logger   *zap.Logger
	now      func() time.Time
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithPainter decorates headers and diagnostics.
func WithPainter(p Painter) RunnerOption {
	return func(r *Runner) { r.painter = p }
}

// WithHistory records every result.
func WithHistory(h Recorder) RunnerOption {
	return func(r *Runner) { r.history = h }
}

// WithLogger sets the runner logger.
func WithLogger(l *zap.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// NewRunner returns a runner over registry using env for exercise I/O.
func NewRunner(registry *Registry, env *Env, opts ...RunnerOption) *Runner {
	r := &Runner{
		registry: registry,
		env:      env,
		painter:  PlainPainter(),
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunExercise runs one exercise by name. Failures are printed, recorded,
// and returned in the Result; they never escape as panics.
func (r *Runner) RunExercise(ctx context.Context, name string) Result {
	out := r.env.Out
	fmt.Fprintf(out, "\n%s\n", r.painter.Header(fmt.Sprintf("=== Testing %s ===", name)))

	start := r.now()
	err := r.invoke(ctx, name)
	res := Result{Exercise: name, Err: err, Duration: r.now().Sub(start)}

	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		fmt.Fprintln(out, r.painter.Failure(fmt.Sprintf("❌ Could not find %s", name)))
		fmt.Fprintln(out, r.painter.Hint("   Make sure the exercise exists and is registered with the runner"))
	case errors.Is(err, ErrNoFunction):
		fmt.Fprintln(out, r.painter.Failure(fmt.Sprintf("❌ Could not find function %s() in your exercise", name)))
		fmt.Fprintln(out, r.painter.Hint(fmt.Sprintf("   Make sure you have: func %s(ctx context.Context, env *exercise.Env) error", name)))
	default:
		fmt.Fprintln(out, r.painter.Failure(fmt.Sprintf("❌ Error running your function: %v", err)))
		fmt.Fprintln(out, r.painter.Hint("   Check your code for mistakes"))
	}

	r.record(ctx, res, start)
	return res
}

func (r *Runner) invoke(ctx context.Context, name string) (err error) {
	ex, err := r.registry.Lookup(name)
	if err != nil {
		return err
	}
	if ex.Run == nil {
		return fmt.Errorf("%w: %s", ErrNoFunction, name)
	}

	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("exercise panicked", zap.String("exercise", name), zap.Any("panic", p))
			err = fmt.Errorf("panic: %v", p)
		}
	}()

	r.logger.Debug("running exercise", zap.String("exercise", name))
	return ex.Run(ctx, r.env)
}

func (r *Runner) record(ctx context.Context, res Result, start time.Time) {
	if r.history == nil {
		return
	}
	run := store.Run{
		Exercise:  res.Exercise,
		Status:    store.StatusPassed,
		StartedAt: start,
		Duration:  res.Duration,
	}
	if res.Err != nil {
		run.Status = store.StatusFailed
		run.Message = res.Err.Error()
	}
	// History is best effort; a broken database must not fail the exercise.
	if _, err := r.history.Record(context.WithoutCancel(ctx), run); err != nil {
		r.logger.Warn("failed to record run", zap.String("exercise", res.Exercise), zap.Error(err))
	}
}

// RunEntry runs the exercises of a menu entry in order.
// Entries with ActionAll run every registered exercise.
func (r *Runner) RunEntry(ctx context.Context, entry MenuEntry) []Result {
	names := entry.Exercises
	if entry.Action == ActionAll {
		names = r.registry.Names()
	}
	return r.runNames(ctx, names)
}

// RunAll runs every registered exercise in registration order.
func (r *Runner) RunAll(ctx context.Context) []Result {
	return r.runNames(ctx, r.registry.Names())
}

func (r *Runner) runNames(ctx context.Context, names []string) []Result {
	results := make([]Result, 0, len(names))
	for _, name := range names {
		if ctx.Err() != nil {
			break
		}
		results = append(results, r.RunExercise(ctx, name))
	}
	return results
}

// Failed counts the failing results.
func Failed(results []Result) int {
	n := 0
	for _, res := range results {
		if !res.Passed() {
			n++
		}
	}
	return n
}
