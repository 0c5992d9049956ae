// Package runner walks a test tree with hierarchical fallback.
//
// Every Group is first run as a single editor invocation. Only when that
// invocation fails does the runner descend to the Group's Suites, and only
// a failed Suite descends to its Cases. A failed Case is final and is
// recorded in the summary's failedTestset. Invocations are strictly
// sequential.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	uerrors "github.com/AndreyAkinshin/uetest/internal/errors"
	"github.com/AndreyAkinshin/uetest/internal/output"
	"github.com/AndreyAkinshin/uetest/internal/testset"
)

// Executor performs one invocation for an identifier at any level.
type Executor interface {
	Execute(ctx context.Context, id testset.ID) Outcome
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(ctx context.Context, id testset.ID) Outcome

// Execute calls f.
func (f ExecutorFunc) Execute(ctx context.Context, id testset.ID) Outcome {
	return f(ctx, id)
}

// Observer is notified after every ledger entry is recorded.
type Observer interface {
	Observe(e Entry)
}

// Runner executes a tree against an Executor.
type Runner struct {
	exec     Executor
	observer Observer
	tracer   trace.Tracer
	logger   *slog.Logger
	out      *output.Writer
	now      func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithObserver registers an observer for ledger entries.
func WithObserver(o Observer) Option {
	return func(r *Runner) { r.observer = o }
}

// WithTracer sets the tracer used for invocation spans.
func WithTracer(t trace.Tracer) Option {
	return func(r *Runner) { r.tracer = t }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithOutput sets the writer for progress lines.
func WithOutput(w *output.Writer) Option {
	return func(r *Runner) { r.out = w }
}

// WithClock overrides time.Now for duration measurement.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// New creates a Runner.
func New(exec Executor, opts ...Option) *Runner {
	r := &Runner{
		exec:   exec,
		tracer: otel.Tracer("uetest runner"),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		out:    output.NewWithWriters(io.Discard, io.Discard, false),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run processes every Group of tree in order, recording into acc.
// Invocation failures are absorbed into acc; the only error returned is
// the context's, when the run is canceled.
func (r *Runner) Run(ctx context.Context, tree *testset.Tree, acc *Accumulator) error {
	ctx, span := r.tracer.Start(ctx, "run", trace.WithAttributes(
		attribute.Int("uetest.groups", len(tree.Groups())),
		attribute.Int("uetest.cases", tree.Len()),
	))
	defer span.End()

	for _, group := range tree.Groups() {
		if err := r.visit(ctx, group, acc); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}

	span.SetAttributes(attribute.Int("uetest.invocations", acc.Ledger.Len()))
	return nil
}

// visit runs node and, if it fails, its fallback.
func (r *Runner) visit(ctx context.Context, node *testset.Node, acc *Accumulator) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	id := node.ID()
	level := node.Level().String()

	ctx, span := r.tracer.Start(ctx, fmt.Sprintf("%s %s", level, id), trace.WithAttributes(
		attribute.String("uetest.id", id),
		attribute.String("uetest.level", level),
	))
	defer span.End()

	r.out.InvocationStart(level, id)
	r.logger.Debug("invocation started", "id", id, "level", level)

	start := r.now()
	outcome := r.exec.Execute(ctx, id)
	elapsed := r.now().Sub(start)

	entry := Entry{
		ID:         id,
		Level:      level,
		DurationMs: elapsed.Milliseconds(),
	}

	if !outcome.Succeeded() && ctx.Err() != nil {
		entry.Status = StatusFailed
		entry.Kind = KindCanceled
		entry.Message = ctx.Err().Error()
		r.record(acc, entry)
		span.SetStatus(codes.Error, "canceled")
		return ctx.Err()
	}

	if outcome.Succeeded() {
		counts := outcome.Counts
		acc.Summary.Merge(counts)

		entry.Status = StatusPassed
		entry.Counts = &counts
		entry.Detail = outcome.Detail
		r.record(acc, entry)

		span.SetAttributes(
			attribute.Int("uetest.succeeded", counts.Succeeded),
			attribute.Int("uetest.failed", counts.Failed),
		)
		r.out.InvocationPassed(id, formatDuration(elapsed))
		r.logger.Debug("invocation passed", "id", id, "succeeded", counts.Succeeded, "failed", counts.Failed, "duration", elapsed)
		return nil
	}

	msg := failureMessage(outcome.Err)
	entry.Status = StatusFailed
	entry.Kind = uerrors.KindOf(outcome.Err).String()
	entry.Message = msg
	r.record(acc, entry)
	acc.Summary.AddError(fmt.Sprintf("Error executing Test: %s. Message: %s", id, msg))

	span.RecordError(outcome.Err)
	span.SetStatus(codes.Error, entry.Kind)
	r.logger.Debug("invocation failed", "id", id, "kind", entry.Kind, "err", msg)

	switch fb := node.Fallback().(type) {
	case testset.Leaf:
		acc.Summary.AddFailedTest(id)
		r.out.InvocationFailed(id, formatDuration(elapsed), outcome.Err, "recorded as failed test")
	case testset.Children:
		r.out.InvocationFailed(id, formatDuration(elapsed), outcome.Err, fallbackHint(fb))
		for _, child := range fb {
			if err := r.visit(ctx, child, acc); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Runner) record(acc *Accumulator, e Entry) {
	acc.Ledger.Add(e)
	if r.observer != nil {
		r.observer.Observe(e)
	}
}

// failureMessage returns the message of err without its identifier prefix.
func failureMessage(err error) string {
	var e *uerrors.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

func fallbackHint(children testset.Children) string {
	if len(children) == 0 {
		return ""
	}
	return fmt.Sprintf("falling back to %d %s(s)", len(children), children[0].Level())
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(100 * time.Millisecond).String()
}
