package engine

import (
	"context"
	"errors"
	"log/slog"

	uerrors "github.com/AndreyAkinshin/uetest/internal/errors"
	"github.com/AndreyAkinshin/uetest/internal/results"
	"github.com/AndreyAkinshin/uetest/internal/runner"
	"github.com/AndreyAkinshin/uetest/internal/testset"
)

// CommandRunner runs one argv to completion. ProcessExecutor implements it.
type CommandRunner interface {
	Run(ctx context.Context, argv []string, dir string) error
}

// Invoker runs one editor invocation per test ID and reads back its report.
type Invoker struct {
	Spec    CommandSpec
	Process CommandRunner
	Slot    *ResultSlot
	Logger  *slog.Logger
}

var _ runner.Executor = (*Invoker)(nil)

// NewInvoker wires an Invoker for spec with a ResultSlot in spec.Workdir.
func NewInvoker(spec CommandSpec, process CommandRunner, logger *slog.Logger) *Invoker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Invoker{
		Spec:    spec,
		Process: process,
		Slot:    NewResultSlot(spec.Workdir),
		Logger:  logger,
	}
}

// Execute implements runner.Executor.
func (inv *Invoker) Execute(ctx context.Context, id testset.ID) runner.Outcome {
	if err := inv.Slot.Acquire(ctx); err != nil {
		return runner.Failure(withID(err, id))
	}
	defer func() {
		if err := inv.Slot.Release(); err != nil {
			inv.Logger.Warn("failed to release results slot", "dir", inv.Slot.Dir(), "err", err)
		}
	}()

	argv := BuildCommand(inv.Spec, id)
	inv.Logger.Debug("invoking editor", "id", id, "cmd", CommandLine(argv))

	if err := inv.Process.Run(ctx, argv, inv.Spec.Workdir); err != nil {
		return runner.Failure(withID(err, id))
	}

	report, err := results.Load(inv.Slot.ReportPath())
	if err != nil {
		return runner.Failure(uerrors.ResultParse(id, err))
	}
	if report.Total() == 0 {
		return runner.Failure(uerrors.EmptyMatch(id))
	}

	inv.Logger.Debug("report loaded", "id", id, "succeeded", report.Succeeded, "failed", report.Failed)
	return runner.Success(report.Counts, report.Failures())
}

// withID attaches id to err. Errors without a kind become execution errors.
func withID(err error, id testset.ID) error {
	var e *uerrors.Error
	if errors.As(err, &e) {
		c := *e
		c.ID = id
		return &c
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return uerrors.Execution(id, err, err.Error())
}
