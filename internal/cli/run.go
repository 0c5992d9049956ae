package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/AndreyAkinshin/uetest/internal/artifact"
	"github.com/AndreyAkinshin/uetest/internal/config"
	"github.com/AndreyAkinshin/uetest/internal/engine"
	uerrors "github.com/AndreyAkinshin/uetest/internal/errors"
	"github.com/AndreyAkinshin/uetest/internal/logging"
	"github.com/AndreyAkinshin/uetest/internal/metrics"
	"github.com/AndreyAkinshin/uetest/internal/output"
	"github.com/AndreyAkinshin/uetest/internal/report"
	"github.com/AndreyAkinshin/uetest/internal/runner"
	"github.com/AndreyAkinshin/uetest/internal/telemetry"
)

// shutdownTimeout bounds flushing spans after the run.
const shutdownTimeout = 5 * time.Second

// cmdRun builds the test tree, runs it against the editor and publishes
// the result.
func cmdRun(c *cli.Context, e env) error {
	if c.Args().Present() {
		return uerrors.Configf("unexpected argument %q", c.Args().First())
	}

	cfg, err := loadSettings(c)
	if err != nil {
		return err
	}

	out := output.NewWithWriters(e.stderr, e.stderr, output.IsTerminal(e.stderr))
	out.SetQuiet(c.Bool(flagQuiet))
	verbose := c.Bool(flagVerbose)

	warnings, err := config.Validate(cfg)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		out.Warning("%s", w)
	}

	logger := logging.NewFor(e.stderr, cfg.LogLevel, verbose)

	tree, diags, err := buildTree(cfg)
	if err != nil {
		return err
	}
	for _, d := range diags {
		out.Warning("test list %s", d)
	}
	if tree.Empty() {
		out.Warning("test list is empty, nothing to run")
	}
	logger.Debug("test list", slog.Any("cases", tree.Cases()))

	editor, err := resolveEditor(cfg, e.goos)
	if err != nil {
		return err
	}
	project, err := resolveProject(cfg)
	if err != nil {
		return err
	}

	process := &engine.ProcessExecutor{
		Timeout: cfg.TimeoutDuration(),
		Logger:  logger,
	}
	if verbose {
		process.Stream = e.stderr
	}
	invoker := engine.NewInvoker(engine.CommandSpec{
		Editor:    editor,
		Project:   project,
		Workdir:   cfg.Workdir,
		ExtraArgs: cfg.ExtraArgs,
	}, process, logger)

	tel, err := telemetry.New(c.Context, telemetry.Options{
		File:         cfg.Report.TraceFile,
		OTLPEndpoint: cfg.Report.OTLPEndpoint,
		Version:      Version,
	})
	if err != nil {
		out.Warning("tracing disabled: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := tel.Shutdown(ctx); err != nil {
			out.Warning("failed to flush traces: %v", err)
		}
	}()

	runID := uuid.NewString()
	recorder := metrics.NewRecorder(runID)
	r := runner.New(invoker,
		runner.WithObserver(recorder),
		runner.WithLogger(logger),
		runner.WithOutput(out),
		runner.WithTracer(tel.Tracer("uetest runner")),
	)

	logger.Info("starting run",
		slog.String("run_id", runID),
		slog.Int("groups", len(tree.Groups())),
		slog.Int("tests", tree.Len()),
		slog.String("editor", editor),
	)

	gh := report.NewGitHub(e.stderr, e.getenv)
	gh.Group("Unreal automation tests")

	acc := runner.NewAccumulator()
	started := time.Now()
	runErr := r.Run(c.Context, tree, acc)
	result := report.NewResult(runID, acc, started, time.Now())

	gh.EndGroup()
	recorder.RecordSummary(acc.Summary)

	if err := publish(c.Context, cfg, result, recorder, gh, out, e.stdout, logger, verbose); err != nil {
		return err
	}
	out.Info("Job finished")

	if runErr != nil {
		return uerrors.Wrap(runErr, "run canceled")
	}
	if result.Failed() {
		return uerrors.TestFailure(report.FailureMessage)
	}
	return nil
}

// publish renders result on the console and stdout, then writes the
// optional report file, metrics textfile and S3 object. Failures of the
// optional outputs are reported as warnings so they never mask the test
// outcome.
func publish(
	ctx context.Context,
	cfg *config.Config,
	result *report.Result,
	recorder *metrics.Recorder,
	gh *report.GitHub,
	out *output.Writer,
	stdout io.Writer,
	logger *slog.Logger,
	verbose bool,
) error {
	report.Render(out, result, verbose)

	data, err := result.Stdout()
	if err != nil {
		return uerrors.Wrap(err, "failed to encode result")
	}
	if _, err := fmt.Fprintln(stdout, string(data)); err != nil {
		return uerrors.Wrap(err, "failed to write result")
	}

	if err := gh.Publish(result); err != nil {
		out.Warning("failed to publish GitHub outputs: %v", err)
	}

	if path := cfg.Report.File; path != "" {
		if err := report.WriteFile(path, result); err != nil {
			out.Warning("%v", err)
		} else {
			logger.Debug("wrote report", slog.String("path", path))
		}
	}

	if path := cfg.Report.MetricsFile; path != "" {
		if err := recorder.WriteTextfile(path); err != nil {
			out.Warning("failed to write metrics: %v", err)
		} else {
			logger.Debug("wrote metrics", slog.String("path", path))
		}
	}

	if bucket := cfg.Report.Bucket; bucket != "" {
		uri, err := upload(ctx, cfg.Report, result)
		if err != nil {
			out.Warning("failed to upload report: %v", err)
		} else {
			out.Info("Uploaded report to %s", uri)
		}
	}
	return nil
}

func upload(ctx context.Context, rc config.ReportConfig, result *report.Result) (string, error) {
	uploader, err := artifact.NewS3Uploader(ctx, artifact.S3Config{
		Bucket: rc.Bucket,
		Prefix: rc.Prefix,
		Region: rc.Region,
	})
	if err != nil {
		return "", err
	}
	data, err := result.JSON()
	if err != nil {
		return "", err
	}
	return uploader.Upload(ctx, result.RunID, data, result.Failed())
}

// cmdPlan prints the invocations a run would make, or with an ID argument
// the invocations a failure of that node would lead to.
func cmdPlan(c *cli.Context, e env) error {
	if c.NArg() > 1 {
		return uerrors.Configf("plan: expected at most one <id> argument, got %d", c.NArg())
	}

	cfg, err := loadSettings(c)
	if err != nil {
		return err
	}
	if cfg.TestList == "" && cfg.TestListFile == "" {
		return uerrors.Configf("no test list given (use --%s or --%s)", flagTestList, flagTestListFile)
	}

	tree, diags, err := buildTree(cfg)
	if err != nil {
		return err
	}

	steps := runner.Plan(tree)
	id := c.Args().First()
	if id != "" {
		node, ok := tree.Lookup(id)
		if !ok {
			return uerrors.NotFound("test", id)
		}
		steps = []runner.PlannedStep{runner.PlanNode(node)}
	}
	if c.Bool(flagJSON) {
		return writeJSON(e.stdout, steps)
	}

	out := output.NewWithWriters(e.stdout, e.stderr, output.IsTerminal(e.stdout))
	for _, d := range diags {
		out.Warning("test list %s", d)
	}
	for i, step := range steps {
		out.PlanStep(i+1, "%s (%s)", step.ID, step.Level)
		printFallback(out, step.Fallback, 1)
	}
	out.Println("")
	if id != "" {
		minimum, maximum := runner.StepBounds(steps)
		out.Println("%s: %d to %d editor invocation(s)", id, minimum, maximum)
		return nil
	}
	minimum, maximum := runner.Bounds(tree)
	out.Println("%d test(s) in %d group(s): %d to %d editor invocation(s)", tree.Len(), len(tree.Groups()), minimum, maximum)
	return nil
}

func printFallback(out *output.Writer, steps []runner.PlannedStep, depth int) {
	for _, s := range steps {
		out.PlanDetail(depth, "%s", s.ID)
		printFallback(out, s.Fallback, depth+1)
	}
}
