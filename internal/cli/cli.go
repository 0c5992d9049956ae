// Package cli implements the uetest command line.
package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/urfave/cli/v2"

	uerrors "github.com/AndreyAkinshin/uetest/internal/errors"
	"github.com/AndreyAkinshin/uetest/internal/output"
)

// Version is set at build time.
var Version = "dev"

// env is what the commands read from and write to. Tests replace it.
type env struct {
	stdout io.Writer
	stderr io.Writer
	stdin  io.Reader
	getenv func(string) string
	goos   string
}

// Run executes the CLI with the given arguments (program name first) and
// returns an exit code.
func Run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return run(ctx, args, env{
		stdout: os.Stdout,
		stderr: os.Stderr,
		stdin:  os.Stdin,
		getenv: os.Getenv,
		goos:   runtime.GOOS,
	})
}

func run(ctx context.Context, args []string, e env) int {
	app := newApp(e)
	err := app.RunContext(ctx, args)
	if err == nil {
		return uerrors.ExitSuccess
	}

	// A failed run has already printed its summary.
	if !uerrors.Is(err, uerrors.KindTestFailure) {
		out := output.NewWithWriters(e.stderr, e.stderr, output.IsTerminal(e.stderr))
		out.ErrorPrefix("%v", err)
	}
	return uerrors.GetExitCode(err)
}

// usageError turns flag parsing failures into configuration errors.
func usageError(_ *cli.Context, err error, _ bool) error {
	return uerrors.Configf("%v", err)
}

func newApp(e env) *cli.App {
	return &cli.App{
		Name:        "uetest",
		Usage:       "Run Unreal Engine automation tests with hierarchical fallback",
		Description: "uetest runs each test group in one editor invocation and, when a group fails, retries its suites and then its individual tests to isolate the failures.",
		Version:     Version,
		HideVersion: true,
		Writer:      e.stderr,
		ErrWriter:   e.stderr,
		Flags:       runFlags(),
		Action:      func(c *cli.Context) error { return cmdRun(c, e) },
		Commands: []*cli.Command{
			{
				Name:         "run",
				Usage:        "Run the test list (default command)",
				Flags:        runFlags(),
				Action:       func(c *cli.Context) error { return cmdRun(c, e) },
				OnUsageError: usageError,
			},
			{
				Name:      "plan",
				Usage:     "Show the invocations a run would make without starting the editor",
				ArgsUsage: "[id]",
				Flags: append(inputFlags(), &cli.BoolFlag{
					Name:  flagJSON,
					Usage: "Print the plan as JSON",
				}),
				Action:       func(c *cli.Context) error { return cmdPlan(c, e) },
				OnUsageError: usageError,
			},
			{
				Name:      "results",
				Usage:     "Summarize an editor results file (index.json); '-' reads stdin",
				ArgsUsage: "<file>",
				Action:    func(c *cli.Context) error { return cmdResults(c, e) },
			},
			{
				Name:  "version",
				Usage: "Print the version",
				Action: func(c *cli.Context) error {
					_, err := io.WriteString(e.stdout, "uetest "+Version+"\n")
					return err
				},
			},
		},
		OnUsageError: usageError,
		// Exit codes are derived from the returned error by run.
		ExitErrHandler: func(*cli.Context, error) {},
	}
}
