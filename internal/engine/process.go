package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/acarl005/stripansi"

	uerrors "github.com/AndreyAkinshin/uetest/internal/errors"
)

// tailLines is how many trailing output lines an execution error carries.
const tailLines = 20

// waitDelay bounds how long Run waits for the output pipes to close after
// the process group was killed.
const waitDelay = 2 * time.Second

// ProcessExecutor runs external commands to completion.
type ProcessExecutor struct {
	// Timeout bounds a single run. Zero means no limit.
	Timeout time.Duration
	// Stream, if set, receives the child's stdout and stderr as they are written.
	Stream io.Writer
	Logger *slog.Logger
	// Env, if set, replaces the inherited environment.
	Env []string
}

// Run starts argv in dir and waits for it. A spawn failure, a non-zero exit
// or a timeout is returned as an execution error carrying the tail of the
// process output.
func (p *ProcessExecutor) Run(ctx context.Context, argv []string, dir string) error {
	if len(argv) == 0 {
		return uerrors.New("empty command")
	}

	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.WaitDelay = waitDelay
	setProcessGroup(cmd)
	if p.Env != nil {
		cmd.Env = p.Env
	}

	var captured bytes.Buffer
	var sink io.Writer = &captured
	if p.Stream != nil {
		sink = io.MultiWriter(p.Stream, &captured)
	}
	cmd.Stdout = sink
	cmd.Stderr = sink

	if p.Logger != nil {
		p.Logger.Debug("starting editor", "argv", CommandLine(argv), "dir", dir)
	}

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var msg string
	var exitErr *exec.ExitError
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		msg = "timed out"
		if p.Timeout > 0 {
			msg = fmt.Sprintf("timed out after %s", p.Timeout)
		}
	case errors.Is(ctx.Err(), context.Canceled):
		msg = "canceled"
	case errors.As(err, &exitErr):
		msg = fmt.Sprintf("editor exited with code %d", exitErr.ExitCode())
	default:
		msg = fmt.Sprintf("failed to start editor: %v", err)
	}
	if tail := Tail(captured.String(), tailLines); tail != "" {
		msg += "\n" + tail
	}
	return &uerrors.Error{Kind: uerrors.KindExecution, Message: msg, Cause: err}
}

// Tail returns the last n non-empty lines of s with ANSI escapes removed.
func Tail(s string, n int) string {
	s = stripansi.Strip(s)
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")

	kept := make([]string, 0, n)
	for i := len(lines) - 1; i >= 0 && len(kept) < n; i-- {
		if l := strings.TrimRight(lines[i], " \t\r"); l != "" {
			kept = append(kept, l)
		}
	}
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	return strings.Join(kept, "\n")
}
