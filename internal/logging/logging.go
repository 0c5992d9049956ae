// Package logging builds the diagnostic slog logger used by uetest.
//
// Logs go to stderr so stdout stays reserved for the JSON result. On a
// terminal the handler is tint; otherwise records use slog's text format.
package logging

import (
	"io"
	"log/slog"
	"runtime"
	"strings"

	"github.com/lmittmann/tint"

	"github.com/AndreyAkinshin/uetest/internal/output"
)

// Options configures New.
type Options struct {
	Level    string // debug, info, warn or error
	Verbose  bool   // forces debug
	Terminal bool   // use the colored terminal handler
	NoColor  bool
}

// ParseLevel maps a level name to a slog level. Unknown names report false.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return slog.LevelInfo, true
	case "debug":
		return slog.LevelDebug, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "err", "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// New returns a logger writing to w.
func New(w io.Writer, opts Options) *slog.Logger {
	lvl, _ := ParseLevel(opts.Level)
	if opts.Verbose {
		lvl = slog.LevelDebug
	}

	if opts.Terminal {
		return slog.New(newTerminalHandler(w, lvl, opts.NoColor))
	}
	return slog.New(newTextHandler(w, lvl))
}

// NewFor picks the handler from whether w is a terminal.
func NewFor(w io.Writer, level string, verbose bool) *slog.Logger {
	return New(w, Options{
		Level:    level,
		Verbose:  verbose,
		Terminal: output.IsTerminal(w),
		NoColor:  runtime.GOOS == "windows",
	})
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func newTextHandler(w io.Writer, lvl slog.Level) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey && len(groups) == 0 {
				return slog.String(a.Key, strings.ToLower(a.Value.String()))
			}
			return a
		},
	})
}

func newTerminalHandler(w io.Writer, lvl slog.Level, noColor bool) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		NoColor:   noColor,
		AddSource: lvl <= slog.LevelDebug,
		Level:     lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	})
}
