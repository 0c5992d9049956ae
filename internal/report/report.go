// Package report renders the outcome of a run: JSON for stdout and report
// files, a console table, and GitHub Actions outputs.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/AndreyAkinshin/uetest/internal/output"
	"github.com/AndreyAkinshin/uetest/internal/runner"
)

// FailureMessage is the annotation emitted when a run fails.
const FailureMessage = "Some tests failed."

// Result is the full record of a run.
type Result struct {
	RunID      string          `json:"runId"`
	StartedAt  time.Time       `json:"startedAt"`
	FinishedAt time.Time       `json:"finishedAt"`
	Summary    *runner.Summary `json:"summary"`
	Ledger     *runner.Ledger  `json:"ledger"`
}

// NewResult captures acc as the result of run runID.
func NewResult(runID string, acc *runner.Accumulator, started, finished time.Time) *Result {
	return &Result{
		RunID:      runID,
		StartedAt:  started.UTC(),
		FinishedAt: finished.UTC(),
		Summary:    acc.Summary,
		Ledger:     acc.Ledger,
	}
}

// Failed reports whether the run failed.
func (r *Result) Failed() bool {
	return r.Summary.Failed()
}

// SummaryJSON returns the indented summary.
func (r *Result) SummaryJSON() ([]byte, error) {
	return json.MarshalIndent(r.Summary, "", "  ")
}

// JSON returns the indented full result.
func (r *Result) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Stdout returns what the CLI prints on stdout: the summary when the run
// succeeded and the full result when it failed.
func (r *Result) Stdout() ([]byte, error) {
	if r.Failed() {
		return r.JSON()
	}
	return r.SummaryJSON()
}

// WriteFile writes the full result as JSON to path, creating parent directories.
func WriteFile(path string, r *Result) error {
	data, err := r.JSON()
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Label returns a display label for a status, level or kind.
func Label(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}

// ledgerRows returns one row per ledger entry.
func ledgerRows(l *runner.Ledger) [][]string {
	entries := l.Entries()
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		result := Label(string(e.Status))
		if e.Kind != "" {
			result += " (" + Label(e.Kind) + ")"
		}
		tests := "-"
		if e.Counts != nil {
			tests = fmt.Sprintf("%d/%d", e.Counts.Succeeded+e.Counts.SucceededWithWarnings, e.Counts.Total())
		}
		rows = append(rows, []string{e.ID, Label(e.Level), result, tests, e.Duration().Round(time.Millisecond).String()})
	}
	return rows
}

var ledgerHeaders = []string{"Test", "Level", "Result", "Passed/Total", "Duration"}

// Render prints a human-readable summary of r to w. The ledger table is
// included when the run failed or verbose is set.
func Render(w *output.Writer, r *Result, verbose bool) {
	s := r.Summary

	if verbose || r.Failed() {
		w.SummaryHeader("Invocations")
		w.Table(ledgerHeaders, ledgerRows(r.Ledger))
	}

	w.SummaryHeader("Summary")
	w.SummaryPassed("Succeeded", strconv.Itoa(s.Succeeded))
	w.SummaryItem("Succeeded with warnings", strconv.Itoa(s.SucceededWithWarnings))
	if s.Counts.Failed > 0 {
		w.SummaryFailed("Failed", strconv.Itoa(s.Counts.Failed))
	} else {
		w.SummaryItem("Failed", "0")
	}
	w.SummaryItem("Not run", strconv.Itoa(s.NotRun))
	w.SummaryItem("In process", strconv.Itoa(s.InProcess))
	w.SummaryItem("Invocations", strconv.Itoa(r.Ledger.Len()))
	if n := len(s.FailedTestset); n > 0 {
		w.SummaryFailed("Failed tests", strconv.Itoa(n))
		w.List(s.FailedTestset)
	}

	if r.Failed() {
		w.FinalFailure(FailureMessage)
	} else {
		w.FinalSuccess("All tests passed.")
	}
}

// Markdown renders r as a GitHub step summary.
func Markdown(r *Result) string {
	var sb strings.Builder
	s := r.Summary

	status := "✅ Passed"
	if r.Failed() {
		status = "❌ " + FailureMessage
	}
	fmt.Fprintf(&sb, "## Unreal automation tests: %s\n\n", status)

	sb.WriteString("| Succeeded | With warnings | Failed | Not run | In process |\n")
	sb.WriteString("|---:|---:|---:|---:|---:|\n")
	fmt.Fprintf(&sb, "| %d | %d | %d | %d | %d |\n\n", s.Succeeded, s.SucceededWithWarnings, s.Counts.Failed, s.NotRun, s.InProcess)

	if len(s.FailedTestset) > 0 {
		sb.WriteString("### Failed tests\n\n")
		for _, id := range s.FailedTestset {
			fmt.Fprintf(&sb, "- `%s`\n", id)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("<details><summary>Invocations</summary>\n\n")
	sb.WriteString("| " + strings.Join(ledgerHeaders, " | ") + " |\n")
	sb.WriteString("|" + strings.Repeat("---|", len(ledgerHeaders)) + "\n")
	for _, row := range ledgerRows(r.Ledger) {
		row[0] = "`" + row[0] + "`"
		sb.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}
	sb.WriteString("\n</details>\n")
	return sb.String()
}
