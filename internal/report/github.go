package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/sethvargo/go-githubactions"
)

// GitHub publishes results through the GitHub Actions runner.
type GitHub struct {
	action *githubactions.Action
	getenv func(string) string
}

// NewGitHub returns a publisher writing workflow commands to w.
func NewGitHub(w io.Writer, getenv func(string) string) *GitHub {
	return &GitHub{
		action: githubactions.New(
			githubactions.WithWriter(w),
			githubactions.WithGetenv(getenv),
		),
		getenv: getenv,
	}
}

// Enabled reports whether uetest runs inside GitHub Actions.
func (g *GitHub) Enabled() bool {
	return g.getenv("GITHUB_ACTIONS") == "true"
}

// Group opens a collapsible log group.
func (g *GitHub) Group(title string) {
	if g.Enabled() {
		g.action.Group(title)
	}
}

// EndGroup closes the current log group.
func (g *GitHub) EndGroup() {
	if g.Enabled() {
		g.action.EndGroup()
	}
}

// Publish sets the "summary" output, annotates failures and appends the
// step summary when the runner provides one.
func (g *GitHub) Publish(r *Result) error {
	if !g.Enabled() {
		return nil
	}

	summary, err := r.SummaryJSON()
	if err != nil {
		return err
	}
	g.action.SetOutput("summary", string(summary))

	hasStepSummary := g.getenv("GITHUB_STEP_SUMMARY") != ""
	if r.Failed() {
		g.action.Errorf("%s", failureAnnotation(r, hasStepSummary))
	}

	if hasStepSummary {
		g.action.AddStepSummary(Markdown(r))
	}
	return nil
}

// failureAnnotation keeps the ::error:: line to one sentence; the full
// result is on stdout and in the step summary.
func failureAnnotation(r *Result, hasStepSummary bool) string {
	if hasStepSummary {
		return FailureMessage + " See the step summary."
	}
	if failed := r.Summary.FailedTestset; len(failed) > 0 {
		return fmt.Sprintf("%s Failed: %s", FailureMessage, strings.Join(failed, ", "))
	}
	return FailureMessage
}
