package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"

	uerrors "github.com/AndreyAkinshin/uetest/internal/errors"
	"github.com/AndreyAkinshin/uetest/internal/output"
	"github.com/AndreyAkinshin/uetest/internal/results"
)

// cmdResults parses an editor results file and prints its counters and
// the tests that did not succeed.
func cmdResults(c *cli.Context, e env) error {
	if c.NArg() != 1 {
		return uerrors.Configf("results: expected exactly one <file> argument, got %d", c.NArg())
	}

	var (
		data []byte
		err  error
	)
	name := c.Args().First()
	if name == "-" {
		data, err = io.ReadAll(e.stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return uerrors.NotFound("results file", name)
	case err != nil:
		return uerrors.Configf("results: %v", err)
	}

	rep, err := results.Parse(data)
	if err != nil {
		return uerrors.ResultParse("", err)
	}

	out := output.NewWithWriters(e.stdout, e.stderr, output.IsTerminal(e.stdout))
	printResults(out, rep)

	if rep.Total() == 0 {
		return uerrors.EmptyMatch("")
	}
	if rep.Counts.Failed > 0 {
		return uerrors.TestFailure(fmt.Sprintf("%d of %d tests failed.", rep.Counts.Failed, rep.Total()))
	}
	return nil
}

func printResults(out *output.Writer, rep *results.Report) {
	out.SummaryHeader("Results")
	out.SummaryPassed("Succeeded", strconv.Itoa(rep.Succeeded))
	out.SummaryItem("Succeeded with warnings", strconv.Itoa(rep.SucceededWithWarnings))
	if rep.Counts.Failed > 0 {
		out.SummaryFailed("Failed", strconv.Itoa(rep.Counts.Failed))
	} else {
		out.SummaryItem("Failed", "0")
	}
	out.SummaryItem("Not run", strconv.Itoa(rep.NotRun))
	out.SummaryItem("In process", strconv.Itoa(rep.InProcess))

	if failures := rep.Failures(); len(failures) > 0 {
		rows := make([][]string, 0, len(failures))
		for _, t := range failures {
			rows = append(rows, []string{t.FullTestPath, t.State, strconv.Itoa(t.Errors), strconv.Itoa(t.Warnings)})
		}
		out.Println("")
		out.Table([]string{"Test", "State", "Errors", "Warnings"}, rows)
	}

	switch total := rep.Total(); {
	case total == 0:
		out.FinalFailure("No tests matched.")
	case rep.Counts.Failed == 0:
		out.FinalSuccess("All %d tests passed.", total)
	default:
		out.FinalFailure("%d of %d tests failed.", rep.Counts.Failed, total)
	}
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
