package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/AndreyAkinshin/uetest/internal/errors"
	"github.com/AndreyAkinshin/uetest/internal/results"
	"github.com/AndreyAkinshin/uetest/internal/testset"
)

func TestFixtureReportWithByteOrderMark(t *testing.T) {
	t.Parallel()
	rep, err := results.Load(filepath.Join(fixturesDir(), "reports", "index.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if rep.Succeeded != 3 || rep.SucceededWithWarnings != 1 || rep.Counts.Failed != 1 {
		t.Errorf("counts = %+v", rep.Counts)
	}
	failures := rep.Failures()
	if len(failures) != 1 || failures[0].FullTestPath != "Rendering.Shadows.SoftEdge" {
		t.Errorf("Failures() = %+v", failures)
	}
	if got := rep.Tests[3].DisplayName; got != "Fade  Ducking" {
		t.Errorf("non-ASCII not stripped: %q", got)
	}
}

func TestMissingTestListFile(t *testing.T) {
	t.Parallel()
	_, _, err := testset.BuildFromFile(filepath.Join(t.TempDir(), "absent.txt"), testset.BuildOptions{})
	if errors.GetExitCode(err) != errors.ExitConfigError {
		t.Errorf("exit code = %d, want %d", errors.GetExitCode(err), errors.ExitConfigError)
	}
}

func TestMalformedTestListFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "tests.txt")
	if err := os.WriteFile(path, []byte("A,B,C\nRendering.Shadows,BasicCast\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, _, err := testset.BuildFromFile(path, testset.BuildOptions{Malformed: testset.MalformedReject})
	if !errors.Is(err, errors.KindMalformedInput) {
		t.Fatalf("error = %v, want malformed input", err)
	}

	tree, diags, err := testset.BuildFromFile(path, testset.BuildOptions{Malformed: testset.MalformedSkip})
	if err != nil {
		t.Fatalf("skip policy error = %v", err)
	}
	if tree.Len() != 1 || len(diags) != 1 || diags[0].Line != 2 {
		t.Errorf("tree.Len() = %d, diags = %v", tree.Len(), diags)
	}
}
