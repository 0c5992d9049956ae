package integration

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/AndreyAkinshin/uetest/internal/config"
	"github.com/AndreyAkinshin/uetest/internal/testset"
)

func TestFixtureConfig(t *testing.T) {
	t.Parallel()
	cfg, err := config.Load(filepath.Join(fixturesDir(), "uetest.yaml"))
	if err != nil {
		t.Fatalf("failed to load fixture config: %v", err)
	}

	if err := config.ApplyDefaults(cfg); err != nil {
		t.Fatal(err)
	}
	warnings, err := config.Validate(cfg)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	if cfg.TimeoutDuration() != 30*time.Minute {
		t.Errorf("TimeoutDuration() = %v, want 30m", cfg.TimeoutDuration())
	}
	if len(cfg.ExtraArgs) != 2 {
		t.Errorf("ExtraArgs = %v, want 2 entries", cfg.ExtraArgs)
	}
}

func TestFixtureTestList(t *testing.T) {
	t.Parallel()
	tree, diags, err := testset.BuildFromFile(filepath.Join(fixturesDir(), "lists", "project.txt"), testset.BuildOptions{})
	if err != nil {
		t.Fatalf("BuildFromFile() error = %v", err)
	}
	if len(diags) != 0 {
		t.Errorf("diagnostics = %v, want none", diags)
	}

	groups := tree.Groups()
	if len(groups) != 2 || groups[0].ID() != "Rendering" || groups[1].ID() != "Audio" {
		t.Fatalf("groups = %v, want [Rendering Audio]", groups)
	}
	if tree.Len() != 5 {
		t.Errorf("Len() = %d, want 5", tree.Len())
	}
	if _, ok := tree.Lookup("Rendering.Lights"); !ok {
		t.Error("suite Rendering.Lights missing")
	}
}
