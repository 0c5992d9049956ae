package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/AndreyAkinshin/uetest/internal/errors"
)

func TestResultSlot_AcquireRemovesStaleReport(t *testing.T) {
	workdir := t.TempDir()
	slot := NewResultSlot(workdir)

	if err := os.MkdirAll(slot.Dir(), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(slot.ReportPath(), []byte(`{"stale":true}`), 0644); err != nil {
		t.Fatal(err)
	}

	if err := slot.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer slot.Release()

	if _, err := os.Stat(slot.ReportPath()); !os.IsNotExist(err) {
		t.Errorf("stale report still present: %v", err)
	}
	if _, err := os.Stat(filepath.Join(slot.Dir(), LockFileName)); err != nil {
		t.Errorf("lock file missing: %v", err)
	}
}

func TestResultSlot_CreatesDirectory(t *testing.T) {
	workdir := filepath.Join(t.TempDir(), "nested")
	slot := NewResultSlot(workdir)

	if err := slot.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer slot.Release()

	if fi, err := os.Stat(filepath.Join(workdir, "test_results")); err != nil || !fi.IsDir() {
		t.Errorf("results directory not created: %v", err)
	}
}

func TestResultSlot_Exclusive(t *testing.T) {
	workdir := t.TempDir()
	first := NewResultSlot(workdir)
	second := NewResultSlot(workdir)
	second.RetryDelay = 10 * time.Millisecond

	if err := first.Acquire(context.Background()); err != nil {
		t.Fatalf("first Acquire() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := second.Acquire(ctx); err == nil {
		second.Release()
		t.Fatal("second Acquire() succeeded while first holds the slot")
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if err := second.Acquire(context.Background()); err != nil {
		t.Fatalf("second Acquire() after release error = %v", err)
	}
	second.Release()
}

func TestResultSlot_ReleaseIdempotent(t *testing.T) {
	slot := NewResultSlot(t.TempDir())
	if err := slot.Release(); err != nil {
		t.Errorf("Release() on unlocked slot error = %v", err)
	}
}

func TestResultSlot_UnwritableDirectory(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}

	err := NewResultSlot(blocker).Acquire(context.Background())

	if !errors.Is(err, errors.KindEnvironment) {
		t.Errorf("Acquire() error = %v, want environment error", err)
	}
}
