package engine

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	uerrors "github.com/AndreyAkinshin/uetest/internal/errors"
	"github.com/AndreyAkinshin/uetest/internal/results"
)

// LockFileName is the lock file created inside the results directory.
const LockFileName = ".uetest.lock"

const defaultRetryDelay = 250 * time.Millisecond

// ResultSlot guards the fixed-path results file. The editor always writes
// <workdir>/test_results/index.json, so only one invocation may own it at a
// time, including invocations from other uetest processes sharing workdir.
type ResultSlot struct {
	dir        string
	lock       *flock.Flock
	RetryDelay time.Duration
}

// NewResultSlot returns the slot for workdir. Nothing is created until Acquire.
func NewResultSlot(workdir string) *ResultSlot {
	dir := results.Dir(workdir)
	return &ResultSlot{
		dir:        dir,
		lock:       flock.New(filepath.Join(dir, LockFileName)),
		RetryDelay: defaultRetryDelay,
	}
}

// Dir returns the results directory.
func (s *ResultSlot) Dir() string { return s.dir }

// ReportPath returns the path of the results file.
func (s *ResultSlot) ReportPath() string { return filepath.Join(s.dir, results.FileName) }

// Acquire creates the results directory, waits for the lock and removes any
// report left behind by an earlier invocation.
func (s *ResultSlot) Acquire(ctx context.Context) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return uerrors.Environmentf("results directory not writable: %v", err)
	}

	ok, err := s.lock.TryLockContext(ctx, s.RetryDelay)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return uerrors.Environmentf("failed to lock %s: %v", s.lock.Path(), err)
	}
	if !ok {
		return uerrors.Environmentf("results directory %s is locked by another process", s.dir)
	}

	if err := os.Remove(s.ReportPath()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_ = s.lock.Unlock()
		return uerrors.Environmentf("failed to remove stale report: %v", err)
	}
	return nil
}

// Release unlocks the slot. Releasing an unlocked slot is a no-op.
func (s *ResultSlot) Release() error {
	if !s.lock.Locked() {
		return nil
	}
	return s.lock.Unlock()
}
