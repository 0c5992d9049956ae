package runner

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/AndreyAkinshin/uetest/internal/results"
	"github.com/AndreyAkinshin/uetest/internal/testset"
)

// Status is the result of one ledger entry.
type Status string

const (
	StatusPassed Status = "passed"
	StatusFailed Status = "failed"
)

// KindCanceled marks an invocation interrupted by cancellation of the run.
const KindCanceled = "canceled"

// Entry records one attempted invocation at any level.
type Entry struct {
	ID         testset.ID          `json:"id"`
	Level      string              `json:"level"`
	Status     Status              `json:"status"`
	Kind       string              `json:"kind,omitempty"`
	Counts     *results.Counts     `json:"counts,omitempty"`
	Detail     []results.TestEntry `json:"detail,omitempty"`
	Message    string              `json:"message,omitempty"`
	DurationMs int64               `json:"durationMs"`
}

// Duration returns how long the invocation took.
func (e Entry) Duration() time.Duration {
	return time.Duration(e.DurationMs) * time.Millisecond
}

// Passed reports whether the entry recorded a successful invocation.
func (e Entry) Passed() bool {
	return e.Status == StatusPassed
}

// Ledger lists every attempted invocation in execution order. It is
// diagnostic output and is never consulted for control flow.
type Ledger struct {
	entries []Entry
}

// Add appends an entry.
func (l *Ledger) Add(e Entry) {
	l.entries = append(l.entries, e)
}

// Entries returns a copy of all entries in execution order.
func (l *Ledger) Entries() []Entry {
	return slices.Clone(l.entries)
}

// Len returns the number of invocations recorded.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Get returns the most recent entry for id.
func (l *Ledger) Get(id testset.ID) (Entry, bool) {
	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].ID == id {
			return l.entries[i], true
		}
	}
	return Entry{}, false
}

// Failures returns the failed entries in execution order.
func (l *Ledger) Failures() []Entry {
	var failed []Entry
	for _, e := range l.entries {
		if !e.Passed() {
			failed = append(failed, e)
		}
	}
	return failed
}

// MarshalJSON encodes the ledger as an array of entries.
func (l *Ledger) MarshalJSON() ([]byte, error) {
	if l == nil || l.entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.entries)
}
