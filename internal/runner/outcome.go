package runner

import (
	"github.com/AndreyAkinshin/uetest/internal/results"
)

// Outcome is the result of one editor invocation for one identifier.
//
// A nil Err means the invocation completed and produced a non-empty report;
// Counts then holds its counters and Detail the tests that did not end in
// "Success". A non-nil Err carries the failure kind and triggers fallback.
type Outcome struct {
	Counts results.Counts
	Detail []results.TestEntry
	Err    error
}

// Succeeded reports whether the invocation produced usable results.
func (o Outcome) Succeeded() bool {
	return o.Err == nil
}

// Success builds a successful Outcome.
func Success(counts results.Counts, detail []results.TestEntry) Outcome {
	return Outcome{Counts: counts, Detail: detail}
}

// Failure builds a failed Outcome.
func Failure(err error) Outcome {
	return Outcome{Err: err}
}
