package runner

import (
	"github.com/AndreyAkinshin/uetest/internal/results"
	"github.com/AndreyAkinshin/uetest/internal/testset"
)

// Summary aggregates a whole run. Counters only grow.
type Summary struct {
	results.Counts
	Errors        []string     `json:"errors"`
	FailedTestset []testset.ID `json:"failedTestset"`
}

// NewSummary returns an empty summary whose lists marshal as [] rather than null.
func NewSummary() *Summary {
	return &Summary{
		Errors:        []string{},
		FailedTestset: []testset.ID{},
	}
}

// Merge adds the counters of a successful invocation.
func (s *Summary) Merge(c results.Counts) {
	s.Counts.Add(c)
}

// AddError records the message of a failed invocation.
func (s *Summary) AddError(msg string) {
	s.Errors = append(s.Errors, msg)
}

// AddFailedTest records a Case whose own invocation failed.
func (s *Summary) AddFailedTest(id testset.ID) {
	s.FailedTestset = append(s.FailedTestset, id)
}

// Failed reports whether the run as a whole failed: some test failed
// according to the reports, or some Case could not be run at all.
func (s *Summary) Failed() bool {
	return s.Counts.Failed > 0 || len(s.FailedTestset) > 0
}

// Accumulator bundles the mutable state of a run. It is passed by pointer
// through every step of the traversal.
type Accumulator struct {
	Summary *Summary
	Ledger  *Ledger
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		Summary: NewSummary(),
		Ledger:  &Ledger{},
	}
}
