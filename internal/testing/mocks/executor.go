// Package mocks provides shared test doubles for uetest packages.
package mocks

import (
	"context"
	"sync"

	"github.com/AndreyAkinshin/uetest/internal/errors"
	"github.com/AndreyAkinshin/uetest/internal/results"
	"github.com/AndreyAkinshin/uetest/internal/runner"
	"github.com/AndreyAkinshin/uetest/internal/testset"
)

// Executor implements runner.Executor with scripted outcomes.
// Use NewExecutor() and the With* methods to script it.
type Executor struct {
	outcomes map[testset.ID]runner.Outcome
	fallback runner.Outcome

	// ExecFunc, if set, is called for identifiers without a scripted outcome.
	ExecFunc func(ctx context.Context, id testset.ID) runner.Outcome

	mu    sync.Mutex
	calls []testset.ID
}

var _ runner.Executor = (*Executor)(nil)

// NewExecutor returns an executor where every identifier succeeds with one
// passed test.
func NewExecutor() *Executor {
	return &Executor{
		outcomes: make(map[testset.ID]runner.Outcome),
		fallback: runner.Success(results.Counts{Succeeded: 1}, nil),
	}
}

// WithOutcome scripts the outcome for id.
func (m *Executor) WithOutcome(id testset.ID, o runner.Outcome) *Executor {
	m.outcomes[id] = o
	return m
}

// WithCounts scripts a successful invocation of id with the given counts.
func (m *Executor) WithCounts(id testset.ID, c results.Counts) *Executor {
	return m.WithOutcome(id, runner.Success(c, nil))
}

// WithFailure scripts id to fail with err.
func (m *Executor) WithFailure(id testset.ID, err error) *Executor {
	return m.WithOutcome(id, runner.Failure(err))
}

// WithExecutionError scripts id to fail as if the editor exited non-zero.
func (m *Executor) WithExecutionError(id testset.ID) *Executor {
	return m.WithFailure(id, errors.Execution(id, nil, "editor exited with code 1"))
}

// WithEmptyMatch scripts id to fail as if its report contained no tests.
func (m *Executor) WithEmptyMatch(id testset.ID) *Executor {
	return m.WithFailure(id, errors.EmptyMatch(id))
}

// WithDefault sets the outcome for identifiers that are not scripted.
func (m *Executor) WithDefault(o runner.Outcome) *Executor {
	m.fallback = o
	return m
}

// Execute implements runner.Executor.
func (m *Executor) Execute(ctx context.Context, id testset.ID) runner.Outcome {
	m.mu.Lock()
	m.calls = append(m.calls, id)
	o, ok := m.outcomes[id]
	m.mu.Unlock()

	if ok {
		return o
	}
	if m.ExecFunc != nil {
		return m.ExecFunc(ctx, id)
	}
	return m.fallback
}

// Test inspection methods

// Calls returns the identifiers executed, in order.
func (m *Executor) Calls() []testset.ID {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]testset.ID, len(m.calls))
	copy(result, m.calls)
	return result
}

// CallCount returns how many times Execute was called.
func (m *Executor) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// CallsFor returns how many times id was executed.
func (m *Executor) CallsFor(id testset.ID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c == id {
			n++
		}
	}
	return n
}

// Reset clears call tracking.
func (m *Executor) Reset() {
	m.mu.Lock()
	m.calls = nil
	m.mu.Unlock()
}
