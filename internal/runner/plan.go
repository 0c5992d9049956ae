package runner

import (
	"github.com/AndreyAkinshin/uetest/internal/testset"
)

// PlannedStep is an invocation the runner would make, with the steps that
// would follow if it failed.
type PlannedStep struct {
	ID       testset.ID    `json:"id"`
	Level    string        `json:"level"`
	Fallback []PlannedStep `json:"fallback,omitempty"`
}

// Plan returns the first-pass invocations (one per Group) with their
// fallback chains. Nothing is executed.
func Plan(tree *testset.Tree) []PlannedStep {
	groups := tree.Groups()
	steps := make([]PlannedStep, 0, len(groups))
	for _, g := range groups {
		steps = append(steps, PlanNode(g))
	}
	return steps
}

// PlanNode returns the invocation of n and its fallback chain.
func PlanNode(n *testset.Node) PlannedStep {
	step := PlannedStep{ID: n.ID(), Level: n.Level().String()}
	if children, ok := n.Fallback().(testset.Children); ok {
		for _, c := range children {
			step.Fallback = append(step.Fallback, PlanNode(c))
		}
	}
	return step
}

// Bounds returns the fewest and most invocations a run of tree can take.
func Bounds(tree *testset.Tree) (minimum, maximum int) {
	minimum = len(tree.Groups())
	tree.Walk(func(*testset.Node) { maximum++ })
	return minimum, maximum
}

// StepBounds returns the fewest and most invocations steps can take: every
// step runs once, and in the worst case every fallback runs as well.
func StepBounds(steps []PlannedStep) (minimum, maximum int) {
	var count func([]PlannedStep) int
	count = func(steps []PlannedStep) int {
		n := len(steps)
		for _, s := range steps {
			n += count(s.Fallback)
		}
		return n
	}
	return len(steps), count(steps)
}
