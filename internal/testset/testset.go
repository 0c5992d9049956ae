// Package testset turns a flat list of automation test paths into the
// Group → Suite → Case hierarchy used for fallback execution.
//
// A test list has one test per line, with path segments separated by
// commas:
//
//	Rendering,Shadows,BasicCast
//	Rendering,Shadows,SoftEdge
//	Audio,Mixer,Fade
//
// Each line becomes the Case "Rendering.Shadows.BasicCast", filed under the
// Suite "Rendering.Shadows" of the Group "Rendering".
package testset

import (
	"fmt"
	"slices"
	"strings"
)

// ID is a dot-joined test identifier at any level of the hierarchy.
type ID = string

// Level is the granularity of a node.
type Level int

const (
	LevelGroup Level = iota
	LevelSuite
	LevelCase
)

func (l Level) String() string {
	switch l {
	case LevelGroup:
		return "group"
	case LevelSuite:
		return "suite"
	case LevelCase:
		return "case"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Fallback describes what the runner may try after a node fails:
// either nothing (Leaf) or the node's children in order (Children).
type Fallback interface {
	isFallback()
}

// Leaf is the Fallback of a Case. A failed Case is final.
type Leaf struct{}

// Children is the Fallback of a Group or Suite.
type Children []*Node

func (Leaf) isFallback()     {}
func (Children) isFallback() {}

// Node is one identifier of the tree.
type Node struct {
	id       ID
	level    Level
	children []*Node
}

// ID returns the node's dotted identifier.
func (n *Node) ID() ID { return n.id }

// Level returns the node's granularity.
func (n *Node) Level() Level { return n.level }

// Fallback returns the finer-grained targets to try when n fails.
func (n *Node) Fallback() Fallback {
	if n.level == LevelCase {
		return Leaf{}
	}
	return Children(slices.Clone(n.children))
}

// Children returns a copy of n's children (nil for a Case).
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// Tree is the immutable hierarchy built from a test list. Groups, Suites
// and Cases keep the order of their first appearance in the input.
type Tree struct {
	groups []*Node
	index  map[ID]*Node
	cases  int
}

// Groups returns the top-level nodes in input order.
func (t *Tree) Groups() []*Node {
	if t == nil {
		return nil
	}
	return slices.Clone(t.groups)
}

// Lookup returns the node for id at any level.
func (t *Tree) Lookup(id ID) (*Node, bool) {
	if t == nil {
		return nil, false
	}
	n, ok := t.index[id]
	return n, ok
}

// Len returns the number of Cases in the tree.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return t.cases
}

// Empty reports whether the tree has no tests.
func (t *Tree) Empty() bool {
	return t.Len() == 0
}

// Cases returns every Case identifier, grouped by Suite and Group, in tree order.
func (t *Tree) Cases() []ID {
	var ids []ID
	for _, g := range t.Groups() {
		for _, s := range g.children {
			for _, c := range s.children {
				ids = append(ids, c.id)
			}
		}
	}
	return ids
}

// Walk calls fn for every node depth-first in tree order.
func (t *Tree) Walk(fn func(n *Node)) {
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			fn(n)
			walk(n.children)
		}
	}
	walk(t.Groups())
}

// builder accumulates nodes while a list is parsed.
type builder struct {
	tree *Tree
}

func newBuilder() *builder {
	return &builder{tree: &Tree{index: make(map[ID]*Node)}}
}

// add files a Case under its Group and Suite. It reports false if the Case
// was already present.
func (b *builder) add(segments []string) bool {
	groupID := segments[0]
	suiteID := segments[0] + "." + segments[1]
	caseID := strings.Join(segments, ".")

	if _, dup := b.tree.index[caseID]; dup {
		return false
	}

	group, ok := b.tree.index[groupID]
	if !ok {
		group = &Node{id: groupID, level: LevelGroup}
		b.tree.index[groupID] = group
		b.tree.groups = append(b.tree.groups, group)
	}

	suite, ok := b.tree.index[suiteID]
	if !ok {
		suite = &Node{id: suiteID, level: LevelSuite}
		b.tree.index[suiteID] = suite
		group.children = append(group.children, suite)
	}

	leaf := &Node{id: caseID, level: LevelCase}
	b.tree.index[caseID] = leaf
	suite.children = append(suite.children, leaf)
	b.tree.cases++
	return true
}
