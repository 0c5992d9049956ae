package testset

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/AndreyAkinshin/uetest/internal/errors"
)

// MinSegments is the smallest number of path segments a test line may have.
const MinSegments = 3

// MalformedPolicy decides what happens to lines that cannot be parsed.
type MalformedPolicy string

const (
	// MalformedReject fails the whole build if any line is malformed.
	MalformedReject MalformedPolicy = "reject"
	// MalformedSkip drops malformed lines and reports them as diagnostics.
	MalformedSkip MalformedPolicy = "skip"
)

// ParseMalformedPolicy converts a config string to a policy.
// The empty string selects MalformedReject.
func ParseMalformedPolicy(s string) (MalformedPolicy, bool) {
	switch MalformedPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", MalformedReject:
		return MalformedReject, true
	case MalformedSkip:
		return MalformedSkip, true
	default:
		return "", false
	}
}

// BuildOptions configures Build.
type BuildOptions struct {
	Malformed MalformedPolicy
}

// Diagnostic describes an input line that was not added to the tree.
type Diagnostic struct {
	Line   int    // 1-based line number
	Text   string // the line as given
	Reason string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d %q: %s", d.Line, d.Text, d.Reason)
}

// Build parses a raw test list into a Tree.
//
// Lines are separated by "\n" (a trailing "\r" is ignored) and segments by
// ",". Blank lines are skipped silently. A line needs at least MinSegments
// non-empty, dot-free segments; how other lines are handled depends on
// opts.Malformed. Repeated lines keep their first position and produce a
// diagnostic.
func Build(raw string, opts BuildOptions) (*Tree, []Diagnostic, error) {
	policy := opts.Malformed
	if policy == "" {
		policy = MalformedReject
	}

	b := newBuilder()
	var diags, malformed []Diagnostic

	for i, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" {
			continue
		}

		segments, reason := splitSegments(line)
		if reason != "" {
			malformed = append(malformed, Diagnostic{Line: i + 1, Text: line, Reason: reason})
			continue
		}

		if !b.add(segments) {
			diags = append(diags, Diagnostic{Line: i + 1, Text: line, Reason: "duplicate test, ignored"})
		}
	}

	if len(malformed) > 0 && policy == MalformedReject {
		return nil, nil, malformedError(malformed)
	}

	diags = append(diags, malformed...)
	slices.SortFunc(diags, func(a, b Diagnostic) int { return a.Line - b.Line })
	return b.tree, diags, nil
}

// BuildFromFile reads a test list file, appends any extra lists after it
// and parses the result with Build.
func BuildFromFile(path string, opts BuildOptions, extra ...string) (*Tree, []Diagnostic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Configf("failed to read test list file: %v", err)
	}
	return Build(JoinLists(append([]string{string(data)}, extra...)...), opts)
}

// JoinLists concatenates test list sources in order, skipping empty ones.
func JoinLists(lists ...string) string {
	var parts []string
	for _, l := range lists {
		if strings.TrimSpace(l) != "" {
			parts = append(parts, strings.TrimRight(l, "\r\n"))
		}
	}
	return strings.Join(parts, "\n")
}

// splitSegments returns the trimmed segments of line, or a reason the line is malformed.
func splitSegments(line string) ([]string, string) {
	segments := strings.Split(line, ",")
	for i, s := range segments {
		segments[i] = strings.TrimSpace(s)
	}

	if len(segments) < MinSegments {
		return nil, fmt.Sprintf("expected at least %d comma-separated segments, got %d", MinSegments, len(segments))
	}
	for i, s := range segments {
		if s == "" {
			return nil, fmt.Sprintf("segment %d is empty", i+1)
		}
		if strings.Contains(s, ".") {
			return nil, fmt.Sprintf("segment %d contains '.'", i+1)
		}
	}
	return segments, ""
}

func malformedError(lines []Diagnostic) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "malformed test list (%d line(s)):", len(lines))
	for _, d := range lines {
		sb.WriteString("\n  ")
		sb.WriteString(d.String())
	}
	return errors.MalformedInput(sb.String())
}
