// Package results reads the automation report the Unreal editor writes
// after a test run (test_results/index.json).
package results

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/AndreyAkinshin/uetest/internal/schema"
)

const (
	// DirName is the report directory the editor is pointed at, relative to the working directory.
	DirName = "test_results"
	// FileName is the report file the editor writes inside DirName.
	FileName = "index.json"

	// StateSuccess is the only test state that is not reported as a failure detail.
	StateSuccess = "Success"
)

// Dir returns the report directory for workdir.
func Dir(workdir string) string {
	return filepath.Join(workdir, DirName)
}

// Path returns the report file path for workdir.
func Path(workdir string) string {
	return filepath.Join(workdir, DirName, FileName)
}

// Counts holds the numeric counters of a report.
type Counts struct {
	Succeeded             int `json:"succeeded"`
	SucceededWithWarnings int `json:"succeededWithWarnings"`
	Failed                int `json:"failed"`
	NotRun                int `json:"notRun"`
	InProcess             int `json:"inProcess"`
}

// Add adds other's counters to c.
func (c *Counts) Add(other Counts) {
	c.Succeeded += other.Succeeded
	c.SucceededWithWarnings += other.SucceededWithWarnings
	c.Failed += other.Failed
	c.NotRun += other.NotRun
	c.InProcess += other.InProcess
}

// Total returns the sum of all counters.
func (c Counts) Total() int {
	return c.Succeeded + c.SucceededWithWarnings + c.Failed + c.NotRun + c.InProcess
}

// TestEntry is one element of the report's tests array.
type TestEntry struct {
	State        string  `json:"state"`
	DisplayName  string  `json:"testDisplayName,omitempty"`
	FullTestPath string  `json:"fullTestPath,omitempty"`
	Errors       int     `json:"errors,omitempty"`
	Warnings     int     `json:"warnings,omitempty"`
	Duration     float64 `json:"duration,omitempty"`
}

// Report is a decoded index.json.
type Report struct {
	Counts
	Tests []TestEntry `json:"tests"`
}

// Failures returns the tests whose state is not "Success", in report order.
func (r *Report) Failures() []TestEntry {
	var failed []TestEntry
	for _, t := range r.Tests {
		if t.State != StateSuccess {
			failed = append(failed, t)
		}
	}
	return failed
}

// nonASCII drops every rune above U+007F. Invalid UTF-8 bytes decode as
// U+FFFD and are dropped too.
var nonASCII = runes.Remove(runes.Predicate(func(r rune) bool {
	return r > unicode.MaxASCII
}))

// CleanASCII returns data with all non-ASCII bytes removed. The editor
// writes a byte-order mark and occasional non-ASCII artifacts that strict
// JSON decoding rejects.
func CleanASCII(data []byte) []byte {
	// runes.Remove does not fail on complete input.
	out, _, _ := transform.Bytes(nonASCII, data)
	return out
}

// Parse cleans, validates and decodes report data.
func Parse(data []byte) (*Report, error) {
	cleaned := CleanASCII(data)

	if err := schema.ValidateResults(cleaned); err != nil {
		return nil, err
	}

	var r Report
	if err := json.Unmarshal(cleaned, &r); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &r, nil
}

// Load reads and parses the report at path.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}
