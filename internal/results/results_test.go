package results

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleReport = `{
	"devices": [{"deviceName": "CI-01"}],
	"reportCreatedOn": "2024.05.01-10.00.00",
	"succeeded": 2,
	"succeededWithWarnings": 1,
	"failed": 1,
	"notRun": 0,
	"inProcess": 0,
	"totalDuration": 12.5,
	"tests": [
		{"testDisplayName": "BasicCast", "fullTestPath": "Rendering.Shadows.BasicCast", "state": "Success", "errors": 0, "warnings": 0},
		{"testDisplayName": "SoftEdge", "fullTestPath": "Rendering.Shadows.SoftEdge", "state": "Fail", "errors": 2, "warnings": 0, "duration": 1.5},
		{"testDisplayName": "Cascade", "fullTestPath": "Rendering.Shadows.Cascade", "state": "Success", "warnings": 1}
	]
}`

func TestCleanASCII(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"utf8 bom", "\xEF\xBB\xBF{\"a\":1}", `{"a":1}`},
		{"invalid byte", "\xff{\"a\":1}", `{"a":1}`},
		{"non-ascii in string", `{"name":"Schatten√"}`, `{"name":"Schatten"}`},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(CleanASCII([]byte(tt.in))); got != tt.want {
				t.Errorf("CleanASCII(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_ValidReport(t *testing.T) {
	r, err := Parse([]byte(sampleReport))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := Counts{Succeeded: 2, SucceededWithWarnings: 1, Failed: 1}
	if diff := cmp.Diff(want, r.Counts); diff != "" {
		t.Errorf("Counts mismatch (-want +got):\n%s", diff)
	}
	if len(r.Tests) != 3 {
		t.Fatalf("len(Tests) = %d, want 3", len(r.Tests))
	}

	failures := r.Failures()
	if len(failures) != 1 {
		t.Fatalf("len(Failures()) = %d, want 1", len(failures))
	}
	if failures[0].FullTestPath != "Rendering.Shadows.SoftEdge" || failures[0].Errors != 2 {
		t.Errorf("Failures()[0] = %+v", failures[0])
	}
}

func TestParse_NonASCIIPrefix(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF, 0xC3}, []byte(sampleReport)...)

	r, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if r.Succeeded != 2 {
		t.Errorf("Succeeded = %d, want 2", r.Succeeded)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"truncated", `{"succeeded": 1,`},
		{"missing tests", `{"succeeded":1,"succeededWithWarnings":0,"failed":0,"notRun":0,"inProcess":0}`},
		{"string counter", `{"succeeded":"1","succeededWithWarnings":0,"failed":0,"notRun":0,"inProcess":0,"tests":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Error("Parse() = nil error, want error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := Path(dir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(sampleReport), 0644); err != nil {
		t.Fatal(err)
	}

	r, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if r.Total() != 4 {
		t.Errorf("Total() = %d, want 4", r.Total())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "index.json"))
	if err == nil {
		t.Fatal("Load() = nil error, want error")
	}
	if !strings.Contains(err.Error(), "read report") {
		t.Errorf("Load() error = %v, want read report error", err)
	}
}

func TestPath(t *testing.T) {
	got := Path(filepath.Join("ci", "work"))
	want := filepath.Join("ci", "work", "test_results", "index.json")
	if got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestCounts_AddAndTotal(t *testing.T) {
	var c Counts
	c.Add(Counts{Succeeded: 1, Failed: 2})
	c.Add(Counts{SucceededWithWarnings: 3, NotRun: 4, InProcess: 5})

	want := Counts{Succeeded: 1, SucceededWithWarnings: 3, Failed: 2, NotRun: 4, InProcess: 5}
	if c != want {
		t.Errorf("Counts = %+v, want %+v", c, want)
	}
	if c.Total() != 15 {
		t.Errorf("Total() = %d, want 15", c.Total())
	}
}
