// Package engine drives the Unreal editor: it builds the automation command
// line, runs it, guards the shared results directory and turns the produced
// report into an outcome for the runner.
package engine

import (
	"path/filepath"
	"strings"

	"github.com/AndreyAkinshin/uetest/internal/errors"
	"github.com/AndreyAkinshin/uetest/internal/results"
)

// CommandSpec holds everything needed to invoke the editor for one test ID.
type CommandSpec struct {
	Editor    string   // path to the editor executable
	Project   string   // .uproject file
	Workdir   string   // directory that receives test_results/
	ExtraArgs []string // appended after the standard flags
}

// editorBinaries maps GOOS to the editor path below the engine root.
var editorBinaries = map[string]string{
	"windows": filepath.Join("Engine", "Binaries", "Win64", "UnrealEditor.exe"),
	"linux":   filepath.Join("Engine", "Binaries", "Linux", "UnrealEditor"),
	"darwin":  filepath.Join("Engine", "Binaries", "Mac", "UnrealEditor.app", "Contents", "MacOS", "UnrealEditor"),
}

// EditorPath returns the editor executable inside an engine installation.
func EditorPath(enginePath, goos string) (string, error) {
	rel, ok := editorBinaries[goos]
	if !ok {
		return "", errors.Environmentf("no Unreal editor binary known for %s", goos)
	}
	return filepath.Join(enginePath, rel), nil
}

// BuildCommand returns the argv that runs the automation tests matching id
// and exits when the queue is empty. It has no side effects.
func BuildCommand(spec CommandSpec, id string) []string {
	argv := []string{
		spec.Editor,
		spec.Project,
		"-ExecCmds=Automation RunTest " + id + ";quit",
		"-TestExit=Automation Test Queue Empty",
		"-log",
		"-nosplash",
		"-Unattended",
		"-nopause",
		"-NullRHI",
		"-ReportOutputPath=" + results.Dir(spec.Workdir),
	}
	return append(argv, spec.ExtraArgs...)
}

// CommandLine renders argv for display, quoting arguments that need it.
func CommandLine(argv []string) string {
	parts := make([]string, len(argv))
	for i, a := range argv {
		parts[i] = quoteArg(a)
	}
	return strings.Join(parts, " ")
}

func quoteArg(a string) string {
	if a == "" {
		return `""`
	}
	if !strings.ContainsAny(a, " \t\"';") {
		return a
	}
	// Keep a leading -Flag= outside the quotes, as the editor expects.
	if strings.HasPrefix(a, "-") {
		if i := strings.IndexByte(a, '='); i > 0 {
			return a[:i+1] + `"` + strings.ReplaceAll(a[i+1:], `"`, `\"`) + `"`
		}
	}
	return `"` + strings.ReplaceAll(a, `"`, `\"`) + `"`
}
