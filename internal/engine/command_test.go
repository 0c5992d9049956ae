package engine

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/AndreyAkinshin/uetest/internal/errors"
)

func TestBuildCommand(t *testing.T) {
	spec := CommandSpec{
		Editor:    "/opt/UE/Engine/Binaries/Linux/UnrealEditor",
		Project:   "/work/Game.uproject",
		Workdir:   "/work",
		ExtraArgs: []string{"-stdout", "-FullStdOutLogOutput"},
	}

	got := BuildCommand(spec, "Rendering.Shadows")

	want := []string{
		"/opt/UE/Engine/Binaries/Linux/UnrealEditor",
		"/work/Game.uproject",
		"-ExecCmds=Automation RunTest Rendering.Shadows;quit",
		"-TestExit=Automation Test Queue Empty",
		"-log",
		"-nosplash",
		"-Unattended",
		"-nopause",
		"-NullRHI",
		"-ReportOutputPath=" + filepath.Join("/work", "test_results"),
		"-stdout",
		"-FullStdOutLogOutput",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildCommand() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildCommand_Pure(t *testing.T) {
	spec := CommandSpec{Editor: "e", Project: "p", Workdir: "w", ExtraArgs: []string{"-x"}}

	first := BuildCommand(spec, "A")
	first[len(first)-1] = "mutated"
	second := BuildCommand(spec, "A")

	if second[len(second)-1] != "-x" {
		t.Errorf("BuildCommand() shares ExtraArgs storage: %v", second)
	}
}

func TestEditorPath(t *testing.T) {
	tests := []struct {
		goos string
		want string
	}{
		{"windows", filepath.Join("UE_5.3", "Engine", "Binaries", "Win64", "UnrealEditor.exe")},
		{"linux", filepath.Join("UE_5.3", "Engine", "Binaries", "Linux", "UnrealEditor")},
		{"darwin", filepath.Join("UE_5.3", "Engine", "Binaries", "Mac", "UnrealEditor.app", "Contents", "MacOS", "UnrealEditor")},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			got, err := EditorPath("UE_5.3", tt.goos)
			if err != nil {
				t.Fatalf("EditorPath() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("EditorPath() = %q, want %q", got, tt.want)
			}
		})
	}

	_, err := EditorPath("UE_5.3", "plan9")
	if !errors.Is(err, errors.KindEnvironment) {
		t.Errorf("EditorPath(plan9) error = %v, want environment error", err)
	}
}

func TestCommandLine(t *testing.T) {
	argv := []string{
		"/opt/Unreal Engine/UnrealEditor",
		"Game.uproject",
		"-ExecCmds=Automation RunTest A.B;quit",
		"-log",
		"",
	}

	got := CommandLine(argv)

	want := `"/opt/Unreal Engine/UnrealEditor" Game.uproject -ExecCmds="Automation RunTest A.B;quit" -log ""`
	if got != want {
		t.Errorf("CommandLine() = %s\nwant            %s", got, want)
	}
}
