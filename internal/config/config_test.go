package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/AndreyAkinshin/uetest/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFile)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Full(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `
engine_path: /opt/UE_5.3
project: /work/Game/Game.uproject
workdir: /work/Game
extra_args: ["-nullrhi", "-unattended"]
timeout: 45m
malformed: skip
test_list: |
  Rendering,Shadows,BasicCast
  Audio,Mixer,Fade
log_level: debug
report:
  file: out/report.json
  metrics_file: out/uetest.prom
  bucket: ci-artifacts
  prefix: uetest
  region: eu-west-1
  trace_file: out/trace.json
  otlp_endpoint: localhost:4317
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := &Config{
		EnginePath: "/opt/UE_5.3",
		Project:    "/work/Game/Game.uproject",
		Workdir:    "/work/Game",
		ExtraArgs:  []string{"-nullrhi", "-unattended"},
		Timeout:    "45m",
		Malformed:  "skip",
		TestList:   "Rendering,Shadows,BasicCast\nAudio,Mixer,Fade\n",
		LogLevel:   "debug",
		Report: ReportConfig{
			File:         "out/report.json",
			MetricsFile:  "out/uetest.prom",
			Bucket:       "ci-artifacts",
			Prefix:       "uetest",
			Region:       "eu-west-1",
			TraceFile:    "out/trace.json",
			OTLPEndpoint: "localhost:4317",
		},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.TimeoutDuration(); got != 45*time.Minute {
		t.Errorf("TimeoutDuration() = %v, want 45m", got)
	}
}

func TestLoad_Empty(t *testing.T) {
	t.Parallel()
	cfg, err := Load(writeConfig(t, "# nothing configured\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(&Config{}, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "project: [unclosed"},
		{"unknown field", "project: Game.uproject\nprojekt: typo\n"},
		{"unknown report field", "report:\n  buckett: x\n"},
		{"wrong type", "extra_args: -nullrhi\n"},
		{"bad malformed policy", "malformed: ignore\n"},
		{"bad log level", "log_level: verbose\n"},
		{"not a mapping", "- a\n- b\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load() = nil error")
			}
			if !errors.Is(err, errors.KindConfig) {
				t.Errorf("Load() error kind = %v, want config", errors.KindOf(err))
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, errors.KindConfig) {
		t.Errorf("Load() error = %v, want config error", err)
	}
}

func TestLoadOptional(t *testing.T) {
	t.Parallel()
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), DefaultFile))
	if err != nil {
		t.Fatalf("LoadOptional() error = %v", err)
	}
	if cfg == nil || cfg.Project != "" {
		t.Errorf("LoadOptional() = %+v, want empty config", cfg)
	}

	cfg, err = LoadOptional(writeConfig(t, "project: Game.uproject\n"))
	if err != nil {
		t.Fatalf("LoadOptional() error = %v", err)
	}
	if cfg.Project != "Game.uproject" {
		t.Errorf("Project = %q", cfg.Project)
	}
}

func TestApplyDefaults(t *testing.T) {
	t.Parallel()
	cfg := &Config{}
	if err := ApplyDefaults(cfg); err != nil {
		t.Fatalf("ApplyDefaults() error = %v", err)
	}

	wd, _ := os.Getwd()
	if cfg.Workdir != wd {
		t.Errorf("Workdir = %q, want %q", cfg.Workdir, wd)
	}
	if cfg.Malformed != DefaultMalformed {
		t.Errorf("Malformed = %q, want %q", cfg.Malformed, DefaultMalformed)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}

	cfg = &Config{Workdir: "/ci", Malformed: "skip", LogLevel: "warn"}
	if err := ApplyDefaults(cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Workdir != "/ci" || cfg.Malformed != "skip" || cfg.LogLevel != "warn" {
		t.Errorf("ApplyDefaults() overwrote set fields: %+v", cfg)
	}
}

func TestApplyDefaults_RelativeWorkdir(t *testing.T) {
	t.Parallel()
	cfg := &Config{Workdir: filepath.Join("build", "ci")}
	if err := ApplyDefaults(cfg); err != nil {
		t.Fatal(err)
	}

	wd, _ := os.Getwd()
	want := filepath.Join(wd, "build", "ci")
	if cfg.Workdir != want {
		t.Errorf("Workdir = %q, want %q", cfg.Workdir, want)
	}
}

func TestTimeoutDuration_Unset(t *testing.T) {
	t.Parallel()
	if got := (&Config{}).TimeoutDuration(); got != 0 {
		t.Errorf("TimeoutDuration() = %v, want 0", got)
	}
}
