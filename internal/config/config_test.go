// ABOUTME: Tests for config loading, merging, env expansion, and log level parsing
// ABOUTME: Uses temp directories for isolated file-based tests

package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestMerge(t *testing.T) {
	t.Parallel()

	global := &Settings{LogLevel: "info", LogFile: "/tmp/global.log"}
	project := &Settings{LogLevel: "debug"}

	result := merge(global, project)

	if result.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", result.LogLevel, "debug")
	}
	if result.LogFile != "/tmp/global.log" {
		t.Errorf("LogFile = %q, want global value", result.LogFile)
	}
}

func TestMerge_Nil(t *testing.T) {
	t.Parallel()

	result := merge(nil, nil)
	if result == nil {
		t.Fatal("merge(nil, nil) should return non-nil")
	}
}

func TestMerge_KeybindingsPerAction(t *testing.T) {
	t.Parallel()

	global := &Settings{Keybindings: map[string][]string{"quit": {"ctrl+x"}, "home": {"ctrl+a"}}}
	project := &Settings{Keybindings: map[string][]string{"home": {"ctrl+h"}}}

	result := merge(global, project)

	if got := result.Keybindings["quit"]; !slices.Equal(got, []string{"ctrl+x"}) {
		t.Errorf("quit = %v, want global binding", got)
	}
	if got := result.Keybindings["home"]; !slices.Equal(got, []string{"ctrl+h"}) {
		t.Errorf("home = %v, want project override", got)
	}
	if got := global.Keybindings["home"]; !slices.Equal(got, []string{"ctrl+a"}) {
		t.Errorf("merge mutated global settings: home = %v", got)
	}
}

func TestLoadFile_NotExist(t *testing.T) {
	t.Parallel()

	s, err := loadFile("/nonexistent/path/config.yaml")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if s == nil {
		t.Fatal("expected zero Settings alongside the error")
	}
}

func TestLoadFile_YAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `log_level: debug
log_file: /var/tmp/lined.log
keybindings:
  quit: [ctrl+x, ctrl+q]
  pageDown: [pgdown, ctrl+v]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if s.LogLevel != "debug" || s.LogFile != "/var/tmp/lined.log" {
		t.Errorf("Settings = %+v", s)
	}
	if got := s.Keybindings["quit"]; !slices.Equal(got, []string{"ctrl+x", "ctrl+q"}) {
		t.Errorf("quit bindings = %v", got)
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log_level: [unclosed\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected parse error for malformed YAML")
	}
}

func TestLoadFile_MissingIsError(t *testing.T) {
	t.Parallel()

	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("LoadFile() error = %v, want fs.ErrNotExist", err)
	}
}

func TestLoad_ProjectOverridesGlobal(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	project := t.TempDir()

	writeConfig(t, GlobalConfigFile(), "log_level: warn\ntrace_file: /tmp/global-trace\n")
	writeConfig(t, ProjectConfigFile(project), "log_level: error\n")

	s, err := Load(project)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.LogLevel != "error" {
		t.Errorf("LogLevel = %q, want project value", s.LogLevel)
	}
	if s.TraceFile != "/tmp/global-trace" {
		t.Errorf("TraceFile = %q, want global value", s.TraceFile)
	}
}

func TestLoad_NoFiles(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	s, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.LogLevel != "" || len(s.Keybindings) != 0 {
		t.Errorf("expected zero settings, got %+v", s)
	}
}

func TestResolveEnvVars(t *testing.T) {
	t.Setenv("LINED_TEST_DIR", "/srv/logs")

	s := &Settings{LogFile: "${LINED_TEST_DIR}/lined.log", TraceFile: "${LINED_UNSET_VAR}trace"}
	ResolveEnvVars(s)

	if s.LogFile != "/srv/logs/lined.log" {
		t.Errorf("LogFile = %q", s.LogFile)
	}
	if s.TraceFile != "trace" {
		t.Errorf("TraceFile = %q, unset vars should expand to empty", s.TraceFile)
	}
}

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "", want: slog.LevelInfo},
		{in: "debug", want: slog.LevelDebug},
		{in: " WARN ", want: slog.LevelWarn},
		{in: "warning", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "loud", want: slog.LevelInfo, wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseLogLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLogLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
