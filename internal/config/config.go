// ABOUTME: Settings loading with global + project YAML config merge
// ABOUTME: Missing files are ignored; malformed YAML is an error

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Settings holds the merged configuration.
type Settings struct {
	LogLevel    string              `yaml:"log_level,omitempty"`
	LogFile     string              `yaml:"log_file,omitempty"`
	TraceFile   string              `yaml:"trace_file,omitempty"`
	Keybindings map[string][]string `yaml:"keybindings,omitempty"`
}

// Load reads and merges global and project-local settings, then expands
// environment references. Project settings override global settings.
func Load(projectRoot string) (*Settings, error) {
	global, err := loadFile(GlobalConfigFile())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	project, err := loadFile(ProjectConfigFile(projectRoot))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	merged := merge(global, project)
	ResolveEnvVars(merged)
	return merged, nil
}

// LoadFile reads a single explicit settings file. Unlike Load, a missing
// file is an error.
func LoadFile(path string) (*Settings, error) {
	s, err := loadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	ResolveEnvVars(s)
	return s, nil
}

// loadFile reads Settings from a YAML file. Returns zero Settings alongside
// the error if the file does not exist.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// merge overlays project settings onto global settings.
// Non-zero project values override global values; keybindings merge per action.
func merge(global, project *Settings) *Settings {
	if global == nil {
		global = &Settings{}
	}
	if project == nil {
		return global
	}

	result := *global

	if project.LogLevel != "" {
		result.LogLevel = project.LogLevel
	}
	if project.LogFile != "" {
		result.LogFile = project.LogFile
	}
	if project.TraceFile != "" {
		result.TraceFile = project.TraceFile
	}

	if len(project.Keybindings) > 0 {
		kb := make(map[string][]string, len(global.Keybindings)+len(project.Keybindings))
		maps.Copy(kb, global.Keybindings)
		maps.Copy(kb, project.Keybindings)
		result.Keybindings = kb
	}

	return &result
}

// ParseLogLevel maps a config level name to a slog level. An empty name
// is info.
func ParseLogLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
}
