// ABOUTME: CLI entry point for lined with terminal crash recovery
// ABOUTME: Parses flags, loads config and the file, then runs the editor on the process terminal

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mauromedda/lined/internal/config"
	"github.com/mauromedda/lined/internal/editor"
	"github.com/mauromedda/lined/internal/keybindings"
	"github.com/mauromedda/lined/internal/keytrace"
	linedlog "github.com/mauromedda/lined/internal/log"
	"github.com/mauromedda/lined/internal/view"
	"github.com/mauromedda/lined/pkg/tui/input"
	"github.com/mauromedda/lined/pkg/tui/terminal"
)

const appName = "lined"

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	args, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	if args.version {
		fmt.Printf("%s %s (%s) built %s\n", appName, version, commit, date)
		os.Exit(0)
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run performs the full initialization sequence and runs the editor on
// the process terminal.
func run(args cliArgs) error {
	pt := terminal.NewProcessTerminal()
	return guarded(pt, func() error { return runSession(args, pt) })
}

// guarded runs fn with panic recovery in the outermost frame, so every
// cleanup fn defers has already run when RestoreOnPanic exits.
func guarded(t terminal.Terminal, fn func() error) error {
	defer terminal.RestoreOnPanic(t)
	return fn()
}

// runSession does everything that can fail without the terminal before
// entering raw mode.
func runSession(args cliArgs, pt *terminal.ProcessTerminal) error {
	settings, err := loadSettings(args.configFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	closeLog, err := setupLogging(args, settings)
	if err != nil {
		return err
	}
	defer closeLog()

	kb := config.NewKeybindings()
	for _, name := range kb.Merge(settings.Keybindings) {
		linedlog.Warn("keybindings: unknown action %q", name)
	}
	bindings := keybindings.New(kb)
	for _, c := range bindings.Conflicts() {
		linedlog.Warn("keybindings: %s is bound to %v", c.Key, c.Actions)
	}

	if args.keys {
		fmt.Print(bindings.FormatAll())
		return nil
	}

	v := view.New(appName, version)
	if args.path != "" {
		if err := v.Load(args.path); err != nil {
			return err
		}
		linedlog.Debug("loaded %s: %d lines", args.path, v.Buffer().Len())
	}

	opts := []editor.Option{editor.WithKeybindings(bindings)}
	traceFile := args.traceFile
	if traceFile == "" {
		traceFile = settings.TraceFile
	}
	if traceFile != "" {
		tr, err := keytrace.Open(traceFile)
		if err != nil {
			return err
		}
		defer tr.Close()
		opts = append(opts, editor.WithTracer(tr))
	}

	if args.verbose && settings.LogFile == "" {
		linedlog.Warn("debug output is discarded while the editor runs; set log_file to keep it")
	}
	defer quietWhileRaw(settings)()

	ed := editor.New(terminal.NewControl(pt), v, input.NewReader(pt), opts...)
	return ed.Run()
}

// loadSettings reads an explicit config file, or the global and project
// configs relative to the working directory.
func loadSettings(path string) (*config.Settings, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return config.Load(cwd)
}

// quietWhileRaw discards log output for the session unless it goes to a
// log file. Raw mode turns off newline translation, so stderr lines would
// tear through the frame. The returned func restores the previous output.
func quietWhileRaw(settings *config.Settings) func() {
	if settings.LogFile != "" {
		return func() {}
	}
	prev := linedlog.SetOutput(io.Discard)
	return func() { linedlog.SetOutput(prev) }
}

// setupLogging applies the configured level and destination. -verbose
// always wins over the configured level.
func setupLogging(args cliArgs, settings *config.Settings) (func(), error) {
	level, err := config.ParseLogLevel(settings.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if args.verbose {
		level = linedlog.LevelDebug
	}
	linedlog.SetLevel(level)

	if settings.LogFile == "" {
		return func() {}, nil
	}
	f, err := os.OpenFile(settings.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	prev := linedlog.SetOutput(f)
	return func() {
		linedlog.SetOutput(prev)
		_ = f.Close()
	}, nil
}
