// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports -version, -verbose, -keys, -trace, -config and an optional file argument

package main

import (
	"flag"
	"fmt"
	"io"
)

type cliArgs struct {
	version    bool
	verbose    bool
	keys       bool
	traceFile  string
	configFile string
	path       string
}

// parseFlags parses argv (without the program name). The first positional
// argument is the file to open; any further ones are rejected.
func parseFlags(argv []string, stderr io.Writer) (cliArgs, error) {
	var args cliArgs

	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags] [file]\n\n", appName)
		fs.PrintDefaults()
	}

	fs.BoolVar(&args.version, "version", false, "Show version and exit")
	fs.BoolVar(&args.verbose, "verbose", false, "Enable debug logging")
	fs.BoolVar(&args.keys, "keys", false, "Print keybindings and exit")
	fs.StringVar(&args.traceFile, "trace", "", "Append a JSON line per key event to `file`")
	fs.StringVar(&args.configFile, "config", "", "Read settings from `file` instead of the global and project configs")

	if err := fs.Parse(argv); err != nil {
		return args, err
	}
	switch fs.NArg() {
	case 0:
	case 1:
		args.path = fs.Arg(0)
	default:
		return args, fmt.Errorf("expected at most one file, got %d", fs.NArg())
	}
	return args, nil
}
