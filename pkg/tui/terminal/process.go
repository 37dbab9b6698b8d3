// ABOUTME: ProcessTerminal implements Terminal using os.Stdin/os.Stdout and golang.org/x/term.
// ABOUTME: Saves the cooked state on raw-mode entry and restores it on exit.

package terminal

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"
)

// ErrNotTerminal is returned when stdin or stdout is not attached to a TTY.
var ErrNotTerminal = errors.New("not a terminal")

// ProcessTerminal is the real terminal backed by the process's stdio.
type ProcessTerminal struct {
	in       *os.File
	out      *os.File
	oldState *term.State
}

// NewProcessTerminal returns a ProcessTerminal over os.Stdin and os.Stdout.
func NewProcessTerminal() *ProcessTerminal {
	return &ProcessTerminal{in: os.Stdin, out: os.Stdout}
}

// EnterRawMode switches stdin to raw mode, saving the previous state.
// Calling it twice keeps the first saved state.
func (t *ProcessTerminal) EnterRawMode() error {
	if t.oldState != nil {
		return nil
	}
	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("entering raw mode on %s: %w", t.in.Name(), ErrNotTerminal)
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	t.oldState = state
	return nil
}

// ExitRawMode restores the terminal to its previous state.
func (t *ProcessTerminal) ExitRawMode() error {
	if t.oldState == nil {
		return nil
	}
	if err := term.Restore(int(t.in.Fd()), t.oldState); err != nil {
		return fmt.Errorf("exiting raw mode: %w", err)
	}
	t.oldState = nil
	return nil
}

// Size returns the current terminal dimensions of stdout.
func (t *ProcessTerminal) Size() (width, height int, err error) {
	w, h, err := term.GetSize(int(t.out.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("getting terminal size: %w", err)
	}
	return w, h, nil
}

// Write sends bytes to stdout.
func (t *ProcessTerminal) Write(p []byte) (int, error) {
	n, err := t.out.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to stdout: %w", err)
	}
	return n, nil
}

// Read reads raw input bytes from stdin.
func (t *ProcessTerminal) Read(p []byte) (int, error) {
	return t.in.Read(p)
}
