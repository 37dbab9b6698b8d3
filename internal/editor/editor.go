// ABOUTME: Editor read-eval-render loop: one key event in, cursor update, one frame out
// ABOUTME: Owns the cursor position and the exit flag; the terminal is restored on every return path

package editor

import (
	"errors"

	"github.com/mauromedda/lined/internal/config"
	"github.com/mauromedda/lined/internal/keybindings"
	"github.com/mauromedda/lined/internal/log"
	"github.com/mauromedda/lined/internal/view"
	"github.com/mauromedda/lined/pkg/tui/key"
	"github.com/mauromedda/lined/pkg/tui/terminal"
)

// goodbye is printed on the cleared screen when the editor exits.
const goodbye = "Goodbye!\r\n"

// KeyReader blocks until one key event is available.
type KeyReader interface {
	ReadKey() (key.Key, error)
}

// Tracer records decoded key events and the action each dispatched to.
type Tracer interface {
	Trace(k key.Key, action string) error
}

// Option configures an Editor.
type Option func(*Editor)

// WithKeybindings replaces the default keybindings.
func WithKeybindings(m *keybindings.Manager) Option {
	return func(e *Editor) {
		e.bindings = m
	}
}

// WithTracer records every key event read by the loop.
func WithTracer(t Tracer) Option {
	return func(e *Editor) {
		e.tracer = t
	}
}

// Editor drives a single terminal session.
type Editor struct {
	ctl      *terminal.Control
	view     *view.View
	keys     KeyReader
	bindings *keybindings.Manager
	tracer   Tracer

	location terminal.Position
	exiting  bool
}

// New wires an editor to its terminal, view and key source.
func New(ctl *terminal.Control, v *view.View, keys KeyReader, opts ...Option) *Editor {
	e := &Editor{
		ctl:  ctl,
		view: v,
		keys: keys,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.bindings == nil {
		e.bindings = keybindings.New(nil)
	}
	return e
}

// Location returns the current cursor position.
func (e *Editor) Location() terminal.Position {
	return e.location
}

// Run initializes the terminal, loops until the quit action, and
// terminates the terminal whether or not the loop failed.
func (e *Editor) Run() (err error) {
	defer func() {
		err = errors.Join(err, e.ctl.Terminate())
		log.Debug("terminal restored")
	}()

	if err := e.ctl.Initialize(); err != nil {
		return err
	}
	log.Debug("terminal in raw mode")
	return e.repl()
}

func (e *Editor) repl() error {
	for {
		if err := e.refreshScreen(); err != nil {
			return err
		}
		if e.exiting {
			return nil
		}
		k, err := e.keys.ReadKey()
		if err != nil {
			return &terminal.Error{Op: "read input", Err: err}
		}
		if err := e.evalEvent(k); err != nil {
			return err
		}
	}
}

// refreshScreen draws one frame. The cursor stays hidden while rows are
// redrawn so it never flickers across the screen.
func (e *Editor) refreshScreen() error {
	e.ctl.QueueHideCursor()
	e.ctl.QueueMoveTo(terminal.Position{})

	if e.exiting {
		e.ctl.QueueClearScreen()
		e.ctl.QueuePrint(goodbye)
	} else {
		if err := e.view.Render(e.ctl); err != nil {
			return err
		}
		e.ctl.QueueMoveTo(e.location)
	}

	e.ctl.QueueShowCursor()
	return e.ctl.Flush()
}

func (e *Editor) evalEvent(k key.Key) error {
	if k.Kind == key.KindRelease {
		return nil
	}

	action := e.bindings.ActionForKey(k)
	log.Debug("key %s (%s) -> %q", k, k.Kind, action)
	if e.tracer != nil {
		if err := e.tracer.Trace(k, string(action)); err != nil {
			log.Warn("key trace disabled: %v", err)
			e.tracer = nil
		}
	}

	switch action {
	case config.ActionQuit:
		e.exiting = true
	case config.ActionCursorUp, config.ActionCursorDown,
		config.ActionCursorLeft, config.ActionCursorRight,
		config.ActionHome, config.ActionEnd,
		config.ActionPageUp, config.ActionPageDown:
		return e.movePoint(action)
	}
	return nil
}

// movePoint applies a cursor action against the current terminal size.
// Down, Right and PageDown stop one cell past the last row or column.
func (e *Editor) movePoint(action config.KeyAction) error {
	size, err := e.ctl.Size()
	if err != nil {
		return err
	}

	loc := &e.location
	switch action {
	case config.ActionCursorUp:
		loc.Row = max(loc.Row-1, 0)
	case config.ActionCursorDown:
		loc.Row = min(loc.Row+1, size.Rows)
	case config.ActionCursorLeft:
		loc.Col = max(loc.Col-1, 0)
	case config.ActionCursorRight:
		loc.Col = min(loc.Col+1, size.Cols)
	case config.ActionHome:
		loc.Col = 0
	case config.ActionEnd:
		loc.Col = max(size.Cols-1, 0)
	case config.ActionPageUp:
		loc.Row = 0
	case config.ActionPageDown:
		loc.Row = size.Rows
	}
	return nil
}
