// ABOUTME: Control owns the raw-mode lifecycle and a write-behind command queue for a Terminal.
// ABOUTME: Draw calls only queue; Flush encodes the whole frame and writes it in one call.

package terminal

import (
	"errors"
)

// Error reports a failed terminal operation. Every terminal failure is
// fatal to the editor.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return "terminal: " + e.Op + ": " + e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// Control is the single owner of terminal state for one session.
// It is not safe for concurrent use.
type Control struct {
	term  Terminal
	queue []Command
	out   []byte
	raw   bool
}

// NewControl wraps t. No terminal state changes until Initialize.
func NewControl(t Terminal) *Control {
	return &Control{
		term:  t,
		queue: make([]Command, 0, 128),
	}
}

// Initialize enters raw mode, clears the screen, and homes the cursor.
func (c *Control) Initialize() error {
	if err := c.term.EnterRawMode(); err != nil {
		return &Error{Op: "enter raw mode", Err: err}
	}
	c.raw = true
	c.QueueClearScreen()
	c.QueueMoveTo(Position{})
	return c.Flush()
}

// Terminate flushes pending commands and then leaves raw mode. Raw mode
// is released even when the flush fails; both errors are reported.
func (c *Control) Terminate() error {
	flushErr := c.Flush()
	if !c.raw {
		return flushErr
	}
	c.raw = false
	var exitErr error
	if err := c.term.ExitRawMode(); err != nil {
		exitErr = &Error{Op: "exit raw mode", Err: err}
	}
	return errors.Join(flushErr, exitErr)
}

// Size queries the device for the current viewport. It is never cached.
func (c *Control) Size() (Size, error) {
	w, h, err := c.term.Size()
	if err != nil {
		return Size{}, &Error{Op: "query size", Err: err}
	}
	return Size{Rows: max(h, 0), Cols: max(w, 0)}, nil
}

// QueueClearScreen queues a full-screen erase.
func (c *Control) QueueClearScreen() { c.queue = append(c.queue, ClearScreen{}) }

// QueueClearLine queues an erase of the current line.
func (c *Control) QueueClearLine() { c.queue = append(c.queue, ClearLine{}) }

// QueuePrint queues text to be written at the cursor.
func (c *Control) QueuePrint(text string) { c.queue = append(c.queue, Print{Text: text}) }

// QueueMoveTo queues an absolute cursor move.
func (c *Control) QueueMoveTo(p Position) { c.queue = append(c.queue, MoveTo{Position: p}) }

// QueueHideCursor queues hiding the cursor.
func (c *Control) QueueHideCursor() { c.queue = append(c.queue, HideCursor{}) }

// QueueShowCursor queues showing the cursor.
func (c *Control) QueueShowCursor() { c.queue = append(c.queue, ShowCursor{}) }

// Pending returns a copy of the queued commands.
func (c *Control) Pending() []Command {
	out := make([]Command, len(c.queue))
	copy(out, c.queue)
	return out
}

// Flush writes every queued command in FIFO order with a single Write and
// empties the queue. The queue is drained even if the write fails.
func (c *Control) Flush() error {
	if len(c.queue) == 0 {
		return nil
	}
	c.out = c.out[:0]
	for _, cmd := range c.queue {
		c.out = cmd.appendANSI(c.out)
	}
	clear(c.queue)
	c.queue = c.queue[:0]

	if _, err := c.term.Write(c.out); err != nil {
		return &Error{Op: "write", Err: err}
	}
	return nil
}
