// ABOUTME: Queued terminal commands and their ANSI encodings.
// ABOUTME: Commands append their escape sequence to a byte slice; only Flush writes them out.

package terminal

import (
	"fmt"
	"strconv"
)

// Command is one queued terminal operation.
type Command interface {
	appendANSI(dst []byte) []byte
	fmt.Stringer
}

// ClearScreen erases the whole screen.
type ClearScreen struct{}

// ClearLine erases the line under the cursor.
type ClearLine struct{}

// Print writes text at the cursor.
type Print struct {
	Text string
}

// MoveTo places the cursor at an absolute cell.
type MoveTo struct {
	Position
}

// HideCursor makes the cursor invisible.
type HideCursor struct{}

// ShowCursor makes the cursor visible.
type ShowCursor struct{}

func (ClearScreen) appendANSI(dst []byte) []byte { return append(dst, "\x1b[2J"...) }
func (ClearLine) appendANSI(dst []byte) []byte   { return append(dst, "\x1b[2K"...) }
func (p Print) appendANSI(dst []byte) []byte     { return append(dst, p.Text...) }
func (HideCursor) appendANSI(dst []byte) []byte  { return append(dst, "\x1b[?25l"...) }
func (ShowCursor) appendANSI(dst []byte) []byte  { return appendShowCursor(dst) }

// appendANSI emits CUP, which is one-based and row first.
func (m MoveTo) appendANSI(dst []byte) []byte {
	dst = append(dst, "\x1b["...)
	dst = strconv.AppendInt(dst, int64(max(m.Row, 0)+1), 10)
	dst = append(dst, ';')
	dst = strconv.AppendInt(dst, int64(max(m.Col, 0)+1), 10)
	return append(dst, 'H')
}

func appendShowCursor(dst []byte) []byte { return append(dst, "\x1b[?25h"...) }

func (ClearScreen) String() string { return "ClearScreen" }
func (ClearLine) String() string   { return "ClearLine" }
func (p Print) String() string     { return fmt.Sprintf("Print(%q)", p.Text) }
func (m MoveTo) String() string    { return fmt.Sprintf("MoveTo(%d,%d)", m.Col, m.Row) }
func (HideCursor) String() string  { return "HideCursor" }
func (ShowCursor) String() string  { return "ShowCursor" }
