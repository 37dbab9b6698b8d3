// ABOUTME: View renders the buffer, or a centered welcome banner when it is empty, one row per terminal line
// ABOUTME: Rows are queued on the screen; the caller positions the cursor and flushes

package view

import (
	"fmt"
	"strings"

	"github.com/mauromedda/lined/internal/buffer"
	"github.com/mauromedda/lined/pkg/tui/terminal"
	"github.com/mauromedda/lined/pkg/tui/width"
)

// emptyRow marks a row past the end of content.
const emptyRow = "~"

// Screen is the part of terminal.Control the view draws through.
type Screen interface {
	Size() (terminal.Size, error)
	QueueClearLine()
	QueuePrint(text string)
}

// View owns the document buffer for the life of the process.
type View struct {
	buf     buffer.Buffer
	name    string
	version string
}

// New returns a View with an empty buffer. name and version make up the
// welcome banner.
func New(name, version string) *View {
	return &View{name: name, version: version}
}

// Load replaces the buffer with the lines of the file at path.
func (v *View) Load(path string) error {
	return v.buf.Load(path)
}

// Buffer exposes the owned buffer for inspection.
func (v *View) Buffer() *buffer.Buffer {
	return &v.buf
}

// Render queues one row per visible terminal line. Every row starts with
// a line clear; all rows but the last end with "\r\n" so the terminal
// never scrolls an extra blank line in.
func (v *View) Render(s Screen) error {
	size, err := s.Size()
	if err != nil {
		return err
	}

	welcome := v.buf.IsEmpty()
	for row := range size.Rows {
		s.QueueClearLine()

		switch line, ok := v.buf.Line(row); {
		case ok:
			s.QueuePrint(line)
		case welcome && row == size.Rows/3:
			s.QueuePrint(v.WelcomeMessage(size.Cols))
		default:
			s.QueuePrint(emptyRow)
		}

		if row+1 < size.Rows {
			s.QueuePrint("\r\n")
		}
	}
	return nil
}

// Banner returns the unpadded welcome text.
func (v *View) Banner() string {
	return fmt.Sprintf("%s editor --version %s", v.name, v.version)
}

// WelcomeMessage centers the banner in cols columns behind the row marker
// and clips the result to cols. Narrow viewports show a prefix.
func (v *View) WelcomeMessage(cols int) string {
	msg := v.Banner()
	padding := max(0, (cols-width.VisibleWidth(msg))/2)

	var b strings.Builder
	b.WriteString(emptyRow)
	if padding >= 1 {
		b.WriteString(strings.Repeat(" ", padding-1))
	}
	b.WriteString(msg)
	return width.Clip(b.String(), cols)
}
