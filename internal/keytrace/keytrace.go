// ABOUTME: Appends one JSON object per decoded key event to a trace file
// ABOUTME: Encoding goes through easyjson's jwriter so tracing adds no reflection to the input path

package keytrace

import (
	"fmt"
	"io"
	"os"

	"github.com/mailru/easyjson/jwriter"

	"github.com/mauromedda/lined/pkg/tui/key"
)

// Event is one traced key event together with the action it resolved to.
type Event struct {
	Seq    int
	Key    key.Key
	Action string
}

// MarshalEasyJSON writes the event as a flat JSON object.
func (e Event) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawString(`{"seq":`)
	w.Int(e.Seq)
	w.RawString(`,"code":`)
	w.String(code(e.Key))
	w.RawString(`,"rune":`)
	if e.Key.Type == key.KeyRune {
		w.String(string(e.Key.Rune))
	} else {
		w.String("")
	}
	w.RawString(`,"ctrl":`)
	w.Bool(e.Key.Ctrl)
	w.RawString(`,"alt":`)
	w.Bool(e.Key.Alt)
	w.RawString(`,"shift":`)
	w.Bool(e.Key.Shift)
	w.RawString(`,"kind":`)
	w.String(e.Key.Kind.String())
	w.RawString(`,"action":`)
	w.String(e.Action)
	w.RawByte('}')
}

// code names the key without its modifiers; printable keys report "Char".
func code(k key.Key) string {
	if k.Type == key.KeyRune && k.Rune != ' ' {
		return "Char"
	}
	return k.Name()
}

// Writer numbers events from 1 and writes each as its own line.
// It is not safe for concurrent use.
type Writer struct {
	out    io.Writer
	closer io.Closer
	seq    int
}

// New returns a Writer that traces to w.
func New(w io.Writer) *Writer {
	return &Writer{out: w}
}

// Open creates or appends to the trace file at path.
func Open(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening key trace: %w", err)
	}
	return &Writer{out: f, closer: f}, nil
}

// Trace records k and the action it dispatched to; action is empty for
// unbound keys.
func (t *Writer) Trace(k key.Key, action string) error {
	t.seq++
	var jw jwriter.Writer
	Event{Seq: t.seq, Key: k, Action: action}.MarshalEasyJSON(&jw)
	jw.RawByte('\n')
	if jw.Error != nil {
		return jw.Error
	}
	if _, err := jw.DumpTo(t.out); err != nil {
		return fmt.Errorf("writing key trace: %w", err)
	}
	return nil
}

// Close closes the underlying file when the Writer owns one.
func (t *Writer) Close() error {
	if t.closer == nil {
		return nil
	}
	return t.closer.Close()
}
