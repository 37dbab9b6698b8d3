// ABOUTME: Buffer holds the document as an ordered sequence of lines without terminators.
// ABOUTME: Load reads a file once, decoding BOM-marked UTF-16/UTF-8 and rejecting invalid UTF-8.

package buffer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrInvalidEncoding is wrapped by LoadError when the source is not valid text.
var ErrInvalidEncoding = errors.New("invalid UTF-8 encoding")

// LoadError reports a failed read of a line source.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string { return fmt.Sprintf("loading %s: %v", e.Path, e.Err) }

func (e *LoadError) Unwrap() error { return e.Err }

// Buffer is an ordered sequence of lines. The zero value is an empty buffer.
type Buffer struct {
	lines []string
}

// New returns a buffer holding lines as given.
func New(lines ...string) *Buffer {
	return &Buffer{lines: lines}
}

// IsEmpty reports whether the buffer has no lines at all.
func (b *Buffer) IsEmpty() bool { return len(b.lines) == 0 }

// Len returns the number of lines.
func (b *Buffer) Len() int { return len(b.lines) }

// Line returns line i, or false when i is out of range.
func (b *Buffer) Line(i int) (string, bool) {
	if i < 0 || i >= len(b.lines) {
		return "", false
	}
	return b.lines[i], true
}

// Lines returns a copy of all lines.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Load replaces the buffer contents with the lines of the file at path.
// On failure the buffer is left unchanged and a *LoadError is returned.
func (b *Buffer) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	return b.LoadFrom(f, path)
}

// LoadFrom replaces the buffer contents with the lines read from r. name
// identifies the source in errors.
func (b *Buffer) LoadFrom(r io.Reader, name string) error {
	// A BOM selects UTF-16 or UTF-8 and is stripped; without one the bytes
	// pass through untouched and must already be UTF-8.
	dec := unicode.BOMOverride(encoding.Nop.NewDecoder())
	data, err := io.ReadAll(transform.NewReader(r, dec))
	if err != nil {
		return &LoadError{Path: name, Err: err}
	}
	if !utf8.Valid(data) {
		return &LoadError{Path: name, Err: ErrInvalidEncoding}
	}

	b.lines = splitLines(string(data))
	return nil
}

// splitLines splits on "\n", drops a trailing "\r" from each line, and
// does not produce an empty line after a final terminator.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
