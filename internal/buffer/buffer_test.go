// ABOUTME: Tests for Buffer line loading, splitting rules, encodings, and error reporting
// ABOUTME: Uses t.TempDir files and in-memory readers

package buffer

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"golang.org/x/text/encoding/unicode"
)

func TestBuffer_ZeroValueIsEmpty(t *testing.T) {
	t.Parallel()

	var b Buffer
	if !b.IsEmpty() || b.Len() != 0 {
		t.Errorf("zero Buffer: IsEmpty=%v Len=%d", b.IsEmpty(), b.Len())
	}
	if _, ok := b.Line(0); ok {
		t.Error("Line(0) on empty buffer should report false")
	}
}

func TestBuffer_Line(t *testing.T) {
	t.Parallel()

	b := New("one", "two")
	if got, ok := b.Line(1); !ok || got != "two" {
		t.Errorf("Line(1) = (%q, %v), want (two, true)", got, ok)
	}
	for _, i := range []int{-1, 2} {
		if _, ok := b.Line(i); ok {
			t.Errorf("Line(%d) should be out of range", i)
		}
	}
}

func TestBuffer_LoadFrom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty source", input: "", want: []string{}},
		{name: "single line no terminator", input: "hello", want: []string{"hello"}},
		{name: "single line with terminator", input: "hello\n", want: []string{"hello"}},
		{name: "blank line only", input: "\n", want: []string{""}},
		{name: "preserves order and blanks", input: "a\n\nb\nc", want: []string{"a", "", "b", "c"}},
		{name: "crlf terminators dropped", input: "a\r\nb\r\n", want: []string{"a", "b"}},
		{name: "lone carriage return kept inside line", input: "a\rb\n", want: []string{"a\rb"}},
		{name: "utf8 bom stripped", input: "\xef\xbb\xbfhi\n", want: []string{"hi"}},
		{name: "unicode content", input: "héllo\n世界\n", want: []string{"héllo", "世界"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var b Buffer
			if err := b.LoadFrom(strings.NewReader(tt.input), "test"); err != nil {
				t.Fatalf("LoadFrom() error: %v", err)
			}
			if got := b.Lines(); !slices.Equal(got, tt.want) {
				t.Errorf("Lines() = %q, want %q", got, tt.want)
			}
			for i := range b.Len() {
				line, _ := b.Line(i)
				if strings.ContainsRune(line, '\n') {
					t.Errorf("line %d contains a newline: %q", i, line)
				}
			}
		})
	}
}

func TestBuffer_LoadFromUTF16(t *testing.T) {
	t.Parallel()

	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	data, err := enc.String("first\r\nsecond\n")
	if err != nil {
		t.Fatal(err)
	}

	var b Buffer
	if err := b.LoadFrom(strings.NewReader(data), "utf16"); err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if got, want := b.Lines(), []string{"first", "second"}; !slices.Equal(got, want) {
		t.Errorf("Lines() = %q, want %q", got, want)
	}
}

func TestBuffer_LoadFromInvalidEncoding(t *testing.T) {
	t.Parallel()

	b := New("kept")
	err := b.LoadFrom(strings.NewReader("abc\xffdef"), "bad.txt")

	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("error = %v, want *LoadError", err)
	}
	if loadErr.Path != "bad.txt" {
		t.Errorf("Path = %q, want bad.txt", loadErr.Path)
	}
	if !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("error = %v, want ErrInvalidEncoding", err)
	}
	if got := b.Lines(); !slices.Equal(got, []string{"kept"}) {
		t.Errorf("failed load must not modify the buffer, got %q", got)
	}
}

func TestBuffer_Load(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte("alpha\nbeta\ngamma\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var b Buffer
	if err := b.Load(path); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got, want := b.Lines(), []string{"alpha", "beta", "gamma"}; !slices.Equal(got, want) {
		t.Errorf("Lines() = %q, want %q", got, want)
	}

	// A second load replaces rather than appends.
	if err := os.WriteFile(path, []byte("only\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := b.Load(path); err != nil {
		t.Fatalf("second Load() error: %v", err)
	}
	if got := b.Lines(); !slices.Equal(got, []string{"only"}) {
		t.Errorf("Lines() after reload = %q, want [only]", got)
	}
}

func TestBuffer_LoadMissingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing.txt")
	var b Buffer
	err := b.Load(path)

	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("error = %v, want *LoadError", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error = %v, want fs.ErrNotExist", err)
	}
	if !strings.Contains(err.Error(), "missing.txt") {
		t.Errorf("error %q should name the path", err)
	}
}
