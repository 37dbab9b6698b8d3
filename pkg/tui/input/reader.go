// ABOUTME: Reader decodes raw terminal input bytes from an io.Reader into key events, one per call.
// ABOUTME: Handles escape sequence framing, lone-ESC timeout, split UTF-8 runes, and bracketed paste skipping.

package input

import (
	"bytes"
	"io"
	"time"
	"unicode/utf8"

	"github.com/mauromedda/lined/pkg/tui/key"
)

const (
	readBufSize  = 256
	bracketStart = "\x1b[200~"
	bracketEnd   = "\x1b[201~"
	escTimeout   = 50 * time.Millisecond
)

// inputWaiter is implemented by sources that can report pending input
// without blocking, such as terminal.ProcessTerminal.
type inputWaiter interface {
	WaitInput(timeout time.Duration) (bool, error)
}

// Reader turns a raw byte stream into key.Key events. ReadKey blocks in
// the underlying Read only when no complete key is already buffered.
//
// An incomplete escape sequence is given escTimeout to finish when the
// source is an inputWaiter; after that it is resolved as it stands, so a
// lone ESC is the Escape key. Other sources are treated as one continuous
// stream and incomplete sequences wait for more bytes or EOF.
// A Reader is not safe for concurrent use.
type Reader struct {
	reader  io.Reader
	waiter  inputWaiter
	buf     []byte
	tmp     []byte
	err     error
	expired bool
}

// NewReader creates a Reader over r, typically the raw-mode stdin.
func NewReader(r io.Reader) *Reader {
	w, _ := r.(inputWaiter)
	return &Reader{
		reader: r,
		waiter: w,
		buf:    make([]byte, 0, readBufSize),
		tmp:    make([]byte, readBufSize),
	}
}

// ReadKey returns the next key event. It returns the underlying read
// error (io.EOF included) once all buffered bytes have been decoded.
func (b *Reader) ReadKey() (key.Key, error) {
	for {
		if len(b.buf) > 0 {
			eof := b.err != nil
			skip, inPaste := b.skipBracketedPaste(eof)
			if skip > 0 {
				b.buf = b.buf[skip:]
				continue
			}
			if !inPaste {
				consumed, k, needsMore := b.tryParse(eof || b.expired)
				if consumed > 0 {
					b.buf = b.buf[consumed:]
					b.expired = false
					return k, nil
				}
				if !needsMore {
					return key.Key{}, b.err
				}
				if !eof && b.waitForRest() {
					continue
				}
			}
		}
		if b.err != nil {
			return key.Key{}, b.err
		}
		b.fill()
	}
}

// waitForRest gives an incomplete sequence escTimeout to complete. It
// returns true when the pending bytes must be resolved without reading.
func (b *Reader) waitForRest() bool {
	if b.waiter == nil {
		return false
	}
	ready, err := b.waiter.WaitInput(escTimeout)
	if err != nil {
		b.err = err
		return true
	}
	if !ready {
		b.expired = true
		return true
	}
	return false
}

// fill performs one Read and appends whatever arrived.
func (b *Reader) fill() {
	n, err := b.reader.Read(b.tmp)
	if n > 0 {
		b.buf = append(b.buf, b.tmp[:n]...)
	}
	if err != nil {
		b.err = err
	}
}

// skipBracketedPaste returns how many bytes of a complete bracketed paste
// block sit at the front of the buffer, and whether an unterminated block
// is still arriving. Pasted text is not delivered as keystrokes. An
// unterminated block is dropped when final.
func (b *Reader) skipBracketedPaste(final bool) (int, bool) {
	if !bytes.HasPrefix(b.buf, []byte(bracketStart)) {
		return 0, false
	}
	end := bytes.Index(b.buf[len(bracketStart):], []byte(bracketEnd))
	if end < 0 {
		if final {
			return len(b.buf), false
		}
		return 0, true
	}
	return len(bracketStart) + end + len(bracketEnd), false
}

// tryParse attempts to decode one key from the front of b.buf. When final
// is set no more bytes will arrive, so incomplete input is resolved now.
// Returns (consumed bytes, parsed key, needs-more flag).
func (b *Reader) tryParse(final bool) (int, key.Key, bool) {
	if b.buf[0] == 0x1b {
		return b.parseEscape(final)
	}

	if !utf8.FullRune(b.buf) {
		if !final && len(b.buf) < utf8.UTFMax {
			return 0, key.Key{}, true
		}
		return 1, key.Key{Type: key.KeyUnknown}, false
	}

	r, size := utf8.DecodeRune(b.buf)
	if r == utf8.RuneError {
		return 1, key.Key{Type: key.KeyUnknown}, false
	}
	return size, key.ParseKey(string(b.buf[:size])), false
}

// parseEscape frames an ESC-prefixed sequence. When final, a lone ESC is
// the Escape key and a bare "ESC [" or "ESC O" is Alt plus that byte.
func (b *Reader) parseEscape(final bool) (int, key.Key, bool) {
	var n int
	if len(b.buf) > 1 {
		n = sequenceLen(b.buf)
	}
	if n == 0 {
		if !final {
			return 0, key.Key{}, true
		}
		if len(b.buf) == 2 {
			return 2, key.ParseKey(string(b.buf)), false
		}
		return 1, key.Key{Type: key.KeyEscape}, false
	}
	if n == 2 && b.buf[1] == '[' {
		return n, key.Key{Type: key.KeyUnknown}, false
	}
	return n, key.ParseKey(string(b.buf[:n])), false
}

// sequenceLen returns the byte length of the escape sequence at the start
// of buf, or 0 when it is not yet complete. len(buf) must be >= 2.
func sequenceLen(buf []byte) int {
	switch buf[1] {
	case '[':
		// CSI: parameter and intermediate bytes 0x20-0x3F, then a final byte.
		for i := 2; i < len(buf); i++ {
			c := buf[i]
			if c >= 0x40 && c <= 0x7e {
				return i + 1
			}
			if c < 0x20 || c > 0x3f {
				// Malformed; drop the introducer only.
				return 2
			}
		}
		return 0
	case 'O':
		if len(buf) < 3 {
			return 0
		}
		return 3
	case 0x1b:
		// ESC ESC: the first one stands alone.
		return 1
	default:
		if buf[1] >= 0x20 && buf[1] <= 0x7e {
			return 2 // Alt+<printable>
		}
		return 1
	}
}
