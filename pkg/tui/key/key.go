// ABOUTME: Defines the Key event type and ParseKey for terminal keyboard input parsing.
// ABOUTME: Handles printable runes, control chords, and delegates escape sequences to legacy/kitty parsers.

package key

import (
	"strings"
	"unicode/utf8"
)

// Key represents a parsed keyboard input event.
type Key struct {
	Type  KeyType
	Rune  rune // For KeyRune, including Ctrl+<letter> chords
	Alt   bool
	Ctrl  bool
	Shift bool
	Kind  Kind
}

// KeyType enumerates the kinds of key events the editor can receive.
type KeyType int

const (
	KeyRune      KeyType = iota // Printable character or Ctrl+<rune>
	KeyEnter                    // Enter / Return
	KeyTab                      // Tab
	KeyBackTab                  // Shift+Tab
	KeyBackspace                // Backspace / DEL (0x7F)
	KeyDelete                   // Delete key
	KeyUp                       // Arrow up
	KeyDown                     // Arrow down
	KeyLeft                     // Arrow left
	KeyRight                    // Arrow right
	KeyHome                     // Home
	KeyEnd                      // End
	KeyPageUp                   // Page Up
	KeyPageDown                 // Page Down
	KeyEscape                   // Escape
	KeyUnknown                  // Unrecognized input
)

// Kind distinguishes key presses from auto-repeat and release reports.
// Legacy terminals only ever report presses.
type Kind int

const (
	KindPress Kind = iota
	KindRepeat
	KindRelease
)

// Ctrl returns the Ctrl+<r> chord for a lowercase rune.
func Ctrl(r rune) Key {
	return Key{Type: KeyRune, Rune: r, Ctrl: true}
}

// ParseKey parses raw terminal input data into a Key.
// It handles single runes, control characters, and escape sequences.
func ParseKey(data string) Key {
	if len(data) == 0 {
		return Key{Type: KeyUnknown}
	}

	// Single-byte fast path
	if len(data) == 1 {
		return parseSingleByte(data[0])
	}

	// Escape sequence path
	if data[0] == 0x1b {
		return parseEscapeSequence(data)
	}

	// Multi-byte UTF-8 rune
	r, size := utf8.DecodeRuneInString(data)
	if r == utf8.RuneError || size != len(data) {
		return Key{Type: KeyUnknown}
	}
	return Key{Type: KeyRune, Rune: r}
}

// parseSingleByte handles a single-byte input (ASCII or control character).
func parseSingleByte(b byte) Key {
	switch {
	case b == 0x0d:
		return Key{Type: KeyEnter}
	case b == 0x09:
		return Key{Type: KeyTab}
	case b == 0x7f:
		return Key{Type: KeyBackspace}
	case b == 0x1b:
		return Key{Type: KeyEscape}
	case b == 0x00:
		return Ctrl(' ')
	case b >= 0x01 && b <= 0x1a:
		// Ctrl+A .. Ctrl+Z arrive as 0x01 .. 0x1A.
		return Ctrl(rune('a' + b - 1))
	case b >= 0x20 && b <= 0x7e:
		return Key{Type: KeyRune, Rune: rune(b)}
	}
	return Key{Type: KeyUnknown}
}

// parseEscapeSequence delegates to legacy and kitty parsers for ESC-prefixed data.
func parseEscapeSequence(data string) Key {
	if k, ok := ParseKittyKey(data); ok {
		return k
	}

	if k, ok := legacySequences[data]; ok {
		return k
	}

	// Alt+letter: ESC followed by a single printable byte (0x20..0x7e)
	if len(data) == 2 && data[1] >= 0x20 && data[1] <= 0x7e {
		return Key{Type: KeyRune, Rune: rune(data[1]), Alt: true}
	}

	return Key{Type: KeyUnknown}
}

// keyTypeNames provides human-readable labels for each KeyType.
var keyTypeNames = map[KeyType]string{
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackTab:   "BackTab",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyEscape:    "Escape",
	KeyUnknown:   "Unknown",
}

// Name returns the label of the key code alone, without modifiers.
func (k Key) Name() string {
	if k.Type == KeyRune {
		if k.Rune == ' ' {
			return "Space"
		}
		return string(k.Rune)
	}
	if name, ok := keyTypeNames[k.Type]; ok {
		return name
	}
	return "Unknown"
}

// String returns a human-readable representation such as "Ctrl+Q" or "Alt+Up".
func (k Key) String() string {
	var b strings.Builder
	if k.Ctrl {
		b.WriteString("Ctrl+")
	}
	if k.Alt {
		b.WriteString("Alt+")
	}
	if k.Shift && k.Type != KeyBackTab {
		b.WriteString("Shift+")
	}
	name := k.Name()
	if k.Ctrl && k.Type == KeyRune && k.Rune != ' ' {
		name = strings.ToUpper(name)
	}
	b.WriteString(name)
	return b.String()
}

var kindNames = [...]string{KindPress: "press", KindRepeat: "repeat", KindRelease: "release"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}
