// ABOUTME: CSI parser for Kitty "CSI u" keys and xterm modified/numbered function keys.
// ABOUTME: Decodes codepoints, modifier bitmasks and press/repeat/release event kinds.

package key

import (
	"strconv"
	"strings"
)

// Modifier bitmask values (encoded as modifiers-1 in the wire format).
const (
	kittyShift = 1 << iota // bit 0
	kittyAlt               // bit 1
	kittyCtrl              // bit 2
)

// tildeKeyTypes maps CSI number~ codes to their key types. 1/4 and 7/8 are
// the VT220 and rxvt spellings of Home/End.
var tildeKeyTypes = map[int]KeyType{
	1: KeyHome,
	3: KeyDelete,
	4: KeyEnd,
	5: KeyPageUp,
	6: KeyPageDown,
	7: KeyHome,
	8: KeyEnd,
}

// letterKeyTypes maps CSI letter terminators to their key types.
var letterKeyTypes = map[byte]KeyType{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
}

// ParseKittyKey parses a parameterised CSI key sequence. Formats:
//   - CSI <codepoint>[:<shifted>] [; <modifiers>[:<event>]] u
//   - CSI <number> [; <modifiers>[:<event>]] ~
//   - CSI 1 ; <modifiers>[:<event>] <letter>
//
// Returns the parsed Key and true on success; zero Key and false otherwise.
func ParseKittyKey(data string) (Key, bool) {
	if len(data) < 4 || data[0] != 0x1b || data[1] != '[' {
		return Key{}, false
	}

	body := data[2 : len(data)-1]
	terminator := data[len(data)-1]

	switch terminator {
	case 'u':
		return parseCSIu(body)
	case '~':
		return parseTilde(body)
	case 'A', 'B', 'C', 'D', 'H', 'F':
		return parseLetterTerminator(body, terminator)
	default:
		return Key{}, false
	}
}

func parseCSIu(body string) (Key, bool) {
	codepointStr, modifierStr, _ := strings.Cut(body, ";")

	codepoint, err := parseCodepoint(codepointStr)
	if err != nil {
		return Key{}, false
	}

	mods, kind, err := parseModifiers(modifierStr)
	if err != nil {
		return Key{}, false
	}

	k := buildKey(codepoint, mods)
	k.Kind = kind
	return k, true
}

func parseTilde(body string) (Key, bool) {
	numStr, modifierStr, _ := strings.Cut(body, ";")

	num, err := strconv.Atoi(numStr)
	if err != nil {
		return Key{}, false
	}

	kt, ok := tildeKeyTypes[num]
	if !ok {
		return Key{}, false
	}

	mods, kind, err := parseModifiers(modifierStr)
	if err != nil {
		return Key{}, false
	}

	k := Key{Type: kt, Kind: kind}
	applyModifiers(&k, mods)
	return k, true
}

func parseLetterTerminator(body string, letter byte) (Key, bool) {
	kt, ok := letterKeyTypes[letter]
	if !ok {
		return Key{}, false
	}

	_, modifierStr, _ := strings.Cut(body, ";")
	if modifierStr == "" {
		return Key{}, false
	}

	mods, kind, err := parseModifiers(modifierStr)
	if err != nil {
		return Key{}, false
	}

	k := Key{Type: kt, Kind: kind}
	applyModifiers(&k, mods)
	return k, true
}

// parseCodepoint extracts the primary unicode codepoint.
// Format: <codepoint>[:<shifted_key>[:<base_key>]]
func parseCodepoint(s string) (rune, error) {
	primary, _, _ := strings.Cut(s, ":")
	n, err := strconv.Atoi(primary)
	if err != nil {
		return 0, err
	}
	return rune(n), nil
}

// parseModifiers parses <modifiers>[:<event_type>] and returns the decoded
// bitmask and event kind (press when absent).
func parseModifiers(s string) (int, Kind, error) {
	if s == "" {
		return 0, KindPress, nil
	}

	modStr, eventStr, _ := strings.Cut(s, ":")

	modVal, err := strconv.Atoi(modStr)
	if err != nil {
		return 0, KindPress, err
	}
	mods := modVal - 1

	kind := KindPress
	if eventStr != "" {
		event, err := strconv.Atoi(eventStr)
		if err != nil {
			return 0, KindPress, err
		}
		switch event {
		case 2:
			kind = KindRepeat
		case 3:
			kind = KindRelease
		}
	}

	return mods, kind, nil
}

func buildKey(codepoint rune, mods int) Key {
	k := mapCodepointToKey(codepoint)

	// Tab + Shift = BackTab
	if k.Type == KeyTab && mods&kittyShift != 0 {
		k = Key{Type: KeyBackTab}
	}

	applyModifiers(&k, mods)
	return k
}

func mapCodepointToKey(cp rune) Key {
	switch cp {
	case 13:
		return Key{Type: KeyEnter}
	case 9:
		return Key{Type: KeyTab}
	case 127:
		return Key{Type: KeyBackspace}
	case 27:
		return Key{Type: KeyEscape}
	default:
		return Key{Type: KeyRune, Rune: cp}
	}
}

func applyModifiers(k *Key, mods int) {
	if mods&kittyShift != 0 {
		k.Shift = true
	}
	if mods&kittyAlt != 0 {
		k.Alt = true
	}
	if mods&kittyCtrl != 0 {
		k.Ctrl = true
	}
}
