// ABOUTME: Keybindings manager with O(1) key-to-action lookup
// ABOUTME: Normalizes configured key strings and detects keys bound to several actions

package keybindings

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mauromedda/lined/internal/config"
	"github.com/mauromedda/lined/pkg/tui/key"
)

// ConflictInfo describes a binding conflict where multiple actions share a key.
type ConflictInfo struct {
	Key     string
	Actions []config.KeyAction
}

// Manager provides O(1) key-to-action lookup from merged keybindings.
type Manager struct {
	bindings *config.Keybindings
	lookup   map[string]config.KeyAction // "ctrl+q" → ActionQuit
}

// New creates a Manager from an existing Keybindings instance. A nil kb
// means the defaults.
func New(kb *config.Keybindings) *Manager {
	if kb == nil {
		kb = config.NewKeybindings()
	}
	m := &Manager{bindings: kb}
	m.buildLookup()
	return m
}

// ActionForKey returns the action bound to the given key, or "" if unbound.
func (m *Manager) ActionForKey(k key.Key) config.KeyAction {
	return m.lookup[keyToString(k)]
}

// Conflicts detects keys bound to multiple actions, sorted by key.
func (m *Manager) Conflicts() []ConflictInfo {
	keyActions := make(map[string][]config.KeyAction)
	for _, action := range config.Actions {
		for _, k := range m.bindings.GetBindings(action) {
			norm := normalize(k)
			keyActions[norm] = append(keyActions[norm], action)
		}
	}

	var conflicts []ConflictInfo
	for k, actions := range keyActions {
		if len(actions) > 1 {
			conflicts = append(conflicts, ConflictInfo{Key: k, Actions: actions})
		}
	}
	slices.SortFunc(conflicts, func(a, b ConflictInfo) int { return strings.Compare(a.Key, b.Key) })
	return conflicts
}

// FormatAll returns a formatted table of all keybindings for -keys display.
func (m *Manager) FormatAll() string {
	var b strings.Builder
	b.WriteString("Keybindings:\n\n")

	categories := []struct {
		name    string
		actions []config.KeyAction
	}{
		{"Navigation", []config.KeyAction{
			config.ActionCursorUp, config.ActionCursorDown,
			config.ActionCursorLeft, config.ActionCursorRight,
			config.ActionHome, config.ActionEnd,
			config.ActionPageUp, config.ActionPageDown,
		}},
		{"Control", []config.KeyAction{config.ActionQuit}},
	}

	for _, cat := range categories {
		fmt.Fprintf(&b, "## %s\n", cat.name)
		for _, action := range cat.actions {
			keys := m.bindings.GetBindings(action)
			if len(keys) == 0 {
				continue
			}
			fmt.Fprintf(&b, "  %-20s %s\n", strings.Join(keys, ", "), action)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// buildLookup indexes bindings; on a conflict the action listed first
// in config.Actions wins.
func (m *Manager) buildLookup() {
	m.lookup = make(map[string]config.KeyAction, len(config.Actions)*2)
	for _, action := range config.Actions {
		for _, k := range m.bindings.GetBindings(action) {
			norm := normalize(k)
			if _, taken := m.lookup[norm]; !taken {
				m.lookup[norm] = action
			}
		}
	}
}

// keyNameAliases maps accepted spellings to the canonical key names.
var keyNameAliases = map[string]string{
	"pageup":   "pgup",
	"pagedown": "pgdown",
	"esc":      "escape",
	"return":   "enter",
	"del":      "delete",
}

// normalize canonicalizes a configured key string: modifiers lowercase in
// ctrl, alt, shift order, named keys lowercase, aliases resolved.
func normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	// The final element is the key itself; it may be "+" literally.
	name := s
	var mods string
	if i := strings.LastIndex(s[:len(s)-1], "+"); i >= 0 {
		mods = strings.ToLower(s[:i])
		name = s[i+1:]
	}
	var ctrl, alt, shift bool
	for _, m := range strings.Split(mods, "+") {
		switch m {
		case "ctrl", "control":
			ctrl = true
		case "alt", "meta":
			alt = true
		case "shift":
			shift = true
		}
	}
	if len([]rune(name)) > 1 || ctrl {
		name = strings.ToLower(name)
	}
	if alias, ok := keyNameAliases[name]; ok {
		name = alias
	}
	return joinKey(ctrl, alt, shift, name)
}

func joinKey(ctrl, alt, shift bool, name string) string {
	parts := make([]string, 0, 4)
	if ctrl {
		parts = append(parts, "ctrl")
	}
	if alt {
		parts = append(parts, "alt")
	}
	if shift {
		parts = append(parts, "shift")
	}
	return strings.Join(append(parts, name), "+")
}

// keyNames maps non-rune key types to the string format used in configs.
var keyNames = map[key.KeyType]string{
	key.KeyEnter:     "enter",
	key.KeyTab:       "tab",
	key.KeyBackspace: "backspace",
	key.KeyDelete:    "delete",
	key.KeyUp:        "up",
	key.KeyDown:      "down",
	key.KeyLeft:      "left",
	key.KeyRight:     "right",
	key.KeyHome:      "home",
	key.KeyEnd:       "end",
	key.KeyPageUp:    "pgup",
	key.KeyPageDown:  "pgdown",
	key.KeyEscape:    "escape",
}

// keyToString converts a key.Key to the string format used in keybinding configs.
func keyToString(k key.Key) string {
	switch k.Type {
	case key.KeyBackTab:
		return "shift+tab" // special case: BackTab implies shift
	case key.KeyRune:
		name := string(k.Rune)
		if k.Rune == ' ' {
			name = "space"
		}
		return joinKey(k.Ctrl, k.Alt, k.Shift, name)
	}
	name, ok := keyNames[k.Type]
	if !ok {
		return "unknown"
	}
	return joinKey(k.Ctrl, k.Alt, k.Shift, name)
}
