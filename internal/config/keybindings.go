// ABOUTME: Keybinding actions and their default key strings
// ABOUTME: Overrides come from the keybindings section of config.yaml

package config

import "slices"

// KeyAction represents an action that can be bound to keys
type KeyAction string

const (
	ActionQuit        KeyAction = "quit"
	ActionCursorUp    KeyAction = "cursorUp"
	ActionCursorDown  KeyAction = "cursorDown"
	ActionCursorLeft  KeyAction = "cursorLeft"
	ActionCursorRight KeyAction = "cursorRight"
	ActionHome        KeyAction = "home"
	ActionEnd         KeyAction = "end"
	ActionPageUp      KeyAction = "pageUp"
	ActionPageDown    KeyAction = "pageDown"
)

// Actions lists every bindable action in display order.
var Actions = []KeyAction{
	ActionQuit,
	ActionCursorUp, ActionCursorDown, ActionCursorLeft, ActionCursorRight,
	ActionHome, ActionEnd, ActionPageUp, ActionPageDown,
}

// Keybindings maps each action to the key strings that trigger it.
type Keybindings struct {
	Bindings map[KeyAction][]string
}

// NewKeybindings creates a new Keybindings with default bindings
func NewKeybindings() *Keybindings {
	kb := &Keybindings{
		Bindings: make(map[KeyAction][]string, len(Actions)),
	}
	kb.setDefaultBindings()
	return kb
}

func (kb *Keybindings) setDefaultBindings() {
	kb.Bindings[ActionQuit] = []string{"ctrl+q"}
	kb.Bindings[ActionCursorUp] = []string{"up"}
	kb.Bindings[ActionCursorDown] = []string{"down"}
	kb.Bindings[ActionCursorLeft] = []string{"left"}
	kb.Bindings[ActionCursorRight] = []string{"right"}
	kb.Bindings[ActionHome] = []string{"home"}
	kb.Bindings[ActionEnd] = []string{"end"}
	kb.Bindings[ActionPageUp] = []string{"pgup"}
	kb.Bindings[ActionPageDown] = []string{"pgdown"}
}

// Merge replaces the bindings of every known action named in raw.
// Unknown action names are returned so callers can warn about them.
func (kb *Keybindings) Merge(raw map[string][]string) (unknown []string) {
	for name, keys := range raw {
		action := KeyAction(name)
		if _, ok := kb.Bindings[action]; !ok {
			unknown = append(unknown, name)
			continue
		}
		kb.Bindings[action] = keys
	}
	slices.Sort(unknown)
	return unknown
}

// GetBindings returns the bindings for an action
func (kb *Keybindings) GetBindings(action KeyAction) []string {
	if kb == nil {
		return nil
	}
	return kb.Bindings[action]
}
