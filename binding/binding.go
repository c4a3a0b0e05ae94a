// Package binding describes key and button bindings and the actions they
// trigger. Matching is pure; executing actions is the window manager's job.
package binding

import "slices"

// KeyBinding triggers Action when Key is pressed with exactly Modifiers held.
// Key is a keysym name without the XK_ prefix, e.g. "Return" or "F1".
type KeyBinding struct {
	Modifiers []Modifier `yaml:"modifiers"`
	Key       string     `yaml:"key"`
	Action    Action     `yaml:"action"`
}

func (b KeyBinding) Mask() uint16 {
	return Mask(b.Modifiers)
}

// Matches compares against an event's sanitized state and key name.
func (b KeyBinding) Matches(mods uint16, key string) bool {
	return Sanitize(mods) == b.Mask() && key == b.Key
}

// ButtonBinding triggers Action when Button is pressed on one of Targets.
type ButtonBinding struct {
	Modifiers []Modifier `yaml:"modifiers"`
	Button    uint8      `yaml:"button"`
	Targets   []Target   `yaml:"targets"`
	Action    Action     `yaml:"action"`
}

func (b ButtonBinding) Mask() uint16 {
	return Mask(b.Modifiers)
}

func (b ButtonBinding) Matches(mods uint16, button uint8, target Target) bool {
	return Sanitize(mods) == b.Mask() && button == b.Button && slices.Contains(b.Targets, target)
}

// Table holds the active bindings. Lookups return the first match, so
// entries appended later never shadow earlier ones.
type Table struct {
	Keys    []KeyBinding
	Buttons []ButtonBinding
}

// DefaultTable returns the built-in bindings for a monitor with nworkspaces
// workspaces.
func DefaultTable(nworkspaces int) Table {
	return Table{Keys: DefaultKeys(nworkspaces), Buttons: DefaultButtons()}
}

func (t Table) MatchKey(mods uint16, key string) (Action, bool) {
	for _, b := range t.Keys {
		if b.Matches(mods, key) {
			return b.Action, true
		}
	}
	return Action{}, false
}

func (t Table) MatchButton(mods uint16, button uint8, target Target) (Action, bool) {
	for _, b := range t.Buttons {
		if b.Matches(mods, button, target) {
			return b.Action, true
		}
	}
	return Action{}, false
}
