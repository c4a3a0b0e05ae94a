package binding

import (
	"fmt"
	"strings"
)

// Modifier is a single modifier key. The values equal the X11 modifier masks
// so an event's state field can be compared directly.
type Modifier uint16

const (
	Shift   Modifier = 1 << 0
	Lock    Modifier = 1 << 1
	Control Modifier = 1 << 2
	Mod1    Modifier = 1 << 3
	Mod2    Modifier = 1 << 4
	Mod3    Modifier = 1 << 5
	Mod4    Modifier = 1 << 6
	Mod5    Modifier = 1 << 7
)

// Default modifier choices for the built-in tables.
const (
	ModKey   = Mod1
	StartKey = Mod4
)

// relevant is the set of modifiers bindings can depend on. Caps lock, num lock
// and Mod3 never take part in matching.
const relevant = uint16(Shift | Control | Mod1 | Mod4 | Mod5)

var modifierNames = map[Modifier]string{
	Shift:   "Shift",
	Control: "Control",
	Mod1:    "Mod1",
	Mod4:    "Mod4",
	Mod5:    "Mod5",
}

// Sanitize strips the modifiers that must not influence binding lookup.
func Sanitize(state uint16) uint16 {
	return state & relevant
}

// Mask folds mods into a single state mask.
func Mask(mods []Modifier) uint16 {
	var mask uint16
	for _, m := range mods {
		mask |= uint16(m)
	}
	return mask
}

func (m Modifier) String() string {
	if name, ok := modifierNames[m]; ok {
		return name
	}
	return fmt.Sprintf("modifier(%#x)", uint16(m))
}

// ParseModifier accepts the names used in binding files, ignoring case.
func ParseModifier(name string) (Modifier, error) {
	for m, n := range modifierNames {
		if strings.EqualFold(n, name) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown modifier %q", name)
}

func (m *Modifier) UnmarshalText(text []byte) error {
	parsed, err := ParseModifier(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Target is the kind of window a button press landed on.
type Target int

const (
	TargetWindow Target = iota
	TargetFrame
	TargetRoot
)

func (t Target) String() string {
	switch t {
	case TargetFrame:
		return "frame"
	case TargetRoot:
		return "root"
	}
	return "window"
}

func (t *Target) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "window":
		*t = TargetWindow
	case "frame":
		*t = TargetFrame
	case "root":
		*t = TargetRoot
	default:
		return fmt.Errorf("unknown button target %q", text)
	}
	return nil
}
