// Package layout computes client placements for a work area. Every function
// here is pure: the same inputs always produce the same rectangles.
package layout

import (
	"fmt"
	"math"

	"github.com/BobdaProgrammer/doTile/geom"
)

// MinWindowSize is the floor applied to every computed width and height.
const MinWindowSize uint = 40

// Type selects a layout algorithm.
type Type int

const (
	Dynamic Type = iota
	Stack
	BottomStack
	Deck
	Monocle
	Floating
)

// Types is the order CycleLayout walks through.
var Types = []Type{Dynamic, Stack, BottomStack, Deck, Monocle, Floating}

var typeNames = map[Type]string{
	Dynamic:     "dynamic",
	Stack:       "stack",
	BottomStack: "bottom-stack",
	Deck:        "deck",
	Monocle:     "monocle",
	Floating:    "floating",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("layout(%d)", int(t))
}

// Next returns the layout after t in cycle order.
func (t Type) Next() Type {
	for i, candidate := range Types {
		if candidate == t {
			return Types[(i+1)%len(Types)]
		}
	}
	return Types[0]
}

// ParseType resolves a layout name as written in configuration files.
func ParseType(name string) (Type, error) {
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown layout %q", name)
}

func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// StackMode controls how clients share the stack region.
type StackMode int

const (
	// Split divides the region evenly.
	Split StackMode = iota
	// DeckMode gives every client the whole region; only the topmost is visible.
	DeckMode
)

func (m StackMode) String() string {
	if m == DeckMode {
		return "deck"
	}
	return "split"
}

func ParseStackMode(name string) (StackMode, error) {
	switch name {
	case "split":
		return Split, nil
	case "deck":
		return DeckMode, nil
	}
	return 0, fmt.Errorf("unknown stack mode %q", name)
}

func (m *StackMode) UnmarshalText(text []byte) error {
	parsed, err := ParseStackMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// StackPosition is the edge of the work area the stack region sits on.
type StackPosition int

const (
	Right StackPosition = iota
	Left
	Top
	Bottom
)

var positionNames = map[StackPosition]string{
	Right:  "right",
	Left:   "left",
	Top:    "top",
	Bottom: "bottom",
}

func (p StackPosition) String() string {
	if name, ok := positionNames[p]; ok {
		return name
	}
	return fmt.Sprintf("position(%d)", int(p))
}

func ParseStackPosition(name string) (StackPosition, error) {
	for p, n := range positionNames {
		if n == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown stack position %q", name)
}

func (p *StackPosition) UnmarshalText(text []byte) error {
	parsed, err := ParseStackPosition(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Params are the tunables of a workspace's layout.
type Params struct {
	Gap           uint
	MainRatio     float64
	NMain         uint
	StackMode     StackMode
	StackPosition StackPosition
}

// Apply returns one rectangle per entry of current, in the same order.
// current holds the clients' present geometry; only Floating looks at it.
func Apply(t Type, area geom.Dimensions, current []geom.Dimensions, p Params) []geom.Dimensions {
	out := make([]geom.Dimensions, len(current))

	switch t {
	case Floating:
		copy(out, current)
	case Monocle:
		for i := range out {
			out[i] = finish(area, p.Gap)
		}
	case Deck:
		p.StackMode = DeckMode
		dynamic(out, area, p)
	case Stack:
		p.StackPosition = Right
		p.StackMode = Split
		dynamic(out, area, p)
	case BottomStack:
		p.StackPosition = Bottom
		p.StackMode = Split
		dynamic(out, area, p)
	default:
		dynamic(out, area, p)
	}

	return out
}

func dynamic(out []geom.Dimensions, area geom.Dimensions, p Params) {
	n := len(out)
	if n == 0 {
		return
	}

	nmain := min(int(p.NMain), n)
	nstack := n - nmain

	mainArea, stackArea := area, area
	if nmain > 0 && nstack > 0 {
		mainArea, stackArea = splitRegions(area, p.MainRatio, p.StackPosition)
	}

	// with the stack beside the main area, clients are stacked top to bottom
	columns := p.StackPosition == Left || p.StackPosition == Right

	place(out[:nmain], mainArea, columns, false, p.Gap)
	place(out[nmain:], stackArea, columns, p.StackMode == DeckMode, p.Gap)
}

func splitRegions(area geom.Dimensions, ratio float64, pos StackPosition) (main, stack geom.Dimensions) {
	ratio = math.Max(0, math.Min(1, ratio))

	switch pos {
	case Left, Right:
		mainW := uint(math.Round(float64(area.W) * ratio))
		stackW := area.W - mainW
		if pos == Right {
			main = geom.New(area.X, area.Y, mainW, area.H)
			stack = geom.New(area.X+int(mainW), area.Y, stackW, area.H)
		} else {
			stack = geom.New(area.X, area.Y, stackW, area.H)
			main = geom.New(area.X+int(stackW), area.Y, mainW, area.H)
		}
	default:
		mainH := uint(math.Round(float64(area.H) * ratio))
		stackH := area.H - mainH
		if pos == Bottom {
			main = geom.New(area.X, area.Y, area.W, mainH)
			stack = geom.New(area.X, area.Y+int(mainH), area.W, stackH)
		} else {
			stack = geom.New(area.X, area.Y, area.W, stackH)
			main = geom.New(area.X, area.Y+int(stackH), area.W, mainH)
		}
	}
	return main, stack
}

// place divides region between len(slots) clients. The last slot absorbs the
// remainder of the integer division so the slots tile the region exactly.
func place(slots []geom.Dimensions, region geom.Dimensions, columns, deck bool, gap uint) {
	k := uint(len(slots))
	if k == 0 {
		return
	}

	if deck {
		for i := range slots {
			slots[i] = finish(region, gap)
		}
		return
	}

	if columns {
		step := region.H / k
		for i := range slots {
			h := step
			if uint(i) == k-1 {
				h = region.H - step*(k-1)
			}
			slots[i] = finish(geom.New(region.X, region.Y+int(step)*i, region.W, h), gap)
		}
		return
	}

	step := region.W / k
	for i := range slots {
		w := step
		if uint(i) == k-1 {
			w = region.W - step*(k-1)
		}
		slots[i] = finish(geom.New(region.X+int(step)*i, region.Y, w, region.H), gap)
	}
}

// finish applies the gap and the minimum size floor. The floor may push a
// rectangle past its cell under extreme gap settings; that overlap is accepted.
func finish(d geom.Dimensions, gap uint) geom.Dimensions {
	return d.Inset(gap).AtLeast(MinWindowSize)
}
