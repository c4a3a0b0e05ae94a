package binding

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/BobdaProgrammer/doTile/layout"
)

// Op names one of the operations a binding can trigger.
type Op int

const (
	CenterClient Op = iota
	ChangeMainRatio
	CloseClient
	CycleClient
	CycleLayout
	CycleMonitor
	CycleWorkspace
	Execute
	Exit
	FocusMain
	IncGaps
	IncNMain
	MouseMove
	MousePlace
	MouseResize
	MouseResizeCentered
	MoveMain
	MoveMonitor
	MoveWorkspace
	PreviousWorkspace
	Restart
	SetLayout
	SetStackMode
	SetStackPosition
	StackMove
	SwitchWorkspace
	ToggleFloating
	ToggleFullscreen
)

type param int

const (
	noParam param = iota
	intParam
	floatParam
	stringParam
	layoutParam
	stackModeParam
	stackPositionParam
)

var ops = map[Op]struct {
	name  string
	param param
}{
	CenterClient:        {"center-client", noParam},
	ChangeMainRatio:     {"change-main-ratio", floatParam},
	CloseClient:         {"close-client", noParam},
	CycleClient:         {"cycle-client", intParam},
	CycleLayout:         {"cycle-layout", noParam},
	CycleMonitor:        {"cycle-monitor", intParam},
	CycleWorkspace:      {"cycle-workspace", intParam},
	Execute:             {"execute", stringParam},
	Exit:                {"exit", noParam},
	FocusMain:           {"focus-main", noParam},
	IncGaps:             {"inc-gaps", intParam},
	IncNMain:            {"inc-nmain", intParam},
	MouseMove:           {"mouse-move", noParam},
	MousePlace:          {"mouse-place", noParam},
	MouseResize:         {"mouse-resize", noParam},
	MouseResizeCentered: {"mouse-resize-centered", noParam},
	MoveMain:            {"move-main", noParam},
	MoveMonitor:         {"move-monitor", intParam},
	MoveWorkspace:       {"move-workspace", intParam},
	PreviousWorkspace:   {"previous-workspace", noParam},
	Restart:             {"restart", noParam},
	SetLayout:           {"set-layout", layoutParam},
	SetStackMode:        {"set-stack-mode", stackModeParam},
	SetStackPosition:    {"set-stack-position", stackPositionParam},
	StackMove:           {"stack-move", intParam},
	SwitchWorkspace:     {"switch-workspace", intParam},
	ToggleFloating:      {"toggle-floating", noParam},
	ToggleFullscreen:    {"toggle-fullscreen", noParam},
}

func (o Op) String() string {
	if def, ok := ops[o]; ok {
		return def.name
	}
	return fmt.Sprintf("op(%d)", int(o))
}

// ParseOp resolves the kebab-case name of an operation.
func ParseOp(name string) (Op, error) {
	for op, def := range ops {
		if def.name == name {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", name)
}

// Action is an operation together with its argument. Only the field matching
// the operation's parameter kind is meaningful.
type Action struct {
	Op            Op
	Int           int
	Float         float64
	Cmd           string
	Layout        layout.Type
	StackMode     layout.StackMode
	StackPosition layout.StackPosition
}

// Do builds an action that takes no argument.
func Do(op Op) Action {
	return Action{Op: op}
}

// WithInt builds an action with an integer argument, such as CycleClient(1).
func WithInt(op Op, n int) Action {
	return Action{Op: op, Int: n}
}

func Run(cmd string) Action {
	return Action{Op: Execute, Cmd: cmd}
}

func MainRatio(delta float64) Action {
	return Action{Op: ChangeMainRatio, Float: delta}
}

func Layout(t layout.Type) Action {
	return Action{Op: SetLayout, Layout: t}
}

func StackModeAction(m layout.StackMode) Action {
	return Action{Op: SetStackMode, StackMode: m}
}

func StackPositionAction(p layout.StackPosition) Action {
	return Action{Op: SetStackPosition, StackPosition: p}
}

func (a Action) String() string {
	switch ops[a.Op].param {
	case intParam:
		return fmt.Sprintf("%s(%d)", a.Op, a.Int)
	case floatParam:
		return fmt.Sprintf("%s(%g)", a.Op, a.Float)
	case stringParam:
		return fmt.Sprintf("%s(%q)", a.Op, a.Cmd)
	case layoutParam:
		return fmt.Sprintf("%s(%s)", a.Op, a.Layout)
	case stackModeParam:
		return fmt.Sprintf("%s(%s)", a.Op, a.StackMode)
	case stackPositionParam:
		return fmt.Sprintf("%s(%s)", a.Op, a.StackPosition)
	}
	return a.Op.String()
}

// UnmarshalYAML accepts either a bare operation name ("cycle-layout") or a
// single-entry mapping from the operation name to its argument
// ({cycle-client: 1}).
func (a *Action) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		op, err := ParseOp(value.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		if ops[op].param != noParam {
			return fmt.Errorf("line %d: action %s needs an argument", value.Line, op)
		}
		*a = Action{Op: op}
		return nil

	case yaml.MappingNode:
		if len(value.Content) != 2 {
			return fmt.Errorf("line %d: action mapping must have exactly one entry", value.Line)
		}
		op, err := ParseOp(value.Content[0].Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		parsed, err := decodeArgument(op, value.Content[1])
		if err != nil {
			return fmt.Errorf("line %d: %s: %w", value.Line, op, err)
		}
		*a = parsed
		return nil
	}

	return fmt.Errorf("line %d: action must be a name or a mapping", value.Line)
}

func decodeArgument(op Op, arg *yaml.Node) (Action, error) {
	a := Action{Op: op}

	var err error
	switch ops[op].param {
	case noParam:
		// tolerate `{exit: null}` style entries
		if arg.Tag != "!!null" {
			err = fmt.Errorf("takes no argument")
		}
	case intParam:
		err = arg.Decode(&a.Int)
	case floatParam:
		err = arg.Decode(&a.Float)
	case stringParam:
		err = arg.Decode(&a.Cmd)
	case layoutParam:
		err = arg.Decode(&a.Layout)
	case stackModeParam:
		err = arg.Decode(&a.StackMode)
	case stackPositionParam:
		err = arg.Decode(&a.StackPosition)
	}
	return a, err
}
