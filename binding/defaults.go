package binding

import (
	"fmt"

	"github.com/BobdaProgrammer/doTile/layout"
)

func key(mods []Modifier, name string, a Action) KeyBinding {
	return KeyBinding{Modifiers: mods, Key: name, Action: a}
}

func mods(m ...Modifier) []Modifier {
	return m
}

// DefaultKeys returns the built-in key table. Function keys F1 to F9 switch
// to (and, with Shift, move the client to) the first nworkspaces workspaces.
func DefaultKeys(nworkspaces int) []KeyBinding {
	keys := []KeyBinding{
		key(mods(ModKey), "d", Run("dmenu_run")),
		key(mods(ModKey), "r", Run("rofi -show drun")),
		key(mods(StartKey), "t", Run("alacritty")),
		key(mods(ModKey), "j", WithInt(CycleClient, 1)),
		key(mods(ModKey), "k", WithInt(CycleClient, -1)),
		key(mods(ModKey, Shift), "j", WithInt(StackMove, 1)),
		key(mods(ModKey, Shift), "k", WithInt(StackMove, -1)),
		key(mods(ModKey), "i", WithInt(IncNMain, 1)),
		key(mods(ModKey, Shift), "i", WithInt(IncNMain, -1)),
		key(mods(ModKey), "l", MainRatio(0.05)),
		key(mods(ModKey), "h", MainRatio(-0.05)),
		key(mods(ModKey), "space", Do(MoveMain)),
		key(mods(ModKey), "Tab", Do(PreviousWorkspace)),
		key(mods(ModKey), "q", Do(CloseClient)),
		key(mods(ModKey), "t", Layout(layout.Dynamic)),
		key(mods(ModKey), "f", Layout(layout.Floating)),
		key(mods(ModKey), "m", Layout(layout.Monocle)),
		key(mods(ModKey, Shift), "space", Do(ToggleFloating)),
		key(mods(ModKey, Shift), "f", Do(ToggleFullscreen)),
		key(mods(ModKey), "z", Do(CenterClient)),
		key(mods(ModKey), "F12", WithInt(CycleWorkspace, 1)),
		key(mods(ModKey), "F11", WithInt(CycleWorkspace, -1)),
		key(mods(ModKey), "comma", WithInt(CycleMonitor, -1)),
		key(mods(ModKey), "period", WithInt(CycleMonitor, 1)),
		key(mods(ModKey, Shift), "comma", WithInt(MoveMonitor, -1)),
		key(mods(ModKey, Shift), "period", WithInt(MoveMonitor, 1)),
		key(mods(ModKey, Shift), "e", Do(Exit)),
		key(mods(ModKey), "n", Do(CycleLayout)),
		key(mods(ModKey), "s", Layout(layout.Stack)),
		key(mods(ModKey, Control), "t", Layout(layout.BottomStack)),
		key(mods(ModKey), "c", Layout(layout.Deck)),
		key(mods(ModKey), "Return", Do(FocusMain)),
		key(mods(ModKey, Shift), "equal", WithInt(IncGaps, 1)),
		key(mods(ModKey), "minus", WithInt(IncGaps, -1)),
		key(mods(ModKey, Control), "BackSpace", Do(Restart)),
		key(mods(ModKey), "Down", StackPositionAction(layout.Top)),
		key(mods(ModKey), "Left", StackPositionAction(layout.Right)),
		key(mods(ModKey), "Up", StackPositionAction(layout.Bottom)),
		key(mods(ModKey), "Right", StackPositionAction(layout.Left)),
		key(mods(ModKey), "semicolon", StackModeAction(layout.Split)),
		key(mods(ModKey), "apostrophe", StackModeAction(layout.DeckMode)),
	}

	for i := 0; i < min(nworkspaces, 9); i++ {
		name := fmt.Sprintf("F%d", i+1)
		keys = append(keys,
			key(mods(ModKey), name, WithInt(SwitchWorkspace, i)),
			key(mods(ModKey, Shift), name, WithInt(MoveWorkspace, i)),
		)
	}

	return keys
}

func onClient(button uint8, a Action, extra ...Modifier) ButtonBinding {
	return ButtonBinding{
		Modifiers: append(mods(ModKey), extra...),
		Button:    button,
		Targets:   []Target{TargetWindow, TargetFrame},
		Action:    a,
	}
}

func onFrame(button uint8, a Action, extra ...Modifier) ButtonBinding {
	return ButtonBinding{
		Modifiers: extra,
		Button:    button,
		Targets:   []Target{TargetFrame},
		Action:    a,
	}
}

// DefaultButtons returns the built-in button table. Buttons 4 and 5 are the
// scroll wheel.
func DefaultButtons() []ButtonBinding {
	return []ButtonBinding{
		onFrame(1, Do(MousePlace)),
		onClient(1, Do(MousePlace)),
		onClient(1, Do(MouseMove), Shift),
		onFrame(2, Run("rofi -show window")),
		onClient(2, Run("rofi -show window")),
		onClient(2, Do(CloseClient), Shift),
		onFrame(3, Do(MouseResize)),
		onClient(3, Do(MouseResize)),
		onFrame(3, Do(MouseResizeCentered), Control),
		onClient(3, Do(MouseResizeCentered), Control),
		onClient(4, WithInt(CycleClient, -1)),
		onClient(4, WithInt(StackMove, -1), Shift),
		onClient(5, WithInt(CycleClient, 1)),
		onClient(5, WithInt(StackMove, 1), Shift),
	}
}
