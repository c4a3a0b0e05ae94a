package x11

import (
	"log/slog"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xprop"

	"github.com/BobdaProgrammer/doTile/geom"
	"github.com/BobdaProgrammer/doTile/wm"
)

// NextEvent blocks for the next X event and translates it.
func (b *Backend) NextEvent() (wm.Event, error) {
	ev, xerr := b.conn.WaitForEvent()
	if ev == nil && xerr == nil {
		return nil, wm.NewError(wm.ConnectionFailed, "X connection closed", nil)
	}
	if xerr != nil {
		return nil, wm.NewError(wm.FailedRequest, "", xerr)
	}

	switch e := ev.(type) {
	case xproto.MapRequestEvent:
		return wm.MapRequest{Window: wm.Window(e.Window)}, nil
	case xproto.UnmapNotifyEvent:
		return wm.UnmapNotify{Window: wm.Window(e.Window), FromRoot: e.Event == b.root}, nil
	case xproto.DestroyNotifyEvent:
		return wm.DestroyNotify{Window: wm.Window(e.Window)}, nil
	case xproto.ConfigureRequestEvent:
		return configureRequest(e), nil
	case xproto.ButtonPressEvent:
		return b.buttonPress(e), nil
	case xproto.ButtonReleaseEvent:
		return wm.ButtonRelease{Button: uint8(e.Detail), X: int(e.RootX), Y: int(e.RootY)}, nil
	case xproto.MotionNotifyEvent:
		return wm.Motion{X: int(e.RootX), Y: int(e.RootY)}, nil
	case xproto.KeyPressEvent:
		return wm.KeyPress{Key: keybind.LookupString(b.xu, 0, e.Detail), State: e.State}, nil
	case xproto.EnterNotifyEvent:
		if e.Mode != xproto.NotifyModeNormal || e.Detail == xproto.NotifyDetailInferior {
			return nil, nil
		}
		return wm.EnterNotify{Window: wm.Window(e.Event)}, nil
	case xproto.FocusInEvent:
		if !focusChange(e.Mode, e.Detail) {
			return nil, nil
		}
		return wm.FocusIn{Window: wm.Window(e.Event)}, nil
	case xproto.FocusOutEvent:
		if !focusChange(e.Mode, e.Detail) {
			return nil, nil
		}
		return wm.FocusOut{Window: wm.Window(e.Event)}, nil
	case xproto.ClientMessageEvent:
		return b.clientMessage(e), nil
	}
	return nil, nil
}

// focusChange filters out the focus events caused by grabs and by the
// pointer moving inside the focused window.
func focusChange(mode, detail byte) bool {
	if mode == xproto.NotifyModeGrab || mode == xproto.NotifyModeUngrab {
		return false
	}
	return detail != xproto.NotifyDetailPointer
}

func configureRequest(e xproto.ConfigureRequestEvent) wm.ConfigureRequest {
	return wm.ConfigureRequest{
		Window:      wm.Window(e.Window),
		Mask:        e.ValueMask,
		Geometry:    geom.New(int(e.X), int(e.Y), uint(e.Width), uint(e.Height)),
		BorderWidth: uint(e.BorderWidth),
		Sibling:     wm.Window(e.Sibling),
		StackMode:   e.StackMode,
	}
}

// buttonPress reports the window a press belongs to: the client for presses
// inside a frame and the frame itself for its decoration. Presses delivered
// by a root grab keep Root set, with Window naming the top-level window under
// the pointer when there is one.
func (b *Backend) buttonPress(e xproto.ButtonPressEvent) wm.ButtonPress {
	ev := wm.ButtonPress{
		Window: wm.Window(e.Event),
		Button: uint8(e.Detail),
		State:  e.State,
		X:      int(e.RootX),
		Y:      int(e.RootY),
	}
	switch _, framed := b.frames[e.Event]; {
	case e.Event == b.root:
		ev.Root = true
		if e.Child != xproto.WindowNone {
			ev.Window = wm.Window(e.Child)
		}
	case framed && e.Child != xproto.WindowNone:
		ev.Window = wm.Window(e.Child)
	}
	return ev
}

func (b *Backend) clientMessage(e xproto.ClientMessageEvent) wm.Event {
	name, err := xprop.AtomName(b.xu, e.Type)
	if err != nil {
		slog.Debug("client message with unknown type", "atom", e.Type, "error", err)
		return nil
	}
	data := e.Data.Data32
	win := wm.Window(e.Window)

	switch name {
	case quitAtom:
		if e.Window == b.check {
			return wm.QuitRequest{}
		}
	case "_NET_ACTIVE_WINDOW":
		return wm.ActivateRequest{Window: win}
	case "_NET_CURRENT_DESKTOP":
		return wm.DesktopRequest{Index: int(data[0])}
	case "_NET_WM_DESKTOP":
		return wm.ClientDesktopRequest{Window: win, Index: int(data[0])}
	case "_NET_WM_STATE":
		fullscreen := uint32(b.atom("_NET_WM_STATE_FULLSCREEN"))
		if data[1] != fullscreen && data[2] != fullscreen {
			return nil
		}
		action, ok := stateAction(data[0])
		if !ok {
			return nil
		}
		return wm.StateRequest{Window: win, Action: action}
	default:
		slog.Debug("unhandled client message", "type", name, "window", e.Window)
	}
	return nil
}

// stateAction decodes the first item of a _NET_WM_STATE message.
func stateAction(v uint32) (wm.StateAction, bool) {
	switch v {
	case 0:
		return wm.StateRemove, true
	case 1:
		return wm.StateAdd, true
	case 2:
		return wm.StateToggle, true
	}
	return 0, false
}

// Interrupt wakes NextEvent with a message only this connection receives.
// xgb serializes requests, so this is safe from any goroutine.
func (b *Backend) Interrupt() error {
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: b.check,
		Type:   b.atom(quitAtom),
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{0, 0, 0, 0, 0}),
	}
	err := xproto.SendEventChecked(b.conn, false, b.check, xproto.EventMaskNoEvent, string(ev.Bytes())).Check()
	if err != nil {
		return wm.NewError(wm.FailedRequest, "couldn't send interrupt", err)
	}
	return nil
}
