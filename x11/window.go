package x11

import (
	"slices"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"

	"github.com/BobdaProgrammer/doTile/geom"
	"github.com/BobdaProgrammer/doTile/wm"
)

// urgencyHint is the XUrgencyHint bit of WM_HINTS flags.
const urgencyHint = 1 << 8

// fullEdge is the end coordinate used for a _NET_WM_STRUT, which always
// spans its whole edge.
const fullEdge = 1<<16 - 1

var windowTypes = map[string]wm.WindowType{
	"_NET_WM_WINDOW_TYPE_NORMAL":        wm.TypeNormal,
	"_NET_WM_WINDOW_TYPE_DIALOG":        wm.TypeDialog,
	"_NET_WM_WINDOW_TYPE_UTILITY":       wm.TypeUtility,
	"_NET_WM_WINDOW_TYPE_TOOLBAR":       wm.TypeToolbar,
	"_NET_WM_WINDOW_TYPE_MENU":          wm.TypeMenu,
	"_NET_WM_WINDOW_TYPE_DROPDOWN_MENU": wm.TypeMenu,
	"_NET_WM_WINDOW_TYPE_POPUP_MENU":    wm.TypeMenu,
	"_NET_WM_WINDOW_TYPE_SPLASH":        wm.TypeSplash,
	"_NET_WM_WINDOW_TYPE_NOTIFICATION":  wm.TypeNotification,
	"_NET_WM_WINDOW_TYPE_TOOLTIP":       wm.TypeNotification,
	"_NET_WM_WINDOW_TYPE_DOCK":          wm.TypeDock,
	"_NET_WM_WINDOW_TYPE_DESKTOP":       wm.TypeDesktop,
}

// windowType picks the first type in the client's preference list that is
// understood.
func windowType(types []string) wm.WindowType {
	for _, t := range types {
		if wt, ok := windowTypes[t]; ok {
			return wt
		}
	}
	return wm.TypeNormal
}

func sizeHints(nh *icccm.NormalHints) wm.SizeHints {
	var h wm.SizeHints
	if nh.Flags&icccm.SizeHintPMinSize != 0 {
		h.MinW, h.MinH = nh.MinWidth, nh.MinHeight
	}
	if nh.Flags&icccm.SizeHintPMaxSize != 0 {
		h.MaxW, h.MaxH = nh.MaxWidth, nh.MaxHeight
	}
	if nh.Flags&icccm.SizeHintPResizeInc != 0 {
		h.IncW, h.IncH = nh.WidthInc, nh.HeightInc
	}
	if nh.Flags&icccm.SizeHintPBaseSize != 0 {
		h.BaseW, h.BaseH = nh.BaseWidth, nh.BaseHeight
	}
	return h
}

// Inspect only fails when the window's attributes or geometry can't be read;
// every hint is optional.
func (b *Backend) Inspect(w wm.Window) (wm.WindowInfo, error) {
	win := xproto.Window(w)

	attribs, err := xproto.GetWindowAttributes(b.conn, win).Reply()
	if err != nil {
		return wm.WindowInfo{}, wm.NewError(wm.FailedRequest, "GetWindowAttributes", err)
	}
	g, err := xproto.GetGeometry(b.conn, xproto.Drawable(win)).Reply()
	if err != nil {
		return wm.WindowInfo{}, wm.NewError(wm.FailedRequest, "GetGeometry", err)
	}

	info := wm.WindowInfo{
		OverrideRedirect: attribs.OverrideRedirect,
		Viewable:         attribs.MapState == xproto.MapStateViewable,
		Geometry:         geom.New(int(g.X), int(g.Y), uint(g.Width), uint(g.Height)),
		Name:             b.name(win),
		Fullscreen:       b.fullscreen(win),
	}
	if info.OverrideRedirect {
		return info, nil
	}

	if types, err := ewmh.WmWindowTypeGet(b.xu, win); err == nil {
		info.Type = windowType(types)
	}
	if parent, err := icccm.WmTransientForGet(b.xu, win); err == nil && parent != win {
		info.TransientFor = wm.Window(parent)
	}
	if class, err := b.store.ReadTextList(win, "WM_CLASS"); err == nil {
		if len(class) > 0 {
			info.Instance = class[0]
		}
		if len(class) > 1 {
			info.Class = class[1]
		}
	}
	if nh, err := icccm.WmNormalHintsGet(b.xu, win); err == nil {
		info.Hints = sizeHints(nh)
	}
	if protocols, err := icccm.WmProtocolsGet(b.xu, win); err == nil {
		info.CanDelete = slices.Contains(protocols, "WM_DELETE_WINDOW")
	}
	if hints, err := icccm.WmHintsGet(b.xu, win); err == nil {
		info.Urgent = hints.Flags&urgencyHint != 0
	}
	if info.Type == wm.TypeDock {
		info.Strut = b.strut(win)
	}
	return info, nil
}

func (b *Backend) name(win xproto.Window) string {
	if name, err := ewmh.WmNameGet(b.xu, win); err == nil && name != "" {
		return name
	}
	name, _ := icccm.WmNameGet(b.xu, win)
	return name
}

func (b *Backend) fullscreen(win xproto.Window) bool {
	states, err := b.store.ReadLongs(win, "_NET_WM_STATE", "ATOM")
	if err != nil {
		return false
	}
	return slices.Contains(states, uint64(b.atom("_NET_WM_STATE_FULLSCREEN")))
}

// strut prefers _NET_WM_STRUT_PARTIAL and falls back to _NET_WM_STRUT.
func (b *Backend) strut(win xproto.Window) *wm.Strut {
	if p, err := ewmh.WmStrutPartialGet(b.xu, win); err == nil {
		return &wm.Strut{
			Left: p.Left, Right: p.Right, Top: p.Top, Bottom: p.Bottom,
			LeftStartY: p.LeftStartY, LeftEndY: p.LeftEndY,
			RightStartY: p.RightStartY, RightEndY: p.RightEndY,
			TopStartX: p.TopStartX, TopEndX: p.TopEndX,
			BottomStartX: p.BottomStartX, BottomEndX: p.BottomEndX,
		}
	}
	if s, err := ewmh.WmStrutGet(b.xu, win); err == nil {
		return &wm.Strut{
			Left: s.Left, Right: s.Right, Top: s.Top, Bottom: s.Bottom,
			LeftEndY: fullEdge, RightEndY: fullEdge,
			TopEndX: fullEdge, BottomEndX: fullEdge,
		}
	}
	return nil
}

// SendDelete asks the client to close through WM_DELETE_WINDOW.
func (b *Backend) SendDelete(w wm.Window) error {
	win := xproto.Window(w)
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   b.atom("WM_PROTOCOLS"),
		Data: xproto.ClientMessageDataUnionData32New(
			[]uint32{
				uint32(b.atom("WM_DELETE_WINDOW")),
				uint32(xproto.TimeCurrentTime),
				0, 0, 0,
			},
		),
	}

	err := xproto.SendEventChecked(
		b.conn,
		false,
		win,
		xproto.EventMaskNoEvent,
		string(ev.Bytes()),
	).Check()
	if err != nil {
		return wm.NewError(wm.FailedRequest, "couldn't send WM_DELETE_WINDOW", err)
	}
	return nil
}

func (b *Backend) Kill(w wm.Window) error {
	if err := xproto.KillClientChecked(b.conn, uint32(w)).Check(); err != nil {
		return wm.NewError(wm.FailedRequest, "KillClient", err)
	}
	return nil
}

func (b *Backend) SetInputFocus(w wm.Window) error {
	focus := xproto.Window(w)
	if w == wm.None {
		focus = xproto.InputFocusPointerRoot
	}

	err := xproto.SetInputFocusChecked(b.conn, xproto.InputFocusPointerRoot, focus, xproto.TimeCurrentTime).Check()
	if err != nil {
		return wm.NewError(wm.FailedRequest, "SetInputFocus", err)
	}
	return nil
}
