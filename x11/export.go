package x11

import (
	"log/slog"
	"slices"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xprop"

	"github.com/BobdaProgrammer/doTile/wm"
)

func (b *Backend) atom(name string) xproto.Atom {
	a, err := xprop.Atm(b.xu, name)
	if err != nil {
		slog.Debug("couldn't intern atom", "name", name, "error", err)
		return xproto.AtomNone
	}
	return a
}

func windows(ws []wm.Window) []xproto.Window {
	out := make([]xproto.Window, len(ws))
	for i, w := range ws {
		out[i] = xproto.Window(w)
	}
	return out
}

func (b *Backend) ExportClientList(ws []wm.Window) error {
	if err := ewmh.ClientListSet(b.xu, windows(ws)); err != nil {
		return wm.NewError(wm.FailedRequest, "_NET_CLIENT_LIST", err)
	}
	return nil
}

func (b *Backend) ExportClientListStacking(ws []wm.Window) error {
	if err := ewmh.ClientListStackingSet(b.xu, windows(ws)); err != nil {
		return wm.NewError(wm.FailedRequest, "_NET_CLIENT_LIST_STACKING", err)
	}
	return nil
}

func (b *Backend) ExportActiveWindow(w wm.Window) error {
	if err := ewmh.ActiveWindowSet(b.xu, xproto.Window(w)); err != nil {
		return wm.NewError(wm.FailedRequest, "_NET_ACTIVE_WINDOW", err)
	}
	return nil
}

func (b *Backend) ExportCurrentDesktop(index int) error {
	return b.store.ReplaceLongs(b.root, "_NET_CURRENT_DESKTOP", "CARDINAL", uint(index))
}

func (b *Backend) ExportDesktops(names []string) error {
	if err := b.store.ReplaceLongs(b.root, "_NET_NUMBER_OF_DESKTOPS", "CARDINAL", uint(len(names))); err != nil {
		return err
	}
	return b.store.ReplaceTextList(b.root, "_NET_DESKTOP_NAMES", names)
}

func (b *Backend) ExportClientDesktop(w wm.Window, index int) error {
	return b.store.ReplaceLongs(xproto.Window(w), "_NET_WM_DESKTOP", "CARDINAL", uint(index))
}

// ExportFullscreen adds or removes the fullscreen state, keeping any other
// state the client set.
func (b *Backend) ExportFullscreen(w wm.Window, on bool) error {
	const fullscreen = "_NET_WM_STATE_FULLSCREEN"
	win := xproto.Window(w)

	states, _ := ewmh.WmStateGet(b.xu, win)
	states = slices.DeleteFunc(states, func(s string) bool { return s == fullscreen })
	if on {
		states = append(states, fullscreen)
	}

	if err := ewmh.WmStateSet(b.xu, win, states); err != nil {
		return wm.NewError(wm.FailedRequest, "_NET_WM_STATE", err)
	}
	return nil
}
