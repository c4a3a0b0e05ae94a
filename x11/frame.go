package x11

import (
	"log/slog"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/icccm"

	"github.com/BobdaProgrammer/doTile/geom"
	"github.com/BobdaProgrammer/doTile/wm"
)

const frameEvents = xproto.EventMaskSubstructureRedirect |
	xproto.EventMaskSubstructureNotify |
	xproto.EventMaskEnterWindow |
	xproto.EventMaskButtonPress

// clientEvents are selected on a client window once it is framed.
const clientEvents = xproto.EventMaskFocusChange | xproto.EventMaskPropertyChange

const geometryMask = xproto.ConfigWindowX | xproto.ConfigWindowY | xproto.ConfigWindowWidth | xproto.ConfigWindowHeight

func geometryValues(d geom.Dimensions) []uint32 {
	x, y := d.Pos()
	w, h := d.Size()
	return []uint32{
		geom.Uint32(x),
		geom.Uint32(y),
		uint32(geom.Uint16(max(w, 1))),
		uint32(geom.Uint16(max(h, 1))),
	}
}

func (b *Backend) CreateFrame(w wm.Window, outer geom.Dimensions) (wm.Window, error) {
	win := xproto.Window(w)

	frame, err := xproto.NewWindowId(b.conn)
	if err != nil {
		return wm.None, wm.NewError(wm.FailedRequest, "couldn't create new window id", err)
	}

	x, y := outer.Pos()
	width, height := outer.Size()
	err = xproto.CreateWindowChecked(
		b.conn,
		0,
		frame,
		b.root,
		geom.Int16(x),
		geom.Int16(y),
		geom.Uint16(max(width, 1)),
		geom.Uint16(max(height, 1)),
		geom.Uint16(b.theme.BorderWidth),
		xproto.WindowClassInputOutput,
		xproto.WindowNone,
		xproto.CwBackPixel|xproto.CwBorderPixel|xproto.CwEventMask,
		[]uint32{
			b.theme.InactiveColor,
			b.theme.BorderColor,
			frameEvents,
		},
	).Check()
	if err != nil {
		return wm.None, wm.NewError(wm.FailedRequest, "CreateWindow", err)
	}

	err = xproto.ChangeSaveSetChecked(b.conn, xproto.SetModeInsert, win).Check()
	if err != nil {
		xproto.DestroyWindow(b.conn, frame)
		return wm.None, wm.NewError(wm.FailedRequest, "couldn't save window to set", err)
	}

	xproto.ConfigureWindow(b.conn, win, xproto.ConfigWindowBorderWidth, []uint32{0})
	xproto.ChangeWindowAttributes(b.conn, win, xproto.CwEventMask, []uint32{clientEvents})

	fw := b.theme.FrameWidth
	err = xproto.ReparentWindowChecked(b.conn, win, frame, geom.Int16(int(fw.Left)), geom.Int16(int(fw.Top))).Check()
	if err != nil {
		xproto.ChangeSaveSet(b.conn, xproto.SetModeDelete, win)
		xproto.DestroyWindow(b.conn, frame)
		return wm.None, wm.NewError(wm.FailedRequest, "couldn't reparent window", err)
	}

	b.grabWindowButtons(win)
	b.frames[frame] = win
	return wm.Window(frame), nil
}

// DestroyFrame hands w back to the root at the frame's position. The window
// may already be gone, so failures after the unmap only get logged.
func (b *Backend) DestroyFrame(frame, w wm.Window) error {
	f, win := xproto.Window(frame), xproto.Window(w)
	delete(b.frames, f)

	var x, y int16
	if g, err := xproto.GetGeometry(b.conn, xproto.Drawable(f)).Reply(); err == nil {
		x, y = g.X, g.Y
	}

	err := xproto.UnmapWindowChecked(b.conn, f).Check()
	if err != nil {
		xproto.DestroyWindow(b.conn, f)
		return wm.NewError(wm.FailedRequest, "couldn't unmap frame", err)
	}

	if err := xproto.ReparentWindowChecked(b.conn, win, b.root, x, y).Check(); err != nil {
		slog.Debug("couldn't reparent window to root", "window", win, "error", err)
	}
	if err := xproto.ChangeSaveSetChecked(b.conn, xproto.SetModeDelete, win).Check(); err != nil {
		slog.Debug("couldn't remove window from save set", "window", win, "error", err)
	}

	if err := xproto.DestroyWindowChecked(b.conn, f).Check(); err != nil {
		return wm.NewError(wm.FailedRequest, "couldn't destroy frame", err)
	}
	return nil
}

// MoveResize places the frame and the client, then tells the client where
// it ended up in root coordinates.
func (b *Backend) MoveResize(frame, w wm.Window, outer, inner geom.Dimensions) error {
	f, win := xproto.Window(frame), xproto.Window(w)

	if err := xproto.ConfigureWindowChecked(b.conn, f, geometryMask, geometryValues(outer)).Check(); err != nil {
		return wm.NewError(wm.FailedRequest, "couldn't configure frame", err)
	}
	if err := xproto.ConfigureWindowChecked(b.conn, win, geometryMask, geometryValues(inner)).Check(); err != nil {
		return wm.NewError(wm.FailedRequest, "couldn't configure window", err)
	}

	ev := xproto.ConfigureNotifyEvent{
		Event:        win,
		Window:       win,
		AboveSibling: xproto.WindowNone,
		X:            geom.Int16(outer.X + int(b.theme.BorderWidth) + inner.X),
		Y:            geom.Int16(outer.Y + int(b.theme.BorderWidth) + inner.Y),
		Width:        geom.Uint16(max(inner.W, 1)),
		Height:       geom.Uint16(max(inner.H, 1)),
	}
	xproto.SendEvent(b.conn, false, win, xproto.EventMaskStructureNotify, string(ev.Bytes()))
	return nil
}

func (b *Backend) Raise(frame wm.Window) error {
	return b.restack(xproto.Window(frame), xproto.StackModeAbove)
}

func (b *Backend) restack(win xproto.Window, mode uint32) error {
	err := xproto.ConfigureWindowChecked(b.conn, win, xproto.ConfigWindowStackMode, []uint32{mode}).Check()
	if err != nil {
		return wm.NewError(wm.FailedRequest, "couldn't restack window", err)
	}
	return nil
}

func (b *Backend) Show(frame, w wm.Window) error {
	win := xproto.Window(w)
	xproto.MapWindow(b.conn, win)
	if err := xproto.MapWindowChecked(b.conn, xproto.Window(frame)).Check(); err != nil {
		return wm.NewError(wm.FailedRequest, "couldn't map frame", err)
	}
	return b.setState(win, icccm.StateNormal)
}

func (b *Backend) Hide(frame, w wm.Window) error {
	if err := xproto.UnmapWindowChecked(b.conn, xproto.Window(frame)).Check(); err != nil {
		return wm.NewError(wm.FailedRequest, "couldn't unmap frame", err)
	}
	return b.setState(xproto.Window(w), icccm.StateIconic)
}

func (b *Backend) setState(win xproto.Window, state uint) error {
	if err := icccm.WmStateSet(b.xu, win, &icccm.WmState{State: state}); err != nil {
		return wm.NewError(wm.FailedRequest, "WM_STATE", err)
	}
	return nil
}

func (b *Backend) SetFrameFocused(frame wm.Window, focused bool) error {
	f := xproto.Window(frame)
	col := b.theme.InactiveColor
	if focused {
		col = b.theme.ActiveColor
	}

	err := xproto.ChangeWindowAttributesChecked(
		b.conn,
		f,
		xproto.CwBackPixel|xproto.CwBorderPixel,
		[]uint32{col, b.theme.BorderColor},
	).Check()
	if err != nil {
		return wm.NewError(wm.FailedRequest, "couldn't change frame colour", err)
	}
	xproto.ClearArea(b.conn, false, f, 0, 0, 0, 0)
	return nil
}

// Configure forwards a request from a window that isn't managed.
func (b *Backend) Configure(req wm.ConfigureRequest) error {
	err := xproto.ConfigureWindowChecked(b.conn, xproto.Window(req.Window), req.Mask, createChanges(req)).Check()
	if err != nil {
		return wm.NewError(wm.FailedRequest, "couldn't configure window", err)
	}
	return nil
}

// createChanges builds the value list for req.Mask, in bit order.
func createChanges(req wm.ConfigureRequest) []uint32 {
	changes := make([]uint32, 0, 7)
	x, y := req.Geometry.Pos()
	w, h := req.Geometry.Size()

	if req.Mask&wm.ConfigureX != 0 {
		changes = append(changes, geom.Uint32(x))
	}
	if req.Mask&wm.ConfigureY != 0 {
		changes = append(changes, geom.Uint32(y))
	}
	if req.Mask&wm.ConfigureWidth != 0 {
		changes = append(changes, uint32(geom.Uint16(max(w, 1))))
	}
	if req.Mask&wm.ConfigureHeight != 0 {
		changes = append(changes, uint32(geom.Uint16(max(h, 1))))
	}
	if req.Mask&wm.ConfigureBorderWidth != 0 {
		changes = append(changes, uint32(geom.Uint16(req.BorderWidth)))
	}
	if req.Mask&wm.ConfigureSibling != 0 {
		changes = append(changes, uint32(req.Sibling))
	}
	if req.Mask&wm.ConfigureStackMode != 0 {
		changes = append(changes, uint32(req.StackMode))
	}
	return changes
}

func (b *Backend) MapRaised(w wm.Window) error {
	win := xproto.Window(w)
	if err := xproto.MapWindowChecked(b.conn, win).Check(); err != nil {
		return wm.NewError(wm.FailedRequest, "couldn't map window", err)
	}
	return b.restack(win, xproto.StackModeAbove)
}

func (b *Backend) MapLowered(w wm.Window) error {
	win := xproto.Window(w)
	if err := xproto.MapWindowChecked(b.conn, win).Check(); err != nil {
		return wm.NewError(wm.FailedRequest, "couldn't map window", err)
	}
	return b.restack(win, xproto.StackModeBelow)
}
