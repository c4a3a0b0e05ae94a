// Package x11 implements wm.Backend on an X server through xgb and xgbutil.
package x11

import (
	"fmt"
	"log/slog"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xcursor"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/BobdaProgrammer/doTile/binding"
	"github.com/BobdaProgrammer/doTile/config"
	"github.com/BobdaProgrammer/doTile/wm"
)

const wmName = "doTile"

// quitAtom names the client message Interrupt sends to wake NextEvent.
const quitAtom = "_DOTILE_QUIT"

var supported = []string{
	"_NET_SUPPORTED",
	"_NET_SUPPORTING_WM_CHECK",
	"_NET_WM_NAME",
	"_NET_CLIENT_LIST",
	"_NET_CLIENT_LIST_STACKING",
	"_NET_ACTIVE_WINDOW",
	"_NET_NUMBER_OF_DESKTOPS",
	"_NET_DESKTOP_NAMES",
	"_NET_CURRENT_DESKTOP",
	"_NET_WM_DESKTOP",
	"_NET_WM_STATE",
	"_NET_WM_STATE_FULLSCREEN",
	"_NET_WM_WINDOW_TYPE",
	"_NET_WM_STRUT",
	"_NET_WM_STRUT_PARTIAL",
}

type Backend struct {
	conn  *xgb.Conn
	xu    *xgbutil.XUtil
	root  xproto.Window
	check xproto.Window
	store *Store
	theme config.Theme

	// frames maps every frame to the client window inside it.
	frames   map[xproto.Window]xproto.Window
	bindings binding.Table
	// lockMasks are the lock modifier combinations each grab is repeated
	// with so caps lock and num lock don't disable bindings.
	lockMasks []uint16
	cursor    xproto.Cursor
}

var _ wm.Backend = (*Backend)(nil)

// New connects to $DISPLAY and becomes its window manager. It fails with
// wm.ErrOtherWM when another client already redirects the root window.
func New(theme config.Theme) (*Backend, error) {
	X, err := xgb.NewConn()
	if err != nil {
		return nil, wm.NewError(wm.ConnectionFailed, "couldn't open X display", err)
	}

	xu, err := xgbutil.NewConnXgb(X)
	if err != nil {
		X.Close()
		return nil, wm.NewError(wm.ConnectionFailed, "couldn't create xgbutil connection", err)
	}

	b := &Backend{
		conn:   X,
		xu:     xu,
		root:   xu.RootWin(),
		store:  NewStore(xu),
		theme:  theme,
		frames: map[xproto.Window]xproto.Window{},
	}

	err = xproto.ChangeWindowAttributesChecked(
		X,
		b.root,
		xproto.CwEventMask,
		[]uint32{
			xproto.EventMaskSubstructureNotify |
				xproto.EventMaskSubstructureRedirect |
				xproto.EventMaskStructureNotify |
				xproto.EventMaskPropertyChange,
		},
	).Check()
	if err != nil {
		X.Close()
		if _, ok := err.(xproto.AccessError); ok {
			return nil, wm.ErrOtherWM
		}
		return nil, wm.NewError(wm.FailedRequest, "couldn't select root events", err)
	}

	keybind.Initialize(xu)
	b.lockMasks = lockCombinations(b.lockModifiers())

	if err := b.advertise(); err != nil {
		X.Close()
		return nil, err
	}

	if cursor, err := xcursor.CreateCursor(xu, xcursor.LeftPtr); err == nil {
		xproto.ChangeWindowAttributes(X, b.root, xproto.CwCursor, []uint32{uint32(cursor)})
		xproto.FreeCursor(X, cursor)
	} else {
		slog.Warn("couldn't create root cursor", "error", err)
	}

	return b, nil
}

// advertise creates the supporting window and announces the hints the
// window manager understands.
func (b *Backend) advertise() error {
	win, err := xwindow.Create(b.xu, b.root)
	if err != nil {
		return wm.NewError(wm.FailedRequest, "couldn't create check window", err)
	}
	b.check = win.Id

	for _, w := range []xproto.Window{b.root, b.check} {
		if err := ewmh.SupportingWmCheckSet(b.xu, w, b.check); err != nil {
			return wm.NewError(wm.FailedRequest, "_NET_SUPPORTING_WM_CHECK", err)
		}
	}
	if err := ewmh.WmNameSet(b.xu, b.check, wmName); err != nil {
		return wm.NewError(wm.FailedRequest, "_NET_WM_NAME", err)
	}
	if err := ewmh.SupportedSet(b.xu, supported); err != nil {
		return wm.NewError(wm.FailedRequest, "_NET_SUPPORTED", err)
	}
	return nil
}

func (b *Backend) TopLevel() ([]wm.Window, error) {
	tree, err := xproto.QueryTree(b.conn, b.root).Reply()
	if err != nil {
		return nil, wm.NewError(wm.FailedRequest, "QueryTree", err)
	}
	if tree.Root != b.root {
		return nil, wm.NewError(wm.FailedRequest, fmt.Sprintf("tree root %d is not the root window %d", tree.Root, b.root), nil)
	}

	windows := make([]wm.Window, 0, len(tree.Children))
	for _, w := range tree.Children {
		if w == b.check {
			continue
		}
		windows = append(windows, wm.Window(w))
	}
	return windows, nil
}

func (b *Backend) GrabServer() error {
	if err := xproto.GrabServerChecked(b.conn).Check(); err != nil {
		return wm.NewError(wm.FailedRequest, "GrabServer", err)
	}
	return nil
}

func (b *Backend) UngrabServer() error {
	if err := xproto.UngrabServerChecked(b.conn).Check(); err != nil {
		return wm.NewError(wm.FailedRequest, "UngrabServer", err)
	}
	return nil
}

// Close withdraws the supporting window and drops the connection. Frames
// are the window manager's to release before this.
func (b *Backend) Close() error {
	if b.conn == nil {
		return nil
	}
	xproto.DeleteProperty(b.conn, b.root, b.atom("_NET_SUPPORTING_WM_CHECK"))
	xproto.DeleteProperty(b.conn, b.root, b.atom("_NET_ACTIVE_WINDOW"))
	if b.check != xproto.WindowNone {
		xproto.DestroyWindow(b.conn, b.check)
	}
	xproto.SetInputFocus(b.conn, xproto.InputFocusPointerRoot, xproto.InputFocusPointerRoot, xproto.TimeCurrentTime)
	b.conn.Sync()
	b.conn.Close()
	b.conn = nil
	return nil
}
