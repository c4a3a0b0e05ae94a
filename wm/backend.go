package wm

import (
	"github.com/BobdaProgrammer/doTile/binding"
	"github.com/BobdaProgrammer/doTile/geom"
)

// Window is a display server window handle. None is the zero handle.
type Window uint32

const None Window = 0

// WindowType is the advertised purpose of a window.
type WindowType int

const (
	TypeNormal WindowType = iota
	TypeDialog
	TypeUtility
	TypeToolbar
	TypeMenu
	TypeSplash
	TypeNotification
	TypeDock
	TypeDesktop
)

// floats reports whether windows of this type start out floating.
func (t WindowType) floats() bool {
	switch t {
	case TypeDialog, TypeUtility, TypeToolbar, TypeMenu, TypeSplash, TypeNotification:
		return true
	}
	return false
}

// SizeHints are the client's size constraints for its own window (not the
// frame). Zero means unset.
type SizeHints struct {
	MinW, MinH   uint
	BaseW, BaseH uint
	IncW, IncH   uint
	MaxW, MaxH   uint
}

// Fixed reports whether the client cannot be resized at all.
func (h SizeHints) Fixed() bool {
	return h.MaxW > 0 && h.MaxH > 0 && h.MinW == h.MaxW && h.MinH == h.MaxH
}

// Apply returns the nearest size to (w, h) that satisfies the hints.
func (h SizeHints) Apply(w, hgt uint) (uint, uint) {
	return constrain(w, h.MinW, h.BaseW, h.IncW, h.MaxW), constrain(hgt, h.MinH, h.BaseH, h.IncH, h.MaxH)
}

func constrain(v, minimum, base, inc, maximum uint) uint {
	if minimum == 0 {
		minimum = base
	}
	if inc > 1 && v > base {
		v = base + (v-base)/inc*inc
	}
	v = max(v, minimum)
	if maximum > 0 {
		v = min(v, maximum)
	}
	return v
}

// Strut is the space a dock reserves along the screen edges, in the layout
// of _NET_WM_STRUT_PARTIAL.
type Strut struct {
	Left, Right, Top, Bottom uint

	LeftStartY, LeftEndY     uint
	RightStartY, RightEndY   uint
	TopStartX, TopEndX       uint
	BottomStartX, BottomEndX uint
}

// WindowInfo is everything the window manager reads from a window before
// deciding how to manage it.
type WindowInfo struct {
	OverrideRedirect bool
	Viewable         bool
	// Geometry is the window's own rectangle in root coordinates.
	Geometry     geom.Dimensions
	Type         WindowType
	TransientFor Window
	Name         string
	Class        string
	Instance     string
	Hints        SizeHints
	// CanDelete is set when the client lists WM_DELETE_WINDOW in WM_PROTOCOLS.
	CanDelete  bool
	Urgent     bool
	Fullscreen bool
	Strut      *Strut
}

// Cursor is the pointer shape shown during a drag.
type Cursor int

const (
	CursorMove Cursor = iota
	CursorResize
)

// Configure request value mask bits.
const (
	ConfigureX uint16 = 1 << iota
	ConfigureY
	ConfigureWidth
	ConfigureHeight
	ConfigureBorderWidth
	ConfigureSibling
	ConfigureStackMode
)

// Backend is the window manager's only view of the display server.
type Backend interface {
	// Monitors returns the physical monitor rectangles, primary first.
	Monitors() ([]geom.Dimensions, error)
	// TopLevel lists the root window's children, bottom to top.
	TopLevel() ([]Window, error)
	GrabServer() error
	UngrabServer() error

	Inspect(w Window) (WindowInfo, error)
	MapRaised(w Window) error
	MapLowered(w Window) error
	// Configure passes a request for an unmanaged window through untouched.
	Configure(req ConfigureRequest) error

	// CreateFrame builds a frame at outer and reparents w into it.
	CreateFrame(w Window, outer geom.Dimensions) (Window, error)
	// DestroyFrame reparents w back to the root and releases frame.
	DestroyFrame(frame, w Window) error
	// MoveResize places frame at outer and w at inner, which is relative to
	// the frame.
	MoveResize(frame, w Window, outer, inner geom.Dimensions) error
	Raise(frame Window) error
	Show(frame, w Window) error
	Hide(frame, w Window) error
	SetFrameFocused(frame Window, focused bool) error
	// SetInputFocus focuses w, or the root window when w is None.
	SetInputFocus(w Window) error
	SendDelete(w Window) error
	Kill(w Window) error

	GrabBindings(table binding.Table) error
	GrabPointer(c Cursor) error
	UngrabPointer() error
	PointerPosition() (int, int, error)

	// NextEvent blocks until the next event. A nil Event with a nil error is
	// an event the window manager has no use for.
	NextEvent() (Event, error)
	// Interrupt makes a pending NextEvent return a QuitRequest. It is the
	// only method that may be called from another goroutine.
	Interrupt() error

	ExportClientList(windows []Window) error
	ExportClientListStacking(windows []Window) error
	ExportActiveWindow(w Window) error
	ExportCurrentDesktop(index int) error
	ExportDesktops(names []string) error
	ExportClientDesktop(w Window, index int) error
	ExportFullscreen(w Window, on bool) error

	Close() error
}

// Event is one decoded display server event.
type Event interface {
	event()
}

type MapRequest struct {
	Window Window
}

type UnmapNotify struct {
	Window Window
	// FromRoot is set when the notification was reported relative to the root
	// window rather than the window's parent.
	FromRoot bool
}

type DestroyNotify struct {
	Window Window
}

type ButtonPress struct {
	// Window is the window the press was reported on; it may be a frame, a
	// client window or the root.
	Window Window
	// Root is set for presses delivered by a grab on the root. Root bindings
	// are tried first; Window then names the top-level window under the
	// pointer, if any.
	Root   bool
	Button uint8
	State  uint16
	X, Y   int
}

type ButtonRelease struct {
	Button uint8
	X, Y   int
}

// Motion carries the pointer position in root coordinates.
type Motion struct {
	X, Y int
}

type KeyPress struct {
	// Key is the keysym name of the unshifted key.
	Key   string
	State uint16
}

type EnterNotify struct {
	Window Window
}

type FocusIn struct {
	Window Window
}

type FocusOut struct {
	Window Window
}

// ActivateRequest is a _NET_ACTIVE_WINDOW client message.
type ActivateRequest struct {
	Window Window
}

// DesktopRequest is a _NET_CURRENT_DESKTOP client message.
type DesktopRequest struct {
	Index int
}

// ClientDesktopRequest is a _NET_WM_DESKTOP client message.
type ClientDesktopRequest struct {
	Window Window
	Index  int
}

type ConfigureRequest struct {
	Window      Window
	Mask        uint16
	Geometry    geom.Dimensions
	BorderWidth uint
	Sibling     Window
	StackMode   uint8
}

type StateAction int

const (
	StateRemove StateAction = iota
	StateAdd
	StateToggle
)

// StateRequest is a _NET_WM_STATE client message naming the fullscreen state.
type StateRequest struct {
	Window Window
	Action StateAction
}

type QuitRequest struct{}

func (MapRequest) event()           {}
func (UnmapNotify) event()          {}
func (DestroyNotify) event()        {}
func (ButtonPress) event()          {}
func (ButtonRelease) event()        {}
func (Motion) event()               {}
func (KeyPress) event()             {}
func (EnterNotify) event()          {}
func (FocusIn) event()              {}
func (FocusOut) event()             {}
func (ActivateRequest) event()      {}
func (DesktopRequest) event()       {}
func (ClientDesktopRequest) event() {}
func (ConfigureRequest) event()     {}
func (StateRequest) event()         {}
func (QuitRequest) event()          {}
