package wm

import (
	"log/slog"

	"github.com/BobdaProgrammer/doTile/config"
	"github.com/BobdaProgrammer/doTile/geom"
	"github.com/BobdaProgrammer/doTile/layout"
)

// ClientID identifies a client for its whole lifetime. The zero ID means no
// client.
type ClientID uint64

// Client is a managed top-level window and its frame.
type Client struct {
	ID     ClientID
	Window Window
	Frame  Window

	Name         string
	Class        string
	Instance     string
	Type         WindowType
	TransientFor Window
	Hints        SizeHints

	canDelete   bool
	floating    bool
	fullscreen  bool
	urgent      bool
	reparenting bool

	// dims is the outer (frame) geometry currently applied.
	dims geom.Dimensions
	// requested is the outer geometry the client last asked for.
	requested geom.Dimensions
	// restore is the geometry to return to when leaving fullscreen.
	restore geom.Dimensions

	backend Backend
	frame   config.FrameWidth
}

func newClient(id ClientID, w Window, info WindowInfo, b Backend, fw config.FrameWidth) *Client {
	c := &Client{
		ID:           id,
		Window:       w,
		Name:         info.Name,
		Class:        info.Class,
		Instance:     info.Instance,
		Type:         info.Type,
		TransientFor: info.TransientFor,
		Hints:        info.Hints,
		canDelete:    info.CanDelete,
		urgent:       info.Urgent,
		backend:      b,
		frame:        fw,
	}
	c.requested = c.outerFor(info.Geometry)
	c.dims = c.requested
	c.floating = info.Type.floats() || info.TransientFor != None || info.Hints.Fixed()
	return c
}

func (c *Client) Dimensions() geom.Dimensions { return c.dims }
func (c *Client) Requested() geom.Dimensions  { return c.requested }
func (c *Client) Floating() bool              { return c.floating }
func (c *Client) Fullscreen() bool            { return c.fullscreen }
func (c *Client) Urgent() bool                { return c.urgent }

// tiled reports whether the layout engine places this client.
func (c *Client) tiled() bool {
	return !c.floating && !c.fullscreen
}

func (c *Client) decoration() config.FrameWidth {
	if c.fullscreen {
		return config.FrameWidth{}
	}
	return c.frame
}

// outerFor grows an inner window rectangle by the frame decoration.
func (c *Client) outerFor(inner geom.Dimensions) geom.Dimensions {
	fw := c.decoration()
	return geom.New(
		inner.X-int(fw.Left),
		inner.Y-int(fw.Top),
		inner.W+fw.Left+fw.Right,
		inner.H+fw.Top+fw.Bottom,
	)
}

// innerFor returns the client window's rectangle relative to the frame.
func (c *Client) innerFor(outer geom.Dimensions) geom.Dimensions {
	fw := c.decoration()
	return geom.New(
		int(fw.Left),
		int(fw.Top),
		geom.Size(int(outer.W)-int(fw.Left+fw.Right)),
		geom.Size(int(outer.H)-int(fw.Top+fw.Bottom)),
	)
}

// ApplySizeHints re-applies the current geometry so it satisfies the size
// hints.
func (c *Client) ApplySizeHints() {
	c.MoveResize(c.dims)
}

// constrained works out the outer and inner rectangles for a requested outer
// rectangle. Floating clients grow or shrink their frame to honour the size
// hints; tiled clients keep the frame the layout gave them and only the window
// inside is constrained.
func (c *Client) constrained(outer geom.Dimensions) (geom.Dimensions, geom.Dimensions) {
	outer = outer.AtLeast(layout.MinWindowSize)
	inner := c.innerFor(outer)
	w, h := c.Hints.Apply(inner.W, inner.H)

	if c.floating && !c.fullscreen {
		fw := c.decoration()
		inner.W, inner.H = w, h
		outer.W, outer.H = w+fw.Left+fw.Right, h+fw.Top+fw.Bottom
		return outer, inner
	}

	inner.W, inner.H = min(w, inner.W), min(h, inner.H)
	return outer, inner
}

// MoveResize changes the outer geometry and pushes it to the display.
func (c *Client) MoveResize(d geom.Dimensions) {
	outer, inner := c.constrained(d)
	c.dims = outer
	if err := c.backend.MoveResize(c.Frame, c.Window, outer, inner); err != nil {
		slog.Warn("couldn't move client", "window", c.Window, "error", err)
	}
}

// Center moves the client into the middle of area without resizing it.
func (c *Client) Center(area geom.Dimensions) {
	cx, cy := area.Center()
	d := c.dims
	d.X = cx - int(d.W/2)
	d.Y = cy - int(d.H/2)
	c.MoveResize(d)
}

func (c *Client) SetFloating(on bool) {
	c.floating = on
}

// SetFullscreen covers area with the client, or restores the geometry it had
// before going fullscreen.
func (c *Client) SetFullscreen(on bool, area geom.Dimensions) {
	if on == c.fullscreen {
		return
	}
	if on {
		c.restore = c.dims
		c.fullscreen = true
		c.MoveResize(area)
	} else {
		c.fullscreen = false
		c.MoveResize(c.restore)
	}
	if err := c.backend.ExportFullscreen(c.Window, on); err != nil {
		slog.Warn("couldn't export fullscreen state", "window", c.Window, "error", err)
	}
}

// Close asks the client to close, or kills it if it does not speak
// WM_DELETE_WINDOW.
func (c *Client) Close() {
	var err error
	if c.canDelete {
		err = c.backend.SendDelete(c.Window)
	} else {
		err = c.backend.Kill(c.Window)
	}
	if err != nil {
		slog.Error("couldn't close client", "window", c.Window, "error", err)
	}
}

// DestroyFrame hands the window back to the root and releases the frame.
func (c *Client) DestroyFrame() {
	if c.Frame == None {
		return
	}
	if err := c.backend.DestroyFrame(c.Frame, c.Window); err != nil {
		slog.Debug("couldn't release frame", "frame", c.Frame, "window", c.Window, "error", err)
	}
	c.Frame = None
}

func (c *Client) String() string {
	if c.Class != "" {
		return c.Class
	}
	return c.Name
}
