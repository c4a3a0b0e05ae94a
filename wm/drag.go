package wm

import (
	"log/slog"

	"github.com/BobdaProgrammer/doTile/geom"
	"github.com/BobdaProgrammer/doTile/layout"
)

type dragKind int

const (
	dragMove dragKind = iota
	dragPlace
	dragResize
	dragResizeCentered
)

// drag is an interactive move or resize in progress. The pointer is grabbed
// for as long as it exists.
type drag struct {
	client ClientID
	kind   dragKind
	// origin and x, y are the client geometry and pointer position at the
	// start of the drag.
	origin geom.Dimensions
	x, y   int
}

// geometry is the placement function: where the client goes for a pointer
// delta of (dx, dy).
func (d *drag) geometry(dx, dy int) geom.Dimensions {
	o := d.origin
	floor := int(layout.MinWindowSize)

	switch d.kind {
	case dragResize:
		return geom.FromInts(o.X, o.Y, max(floor, int(o.W)+dx), max(floor, int(o.H)+dy))
	case dragResizeCentered:
		w := max(floor, int(o.W)+2*dx)
		h := max(floor, int(o.H)+2*dy)
		cx, cy := o.Center()
		return geom.FromInts(cx-w/2, cy-h/2, w, h)
	}
	return geom.New(o.X+dx, o.Y+dy, o.W, o.H)
}

// beginDrag grabs the pointer and starts a drag on c. A failed grab leaves
// everything as it was.
func (wm *WindowManager) beginDrag(c *Client, kind dragKind) {
	if wm.drag != nil || c.fullscreen {
		return
	}

	cursor := CursorMove
	if kind == dragResize || kind == dragResizeCentered {
		cursor = CursorResize
	}
	if err := wm.backend.GrabPointer(cursor); err != nil {
		slog.Debug("couldn't grab pointer, drag aborted", "window", c.Window, "error", err)
		return
	}
	x, y, err := wm.backend.PointerPosition()
	if err != nil {
		slog.Debug("couldn't query pointer, drag aborted", "error", err)
		if err := wm.backend.UngrabPointer(); err != nil {
			slog.Error("couldn't ungrab pointer", "error", err)
		}
		return
	}

	if kind == dragMove && !c.floating {
		c.SetFloating(true)
		if ws := wm.WorkspaceOf(c.ID); ws != nil {
			wm.arrange(ws)
		}
	}

	wm.drag = &drag{client: c.ID, kind: kind, origin: c.dims, x: x, y: y}
	wm.raise(c)
}

// handleDrag consumes the events that belong to the drag and reports whether
// ev was one of them.
func (wm *WindowManager) handleDrag(ev Event) bool {
	switch e := ev.(type) {
	case Motion:
		wm.dragTo(e.X, e.Y)
		return true
	case ButtonRelease:
		wm.finishDrag(e.X, e.Y)
		return true
	}
	return false
}

func (wm *WindowManager) dragTo(x, y int) {
	d := wm.drag
	c := wm.clients[d.client]
	if c == nil {
		wm.endDrag()
		return
	}
	c.MoveResize(d.geometry(x-d.x, y-d.y))
}

// finishDrag completes the drag at pointer position (x, y). A client dropped
// on another monitor moves to that monitor's workspace; a tiled client placed
// over another tiled client swaps places with it.
func (wm *WindowManager) finishDrag(x, y int) {
	d := wm.drag
	c := wm.clients[d.client]
	wm.endDrag()
	if c == nil {
		return
	}

	ws := wm.WorkspaceOf(c.ID)
	if ws == nil {
		return
	}

	if m := wm.monitorAt(x, y); m != nil && m.Current() != ws && (d.kind == dragMove || d.kind == dragPlace) {
		dropped := c.dims
		wm.moveToWorkspace(c, m.Current())
		if c.floating {
			c.MoveResize(dropped)
		}
		return
	}

	if d.kind != dragPlace || !c.tiled() {
		return
	}
	for _, id := range ws.clients {
		other := wm.clients[id]
		if other != c && other.tiled() && other.dims.ContainsPoint(x, y) {
			ws.Swap(c.ID, other.ID)
			return
		}
	}
	wm.arrange(ws)
}

// endDrag releases the pointer. It is called on every way out of a drag.
func (wm *WindowManager) endDrag() {
	wm.drag = nil
	if err := wm.backend.UngrabPointer(); err != nil {
		slog.Error("couldn't ungrab pointer", "error", err)
	}
}
