package wm

import (
	"log/slog"

	"github.com/BobdaProgrammer/doTile/config"
	"github.com/BobdaProgrammer/doTile/geom"
)

// initialPlacement decides where a new floating client goes. Transients are
// centred over their parent.
func (wm *WindowManager) initialPlacement(c *Client, area geom.Dimensions, parent *Client) geom.Dimensions {
	d := c.requested
	if parent != nil {
		return centerOn(d, parent.dims)
	}

	px, py := 0, 0
	if wm.cfg.Placement == config.Pointer {
		var err error
		if px, py, err = wm.backend.PointerPosition(); err != nil {
			slog.Debug("couldn't query pointer, centring instead", "error", err)
			return centerOn(d, area)
		}
	}
	return place(wm.cfg.Placement, d, area, px, py)
}

// place positions d within area according to p. (px, py) is the pointer
// position, only used by config.Pointer.
func place(p config.Placement, d, area geom.Dimensions, px, py int) geom.Dimensions {
	switch p {
	case config.Pointer:
		x := px - int(d.W/2)
		y := py - int(d.H/2)
		x = min(max(x, area.X), area.Right()-int(d.W))
		y = min(max(y, area.Y), area.Bottom()-int(d.H))
		return geom.New(x, y, d.W, d.H)
	case config.Wherever:
		return d
	}
	return centerOn(d, area)
}

func centerOn(d, area geom.Dimensions) geom.Dimensions {
	cx, cy := area.Center()
	return geom.New(cx-int(d.W/2), cy-int(d.H/2), d.W, d.H)
}
