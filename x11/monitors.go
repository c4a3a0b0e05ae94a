package x11

import (
	"log/slog"

	xin "github.com/BurntSushi/xgb/xinerama"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xinerama"
	"github.com/BurntSushi/xgbutil/xrect"

	"github.com/BobdaProgrammer/doTile/geom"
	"github.com/BobdaProgrammer/doTile/wm"
)

// Monitors returns the Xinerama heads, or the whole root window when the
// extension is missing or reports nothing.
func (b *Backend) Monitors() ([]geom.Dimensions, error) {
	if err := xin.Init(b.conn); err != nil {
		slog.Debug("xinerama unavailable", "error", err)
		return b.rootMonitor()
	}

	heads, err := xinerama.PhysicalHeads(b.xu)
	if err != nil || len(heads) == 0 {
		slog.Debug("no xinerama heads", "error", err)
		return b.rootMonitor()
	}
	return headDimensions(heads), nil
}

func (b *Backend) rootMonitor() ([]geom.Dimensions, error) {
	g, err := xproto.GetGeometry(b.conn, xproto.Drawable(b.root)).Reply()
	if err != nil {
		return nil, wm.NewError(wm.FailedRequest, "GetGeometry", err)
	}
	return []geom.Dimensions{geom.New(int(g.X), int(g.Y), uint(g.Width), uint(g.Height))}, nil
}

func headDimensions(heads xinerama.Heads) []geom.Dimensions {
	dims := make([]geom.Dimensions, 0, len(heads))
	for _, h := range heads {
		dims = append(dims, rectDimensions(h))
	}
	return dims
}

func rectDimensions(r xrect.Rect) geom.Dimensions {
	return geom.New(r.X(), r.Y(), uint(r.Width()), uint(r.Height()))
}
