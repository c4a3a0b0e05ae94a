package wm

import "github.com/BobdaProgrammer/doTile/geom"

// Monitor is a physical output and the workspaces that can be shown on it.
type Monitor struct {
	Index int

	dims       geom.Dimensions
	workArea   geom.Dimensions
	workspaces []*Workspace
	current    int
	previous   int
}

func NewMonitor(index int, dims geom.Dimensions, workspaces []*Workspace) *Monitor {
	m := &Monitor{Index: index, dims: dims, workspaces: workspaces}
	m.SetWorkArea(dims)
	return m
}

func (m *Monitor) Dimensions() geom.Dimensions { return m.dims }
func (m *Monitor) WorkArea() geom.Dimensions   { return m.workArea }

func (m *Monitor) Workspaces() []*Workspace {
	return m.workspaces
}

// Workspace returns the i-th workspace of this monitor.
func (m *Monitor) Workspace(i int) (*Workspace, bool) {
	if i < 0 || i >= len(m.workspaces) {
		return nil, false
	}
	return m.workspaces[i], true
}

func (m *Monitor) Current() *Workspace {
	return m.workspaces[m.current]
}

func (m *Monitor) CurrentIndex() int {
	return m.current
}

func (m *Monitor) PreviousIndex() int {
	return m.previous
}

// switchTo makes the i-th workspace visible and remembers the old one.
func (m *Monitor) switchTo(i int) bool {
	if i < 0 || i >= len(m.workspaces) || i == m.current {
		return false
	}
	m.previous, m.current = m.current, i
	return true
}

// local returns the monitor-local index of ws.
func (m *Monitor) local(ws *Workspace) int {
	for i, candidate := range m.workspaces {
		if candidate == ws {
			return i
		}
	}
	return -1
}

// SetWorkArea clips area to the monitor and propagates it to every workspace.
func (m *Monitor) SetWorkArea(area geom.Dimensions) {
	m.workArea = m.dims.Intersect(area)
	for _, ws := range m.workspaces {
		ws.UpdateWorkArea(m.workArea)
	}
}

// reserve computes the work area left after the docks' struts. screen is the
// full root window, which strut offsets are measured from.
func reserve(dims, screen geom.Dimensions, struts []Strut) geom.Dimensions {
	var left, right, top, bottom int

	for _, s := range struts {
		if s.Top > 0 {
			band := geom.FromInts(int(s.TopStartX), screen.Y, int(s.TopEndX)-int(s.TopStartX)+1, int(s.Top))
			top = max(top, int(dims.Intersect(band).H))
		}
		if s.Bottom > 0 {
			band := geom.FromInts(int(s.BottomStartX), screen.Bottom()-int(s.Bottom), int(s.BottomEndX)-int(s.BottomStartX)+1, int(s.Bottom))
			bottom = max(bottom, int(dims.Intersect(band).H))
		}
		if s.Left > 0 {
			band := geom.FromInts(screen.X, int(s.LeftStartY), int(s.Left), int(s.LeftEndY)-int(s.LeftStartY)+1)
			left = max(left, int(dims.Intersect(band).W))
		}
		if s.Right > 0 {
			band := geom.FromInts(screen.Right()-int(s.Right), int(s.RightStartY), int(s.Right), int(s.RightEndY)-int(s.RightStartY)+1)
			right = max(right, int(dims.Intersect(band).W))
		}
	}

	return geom.FromInts(
		dims.X+left,
		dims.Y+top,
		int(dims.W)-left-right,
		int(dims.H)-top-bottom,
	)
}

// boundingBox is the smallest rectangle covering every monitor.
func boundingBox(monitors []geom.Dimensions) geom.Dimensions {
	if len(monitors) == 0 {
		return geom.Dimensions{}
	}
	x1, y1 := monitors[0].X, monitors[0].Y
	x2, y2 := monitors[0].Right(), monitors[0].Bottom()
	for _, d := range monitors[1:] {
		x1, y1 = min(x1, d.X), min(y1, d.Y)
		x2, y2 = max(x2, d.Right()), max(y2, d.Bottom())
	}
	return geom.FromInts(x1, y1, x2-x1, y2-y1)
}
