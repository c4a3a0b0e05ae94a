package wm

import (
	"math"
	"slices"

	"github.com/BobdaProgrammer/doTile/geom"
	"github.com/BobdaProgrammer/doTile/layout"
)

const (
	minMainRatio = 0.1
	maxMainRatio = 0.9
)

// Workspace is an ordered set of clients sharing a layout. The client at the
// front of the list is the main client.
type Workspace struct {
	Index int
	Name  string

	clients []ClientID
	area    geom.Dimensions
	layout  layout.Type
	params  layout.Params

	// focus is the client to focus when the workspace becomes visible.
	focus ClientID
	// stackFocus is the last focused client outside the main position.
	stackFocus ClientID

	onChange func(*Workspace)
}

func NewWorkspace(index int, name string, t layout.Type, p layout.Params) *Workspace {
	return &Workspace{Index: index, Name: name, layout: t, params: p}
}

// OnChange installs the hook run after every mutation.
func (ws *Workspace) OnChange(fn func(*Workspace)) {
	ws.onChange = fn
}

func (ws *Workspace) changed() {
	if ws.onChange != nil {
		ws.onChange(ws)
	}
}

// Clients returns a copy of the client order.
func (ws *Workspace) Clients() []ClientID {
	return slices.Clone(ws.clients)
}

func (ws *Workspace) Len() int {
	return len(ws.clients)
}

func (ws *Workspace) Contains(id ClientID) bool {
	return slices.Contains(ws.clients, id)
}

func (ws *Workspace) WorkArea() geom.Dimensions {
	return ws.area
}

func (ws *Workspace) Layout() layout.Type {
	return ws.layout
}

func (ws *Workspace) Params() layout.Params {
	return ws.params
}

// Attach puts id at the front of the list.
func (ws *Workspace) Attach(id ClientID) {
	if ws.Contains(id) {
		return
	}
	ws.clients = slices.Insert(ws.clients, 0, id)
	ws.changed()
}

// Detach removes id and reports whether it was a member.
func (ws *Workspace) Detach(id ClientID) bool {
	i := slices.Index(ws.clients, id)
	if i < 0 {
		return false
	}
	ws.clients = slices.Delete(ws.clients, i, i+1)
	if ws.focus == id {
		ws.focus = 0
	}
	if ws.stackFocus == id {
		ws.stackFocus = 0
	}
	ws.changed()
	return true
}

// PullFront moves id to the main position keeping everything else in order.
func (ws *Workspace) PullFront(id ClientID) {
	i := slices.Index(ws.clients, id)
	if i <= 0 {
		return
	}
	copy(ws.clients[1:i+1], ws.clients[:i])
	ws.clients[0] = id
	ws.changed()
}

// MoveMain pulls id to the front, or when id already is the main client,
// swaps it with the next one.
func (ws *Workspace) MoveMain(id ClientID) {
	i := slices.Index(ws.clients, id)
	switch {
	case i < 0:
		return
	case i == 0:
		if len(ws.clients) < 2 {
			return
		}
		ws.clients[0], ws.clients[1] = ws.clients[1], ws.clients[0]
		ws.changed()
	default:
		ws.PullFront(id)
	}
}

// StackMove swaps id with the client delta positions away, wrapping around
// the ends of the list.
func (ws *Workspace) StackMove(id ClientID, delta int) {
	n := len(ws.clients)
	i := slices.Index(ws.clients, id)
	if i < 0 || n < 2 {
		return
	}
	j := ((i+delta)%n + n) % n
	if i == j {
		return
	}
	ws.clients[i], ws.clients[j] = ws.clients[j], ws.clients[i]
	ws.changed()
}

// Swap exchanges the positions of a and b.
func (ws *Workspace) Swap(a, b ClientID) {
	i, j := slices.Index(ws.clients, a), slices.Index(ws.clients, b)
	if i < 0 || j < 0 || i == j {
		return
	}
	ws.clients[i], ws.clients[j] = ws.clients[j], ws.clients[i]
	ws.changed()
}

func (ws *Workspace) CycleLayout() {
	ws.SetLayout(ws.layout.Next())
}

func (ws *Workspace) SetLayout(t layout.Type) {
	ws.layout = t
	ws.changed()
}

// IncNMain changes the number of main clients, never going below zero.
func (ws *Workspace) IncNMain(delta int) {
	ws.params.NMain = geom.Size(int(ws.params.NMain) + delta)
	ws.changed()
}

// ChangeMainRatio changes the main area share within [0.1, 0.9].
func (ws *Workspace) ChangeMainRatio(delta float64) {
	r := ws.params.MainRatio + delta
	// keep 0.55+0.05 from drifting to 0.6000000000000001
	r = math.Round(r*1000) / 1000
	ws.params.MainRatio = math.Max(minMainRatio, math.Min(maxMainRatio, r))
	ws.changed()
}

// IncGaps changes the gap width, never going below zero.
func (ws *Workspace) IncGaps(delta int) {
	ws.params.Gap = geom.Size(int(ws.params.Gap) + delta)
	ws.changed()
}

func (ws *Workspace) SetStackMode(m layout.StackMode) {
	ws.params.StackMode = m
	ws.changed()
}

func (ws *Workspace) SetStackPosition(p layout.StackPosition) {
	ws.params.StackPosition = p
	ws.changed()
}

// UpdateWorkArea follows a change of the owning monitor's usable area.
func (ws *Workspace) UpdateWorkArea(area geom.Dimensions) {
	if area == ws.area {
		return
	}
	ws.area = area
	ws.changed()
}
