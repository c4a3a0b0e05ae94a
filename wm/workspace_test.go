package wm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BobdaProgrammer/doTile/geom"
	"github.com/BobdaProgrammer/doTile/layout"
)

// newTestWorkspace returns a workspace holding ids in order and counts how
// often its change hook ran.
func newTestWorkspace(ids ...ClientID) (*Workspace, *int) {
	ws := NewWorkspace(0, "1", layout.Dynamic, layout.Params{MainRatio: 0.55, NMain: 1})
	for i := len(ids) - 1; i >= 0; i-- {
		ws.Attach(ids[i])
	}
	changes := 0
	ws.OnChange(func(*Workspace) { changes++ })
	return ws, &changes
}

func TestWorkspaceAttachDetach(t *testing.T) {
	ws, changes := newTestWorkspace(1, 2)

	ws.Attach(3)
	assert.Equal(t, []ClientID{3, 1, 2}, ws.Clients())
	ws.Attach(3)
	assert.Equal(t, 3, ws.Len())
	assert.Equal(t, 1, *changes)

	ws.focus, ws.stackFocus = 2, 2
	assert.True(t, ws.Detach(2))
	assert.False(t, ws.Detach(2))
	assert.Equal(t, []ClientID{3, 1}, ws.Clients())
	assert.Zero(t, ws.focus)
	assert.Zero(t, ws.stackFocus)
	assert.Equal(t, 2, *changes)
}

func TestWorkspaceClientsIsACopy(t *testing.T) {
	ws, _ := newTestWorkspace(1, 2)

	ids := ws.Clients()
	ids[0] = 9

	assert.Equal(t, []ClientID{1, 2}, ws.Clients())
}

func TestWorkspacePullFront(t *testing.T) {
	ws, changes := newTestWorkspace(1, 2, 3, 4)

	ws.PullFront(3)
	assert.Equal(t, []ClientID{3, 1, 2, 4}, ws.Clients())

	ws.PullFront(3)
	ws.PullFront(7)
	assert.Equal(t, []ClientID{3, 1, 2, 4}, ws.Clients())
	assert.Equal(t, 1, *changes)
}

func TestWorkspaceMoveMain(t *testing.T) {
	ws, _ := newTestWorkspace(1, 2, 3)

	ws.MoveMain(1)
	assert.Equal(t, []ClientID{2, 1, 3}, ws.Clients())

	ws.MoveMain(3)
	assert.Equal(t, []ClientID{3, 2, 1}, ws.Clients())

	single, changes := newTestWorkspace(1)
	single.MoveMain(1)
	assert.Equal(t, []ClientID{1}, single.Clients())
	assert.Zero(t, *changes)
}

func TestWorkspaceStackMove(t *testing.T) {
	tests := []struct {
		name  string
		id    ClientID
		delta int
		want  []ClientID
	}{
		{"down", 1, 1, []ClientID{2, 1, 3}},
		{"up", 2, -1, []ClientID{2, 1, 3}},
		{"wrap past the end", 3, 1, []ClientID{3, 2, 1}},
		{"wrap past the start", 1, -1, []ClientID{3, 2, 1}},
		{"full circle", 2, 3, []ClientID{1, 2, 3}},
		{"unknown", 9, 1, []ClientID{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws, _ := newTestWorkspace(1, 2, 3)
			ws.StackMove(tt.id, tt.delta)
			assert.Equal(t, tt.want, ws.Clients())
		})
	}
}

func TestWorkspaceSwap(t *testing.T) {
	ws, changes := newTestWorkspace(1, 2, 3)

	ws.Swap(1, 3)
	assert.Equal(t, []ClientID{3, 2, 1}, ws.Clients())

	ws.Swap(1, 1)
	ws.Swap(1, 8)
	assert.Equal(t, 1, *changes)
}

func TestWorkspaceParams(t *testing.T) {
	ws, changes := newTestWorkspace()

	ws.IncNMain(-5)
	assert.Equal(t, uint(0), ws.Params().NMain)
	ws.IncNMain(2)
	assert.Equal(t, uint(2), ws.Params().NMain)

	ws.IncGaps(-1)
	assert.Equal(t, uint(0), ws.Params().Gap)
	ws.IncGaps(4)
	assert.Equal(t, uint(4), ws.Params().Gap)

	ws.SetStackMode(layout.DeckMode)
	ws.SetStackPosition(layout.Left)
	assert.Equal(t, layout.DeckMode, ws.Params().StackMode)
	assert.Equal(t, layout.Left, ws.Params().StackPosition)

	ws.CycleLayout()
	assert.Equal(t, layout.Stack, ws.Layout())
	ws.SetLayout(layout.Floating)
	ws.CycleLayout()
	assert.Equal(t, layout.Dynamic, ws.Layout())

	assert.Equal(t, 9, *changes)
}

func TestWorkspaceMainRatioBounds(t *testing.T) {
	ws, _ := newTestWorkspace()

	ws.ChangeMainRatio(0.05)
	assert.Equal(t, 0.6, ws.Params().MainRatio)

	for i := 0; i < 10; i++ {
		ws.ChangeMainRatio(0.05)
	}
	assert.Equal(t, 0.9, ws.Params().MainRatio)

	ws.ChangeMainRatio(-2)
	assert.Equal(t, 0.1, ws.Params().MainRatio)
}

func TestWorkspaceUpdateWorkArea(t *testing.T) {
	ws, changes := newTestWorkspace()
	area := geom.New(0, 20, 800, 580)

	ws.UpdateWorkArea(area)
	ws.UpdateWorkArea(area)

	assert.Equal(t, area, ws.WorkArea())
	assert.Equal(t, 1, *changes)
}
