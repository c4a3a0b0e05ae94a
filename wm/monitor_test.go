package wm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BobdaProgrammer/doTile/geom"
	"github.com/BobdaProgrammer/doTile/layout"
)

func TestReserve(t *testing.T) {
	screen := geom.New(0, 0, 1600, 600)
	left := geom.New(0, 0, 800, 600)
	right := geom.New(800, 0, 800, 600)

	tests := []struct {
		name   string
		dims   geom.Dimensions
		struts []Strut
		want   geom.Dimensions
	}{
		{
			name: "no struts",
			dims: left,
			want: left,
		},
		{
			name:   "top bar on this monitor",
			dims:   left,
			struts: []Strut{{Top: 30, TopStartX: 0, TopEndX: 799}},
			want:   geom.New(0, 30, 800, 570),
		},
		{
			name:   "top bar on the other monitor",
			dims:   right,
			struts: []Strut{{Top: 30, TopStartX: 0, TopEndX: 799}},
			want:   right,
		},
		{
			name:   "bottom bar",
			dims:   right,
			struts: []Strut{{Bottom: 25, BottomStartX: 800, BottomEndX: 1599}},
			want:   geom.New(800, 0, 800, 575),
		},
		{
			name:   "left and right panels",
			dims:   left,
			struts: []Strut{{Left: 50, LeftStartY: 0, LeftEndY: 599}, {Right: 900, RightStartY: 0, RightEndY: 599}},
			want:   geom.New(50, 0, 650, 600),
		},
		{
			name:   "largest reservation wins",
			dims:   left,
			struts: []Strut{{Top: 10, TopEndX: 799}, {Top: 20, TopEndX: 799}},
			want:   geom.New(0, 20, 800, 580),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reserve(tt.dims, screen, tt.struts))
		})
	}
}

func TestBoundingBox(t *testing.T) {
	assert.Equal(t, geom.Dimensions{}, boundingBox(nil))
	assert.Equal(t,
		geom.New(-100, 0, 1924, 1080),
		boundingBox([]geom.Dimensions{geom.New(0, 0, 1824, 1080), geom.New(-100, 100, 100, 700)}),
	)
}

func TestMonitorSwitch(t *testing.T) {
	workspaces := []*Workspace{
		NewWorkspace(0, "1", layout.Dynamic, layout.Params{}),
		NewWorkspace(1, "2", layout.Dynamic, layout.Params{}),
		NewWorkspace(2, "3", layout.Dynamic, layout.Params{}),
	}
	m := NewMonitor(0, geom.New(0, 0, 800, 600), workspaces)

	assert.Equal(t, geom.New(0, 0, 800, 600), workspaces[2].WorkArea())
	assert.Equal(t, workspaces[0], m.Current())

	assert.True(t, m.switchTo(2))
	assert.False(t, m.switchTo(2))
	assert.False(t, m.switchTo(3))
	assert.Equal(t, 2, m.CurrentIndex())
	assert.Equal(t, 0, m.PreviousIndex())

	assert.Equal(t, 1, m.local(workspaces[1]))
	assert.Equal(t, -1, m.local(NewWorkspace(7, "x", layout.Dynamic, layout.Params{})))

	_, ok := m.Workspace(3)
	assert.False(t, ok)
}

func TestMonitorWorkAreaClipped(t *testing.T) {
	ws := NewWorkspace(0, "1", layout.Dynamic, layout.Params{})
	m := NewMonitor(0, geom.New(800, 0, 800, 600), []*Workspace{ws})

	m.SetWorkArea(geom.New(700, 20, 1000, 1000))

	assert.Equal(t, geom.New(800, 20, 800, 580), m.WorkArea())
	assert.Equal(t, m.WorkArea(), ws.WorkArea())
}
