package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BobdaProgrammer/doTile/geom"
)

func clients(n int) []geom.Dimensions {
	out := make([]geom.Dimensions, n)
	for i := range out {
		out[i] = geom.New(i*10, i*10, 100, 100)
	}
	return out
}

func TestDynamicThreeClientScenario(t *testing.T) {
	area := geom.New(0, 0, 800, 600)
	p := Params{MainRatio: 0.5, NMain: 1}

	got := Apply(Dynamic, area, clients(3), p)

	require.Len(t, got, 3)
	assert.Equal(t, geom.New(0, 0, 400, 600), got[0])
	assert.Equal(t, geom.New(400, 0, 400, 300), got[1])
	assert.Equal(t, geom.New(400, 300, 400, 300), got[2])
}

func TestDynamicMainCount(t *testing.T) {
	area := geom.New(0, 0, 800, 600)
	main := geom.New(0, 0, 400, 600)

	for _, tc := range []struct {
		nmain, n int
	}{
		{1, 1}, {1, 4}, {2, 5}, {3, 2}, {0, 3}, {5, 5},
	} {
		got := Apply(Dynamic, area, clients(tc.n), Params{MainRatio: 0.5, NMain: uint(tc.nmain)})

		if tc.nmain == 0 || tc.nmain >= tc.n {
			// only one region is populated and it spans the whole area
			for _, d := range got {
				assert.Equal(t, area.W, d.W, "nmain=%d n=%d", tc.nmain, tc.n)
			}
			continue
		}

		inMain := 0
		for _, d := range got {
			if main.Contains(d) {
				inMain++
			}
		}
		assert.Equal(t, tc.nmain, inMain, "nmain=%d n=%d", tc.nmain, tc.n)
		assert.Equal(t, tc.n-tc.nmain, len(got)-inMain)
	}
}

func TestMonocleIgnoresClientCount(t *testing.T) {
	area := geom.New(10, 20, 800, 600)

	for n := 1; n <= 5; n++ {
		for _, d := range Apply(Monocle, area, clients(n), Params{Gap: 4}) {
			assert.Equal(t, area.Inset(4), d)
		}
	}
}

func TestFloatingKeepsGeometry(t *testing.T) {
	in := clients(3)
	got := Apply(Floating, geom.New(0, 0, 800, 600), in, Params{})

	assert.Equal(t, in, got)
	got[0].X = 999
	assert.NotEqual(t, 999, in[0].X, "result must not alias the input")
}

func TestAllLayoutsStayInsideWorkArea(t *testing.T) {
	area := geom.New(100, 50, 1920, 1080)

	for _, typ := range Types {
		if typ == Floating {
			continue
		}
		for _, pos := range []StackPosition{Right, Left, Top, Bottom} {
			for _, mode := range []StackMode{Split, DeckMode} {
				for n := 1; n <= 7; n++ {
					p := Params{Gap: 5, MainRatio: 0.55, NMain: 2, StackMode: mode, StackPosition: pos}
					inner := area.Inset(p.Gap)
					for i, d := range Apply(typ, area, clients(n), p) {
						assert.True(t, inner.Contains(d), "%s %s %s n=%d client %d: %s outside %s",
							typ, pos, mode, n, i, d, inner)
						assert.GreaterOrEqual(t, d.W, MinWindowSize)
						assert.GreaterOrEqual(t, d.H, MinWindowSize)
					}
				}
			}
		}
	}
}

func TestMinimumSizeFloor(t *testing.T) {
	area := geom.New(0, 0, 100, 100)

	got := Apply(Dynamic, area, clients(6), Params{Gap: 20, MainRatio: 0.5, NMain: 1})
	for _, d := range got {
		assert.GreaterOrEqual(t, d.W, MinWindowSize)
		assert.GreaterOrEqual(t, d.H, MinWindowSize)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	area := geom.New(0, 0, 1280, 720)
	p := Params{Gap: 3, MainRatio: 0.6, NMain: 1, StackPosition: Bottom}
	in := clients(4)

	for _, typ := range Types {
		assert.Equal(t, Apply(typ, area, in, p), Apply(typ, area, in, p), typ.String())
	}
}

func TestStackPositions(t *testing.T) {
	area := geom.New(0, 0, 800, 600)
	p := Params{MainRatio: 0.5, NMain: 1}

	p.StackPosition = Left
	got := Apply(Dynamic, area, clients(2), p)
	assert.Equal(t, geom.New(400, 0, 400, 600), got[0])
	assert.Equal(t, geom.New(0, 0, 400, 600), got[1])

	p.StackPosition = Top
	got = Apply(Dynamic, area, clients(2), p)
	assert.Equal(t, geom.New(0, 300, 800, 300), got[0])
	assert.Equal(t, geom.New(0, 0, 800, 300), got[1])

	got = Apply(BottomStack, area, clients(3), p)
	assert.Equal(t, geom.New(0, 0, 800, 300), got[0])
	assert.Equal(t, geom.New(0, 300, 400, 300), got[1])
	assert.Equal(t, geom.New(400, 300, 400, 300), got[2])
}

func TestDeckOverlapsStack(t *testing.T) {
	area := geom.New(0, 0, 800, 600)

	got := Apply(Deck, area, clients(4), Params{MainRatio: 0.5, NMain: 1})
	assert.Equal(t, geom.New(0, 0, 400, 600), got[0])
	for _, d := range got[1:] {
		assert.Equal(t, geom.New(400, 0, 400, 600), d)
	}
}

func TestRemainderGoesToLastSlot(t *testing.T) {
	area := geom.New(0, 0, 800, 601)

	got := Apply(Dynamic, area, clients(3), Params{MainRatio: 0.5, NMain: 1})
	assert.Equal(t, uint(300), got[1].H)
	assert.Equal(t, uint(301), got[2].H)
	assert.Equal(t, area.Bottom(), got[2].Bottom())
}

func TestCycleAndParse(t *testing.T) {
	assert.Equal(t, Stack, Dynamic.Next())
	assert.Equal(t, Dynamic, Floating.Next())

	for _, typ := range Types {
		parsed, err := ParseType(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, parsed)
	}
	_, err := ParseType("spiral")
	assert.Error(t, err)

	var pos StackPosition
	require.NoError(t, pos.UnmarshalText([]byte("bottom")))
	assert.Equal(t, Bottom, pos)

	var mode StackMode
	require.NoError(t, mode.UnmarshalText([]byte("deck")))
	assert.Equal(t, DeckMode, mode)
}
