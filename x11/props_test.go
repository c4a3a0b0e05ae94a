package x11

import (
	"errors"
	"testing"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BobdaProgrammer/doTile/wm"
)

const cardinal = xproto.AtomCardinal

// serve answers chunked reads of values the way the server would.
func serve(typ xproto.Atom, values []uint32) (fetchFunc, *int) {
	calls := 0
	return func(offset, length uint32) (chunk, error) {
		calls++
		start := min(int(offset), len(values))
		end := min(start+int(length), len(values))
		return chunk{
			typ:    typ,
			format: 32,
			after:  uint32(len(values)-end) * 4,
			values: values[start:end],
		}, nil
	}, &calls
}

func TestReadLongsChunks(t *testing.T) {
	values := make([]uint32, 20)
	for i := range values {
		values[i] = uint32(i * 3)
	}
	fetch, calls := serve(cardinal, values)

	got, err := readLongs(fetch, cardinal)
	require.NoError(t, err)
	require.Len(t, got, 20)
	assert.Equal(t, uint64(57), got[19])
	assert.Equal(t, 3, *calls)
}

func TestReadLongsShort(t *testing.T) {
	fetch, calls := serve(cardinal, []uint32{0, 0, 24, 0})

	got, err := readLongs(fetch, cardinal)
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 0, 24, 0}, got)
	assert.Equal(t, 1, *calls)
}

func TestReadLongsAbsent(t *testing.T) {
	fetch := func(offset, length uint32) (chunk, error) {
		return chunk{}, nil
	}

	_, err := readLongs(fetch, cardinal)
	assert.ErrorIs(t, err, wm.ErrPropertyUnavailable)
}

func TestReadLongsWrongType(t *testing.T) {
	fetch, _ := serve(xproto.AtomAtom, []uint32{1})

	_, err := readLongs(fetch, cardinal)
	assert.ErrorIs(t, err, wm.ErrIllegalValue)
}

func TestReadLongsWrongFormat(t *testing.T) {
	fetch := func(offset, length uint32) (chunk, error) {
		return chunk{typ: cardinal, format: 8}, nil
	}

	_, err := readLongs(fetch, cardinal)
	assert.ErrorIs(t, err, wm.ErrIllegalValue)
}

func TestReadLongsNoProgress(t *testing.T) {
	tests := map[string]fetchFunc{
		"empty chunk with bytes left": func(offset, length uint32) (chunk, error) {
			return chunk{typ: cardinal, format: 32, after: 16}, nil
		},
		"remaining never shrinks": func(offset, length uint32) (chunk, error) {
			return chunk{typ: cardinal, format: 32, after: 16, values: []uint32{1}}, nil
		},
	}
	for name, fetch := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := readLongs(fetch, cardinal)
			assert.ErrorIs(t, err, wm.ErrFailedRequest)
		})
	}
}

func TestReadLongsRequestError(t *testing.T) {
	fetch := func(offset, length uint32) (chunk, error) {
		return chunk{}, errors.New("BadWindow")
	}

	_, err := readLongs(fetch, cardinal)
	assert.ErrorIs(t, err, wm.ErrFailedRequest)
}

func TestTextList(t *testing.T) {
	names := []string{"1", "2", "web", ""}

	data := encodeTextList(names)
	assert.Equal(t, []byte("1\x002\x00web\x00\x00"), data)
	assert.Equal(t, names, decodeTextList(data))

	// WM_CLASS is sometimes written without the final NUL
	assert.Equal(t, []string{"xterm", "XTerm"}, decodeTextList([]byte("xterm\x00XTerm")))
	assert.Nil(t, decodeTextList(nil))
}
