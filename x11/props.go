package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xprop"

	"github.com/BobdaProgrammer/doTile/wm"
)

// propertyChunkLongs is how many 32-bit items one GetProperty asks for.
const propertyChunkLongs = 8

// Store reads and writes window properties. Atoms are interned through
// xprop, which caches them on the connection.
type Store struct {
	xu *xgbutil.XUtil
}

func NewStore(xu *xgbutil.XUtil) *Store {
	return &Store{xu: xu}
}

// chunk is the part of a GetProperty reply readLongs looks at.
type chunk struct {
	typ    xproto.Atom
	format byte
	after  uint32
	values []uint32
}

type fetchFunc func(offset, length uint32) (chunk, error)

// readLongs keeps fetching chunks until the server reports nothing left.
func readLongs(fetch fetchFunc, expected xproto.Atom) ([]uint64, error) {
	var values []uint64
	var last uint32

	for {
		c, err := fetch(uint32(len(values)), propertyChunkLongs)
		if err != nil {
			return nil, wm.NewError(wm.FailedRequest, "GetProperty", err)
		}
		if len(values) == 0 && c.typ == xproto.AtomNone && c.format == 0 && c.after == 0 {
			return nil, wm.NewError(wm.PropertyUnavailable, "", nil)
		}
		if c.typ != expected {
			return nil, wm.NewError(wm.IllegalValue, fmt.Sprintf("property type %d, want %d", c.typ, expected), nil)
		}
		if c.format != 32 {
			return nil, wm.NewError(wm.IllegalValue, fmt.Sprintf("property format %d, want 32", c.format), nil)
		}

		for _, v := range c.values {
			values = append(values, uint64(v))
		}
		if c.after == 0 {
			return values, nil
		}
		if len(c.values) == 0 || (last != 0 && c.after >= last) {
			return nil, wm.NewError(wm.FailedRequest, "property read made no progress", nil)
		}
		last = c.after
	}
}

// ReadLongs reads a format 32 property of type typ.
func (s *Store) ReadLongs(win xproto.Window, property, typ string) ([]uint64, error) {
	atom, err := xprop.Atm(s.xu, property)
	if err != nil {
		return nil, wm.NewError(wm.FailedRequest, property, err)
	}
	expected, err := xprop.Atm(s.xu, typ)
	if err != nil {
		return nil, wm.NewError(wm.FailedRequest, typ, err)
	}

	return readLongs(func(offset, length uint32) (chunk, error) {
		reply, err := xproto.GetProperty(s.xu.Conn(), false, win, atom, xproto.GetPropertyTypeAny, offset, length).Reply()
		if err != nil {
			return chunk{}, err
		}
		c := chunk{typ: reply.Type, format: reply.Format, after: reply.BytesAfter}
		if reply.Format == 32 {
			for i := 0; i+4 <= len(reply.Value) && uint32(len(c.values)) < reply.ValueLen; i += 4 {
				c.values = append(c.values, xgb.Get32(reply.Value[i:]))
			}
		}
		return c, nil
	}, expected)
}

// ReplaceLongs overwrites a format 32 property.
func (s *Store) ReplaceLongs(win xproto.Window, property, typ string, values ...uint) error {
	if err := xprop.ChangeProp32(s.xu, win, property, typ, values...); err != nil {
		return wm.NewError(wm.FailedRequest, property, err)
	}
	return nil
}

// ReadTextList reads a list of NUL separated strings such as WM_CLASS.
func (s *Store) ReadTextList(win xproto.Window, property string) ([]string, error) {
	reply, err := xprop.GetProperty(s.xu, win, property)
	if err != nil {
		return nil, wm.NewError(wm.PropertyUnavailable, property, err)
	}
	if reply.Format != 8 {
		return nil, wm.NewError(wm.IllegalValue, fmt.Sprintf("%s has format %d", property, reply.Format), nil)
	}
	return decodeTextList(reply.Value), nil
}

// ReplaceTextList overwrites property with a UTF8_STRING list.
func (s *Store) ReplaceTextList(win xproto.Window, property string, list []string) error {
	if err := xprop.ChangeProp(s.xu, win, 8, property, "UTF8_STRING", encodeTextList(list)); err != nil {
		return wm.NewError(wm.FailedRequest, property, err)
	}
	return nil
}

func encodeTextList(list []string) []byte {
	var b strings.Builder
	for _, s := range list {
		b.WriteString(s)
		b.WriteByte(0)
	}
	return []byte(b.String())
}

func decodeTextList(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	list := strings.Split(string(data), "\x00")
	if data[len(data)-1] == 0 {
		list = list[:len(list)-1]
	}
	return list
}
