package x11

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xcursor"

	"github.com/BobdaProgrammer/doTile/binding"
	"github.com/BobdaProgrammer/doTile/wm"
)

const buttonEvents = xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease

const dragEvents = xproto.EventMaskButtonRelease | xproto.EventMaskPointerMotion

// lockModifiers returns caps lock plus whatever modifiers num lock and scroll
// lock are mapped to on this keyboard.
func (b *Backend) lockModifiers() []uint16 {
	locks := []uint16{xproto.ModMaskLock}
	for _, keysym := range []string{"Num_Lock", "Scroll_Lock"} {
		if mask := b.modMaskForKeysym(keysym); mask != 0 {
			locks = append(locks, mask)
		}
	}
	return locks
}

func (b *Backend) modMaskForKeysym(keysym string) uint16 {
	for _, code := range keybind.StrToKeycodes(b.xu, keysym) {
		if mask := keybind.ModGet(b.xu, code); mask != 0 {
			return mask
		}
	}
	return 0
}

// lockCombinations returns every union of a subset of locks, starting with
// no lock at all.
func lockCombinations(locks []uint16) []uint16 {
	combos := []uint16{0}
	for _, lock := range locks {
		for _, c := range combos {
			if m := c | lock; !slices.Contains(combos, m) {
				combos = append(combos, m)
			}
		}
	}
	return combos
}

// GrabBindings grabs every key and every root button binding on the root
// window, and remembers the table so frames created later can grab the
// window button bindings on their client.
func (b *Backend) GrabBindings(table binding.Table) error {
	b.bindings = table

	xproto.UngrabKey(b.conn, xproto.GrabAny, b.root, xproto.ModMaskAny)
	xproto.UngrabButton(b.conn, xproto.ButtonIndexAny, b.root, xproto.ModMaskAny)

	var errs []error
	for _, kb := range table.Keys {
		codes := keybind.StrToKeycodes(b.xu, kb.Key)
		if len(codes) == 0 {
			errs = append(errs, wm.NewError(wm.IllegalValue, fmt.Sprintf("no keycode for %q", kb.Key), nil))
			continue
		}
		for _, code := range codes {
			for _, lock := range b.lockMasks {
				err := xproto.GrabKeyChecked(b.conn, true, b.root, kb.Mask()|lock, code,
					xproto.GrabModeAsync, xproto.GrabModeAsync).Check()
				if err != nil {
					errs = append(errs, wm.NewError(wm.FailedRequest, "couldn't grab "+kb.Key, err))
					break
				}
			}
		}
	}

	for _, bb := range table.Buttons {
		if !slices.Contains(bb.Targets, binding.TargetRoot) {
			continue
		}
		if err := b.grabButton(b.root, bb); err != nil {
			errs = append(errs, err)
		}
	}

	for _, win := range b.frames {
		b.grabWindowButtons(win)
	}
	return errors.Join(errs...)
}

// grabWindowButtons grabs the window-target button bindings on a client.
func (b *Backend) grabWindowButtons(win xproto.Window) {
	xproto.UngrabButton(b.conn, xproto.ButtonIndexAny, win, xproto.ModMaskAny)
	for _, bb := range b.bindings.Buttons {
		if !slices.Contains(bb.Targets, binding.TargetWindow) {
			continue
		}
		if err := b.grabButton(win, bb); err != nil {
			slog.Debug("couldn't grab button", "window", win, "button", bb.Button, "error", err)
		}
	}
}

func (b *Backend) grabButton(win xproto.Window, bb binding.ButtonBinding) error {
	for _, lock := range b.lockMasks {
		err := xproto.GrabButtonChecked(
			b.conn,
			false,
			win,
			buttonEvents,
			xproto.GrabModeAsync,
			xproto.GrabModeAsync,
			xproto.WindowNone,
			xproto.CursorNone,
			bb.Button,
			bb.Mask()|lock,
		).Check()
		if err != nil {
			return wm.NewError(wm.FailedRequest, fmt.Sprintf("couldn't grab button %d", bb.Button), err)
		}
	}
	return nil
}

// GrabPointer starts an active pointer grab for a drag. The cursor lives
// until UngrabPointer.
func (b *Backend) GrabPointer(c wm.Cursor) error {
	shape := uint16(xcursor.Fleur)
	if c == wm.CursorResize {
		shape = xcursor.Sizing
	}
	cursor, err := xcursor.CreateCursor(b.xu, shape)
	if err != nil {
		slog.Debug("couldn't create drag cursor", "error", err)
		cursor = xproto.CursorNone
	}

	reply, err := xproto.GrabPointer(
		b.conn,
		false,
		b.root,
		dragEvents,
		xproto.GrabModeAsync,
		xproto.GrabModeAsync,
		xproto.WindowNone,
		cursor,
		xproto.TimeCurrentTime,
	).Reply()
	if err == nil && reply.Status != xproto.GrabStatusSuccess {
		err = fmt.Errorf("grab status %d", reply.Status)
	}
	if err != nil {
		if cursor != xproto.CursorNone {
			xproto.FreeCursor(b.conn, cursor)
		}
		return wm.NewError(wm.FailedRequest, "GrabPointer", err)
	}

	b.cursor = cursor
	return nil
}

func (b *Backend) UngrabPointer() error {
	err := xproto.UngrabPointerChecked(b.conn, xproto.TimeCurrentTime).Check()
	if b.cursor != xproto.CursorNone {
		xproto.FreeCursor(b.conn, b.cursor)
		b.cursor = xproto.CursorNone
	}
	if err != nil {
		return wm.NewError(wm.FailedRequest, "UngrabPointer", err)
	}
	return nil
}

func (b *Backend) PointerPosition() (int, int, error) {
	reply, err := xproto.QueryPointer(b.conn, b.root).Reply()
	if err != nil {
		return 0, 0, wm.NewError(wm.FailedRequest, "QueryPointer", err)
	}
	return int(reply.RootX), int(reply.RootY), nil
}
