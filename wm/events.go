package wm

import (
	"log/slog"

	"github.com/BobdaProgrammer/doTile/binding"
	"github.com/BobdaProgrammer/doTile/geom"
)

// Handle applies one event. While a drag is in progress pointer motion and
// the button release belong to the drag; everything else is handled as usual.
func (wm *WindowManager) Handle(ev Event) {
	if wm.drag != nil && wm.handleDrag(ev) {
		return
	}

	switch e := ev.(type) {
	case MapRequest:
		wm.manage(e.Window, false)
	case UnmapNotify:
		wm.onUnmapNotify(e)
	case DestroyNotify:
		wm.onDestroyNotify(e)
	case ButtonPress:
		wm.onButtonPress(e)
	case KeyPress:
		wm.onKeyPress(e)
	case EnterNotify:
		if c := wm.clientFor(e.Window); c != nil && c.ID != wm.focused {
			wm.focus(c)
		}
	case FocusIn:
		if c := wm.clientFor(e.Window); c != nil {
			wm.setFocused(c)
		}
	case FocusOut:
		if c := wm.clientFor(e.Window); c != nil && c.ID == wm.focused {
			wm.setFocused(nil)
		}
	case ActivateRequest:
		wm.onActivateRequest(e)
	case DesktopRequest:
		wm.switchWorkspace(e.Index)
	case ClientDesktopRequest:
		c := wm.clientByWindow(e.Window)
		ws, _ := wm.workspaceByIndex(e.Index)
		if c != nil && ws != nil {
			wm.moveToWorkspace(c, ws)
		}
	case ConfigureRequest:
		wm.onConfigureRequest(e)
	case StateRequest:
		wm.onStateRequest(e)
	case QuitRequest:
		slog.Info("quit requested")
		wm.quit(false)
	case ButtonRelease, Motion:
		// only meaningful during a drag
	default:
		slog.Debug("unhandled event", "event", ev)
	}
}

func (wm *WindowManager) onUnmapNotify(e UnmapNotify) {
	c := wm.clientByWindow(e.Window)
	if c == nil {
		// docks stay children of the root, so their unmaps are always
		// reported there
		if _, ok := wm.docks[e.Window]; ok {
			wm.removeDock(e.Window)
		}
		return
	}

	if c.reparenting {
		c.reparenting = false
		slog.Debug("ignoring unmap caused by reparenting", "window", e.Window)
		return
	}
	if e.FromRoot {
		slog.Debug("ignoring unmap reported on the root", "window", e.Window)
		return
	}

	wm.unmanage(c)
}

func (wm *WindowManager) onDestroyNotify(e DestroyNotify) {
	if c := wm.clientByWindow(e.Window); c != nil {
		wm.unmanage(c)
		return
	}
	if _, ok := wm.docks[e.Window]; ok {
		wm.removeDock(e.Window)
	}
}

func (wm *WindowManager) onButtonPress(e ButtonPress) {
	mods := binding.Sanitize(e.State)
	if e.Root {
		if a, ok := wm.cfg.Bindings.MatchButton(mods, e.Button, binding.TargetRoot); ok {
			slog.Debug("button binding", "button", e.Button, "target", binding.TargetRoot, "action", a)
			wm.execute(a, nil)
			return
		}
	}

	target := binding.TargetFrame
	c := wm.clientByFrame(e.Window)
	if c == nil {
		if c = wm.clientByWindow(e.Window); c == nil {
			return
		}
		target = binding.TargetWindow
	}

	if c.ID != wm.focused {
		wm.focus(c)
	}

	a, ok := wm.cfg.Bindings.MatchButton(mods, e.Button, target)
	if !ok {
		return
	}
	slog.Debug("button binding", "button", e.Button, "target", target, "action", a)
	wm.execute(a, c)
}

func (wm *WindowManager) onKeyPress(e KeyPress) {
	a, ok := wm.cfg.Bindings.MatchKey(binding.Sanitize(e.State), e.Key)
	if !ok {
		return
	}
	slog.Debug("key binding", "key", e.Key, "action", a)
	wm.execute(a, wm.Focused())
}

func (wm *WindowManager) onActivateRequest(e ActivateRequest) {
	c := wm.clientByWindow(e.Window)
	if c == nil {
		return
	}
	if ws := wm.WorkspaceOf(c.ID); ws != nil && !wm.visible(ws) {
		wm.switchWorkspace(ws.Index)
	}
	wm.focus(c)
	wm.raise(c)
}

// onConfigureRequest lets floating and unmanaged windows have their way and
// re-asserts the current geometry on tiled ones.
func (wm *WindowManager) onConfigureRequest(e ConfigureRequest) {
	c := wm.clientByWindow(e.Window)
	if c == nil {
		if err := wm.backend.Configure(e); err != nil {
			slog.Debug("couldn't configure window", "window", e.Window, "error", err)
		}
		return
	}

	if !c.floating || c.fullscreen {
		c.MoveResize(c.dims)
		return
	}

	rel := c.innerFor(c.dims)
	inner := geom.New(c.dims.X+rel.X, c.dims.Y+rel.Y, rel.W, rel.H)
	if e.Mask&ConfigureX != 0 {
		inner.X = e.Geometry.X
	}
	if e.Mask&ConfigureY != 0 {
		inner.Y = e.Geometry.Y
	}
	if e.Mask&ConfigureWidth != 0 {
		inner.W = e.Geometry.W
	}
	if e.Mask&ConfigureHeight != 0 {
		inner.H = e.Geometry.H
	}

	c.requested = c.outerFor(inner)
	c.MoveResize(c.requested)
}

func (wm *WindowManager) onStateRequest(e StateRequest) {
	c := wm.clientByWindow(e.Window)
	if c == nil {
		return
	}
	on := c.fullscreen
	switch e.Action {
	case StateAdd:
		on = true
	case StateRemove:
		on = false
	case StateToggle:
		on = !on
	}
	if on != c.fullscreen {
		wm.setFullscreen(c, on)
		wm.raise(c)
	}
}
