package wm

import (
	"log/slog"
	"slices"

	"github.com/BobdaProgrammer/doTile/binding"
)

// execute runs a bound action. c is the client the triggering event belongs
// to; actions that need a client do nothing when it is nil.
func (wm *WindowManager) execute(a binding.Action, c *Client) {
	ws := wm.CurrentWorkspace()
	if c != nil {
		if cws := wm.WorkspaceOf(c.ID); cws != nil {
			ws = cws
		}
	}

	switch a.Op {
	case binding.ChangeMainRatio:
		ws.ChangeMainRatio(a.Float)
	case binding.CycleClient:
		wm.cycleClient(a.Int)
	case binding.CycleLayout:
		ws.CycleLayout()
	case binding.CycleMonitor:
		wm.cycleMonitor(a.Int)
	case binding.CycleWorkspace:
		wm.cycleWorkspace(a.Int)
	case binding.Execute:
		if err := wm.spawn(a.Cmd); err != nil {
			slog.Error("couldn't run command", "command", a.Cmd, "error", err)
		}
	case binding.Exit:
		slog.Info("exiting")
		wm.quit(false)
	case binding.FocusMain:
		wm.focusMain(ws)
	case binding.IncGaps:
		ws.IncGaps(a.Int)
	case binding.IncNMain:
		ws.IncNMain(a.Int)
	case binding.PreviousWorkspace:
		m := wm.CurrentMonitor()
		if prev, ok := m.Workspace(m.PreviousIndex()); ok {
			wm.switchWorkspace(prev.Index)
		}
	case binding.Restart:
		slog.Info("restarting")
		wm.quit(true)
	case binding.SetLayout:
		ws.SetLayout(a.Layout)
	case binding.SetStackMode:
		ws.SetStackMode(a.StackMode)
	case binding.SetStackPosition:
		ws.SetStackPosition(a.StackPosition)
	case binding.SwitchWorkspace:
		if target, ok := wm.CurrentMonitor().Workspace(a.Int); ok {
			wm.switchWorkspace(target.Index)
		}
	default:
		if c == nil {
			slog.Debug("action needs a client", "action", a)
			return
		}
		wm.executeOnClient(a, c, ws)
	}
}

func (wm *WindowManager) executeOnClient(a binding.Action, c *Client, ws *Workspace) {
	switch a.Op {
	case binding.CenterClient:
		if !c.floating {
			c.SetFloating(true)
			wm.arrange(ws)
		}
		c.Center(ws.area)
		wm.raise(c)
	case binding.CloseClient:
		c.Close()
	case binding.MouseMove:
		wm.beginDrag(c, dragMove)
	case binding.MousePlace:
		wm.beginDrag(c, dragPlace)
	case binding.MouseResize:
		if c.floating {
			wm.beginDrag(c, dragResize)
		}
	case binding.MouseResizeCentered:
		if c.floating {
			wm.beginDrag(c, dragResizeCentered)
		}
	case binding.MoveMain:
		ws.MoveMain(c.ID)
	case binding.MoveMonitor:
		wm.moveMonitor(c, a.Int)
	case binding.MoveWorkspace:
		if m := wm.monitorOf(ws); m != nil {
			if target, ok := m.Workspace(a.Int); ok {
				wm.moveToWorkspace(c, target)
			}
		}
	case binding.StackMove:
		ws.StackMove(c.ID, a.Int)
	case binding.ToggleFloating:
		c.SetFloating(!c.floating)
		if c.floating {
			c.MoveResize(c.dims)
		}
		wm.arrange(ws)
		wm.raise(c)
	case binding.ToggleFullscreen:
		wm.setFullscreen(c, !c.fullscreen)
		wm.raise(c)
	default:
		slog.Warn("unknown action", "action", a)
	}
}

// cycleClient moves the focus delta clients along the current workspace.
func (wm *WindowManager) cycleClient(delta int) {
	ws := wm.CurrentWorkspace()
	n := len(ws.clients)
	if n == 0 {
		return
	}
	i := slices.Index(ws.clients, wm.focused)
	if i < 0 {
		i = 0
	} else {
		i = ((i+delta)%n + n) % n
	}
	c := wm.clients[ws.clients[i]]
	wm.focus(c)
	wm.raise(c)
}

// focusMain toggles between the main client and the last focused client of
// the stack.
func (wm *WindowManager) focusMain(ws *Workspace) {
	if len(ws.clients) == 0 {
		return
	}
	main := ws.clients[0]
	target := main
	if wm.focused == main {
		switch {
		case ws.Contains(ws.stackFocus):
			target = ws.stackFocus
		case len(ws.clients) > 1:
			target = ws.clients[1]
		}
	}
	c := wm.clients[target]
	wm.focus(c)
	wm.raise(c)
}

func (wm *WindowManager) cycleMonitor(delta int) {
	n := len(wm.monitors)
	if n < 2 {
		return
	}
	wm.current = ((wm.current+delta)%n + n) % n
	wm.focus(wm.fallback(wm.CurrentWorkspace()))
	wm.exportCurrentDesktop()
}

func (wm *WindowManager) cycleWorkspace(delta int) {
	m := wm.CurrentMonitor()
	n := len(m.workspaces)
	i := ((m.current+delta)%n + n) % n
	wm.switchWorkspace(m.workspaces[i].Index)
}

func (wm *WindowManager) moveMonitor(c *Client, delta int) {
	n := len(wm.monitors)
	ws := wm.WorkspaceOf(c.ID)
	if n < 2 || ws == nil {
		return
	}
	from := wm.monitorOf(ws)
	to := wm.monitors[((from.Index+delta)%n+n)%n]
	wm.moveToWorkspace(c, to.Current())
}
