// Package wm is the window manager proper: the client, workspace and monitor
// model and the state machine driven by display events. It talks to the
// display only through the Backend interface.
package wm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/BobdaProgrammer/doTile/config"
	"github.com/BobdaProgrammer/doTile/geom"
	"github.com/BobdaProgrammer/doTile/layout"
)

type WindowManager struct {
	backend Backend
	cfg     config.Config

	clients map[ClientID]*Client
	// order is the creation order; every lookup by window scans it.
	order []ClientID
	// stack is the stacking order, bottom to top.
	stack   []ClientID
	nextID  ClientID
	focused ClientID

	monitors []*Monitor
	current  int
	screen   geom.Dimensions
	docks    map[Window]*Strut

	drag    *drag
	running bool
	restart bool

	spawn func(cmd string) error
}

// New builds the monitor and workspace model, grabs the bindings and adopts
// the windows that already exist.
func New(b Backend, cfg config.Config) (*WindowManager, error) {
	heads, err := b.Monitors()
	if err != nil {
		return nil, fmt.Errorf("couldn't query monitors: %w", err)
	}
	if len(heads) == 0 {
		return nil, NewError(FailedRequest, "no monitors found", nil)
	}

	wm := &WindowManager{
		backend: b,
		cfg:     cfg,
		clients: map[ClientID]*Client{},
		docks:   map[Window]*Strut{},
		screen:  boundingBox(heads),
		spawn:   spawn,
	}

	index := 0
	for i, dims := range heads {
		n := cfg.SecondaryWorkspaces
		if i == 0 {
			n = cfg.PrimaryWorkspaces
		}
		n = max(n, 1)

		workspaces := make([]*Workspace, n)
		for j := range workspaces {
			ws := NewWorkspace(index, workspaceName(i, j, len(heads)), cfg.Layout.Default, cfg.Layout.Params)
			ws.OnChange(wm.arrange)
			workspaces[j] = ws
			index++
		}
		wm.monitors = append(wm.monitors, NewMonitor(i, dims, workspaces))
		slog.Debug("monitor", "index", i, "dimensions", dims, "workspaces", n)
	}

	if err := b.GrabBindings(cfg.Bindings); err != nil {
		slog.Warn("couldn't grab every binding", "error", err)
	}

	wm.exportDesktops()
	wm.adopt()

	return wm, nil
}

func workspaceName(monitor, index, monitors int) string {
	if monitors == 1 {
		return fmt.Sprint(index + 1)
	}
	return fmt.Sprintf("%d:%d", monitor+1, index+1)
}

// adopt manages the windows that were mapped before the window manager
// started.
func (wm *WindowManager) adopt() {
	if err := wm.backend.GrabServer(); err != nil {
		slog.Warn("couldn't grab server", "error", err)
	}
	defer func() {
		if err := wm.backend.UngrabServer(); err != nil {
			slog.Warn("couldn't ungrab server", "error", err)
		}
	}()

	windows, err := wm.backend.TopLevel()
	if err != nil {
		slog.Error("couldn't query tree", "error", err)
		return
	}
	for _, w := range windows {
		wm.manage(w, true)
	}
}

// Run dispatches events until an Exit or Restart action, a QuitRequest, or a
// lost connection. Cancelling ctx interrupts the backend so the loop winds
// down on its own goroutine.
func (wm *WindowManager) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		if err := wm.backend.Interrupt(); err != nil {
			slog.Error("couldn't interrupt event loop", "error", err)
		}
	})
	defer stop()

	slog.Info("window manager up and running")

	if wm.cfg.OnStartup != "" {
		if err := wm.spawn(wm.cfg.OnStartup); err != nil {
			slog.Error("couldn't run startup command", "command", wm.cfg.OnStartup, "error", err)
		}
	}

	wm.running = true
	for wm.running {
		ev, err := wm.backend.NextEvent()
		if err != nil {
			if errors.Is(err, ErrConnectionFailed) {
				return err
			}
			slog.Debug("event error", "error", err)
			continue
		}
		if ev == nil {
			continue
		}
		wm.Handle(ev)
	}
	return nil
}

// RestartRequested reports whether Run returned because of a Restart action.
func (wm *WindowManager) RestartRequested() bool {
	return wm.restart
}

// Close releases every frame, handing the clients back to the root window,
// and closes the backend.
func (wm *WindowManager) Close() error {
	if wm.drag != nil {
		wm.endDrag()
	}
	for _, id := range wm.order {
		wm.clients[id].DestroyFrame()
	}
	wm.clients = map[ClientID]*Client{}
	wm.order, wm.stack = nil, nil
	wm.focused = 0
	return wm.backend.Close()
}

func (wm *WindowManager) quit(restart bool) {
	wm.running = false
	wm.restart = restart
}

// Client returns the client with the given ID, or nil.
func (wm *WindowManager) Client(id ClientID) *Client {
	return wm.clients[id]
}

// Clients returns the managed clients in creation order.
func (wm *WindowManager) Clients() []*Client {
	out := make([]*Client, 0, len(wm.order))
	for _, id := range wm.order {
		out = append(out, wm.clients[id])
	}
	return out
}

// Focused returns the focused client, or nil.
func (wm *WindowManager) Focused() *Client {
	return wm.clients[wm.focused]
}

func (wm *WindowManager) Monitors() []*Monitor {
	return wm.monitors
}

func (wm *WindowManager) CurrentMonitor() *Monitor {
	return wm.monitors[wm.current]
}

func (wm *WindowManager) CurrentWorkspace() *Workspace {
	return wm.CurrentMonitor().Current()
}

func (wm *WindowManager) clientByWindow(w Window) *Client {
	for _, id := range wm.order {
		if c := wm.clients[id]; c.Window == w {
			return c
		}
	}
	return nil
}

func (wm *WindowManager) clientByFrame(w Window) *Client {
	for _, id := range wm.order {
		if c := wm.clients[id]; c.Frame == w {
			return c
		}
	}
	return nil
}

// clientFor looks w up as a client window first and as a frame second.
func (wm *WindowManager) clientFor(w Window) *Client {
	if c := wm.clientByWindow(w); c != nil {
		return c
	}
	return wm.clientByFrame(w)
}

func (wm *WindowManager) WorkspaceOf(id ClientID) *Workspace {
	for _, m := range wm.monitors {
		for _, ws := range m.workspaces {
			if ws.Contains(id) {
				return ws
			}
		}
	}
	return nil
}

func (wm *WindowManager) monitorOf(ws *Workspace) *Monitor {
	for _, m := range wm.monitors {
		if m.local(ws) >= 0 {
			return m
		}
	}
	return nil
}

func (wm *WindowManager) monitorAt(x, y int) *Monitor {
	for _, m := range wm.monitors {
		if m.dims.ContainsPoint(x, y) {
			return m
		}
	}
	return nil
}

// workspaceByIndex resolves a global workspace index.
func (wm *WindowManager) workspaceByIndex(index int) (*Workspace, *Monitor) {
	for _, m := range wm.monitors {
		for _, ws := range m.workspaces {
			if ws.Index == index {
				return ws, m
			}
		}
	}
	return nil, nil
}

func (wm *WindowManager) visible(ws *Workspace) bool {
	m := wm.monitorOf(ws)
	return m != nil && m.Current() == ws
}

// manage takes over w. adopting is set during the start-up scan, where only
// windows that are already viewable are taken.
func (wm *WindowManager) manage(w Window, adopting bool) {
	if wm.clientByWindow(w) != nil {
		return
	}
	if _, ok := wm.docks[w]; ok {
		return
	}

	info, err := wm.backend.Inspect(w)
	if err != nil {
		slog.Error("couldn't inspect window", "window", w, "error", err)
		return
	}
	if info.OverrideRedirect {
		return
	}
	if adopting && !info.Viewable {
		return
	}

	switch info.Type {
	case TypeDock:
		if err := wm.backend.MapRaised(w); err != nil {
			slog.Error("couldn't map dock", "window", w, "error", err)
			return
		}
		wm.docks[w] = info.Strut
		wm.updateWorkAreas()
		return
	case TypeDesktop:
		if err := wm.backend.MapLowered(w); err != nil {
			slog.Error("couldn't map desktop window", "window", w, "error", err)
		}
		return
	}

	ws := wm.CurrentWorkspace()
	var parent *Client
	if info.TransientFor != None {
		if parent = wm.clientByWindow(info.TransientFor); parent != nil {
			if pws := wm.WorkspaceOf(parent.ID); pws != nil {
				ws = pws
			}
		}
	}

	wm.nextID++
	c := newClient(wm.nextID, w, info, wm.backend, wm.cfg.Theme.FrameWidth)

	outer := c.requested
	if !adopting && c.floating {
		outer = wm.initialPlacement(c, ws.WorkArea(), parent)
	}

	frame, err := wm.backend.CreateFrame(w, outer)
	if err != nil {
		slog.Error("couldn't frame window", "window", w, "error", err)
		return
	}
	c.Frame = frame
	// reparenting a mapped window unmaps it once
	c.reparenting = info.Viewable

	wm.clients[c.ID] = c
	wm.order = append(wm.order, c.ID)
	wm.stack = append(wm.stack, c.ID)

	c.MoveResize(outer)
	ws.Attach(c.ID)

	if err := wm.backend.ExportClientDesktop(w, ws.Index); err != nil {
		slog.Debug("couldn't export client desktop", "window", w, "error", err)
	}

	if info.Fullscreen {
		wm.setFullscreen(c, true)
	}

	if wm.visible(ws) {
		wm.show(c)
		wm.focus(c)
		wm.raise(c)
	} else {
		wm.hide(c)
	}

	wm.exportClientLists()
	slog.Info("managing window", "window", w, "frame", frame, "client", c.String(), "floating", c.floating)
}

// unmanage forgets c. Its window may already be gone.
func (wm *WindowManager) unmanage(c *Client) {
	if wm.drag != nil && wm.drag.client == c.ID {
		wm.endDrag()
	}

	ws := wm.WorkspaceOf(c.ID)
	wasFocused := wm.focused == c.ID

	delete(wm.clients, c.ID)
	wm.order = slices.DeleteFunc(wm.order, func(id ClientID) bool { return id == c.ID })
	wm.stack = slices.DeleteFunc(wm.stack, func(id ClientID) bool { return id == c.ID })
	if wasFocused {
		wm.focused = 0
	}

	c.DestroyFrame()
	if ws != nil {
		ws.Detach(c.ID)
	}

	if wasFocused {
		if ws != nil && wm.visible(ws) {
			wm.focus(wm.fallback(ws))
		} else {
			wm.focus(nil)
		}
	}

	wm.exportClientLists()
	slog.Info("unmanaged window", "window", c.Window)
}

func (wm *WindowManager) removeDock(w Window) {
	delete(wm.docks, w)
	wm.updateWorkAreas()
}

// updateWorkAreas recomputes every monitor's work area from the docks' struts.
func (wm *WindowManager) updateWorkAreas() {
	var struts []Strut
	for _, s := range wm.docks {
		if s != nil {
			struts = append(struts, *s)
		}
	}
	for _, m := range wm.monitors {
		m.SetWorkArea(reserve(m.dims, wm.screen, struts))
	}
}

// arrange is every workspace's change hook. Hidden workspaces are laid out
// when they become visible.
func (wm *WindowManager) arrange(ws *Workspace) {
	m := wm.monitorOf(ws)
	if m == nil || m.Current() != ws {
		return
	}

	var tiled []*Client
	for _, id := range ws.clients {
		c := wm.clients[id]
		switch {
		case c == nil:
		case c.fullscreen:
			c.MoveResize(m.dims)
		case !c.floating:
			tiled = append(tiled, c)
		}
	}

	current := make([]geom.Dimensions, len(tiled))
	for i, c := range tiled {
		current[i] = c.dims
	}
	for i, d := range layout.Apply(ws.layout, ws.area, current, ws.params) {
		tiled[i].MoveResize(d)
	}

	wm.restack()
}

func (wm *WindowManager) layer(id ClientID) int {
	c := wm.clients[id]
	switch {
	case c.fullscreen:
		return 2
	case c.floating:
		return 1
	}
	return 0
}

// restack pushes the stacking order to the display: tiled clients, then
// floating ones, then docks, then fullscreen clients.
func (wm *WindowManager) restack() {
	slices.SortStableFunc(wm.stack, func(a, b ClientID) int {
		return wm.layer(a) - wm.layer(b)
	})

	raise := func(w Window) {
		if err := wm.backend.Raise(w); err != nil {
			slog.Debug("couldn't raise window", "window", w, "error", err)
		}
	}

	var fullscreen []Window
	for _, id := range wm.stack {
		c := wm.clients[id]
		if c.fullscreen {
			fullscreen = append(fullscreen, c.Frame)
			continue
		}
		raise(c.Frame)
	}
	for w := range wm.docks {
		raise(w)
	}
	for _, w := range fullscreen {
		raise(w)
	}

	wm.exportStacking()
}

// raise puts c on top of its layer.
func (wm *WindowManager) raise(c *Client) {
	wm.stack = slices.DeleteFunc(wm.stack, func(id ClientID) bool { return id == c.ID })
	wm.stack = append(wm.stack, c.ID)
	wm.restack()
}

func (wm *WindowManager) show(c *Client) {
	if err := wm.backend.Show(c.Frame, c.Window); err != nil {
		slog.Error("couldn't show client", "window", c.Window, "error", err)
	}
}

func (wm *WindowManager) hide(c *Client) {
	if err := wm.backend.Hide(c.Frame, c.Window); err != nil {
		slog.Error("couldn't hide client", "window", c.Window, "error", err)
	}
}

// focus gives c the input focus, or clears it when c is nil.
func (wm *WindowManager) focus(c *Client) {
	w := None
	if c != nil {
		w = c.Window
	}
	if err := wm.backend.SetInputFocus(w); err != nil {
		slog.Warn("couldn't set input focus", "window", w, "error", err)
	}
	wm.setFocused(c)
}

// setFocused records c as the focused client and updates the frame colours
// and _NET_ACTIVE_WINDOW. It does not move the input focus.
func (wm *WindowManager) setFocused(c *Client) {
	if prev := wm.clients[wm.focused]; prev != nil && prev != c {
		if err := wm.backend.SetFrameFocused(prev.Frame, false); err != nil {
			slog.Debug("couldn't unfocus frame", "frame", prev.Frame, "error", err)
		}
	}

	if c == nil {
		wm.focused = 0
		if err := wm.backend.ExportActiveWindow(None); err != nil {
			slog.Debug("couldn't export active window", "error", err)
		}
		return
	}

	wm.focused = c.ID
	c.urgent = false
	if err := wm.backend.SetFrameFocused(c.Frame, true); err != nil {
		slog.Debug("couldn't focus frame", "frame", c.Frame, "error", err)
	}
	if err := wm.backend.ExportActiveWindow(c.Window); err != nil {
		slog.Debug("couldn't export active window", "error", err)
	}

	if ws := wm.WorkspaceOf(c.ID); ws != nil {
		if len(ws.clients) > 0 && ws.clients[0] != c.ID {
			ws.stackFocus = c.ID
		}
		ws.focus = c.ID
		if m := wm.monitorOf(ws); m != nil && m.Current() == ws && m.Index != wm.current {
			wm.current = m.Index
			wm.exportCurrentDesktop()
		}
	}
}

// fallback picks the client to focus on ws when nothing else is asked for.
func (wm *WindowManager) fallback(ws *Workspace) *Client {
	if c := wm.clients[ws.focus]; c != nil && ws.Contains(ws.focus) {
		return c
	}
	if len(ws.clients) > 0 {
		return wm.clients[ws.clients[0]]
	}
	return nil
}

// switchWorkspace shows the workspace with the given global index on its
// monitor and makes that monitor current.
func (wm *WindowManager) switchWorkspace(index int) {
	ws, m := wm.workspaceByIndex(index)
	if ws == nil {
		slog.Debug("no such workspace", "index", index)
		return
	}

	wm.current = m.Index
	old := m.Current()
	if m.switchTo(m.local(ws)) {
		wm.arrange(ws)
		for _, id := range ws.clients {
			wm.show(wm.clients[id])
		}
		for _, id := range old.clients {
			wm.hide(wm.clients[id])
		}
	}

	wm.focus(wm.fallback(ws))
	wm.exportCurrentDesktop()
}

// moveToWorkspace detaches c from its workspace and attaches it to target.
func (wm *WindowManager) moveToWorkspace(c *Client, target *Workspace) {
	src := wm.WorkspaceOf(c.ID)
	if src == nil || src == target {
		return
	}
	srcMonitor, dstMonitor := wm.monitorOf(src), wm.monitorOf(target)

	src.Detach(c.ID)
	target.Attach(c.ID)

	if err := wm.backend.ExportClientDesktop(c.Window, target.Index); err != nil {
		slog.Debug("couldn't export client desktop", "window", c.Window, "error", err)
	}

	if c.floating && srcMonitor != dstMonitor {
		c.Center(target.area)
	}

	if wm.visible(target) {
		wm.show(c)
		wm.raise(c)
	} else {
		wm.hide(c)
		if wm.focused == c.ID {
			if wm.visible(src) {
				wm.focus(wm.fallback(src))
			} else {
				wm.focus(nil)
			}
		}
	}
}

func (wm *WindowManager) setFullscreen(c *Client, on bool) {
	ws := wm.WorkspaceOf(c.ID)
	if ws == nil {
		return
	}
	c.SetFullscreen(on, wm.monitorOf(ws).dims)
	wm.arrange(ws)
}

func (wm *WindowManager) exportClientLists() {
	windows := make([]Window, 0, len(wm.order))
	for _, id := range wm.order {
		windows = append(windows, wm.clients[id].Window)
	}
	if err := wm.backend.ExportClientList(windows); err != nil {
		slog.Debug("couldn't export client list", "error", err)
	}
	wm.exportStacking()
}

func (wm *WindowManager) exportStacking() {
	windows := make([]Window, 0, len(wm.stack))
	for _, id := range wm.stack {
		windows = append(windows, wm.clients[id].Window)
	}
	if err := wm.backend.ExportClientListStacking(windows); err != nil {
		slog.Debug("couldn't export stacking order", "error", err)
	}
}

func (wm *WindowManager) exportDesktops() {
	var names []string
	for _, m := range wm.monitors {
		for _, ws := range m.workspaces {
			names = append(names, ws.Name)
		}
	}
	if err := wm.backend.ExportDesktops(names); err != nil {
		slog.Warn("couldn't export desktops", "error", err)
	}
	wm.exportCurrentDesktop()
}

func (wm *WindowManager) exportCurrentDesktop() {
	if err := wm.backend.ExportCurrentDesktop(wm.CurrentWorkspace().Index); err != nil {
		slog.Debug("couldn't export current desktop", "error", err)
	}
}
