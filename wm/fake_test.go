package wm

import (
	"github.com/BobdaProgrammer/doTile/binding"
	"github.com/BobdaProgrammer/doTile/config"
	"github.com/BobdaProgrammer/doTile/geom"
	"github.com/BobdaProgrammer/doTile/layout"
)

// fakeBackend records what the window manager asks of the display.
type fakeBackend struct {
	monitors []geom.Dimensions
	windows  map[Window]WindowInfo
	toplevel []Window

	nextFrame Window
	frames    map[Window]Window // frame -> client window
	outer     map[Window]geom.Dimensions
	inner     map[Window]geom.Dimensions
	shown     map[Window]bool
	focused   map[Window]bool
	raised    []Window
	mappedRaised,
	mappedLowered []Window
	destroyed  []Window
	configured []ConfigureRequest

	input   Window
	deleted []Window
	killed  []Window

	grabErr    error
	grabbed    bool
	grabCursor Cursor
	pointerX   int
	pointerY   int

	bindings       binding.Table
	clientList     []Window
	stacking       []Window
	active         Window
	currentDesktop int
	desktopNames   []string
	clientDesktop  map[Window]int
	fullscreen     map[Window]bool

	events      []Event
	eventErr    error
	interrupted bool
	closed      bool
}

func newFakeBackend(monitors ...geom.Dimensions) *fakeBackend {
	if len(monitors) == 0 {
		monitors = []geom.Dimensions{geom.New(0, 0, 800, 600)}
	}
	return &fakeBackend{
		monitors:      monitors,
		windows:       map[Window]WindowInfo{},
		nextFrame:     1000,
		frames:        map[Window]Window{},
		outer:         map[Window]geom.Dimensions{},
		inner:         map[Window]geom.Dimensions{},
		shown:         map[Window]bool{},
		focused:       map[Window]bool{},
		clientDesktop: map[Window]int{},
		fullscreen:    map[Window]bool{},
	}
}

// addWindow registers a normal 200x100 window.
func (f *fakeBackend) addWindow(w Window) {
	f.windows[w] = WindowInfo{Geometry: geom.New(0, 0, 200, 100), Name: "test"}
}

func (f *fakeBackend) frameOf(w Window) Window {
	for frame, win := range f.frames {
		if win == w {
			return frame
		}
	}
	return None
}

func (f *fakeBackend) Monitors() ([]geom.Dimensions, error) { return f.monitors, nil }
func (f *fakeBackend) TopLevel() ([]Window, error)          { return f.toplevel, nil }
func (f *fakeBackend) GrabServer() error                    { return nil }
func (f *fakeBackend) UngrabServer() error                  { return nil }

func (f *fakeBackend) Inspect(w Window) (WindowInfo, error) {
	info, ok := f.windows[w]
	if !ok {
		return WindowInfo{}, NewError(FailedRequest, "no such window", nil)
	}
	return info, nil
}

func (f *fakeBackend) MapRaised(w Window) error {
	f.mappedRaised = append(f.mappedRaised, w)
	return nil
}

func (f *fakeBackend) MapLowered(w Window) error {
	f.mappedLowered = append(f.mappedLowered, w)
	return nil
}

func (f *fakeBackend) Configure(req ConfigureRequest) error {
	f.configured = append(f.configured, req)
	return nil
}

func (f *fakeBackend) CreateFrame(w Window, outer geom.Dimensions) (Window, error) {
	f.nextFrame++
	f.frames[f.nextFrame] = w
	f.outer[f.nextFrame] = outer
	return f.nextFrame, nil
}

func (f *fakeBackend) DestroyFrame(frame, w Window) error {
	delete(f.frames, frame)
	f.destroyed = append(f.destroyed, frame)
	return nil
}

func (f *fakeBackend) MoveResize(frame, w Window, outer, inner geom.Dimensions) error {
	f.outer[frame] = outer
	f.inner[w] = inner
	return nil
}

func (f *fakeBackend) Raise(frame Window) error {
	f.raised = append(f.raised, frame)
	return nil
}

func (f *fakeBackend) Show(frame, w Window) error {
	f.shown[frame] = true
	return nil
}

func (f *fakeBackend) Hide(frame, w Window) error {
	f.shown[frame] = false
	return nil
}

func (f *fakeBackend) SetFrameFocused(frame Window, focused bool) error {
	f.focused[frame] = focused
	return nil
}

func (f *fakeBackend) SetInputFocus(w Window) error {
	f.input = w
	return nil
}

func (f *fakeBackend) SendDelete(w Window) error {
	f.deleted = append(f.deleted, w)
	return nil
}

func (f *fakeBackend) Kill(w Window) error {
	f.killed = append(f.killed, w)
	return nil
}

func (f *fakeBackend) GrabBindings(table binding.Table) error {
	f.bindings = table
	return nil
}

func (f *fakeBackend) GrabPointer(c Cursor) error {
	if f.grabErr != nil {
		return f.grabErr
	}
	f.grabbed = true
	f.grabCursor = c
	return nil
}

func (f *fakeBackend) UngrabPointer() error {
	f.grabbed = false
	return nil
}

func (f *fakeBackend) PointerPosition() (int, int, error) {
	return f.pointerX, f.pointerY, nil
}

// NextEvent replays the queued events and then either fails with eventErr or
// asks the loop to stop.
func (f *fakeBackend) NextEvent() (Event, error) {
	if len(f.events) == 0 {
		if f.eventErr != nil {
			return nil, f.eventErr
		}
		return QuitRequest{}, nil
	}
	ev := f.events[0]
	f.events = f.events[1:]
	return ev, nil
}

func (f *fakeBackend) Interrupt() error {
	f.interrupted = true
	return nil
}

func (f *fakeBackend) ExportClientList(windows []Window) error {
	f.clientList = windows
	return nil
}

func (f *fakeBackend) ExportClientListStacking(windows []Window) error {
	f.stacking = windows
	return nil
}

func (f *fakeBackend) ExportActiveWindow(w Window) error {
	f.active = w
	return nil
}

func (f *fakeBackend) ExportCurrentDesktop(index int) error {
	f.currentDesktop = index
	return nil
}

func (f *fakeBackend) ExportDesktops(names []string) error {
	f.desktopNames = names
	return nil
}

func (f *fakeBackend) ExportClientDesktop(w Window, index int) error {
	f.clientDesktop[w] = index
	return nil
}

func (f *fakeBackend) ExportFullscreen(w Window, on bool) error {
	f.fullscreen[w] = on
	return nil
}

func (f *fakeBackend) Close() error {
	f.closed = true
	return nil
}

// testConfig has no gaps and no frame decoration so layouts can be checked
// pixel for pixel.
func testConfig() config.Config {
	cfg := config.Default()
	cfg.PrimaryWorkspaces = 3
	cfg.SecondaryWorkspaces = 2
	cfg.Layout.Params = layout.Params{MainRatio: 0.5, NMain: 1}
	cfg.Theme.FrameWidth = config.FrameWidth{}
	cfg.Bindings = binding.DefaultTable(3)
	return cfg
}
