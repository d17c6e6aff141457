//go:build linux

package platform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/winborder/internal/border"
	"github.com/1broseidon/winborder/internal/render"
	"github.com/1broseidon/winborder/internal/x11"
)

const wakeAtom = "_WINBORDER_WAKE"

// LinuxSystem tracks EWMH-managed X11 clients and reports their changes.
type LinuxSystem struct {
	conn     *x11.Connection
	surfaces *render.Factory
	dpi      float64
	logger   *slog.Logger

	mu       sync.Mutex
	handler  Handler
	tracked  map[xproto.Window]*trackedWindow
	clients  []WindowID
	active   xproto.Window
	wake     *xwindow.Window
	watching bool
}

type trackedWindow struct {
	frame     xproto.Window
	rect      Rect
	visible   bool
	minimized bool
}

var _ WindowSystem = (*LinuxSystem)(nil)

// NewLinuxSystem wraps an existing X11 connection.
func NewLinuxSystem(conn *x11.Connection, logger *slog.Logger) (*LinuxSystem, error) {
	if logger == nil {
		logger = slog.Default()
	}
	factory, err := render.NewFactory(conn, logger)
	if err != nil {
		return nil, err
	}
	return &LinuxSystem{
		conn:     conn,
		surfaces: factory,
		dpi:      conn.DPI(),
		logger:   logger,
		tracked:  make(map[xproto.Window]*trackedWindow),
	}, nil
}

// NewLinuxSystemFromDisplay opens a fresh X11 connection.
func NewLinuxSystemFromDisplay(logger *slog.Logger) (*LinuxSystem, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	s, err := NewLinuxSystem(conn, logger)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// Connection exposes the X11 connection for hotkey registration.
func (s *LinuxSystem) Connection() *x11.Connection { return s.conn }

// Disconnect closes the underlying X11 connection.
func (s *LinuxSystem) Disconnect() {
	if s != nil && s.conn != nil {
		s.conn.Close()
	}
}

func (s *LinuxSystem) DPI() float64                    { return s.dpi }
func (s *LinuxSystem) Surfaces() border.SurfaceFactory { return s.surfaces }

// ActiveWindow returns the currently focused client.
func (s *LinuxSystem) ActiveWindow() (WindowID, error) {
	wid, err := s.conn.GetActiveWindow()
	if err != nil {
		return 0, err
	}
	return WindowID(wid), nil
}

// Windows lists normal managed clients sorted by id.
func (s *LinuxSystem) Windows() ([]Window, error) {
	clients, err := s.conn.ClientList()
	if err != nil {
		return nil, err
	}
	windows := make([]Window, 0, len(clients))
	for _, id := range clients {
		if !s.conn.IsNormalWindow(id) {
			continue
		}
		w, err := s.Window(WindowID(id))
		if err != nil {
			s.logger.Debug("skipping window", "window", fmt.Sprintf("0x%x", uint32(id)), "error", err)
			continue
		}
		windows = append(windows, w)
	}
	sort.Slice(windows, func(i, j int) bool {
		return windows[i].ID < windows[j].ID
	})
	return windows, nil
}

// Window reads the current metadata of one client.
func (s *LinuxSystem) Window(id WindowID) (Window, error) {
	xid := xproto.Window(id)
	rect, err := s.frame(xid)
	if err != nil {
		return Window{}, err
	}
	return Window{
		ID:        id,
		Title:     s.windowTitle(xid),
		Class:     s.windowClass(xid),
		Frame:     rect,
		Visible:   s.conn.IsViewable(xid),
		Minimized: s.conn.IsMinimized(xid),
	}, nil
}

// Watch subscribes to root and client notifications. Existing clients are
// tracked silently; callers enumerate them with Windows.
func (s *LinuxSystem) Watch(h Handler) error {
	s.mu.Lock()
	if s.watching {
		s.mu.Unlock()
		return errors.New("already watching")
	}
	s.watching = true
	s.handler = h
	s.mu.Unlock()

	xu := s.conn.XUtil
	root := xwindow.New(xu, s.conn.Root)
	if err := root.Listen(xproto.EventMaskPropertyChange); err != nil {
		return fmt.Errorf("failed to listen on root window: %w", err)
	}
	xevent.PropertyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
		s.rootProperty(ev)
	}).Connect(xu, s.conn.Root)

	wake, err := xwindow.Generate(xu)
	if err != nil {
		return fmt.Errorf("failed to allocate wake window: %w", err)
	}
	if err := wake.CreateChecked(s.conn.Root, -1, -1, 1, 1, 0); err != nil {
		return fmt.Errorf("failed to create wake window: %w", err)
	}
	if err := wake.Listen(xproto.EventMaskPropertyChange); err != nil {
		return fmt.Errorf("failed to listen on wake window: %w", err)
	}
	s.wake = wake

	clients, err := s.conn.ClientList()
	if err != nil {
		return err
	}
	ids := make([]WindowID, 0, len(clients))
	for _, id := range clients {
		if !s.conn.IsNormalWindow(id) {
			continue
		}
		s.track(id)
		ids = append(ids, WindowID(id))
	}
	active, _ := s.conn.GetActiveWindow()

	s.mu.Lock()
	s.clients = ids
	s.active = active
	s.mu.Unlock()
	return nil
}

// Run drives the X11 event loop until ctx is cancelled.
func (s *LinuxSystem) Run(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.conn.EventLoop()
	}()

	select {
	case <-ctx.Done():
		s.conn.Quit()
		s.wakeUp()
		<-done
		return nil
	case <-done:
		return errors.New("x11 event loop exited")
	}
}

// wakeUp generates an event so a blocked event loop notices Quit.
func (s *LinuxSystem) wakeUp() {
	if s.wake == nil {
		return
	}
	if err := xprop.ChangeProp32(s.conn.XUtil, s.wake.Id, wakeAtom, "CARDINAL", 1); err != nil {
		s.logger.Debug("failed to wake event loop", "error", err)
	}
}

func (s *LinuxSystem) emit(e Event) {
	s.mu.Lock()
	h := s.handler
	s.mu.Unlock()
	if h != nil {
		h(e)
	}
}

func (s *LinuxSystem) rootProperty(ev xevent.PropertyNotifyEvent) {
	name, err := xprop.AtomName(s.conn.XUtil, ev.Atom)
	if err != nil {
		return
	}
	switch name {
	case "_NET_CLIENT_LIST":
		s.clientListChanged()
	case "_NET_ACTIVE_WINDOW":
		s.activeChanged()
	}
}

func (s *LinuxSystem) clientListChanged() {
	clients, err := s.conn.ClientList()
	if err != nil {
		s.logger.Warn("failed to read client list", "error", err)
		return
	}
	current := make([]WindowID, 0, len(clients))
	for _, id := range clients {
		s.mu.Lock()
		_, known := s.tracked[id]
		s.mu.Unlock()
		if known || s.conn.IsNormalWindow(id) {
			current = append(current, WindowID(id))
		}
	}

	s.mu.Lock()
	old := s.clients
	s.clients = current
	s.mu.Unlock()

	added, removed := DiffClients(old, current)
	for _, id := range removed {
		s.untrack(xproto.Window(id))
	}
	for _, id := range added {
		w, err := s.Window(id)
		if err != nil {
			s.logger.Debug("new client vanished", "window", fmt.Sprintf("0x%x", uint32(id)), "error", err)
			continue
		}
		s.track(xproto.Window(id))
		s.emit(Event{Kind: EventCreated, Window: w})
	}
}

func (s *LinuxSystem) activeChanged() {
	next, err := s.conn.GetActiveWindow()
	if err != nil {
		next = 0
	}
	s.mu.Lock()
	prev := s.active
	s.active = next
	s.mu.Unlock()
	for _, e := range FocusEvents(WindowID(prev), WindowID(next)) {
		s.emit(e)
	}
}

// track subscribes to structure and property changes of a client and its
// window manager frame.
func (s *LinuxSystem) track(id xproto.Window) {
	s.mu.Lock()
	if _, ok := s.tracked[id]; ok {
		s.mu.Unlock()
		return
	}
	t := &trackedWindow{}
	s.tracked[id] = t
	s.mu.Unlock()

	xu := s.conn.XUtil
	if err := xwindow.New(xu, id).Listen(xproto.EventMaskStructureNotify, xproto.EventMaskPropertyChange); err != nil {
		s.logger.Debug("failed to listen on client", "window", fmt.Sprintf("0x%x", uint32(id)), "error", err)
	}

	rect, _ := s.frame(id)
	visible := s.conn.IsViewable(id)
	minimized := s.conn.IsMinimized(id)
	s.mu.Lock()
	t.rect, t.visible, t.minimized = rect, visible, minimized
	s.mu.Unlock()

	xevent.ConfigureNotifyFun(func(xu *xgbutil.XUtil, ev xevent.ConfigureNotifyEvent) {
		s.configured(id)
	}).Connect(xu, id)
	xevent.MapNotifyFun(func(xu *xgbutil.XUtil, ev xevent.MapNotifyEvent) {
		s.visibility(id)
	}).Connect(xu, id)
	xevent.UnmapNotifyFun(func(xu *xgbutil.XUtil, ev xevent.UnmapNotifyEvent) {
		s.visibility(id)
	}).Connect(xu, id)
	xevent.ReparentNotifyFun(func(xu *xgbutil.XUtil, ev xevent.ReparentNotifyEvent) {
		s.attachFrame(id)
		s.configured(id)
	}).Connect(xu, id)
	xevent.DestroyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.DestroyNotifyEvent) {
		s.untrack(id)
	}).Connect(xu, id)
	xevent.PropertyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
		s.clientProperty(id, ev)
	}).Connect(xu, id)

	s.attachFrame(id)
}

// attachFrame follows the client into its current frame. The frame's own
// configure and map notifications report moves, restacking and workspace
// switches that never reach the client.
func (s *LinuxSystem) attachFrame(id xproto.Window) {
	frame, err := s.conn.TopLevel(id)
	if err != nil {
		return
	}

	s.mu.Lock()
	t, ok := s.tracked[id]
	if !ok || t.frame == frame {
		s.mu.Unlock()
		return
	}
	old := t.frame
	t.frame = frame
	s.mu.Unlock()

	xu := s.conn.XUtil
	if old != 0 && old != id {
		xevent.Detach(xu, old)
	}
	if frame == id {
		return
	}
	if err := xwindow.New(xu, frame).Listen(xproto.EventMaskStructureNotify); err != nil {
		s.logger.Debug("failed to listen on frame", "frame", fmt.Sprintf("0x%x", uint32(frame)), "error", err)
		return
	}
	xevent.ConfigureNotifyFun(func(xu *xgbutil.XUtil, ev xevent.ConfigureNotifyEvent) {
		s.configured(id)
	}).Connect(xu, frame)
	xevent.MapNotifyFun(func(xu *xgbutil.XUtil, ev xevent.MapNotifyEvent) {
		s.visibility(id)
	}).Connect(xu, frame)
	xevent.UnmapNotifyFun(func(xu *xgbutil.XUtil, ev xevent.UnmapNotifyEvent) {
		s.visibility(id)
	}).Connect(xu, frame)
}

func (s *LinuxSystem) untrack(id xproto.Window) {
	s.mu.Lock()
	t, ok := s.tracked[id]
	if ok {
		delete(s.tracked, id)
	}
	s.mu.Unlock()
	if !ok {
		return
	}

	xu := s.conn.XUtil
	xevent.Detach(xu, id)
	if t.frame != 0 && t.frame != id {
		xevent.Detach(xu, t.frame)
	}
	s.emit(Event{Kind: EventDestroyed, Window: Window{ID: WindowID(id)}})
}

func (s *LinuxSystem) configured(id xproto.Window) {
	rect, err := s.frame(id)
	if err != nil {
		return
	}
	s.mu.Lock()
	t, ok := s.tracked[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	kind := GeometryEvent(t.rect, rect)
	t.rect = rect
	s.mu.Unlock()
	s.emit(Event{Kind: kind, Window: Window{ID: WindowID(id), Frame: rect}})
}

func (s *LinuxSystem) visibility(id xproto.Window) {
	visible := s.conn.IsViewable(id)
	s.mu.Lock()
	t, ok := s.tracked[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	kind, changed := VisibilityEvent(t.visible, visible)
	t.visible = visible
	s.mu.Unlock()
	if !changed {
		return
	}
	w := Window{ID: WindowID(id), Visible: visible}
	if visible {
		// Frames are often moved while unmapped.
		if rect, err := s.frame(id); err == nil {
			w.Frame = rect
			s.mu.Lock()
			t.rect = rect
			s.mu.Unlock()
			s.emit(Event{Kind: EventLocationChange, Window: w})
		}
	}
	s.emit(Event{Kind: kind, Window: w})
}

func (s *LinuxSystem) clientProperty(id xproto.Window, ev xevent.PropertyNotifyEvent) {
	name, err := xprop.AtomName(s.conn.XUtil, ev.Atom)
	if err != nil {
		return
	}
	switch name {
	case "_NET_WM_STATE":
		minimized := s.conn.IsMinimized(id)
		s.mu.Lock()
		t, ok := s.tracked[id]
		if !ok {
			s.mu.Unlock()
			return
		}
		kind, changed := MinimizeEvent(t.minimized, minimized)
		t.minimized = minimized
		s.mu.Unlock()
		if changed {
			s.emit(Event{Kind: kind, Window: Window{ID: WindowID(id), Minimized: minimized}})
		}
	case "_GTK_FRAME_EXTENTS":
		s.configured(id)
	case "_NET_WM_NAME", "WM_NAME", "WM_CLASS":
		s.emit(Event{Kind: EventRetitled, Window: Window{
			ID:    WindowID(id),
			Title: s.windowTitle(id),
			Class: s.windowClass(id),
		}})
	}
}

func (s *LinuxSystem) frame(id xproto.Window) (Rect, error) {
	x, y, w, h, err := s.conn.FrameGeometry(id)
	if err != nil {
		return Rect{}, err
	}
	return Rect{X: x, Y: y, Width: w, Height: h}, nil
}

func (s *LinuxSystem) windowClass(windowID xproto.Window) string {
	wmClass, err := icccm.WmClassGet(s.conn.XUtil, windowID)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(wmClass.Class)
}

func (s *LinuxSystem) windowTitle(windowID xproto.Window) string {
	title, err := ewmh.WmNameGet(s.conn.XUtil, windowID)
	if err == nil {
		title = strings.TrimSpace(title)
		if title != "" {
			return title
		}
	}

	title, err = icccm.WmNameGet(s.conn.XUtil, windowID)
	if err == nil {
		title = strings.TrimSpace(title)
		if title != "" {
			return title
		}
	}

	return ""
}
