package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"

	"github.com/1broseidon/winborder/internal/border"
	"github.com/1broseidon/winborder/internal/colors"
	"github.com/1broseidon/winborder/internal/config"
	"github.com/1broseidon/winborder/internal/platform"
)

// ManagerConfig holds the collaborators of a Manager.
type ManagerConfig struct {
	WindowSystem platform.WindowSystem
	Config       *config.Config
	// Accent supplies the desktop accent color. Nil resolves "accent" to black.
	Accent colors.AccentSource
	Logger *slog.Logger
}

// ReloadResult counts what a reload did to the live borders.
type ReloadResult struct {
	Kept      int `json:"kept"`
	Created   int `json:"created"`
	Destroyed int `json:"destroyed"`
}

// Status summarizes the daemon for status queries.
type Status struct {
	Enabled  bool     `json:"enabled"`
	Borders  int      `json:"borders"`
	Visible  int      `json:"visible"`
	Rules    int      `json:"rules"`
	DPI      float64  `json:"dpi"`
	LogLevel string   `json:"log_level"`
	Warnings []string `json:"warnings,omitempty"`
}

// Manager turns window-system events into border commands. It owns the
// border registry and decides, per window rule, which windows get a border.
type Manager struct {
	ws       platform.WindowSystem
	registry *border.Registry
	resolver *colors.Resolver
	accent   colors.AccentSource
	logger   *slog.Logger

	mu      sync.RWMutex
	ctx     context.Context
	cfg     *config.Config
	enabled bool
}

func NewManager(mc ManagerConfig) *Manager {
	logger := mc.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := mc.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Manager{
		ws:       mc.WindowSystem,
		registry: border.NewRegistry(),
		resolver: colors.NewResolver(mc.Accent, logger),
		accent:   mc.Accent,
		logger:   logger,
		ctx:      context.Background(),
		cfg:      cfg,
		enabled:  true,
	}
}

// Registry exposes the live borders.
func (m *Manager) Registry() *border.Registry {
	return m.registry
}

// Resolver returns the color resolver shared by all borders.
func (m *Manager) Resolver() *colors.Resolver {
	return m.resolver
}

// Config returns the current effective config.
func (m *Manager) Config() *config.Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

// Start subscribes to window events and creates borders for the windows
// that already exist. Those skip the initialize delay since they are not
// opening. Border actors stop when ctx is cancelled.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	m.ctx = ctx
	m.mu.Unlock()

	if err := m.ws.Watch(m.HandleEvent); err != nil {
		return fmt.Errorf("failed to watch windows: %w", err)
	}
	created, err := m.scan(true)
	if err != nil {
		return err
	}
	m.logger.Info("tracking existing windows", "borders", created)
	return nil
}

// HandleEvent routes one window-system event. It never blocks.
func (m *Manager) HandleEvent(e platform.Event) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("event handler panic recovered", "event", e.Kind.String(), "error", r)
		}
	}()

	id := border.WindowID(e.Window.ID)
	switch e.Kind {
	case platform.EventCreated:
		m.track(e.Window, false, 0)
		return
	case platform.EventRetitled:
		m.retitled(e.Window)
		return
	}

	b, ok := m.registry.Lookup(id)
	if !ok {
		// A window shown without a border (toggled back on, or its
		// creation was missed) gets one now.
		if e.Kind == platform.EventShow {
			if w, err := m.ws.Window(e.Window.ID); err == nil {
				m.track(w, false, 0)
			}
		}
		return
	}
	var cmd border.Command
	switch e.Kind {
	case platform.EventLocationChange:
		cmd = border.LocationChange(border.Rect(e.Window.Frame))
	case platform.EventReorder:
		cmd = border.Reorder()
	case platform.EventShow:
		cmd = border.Show()
	case platform.EventHide:
		cmd = border.Hide()
	case platform.EventMinimizeStart:
		cmd = border.MinimizeStart()
	case platform.EventMinimizeEnd:
		cmd = border.MinimizeEnd()
	case platform.EventFocusChanged:
		cmd = border.FocusChanged(e.Active)
	case platform.EventDestroyed:
		m.registry.Evict(b)
		return
	default:
		return
	}
	b.Send(cmd)
}

// track creates a border for w unless one exists, borders are toggled off,
// or a window rule disables it. It reports whether a border was created.
func (m *Manager) track(w platform.Window, existing bool, active platform.WindowID) bool {
	m.mu.RLock()
	ctx, cfg, enabled := m.ctx, m.cfg, m.enabled
	m.mu.RUnlock()
	if !enabled {
		return false
	}

	settings, ok := cfg.SettingsFor(w.Title, w.Class)
	if !ok {
		m.logger.Debug("border disabled by window rule", "window", border.WindowID(w.ID).String(), "class", w.Class)
		return false
	}
	if existing {
		settings.InitializeDelay = 0
	}

	id := border.WindowID(w.ID)
	b, created := m.registry.UpsertIfAbsent(id, func() *border.Border {
		return border.New(id, settings, m.borderOptions())
	})
	if !created {
		return false
	}
	b.Start(ctx)

	if active == 0 {
		active, _ = m.ws.ActiveWindow()
	}
	b.Send(border.LocationChange(border.Rect(w.Frame)))
	b.Send(border.FocusChanged(active == w.ID))
	if w.Minimized {
		b.Send(border.MinimizeStart())
	}
	if w.Visible {
		b.Send(border.Show())
	}
	m.logger.Debug("border created", "window", id.String(), "class", w.Class, "title", w.Title)
	return true
}

func (m *Manager) borderOptions() border.Options {
	return border.Options{
		Surfaces: m.ws.Surfaces(),
		Resolver: m.resolver,
		DPI:      m.ws.DPI(),
		Logger:   m.logger,
	}
}

// retitled re-applies window rules after a title or class change.
func (m *Manager) retitled(w platform.Window) {
	m.mu.RLock()
	cfg, enabled := m.cfg, m.enabled
	m.mu.RUnlock()
	if !enabled {
		return
	}

	id := border.WindowID(w.ID)
	settings, ok := cfg.SettingsFor(w.Title, w.Class)
	b, exists := m.registry.Lookup(id)
	switch {
	case exists && !ok:
		m.registry.Evict(b)
	case exists:
		// Titles change constantly in terminals; only a different rule
		// outcome is worth a reload.
		if sameSettings(b.Settings(), settings) {
			return
		}
		b.Send(border.Reload(settings))
	case ok:
		full, err := m.ws.Window(w.ID)
		if err != nil {
			return
		}
		m.track(full, true, 0)
	}
}

// scan creates borders for current windows that lack one.
func (m *Manager) scan(existing bool) (int, error) {
	windows, err := m.ws.Windows()
	if err != nil {
		return 0, fmt.Errorf("failed to list windows: %w", err)
	}
	active, _ := m.ws.ActiveWindow()
	created := 0
	for _, w := range windows {
		if m.track(w, existing, active) {
			created++
		}
	}
	return created, nil
}

// Reload applies a new config. Borders whose window rule still enables them
// keep their actor and receive the new settings; the rest are destroyed.
// Windows that gained a border are then picked up.
func (m *Manager) Reload(cfg *config.Config) (ReloadResult, error) {
	if cfg == nil {
		return ReloadResult{}, errors.New("nil config")
	}
	m.mu.Lock()
	m.cfg = cfg
	enabled := m.enabled
	m.mu.Unlock()

	if fb, ok := m.accent.(interface{ SetFallback([3]uint8) }); ok {
		fb.SetFallback(cfg.AccentFallbackRGB())
	}

	var res ReloadResult
	for _, b := range m.registry.Borders() {
		w, err := m.ws.Window(platform.WindowID(b.ID()))
		if err != nil {
			m.registry.Evict(b)
			res.Destroyed++
			continue
		}
		settings, ok := cfg.SettingsFor(w.Title, w.Class)
		if !ok || !enabled {
			m.registry.Evict(b)
			res.Destroyed++
			continue
		}
		b.Send(border.Reload(settings))
		res.Kept++
	}

	if enabled {
		created, err := m.scan(true)
		res.Created = created
		if err != nil {
			return res, err
		}
	}
	m.logger.Info("config reloaded", "kept", res.Kept, "created", res.Created, "destroyed", res.Destroyed)
	return res, nil
}

// Toggle switches all borders off or back on and returns the new state.
func (m *Manager) Toggle() (bool, error) {
	m.mu.Lock()
	m.enabled = !m.enabled
	enabled := m.enabled
	m.mu.Unlock()

	if !enabled {
		m.registry.EvictAll()
		m.logger.Info("borders disabled")
		return false, nil
	}
	created, err := m.scan(true)
	m.logger.Info("borders enabled", "borders", created)
	return true, err
}

// Enabled reports whether borders are currently toggled on.
func (m *Manager) Enabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.enabled
}

// Status summarizes the manager.
func (m *Manager) Status() Status {
	m.mu.RLock()
	cfg, enabled := m.cfg, m.enabled
	m.mu.RUnlock()

	st := Status{
		Enabled:  enabled,
		Rules:    len(cfg.Rules),
		DPI:      m.ws.DPI(),
		LogLevel: cfg.LogLevel,
		Warnings: cfg.Warnings,
	}
	for _, snap := range m.registry.Snapshots() {
		st.Borders++
		if snap.State == border.StateVisible {
			st.Visible++
		}
	}
	return st
}

// Borders returns snapshots of the live borders ordered by window id.
func (m *Manager) Borders() []border.Snapshot {
	return m.registry.Snapshots()
}

// Reconcile repairs drift between the window list and the registry: borders
// of vanished windows are destroyed and missed windows get one.
func (m *Manager) Reconcile() (ReconcileResult, error) {
	windows, err := m.ws.Windows()
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("failed to list windows: %w", err)
	}
	present := make(map[border.WindowID]platform.Window, len(windows))
	for _, w := range windows {
		present[border.WindowID(w.ID)] = w
	}

	var res ReconcileResult
	for _, b := range m.registry.Borders() {
		if _, ok := present[b.ID()]; !ok {
			m.registry.Evict(b)
			res.Orphaned++
		}
	}

	if !m.Enabled() {
		return res, nil
	}
	active, _ := m.ws.ActiveWindow()
	for id, w := range present {
		if _, ok := m.registry.Lookup(id); ok {
			continue
		}
		if m.track(w, true, active) {
			res.Adopted++
		}
	}
	return res, nil
}

// Shutdown destroys every border and waits for the actors to release their
// surfaces, up to timeout.
func (m *Manager) Shutdown(timeout time.Duration) {
	borders := m.registry.EvictAll()
	deadline := time.After(timeout)
	for _, b := range borders {
		select {
		case <-b.Done():
		case <-deadline:
			m.logger.Warn("timed out waiting for borders to close")
			return
		}
	}
}

// sameSettings compares settings as a border would draw them. The
// initialize delay is ignored; it only matters before the first show.
func sameSettings(a, b border.Settings) bool {
	a.InitializeDelay, b.InitializeDelay = 0, 0
	return reflect.DeepEqual(a, b)
}
