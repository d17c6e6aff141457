package daemon

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/1broseidon/winborder/internal/border"
	"github.com/1broseidon/winborder/internal/config"
	"github.com/1broseidon/winborder/internal/ipc"
	"github.com/1broseidon/winborder/internal/logging"
)

// ServiceConfig wires a Service.
type ServiceConfig struct {
	Manager    *Manager
	ConfigPath string
	// Load reads the config at a path. Defaults to config.LoadFromPath.
	Load func(path string) (*config.LoadResult, error)
	// Level, when set, follows the log_level of each reloaded config.
	Level  *slog.LevelVar
	Quit   func()
	Logger *slog.Logger
}

// Service exposes a Manager to the IPC server, the config watcher and the
// hotkeys. Reloads are serialized.
type Service struct {
	m      *Manager
	path   string
	load   func(path string) (*config.LoadResult, error)
	level  *slog.LevelVar
	quit   func()
	logger *slog.Logger

	reloadMu sync.Mutex
	quitOnce sync.Once
}

var _ ipc.Controller = (*Service)(nil)

func NewService(sc ServiceConfig) *Service {
	logger := sc.Logger
	if logger == nil {
		logger = slog.Default()
	}
	load := sc.Load
	if load == nil {
		load = config.LoadFromPath
	}
	return &Service{
		m:      sc.Manager,
		path:   sc.ConfigPath,
		load:   load,
		level:  sc.Level,
		quit:   sc.Quit,
		logger: logger,
	}
}

// Reload re-reads the config file and applies it. A config that fails to
// load leaves the running config untouched.
func (s *Service) Reload() (ipc.ReloadData, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	res, err := s.load(s.path)
	if err != nil {
		s.logger.Error("config reload failed, keeping current config", "path", s.path, "error", err)
		return ipc.ReloadData{}, err
	}
	if res == nil || res.Config == nil {
		return ipc.ReloadData{}, errors.New("config loader returned no config")
	}
	for _, w := range res.Config.Warnings {
		s.logger.Warn("config warning", "warning", w)
	}
	s.applyLevel(res.Config.LogLevel)

	out, err := s.m.Reload(res.Config)
	return ipc.ReloadData{
		Kept:      out.Kept,
		Created:   out.Created,
		Destroyed: out.Destroyed,
		Warnings:  res.Config.Warnings,
	}, err
}

// ReloadQuietly reloads and only logs the outcome, for callers with nowhere
// to report an error.
func (s *Service) ReloadQuietly() {
	_, _ = s.Reload()
}

func (s *Service) applyLevel(name string) {
	if s.level == nil {
		return
	}
	lvl, err := logging.ParseLevel(name)
	if err != nil {
		s.logger.Warn("ignoring log level", "level", name, "error", err)
		return
	}
	s.level.Set(lvl)
}

func (s *Service) Status() ipc.StatusData {
	st := s.m.Status()
	return ipc.StatusData{
		Enabled:    st.Enabled,
		Borders:    st.Borders,
		Visible:    st.Visible,
		Rules:      st.Rules,
		DPI:        st.DPI,
		LogLevel:   st.LogLevel,
		ConfigPath: s.path,
		Warnings:   st.Warnings,
	}
}

func (s *Service) Borders() []border.Snapshot { return s.m.Borders() }
func (s *Service) Toggle() (bool, error)      { return s.m.Toggle() }
func (s *Service) ConfigPath() string         { return s.path }

// ToggleQuietly flips the borders and logs failures.
func (s *Service) ToggleQuietly() {
	if _, err := s.m.Toggle(); err != nil {
		s.logger.Error("toggle failed", "error", err)
	}
}

// Quit asks the daemon to stop. Only the first call has an effect.
func (s *Service) Quit() {
	s.quitOnce.Do(func() {
		s.logger.Info("shutdown requested")
		if s.quit != nil {
			s.quit()
		}
	})
}
