package ipc

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/winborder/internal/border"
	"github.com/1broseidon/winborder/internal/runtimepath"
)

// Controller is the daemon surface the IPC server exposes.
type Controller interface {
	Reload() (ReloadData, error)
	Status() StatusData
	Borders() []border.Snapshot
	Toggle() (bool, error)
	ConfigPath() string
	Quit()
}

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	ctrl         Controller
	logger       *slog.Logger
	startTime    time.Time
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server on the default runtime socket.
func NewServer(ctrl Controller, logger *slog.Logger) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}
	return NewServerAt(socketPath, ctrl, logger), nil
}

// NewServerAt creates a new IPC server bound to socketPath.
func NewServerAt(socketPath string, ctrl Controller, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		ctrl:       ctrl,
		logger:     logger,
		startTime:  time.Now(),
	}
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("IPC server listening", "socket", s.socketPath)

	go s.acceptLoop()

	return nil
}

// Run starts the server and stops it when ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	s.Stop()
	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			s.logger.Warn("IPC accept error", "error", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Warn("IPC read error", "error", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	resp, after := s.handleCommand(req)

	respData, err := resp.Marshal()
	if err != nil {
		s.logger.Error("failed to marshal IPC response", "error", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		s.logger.Warn("failed to send IPC response", "error", err)
	}
	if after != nil {
		after()
	}
}

// handleCommand processes an IPC command and returns a response. The
// optional func runs once the response has been written.
func (s *Server) handleCommand(req *Request) (*Response, func()) {
	s.logger.Debug("IPC request", "command", req.Command)

	switch req.Command {
	case CommandReload:
		return s.handleReload(), nil
	case CommandGetStatus:
		return s.handleGetStatus(), nil
	case CommandListBorders:
		return s.handleListBorders(), nil
	case CommandConfigPath:
		return s.ok(ConfigPathData{Path: s.ctrl.ConfigPath()}), nil
	case CommandToggle:
		return s.handleToggle(), nil
	case CommandQuit:
		s.logger.Info("IPC: received QUIT command")
		return s.ok(nil), s.ctrl.Quit
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command)), nil
	}
}

func (s *Server) handleReload() *Response {
	s.logger.Info("IPC: received RELOAD command")

	res, err := s.ctrl.Reload()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to reload config: %v", err))
	}

	s.logger.Info("IPC: config reloaded", "kept", res.Kept, "created", res.Created, "destroyed", res.Destroyed)
	return s.ok(res)
}

func (s *Server) handleGetStatus() *Response {
	status := s.ctrl.Status()
	status.UptimeSeconds = int64(time.Since(s.startTime).Seconds())
	status.DaemonRunning = true
	return s.ok(status)
}

func (s *Server) handleListBorders() *Response {
	snaps := s.ctrl.Borders()
	if snaps == nil {
		snaps = []border.Snapshot{}
	}
	return s.ok(BordersData{Borders: snaps})
}

func (s *Server) handleToggle() *Response {
	enabled, err := s.ctrl.Toggle()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to toggle borders: %v", err))
	}
	return s.ok(ToggleData{Enabled: enabled})
}

func (s *Server) ok(data interface{}) *Response {
	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	if s.shuttingDown {
		s.shutdownMu.Unlock()
		return
	}
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}
