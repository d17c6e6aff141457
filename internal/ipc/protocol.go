package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/1broseidon/winborder/internal/border"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandReload      CommandType = "RELOAD"
	CommandGetStatus   CommandType = "GET_STATUS"
	CommandListBorders CommandType = "LIST_BORDERS"
	CommandConfigPath  CommandType = "CONFIG_PATH"
	CommandToggle      CommandType = "TOGGLE"
	CommandQuit        CommandType = "QUIT"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	Enabled       bool     `json:"enabled"`
	Borders       int      `json:"borders"`
	Visible       int      `json:"visible"`
	Rules         int      `json:"rules"`
	DPI           float64  `json:"dpi"`
	LogLevel      string   `json:"log_level"`
	ConfigPath    string   `json:"config_path"`
	UptimeSeconds int64    `json:"uptime_seconds"`
	DaemonRunning bool     `json:"daemon_running"`
	Warnings      []string `json:"warnings,omitempty"`
}

// BordersData represents the data returned by LIST_BORDERS
type BordersData struct {
	Borders []border.Snapshot `json:"borders"`
}

// ReloadData represents the data returned by RELOAD
type ReloadData struct {
	Kept      int      `json:"kept"`
	Created   int      `json:"created"`
	Destroyed int      `json:"destroyed"`
	Warnings  []string `json:"warnings,omitempty"`
}

// ToggleData represents the data returned by TOGGLE
type ToggleData struct {
	Enabled bool `json:"enabled"`
}

// ConfigPathData represents the data returned by CONFIG_PATH
type ConfigPathData struct {
	Path string `json:"path"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
