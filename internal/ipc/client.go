package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/winborder/internal/border"
	"github.com/1broseidon/winborder/internal/runtimepath"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}
	return NewClientAt(socketPath)
}

// NewClientAt creates a client for the socket at socketPath.
func NewClientAt(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	return &resp, nil
}

func (c *Client) call(cmd CommandType, out interface{}) error {
	resp, err := c.sendRequest(&Request{Command: cmd})
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("failed to parse %s data: %w", cmd, err)
	}
	return nil
}

// Reload asks the daemon to re-read its configuration.
func (c *Client) Reload() (*ReloadData, error) {
	var data ReloadData
	if err := c.call(CommandReload, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetStatus retrieves daemon status
func (c *Client) GetStatus() (*StatusData, error) {
	var status StatusData
	if err := c.call(CommandGetStatus, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// ListBorders retrieves a snapshot of every live border.
func (c *Client) ListBorders() ([]border.Snapshot, error) {
	var data BordersData
	if err := c.call(CommandListBorders, &data); err != nil {
		return nil, err
	}
	return data.Borders, nil
}

// ConfigPath returns the config file the daemon loaded.
func (c *Client) ConfigPath() (string, error) {
	var data ConfigPathData
	if err := c.call(CommandConfigPath, &data); err != nil {
		return "", err
	}
	return data.Path, nil
}

// Toggle flips border drawing on or off and reports the new state.
func (c *Client) Toggle() (bool, error) {
	var data ToggleData
	if err := c.call(CommandToggle, &data); err != nil {
		return false, err
	}
	return data.Enabled, nil
}

// Quit asks the daemon to shut down.
func (c *Client) Quit() error {
	return c.call(CommandQuit, nil)
}

// Ping checks if the daemon is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
