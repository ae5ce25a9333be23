package mpv

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

const (
	// DefaultSocketPath is the default Unix socket path for mpv IPC.
	DefaultSocketPath = "/tmp/clip-browser-mpv.sock"
)

var (
	// ErrNotConnected is returned when attempting operations on a disconnected client.
	ErrNotConnected = errors.New("mpv: not connected")
	// ErrSocketNotFound is returned when the socket file doesn't exist.
	ErrSocketNotFound = errors.New("mpv: socket not found - is mpv running with --input-ipc-server?")
	// requestID is a global counter for generating unique request IDs.
	requestID uint64
)

// ipcRequest represents a JSON IPC request to mpv.
type ipcRequest struct {
	Command   []interface{} `json:"command"`
	RequestID uint64        `json:"request_id"`
}

// ipcResponse represents a JSON IPC response from mpv.
type ipcResponse struct {
	Data      interface{} `json:"data"`
	RequestID uint64      `json:"request_id"`
	Error     string      `json:"error"`
}

// Client is an mpv IPC client that communicates via Unix socket.
type Client struct {
	socketPath string
	conn       net.Conn
	reader     *bufio.Reader
	mu         sync.Mutex
}

// NewClient creates a new mpv IPC client.
// If socketPath is empty, DefaultSocketPath is used.
func NewClient(socketPath string) *Client {
	if socketPath == "" {
		socketPath = DefaultSocketPath
	}
	return &Client{
		socketPath: socketPath,
	}
}

// Connect establishes a connection to the mpv IPC socket.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return nil
	}

	conn, err := net.Dial("unix", c.socketPath)
	if err != nil {
		return ErrSocketNotFound
	}

	c.conn = conn
	c.reader = bufio.NewReader(conn)
	return nil
}

// ConnectWithRetry keeps trying to connect until timeout, for a player that is still starting.
func (c *Client) ConnectWithRetry(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		err := c.Connect()
		if err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return err
		}
		time.Sleep(100 * time.Millisecond)
	}
}

// Close closes the connection to mpv.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}

	err := c.conn.Close()
	c.conn = nil
	c.reader = nil
	return err
}

// IsConnected returns true if the client is connected to mpv.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// SocketPath returns the socket path this client is configured to use.
func (c *Client) SocketPath() string {
	return c.socketPath
}

// GetProperty retrieves the value of an mpv property.
func (c *Client) GetProperty(name string) (interface{}, error) {
	return c.sendCommand("get_property", name)
}

// SetProperty sets the value of an mpv property.
func (c *Client) SetProperty(name string, value interface{}) error {
	_, err := c.sendCommand("set_property", name, value)
	return err
}

// LoadClip replaces the current file with url, playing from start to end seconds.
// The bounds are set as options first so they apply to the file being loaded.
func (c *Client) LoadClip(url string, start, end int) error {
	if err := c.SetProperty("start", strconv.Itoa(start)); err != nil {
		return fmt.Errorf("set start: %w", err)
	}
	if err := c.SetProperty("end", strconv.Itoa(end)); err != nil {
		return fmt.Errorf("set end: %w", err)
	}
	if _, err := c.sendCommand("loadfile", url, "replace"); err != nil {
		return fmt.Errorf("loadfile: %w", err)
	}
	return c.SetProperty("pause", false)
}

// TogglePause flips the pause state.
func (c *Client) TogglePause() error {
	_, err := c.sendCommand("cycle", "pause")
	return err
}

// GetTimePos returns the current playback position in seconds.
func (c *Client) GetTimePos() (float64, error) {
	result, err := c.GetProperty("time-pos")
	if err != nil {
		return 0, err
	}
	return toFloat64(result)
}

// GetDuration returns the total duration of the video in seconds.
func (c *Client) GetDuration() (float64, error) {
	result, err := c.GetProperty("duration")
	if err != nil {
		return 0, err
	}
	return toFloat64(result)
}

// GetPaused returns true if playback is paused.
func (c *Client) GetPaused() (bool, error) {
	result, err := c.GetProperty("pause")
	if err != nil {
		return false, err
	}
	paused, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("mpv: unexpected pause value type: %T", result)
	}
	return paused, nil
}

// toFloat64 converts an interface{} to float64.
// JSON numbers from mpv are decoded as float64.
func toFloat64(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("mpv: unexpected numeric value type: %T", v)
	}
}

// sendCommand sends a JSON IPC command to mpv and returns the result.
// The command is sent as newline-terminated {"command": [...], "request_id": N};
// event lines and replies to other requests are skipped.
func (c *Client) sendCommand(command string, args ...interface{}) (interface{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil, ErrNotConnected
	}

	cmdArray := make([]interface{}, 0, len(args)+1)
	cmdArray = append(cmdArray, command)
	cmdArray = append(cmdArray, args...)

	reqID := atomic.AddUint64(&requestID, 1)

	data, err := json.Marshal(ipcRequest{Command: cmdArray, RequestID: reqID})
	if err != nil {
		return nil, fmt.Errorf("mpv: failed to marshal command: %w", err)
	}

	data = append(data, '\n')
	if _, err := c.conn.Write(data); err != nil {
		return nil, fmt.Errorf("mpv: failed to send command: %w", err)
	}

	for {
		line, err := c.reader.ReadBytes('\n')
		if err != nil {
			return nil, fmt.Errorf("mpv: failed to read response: %w", err)
		}

		var resp ipcResponse
		if err := json.Unmarshal(line, &resp); err != nil {
			continue
		}

		if resp.RequestID == reqID {
			if resp.Error != "" && resp.Error != "success" {
				return nil, fmt.Errorf("mpv: %s", resp.Error)
			}
			return resp.Data, nil
		}
	}
}
