package mpv

import (
	"bufio"
	"encoding/json"
	"errors"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// fakeMpv answers IPC requests on a Unix socket and records the commands it saw.
type fakeMpv struct {
	mu       sync.Mutex
	commands [][]interface{}
	props    map[string]interface{}
}

func startFakeMpv(t *testing.T) (*fakeMpv, string) {
	t.Helper()
	// Unix socket paths are length-limited, so avoid t.TempDir's long names.
	dir, err := os.MkdirTemp("", "mpv")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	sock := filepath.Join(dir, "s.sock")

	ln, err := net.Listen("unix", sock)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	f := &fakeMpv{props: map[string]interface{}{
		"time-pos": 12.5,
		"duration": 300.0,
		"pause":    true,
	}}

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go f.serve(conn)
		}
	}()
	return f, sock
}

func (f *fakeMpv) serve(conn net.Conn) {
	defer conn.Close()
	r := bufio.NewReader(conn)
	for {
		line, err := r.ReadBytes('\n')
		if err != nil {
			return
		}
		var req ipcRequest
		if err := json.Unmarshal(line, &req); err != nil {
			return
		}

		f.mu.Lock()
		f.commands = append(f.commands, req.Command)
		resp := ipcResponse{RequestID: req.RequestID, Error: "success"}
		switch req.Command[0] {
		case "get_property":
			v, ok := f.props[req.Command[1].(string)]
			if !ok {
				resp.Error = "property not found"
			}
			resp.Data = v
		case "set_property":
			f.props[req.Command[1].(string)] = req.Command[2]
		}
		f.mu.Unlock()

		// An unrelated event line first, as mpv interleaves them.
		conn.Write([]byte(`{"event":"playback-restart"}` + "\n"))
		out, _ := json.Marshal(resp)
		conn.Write(append(out, '\n'))
	}
}

func TestClient_NotConnected(t *testing.T) {
	c := NewClient("")
	if c.SocketPath() != DefaultSocketPath {
		t.Errorf("SocketPath: got %q", c.SocketPath())
	}
	if _, err := c.GetTimePos(); !errors.Is(err, ErrNotConnected) {
		t.Errorf("got %v, want ErrNotConnected", err)
	}
}

func TestClient_ConnectMissingSocket(t *testing.T) {
	c := NewClient(filepath.Join(os.TempDir(), "definitely-missing.sock"))
	if err := c.Connect(); !errors.Is(err, ErrSocketNotFound) {
		t.Errorf("got %v, want ErrSocketNotFound", err)
	}
}

func TestClient_Properties(t *testing.T) {
	_, sock := startFakeMpv(t)
	c := NewClient(sock)
	if err := c.Connect(); err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	pos, err := c.GetTimePos()
	if err != nil || pos != 12.5 {
		t.Errorf("GetTimePos: got %v err=%v", pos, err)
	}
	dur, err := c.GetDuration()
	if err != nil || dur != 300 {
		t.Errorf("GetDuration: got %v err=%v", dur, err)
	}
	paused, err := c.GetPaused()
	if err != nil || !paused {
		t.Errorf("GetPaused: got %v err=%v", paused, err)
	}
	if _, err := c.GetProperty("nope"); err == nil {
		t.Error("expected error for unknown property")
	}
}

func TestClient_LoadClip(t *testing.T) {
	f, sock := startFakeMpv(t)
	c := NewClient(sock)
	if err := c.Connect(); err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := c.LoadClip("https://www.youtube.com/watch?v=abc&cb=1", 90, 130); err != nil {
		t.Fatalf("LoadClip: %v", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.commands) != 4 {
		t.Fatalf("got %d commands: %v", len(f.commands), f.commands)
	}
	if f.props["start"] != "90" || f.props["end"] != "130" {
		t.Errorf("bounds: start=%v end=%v", f.props["start"], f.props["end"])
	}
	load := f.commands[2]
	if load[0] != "loadfile" || load[1] != "https://www.youtube.com/watch?v=abc&cb=1" || load[2] != "replace" {
		t.Errorf("loadfile command: %v", load)
	}
	if f.props["pause"] != false {
		t.Errorf("pause after load: %v", f.props["pause"])
	}
}
