package mpv

import (
	"os/exec"

	"github.com/user/clip-browser/deps"
)

// Launch starts an idle mpv window with the IPC socket enabled, ready for LoadClip.
// It checks that mpv is installed first and returns an error with install link if not.
// Returns the *exec.Cmd for the running process which can be used for cleanup.
func Launch(socketPath string) (*exec.Cmd, error) {
	if err := deps.CheckMpv(); err != nil {
		return nil, err
	}
	if socketPath == "" {
		socketPath = DefaultSocketPath
	}

	cmd := exec.Command("mpv",
		"--idle=yes",
		"--force-window=yes",
		"--keep-open=yes",
		"--input-ipc-server="+socketPath,
	)

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	return cmd, nil
}
