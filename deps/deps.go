package deps

import (
	"fmt"
	"os/exec"
)

const (
	MpvInstallURL   = "https://mpv.io/installation/"
	YtDlpInstallURL = "https://github.com/yt-dlp/yt-dlp#installation"
)

// DependencyError contains information about a missing dependency
type DependencyError struct {
	Name       string
	InstallURL string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s not found. Install from: %s", e.Name, e.InstallURL)
}

// lookPath is swapped out by tests.
var lookPath = exec.LookPath

func check(name, installURL string) error {
	if _, err := lookPath(name); err != nil {
		return &DependencyError{
			Name:       name,
			InstallURL: installURL,
		}
	}
	return nil
}

// CheckMpv checks if mpv is installed and available in PATH
func CheckMpv() error {
	return check("mpv", MpvInstallURL)
}

// CheckYtDlp checks if yt-dlp is available; mpv needs it to play streaming-site ids
func CheckYtDlp() error {
	return check("yt-dlp", YtDlpInstallURL)
}

// CheckAll checks all dependencies and returns a slice of errors for missing ones
func CheckAll() []error {
	var errors []error

	if err := CheckMpv(); err != nil {
		errors = append(errors, err)
	}

	if err := CheckYtDlp(); err != nil {
		errors = append(errors, err)
	}

	return errors
}
