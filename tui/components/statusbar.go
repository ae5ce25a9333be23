package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/clip-browser/clip"
	"github.com/user/clip-browser/pkg/timeutil"
	"github.com/user/clip-browser/tui/styles"
)

// StatusBarState holds what the status bar shows.
type StatusBarState struct {
	// Source is the name of the loaded data source
	Source string
	// Visible is the number of rows in the current view
	Visible int
	// Total is the number of rows loaded from the source
	Total int
	// Target is the clip currently playing, nil before the first selection
	Target *clip.PlaybackTarget
	// Connected reports whether an mpv player is attached
	Connected bool
	// Paused is the player's pause state
	Paused bool
}

// StatusBar renders the status bar component.
// Left: play state, source and row counts. Right: the current clip.
func StatusBar(state StatusBarState, width int) string {
	playIcon := "■"
	if state.Connected {
		playIcon = "▶"
		if state.Paused {
			playIcon = "⏸"
		}
	}

	source := state.Source
	if source == "" {
		source = "no source"
	}
	rows := fmt.Sprintf("%d rows", state.Total)
	if state.Visible != state.Total {
		rows = fmt.Sprintf("%d/%d rows", state.Visible, state.Total)
	}
	leftContent := fmt.Sprintf(" %s %s • %s", playIcon, source, rows)

	rightContent := "no clip "
	if t := state.Target; t != nil {
		rightContent = fmt.Sprintf("%s %s–%s ",
			t.MediaID,
			timeutil.FormatTime(float64(t.StartSeconds)),
			timeutil.FormatTime(float64(t.EndSeconds)))
	}

	padding := width - lipgloss.Width(leftContent) - lipgloss.Width(rightContent)
	if padding < 0 {
		padding = 0
	}

	statusBarStyle := lipgloss.NewStyle().
		Background(styles.DarkPurple).
		Foreground(styles.LightLavender).
		Bold(true).
		Width(width)

	return statusBarStyle.Render(leftContent + strings.Repeat(" ", padding) + rightContent)
}
