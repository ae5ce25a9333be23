package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/clip-browser/tui/styles"
)

// ModeIndicator renders the input mode next to the current sort and filter summary.
// mode is one of "Table", "Filter", "Command", "Form".
func ModeIndicator(mode, viewSummary string, width int) string {
	textStyle := styles.PrimaryText
	dimStyle := styles.SecondaryText

	if viewSummary == "" {
		viewSummary = "load order"
	}
	left := " " + dimStyle.Render(viewSummary)
	right := textStyle.Render(mode) + " "

	pad := width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if pad < 1 {
		pad = 1
	}

	return RenderInfoBox("View", []string{left + strings.Repeat(" ", pad) + right}, width, false)
}
