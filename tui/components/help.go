// Package components provides reusable TUI components.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/clip-browser/tui/styles"
)

// commandHelp lists what the ':' prompt accepts.
var commandHelp = [][2]string{
	{"source NAME", "Switch data source"},
	{"sort COL..", "Sort by columns (-COL descending)"},
	{"filter EXPR", "Add a filter (COL=TEXT or TEXT)"},
	{"goto N", "Activate row N of the view"},
	{"clear", "Clear filter and sort"},
	{"quit", "Quit"},
}

// HelpOverlay renders the help overlay showing all keybindings, grouped by function.
func HelpOverlay(width, height int) string {
	// Title style
	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true).
		Padding(0, 1)

	// Group header style
	groupHeaderStyle := styles.SubHeader.MarginTop(1)

	// Key style
	keyStyle := lipgloss.NewStyle().
		Foreground(styles.Lavender).
		Bold(true).
		Width(14)

	// Description style
	descStyle := styles.PrimaryText

	// Build help content
	var lines []string

	// Title
	lines = append(lines, titleStyle.Render("Keybindings"))
	lines = append(lines, "")

	for _, group := range GetControlGroups() {
		lines = append(lines, groupHeaderStyle.Render(group.Name))
		for _, ctrl := range group.Controls {
			lines = append(lines, "  "+keyStyle.Render(ctrl.Shortcut)+descStyle.Render(ctrl.Name))
		}
	}
	lines = append(lines, groupHeaderStyle.Render("Commands"))
	for _, c := range commandHelp {
		lines = append(lines, "  "+keyStyle.Render(c[0])+descStyle.Render(c[1]))
	}

	// Footer
	lines = append(lines, "")
	footerStyle := lipgloss.NewStyle().
		Foreground(styles.Lavender).
		Italic(true)
	lines = append(lines, footerStyle.Render("Press any key to close"))

	content := strings.Join(lines, "\n")

	// Calculate content dimensions
	contentLines := strings.Split(content, "\n")
	contentHeight := len(contentLines)
	contentWidth := 0
	for _, line := range contentLines {
		w := lipgloss.Width(line)
		if w > contentWidth {
			contentWidth = w
		}
	}

	// Add padding
	paddedWidth := contentWidth + 4
	paddedHeight := contentHeight + 2

	// Center the overlay
	marginLeft := (width - paddedWidth) / 2
	if marginLeft < 0 {
		marginLeft = 0
	}
	marginTop := (height - paddedHeight) / 2
	if marginTop < 0 {
		marginTop = 0
	}

	// Overlay panel style with border
	panel := styles.Panel.Render(content)

	// Create positioning by adding margin
	positionedStyle := lipgloss.NewStyle().
		MarginLeft(marginLeft).
		MarginTop(marginTop)

	return positionedStyle.Render(panel)
}
