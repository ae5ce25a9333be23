// Package components provides reusable TUI components.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/user/clip-browser/tui/styles"
)

// Control represents a single control with its display info.
type Control struct {
	Name     string
	Shortcut string
}

// ControlGroup represents a group of related controls.
type ControlGroup struct {
	Name     string
	Controls []Control
}

// GetControlGroups returns the control groups shown in the hint bar and the help overlay.
func GetControlGroups() []ControlGroup {
	return []ControlGroup{
		{
			Name: "Table",
			Controls: []Control{
				{Name: "Up", Shortcut: "k / ↑"},
				{Name: "Down", Shortcut: "j / ↓"},
				{Name: "Column", Shortcut: "← / →"},
				{Name: "Play", Shortcut: "Enter"},
			},
		},
		{
			Name: "View",
			Controls: []Control{
				{Name: "Filter", Shortcut: "/"},
				{Name: "Sort", Shortcut: "s"},
				{Name: "Then by", Shortcut: "S"},
				{Name: "Reverse", Shortcut: "r"},
				{Name: "Clear", Shortcut: "c"},
			},
		},
		{
			Name: "Clip",
			Controls: []Control{
				{Name: "Pause", Shortcut: "Space"},
				{Name: "Edit times", Shortcut: "e"},
				{Name: "Source", Shortcut: "d"},
			},
		},
		{
			Name: "App",
			Controls: []Control{
				{Name: "Command", Shortcut: ":"},
				{Name: "Help", Shortcut: "?"},
				{Name: "Quit", Shortcut: "q"},
			},
		},
	}
}

// RenderInfoBox renders a bordered box with a tab-style title.
// The border is pink when focused, purple otherwise. Lines wider than the box are truncated.
func RenderInfoBox(title string, contentLines []string, width int, focused bool) string {
	if width < 4 {
		return ""
	}

	innerWidth := width - 2

	headerStyle := lipgloss.NewStyle().Foreground(styles.Pink).Bold(true)
	borderColor := styles.Purple
	if focused {
		borderColor = styles.Pink
	}
	borderStyle := lipgloss.NewStyle().Foreground(borderColor)

	// ╭─ Title ─────╮
	headerText := headerStyle.Render(" " + title + " ")
	fillWidth := innerWidth - 1 - lipgloss.Width(headerText)
	if fillWidth < 0 {
		fillWidth = 0
	}
	lines := []string{
		borderStyle.Render("╭─") + headerText + borderStyle.Render(strings.Repeat("─", fillWidth)+"╮"),
	}

	for _, line := range contentLines {
		if lipgloss.Width(line) > innerWidth {
			line = ansi.Truncate(line, innerWidth, "…")
		}
		pad := innerWidth - lipgloss.Width(line)
		if pad < 0 {
			pad = 0
		}
		lines = append(lines, borderStyle.Render("│")+line+strings.Repeat(" ", pad)+borderStyle.Render("│"))
	}

	lines = append(lines, borderStyle.Render("╰"+strings.Repeat("─", innerWidth)+"╯"))
	return strings.Join(lines, "\n")
}

// ControlsDisplay renders all controls as a single centered hint bar.
func ControlsDisplay(width int) string {
	shortcutStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	nameStyle := lipgloss.NewStyle().
		Foreground(styles.LightLavender)

	var groupStrings []string
	for _, group := range GetControlGroups() {
		var controlStrs []string
		for _, ctrl := range group.Controls {
			controlStrs = append(controlStrs, nameStyle.Render(ctrl.Name)+" "+shortcutStyle.Render("["+ctrl.Shortcut+"]"))
		}
		groupStrings = append(groupStrings, strings.Join(controlStrs, "  "))
	}
	allControls := strings.Join(groupStrings, "   ")

	if lipgloss.Width(allControls) > width {
		allControls = ansi.Truncate(allControls, width, "")
	}
	padding := (width - lipgloss.Width(allControls)) / 2
	if padding < 0 {
		padding = 0
	}

	containerStyle := lipgloss.NewStyle().
		Background(styles.DeepPurple).
		Width(width)

	return containerStyle.Render(strings.Repeat(" ", padding) + allControls)
}
