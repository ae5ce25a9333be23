// Package styles holds the clip browser's palette and the shared Lipgloss styles.
package styles

import "github.com/charmbracelet/lipgloss"

// Ciapre palette
const (
	// DeepPurple is the main background
	DeepPurple = lipgloss.Color("#191C27")
	// DarkPurple backs the status and command lines
	DarkPurple = lipgloss.Color("#181818")
	// Purple is for borders and dim text
	Purple = lipgloss.Color("#5C4F4B")
	// BrightPurple marks the cursor row and focused panels
	BrightPurple = lipgloss.Color("#724D7C")
	// Lavender is secondary text
	Lavender = lipgloss.Color("#AEA47A")
	// LightLavender is primary text
	LightLavender = lipgloss.Color("#F3DBB2")
	// Pink is for box titles and the active-row marker
	Pink = lipgloss.Color("#D33061")
	// Cyan is for prompts and interactive elements
	Cyan = lipgloss.Color("#3097C6")
	// Amber is for sub-headers
	Amber = lipgloss.Color("#CC8B3F")
	// Red is for warnings and errors
	Red = lipgloss.Color("#AC3835")
	// Green is for success messages
	Green = lipgloss.Color("#A6A75D")
)

// Panel frames overlays such as the help screen.
var Panel = lipgloss.NewStyle().
	Background(DarkPurple).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(BrightPurple).
	Padding(1, 2)

// Highlight is the cursor row of the clip table.
var Highlight = lipgloss.NewStyle().
	Background(BrightPurple).
	Foreground(LightLavender).
	Bold(true)

// PrimaryText is for values.
var PrimaryText = lipgloss.NewStyle().
	Foreground(LightLavender)

// SecondaryText is for labels and summaries.
var SecondaryText = lipgloss.NewStyle().
	Foreground(Lavender)

// SubHeader titles a group inside a panel.
var SubHeader = lipgloss.NewStyle().
	Foreground(Amber).
	Bold(true)

// Warning is for errors and rejected input.
var Warning = lipgloss.NewStyle().
	Foreground(Red).
	Bold(true)

// Success is for completed actions.
var Success = lipgloss.NewStyle().
	Foreground(Green).
	Bold(true)
