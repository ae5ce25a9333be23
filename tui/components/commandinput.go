package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/user/clip-browser/tui/styles"
)

// CommandInputState holds the state for the bottom line: the ':' prompt
// while active, otherwise the result of the last action.
type CommandInputState struct {
	Input textinput.Model
	// Active indicates if command mode is active
	Active bool
	// Result is the result message to display (success or error)
	Result string
	// IsError indicates if the result is an error message
	IsError bool
}

// NewCommandInputState returns an inactive command line.
func NewCommandInputState() CommandInputState {
	return CommandInputState{Input: newPrompt(":")}
}

// CommandInput renders the command input component.
// When active, it shows a ':' prompt with the current input.
// When not active but there's a result, it shows the result message.
func CommandInput(state CommandInputState, width int) string {
	lineStyle := lipgloss.NewStyle().
		Background(styles.DarkPurple).
		Width(width)

	if state.Active {
		return lineStyle.Render(state.Input.View())
	}

	if state.Result != "" {
		resultStyle := styles.Success
		if state.IsError {
			resultStyle = styles.Warning
		}
		return lineStyle.Render(" " + resultStyle.Render(state.Result))
	}

	return lineStyle.Render(" ")
}

// Focus activates command mode with an empty line.
func (s *CommandInputState) Focus() tea.Cmd {
	s.Input.Reset()
	s.Active = true
	return s.Input.Focus()
}

// Update feeds a key to the prompt.
func (s *CommandInputState) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.Input, cmd = s.Input.Update(msg)
	return cmd
}

// Clear clears the input buffer and deactivates command mode.
func (s *CommandInputState) Clear() {
	s.Input.Reset()
	s.Input.Blur()
	s.Active = false
}

// GetCommand returns the current command and clears the input.
func (s *CommandInputState) GetCommand() string {
	cmd := strings.TrimSpace(s.Input.Value())
	s.Clear()
	return cmd
}

// SetResult sets the result message.
func (s *CommandInputState) SetResult(msg string, isError bool) {
	s.Result = msg
	s.IsError = isError
}

// ClearResult clears the result message.
func (s *CommandInputState) ClearResult() {
	s.Result = ""
	s.IsError = false
}
