package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/user/clip-browser/tui/styles"
)

// FilterInputState holds the state for the filter input component.
type FilterInputState struct {
	Input textinput.Model
	// Active indicates the filter prompt has focus
	Active bool
	// Matches is the number of rows the live filter keeps
	Matches int
	// Total is the number of rows before filtering
	Total int
}

// NewFilterInputState returns an unfocused, empty filter prompt.
func NewFilterInputState() FilterInputState {
	return FilterInputState{Input: newPrompt("/")}
}

// newPrompt builds a single-line input with a static cursor in the browser's colours.
func newPrompt(prompt string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.PromptStyle = lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
	ti.TextStyle = styles.PrimaryText
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// FilterInput renders the filter prompt inside a RenderInfoBox.
// When focused, the box border is pink; otherwise purple.
func FilterInput(state FilterInputState, width int) string {
	content := " " + state.Input.View()

	// Match count right-aligned
	if state.Value() != "" {
		indicator := styles.SecondaryText.Render(fmt.Sprintf("[%d/%d]", state.Matches, state.Total))

		pad := width - 2 - lipgloss.Width(content) - lipgloss.Width(indicator) - 1
		if pad < 1 {
			pad = 1
		}
		content = content + strings.Repeat(" ", pad) + indicator
	}

	return RenderInfoBox("Filter", []string{content}, width, state.Active)
}

// Value returns the typed filter expression.
func (s *FilterInputState) Value() string {
	return s.Input.Value()
}

// Focus opens the prompt for typing.
func (s *FilterInputState) Focus() tea.Cmd {
	s.Active = true
	return s.Input.Focus()
}

// Blur keeps the typed text but stops taking keys.
func (s *FilterInputState) Blur() {
	s.Active = false
	s.Input.Blur()
}

// Update feeds a key to the prompt and reports whether the text changed.
func (s *FilterInputState) Update(msg tea.Msg) (bool, tea.Cmd) {
	before := s.Input.Value()
	var cmd tea.Cmd
	s.Input, cmd = s.Input.Update(msg)
	return s.Input.Value() != before, cmd
}

// Clear resets the filter input and removes focus.
func (s *FilterInputState) Clear() {
	s.Input.Reset()
	s.Blur()
	s.Matches = 0
	s.Total = 0
}
