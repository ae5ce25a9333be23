package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/user/clip-browser/clip"
	"github.com/user/clip-browser/tui/styles"
)

// maxColumnWidth caps how wide a single column may grow from its content.
const maxColumnWidth = 28

// ClipTableState holds the cursor and scroll position of the clip table.
type ClipTableState struct {
	// Columns are the visible column names in display order
	Columns []string
	// Rows is the current view
	Rows []clip.Row
	// Cursor is the highlighted row index into Rows
	Cursor int
	// Column is the highlighted column index into Columns
	Column int
	// ScrollOffset is the first row drawn
	ScrollOffset int
	// Active is the view index of the activated row, -1 when none
	Active int
}

// ClipTable renders the view as a table filling width x height and scrolls
// state so the cursor row is visible. The cursor row is highlighted, the
// cursor cell underlined, and the activated row marked in the gutter.
func ClipTable(state *ClipTableState, width, height int) string {
	headerStyle := lipgloss.NewStyle().
		Foreground(styles.Lavender).
		Bold(true).
		Underline(true)

	if len(state.Columns) == 0 {
		return lipgloss.NewStyle().Foreground(styles.Purple).Italic(true).Render(" No source loaded")
	}

	widths := columnWidths(*state, width-2)
	bodyRows := height - 1
	if bodyRows < 1 {
		bodyRows = 1
	}
	state.scrollTo(bodyRows)

	var header []string
	for i, col := range state.Columns {
		header = append(header, pad(col, widths[i]))
	}
	lines := []string{"  " + headerStyle.Render(strings.Join(header, " "))}

	if len(state.Rows) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(styles.Purple).
			Italic(true)
		lines = append(lines, emptyStyle.Render("  No rows match"))
		return strings.Join(lines, "\n")
	}

	for i := 0; i < bodyRows; i++ {
		idx := state.ScrollOffset + i
		if idx >= len(state.Rows) {
			break
		}
		lines = append(lines, renderClipRow(*state, idx, widths, width))
	}

	return strings.Join(lines, "\n")
}

func renderClipRow(state ClipTableState, idx int, widths []int, fullWidth int) string {
	row := state.Rows[idx]
	selected := idx == state.Cursor

	base := styles.PrimaryText
	if selected {
		base = styles.Highlight
	}
	cursorCell := base.Underline(true).Foreground(styles.Cyan)

	gutter := "  "
	if idx == state.Active {
		gutter = lipgloss.NewStyle().Foreground(styles.Pink).Render("▶ ")
	}

	var cells []string
	for i, col := range state.Columns {
		text := pad(row.Value(col), widths[i])
		if selected && i == state.Column {
			cells = append(cells, cursorCell.Render(text))
		} else {
			cells = append(cells, base.Render(text))
		}
	}
	line := gutter + strings.Join(cells, base.Render(" "))
	if selected {
		// extend the highlight to the full width
		if w := lipgloss.Width(line); w < fullWidth {
			line += base.Render(strings.Repeat(" ", fullWidth-w))
		}
	}
	return line
}

// columnWidths sizes each column to its widest value, capped, and gives the
// last column whatever remains.
func columnWidths(state ClipTableState, total int) []int {
	widths := make([]int, len(state.Columns))
	used := 0
	for i, col := range state.Columns {
		w := lipgloss.Width(col)
		for _, r := range state.Rows {
			if vw := lipgloss.Width(r.Value(col)); vw > w {
				w = vw
			}
		}
		if w > maxColumnWidth {
			w = maxColumnWidth
		}
		widths[i] = w
		used += w + 1
	}
	last := len(widths) - 1
	if rest := total - (used - widths[last]); rest > widths[last] {
		widths[last] = rest - 1
	}
	return widths
}

// scrollTo keeps the cursor within the visible rows.
func (s *ClipTableState) scrollTo(visible int) {
	if s.Cursor < s.ScrollOffset {
		s.ScrollOffset = s.Cursor
	} else if s.Cursor >= s.ScrollOffset+visible {
		s.ScrollOffset = s.Cursor - visible + 1
	}
	maxOffset := len(s.Rows) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.ScrollOffset > maxOffset {
		s.ScrollOffset = maxOffset
	}
	if s.ScrollOffset < 0 {
		s.ScrollOffset = 0
	}
}

func pad(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) > width {
		s = ansi.Truncate(s, width, "…")
	}
	return s + strings.Repeat(" ", width-lipgloss.Width(s))
}

// SetRows replaces the view, keeping the cursor in range.
func (s *ClipTableState) SetRows(rows []clip.Row) {
	s.Rows = rows
	s.Clamp()
}

// Clamp keeps Cursor and Column inside the table.
func (s *ClipTableState) Clamp() {
	if s.Cursor >= len(s.Rows) {
		s.Cursor = len(s.Rows) - 1
	}
	if s.Cursor < 0 {
		s.Cursor = 0
	}
	if s.Column >= len(s.Columns) {
		s.Column = len(s.Columns) - 1
	}
	if s.Column < 0 {
		s.Column = 0
	}
}

// MoveUp moves the cursor up.
func (s *ClipTableState) MoveUp() {
	if s.Cursor > 0 {
		s.Cursor--
	}
}

// MoveDown moves the cursor down.
func (s *ClipTableState) MoveDown() {
	if s.Cursor < len(s.Rows)-1 {
		s.Cursor++
	}
}

// MoveLeft moves the cursor one column left.
func (s *ClipTableState) MoveLeft() {
	if s.Column > 0 {
		s.Column--
	}
}

// MoveRight moves the cursor one column right.
func (s *ClipTableState) MoveRight() {
	if s.Column < len(s.Columns)-1 {
		s.Column++
	}
}

// CursorColumn returns the column name under the cursor, or "" for an empty table.
func (s *ClipTableState) CursorColumn() string {
	if s.Column < 0 || s.Column >= len(s.Columns) {
		return ""
	}
	return s.Columns[s.Column]
}

// CursorRow returns the row under the cursor, or nil when the view is empty.
func (s *ClipTableState) CursorRow() *clip.Row {
	if len(s.Rows) == 0 || s.Cursor < 0 || s.Cursor >= len(s.Rows) {
		return nil
	}
	return &s.Rows[s.Cursor]
}

// Position describes the cursor as "row R/N".
func (s *ClipTableState) Position() string {
	if len(s.Rows) == 0 {
		return "row 0/0"
	}
	return fmt.Sprintf("row %d/%d", s.Cursor+1, len(s.Rows))
}
