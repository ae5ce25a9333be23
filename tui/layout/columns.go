package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/clip-browser/tui/styles"
)

// Responsive layout constants.
const (
	MinTerminalWidth    = 60 // below this only the table is drawn
	DetailMinWidth      = 30 // minimum width of the detail column
	DetailHideThreshold = 90 // below this width the detail column is hidden
)

// ComputeColumnWidths splits the terminal between the table and the detail column.
// At >=120 width the detail column takes a third; at 90-119 it gets its minimum;
// below 90 the table takes the full width.
func ComputeColumnWidths(termWidth int) (table, detail int, showDetail bool) {
	showDetail = termWidth >= DetailHideThreshold
	if !showDetail {
		return termWidth, 0, false
	}

	// one border character between the columns
	usable := termWidth - 1
	if termWidth >= 120 {
		detail = usable / 3
	} else {
		detail = DetailMinWidth
	}
	return usable - detail, detail, true
}

// JoinColumns joins pre-rendered column strings side by side with purple border separators.
// Each column is normalized to the given height and padded to its width.
func JoinColumns(columns []string, widths []int, height int) string {
	borderStr := lipgloss.NewStyle().
		Foreground(styles.Purple).
		Render("│")

	colLines := make([][]string, len(columns))
	for i, col := range columns {
		colLines[i] = NormalizeLines(strings.Split(col, "\n"), height)
	}

	var rows []string
	for row := 0; row < height; row++ {
		var parts []string
		for i, lines := range colLines {
			parts = append(parts, PadToWidth(lines[row], widths[i]))
		}
		rows = append(rows, strings.Join(parts, borderStr))
	}

	return strings.Join(rows, "\n")
}
