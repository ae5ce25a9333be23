package tui

import (
	"strings"

	"github.com/user/clip-browser/tui/components"
	"github.com/user/clip-browser/tui/layout"
)

// renderBody renders the table and, on wide terminals, the detail column beside it.
func (m *Model) renderBody(height int) string {
	tableW, detailW, showDetail := layout.ComputeColumnWidths(m.width)

	table := components.ClipTable(&m.table, tableW, height)
	if !showDetail {
		return layout.Container{Width: tableW, Height: height}.Render(table)
	}

	return layout.JoinColumns(
		[]string{table, m.renderDetailColumn(detailW, height)},
		[]int{tableW, detailW},
		height,
	)
}

// renderDetailColumn renders the view summary, the row under the cursor and the timeline.
func (m *Model) renderDetailColumn(width, height int) string {
	var lines []string

	mode := components.ModeIndicator(m.mode.String(), m.spec.Describe(), width)
	lines = append(lines, strings.Split(mode, "\n")...)

	card := components.DetailCard(m.table.CursorRow(), m.table.Columns, m.cfg.Columns.Description, width)
	lines = append(lines, strings.Split(card, "\n")...)

	timeline := components.Timeline(m.timePos, m.duration, m.statusBar.Target, width)
	lines = append(lines, strings.Split(timeline, "\n")...)

	return layout.Container{Width: width, Height: height}.Render(strings.Join(lines, "\n"))
}
