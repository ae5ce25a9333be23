package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/clip-browser/clip"
	"github.com/user/clip-browser/tui/styles"
)

// DetailCard renders the row under the cursor: every visible column as a
// label/value pair, then the wrapped description.
func DetailCard(row *clip.Row, columns []string, descColumn string, width int) string {
	if row == nil {
		dim := lipgloss.NewStyle().Foreground(styles.Lavender).Italic(true)
		return RenderInfoBox("Clip", []string{dim.Render(" Nothing selected")}, width, false)
	}

	labelStyle := styles.SecondaryText
	valueStyle := styles.PrimaryText

	labelW := 0
	for _, c := range columns {
		if c != descColumn && lipgloss.Width(c) > labelW {
			labelW = lipgloss.Width(c)
		}
	}

	var lines []string
	for _, c := range columns {
		if c == descColumn {
			continue
		}
		lines = append(lines, " "+labelStyle.Render(pad(c, labelW))+"  "+valueStyle.Render(row.Value(c)))
	}

	if desc := strings.TrimSpace(row.Description); desc != "" {
		innerW := width - 4
		if innerW < 10 {
			innerW = 10
		}
		lines = append(lines, "")
		wrapped := lipgloss.NewStyle().Width(innerW).Foreground(styles.LightLavender).Render(desc)
		for _, l := range strings.Split(wrapped, "\n") {
			lines = append(lines, " "+l)
		}
	}

	return RenderInfoBox("Clip", lines, width, false)
}
