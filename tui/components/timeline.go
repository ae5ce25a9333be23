package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/clip-browser/clip"
	"github.com/user/clip-browser/pkg/timeutil"
	"github.com/user/clip-browser/tui/styles"
)

// Timeline renders the playback position over the media duration with the
// current clip's range highlighted. Without a known duration only the clip
// range is shown.
func Timeline(timePos, duration float64, target *clip.PlaybackTarget, width int) string {
	if width < 20 {
		return ""
	}

	innerWidth := width - 4

	rangeStyle := lipgloss.NewStyle().Foreground(styles.Cyan)
	unfilledStyle := lipgloss.NewStyle().Foreground(styles.Purple)
	timeStyle := lipgloss.NewStyle().Foreground(styles.LightLavender).Bold(true)
	posStyle := lipgloss.NewStyle().Foreground(styles.Pink).Bold(true)

	timeDisplay := fmt.Sprintf(" %s / %s", timeutil.FormatTime(timePos), timeutil.FormatTime(duration))
	barWidth := innerWidth - lipgloss.Width(timeDisplay) - 2
	if barWidth < 10 {
		barWidth = 10
	}

	scale := func(sec float64) int {
		if duration <= 0 {
			return -1
		}
		p := int(math.Round(float64(barWidth-1) * sec / duration))
		if p < 0 {
			p = 0
		}
		if p > barWidth-1 {
			p = barWidth - 1
		}
		return p
	}

	pos := scale(timePos)
	from, to := -1, -1
	if target != nil {
		from, to = scale(float64(target.StartSeconds)), scale(float64(target.EndSeconds))
	}

	var bar strings.Builder
	for i := 0; i < barWidth; i++ {
		switch {
		case i == pos:
			bar.WriteString(posStyle.Render("●"))
		case from >= 0 && i >= from && i <= to:
			bar.WriteString(rangeStyle.Render("━"))
		default:
			bar.WriteString(unfilledStyle.Render("─"))
		}
	}

	lines := []string{" " + bar.String() + " " + timeStyle.Render(timeDisplay)}
	if target != nil {
		lines = append(lines, " "+rangeStyle.Render(fmt.Sprintf("clip %s → %s",
			timeutil.FormatTime(float64(target.StartSeconds)),
			timeutil.FormatTime(float64(target.EndSeconds)))))
	}

	return RenderInfoBox("Timeline", lines, width, false)
}
