package forms

import (
	"github.com/charmbracelet/huh"
	"github.com/user/clip-browser/pkg/timeutil"
)

// TimecodeFormResult holds the start and end timecodes of an edited row.
type TimecodeFormResult struct {
	Start string
	End   string
}

// NewTimecodeForm creates a form editing one row's start and end timecodes.
// Fields are prefilled from result and validated with the same parser used
// for playback, so an accepted edit always resolves.
func NewTimecodeForm(title string, result *TimecodeFormResult) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(title),

			huh.NewInput().
				Title("Start").
				Description("mm:ss or hh:mm:ss, brackets allowed").
				Value(&result.Start).
				Validate(validateTimecode),

			huh.NewInput().
				Title("End").
				Description("mm:ss or hh:mm:ss, brackets allowed").
				Value(&result.End).
				Validate(validateTimecode),
		),
	).WithTheme(Theme())
}

func validateTimecode(s string) error {
	_, err := timeutil.ToSeconds(s)
	return err
}
