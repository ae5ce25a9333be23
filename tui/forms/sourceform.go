package forms

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"
)

// SourceOption is one entry of the source picker.
type SourceOption struct {
	Name string
	Size int64
}

// NewSourceForm creates a select over the available data sources.
// pick starts at current and holds the chosen name on submit.
func NewSourceForm(sources []SourceOption, current string, pick *string) *huh.Form {
	*pick = current

	opts := make([]huh.Option[string], 0, len(sources))
	for _, s := range sources {
		opts = append(opts, huh.NewOption(s.label(), s.Name).Selected(s.Name == current))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Data source").
				Description("Switching keeps the current clip playing").
				Options(opts...).
				Value(pick),
		),
	).WithTheme(Theme())
}

func (s SourceOption) label() string {
	if s.Size < 0 {
		return s.Name
	}
	return fmt.Sprintf("%s (%s)", s.Name, humanize.Bytes(uint64(s.Size)))
}
