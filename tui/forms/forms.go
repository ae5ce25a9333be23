// Package forms provides huh-based form components for the TUI.
package forms

import (
	"strconv"

	"github.com/charmbracelet/huh"
)

// NewConfirmDiscardForm asks whether to drop in-memory timecode edits.
// The result pointer is bound to the confirm field value.
func NewConfirmDiscardForm(edits int, discard *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Discard edits?").
				Description(editsDescription(edits)).
				Affirmative("Yes, discard").
				Negative("No, go back").
				Value(discard),
		),
	).WithTheme(Theme())
}

func editsDescription(edits int) string {
	if edits == 1 {
		return "1 row has edited timecodes that were never saved."
	}
	return strconv.Itoa(edits) + " rows have edited timecodes that were never saved."
}
