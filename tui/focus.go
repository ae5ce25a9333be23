package tui

// inputMode is what currently receives key presses.
type inputMode int

const (
	modeTable inputMode = iota
	modeFilter
	modeCommand
	modeForm
)

func (m inputMode) String() string {
	switch m {
	case modeFilter:
		return "Filter"
	case modeCommand:
		return "Command"
	case modeForm:
		return "Form"
	}
	return "Table"
}

// formKind identifies which huh form is open.
type formKind int

const (
	formNone formKind = iota
	formSource
	formDiscard
	formEdit
)
