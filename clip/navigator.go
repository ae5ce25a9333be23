package clip

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"github.com/user/clip-browser/pkg/timeutil"
)

// Navigator owns the current view, active cell and playback target.
// Every event runs under one lock: read inputs, resolve, publish.
type Navigator struct {
	resolver *Resolver
	logger   zerolog.Logger

	mu     sync.Mutex
	source string
	rows   []Row
	view   []Row
	cell   *ActiveCell
	target *PlaybackTarget
}

// NewNavigator creates a Navigator resolving with r.
func NewNavigator(r *Resolver, logger zerolog.Logger) *Navigator {
	if r == nil {
		r = NewResolver(nil)
	}
	return &Navigator{resolver: r, logger: logger}
}

// LoadSource replaces the loaded rows and the view wholesale, as a fresh load.
// The active cell is cleared; the current target stays until the next selection.
func (n *Navigator) LoadSource(name string, rows []Row) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.source = name
	n.rows = rows
	n.view = rows
	n.cell = nil
}

// UpdateView replaces the view after a sort, filter or in-memory edit.
// With an active cell the row now at that index is resolved again.
func (n *Navigator) UpdateView(view []Row) (PlaybackTarget, bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.view = view
	if n.cell == nil {
		return PlaybackTarget{}, false, nil
	}
	return n.resolveLocked()
}

// ReplaceRows swaps the loaded rows without touching the view or selection.
// The caller derives and publishes the new view through UpdateView.
func (n *Navigator) ReplaceRows(rows []Row) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rows = rows
}

// Activate selects a cell in the current view and resolves it.
// ok reports whether a new target was published.
func (n *Navigator) Activate(cell ActiveCell) (PlaybackTarget, bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.cell = &cell
	return n.resolveLocked()
}

// ClearSelection drops the active cell without touching the target.
func (n *Navigator) ClearSelection() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cell = nil
}

func (n *Navigator) resolveLocked() (PlaybackTarget, bool, error) {
	target, ok, err := n.resolver.Resolve(n.cell, n.view, n.target)
	if err != nil {
		ev := n.logger.Warn().Err(err).Str("source", n.source)
		var re *ResolveError
		if errors.As(err, &re) {
			ev = ev.Int("row", re.Row).Str("field", re.Field)
		}
		var fe *timeutil.FormatError
		if errors.As(err, &fe) {
			ev = ev.Str("input", fe.Input)
		}
		ev.Msg("malformed timecode, keeping current clip")
		return PlaybackTarget{}, false, err
	}
	if !ok {
		return PlaybackTarget{}, false, nil
	}

	n.target = &target
	n.logger.Debug().
		Str("media_id", target.MediaID).
		Int("start", target.StartSeconds).
		Int("end", target.EndSeconds).
		Msg("resolved clip")
	return target, true, nil
}

// Target returns the last published target.
func (n *Navigator) Target() (PlaybackTarget, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.target == nil {
		return PlaybackTarget{}, false
	}
	return *n.target, true
}

// ActiveCell returns the active cell, if any.
func (n *Navigator) ActiveCell() (ActiveCell, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.cell == nil {
		return ActiveCell{}, false
	}
	return *n.cell, true
}

// Rows returns the rows of the loaded source in load order.
func (n *Navigator) Rows() []Row {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.rows
}

// View returns the current view.
func (n *Navigator) View() []Row {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.view
}

// Source returns the name of the loaded data source.
func (n *Navigator) Source() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.source
}

// Describe returns the status line for the active row.
func (n *Navigator) Describe() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return DescribeSelection(n.cell, n.view)
}
