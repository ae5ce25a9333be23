package clip

import (
	"fmt"
	"sync"
	"time"

	"github.com/user/clip-browser/pkg/timeutil"
)

// NoSelectionText is shown by DescribeSelection when no row is active.
const NoSelectionText = "Click on a table row to select a video clip and start/end timecodes."

// ActiveCell is the selected position in the current view.
// Row indexes the view as displayed (after sort/filter), never the load order.
type ActiveCell struct {
	Row    int    `json:"row"`
	Column string `json:"column,omitempty"`
}

// PlaybackTarget is a resolved clip ready for a player.
// Targets are replaced wholesale and never modified after creation.
type PlaybackTarget struct {
	MediaID      string `json:"media_id"`
	StartSeconds int    `json:"start_seconds"`
	EndSeconds   int    `json:"end_seconds"`
	// CacheToken changes on every resolution so an embed reloads even when
	// the same clip is selected twice.
	CacheToken int64 `json:"cache_token"`
}

// ResolveError reports a row whose timecode could not be converted.
type ResolveError struct {
	Row   int
	Field string
	Err   error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("row %d: %s: %v", e.Row, e.Field, e.Err)
}

func (e *ResolveError) Unwrap() error { return e.Err }

// Resolver turns the active row of a view into a PlaybackTarget.
// It is safe for concurrent use.
type Resolver struct {
	now func() time.Time

	mu        sync.Mutex
	lastToken int64
}

// NewResolver creates a Resolver using now as its token clock.
// If now is nil, time.Now is used.
func NewResolver(now func() time.Time) *Resolver {
	if now == nil {
		now = time.Now
	}
	return &Resolver{now: now}
}

// Resolve computes the next target for the row at cell in view.
// ok is false when nothing should change: no active cell, no view, an index
// outside the view, or a row missing its media id or either timecode.
// A malformed timecode is returned as a *ResolveError and never defaults to zero.
func (r *Resolver) Resolve(cell *ActiveCell, view []Row, prev *PlaybackTarget) (target PlaybackTarget, ok bool, err error) {
	row, found := activeRow(cell, view)
	if !found {
		return PlaybackTarget{}, false, nil
	}

	mediaID := row.MediaID
	startRaw := timeutil.StripBrackets(row.StartRaw)
	endRaw := timeutil.StripBrackets(row.EndRaw)
	if mediaID == "" || startRaw == "" || endRaw == "" {
		return PlaybackTarget{}, false, nil
	}

	start, err := timeutil.ToSeconds(startRaw)
	if err != nil {
		return PlaybackTarget{}, false, &ResolveError{Row: cell.Row, Field: "start", Err: err}
	}
	end, err := timeutil.ToSeconds(endRaw)
	if err != nil {
		return PlaybackTarget{}, false, &ResolveError{Row: cell.Row, Field: "end", Err: err}
	}

	return PlaybackTarget{
		MediaID:      mediaID,
		StartSeconds: start,
		EndSeconds:   end,
		CacheToken:   r.nextToken(prev),
	}, true, nil
}

// nextToken returns the current clock in nanoseconds, bumped past both the
// previous target's token and the last token this resolver issued.
func (r *Resolver) nextToken(prev *PlaybackTarget) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	token := r.now().UnixNano()
	if token <= r.lastToken {
		token = r.lastToken + 1
	}
	if prev != nil && token <= prev.CacheToken {
		token = prev.CacheToken + 1
	}
	r.lastToken = token
	return token
}

// DescribeSelection returns a status line naming the active row's media id and
// raw start timecode, or NoSelectionText when there is no active row.
func DescribeSelection(cell *ActiveCell, view []Row) string {
	row, found := activeRow(cell, view)
	if !found {
		return NoSelectionText
	}
	return fmt.Sprintf("Video ID: %s, Start Timecode: %s", row.MediaID, row.StartRaw)
}

func activeRow(cell *ActiveCell, view []Row) (Row, bool) {
	if cell == nil || view == nil {
		return Row{}, false
	}
	if cell.Row < 0 || cell.Row >= len(view) {
		return Row{}, false
	}
	return view[cell.Row], true
}
