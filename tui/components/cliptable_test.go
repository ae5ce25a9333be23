package components

import (
	"fmt"
	"strings"
	"testing"

	"github.com/user/clip-browser/clip"
)

func tableRows(n int) []clip.Row {
	rows := make([]clip.Row, n)
	for i := range rows {
		rows[i] = clip.FromRecord(map[string]string{
			"video_id":       fmt.Sprintf("vid%02d", i),
			"start_timecode": "00:10",
		}, clip.DefaultColumns)
	}
	return rows
}

func TestClipTableScrollPersists(t *testing.T) {
	state := &ClipTableState{
		Columns: []string{"video_id", "start_timecode"},
		Rows:    tableRows(20),
		Active:  -1,
	}

	// height 6: one header line and five body rows
	state.Cursor = 10
	ClipTable(state, 60, 6)
	if state.ScrollOffset != 6 {
		t.Fatalf("scroll offset after moving down = %d, want 6", state.ScrollOffset)
	}

	state.MoveUp()
	state.MoveUp()
	out := ClipTable(state, 60, 6)
	if state.ScrollOffset != 6 {
		t.Errorf("scroll offset after moving up inside the page = %d, want 6", state.ScrollOffset)
	}
	lines := strings.Split(out, "\n")
	if !strings.Contains(lines[1], "vid06") {
		t.Errorf("first body line = %q, want vid06", lines[1])
	}

	state.Cursor = 3
	ClipTable(state, 60, 6)
	if state.ScrollOffset != 3 {
		t.Errorf("scroll offset above the page = %d, want 3", state.ScrollOffset)
	}
}

func TestClipTableEmpty(t *testing.T) {
	if out := ClipTable(&ClipTableState{}, 40, 5); !strings.Contains(out, "No source loaded") {
		t.Errorf("no columns: %q", out)
	}
	state := &ClipTableState{Columns: []string{"video_id"}, Active: -1}
	if out := ClipTable(state, 40, 5); !strings.Contains(out, "No rows match") {
		t.Errorf("no rows: %q", out)
	}
}
