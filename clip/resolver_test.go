package clip

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/user/clip-browser/pkg/timeutil"
)

func fixedClock(ns int64) func() time.Time {
	return func() time.Time { return time.Unix(0, ns) }
}

func row(id, start, end string) Row {
	return FromRecord(map[string]string{
		"video_id":       id,
		"start_timecode": start,
		"end_timecode":   end,
		"description":    "clip " + id,
		"document_name":  "doc-" + id,
	}, DefaultColumns)
}

func TestResolve_AbsentInputs(t *testing.T) {
	r := NewResolver(nil)
	view := []Row{row("A", "00:10", "00:20")}

	if _, ok, err := r.Resolve(nil, view, nil); ok || err != nil {
		t.Errorf("nil cell: got ok=%v err=%v, want no change", ok, err)
	}
	if _, ok, err := r.Resolve(&ActiveCell{Row: 0}, nil, nil); ok || err != nil {
		t.Errorf("nil view: got ok=%v err=%v, want no change", ok, err)
	}
}

func TestResolve_OutOfBounds(t *testing.T) {
	r := NewResolver(nil)
	view := []Row{row("A", "00:10", "00:20")}

	for _, idx := range []int{-1, 1, 42} {
		if _, ok, err := r.Resolve(&ActiveCell{Row: idx}, view, nil); ok || err != nil {
			t.Errorf("row %d: got ok=%v err=%v, want no change", idx, ok, err)
		}
	}
	if _, ok, err := r.Resolve(&ActiveCell{Row: 0}, []Row{}, nil); ok || err != nil {
		t.Errorf("empty view: got ok=%v err=%v, want no change", ok, err)
	}
}

func TestResolve_MissingFields(t *testing.T) {
	r := NewResolver(nil)
	testCases := []Row{
		row("", "00:10", "00:20"),
		row("A", "", "00:20"),
		row("A", "00:10", ""),
		row("A", "[]", "00:20"),
		{MediaID: "A"},
	}

	for i, rw := range testCases {
		if _, ok, err := r.Resolve(&ActiveCell{Row: 0}, []Row{rw}, nil); ok || err != nil {
			t.Errorf("case %d: got ok=%v err=%v, want no change", i, ok, err)
		}
	}
}

func TestResolve_Target(t *testing.T) {
	r := NewResolver(fixedClock(1000))
	view := []Row{row("XC7BeLRm7ak", "[01:30]", "[01:02:03]")}

	target, ok, err := r.Resolve(&ActiveCell{Row: 0}, view, nil)
	if err != nil || !ok {
		t.Fatalf("got ok=%v err=%v", ok, err)
	}
	want := PlaybackTarget{MediaID: "XC7BeLRm7ak", StartSeconds: 90, EndSeconds: 3723, CacheToken: 1000}
	if target != want {
		t.Errorf("got %+v, want %+v", target, want)
	}
}

func TestResolve_EndBeforeStartPassesThrough(t *testing.T) {
	r := NewResolver(nil)
	view := []Row{row("A", "02:00", "01:00")}

	target, ok, err := r.Resolve(&ActiveCell{Row: 0}, view, nil)
	if err != nil || !ok {
		t.Fatalf("got ok=%v err=%v", ok, err)
	}
	if target.StartSeconds != 120 || target.EndSeconds != 60 {
		t.Errorf("bounds were altered: got %d-%d, want 120-60", target.StartSeconds, target.EndSeconds)
	}
}

func TestResolve_MalformedTimecodeIsAnError(t *testing.T) {
	r := NewResolver(nil)
	testCases := []struct {
		row   Row
		field string
	}{
		{row("A", "ab:cd", "00:20"), "start"},
		{row("A", "00:10", "1:2:3:4"), "end"},
		{row("A", "200000000000000000:00", "00:10"), "start"},
	}

	for _, tc := range testCases {
		target, ok, err := r.Resolve(&ActiveCell{Row: 0}, []Row{tc.row}, nil)
		if err == nil {
			t.Fatalf("%s: expected error, got target %+v", tc.field, target)
		}
		if ok {
			t.Errorf("%s: ok must be false on error", tc.field)
		}
		var re *ResolveError
		if !errors.As(err, &re) || re.Field != tc.field {
			t.Errorf("%s: expected *ResolveError for field %s, got %v", tc.field, tc.field, err)
		}
		if !errors.Is(err, timeutil.ErrInvalidTimecode) {
			t.Errorf("%s: error does not wrap ErrInvalidTimecode", tc.field)
		}
	}
}

func TestResolve_SameRowTwiceChangesToken(t *testing.T) {
	// A frozen clock still has to yield distinct tokens.
	r := NewResolver(fixedClock(5000))
	view := []Row{row("A", "00:10", "00:20")}
	cell := &ActiveCell{Row: 0}

	first, ok, err := r.Resolve(cell, view, nil)
	if err != nil || !ok {
		t.Fatalf("first: ok=%v err=%v", ok, err)
	}
	second, ok, err := r.Resolve(cell, view, &first)
	if err != nil || !ok {
		t.Fatalf("second: ok=%v err=%v", ok, err)
	}

	if first.MediaID != second.MediaID || first.StartSeconds != second.StartSeconds || first.EndSeconds != second.EndSeconds {
		t.Errorf("clip changed between selections: %+v vs %+v", first, second)
	}
	if second.CacheToken <= first.CacheToken {
		t.Errorf("token not strictly increasing: %d then %d", first.CacheToken, second.CacheToken)
	}
}

func TestResolve_TokenExceedsPrevious(t *testing.T) {
	r := NewResolver(fixedClock(10))
	prev := &PlaybackTarget{MediaID: "Z", CacheToken: 99}

	target, _, err := r.Resolve(&ActiveCell{Row: 0}, []Row{row("A", "00:01", "00:02")}, prev)
	if err != nil {
		t.Fatal(err)
	}
	if target.CacheToken != 100 {
		t.Errorf("got token %d, want 100", target.CacheToken)
	}
}

func TestResolve_UsesViewNotLoadOrder(t *testing.T) {
	a := row("A", "00:01", "00:02")
	b := row("B", "00:03", "00:04")
	c := row("C", "00:05", "00:06")
	loaded := []Row{a, b, c}
	view := []Row{c, a}

	r := NewResolver(nil)
	target, ok, err := r.Resolve(&ActiveCell{Row: 0}, view, nil)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if target.MediaID != "C" {
		t.Errorf("resolved %q, want C (loaded order has %q at 0)", target.MediaID, loaded[0].MediaID)
	}
}

func TestDescribeSelection(t *testing.T) {
	view := []Row{row("A", "[00:10]", "00:20")}

	if got := DescribeSelection(nil, view); got != NoSelectionText {
		t.Errorf("no cell: got %q", got)
	}
	if got := DescribeSelection(&ActiveCell{Row: 0}, nil); got != NoSelectionText {
		t.Errorf("no view: got %q", got)
	}
	if got := DescribeSelection(&ActiveCell{Row: 3}, view); got != NoSelectionText {
		t.Errorf("out of bounds: got %q", got)
	}

	got := DescribeSelection(&ActiveCell{Row: 0}, view)
	if !strings.Contains(got, "A") || !strings.Contains(got, "[00:10]") {
		t.Errorf("got %q, want media id and raw start timecode", got)
	}
	if got != "Video ID: A, Start Timecode: [00:10]" {
		t.Errorf("got %q", got)
	}
}

func TestFromRecord_KeepsHiddenColumns(t *testing.T) {
	r := row("A", "00:01", "00:02")
	if r.Value("document_name") != "doc-A" {
		t.Errorf("document_name dropped from row: %v", r.Fields)
	}
	if r.Description != "clip A" {
		t.Errorf("Description: got %q", r.Description)
	}
}

func TestWithTimecodes_DoesNotMutate(t *testing.T) {
	orig := row("A", "00:01", "00:02")
	edited := orig.WithTimecodes(DefaultColumns, "00:05", "00:09")

	if orig.StartRaw != "00:01" || orig.Value("start_timecode") != "00:01" {
		t.Errorf("original row mutated: %+v", orig)
	}
	if edited.StartRaw != "00:05" || edited.Value("end_timecode") != "00:09" {
		t.Errorf("edit not applied: %+v", edited)
	}
}
