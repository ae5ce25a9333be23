package view

import (
	"testing"

	"github.com/user/clip-browser/clip"
)

func mkRow(id, start, desc string) clip.Row {
	return clip.FromRecord(map[string]string{
		"video_id":       id,
		"start_timecode": start,
		"end_timecode":   start,
		"description":    desc,
	}, clip.DefaultColumns)
}

func ids(rows []clip.Row) []string {
	var out []string
	for _, r := range rows {
		out = append(out, r.MediaID)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

var columns = []string{"video_id", "start_timecode", "end_timecode", "description"}

func TestApply_SortByTimecodeUsesSeconds(t *testing.T) {
	rows := []clip.Row{
		mkRow("A", "10:00", "x"),
		mkRow("B", "[01:00:00]", "x"),
		mkRow("C", "9:59", "x"),
	}

	got := ids(Apply(rows, Spec{Sort: []SortKey{{Column: "start_timecode"}}}))
	if want := []string{"C", "A", "B"}; !equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	got = ids(Apply(rows, Spec{Sort: []SortKey{{Column: "start_timecode", Desc: true}}}))
	if want := []string{"B", "A", "C"}; !equal(got, want) {
		t.Errorf("desc: got %v, want %v", got, want)
	}
}

func TestApply_MultiKeySortIsStable(t *testing.T) {
	rows := []clip.Row{
		mkRow("v2", "00:30", "b"),
		mkRow("v1", "00:20", "a"),
		mkRow("v2", "00:10", "c"),
		mkRow("v1", "00:40", "d"),
	}

	spec := Spec{Sort: []SortKey{{Column: "video_id"}, {Column: "start_timecode", Desc: true}}}
	var got []string
	for _, r := range Apply(rows, spec) {
		got = append(got, r.Description)
	}
	if want := []string{"d", "a", "b", "c"}; !equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestApply_Filter(t *testing.T) {
	rows := []clip.Row{
		mkRow("A", "00:01", "Tackle in the ruck"),
		mkRow("B", "00:02", "Line-out"),
		mkRow("C", "00:03", "Missed TACKLE"),
	}

	got := ids(Apply(rows, Spec{Filters: []Filter{{Query: "tackle"}}, Columns: columns}))
	if want := []string{"A", "C"}; !equal(got, want) {
		t.Errorf("any-column filter: got %v, want %v", got, want)
	}

	got = ids(Apply(rows, Spec{Filters: []Filter{{Column: "video_id", Query: "b"}}}))
	if want := []string{"B"}; !equal(got, want) {
		t.Errorf("column filter: got %v, want %v", got, want)
	}

	got = ids(Apply(rows, Spec{Filters: []Filter{{Query: "  "}}, Columns: columns}))
	if len(got) != 3 {
		t.Errorf("blank filter should keep every row, got %v", got)
	}
}

func TestApply_FilterThenSortGivesDerivedView(t *testing.T) {
	a := mkRow("A", "00:10", "keep")
	b := mkRow("B", "00:05", "drop")
	c := mkRow("C", "00:01", "keep")
	rows := []clip.Row{a, b, c}

	spec := Spec{
		Filters: []Filter{{Column: "description", Query: "keep"}},
		Sort:    []SortKey{{Column: "start_timecode"}},
	}
	got := ids(Apply(rows, spec))
	if want := []string{"C", "A"}; !equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if ids(rows)[0] != "A" {
		t.Error("Apply modified its input")
	}
}

func TestCompare(t *testing.T) {
	testCases := []struct {
		kind Kind
		a, b string
		want int
	}{
		{KindNumber, "2", "10", -1},
		{KindNumber, "10", "2", 1},
		{KindText, "2", "10", 1},
		{KindTimecode, "1:00", "0:59", 1},
		{KindText, "1:00", "0:59", 1},
		{KindText, "10:00", "9:59", -1},
		{KindText, "apple", "Banana", -1},
		{KindNumber, "", "x", -1},
		{KindTimecode, "x", "", 1},
		{KindText, "same", "same", 0},
	}

	for _, tc := range testCases {
		if got := Compare(tc.kind, tc.a, tc.b); got != tc.want {
			t.Errorf("Compare(%v, %q, %q): got %d, want %d", tc.kind, tc.a, tc.b, got, tc.want)
		}
	}
}

func TestColumnKind(t *testing.T) {
	testCases := []struct {
		name   string
		values []string
		want   Kind
	}{
		{"timecodes", []string{"00:10", "[01:00:00]", ""}, KindTimecode},
		{"numbers", []string{"2", "10.5", ""}, KindNumber},
		{"malformed timecode", []string{"00:10", "ab:cd"}, KindText},
		{"mixed", []string{"00:10", "7"}, KindText},
		{"empty", []string{"", ""}, KindText},
	}

	for _, tc := range testCases {
		var rows []clip.Row
		var idx []int
		for i, v := range tc.values {
			rows = append(rows, mkRow("x", v, ""))
			idx = append(idx, i)
		}
		if got := ColumnKind(rows, idx, "start_timecode"); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestApply_MixedColumnOrderIsInputIndependent(t *testing.T) {
	a := mkRow("A", "10:00", "x")
	b := mkRow("B", "9:59", "x")
	c := mkRow("C", "bad", "x")
	spec := Spec{Sort: []SortKey{{Column: "start_timecode"}}}

	want := []string{"A", "B", "C"}
	for _, rows := range [][]clip.Row{{a, b, c}, {c, b, a}, {b, c, a}, {c, a, b}} {
		if got := ids(Apply(rows, spec)); !equal(got, want) {
			t.Errorf("input %v: got %v, want %v", ids(rows), got, want)
		}
	}
}

func TestParseFilter(t *testing.T) {
	if f := ParseFilter("video_id=abc"); f.Column != "video_id" || f.Query != "abc" {
		t.Errorf("got %+v", f)
	}
	if f := ParseFilter("free text"); f.Column != "" || f.Query != "free text" {
		t.Errorf("got %+v", f)
	}
	if f := ParseFilter("a b=c"); f.Column != "" {
		t.Errorf("column with spaces should be a bare query, got %+v", f)
	}
}

func TestSpecToggleAndAddKey(t *testing.T) {
	var s Spec
	s.Toggle("start_timecode")
	s.Toggle("start_timecode")
	if len(s.Sort) != 1 || !s.Sort[0].Desc {
		t.Errorf("toggle twice: got %+v", s.Sort)
	}
	s.AddKey("video_id")
	if len(s.Sort) != 2 || s.Sort[1].Column != "video_id" {
		t.Errorf("add key: got %+v", s.Sort)
	}
	s.Toggle("description")
	if len(s.Sort) != 1 || s.Sort[0].Column != "description" {
		t.Errorf("toggle new column: got %+v", s.Sort)
	}
	if k := ParseSort("-video_id"); k.Column != "video_id" || !k.Desc {
		t.Errorf("ParseSort: got %+v", k)
	}
	s.Filters = []Filter{{Query: "x"}}
	if s.Describe() != "sort: description↑ | filter: x" {
		t.Errorf("Describe: got %q", s.Describe())
	}
	s.Reset()
	if s.Describe() != "" {
		t.Errorf("after reset: got %q", s.Describe())
	}
}

func TestIndices_MapBackToLoadOrder(t *testing.T) {
	rows := []clip.Row{
		mkRow("A", "00:30", "keep"),
		mkRow("B", "00:20", "drop"),
		mkRow("C", "00:10", "keep"),
	}
	spec := Spec{
		Filters: []Filter{{Column: "description", Query: "keep"}},
		Sort:    []SortKey{{Column: "start_timecode"}},
	}

	got := Indices(rows, spec)
	if len(got) != 2 || got[0] != 2 || got[1] != 0 {
		t.Errorf("got %v, want [2 0]", got)
	}
}

func TestSpecReverse(t *testing.T) {
	var s Spec
	s.Reverse("video_id")
	if len(s.Sort) != 1 || s.Sort[0].Column != "video_id" || !s.Sort[0].Desc {
		t.Fatalf("empty spec: got %+v", s.Sort)
	}

	s.Sort = []SortKey{{Column: "a"}, {Column: "b", Desc: true}}
	s.Reverse("ignored")
	if s.Sort[0].Desc != true || s.Sort[1].Desc != false {
		t.Errorf("got %+v", s.Sort)
	}
}
