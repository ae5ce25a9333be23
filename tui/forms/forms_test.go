package forms

import "testing"

func TestValidateTimecode(t *testing.T) {
	testCases := []struct {
		in      string
		wantErr bool
	}{
		{"01:30", false},
		{"[00:01:30]", false},
		{"", true},
		{"1:2:3:4", true},
		{"ab:cd", true},
	}
	for _, tc := range testCases {
		if err := validateTimecode(tc.in); (err != nil) != tc.wantErr {
			t.Errorf("validateTimecode(%q): err=%v, wantErr=%v", tc.in, err, tc.wantErr)
		}
	}
}

func TestSourceOptionLabel(t *testing.T) {
	testCases := []struct {
		size int64
		want string
	}{
		{512, "clips.db (512 B)"},
		{2048, "clips.db (2.0 kB)"},
		{3 << 20, "clips.db (3.1 MB)"},
		{-1, "clips.db"},
	}
	for _, tc := range testCases {
		if got := (SourceOption{Name: "clips.db", Size: tc.size}).label(); got != tc.want {
			t.Errorf("label(%d) = %q, want %q", tc.size, got, tc.want)
		}
	}
}

func TestNewSourceFormPreselectsCurrent(t *testing.T) {
	var pick string
	form := NewSourceForm([]SourceOption{{Name: "a.db"}, {Name: "b.db"}}, "b.db", &pick)
	if form == nil {
		t.Fatal("nil form")
	}
	if pick != "b.db" {
		t.Errorf("pick = %q, want b.db", pick)
	}
}
