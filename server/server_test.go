package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/user/clip-browser/clip"
	"github.com/user/clip-browser/config"
	"github.com/user/clip-browser/db"
)

const sampleCSV = `video_id,start_timecode,end_timecode,description,document_name
XC7BeLRm7ak,[00:01:30],[00:02:10],Opening,doc1.txt
NNf8tXs1wbQ,05:00,05:42,Close-up,doc2.txt
`

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	database, err := db.Create(filepath.Join(dir, "clips.db"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.ImportCSV(context.Background(), database, "descriptions", strings.NewReader(sampleCSV)); err != nil {
		t.Fatal(err)
	}
	database.Close()

	cfg := config.Default()
	cfg.DataDir = dir
	clock := func() time.Time { return time.Unix(0, 1000) }
	return New(cfg, clip.NewResolver(clock), zerolog.Nop()), dir
}

func do(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s.Router(), http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestSourcesAndRows(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Router()

	rec := do(t, h, http.MethodGet, "/api/sources", nil)
	var sources []sourceJSON
	if err := json.NewDecoder(rec.Body).Decode(&sources); err != nil {
		t.Fatal(err)
	}
	if len(sources) != 1 || sources[0].Name != "clips.db" {
		t.Fatalf("got %+v", sources)
	}

	rec = do(t, h, http.MethodGet, "/api/sources/clips.db/rows", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}
	var rows rowsResponse
	if err := json.NewDecoder(rec.Body).Decode(&rows); err != nil {
		t.Fatal(err)
	}
	for _, c := range rows.Columns {
		if c == "document_name" {
			t.Error("hidden column listed")
		}
	}
	if len(rows.Rows) != 2 || rows.Rows[0]["document_name"] != "doc1.txt" {
		t.Errorf("got %+v", rows.Rows)
	}

	rec = do(t, h, http.MethodGet, "/api/sources/nope.db/rows", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown source: status = %d", rec.Code)
	}
}

func TestResolve(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Router()

	view := []map[string]string{
		{"video_id": "NNf8tXs1wbQ", "start_timecode": "05:00", "end_timecode": "05:42"},
		{"video_id": "XC7BeLRm7ak", "start_timecode": "[00:01:30]", "end_timecode": "[00:02:10]"},
	}

	testCases := []struct {
		name        string
		body        selectionRequest
		wantStatus  int
		wantChanged bool
		wantID      string
	}{
		{"no cell", selectionRequest{View: view}, http.StatusOK, false, ""},
		{"out of bounds", selectionRequest{ActiveCell: &clip.ActiveCell{Row: 5}, View: view}, http.StatusOK, false, ""},
		{"row 1", selectionRequest{ActiveCell: &clip.ActiveCell{Row: 1, Column: "description"}, View: view}, http.StatusOK, true, "XC7BeLRm7ak"},
		{
			"malformed",
			selectionRequest{
				ActiveCell: &clip.ActiveCell{Row: 0},
				View:       []map[string]string{{"video_id": "x", "start_timecode": "1:2:3:4", "end_timecode": "00:01"}},
			},
			http.StatusUnprocessableEntity, false, "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/resolve", tc.body)
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tc.wantStatus, rec.Body)
			}
			if tc.wantStatus != http.StatusOK {
				return
			}
			var resp resolveResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatal(err)
			}
			if resp.Changed != tc.wantChanged {
				t.Fatalf("changed = %v", resp.Changed)
			}
			if !tc.wantChanged {
				return
			}
			if resp.Target.MediaID != tc.wantID || resp.Target.StartSeconds != 90 || resp.Target.EndSeconds != 130 {
				t.Errorf("target = %+v", resp.Target)
			}
			if !strings.HasPrefix(resp.EmbedURL, "https://www.youtube.com/embed/XC7BeLRm7ak?") {
				t.Errorf("embed_url = %s", resp.EmbedURL)
			}
		})
	}
}

func TestResolve_BadBody(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/resolve", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestDescribe(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Router()

	view := []map[string]string{{"video_id": "abc", "start_timecode": "[00:05]", "end_timecode": "00:09"}}

	rec := do(t, h, http.MethodPost, "/api/describe", selectionRequest{ActiveCell: &clip.ActiveCell{Row: 0}, View: view})
	var resp map[string]string
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp["text"] != "Video ID: abc, Start Timecode: [00:05]" {
		t.Errorf("got %q", resp["text"])
	}

	rec = do(t, h, http.MethodPost, "/api/describe", selectionRequest{View: view})
	resp = nil
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp["text"] != clip.NoSelectionText {
		t.Errorf("got %q", resp["text"])
	}
}
