// Package server exposes clip resolution over a JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/user/clip-browser/clip"
	"github.com/user/clip-browser/config"
	"github.com/user/clip-browser/db"
	"github.com/user/clip-browser/pkg/timeutil"
)

// Server holds the dependencies of the HTTP handlers.
// Handlers keep no selection state; callers send the view and selection with each request.
type Server struct {
	cfg      *config.Config
	resolver *clip.Resolver
	logger   zerolog.Logger
}

// New creates a Server.
func New(cfg *config.Config, resolver *clip.Resolver, logger zerolog.Logger) *Server {
	if resolver == nil {
		resolver = clip.NewResolver(nil)
	}
	return &Server{cfg: cfg, resolver: resolver, logger: logger}
}

// Router builds the chi router.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/sources", s.handleSources)
		r.Get("/sources/{name}/rows", s.handleRows)
		r.Post("/resolve", s.handleResolve)
		r.Post("/describe", s.handleDescribe)
	})
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}

type sourceJSON struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

func (s *Server) handleSources(w http.ResponseWriter, r *http.Request) {
	sources, err := db.ListSources(s.cfg.DataDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]sourceJSON, 0, len(sources))
	for _, src := range sources {
		out = append(out, sourceJSON{Name: src.Name, Size: src.Size})
	}
	writeJSON(w, http.StatusOK, out)
}

type rowsResponse struct {
	Source  string              `json:"source"`
	Columns []string            `json:"columns"`
	Rows    []map[string]string `json:"rows"`
}

// handleRows returns every record of a source. Hidden columns are left out of
// the column list but kept in the records, matching what the table displays.
func (s *Server) handleRows(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	sources, err := db.ListSources(s.cfg.DataDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	src, err := db.FindSource(sources, name)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	table, err := db.LoadSource(r.Context(), src.Path, s.cfg.Table)
	if err != nil {
		s.logger.Error().Err(err).Str("source", src.Name).Msg("load source")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	visible := s.cfg.VisibleColumns(table.Columns)
	if visible == nil {
		visible = []string{}
	}
	records := table.Records
	if records == nil {
		records = []map[string]string{}
	}
	writeJSON(w, http.StatusOK, rowsResponse{Source: src.Name, Columns: visible, Rows: records})
}

// selectionRequest carries the table layer's state: the active cell and the
// rows in their displayed order.
type selectionRequest struct {
	ActiveCell *clip.ActiveCell     `json:"active_cell"`
	View       []map[string]string  `json:"view"`
	Previous   *clip.PlaybackTarget `json:"previous,omitempty"`
}

func (req selectionRequest) rows(cols clip.ColumnMap) []clip.Row {
	if req.View == nil {
		return nil
	}
	rows := make([]clip.Row, 0, len(req.View))
	for _, rec := range req.View {
		rows = append(rows, clip.FromRecord(rec, cols))
	}
	return rows
}

type resolveResponse struct {
	Changed  bool                 `json:"changed"`
	Target   *clip.PlaybackTarget `json:"target,omitempty"`
	EmbedURL string               `json:"embed_url,omitempty"`
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	target, ok, err := s.resolver.Resolve(req.ActiveCell, req.rows(s.cfg.ColumnMap()), req.Previous)
	if err != nil {
		s.logger.Warn().Err(err).Msg("malformed timecode, keeping current clip")
		status := http.StatusInternalServerError
		if errors.Is(err, timeutil.ErrInvalidTimecode) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err.Error())
		return
	}
	if !ok {
		writeJSON(w, http.StatusOK, resolveResponse{Changed: false})
		return
	}

	writeJSON(w, http.StatusOK, resolveResponse{
		Changed:  true,
		Target:   &target,
		EmbedURL: clip.EmbedURL(s.cfg.Embed.EmbedBase, target),
	})
}

func (s *Server) handleDescribe(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	text := clip.DescribeSelection(req.ActiveCell, req.rows(s.cfg.ColumnMap()))
	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
