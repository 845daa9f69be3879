// Package web provides a read-only web UI over the session history.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"github.com/metalagman/maimp/internal/db"
	"github.com/metalagman/maimp/internal/report"
	"github.com/rs/zerolog/log"
)

// SessionStore is the subset of *db.Store the UI reads from.
type SessionStore interface {
	ListSessions(ctx context.Context, limit int) ([]db.SessionRecord, error)
	GetSession(ctx context.Context, sessionID string) (db.SessionRecord, error)
	Events(ctx context.Context, sessionID string) ([]db.Event, error)
}

// Server provides the web UI handlers and state.
type Server struct {
	store SessionStore
	index *template.Template
}

//go:embed templates/*.html
var templatesFS embed.FS

// NewServer creates a new web server.
func NewServer(store SessionStore) (*Server, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/index.html")
	if err != nil {
		return nil, err
	}
	return &Server{store: store, index: tmpl}, nil
}

// Routes returns the router for the web UI.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /sessions/{id}", s.handleReport)
	mux.HandleFunc("GET /sessions/{id}/events", s.handleEvents)
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListSessions(r.Context(), 100)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.index.Execute(w, items); err != nil {
		log.Error().Err(err).Msg("render index")
	}
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.session(w, r)
	if !ok {
		return
	}
	if rec.ReportPath == "" {
		http.Error(w, "session has no report", http.StatusNotFound)
		return
	}
	rep, err := report.Load(rec.ReportPath)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, rep)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.session(w, r)
	if !ok {
		return
	}
	events, err := s.store.Events(r.Context(), rec.SessionID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if events == nil {
		events = []db.Event{}
	}
	writeJSON(w, events)
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (db.SessionRecord, bool) {
	rec, err := s.store.GetSession(r.Context(), r.PathValue("id"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, db.ErrNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return db.SessionRecord{}, false
	}
	return rec, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}
