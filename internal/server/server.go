// Package server exposes the stored dataset and its dashboard over HTTP as
// JSON, for browser-side renderers.
package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/KaramelBytes/tabloom-cli/internal/csvcodec"
	"github.com/KaramelBytes/tabloom-cli/internal/dashboard"
	"github.com/KaramelBytes/tabloom-cli/internal/dataset"
	"github.com/KaramelBytes/tabloom-cli/internal/parser"
	"github.com/KaramelBytes/tabloom-cli/internal/store"
)

// DatasetStore is the persistence the server needs.
type DatasetStore interface {
	Save(name string, rows dataset.Dataset) (store.Snapshot, error)
	Load() (store.Snapshot, bool, error)
	Clear() error
}

// Config holds server settings.
type Config struct {
	Dashboard   dashboard.Options
	Decode      parser.Options
	MaxUploadMB int
}

// Server wires the HTTP handlers to a store.
type Server struct {
	store  DatasetStore
	cfg    Config
	logger *slog.Logger
}

// New returns a Server. A nil logger falls back to slog.Default.
func New(st DatasetStore, cfg Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxUploadMB <= 0 {
		cfg.MaxUploadMB = 32
	}
	return &Server{store: st, cfg: cfg, logger: logger}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "ok"})
	})
	r.Route("/api", func(r chi.Router) {
		r.Get("/dataset", s.getDataset)
		r.Post("/dataset", s.uploadDataset)
		r.Delete("/dataset", s.clearDataset)
		r.Get("/dashboard", s.getDashboard)
		r.Get("/export.csv", s.exportCSV)
	})
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// datasetInfo is the metadata returned for the stored dataset.
type datasetInfo struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Rows    int       `json:"rows"`
	Columns []string  `json:"columns"`
	SavedAt time.Time `json:"saved_at"`
}

func infoOf(snap store.Snapshot) datasetInfo {
	return datasetInfo{ID: snap.ID, Name: snap.Name, Rows: len(snap.Rows), Columns: snap.Columns(), SavedAt: snap.SavedAt}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Error: err.Error()})
}

var errNoDataset = errors.New("no dataset loaded")

// loadSnapshot writes the error response itself and returns ok=false when the
// caller should stop.
func (s *Server) loadSnapshot(w http.ResponseWriter, r *http.Request) (store.Snapshot, bool) {
	snap, ok, err := s.store.Load()
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return store.Snapshot{}, false
	}
	if !ok {
		s.fail(w, r, http.StatusNotFound, errNoDataset)
		return store.Snapshot{}, false
	}
	return snap, true
}

func (s *Server) getDataset(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.loadSnapshot(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, infoOf(snap))
}

func (s *Server) uploadDataset(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, int64(s.cfg.MaxUploadMB)<<20)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.fail(w, r, http.StatusRequestEntityTooLarge, fmt.Errorf("upload exceeds %d MB", s.cfg.MaxUploadMB))
			return
		}
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	defer file.Close()

	opt := s.cfg.Decode
	if sheet := r.FormValue("sheet"); sheet != "" {
		opt.Sheet = sheet
	}
	rows, err := parser.Decode(file, header.Filename, opt)
	if err != nil {
		// The stored dataset is left untouched on decode failure.
		s.logger.Warn("upload rejected", "file", header.Filename, "error", err)
		s.fail(w, r, http.StatusUnprocessableEntity, err)
		return
	}
	snap, err := s.store.Save(header.Filename, rows)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	s.logger.Info("dataset uploaded", "file", header.Filename, "rows", len(rows), "id", snap.ID)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, infoOf(snap))
}

func (s *Server) clearDataset(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Clear(); err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getDashboard(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.loadSnapshot(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	sel := dashboard.Selection{
		DateColumn:     q.Get("date"),
		ValueColumn:    q.Get("value"),
		CategoryColumn: q.Get("category"),
	}
	opt := s.cfg.Dashboard
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.fail(w, r, http.StatusBadRequest, errors.New("limit must be a positive integer"))
			return
		}
		opt.CategoryLimit = n
	}
	st, err := dashboard.Build(snap.Rows, sel, opt)
	if err != nil {
		if errors.Is(err, dashboard.ErrUnknownColumn) {
			s.fail(w, r, http.StatusBadRequest, err)
			return
		}
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	st.Name = snap.Name
	render.JSON(w, r, st)
}

func (s *Server) exportCSV(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.loadSnapshot(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="export.csv"`)
	if err := csvcodec.EncodeTo(w, snap.Rows); err != nil {
		s.logger.Error("export failed", "error", err)
	}
}
