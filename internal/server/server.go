package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"queuesim/internal/config"
	"queuesim/internal/history"
	"queuesim/internal/models"
	"queuesim/internal/queue"
	"queuesim/internal/runner"
	"queuesim/internal/storage"
)

const maxRequestBytes = 1 << 16

// Server wraps HTTP serving of the simulation API.
type Server struct {
	httpServer   *http.Server
	storage      *storage.RunStorage
	runner       *runner.Runner
	hub          *Hub
	defaults     config.Config
	historyLimit int
	logger       zerolog.Logger
}

// New creates a configured HTTP server. Runs started through the API are
// executed by run, which is expected to store into store and publish to hub.
func New(cfg config.Config, store *storage.RunStorage, run *runner.Runner, hub *Hub, logger zerolog.Logger) *Server {
	mux := http.NewServeMux()
	s := &Server{
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		storage:      store,
		runner:       run,
		hub:          hub,
		defaults:     cfg,
		historyLimit: cfg.HistoryLimit,
		logger:       logger,
	}
	s.registerRoutes(mux)
	return s
}

// Handler exposes the routes, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run blocks and serves HTTP traffic.
func (s *Server) Run() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts the server down.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/simulate/single", s.handleSimulateSingle)
	mux.HandleFunc("POST /api/simulate/dual", s.handleSimulateDual)
	mux.HandleFunc("GET /api/runs", s.handleRuns)
	mux.HandleFunc("GET /api/runs/latest", s.handleLatest)
	mux.HandleFunc("GET /api/runs/{id}", s.handleRun)
	mux.HandleFunc("GET /api/runs/{id}/timeline", s.handleTimeline)
	mux.HandleFunc("GET /api/ws", s.handleStream)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

type singleRequest struct {
	Seed            uint64 `json:"seed"`
	Customers       int    `json:"customers"`
	MaxInterArrival int    `json:"max_interarrival"`
	MaxServiceTime  int    `json:"max_service_time"`
}

func (r singleRequest) params() models.RunParams {
	return models.RunParams{
		Customers:       r.Customers,
		MaxInterArrival: r.MaxInterArrival,
		MaxServiceTime:  r.MaxServiceTime,
	}
}

type dualRequest struct {
	Seed                uint64 `json:"seed"`
	Customers           int    `json:"customers"`
	MaxInterArrival     int    `json:"max_interarrival"`
	MaxServiceTimeAble  int    `json:"max_service_time_able"`
	MaxServiceTimeBaker int    `json:"max_service_time_baker"`
}

func (r dualRequest) params() models.RunParams {
	return models.RunParams{
		Customers:           r.Customers,
		MaxInterArrival:     r.MaxInterArrival,
		MaxServiceTimeAble:  r.MaxServiceTimeAble,
		MaxServiceTimeBaker: r.MaxServiceTimeBaker,
	}
}

type timelineResponse struct {
	RunID    string                  `json:"run_id"`
	Kind     models.RunKind          `json:"kind"`
	Makespan int                     `json:"makespan"`
	Servers  []models.ServerTimeline `json:"servers"`
}

func (s *Server) handleSimulateSingle(w http.ResponseWriter, r *http.Request) {
	d := s.defaults.Single
	req := singleRequest{
		Customers:       d.Customers,
		MaxInterArrival: d.MaxInterArrival,
		MaxServiceTime:  d.MaxServiceTime,
	}
	if err := decodeRequest(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	entry, err := s.runner.RunSingle(r.Context(), req.Seed, req.params())
	s.writeRunResult(w, entry, err)
}

func (s *Server) handleSimulateDual(w http.ResponseWriter, r *http.Request) {
	d := s.defaults.Dual
	req := dualRequest{
		Customers:           d.Customers,
		MaxInterArrival:     d.MaxInterArrival,
		MaxServiceTimeAble:  d.MaxServiceTimeAble,
		MaxServiceTimeBaker: d.MaxServiceTimeBaker,
	}
	if err := decodeRequest(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	entry, err := s.runner.RunDual(r.Context(), req.Seed, req.params())
	s.writeRunResult(w, entry, err)
}

func (s *Server) writeRunResult(w http.ResponseWriter, entry models.RunEntry, err error) {
	switch {
	case errors.Is(err, queue.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, err)
	case err != nil:
		s.logger.Error().Err(err).Msg("simulation failed")
		writeError(w, http.StatusInternalServerError, err)
	default:
		writeJSON(w, http.StatusCreated, entry)
	}
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, s.historyLimit)
	writeJSON(w, http.StatusOK, s.storage.HistoryN(limit))
}

func (s *Server) handleLatest(w http.ResponseWriter, _ *http.Request) {
	entry, ok := s.storage.Latest()
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("no runs recorded yet"))
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.storage.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("run not found"))
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.storage.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("run not found"))
		return
	}
	resp := timelineResponse{
		RunID:    entry.ID,
		Kind:     entry.Kind,
		Makespan: entry.Summary.Makespan,
	}
	switch {
	case entry.Single != nil:
		resp.Servers = history.BuildSingleTimeline(*entry.Single)
	case entry.Dual != nil:
		resp.Servers = history.BuildDualTimelines(*entry.Dual)
	}
	writeJSON(w, http.StatusOK, resp)
}

// decodeRequest overlays the JSON body on req, which already holds the
// configured defaults. An empty body leaves req unchanged. Fields that belong
// to the other topology are rejected.
func decodeRequest(r *http.Request, req any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func parseLimit(r *http.Request, fallback int) int {
	if fallback <= 0 {
		return fallback
	}
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	if value > fallback {
		return fallback
	}
	return value
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}
