package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"porte-calc/adapters/jsontariff"
	"porte-calc/adapters/storage"
	"porte-calc/core/engine"
	"porte-calc/core/types"
	"porte-calc/internal/errors"
	"porte-calc/internal/logging"
)

// Server is the HTTP surface over the engine
type Server struct {
	engine  *engine.Engine
	store   storage.Store
	version string
	log     *zap.Logger
}

// NewServer creates a Server. store may be nil; /runs then returns 404.
func NewServer(version string, store storage.Store) *Server {
	return &Server{
		engine:  engine.New(),
		store:   store,
		version: version,
		log:     logging.Logger,
	}
}

// Router builds the chi router with request-ID and logging middleware
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(middleware.Logger)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Post("/compute", s.handleCompute)
	r.Get("/runs", s.handleListRuns)
	r.Get("/runs/{id}", s.handleGetRun)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

func (s *Server) handleCompute(w http.ResponseWriter, r *http.Request) {
	var req ComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(errors.TypeMalformedTable, "invalid JSON body", err))
		return
	}
	if len(req.Tariff) == 0 {
		writeError(w, http.StatusBadRequest, errors.New(errors.TypeMalformedTable, "tariff document is required"))
		return
	}

	table, err := jsontariff.Parse(req.Tariff)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	records := make([]types.RouteRecord, 0, len(req.Routes))
	for i, doc := range req.Routes {
		records = append(records, doc.record(i+1))
	}

	rep, err := s.engine.RunRecords(r.Context(), table, records)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	resp := ComputeResponse{Report: rep}
	if s.store != nil {
		run := storage.NewRun("api", rep)
		if err := s.store.Save(r.Context(), run); err != nil {
			// Persistence is best-effort here; the caller still gets
			// the report and can retry the upload.
			s.log.Warn("run persistence failed", zap.Error(err))
		} else {
			resp.RunID = run.ID
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, errors.Config("run history is not configured"))
		return
	}
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	runs, err := s.store.List(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, errors.Config("run history is not configured"))
		return
	}
	run, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	body := ErrorBody{Type: string(errors.TypeInternal), Message: err.Error()}
	if e, ok := err.(*errors.Error); ok {
		body.Type = string(e.Type)
		body.Message = e.Message
	}
	writeJSON(w, status, ErrorResponse{Error: body})
}

// requestIDMiddleware tags every request with an X-Request-Id
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r)
	})
}
