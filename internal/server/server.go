// Package server exposes a checklist store over a JSON HTTP API so a browser
// renderer can redraw from it.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rs/cors"

	"checklist/internal/checklist"
)

const (
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout = 10 * time.Second

	maxBodyBytes = 1 << 16
)

// Server serializes HTTP requests onto a single store.
type Server struct {
	mu     sync.Mutex
	store  *checklist.Store
	logger *log.Logger

	// completed is set by the store's completion callback during a toggle.
	completed bool

	handler http.Handler
}

type listResponse struct {
	Tasks    checklist.TaskList `json:"tasks"`
	Progress progressResponse   `json:"progress"`
}

type progressResponse struct {
	checklist.Progress
	Band checklist.Band `json:"band"`
}

type toggleResponse struct {
	Task     checklist.Task `json:"task"`
	Complete bool           `json:"complete"`
}

type addRequest struct {
	Text string `json:"text"`
}

// New builds the API over store. A nil logger discards log output.
func New(store *checklist.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Server{store: store, logger: logger}
	store.OnComplete(func() { s.completed = true })

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	mux.HandleFunc("GET /api/tasks", s.listTasks)
	mux.HandleFunc("POST /api/tasks", s.addTask)
	mux.HandleFunc("POST /api/tasks/{id}/toggle", s.toggleTask)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.removeTask)
	mux.HandleFunc("GET /api/progress", s.progress)
	mux.HandleFunc("POST /api/reset", s.reset)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	s.handler = c.Handler(mux)
	return s
}

// Handler returns the HTTP handler with CORS applied.
func (s *Server) Handler() http.Handler { return s.handler }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Printf("listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Printf("shut down signal received...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Printf("shut down gracefully")
	return nil
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := s.snapshot()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) progress(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	p := s.store.Progress()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, progressResponse{Progress: p, Band: p.Band()})
}

func (s *Server) addTask(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	s.mu.Lock()
	task, ok := s.store.Add(req.Text)
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusBadRequest, "task text required")
		return
	}
	s.logger.Printf("added task %d", task.ID)
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) toggleTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	s.completed = false
	task, found := s.store.Toggle(id)
	complete := s.completed
	s.mu.Unlock()

	if !found {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	if complete {
		s.logger.Printf("all tasks complete")
	}
	writeJSON(w, http.StatusOK, toggleResponse{Task: task, Complete: complete})
}

func (s *Server) removeTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	removed := s.store.Remove(id)
	s.mu.Unlock()

	if !removed {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) reset(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.store.Reset()
	resp := s.snapshot()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

// snapshot must be called with s.mu held.
func (s *Server) snapshot() listResponse {
	p := s.store.Progress()
	return listResponse{
		Tasks:    s.store.Tasks(),
		Progress: progressResponse{Progress: p, Band: p.Band()},
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid task id")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
