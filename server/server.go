// Package server hosts the CurrForge HTTP API and the server-sent events
// stream of generation progress.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/currforge/currforge/comms"
	"github.com/currforge/currforge/internal/version"
	"github.com/currforge/currforge/server/api"
)

// Server is the CurrForge HTTP daemon.
type Server struct {
	addr string
	mux  *http.ServeMux
	bus  comms.Bus
	log  *slog.Logger
	http *http.Server
}

// New assembles the server from the API handler and the progress bus.
func New(addr string, h *api.Handler, bus comms.Bus, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		addr: addr,
		mux:  http.NewServeMux(),
		bus:  bus,
		log:  log,
	}
	s.registerRoutes(h)
	s.http = &http.Server{
		Addr:              addr,
		Handler:           withCORS(s.mux),
		ReadHeaderTimeout: 15 * time.Second,
	}
	return s
}

func (s *Server) registerRoutes(h *api.Handler) {
	s.mux.HandleFunc("GET /{$}", s.handleRoot)
	h.Register(s.mux)
	s.mux.HandleFunc("GET /events", s.handleSSE)
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", "addr", s.addr)
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: listen: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

// withCORS allows the separately hosted frontend to call the API.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"name":    "CurrForge API",
		"version": version.Version,
		"status":  "running",
		"endpoints": map[string]string{
			"health":   "GET /api/health",
			"generate": "POST /api/generate",
			"status":   "GET /api/status/{id}",
			"download": "GET /api/download/{filename}",
			"events":   "GET /events",
		},
	})
}

// handleSSE streams progress events to the client as server-sent events.
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	events, cancel := s.bus.Subscribe()
	defer cancel()

	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(msg)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Type, data)
			flusher.Flush()
		}
	}
}
