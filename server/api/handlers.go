// Package api implements the HTTP handlers for the CurrForge API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/currforge/currforge/agent"
	"github.com/currforge/currforge/curriculum"
	"github.com/currforge/currforge/internal/version"
	"github.com/currforge/currforge/mail"
	"github.com/currforge/currforge/provider"
	"github.com/currforge/currforge/status"
)

// Handler bundles the API's collaborators.
type Handler struct {
	Generator *curriculum.Generator
	Provider  provider.Provider
	Store     status.Store
	Notifier  mail.Notifier
	OutputDir string
	Log       *slog.Logger
}

// Register mounts the API routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/generate", h.handleGenerate)
	mux.HandleFunc("GET /api/status/{id}", h.handleStatus)
	mux.HandleFunc("GET /api/download/{filename}", h.handleDownload)
	mux.HandleFunc("GET /api/health", h.handleHealth)
	mux.HandleFunc("GET /api/version", h.handleVersion)
	mux.HandleFunc("GET /api/books", h.handleBooks)
	mux.HandleFunc("GET /api/agents", h.handleAgents)
	mux.HandleFunc("GET /api/models/{provider}", h.handleModels)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// handleGenerate validates the request, records it, and starts generation in
// the background. Invalid requests are rejected before any tracking state
// exists for them.
func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req curriculum.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := "curr_" + uuid.NewString()
	rec := &status.Record{
		ID:       id,
		Email:    req.Email,
		Progress: "starting curriculum generation",
	}
	if err := h.Store.Create(rec); err != nil {
		h.Log.Error("create status record", "request", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to start generation")
		return
	}

	h.Log.Info("generation request accepted", "request", id, "book", req.Book, "grade", req.Grade)
	go h.run(id, &req)

	writeJSON(w, http.StatusAccepted, map[string]any{
		"success":       true,
		"message":       "Curriculum generation started! You will receive an email when complete.",
		"requestId":     id,
		"email":         req.Email,
		"estimatedTime": "2-3 minutes",
		"status":        string(status.StateProcessing),
	})
}

// run executes the pipeline for one accepted request. A panic anywhere in
// the run marks the request failed instead of killing the daemon.
func (h *Handler) run(id string, req *curriculum.Request) {
	defer func() {
		if r := recover(); r != nil {
			h.Log.Error("generation panicked", "request", id, "panic", r)
			if err := h.Store.Fail(id, fmt.Sprintf("internal error: %v", r)); err != nil {
				h.Log.Error("record panic failure", "request", id, "error", err)
			}
		}
	}()

	ctx := context.Background()
	result := h.Generator.Run(ctx, id, req.PrepareContext())

	payload, err := json.Marshal(result)
	if err != nil {
		h.Log.Error("marshal result", "request", id, "error", err)
		if err := h.Store.Fail(id, "failed to encode result"); err != nil {
			h.Log.Error("record encode failure", "request", id, "error", err)
		}
		return
	}
	if err := h.Store.Complete(id, payload); err != nil {
		h.Log.Error("record completion", "request", id, "error", err)
		return
	}
	h.Log.Info("generation complete", "request", id, "documents", len(result.Documents()))

	// Delivery is best effort; the curriculum is already downloadable.
	if h.Notifier != nil {
		if err := h.Notifier.SendCurriculum(ctx, req.Email, result); err != nil {
			h.Log.Warn("delivery email failed", "request", id, "email", req.Email, "error", err)
		}
	}
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Store.Get(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, status.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"status": "not_found"})
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("filename")
	// Reject anything that could escape the output directory.
	if name != filepath.Base(name) || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".pdf") {
		writeError(w, http.StatusBadRequest, "invalid filename")
		return
	}
	path := filepath.Join(h.OutputDir, name)
	if _, err := os.Stat(path); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "File not found"})
		return
	}
	h.Log.Info("download", "filename", name)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Type", "application/pdf")
	http.ServeFile(w, r, path)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if h.Provider != nil {
		resp["provider"] = h.Provider.Name()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version":   version.Version,
		"commit":    version.Commit,
		"buildDate": version.BuildDate,
	})
}

func (h *Handler) handleBooks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"books": curriculum.Books()})
}

type agentInfo struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Title string `json:"title"`
}

func (h *Handler) handleAgents(w http.ResponseWriter, r *http.Request) {
	tasks := agent.Registry()
	infos := make([]agentInfo, 0, len(tasks))
	for _, task := range tasks {
		infos = append(infos, agentInfo{
			Type:  string(task.Type),
			Name:  task.Name,
			Title: agent.DocumentTitle(task.Type),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"agents": infos})
}

func (h *Handler) handleModels(w http.ResponseWriter, r *http.Request) {
	models, err := provider.ListModels(r.PathValue("provider"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"models": models})
}
