package projects

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/just-abdullah-dev/pixel-art/internal/auth"
	"github.com/just-abdullah-dev/pixel-art/internal/export"
	"github.com/just-abdullah-dev/pixel-art/internal/models"
	"github.com/just-abdullah-dev/pixel-art/internal/storage"
)

// Handler serves the project CRUD and export endpoints. Every route is
// behind the auth middleware; handlers trust the account id in the
// request context.
type Handler struct {
	Store storage.ProjectStore
}

// List returns summaries of the account's projects, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	accountID, _ := auth.AccountID(r.Context())

	summaries, err := h.Store.List(r.Context(), accountID)
	if err != nil {
		log.Printf("[Projects] list failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if summaries == nil {
		summaries = []models.ProjectSummary{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"projects": summaries})
}

// Save upserts a full project document. A body without an id creates a
// new project; the response carries the assigned id.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	accountID, _ := auth.AccountID(r.Context())

	var p models.Project
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if p.Name == "" {
		http.Error(w, "Project name cannot be empty", http.StatusBadRequest)
		return
	}
	if err := p.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	saved, err := h.Store.Save(r.Context(), accountID, &p)
	if err != nil {
		log.Printf("[Projects] save failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"project": saved})
	log.Printf("[Projects] saved project %s (%s) for account %s", saved.Name, saved.ID, accountID)
}

// Get returns one full project document.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	accountID, _ := auth.AccountID(r.Context())
	id := mux.Vars(r)["id"]

	p, err := h.Store.Get(r.Context(), accountID, id)
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("[Projects] get failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"project": p})
}

// Delete removes a project. Deleting something absent or owned by
// someone else succeeds without effect.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	accountID, _ := auth.AccountID(r.Context())
	id := mux.Vars(r)["id"]

	if err := h.Store.Delete(r.Context(), accountID, id); err != nil {
		log.Printf("[Projects] delete failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"success": true})
	log.Printf("[Projects] deleted project %s for account %s", id, accountID)
}

// Export renders a frame of the project as a PNG. The optional ?frame
// query selects a frame index; the default is the project's current
// frame.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	accountID, _ := auth.AccountID(r.Context())
	id := mux.Vars(r)["id"]

	p, err := h.Store.Get(r.Context(), accountID, id)
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("[Projects] export load failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	frameIndex := p.CurrentFrameIndex
	if raw := r.URL.Query().Get("frame"); raw != "" {
		frameIndex, err = strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "Invalid frame index", http.StatusBadRequest)
			return
		}
	}
	if frameIndex < 0 || frameIndex >= len(p.Frames) {
		http.Error(w, "Frame index out of range", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", p.Name+".png"))
	if err := export.PNG(w, p, frameIndex); err != nil {
		// Headers may already be out; log and give up on this response.
		log.Printf("[Projects] export failed for project %s: %v", id, err)
	}
}
