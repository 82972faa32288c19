package health

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taskmate-ai/taskmate/backend/pkg/utils"
)

// Handler serves the liveness route.
type Handler struct{}

// New creates the health handler.
func New() *Handler {
	return &Handler{}
}

// RegisterRoutes mounts the health route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.handleHealth)
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
