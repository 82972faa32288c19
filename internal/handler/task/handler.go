package task

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taskmate-ai/taskmate/backend/internal/model/chat"
	"github.com/taskmate-ai/taskmate/backend/internal/service/assistant"
	"github.com/taskmate-ai/taskmate/backend/pkg/utils"
)

// Handler serves the task assistant route.
type Handler struct {
	assistantSvc *assistant.Service
}

// New creates the task handler.
func New(assistantSvc *assistant.Service) *Handler {
	return &Handler{assistantSvc: assistantSvc}
}

// RegisterRoutes mounts the task routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/assistant", h.handleAssistant)
}

type assistantRequest struct {
	UserMessage         string         `json:"user_message"`
	Context             string         `json:"context"`
	SessionID           string         `json:"session_id"`
	ConversationHistory []chat.Message `json:"conversation_history"`
}

type assistantResponse struct {
	UserMessage         string         `json:"user_message"`
	AIResponse          string         `json:"ai_response"`
	TaskSuggestions     []string       `json:"task_suggestions"`
	Timestamp           string         `json:"timestamp"`
	SessionID           string         `json:"session_id"`
	ConversationHistory []chat.Message `json:"conversation_history"`
}

func (h *Handler) handleAssistant(w http.ResponseWriter, r *http.Request) {
	var payload assistantRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(payload.UserMessage) == "" {
		utils.RespondError(w, http.StatusBadRequest, "user_message is required")
		return
	}

	// History arrives from the client as loose JSON; reject malformed
	// entries here so the prompt builder only ever sees validated messages.
	for i, msg := range payload.ConversationHistory {
		if err := msg.Validate(); err != nil {
			utils.RespondError(w, http.StatusBadRequest,
				fmt.Sprintf("invalid conversation_history entry %d: %v", i, err))
			return
		}
	}

	result, err := h.assistantSvc.HandleTurn(r.Context(), payload.SessionID, payload.UserMessage, payload.ConversationHistory)
	if err != nil {
		log.Printf("[task] turn failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Error getting AI response: "+err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, assistantResponse{
		UserMessage:         payload.UserMessage,
		AIResponse:          result.Reply,
		TaskSuggestions:     result.Suggestions,
		Timestamp:           time.Now().UTC().Format(time.RFC3339),
		SessionID:           result.SessionID,
		ConversationHistory: result.History,
	})
}
