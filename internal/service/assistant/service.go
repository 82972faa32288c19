package assistant

import (
	"context"

	"github.com/taskmate-ai/taskmate/backend/internal/model/chat"
	"github.com/taskmate-ai/taskmate/backend/internal/service/ai"
	chatservice "github.com/taskmate-ai/taskmate/backend/internal/service/chat"
)

// taskSuggestions is the fixed action list returned with every reply. The
// suggestions are static, not model-derived.
var taskSuggestions = []string{
	"Break down the task into smaller steps",
	"Set specific deadlines for each step",
	"Create a checklist to track progress",
}

// Completer is the outbound completion capability. The concrete
// implementation is ai.Service; tests substitute a stub.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// TurnResult is the outcome of one fully processed user turn.
type TurnResult struct {
	SessionID   string
	Reply       string
	Suggestions []string
	History     []chat.Message
}

// Service orchestrates the session store, prompt construction, and the
// completion call for a single conversational turn.
type Service struct {
	store     *chatservice.Store
	completer Completer
}

// NewService wires the orchestration layer.
func NewService(store *chatservice.Store, completer Completer) *Service {
	return &Service{store: store, completer: completer}
}

// Suggestions returns the static task suggestion list.
func Suggestions() []string {
	out := make([]string, len(taskSuggestions))
	copy(out, taskSuggestions)
	return out
}

// HandleTurn answers one user message and records the exchange.
//
// The prompt is built from the caller-supplied transcript, not the store's;
// the two can diverge and that is intentional, the store remains the
// authoritative record returned to the caller. An upstream failure aborts
// the turn before any store mutation, so the session is untouched on error.
// No store lock is held across the completion call.
func (s *Service) HandleTurn(ctx context.Context, rawSessionID, userMessage string, supplied []chat.Message) (TurnResult, error) {
	sessionID := s.store.ResolveOrCreate(ctx, rawSessionID)

	prompt := ai.BuildSystemPrompt(supplied, userMessage)

	reply, err := s.completer.Complete(ctx, prompt, userMessage)
	if err != nil {
		return TurnResult{}, err
	}

	s.store.Append(ctx, sessionID, userMessage, reply)

	return TurnResult{
		SessionID:   sessionID,
		Reply:       reply,
		Suggestions: Suggestions(),
		History:     s.store.Messages(ctx, sessionID),
	}, nil
}
