package ai

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/taskmate-ai/taskmate/backend/internal/config"
)

var (
	// ErrNotConfigured is returned when no completion credential is present.
	// The process keeps serving; only completion calls fail.
	ErrNotConfigured = errors.New("completion model credentials not configured")

	// ErrUpstream covers completion API failures: network, quota, malformed
	// response, deadline expiry.
	ErrUpstream = errors.New("completion upstream failure")
)

// Service wraps the completion model behind a single blocking call.
type Service struct {
	cfg   config.AIConfig
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewService compiles the completion chain once at startup. A missing
// credential is not fatal here: the service is constructed with no chain and
// every Complete call reports ErrNotConfigured.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	svc := &Service{cfg: cfg}
	if !cfg.Enabled() {
		return svc, nil
	}

	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile completion chain: %w", err)
	}

	svc.chain = runnable
	return svc, nil
}

// Enabled reports whether a completion credential was configured.
func (s *Service) Enabled() bool {
	return s.chain != nil
}

// Complete sends the composed prompt to the completion model and returns the
// generated text. The call is bounded by the configured timeout; expiry
// surfaces as ErrUpstream like any other upstream failure.
func (s *Service) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	if s.chain == nil {
		return "", ErrNotConfigured
	}

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	response, err := s.chain.Invoke(callCtx, map[string]any{
		"system": systemPrompt,
		"query":  userMessage,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if response == nil || response.Content == "" {
		return "", fmt.Errorf("%w: empty completion", ErrUpstream)
	}

	log.Printf("[ai] completion generated, length=%d", len(response.Content))
	return response.Content, nil
}
