package chat

import (
	"fmt"
	"time"
)

// Role identifies who produced a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether the role is one of the known enumerated values.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Message is one turn in a conversation transcript.
type Message struct {
	ID        string    `json:"id,omitempty"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Validate rejects history entries with an unknown role or no content.
// Request payloads carry loosely structured history, so the check happens
// at the boundary before anything reaches the prompt builder.
func (m Message) Validate() error {
	if !m.Role.Valid() {
		return fmt.Errorf("invalid message role %q", string(m.Role))
	}
	if m.Content == "" {
		return fmt.Errorf("message content is required")
	}
	return nil
}
