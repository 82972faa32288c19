package chat

import "time"

// Session captures one transient in-memory conversation.
type Session struct {
	ID             string    `json:"id"`
	CreatedAt      time.Time `json:"createdAt"`
	LastActivityAt time.Time `json:"lastActivityAt"`
}
