package ai

import (
	"fmt"
	"strings"

	"github.com/taskmate-ai/taskmate/backend/internal/model/chat"
)

// historyWindow bounds how much prior conversation feeds the model.
const historyWindow = 5

// BuildSystemPrompt composes the instruction text for one completion call:
// the assistant persona, a windowed rendering of the prior conversation, and
// the current request. Pure and deterministic; an empty history renders as
// an empty context block.
func BuildSystemPrompt(history []chat.Message, userMessage string) string {
	return fmt.Sprintf(`You are an AI Task Assistant that helps users with task management, scheduling, organization, and homework completion.

Be helpful, conversational, and maintain context from previous messages in the conversation. Be focused on getting things done.

Previous conversation context:
%s

Current user request: %s

Provide a helpful response and suggest 2-3 specific actions the user can take.`,
		renderContext(history), userMessage)
}

// renderContext flattens the last historyWindow messages into labeled lines,
// chronological order preserved.
func renderContext(history []chat.Message) string {
	if len(history) == 0 {
		return ""
	}

	startIdx := 0
	if len(history) > historyWindow {
		startIdx = len(history) - historyWindow
	}

	lines := make([]string, 0, len(history)-startIdx)
	for _, msg := range history[startIdx:] {
		label := "Assistant"
		if msg.Role == chat.RoleUser {
			label = "User"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", label, msg.Content))
	}

	return strings.Join(lines, "\n")
}
