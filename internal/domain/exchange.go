// Package domain holds the core types shared across the assistant.
package domain

// Roles for exchange entries.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Exchange is a single entry in a session's conversation history:
// who spoke and what they said. Immutable once created.
type Exchange struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// UserExchange builds a user-role exchange.
func UserExchange(content string) Exchange {
	return Exchange{Role: RoleUser, Content: content}
}

// AssistantExchange builds an assistant-role exchange.
func AssistantExchange(content string) Exchange {
	return Exchange{Role: RoleAssistant, Content: content}
}
