package domain

import "time"

// AnonUserID is the session key used when a caller supplies no user ID.
const AnonUserID = "anon"

// ChatRequest is the inbound transport contract. Any transport (HTTP,
// WebSocket, CLI) reduces to this shape before reaching the router.
type ChatRequest struct {
	Message string `json:"message"`
	UserID  string `json:"user_id,omitempty"`
}

// SessionKey returns the session key for this request, defaulting to
// the anonymous key when the caller supplied none.
func (r ChatRequest) SessionKey() string {
	if r.UserID == "" {
		return AnonUserID
	}
	return r.UserID
}

// ChatResponse is the outbound transport contract.
type ChatResponse struct {
	Response string `json:"response"`
}

// Feedback is a raw feedback submission, persisted fire-and-forget.
type Feedback struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId,omitempty"`
	Payload   string    `json:"payload"` // raw JSON as submitted
	CreatedAt time.Time `json:"createdAt"`
}
