package models

import "time"

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

// ChatMessage is one turn in the advisory conversation. Messages are
// append-only and held in memory only; the log is never persisted.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      ChatRole  `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// AdvisorReply is the model's answer to one chat turn, with optional
// grounding citation URIs.
type AdvisorReply struct {
	Text    string   `json:"text"`
	Sources []string `json:"sources,omitempty"`
}

// HoldingSnapshot is the read-only portfolio view supplied to the advisor.
type HoldingSnapshot struct {
	Name    string  `json:"name"`
	Code    string  `json:"code"`
	Cost    float64 `json:"cost"`
	Shares  float64 `json:"shares"`
	Current float64 `json:"current"`
}
