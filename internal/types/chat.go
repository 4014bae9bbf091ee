package types

// ChatMessage is a UI-session doubt-resolver turn. Never persisted.
type ChatMessage struct {
	Role    string `json:"role"` // "user" | "assistant"
	Content string `json:"content"`
}
