// Package llm provides the chat-completion clients used by the external
// collaborators around the scheduling engine: availability-text parsing and
// per-slot explanation generation. The engine itself never touches these;
// a failure here either fails a request before the engine runs (parsing) or
// degrades a response after it (explanations).
package llm

import "context"

// ChatRole values accepted by all client implementations.
const (
	ChatRoleSystem    = "system"
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type TokenUsage struct {
	InputTokens  int32
	OutputTokens int32
	TotalTokens  int32
}

type Request struct {
	System      []string
	Messages    []ChatMessage
	MaxTokens   int32
	Temperature float32
}

type Response struct {
	Text       string
	Usage      TokenUsage
	StopReason string
}

// Client is implemented by each completion backend (OpenAI-compatible,
// Gemini, Bedrock).
type Client interface {
	Complete(ctx context.Context, req Request) (Response, error)
}
