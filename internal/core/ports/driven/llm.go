package driven

import "context"

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// LLMService produces chat completions for answer synthesis.
// This is an optional service - when nil, answers degrade gracefully
// to chunk excerpts.
type LLMService interface {
	// Chat conducts a single-turn conversation and returns the
	// assistant's reply.
	Chat(ctx context.Context, messages []ChatMessage) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string
}
