package ports

import (
	"context"
)

// ChatRequest is a single-message chat-completion call.
type ChatRequest struct {
	Model       string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// ChatClient talks to one configured OpenAI-compatible endpoint.
type ChatClient interface {
	// Complete returns the content of the first choice, untrimmed.
	Complete(ctx context.Context, req ChatRequest) (string, error)
}
