// Package ai implements the hybrid assistant: an on-chain LLM gateway,
// an external chat-completions API, and a deterministic fallback, cascaded
// so a response is always produced.
package ai

import (
	"context"
	"errors"
)

// ErrUnavailable is returned by a provider that cannot serve the request.
var ErrUnavailable = errors.New("ai provider unavailable")

// Request is one generation call.
type Request struct {
	AgentType   string
	Prompt      string
	Context     string
	Temperature float64
	MaxTokens   int
}

// Response is a completed generation, tagged with the provider that
// produced it.
type Response struct {
	Content    string
	Source     string
	Model      string
	TokensUsed uint64
}

// Provider generates completions.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req *Request) (*Response, error)
}

// estimateTokens approximates token usage from output length.
func estimateTokens(content string) uint64 {
	return uint64(len(content) / 4)
}
