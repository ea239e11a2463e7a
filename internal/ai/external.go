package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ExternalProvider calls an OpenAI-compatible chat completions API.
type ExternalProvider struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// ExternalConfig holds configuration for the external provider.
type ExternalConfig struct {
	APIKey  string
	BaseURL string // default: https://api.openai.com
	Model   string // default: gpt-4o-mini
	Timeout time.Duration
}

// NewExternalProvider creates an external API provider.
func NewExternalProvider(cfg ExternalConfig) *ExternalProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ExternalProvider{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (p *ExternalProvider) Name() string { return "external" }

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		CompletionTokens uint64 `json:"completion_tokens"`
	} `json:"usage"`
}

func (p *ExternalProvider) Generate(ctx context.Context, req *Request) (*Response, error) {
	if p.apiKey == "" {
		return nil, ErrUnavailable
	}

	messages := []chatMessage{
		{Role: "system", Content: fmt.Sprintf("You are a %s AI assistant for an online learning platform.", req.AgentType)},
	}
	if req.Context != "" {
		messages = append(messages, chatMessage{Role: "system", Content: "Context: " + req.Context})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Prompt})

	body, err := json.Marshal(chatRequest{
		Model:       p.model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("external api status %d: %s", resp.StatusCode, payload)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return nil, ErrUnavailable
	}

	content := out.Choices[0].Message.Content
	tokens := out.Usage.CompletionTokens
	if tokens == 0 {
		tokens = estimateTokens(content)
	}
	return &Response{
		Content:    content,
		Source:     p.Name(),
		Model:      p.model,
		TokensUsed: tokens,
	}, nil
}
