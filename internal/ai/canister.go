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

// CanisterProvider calls an on-chain LLM gateway over HTTP. The gateway
// fronts the chain's LLM canister and speaks a minimal JSON protocol.
type CanisterProvider struct {
	baseURL    string
	httpClient *http.Client
}

// CanisterConfig holds configuration for the canister provider.
type CanisterConfig struct {
	BaseURL string
	Timeout time.Duration
}

// NewCanisterProvider creates a canister-gateway provider.
func NewCanisterProvider(cfg CanisterConfig) *CanisterProvider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &CanisterProvider{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (p *CanisterProvider) Name() string { return "canister" }

type canisterRequest struct {
	Prompt    string `json:"prompt"`
	AgentType string `json:"agent_type"`
}

type canisterResponse struct {
	Response   string `json:"response"`
	TokensUsed uint64 `json:"tokens_used"`
}

func (p *CanisterProvider) Generate(ctx context.Context, req *Request) (*Response, error) {
	if p.baseURL == "" {
		return nil, ErrUnavailable
	}

	body, err := json.Marshal(canisterRequest{Prompt: req.Prompt, AgentType: req.AgentType})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("canister gateway status %d: %s", resp.StatusCode, payload)
	}

	var out canisterResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if out.Response == "" {
		return nil, ErrUnavailable
	}

	tokens := out.TokensUsed
	if tokens == 0 {
		tokens = estimateTokens(out.Response)
	}
	return &Response{
		Content:    out.Response,
		Source:     p.Name(),
		Model:      "icp-llm",
		TokensUsed: tokens,
	}, nil
}
