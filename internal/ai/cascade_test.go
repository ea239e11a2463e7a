package ai

import (
	"context"
	"errors"
	"testing"
)

type fakeProvider struct {
	name  string
	err   error
	calls int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Generate(_ context.Context, _ *Request) (*Response, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &Response{Content: f.name + " says hi", Source: f.name, Model: "fake"}, nil
}

func TestCascadePrefersCanister(t *testing.T) {
	canister := &fakeProvider{name: "canister"}
	external := &fakeProvider{name: "external"}
	c := NewCascade(canister, external, CascadeConfig{FallbackEnabled: true})

	resp, err := c.Generate(context.Background(), &Request{Prompt: "hi"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if resp.Source != "canister" {
		t.Errorf("Source = %s, want canister", resp.Source)
	}
	if external.calls != 0 {
		t.Errorf("external called %d times, want 0", external.calls)
	}

	stats := c.Stats()
	if stats.CanisterCalls != 1 || stats.TotalCalls != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestCascadeFallsThroughToExternal(t *testing.T) {
	canister := &fakeProvider{name: "canister", err: ErrUnavailable}
	external := &fakeProvider{name: "external"}
	c := NewCascade(canister, external, CascadeConfig{FallbackEnabled: true})

	resp, err := c.Generate(context.Background(), &Request{Prompt: "hi"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if resp.Source != "external" {
		t.Errorf("Source = %s, want external", resp.Source)
	}
}

func TestCascadeRetriesExternal(t *testing.T) {
	external := &fakeProvider{name: "external", err: errors.New("boom")}
	c := NewCascade(nil, external, CascadeConfig{MaxRetries: 2, FallbackEnabled: true})

	resp, err := c.Generate(context.Background(), &Request{Prompt: "hi"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if resp.Source != "fallback" {
		t.Errorf("Source = %s, want fallback after exhausted retries", resp.Source)
	}
	if external.calls != 2 {
		t.Errorf("external called %d times, want 2", external.calls)
	}

	stats := c.Stats()
	if stats.FallbackCalls != 1 || stats.FailedCalls != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestCascadeFailsWithFallbackDisabled(t *testing.T) {
	c := NewCascade(nil, nil, CascadeConfig{FallbackEnabled: false})

	if _, err := c.Generate(context.Background(), &Request{Prompt: "hi"}); !errors.Is(err, ErrUnavailable) {
		t.Errorf("got %v, want ErrUnavailable", err)
	}
	if got := c.Stats(); got.FailedCalls != 1 || got.SuccessRate != 0 {
		t.Errorf("stats = %+v", got)
	}
}
