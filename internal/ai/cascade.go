package ai

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/felixgeelhaar/fortify/circuitbreaker"
	"github.com/felixgeelhaar/fortify/retry"
)

// Cascade tries the canister gateway first, then the external API with
// retries, then the deterministic fallback. With the fallback enabled a
// cascade call never fails.
type Cascade struct {
	canister Provider
	external Provider
	fallback Provider

	breaker circuitbreaker.CircuitBreaker[*Response]
	retrier retry.Retry[*Response]
	logger  *slog.Logger

	totalCalls    atomic.Uint64
	canisterCalls atomic.Uint64
	externalCalls atomic.Uint64
	fallbackCalls atomic.Uint64
	failedCalls   atomic.Uint64
}

// CascadeConfig holds configuration for the cascade.
type CascadeConfig struct {
	// MaxRetries bounds attempts against the external API (default: 2).
	MaxRetries int
	// FallbackEnabled keeps the deterministic templates as the last
	// resort. Disabling it lets cascade calls fail.
	FallbackEnabled bool
	Logger          *slog.Logger
}

// NewCascade wires the three providers. canister and external may be nil
// when unconfigured.
func NewCascade(canister, external Provider, cfg CascadeConfig) *Cascade {
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 2
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Cascade{
		canister: canister,
		external: external,
		logger:   logger,
	}
	if cfg.FallbackEnabled {
		c.fallback = NewFallback()
	}

	if canister != nil {
		c.breaker = circuitbreaker.New[*Response](circuitbreaker.Config{
			MaxRequests: 2,
			Interval:    10 * time.Second,
			Timeout:     60 * time.Second,
			ReadyToTrip: func(counts circuitbreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
			OnStateChange: func(from, to circuitbreaker.State) {
				logger.Warn("canister circuit breaker state change",
					"from", from.String(), "to", to.String())
			},
		})
	}
	if external != nil {
		c.retrier = retry.New[*Response](retry.Config{
			MaxAttempts:   maxRetries,
			InitialDelay:  500 * time.Millisecond,
			MaxDelay:      5 * time.Second,
			Multiplier:    2.0,
			BackoffPolicy: retry.BackoffExponential,
			Jitter:        true,
		})
	}

	return c
}

// Generate runs the cascade for one request.
func (c *Cascade) Generate(ctx context.Context, req *Request) (*Response, error) {
	c.totalCalls.Add(1)

	if c.canister != nil {
		resp, err := c.breaker.Execute(ctx, func(ctx context.Context) (*Response, error) {
			return c.canister.Generate(ctx, req)
		})
		if err == nil {
			c.canisterCalls.Add(1)
			return resp, nil
		}
		c.logger.Debug("canister provider failed", "error", err)
	}

	if c.external != nil {
		resp, err := c.retrier.Do(ctx, func(ctx context.Context) (*Response, error) {
			return c.external.Generate(ctx, req)
		})
		if err == nil {
			c.externalCalls.Add(1)
			return resp, nil
		}
		c.logger.Debug("external provider failed", "error", err)
	}

	if c.fallback != nil {
		resp, err := c.fallback.Generate(ctx, req)
		if err == nil {
			c.fallbackCalls.Add(1)
			return resp, nil
		}
	}

	c.failedCalls.Add(1)
	return nil, ErrUnavailable
}

// Stats reports per-source call counters.
type Stats struct {
	TotalCalls    uint64  `json:"total_calls"`
	CanisterCalls uint64  `json:"canister_calls"`
	ExternalCalls uint64  `json:"external_calls"`
	FallbackCalls uint64  `json:"fallback_calls"`
	FailedCalls   uint64  `json:"failed_calls"`
	SuccessRate   float64 `json:"success_rate"`
}

// Stats returns a point-in-time snapshot of the counters.
func (c *Cascade) Stats() Stats {
	s := Stats{
		TotalCalls:    c.totalCalls.Load(),
		CanisterCalls: c.canisterCalls.Load(),
		ExternalCalls: c.externalCalls.Load(),
		FallbackCalls: c.fallbackCalls.Load(),
		FailedCalls:   c.failedCalls.Load(),
	}
	if s.TotalCalls > 0 {
		s.SuccessRate = float64(s.TotalCalls-s.FailedCalls) / float64(s.TotalCalls)
	}
	return s
}
