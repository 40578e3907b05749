// SPDX-FileCopyrightText: The skycast authors
//
// SPDX-License-Identifier: MIT

package weather

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// RateLimited wraps a Provider with client-side rate limiting, so that scheduled
// refreshes and API-triggered fetches together stay within the upstream quota.
type RateLimited struct {
	provider Provider
	limiter  *rate.Limiter
}

// NewRateLimited returns a rate limited Provider allowing rps requests per second
// (fractional values are fine) with the given burst size.
func NewRateLimited(provider Provider, rps float64, burst int) *RateLimited {
	return &RateLimited{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (r *RateLimited) Name() string {
	return r.provider.Name() + " (rate limited)"
}

// Fetch waits for rate limiter permission or context cancellation, then forwards
// to the underlying provider.
func (r *RateLimited) Fetch(ctx context.Context, coords Coordinate) (*Series, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.provider.Fetch(ctx, coords)
}

// Breaker wraps a Provider with a circuit breaker, shedding requests to an
// upstream that keeps failing instead of hammering it.
type Breaker struct {
	provider Provider
	circuit  *gobreaker.CircuitBreaker
}

// NewBreaker returns a circuit-breaking Provider around the given provider.
func NewBreaker(provider Provider) *Breaker {
	circuit := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        provider.Name(),
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
	return &Breaker{provider: provider, circuit: circuit}
}

func (b *Breaker) Name() string {
	return b.provider.Name() + " (circuit breaker)"
}

func (b *Breaker) Fetch(ctx context.Context, coords Coordinate) (*Series, error) {
	result, err := b.circuit.Execute(func() (any, error) {
		return b.provider.Fetch(ctx, coords)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrProviderFailure, err)
	}
	series, ok := result.(*Series)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected result type from circuit breaker", ErrProviderFailure)
	}
	return series, nil
}
