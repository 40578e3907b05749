// SPDX-FileCopyrightText: The skycast authors
//
// SPDX-License-Identifier: MIT

package weather

import (
	"context"
	"errors"
	"testing"
)

type stubProvider struct {
	series *Series
	err    error
	calls  int
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Fetch(_ context.Context, _ Coordinate) (*Series, error) {
	s.calls++
	return s.series, s.err
}

func TestRateLimited(t *testing.T) {
	t.Run("forwards to the underlying provider", func(t *testing.T) {
		stub := &stubProvider{series: &Series{Timezone: "UTC"}}
		limited := NewRateLimited(stub, 1, 1)
		series, err := limited.Fetch(t.Context(), Coordinate{Lat: 41.0082, Lon: 28.9784})
		if err != nil {
			t.Fatalf("failed to fetch through rate limiter: %s", err)
		}
		if series.Timezone != "UTC" {
			t.Errorf("expected timezone %q, got %q", "UTC", series.Timezone)
		}
		if stub.calls != 1 {
			t.Errorf("expected 1 provider call, got %d", stub.calls)
		}
	})

	t.Run("canceled context aborts the wait", func(t *testing.T) {
		stub := &stubProvider{series: &Series{}}
		limited := NewRateLimited(stub, 0.001, 1)
		ctx, cancel := context.WithCancel(t.Context())

		// Drain the single burst token, then cancel while the second call waits.
		if _, err := limited.Fetch(ctx, Coordinate{}); err != nil {
			t.Fatalf("first fetch should pass the limiter: %s", err)
		}
		cancel()
		if _, err := limited.Fetch(ctx, Coordinate{}); err == nil {
			t.Error("expected second fetch to fail on canceled context")
		}
	})
}

func TestBreaker(t *testing.T) {
	t.Run("forwards successful results", func(t *testing.T) {
		stub := &stubProvider{series: &Series{Timezone: "Europe/Berlin"}}
		breaker := NewBreaker(stub)
		series, err := breaker.Fetch(t.Context(), Coordinate{Lat: 52.52, Lon: 13.405})
		if err != nil {
			t.Fatalf("failed to fetch through circuit breaker: %s", err)
		}
		if series.Timezone != "Europe/Berlin" {
			t.Errorf("expected timezone %q, got %q", "Europe/Berlin", series.Timezone)
		}
	})

	t.Run("wraps provider failures", func(t *testing.T) {
		stub := &stubProvider{err: errors.New("boom")}
		breaker := NewBreaker(stub)
		_, err := breaker.Fetch(t.Context(), Coordinate{})
		if err == nil {
			t.Fatal("expected fetch to fail")
		}
		if !errors.Is(err, ErrProviderFailure) {
			t.Errorf("expected error to wrap ErrProviderFailure, got: %s", err)
		}
	})

	t.Run("open circuit stops calling the provider", func(t *testing.T) {
		stub := &stubProvider{err: errors.New("boom")}
		breaker := NewBreaker(stub)
		for i := 0; i < 6; i++ {
			if _, err := breaker.Fetch(t.Context(), Coordinate{}); err == nil {
				t.Fatal("expected fetch to fail")
			}
		}
		calls := stub.calls
		if _, err := breaker.Fetch(t.Context(), Coordinate{}); err == nil {
			t.Fatal("expected fetch against open circuit to fail")
		}
		if stub.calls != calls {
			t.Errorf("expected open circuit to shed the request, provider was called %d times", stub.calls)
		}
	})
}
