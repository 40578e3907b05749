// SPDX-FileCopyrightText: The skycast authors
//
// SPDX-License-Identifier: MIT

package gpsd

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/rayfon/skycast/internal/location"
	"github.com/rayfon/skycast/internal/logger"
	"github.com/rayfon/skycast/internal/weather"
)

type fallbackSource struct {
	coords weather.Coordinate
	calls  int
}

func (f *fallbackSource) Name() string { return "fallback" }

func (f *fallbackSource) Locate(_ context.Context) (weather.Coordinate, error) {
	f.calls++
	return f.coords, nil
}

func TestLocate(t *testing.T) {
	t.Run("unreachable gpsd is not a permission failure", func(t *testing.T) {
		source := New()
		source.addr = "127.0.0.1:1"

		_, err := source.Locate(t.Context())
		if err == nil {
			t.Fatal("expected an error from an unreachable gpsd")
		}
		if errors.Is(err, location.ErrNoPermission) {
			t.Errorf("expected no permission error for a refused connection, got: %s", err)
		}
		if !errors.Is(err, location.ErrNoLocation) {
			t.Errorf("expected error to wrap ErrNoLocation, got: %s", err)
		}
	})
	t.Run("chain falls through to the next source", func(t *testing.T) {
		source := New()
		source.addr = "127.0.0.1:1"
		tokyo := weather.Coordinate{Lat: 35.6762, Lon: 139.6503}
		fallback := &fallbackSource{coords: tokyo}

		chain := location.NewChain(logger.New(slog.LevelError), source, fallback)
		coords, err := chain.Locate(t.Context())
		if err != nil {
			t.Fatalf("failed to locate: %s", err)
		}
		if coords != tokyo {
			t.Errorf("expected coordinate %+v, got %+v", tokyo, coords)
		}
		if fallback.calls != 1 {
			t.Errorf("expected fallback source to be called once, got %d calls", fallback.calls)
		}
	})
}
