// SPDX-FileCopyrightText: The skycast authors
//
// SPDX-License-Identifier: MIT

package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rayfon/skycast/internal/logger"
	"github.com/rayfon/skycast/internal/state"
	"github.com/rayfon/skycast/internal/weather"
)

type fakeProvider struct {
	series *weather.Series
	err    error
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Fetch(_ context.Context, _ weather.Coordinate) (*weather.Series, error) {
	return p.series, p.err
}

func testSeries() *weather.Series {
	hourly := make([]weather.HourlyItem, 0, 48)
	for _, ts := range []string{"2025-06-15T00:00", "2025-06-15T01:00", "2025-06-15T02:00"} {
		hourly = append(hourly, weather.HourlyItem{Time: ts, Temperature: 16.0, IsDay: 1})
	}
	return &weather.Series{
		Current:  weather.Current{Temperature: 21.4, WeatherCode: 61, WindSpeed: 12.3},
		Daily:    weather.Daily{TemperatureMax: []float64{24.1}, TemperatureMin: []float64{15.9}},
		Hourly:   hourly,
		Timezone: "Europe/Istanbul",
	}
}

func newTestServer(t *testing.T, provider weather.Provider) *httptest.Server {
	t.Helper()
	log := logger.New(slog.LevelError)
	store := state.New(log, provider, nil, nil)
	server := httptest.NewServer(NewServer(store, log).Handler())
	t.Cleanup(server.Close)
	return server
}

func decodeBody(t *testing.T, res *http.Response, target any) {
	t.Helper()
	defer func() { _ = res.Body.Close() }()
	if err := json.NewDecoder(res.Body).Decode(target); err != nil {
		t.Fatalf("failed to decode response body: %s", err)
	}
}

func TestHealth(t *testing.T) {
	server := newTestServer(t, &fakeProvider{})
	res, err := http.Get(server.URL + "/health")
	if err != nil {
		t.Fatalf("failed to request health endpoint: %s", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, res.StatusCode)
	}
}

func TestCities(t *testing.T) {
	server := newTestServer(t, &fakeProvider{})
	res, err := http.Get(server.URL + "/cities")
	if err != nil {
		t.Fatalf("failed to request cities endpoint: %s", err)
	}

	var cities []string
	decodeBody(t, res, &cities)
	if len(cities) != 6 {
		t.Errorf("expected 6 cities, got %d", len(cities))
	}
	if cities[0] != "Istanbul" {
		t.Errorf("expected first city %q, got %q", "Istanbul", cities[0])
	}
}

func TestLoadCity(t *testing.T) {
	t.Run("loading a bundled city returns the fresh snapshot", func(t *testing.T) {
		server := newTestServer(t, &fakeProvider{series: testSeries()})
		res, err := http.Post(server.URL+"/weather/city/Paris", "application/json", nil)
		if err != nil {
			t.Fatalf("failed to request city load: %s", err)
		}
		if res.StatusCode != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, res.StatusCode)
		}

		var snap state.Snapshot
		decodeBody(t, res, &snap)
		if snap.City != "Paris" {
			t.Errorf("expected city %q, got %q", "Paris", snap.City)
		}
		if snap.Temperature != "21°C" {
			t.Errorf("expected temperature %q, got %q", "21°C", snap.Temperature)
		}
	})

	t.Run("unknown city yields 404", func(t *testing.T) {
		server := newTestServer(t, &fakeProvider{series: testSeries()})
		res, err := http.Post(server.URL+"/weather/city/Atlantis", "application/json", nil)
		if err != nil {
			t.Fatalf("failed to request city load: %s", err)
		}
		defer func() { _ = res.Body.Close() }()
		if res.StatusCode != http.StatusNotFound {
			t.Errorf("expected status %d, got %d", http.StatusNotFound, res.StatusCode)
		}
	})

	t.Run("provider failure yields 502", func(t *testing.T) {
		server := newTestServer(t, &fakeProvider{err: weather.ErrProviderFailure})
		res, err := http.Post(server.URL+"/weather/city/Paris", "application/json", nil)
		if err != nil {
			t.Fatalf("failed to request city load: %s", err)
		}
		defer func() { _ = res.Body.Close() }()
		if res.StatusCode != http.StatusBadGateway {
			t.Errorf("expected status %d, got %d", http.StatusBadGateway, res.StatusCode)
		}
	})
}

func TestLoadCoordinate(t *testing.T) {
	t.Run("valid coordinate loads the snapshot", func(t *testing.T) {
		server := newTestServer(t, &fakeProvider{series: testSeries()})
		res, err := http.Post(server.URL+"/weather/coordinate?lat=52.52&lon=13.405&label=Berlin",
			"application/json", nil)
		if err != nil {
			t.Fatalf("failed to request coordinate load: %s", err)
		}
		if res.StatusCode != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, res.StatusCode)
		}

		var snap state.Snapshot
		decodeBody(t, res, &snap)
		if snap.City != "Berlin" {
			t.Errorf("expected city %q, got %q", "Berlin", snap.City)
		}
	})

	t.Run("missing or malformed coordinates yield 400", func(t *testing.T) {
		server := newTestServer(t, &fakeProvider{series: testSeries()})
		for _, path := range []string{
			"/weather/coordinate",
			"/weather/coordinate?lat=52.52",
			"/weather/coordinate?lat=abc&lon=13.405",
			"/weather/coordinate?lat=91&lon=200",
		} {
			res, err := http.Post(server.URL+path, "application/json", nil)
			if err != nil {
				t.Fatalf("failed to request coordinate load: %s", err)
			}
			_ = res.Body.Close()
			if res.StatusCode != http.StatusBadRequest {
				t.Errorf("%s: expected status %d, got %d", path, http.StatusBadRequest, res.StatusCode)
			}
		}
	})
}

func TestHourly(t *testing.T) {
	t.Run("window is empty before any load", func(t *testing.T) {
		server := newTestServer(t, &fakeProvider{series: testSeries()})
		res, err := http.Get(server.URL + "/weather/hourly")
		if err != nil {
			t.Fatalf("failed to request hourly window: %s", err)
		}

		var window []weather.HourlyItem
		decodeBody(t, res, &window)
		if len(window) != 0 {
			t.Errorf("expected empty window, got %d elements", len(window))
		}
	})

	t.Run("window carries 24 hours after a load", func(t *testing.T) {
		server := newTestServer(t, &fakeProvider{series: testSeries()})
		res, err := http.Post(server.URL+"/weather/city/London", "application/json", nil)
		if err != nil {
			t.Fatalf("failed to request city load: %s", err)
		}
		_ = res.Body.Close()

		res, err = http.Get(server.URL + "/weather/hourly")
		if err != nil {
			t.Fatalf("failed to request hourly window: %s", err)
		}
		var window []weather.HourlyItem
		decodeBody(t, res, &window)
		if len(window) != weather.WindowSize {
			t.Errorf("expected %d window elements, got %d", weather.WindowSize, len(window))
		}
	})
}

func TestLocate(t *testing.T) {
	t.Run("locate without a location source yields 502", func(t *testing.T) {
		server := newTestServer(t, &fakeProvider{series: testSeries()})
		res, err := http.Post(server.URL+"/weather/locate", "application/json", nil)
		if err != nil {
			t.Fatalf("failed to request locate: %s", err)
		}
		if res.StatusCode != http.StatusBadGateway {
			t.Fatalf("expected status %d, got %d", http.StatusBadGateway, res.StatusCode)
		}

		var body map[string]string
		decodeBody(t, res, &body)
		if body["error"] != "Location permission is required" {
			t.Errorf("unexpected error message: %q", body["error"])
		}
	})
}
