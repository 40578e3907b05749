// SPDX-FileCopyrightText: The skycast authors
//
// SPDX-License-Identifier: MIT

// Package state holds the application's current best-known weather snapshot and
// orchestrates the weather, geocoding and location collaborators that feed it.
package state

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/wneessen/go-moonphase"

	"github.com/rayfon/skycast/internal/geocode"
	"github.com/rayfon/skycast/internal/location"
	"github.com/rayfon/skycast/internal/logger"
	"github.com/rayfon/skycast/internal/weather"
)

// ErrUnknownCity is returned when a city name is not in the bundled city table.
var ErrUnknownCity = errors.New("unknown city")

// User-visible failure messages. Collaborator errors never cross the snapshot
// boundary as anything richer than these strings.
const (
	msgFetchFailed      = "Failed to fetch weather data"
	msgNoLocation       = "Could not retrieve location."
	msgNoPermission     = "Location permission not granted."
	msgPermissionNeeded = "Location permission is required"
)

// Snapshot is the display-ready weather state. It is replaced wholesale on each
// successful fetch; a failed fetch only sets ErrMessage and leaves the previously
// displayed values as they were.
type Snapshot struct {
	City                     string               `json:"city"`
	Temperature              string               `json:"temperature"`
	HighTemperature          string               `json:"highTemperature"`
	LowTemperature           string               `json:"lowTemperature"`
	Description              string               `json:"weatherDescription"`
	PrecipitationProbability string               `json:"precipitationProbability"`
	WindSpeed                string               `json:"windSpeed"`
	Humidity                 string               `json:"humidity"`
	Timezone                 string               `json:"timezone"`
	Hourly                   []weather.HourlyItem `json:"hourlyForecast"`
	Sunrise                  time.Time            `json:"sunrise"`
	Sunset                   time.Time            `json:"sunset"`
	Moonphase                string               `json:"moonphase"`
	UpdatedAt                time.Time            `json:"updatedAt"`
	ErrMessage               string               `json:"errorMessage,omitempty"`
}

// Store owns the snapshot. All mutation goes through the Load* methods, which
// attach a monotonically increasing sequence number to each fetch and discard
// responses that would overwrite the result of a later fetch.
type Store struct {
	log      *logger.Logger
	provider weather.Provider
	geocoder geocode.Geocoder
	source   location.Source

	nextSeq atomic.Uint64

	mu         sync.RWMutex
	snapshot   Snapshot
	coords     weather.Coordinate
	haveCoords bool
	appliedSeq uint64
	subs       map[chan Snapshot]struct{}
}

// New returns a Store with placeholder display values. The location source may be
// nil when no location mechanism is available; LoadByLocation then reports the
// missing permission.
func New(log *logger.Logger, provider weather.Provider, geocoder geocode.Geocoder,
	source location.Source,
) *Store {
	return &Store{
		log:      log,
		provider: provider,
		geocoder: geocoder,
		source:   source,
		snapshot: Snapshot{
			Temperature:              "--",
			HighTemperature:          "--",
			LowTemperature:           "--",
			Description:              "...",
			PrecipitationProbability: "--",
			WindSpeed:                "--",
			Humidity:                 "--",
			Timezone:                 "UTC",
		},
		subs: make(map[chan Snapshot]struct{}),
	}
}

// Cities returns the bundled city names in their canonical order.
func (s *Store) Cities() []string {
	out := make([]string, len(cityOrder))
	copy(out, cityOrder)
	return out
}

// LoadByCity resolves one of the bundled city names and fetches its weather, using
// the city name as the display label. An unknown name performs no fetch, leaves
// the snapshot untouched and returns ErrUnknownCity.
func (s *Store) LoadByCity(ctx context.Context, name string) error {
	coords, ok := cityCoordinates[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCity, name)
	}
	return s.LoadByCoordinate(ctx, coords, name)
}

// LoadByCoordinate fetches the weather for the given coordinate and replaces the
// snapshot on success. An empty label retains the previously displayed city. On a
// provider failure only the snapshot's error message is set and the error is
// returned.
func (s *Store) LoadByCoordinate(ctx context.Context, coords weather.Coordinate, label string) error {
	if !coords.Valid() {
		return fmt.Errorf("coordinate out of bounds: %+v", coords)
	}

	seq := s.nextSeq.Add(1)
	series, err := s.provider.Fetch(ctx, coords)
	if err != nil {
		s.log.Error("failed to fetch weather data", logger.Err(err),
			slog.Float64("lat", coords.Lat), slog.Float64("lon", coords.Lon))
		s.applyError(seq, msgFetchFailed)
		return err
	}

	s.apply(seq, coords, label, series)
	return nil
}

// LoadByLocation acquires the device position from the location source, resolves a
// display label via reverse geocoding and fetches the weather for it.
func (s *Store) LoadByLocation(ctx context.Context) error {
	if s.source == nil {
		seq := s.nextSeq.Add(1)
		s.applyError(seq, msgPermissionNeeded)
		return location.ErrNoPermission
	}

	coords, err := s.source.Locate(ctx)
	if err != nil {
		seq := s.nextSeq.Add(1)
		msg := msgNoLocation
		if errors.Is(err, location.ErrNoPermission) {
			msg = msgNoPermission
		}
		s.log.Error("failed to acquire location", logger.Err(err))
		s.applyError(seq, msg)
		return err
	}

	label := geocode.UnknownLocation
	if s.geocoder != nil {
		place, err := s.geocoder.Reverse(ctx, coords)
		if err != nil {
			s.log.Warn("failed to reverse geocode location", logger.Err(err))
		} else {
			label = place.Label()
		}
	}

	return s.LoadByCoordinate(ctx, coords, label)
}

// Refresh re-fetches the weather for the most recently loaded coordinate. It is a
// no-op until a location or city has been loaded at least once.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.RLock()
	coords, ok := s.coords, s.haveCoords
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	return s.LoadByCoordinate(ctx, coords, "")
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySnapshot(s.snapshot)
}

// NextWindow computes the rolling 24-hour forecast window for the current
// snapshot. The result is recomputed on every call, not cached.
func (s *Store) NextWindow() []weather.HourlyItem {
	s.mu.RLock()
	hours, tz := s.snapshot.Hourly, s.snapshot.Timezone
	s.mu.RUnlock()
	return weather.NextWindow(hours, tz)
}

// Subscribe registers a publish-on-change observer. Every applied mutation,
// including error states, is sent to the returned channel; slow consumers miss
// updates instead of blocking the store. The unsubscribe function closes the
// channel and may be called more than once.
func (s *Store) Subscribe(buffer int) (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, buffer)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	var once sync.Once
	unsub := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, ch)
			s.mu.Unlock()
			close(ch)
		})
	}
	return ch, unsub
}

func (s *Store) apply(seq uint64, coords weather.Coordinate, label string, series *weather.Series) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq < s.appliedSeq {
		s.log.Debug("discarding stale weather response", slog.Uint64("seq", seq),
			slog.Uint64("applied", s.appliedSeq))
		return
	}
	s.appliedSeq = seq

	if label == "" {
		label = s.snapshot.City
	}

	now := time.Now()
	rise, set := sunrise.SunriseSunset(coords.Lat, coords.Lon, now.Year(), now.Month(), now.Day())
	moon := moonphase.New(now)

	timezone := series.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	snapshot := Snapshot{
		City:                     label,
		Temperature:              fmt.Sprintf("%d°C", int(series.Current.Temperature)),
		Description:              weather.Describe(series.Current.WeatherCode),
		PrecipitationProbability: fmt.Sprintf("%d%%", int(series.Current.PrecipitationProbability)),
		WindSpeed:                fmt.Sprintf("%.1f km/h", series.Current.WindSpeed),
		Humidity:                 fmt.Sprintf("%d%%", int(series.Current.Humidity)),
		HighTemperature:          "--",
		LowTemperature:           "--",
		Timezone:                 timezone,
		Hourly:                   series.Hourly,
		Sunrise:                  rise,
		Sunset:                   set,
		Moonphase:                moon.PhaseName(),
		UpdatedAt:                now,
	}
	if len(series.Daily.TemperatureMax) > 0 {
		snapshot.HighTemperature = fmt.Sprintf("%d°C", int(series.Daily.TemperatureMax[0]))
	}
	if len(series.Daily.TemperatureMin) > 0 {
		snapshot.LowTemperature = fmt.Sprintf("%d°C", int(series.Daily.TemperatureMin[0]))
	}

	s.snapshot = snapshot
	s.coords = coords
	s.haveCoords = true
	s.publish()
}

// applyError sets only the snapshot's error message, keeping stale-but-available
// display values in place.
func (s *Store) applyError(seq uint64, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq < s.appliedSeq {
		return
	}
	s.appliedSeq = seq
	s.snapshot.ErrMessage = msg
	s.publish()
}

// publish fans the current snapshot out to all subscribers. Callers must hold s.mu.
func (s *Store) publish() {
	for ch := range s.subs {
		select {
		case ch <- copySnapshot(s.snapshot):
		default:
		}
	}
}

func copySnapshot(snap Snapshot) Snapshot {
	out := snap
	out.Hourly = make([]weather.HourlyItem, len(snap.Hourly))
	copy(out.Hourly, snap.Hourly)
	return out
}
