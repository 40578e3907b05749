// SPDX-FileCopyrightText: The skycast authors
//
// SPDX-License-Identifier: MIT

// Package weather holds the skycast weather domain model: the series shape returned
// by forecast providers, the WMO condition mapping, and the rolling forecast window
// computation.
package weather

import (
	"context"
	"errors"
)

// ErrProviderFailure wraps any network, HTTP status or decoding failure of a
// weather provider.
var ErrProviderFailure = errors.New("weather provider request failed")

// Provider is implemented by each weather API backend.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, coords Coordinate) (*Series, error)
}

// Coordinate represents a geographic coordinate.
type Coordinate struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

// Valid checks if the coordinate is valid according to the EPSG logic
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Series is a single provider response: a current snapshot, per-day aggregates and
// the full hourly forecast, together with the IANA timezone the provider resolved
// for the requested coordinate.
type Series struct {
	Current  Current
	Daily    Daily
	Hourly   []HourlyItem
	Timezone string
}

// Current is the single-point condition snapshot of a Series.
type Current struct {
	Temperature              float64
	WeatherCode              int
	PrecipitationProbability float64
	WindSpeed                float64
	Humidity                 float64
}

// Daily holds per-day temperature aggregates, index 0 being today.
type Daily struct {
	TemperatureMax []float64
	TemperatureMin []float64
}

// HourlyItem is one hour of forecast data. Time is kept as the raw provider-local
// timestamp string so that the window computation can apply its own lenient parsing.
type HourlyItem struct {
	Time                     string  `json:"time"`
	Temperature              float64 `json:"temperature"`
	PrecipitationProbability float64 `json:"precipitationProbability"`
	WeatherCode              int     `json:"weatherCode"`
	IsDay                    int     `json:"isDay"`
}
