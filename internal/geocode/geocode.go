// SPDX-FileCopyrightText: The skycast authors
//
// SPDX-License-Identifier: MIT

// Package geocode resolves coordinates to display labels via reverse geocoding.
package geocode

import (
	"context"

	"github.com/rayfon/skycast/internal/weather"
)

// UnknownLocation is the display label used when no place could be resolved.
const UnknownLocation = "Unknown Location"

// Place is the result of a reverse geocoding lookup.
type Place struct {
	Found       bool
	DisplayName string
	City        string
	Country     string

	CacheHit bool
}

// Label returns the place's display label, preferring the city name and falling
// back to UnknownLocation when nothing was resolved.
func (p Place) Label() string {
	if p.City != "" {
		return p.City
	}
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return UnknownLocation
}

type Geocoder interface {
	Name() string
	Reverse(ctx context.Context, coords weather.Coordinate) (Place, error)
}
