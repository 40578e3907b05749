// SPDX-FileCopyrightText: The skycast authors
//
// SPDX-License-Identifier: MIT

// Package static serves a fixed, configured coordinate as a location source.
package static

import (
	"context"
	"fmt"

	"github.com/rayfon/skycast/internal/location"
	"github.com/rayfon/skycast/internal/weather"
)

type StaticSource struct {
	name   string
	coords weather.Coordinate
}

func New(coords weather.Coordinate) *StaticSource {
	return &StaticSource{name: "static", coords: coords}
}

func (s *StaticSource) Name() string {
	return s.name
}

func (s *StaticSource) Locate(_ context.Context) (weather.Coordinate, error) {
	if !s.coords.Valid() {
		return weather.Coordinate{}, fmt.Errorf("configured coordinate is out of bounds: %w",
			location.ErrNoLocation)
	}
	return s.coords, nil
}
