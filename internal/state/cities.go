// SPDX-FileCopyrightText: The skycast authors
//
// SPDX-License-Identifier: MIT

package state

import "github.com/rayfon/skycast/internal/weather"

// The bundled city table offered to selection UIs.
var (
	cityOrder = []string{"Istanbul", "Paris", "Berlin", "London", "Tokyo", "New York"}

	cityCoordinates = map[string]weather.Coordinate{
		"Istanbul": {Lat: 41.0082, Lon: 28.9784},
		"Paris":    {Lat: 48.8566, Lon: 2.3522},
		"Berlin":   {Lat: 52.5200, Lon: 13.4050},
		"London":   {Lat: 51.5072, Lon: -0.1276},
		"Tokyo":    {Lat: 35.6762, Lon: 139.6503},
		"New York": {Lat: 40.7128, Lon: -74.0060},
	}
)
