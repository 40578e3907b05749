// SPDX-FileCopyrightText: The skycast authors
//
// SPDX-License-Identifier: MIT

// Package location acquires the device's geographic coordinate from one of
// several sources.
package location

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rayfon/skycast/internal/logger"
	"github.com/rayfon/skycast/internal/weather"
)

var (
	// ErrNoLocation indicates that no source could produce a usable coordinate.
	ErrNoLocation = errors.New("no location available")
	// ErrNoPermission indicates that access to a location device was denied.
	ErrNoPermission = errors.New("location permission not granted")
)

// Source is implemented by each geolocation backend.
type Source interface {
	Name() string
	Locate(ctx context.Context) (weather.Coordinate, error)
}

// Chain tries a list of sources in order and returns the first coordinate one of
// them produces.
type Chain struct {
	log     *logger.Logger
	sources []Source
}

func NewChain(log *logger.Logger, sources ...Source) *Chain {
	return &Chain{log: log, sources: sources}
}

func (c *Chain) Name() string {
	return "chain"
}

// Locate walks the configured sources. A source failure is logged and the next
// source is tried; a permission failure is sticky and returned as-is so the caller
// can report the cause. When every source fails, ErrNoLocation is returned.
func (c *Chain) Locate(ctx context.Context) (weather.Coordinate, error) {
	if len(c.sources) == 0 {
		return weather.Coordinate{}, ErrNoLocation
	}

	for _, source := range c.sources {
		coords, err := source.Locate(ctx)
		if err != nil {
			if errors.Is(err, ErrNoPermission) {
				return weather.Coordinate{}, err
			}
			c.log.Debug("location source failed", slog.String("source", source.Name()), logger.Err(err))
			continue
		}
		if !coords.Valid() {
			c.log.Debug("location source returned an invalid coordinate",
				slog.String("source", source.Name()), slog.Float64("lat", coords.Lat),
				slog.Float64("lon", coords.Lon))
			continue
		}
		return coords, nil
	}

	return weather.Coordinate{}, fmt.Errorf("all location sources failed: %w", ErrNoLocation)
}
