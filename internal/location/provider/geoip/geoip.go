// SPDX-FileCopyrightText: The skycast authors
//
// SPDX-License-Identifier: MIT

// Package geoip derives an approximate position from the caller's public IP.
package geoip

import (
	"context"
	"fmt"
	"time"

	"github.com/rayfon/skycast/internal/http"
	"github.com/rayfon/skycast/internal/location"
	"github.com/rayfon/skycast/internal/weather"
)

const (
	apiEndpoint   = "https://reallyfreegeoip.org/json/"
	lookupTimeout = time.Second * 5
)

type GeoIPSource struct {
	name     string
	endpoint string
	http     *http.Client
}

type apiResult struct {
	IP          string  `json:"ip"`
	CountryCode string  `json:"country_code"`
	Country     string  `json:"country_name"`
	Region      string  `json:"region_name,omitempty"`
	City        string  `json:"city,omitempty"`
	TimeZone    string  `json:"time_zone"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

func New(http *http.Client) *GeoIPSource {
	return &GeoIPSource{
		name:     "geoip",
		endpoint: apiEndpoint,
		http:     http,
	}
}

func (s *GeoIPSource) Name() string {
	return s.name
}

// Locate performs a single GeoIP lookup. The precision is city-level at best, which
// is good enough for weather data.
func (s *GeoIPSource) Locate(ctx context.Context) (weather.Coordinate, error) {
	ctxHTTP, cancelHTTP := context.WithTimeout(ctx, lookupTimeout)
	defer cancelHTTP()

	result := new(apiResult)
	if _, err := s.http.Get(ctxHTTP, s.endpoint, result, nil); err != nil {
		return weather.Coordinate{}, fmt.Errorf("failed to get geolocation data from API: %w", err)
	}
	if result.CountryCode == "" && result.Latitude == 0 && result.Longitude == 0 {
		return weather.Coordinate{}, fmt.Errorf("GeoIP lookup produced no position: %w", location.ErrNoLocation)
	}

	return weather.Coordinate{Lat: result.Latitude, Lon: result.Longitude}, nil
}
