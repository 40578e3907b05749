// SPDX-FileCopyrightText: The skycast authors
//
// SPDX-License-Identifier: MIT

// Package nominatim implements reverse geocoding against the OSM Nominatim API.
package nominatim

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"golang.org/x/text/language"

	"github.com/rayfon/skycast/internal/geocode"
	"github.com/rayfon/skycast/internal/http"
	"github.com/rayfon/skycast/internal/weather"
)

const (
	apiReverseEndpoint = "https://nominatim.openstreetmap.org/reverse"
	apiTimeout         = time.Second * 10
	name               = "osm-nominatim"
)

type Nominatim struct {
	endpoint string
	http     *http.Client
	lang     language.Tag
}

type reverseResult struct {
	APILat      string  `json:"lat"`
	APILon      string  `json:"lon"`
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Address     address `json:"address"`
}

type address struct {
	Municipality string `json:"municipality"`
	City         string `json:"city"`
	Town         string `json:"town"`
	Village      string `json:"village"`
	State        string `json:"state"`
	Country      string `json:"country"`
}

func New(client *http.Client, lang language.Tag) *Nominatim {
	return &Nominatim{
		endpoint: apiReverseEndpoint,
		lang:     lang,
		http:     client,
	}
}

func (n *Nominatim) Name() string {
	return name
}

// Reverse looks up the place at the given coordinate. A coordinate that resolves to
// no address is not an error; the returned place simply carries Found == false.
func (n *Nominatim) Reverse(ctx context.Context, coords weather.Coordinate) (geocode.Place, error) {
	var result reverseResult
	var place geocode.Place

	query := url.Values{}
	query.Set("format", "jsonv2")
	query.Set("lat", fmt.Sprintf("%f", coords.Lat))
	query.Set("lon", fmt.Sprintf("%f", coords.Lon))

	headers := map[string]string{"Accept-Language": n.lang.String()}
	code, err := n.http.GetWithTimeout(ctx, n.endpoint, &result, query, headers, apiTimeout)
	if err != nil {
		return place, fmt.Errorf("failed to reverse geocode via Nominatim API: %w", err)
	}
	if code != 200 {
		return place, fmt.Errorf("Nominatim API returned non-positive response code: %d", code)
	}
	if result.DisplayName == "" {
		return place, nil
	}

	place = geocode.Place{
		Found:       true,
		DisplayName: result.DisplayName,
		City:        cityOf(result.Address),
		Country:     result.Address.Country,
	}
	return place, nil
}

// cityOf picks the most city-like part of a Nominatim address.
func cityOf(addr address) string {
	for _, candidate := range []string{addr.City, addr.Town, addr.Village, addr.Municipality} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}
