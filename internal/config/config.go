// SPDX-FileCopyrightText: The skycast authors
//
// SPDX-License-Identifier: MIT

// Package config loads and validates the skycast service configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"time"

	"github.com/Xuanwo/go-locale"
	"github.com/kkyr/fig"
	"golang.org/x/text/language"
)

const configEnv = "SKYCAST"

// Config represents the application's configuration structure.
type Config struct {
	LogLevel slog.Level `fig:"loglevel" default:"0"`
	// Locale used for geocoder results (for example "en" or "de-DE"); detected
	// from the environment when empty.
	Locale string `fig:"locale"`

	// DefaultCity is loaded at startup. Must be one of the bundled city names, or
	// empty to start without weather data until a client triggers a load.
	DefaultCity string `fig:"default_city" default:"Istanbul"`

	Intervals struct {
		WeatherUpdate time.Duration `fig:"weather_update" default:"15m"`
	} `fig:"intervals"`

	Weather struct {
		// Client-side limit towards the weather API.
		RequestsPerSecond float64 `fig:"requests_per_second" default:"1"`
		Burst             int     `fig:"burst" default:"3"`
	} `fig:"weather"`

	Server struct {
		ListenAddr string `fig:"listen_addr" default:"localhost:8765"`
	} `fig:"server"`

	GeoLocation struct {
		DisableGPSD  bool `fig:"disable_gpsd"`
		DisableGeoIP bool `fig:"disable_geoip"`

		Static struct {
			Enabled   bool    `fig:"enabled"`
			Latitude  float64 `fig:"latitude"`
			Longitude float64 `fig:"longitude"`
		} `fig:"static"`
	} `fig:"geolocation"`
}

func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)
	_, err := os.Stat(filepath.Join(path, file))
	if err != nil {
		return conf, fmt.Errorf("failed to read Config: %w", err)
	}
	if err = fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func New() (*Config, error) {
	conf := new(Config)
	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func (c *Config) Validate() error {
	if c.Weather.RequestsPerSecond <= 0 {
		return fmt.Errorf("invalid weather request rate: %f", c.Weather.RequestsPerSecond)
	}
	if c.Weather.Burst < 1 {
		return fmt.Errorf("invalid weather request burst: %d", c.Weather.Burst)
	}
	if c.Intervals.WeatherUpdate <= 0 {
		return fmt.Errorf("invalid weather update interval: %s", c.Intervals.WeatherUpdate)
	}
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("server listen address must not be empty")
	}

	return nil
}

// LocaleTag resolves the configured locale to a language tag, falling back to the
// system locale and finally to English.
func (c *Config) LocaleTag() language.Tag {
	if c.Locale != "" {
		return language.Make(c.Locale)
	}
	tag, err := locale.Detect()
	if err != nil {
		return language.English
	}
	return tag
}
