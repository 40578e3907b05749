// SPDX-FileCopyrightText: The skycast authors
//
// SPDX-License-Identifier: MIT

// Package service wires configuration, weather provider, geocoder, geolocation
// and the HTTP API into a runnable daemon.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/rayfon/skycast/internal/config"
	"github.com/rayfon/skycast/internal/geocode"
	"github.com/rayfon/skycast/internal/geocode/provider/nominatim"
	"github.com/rayfon/skycast/internal/http"
	"github.com/rayfon/skycast/internal/httpapi"
	"github.com/rayfon/skycast/internal/location"
	"github.com/rayfon/skycast/internal/location/provider/geoip"
	"github.com/rayfon/skycast/internal/location/provider/gpsd"
	"github.com/rayfon/skycast/internal/location/provider/static"
	"github.com/rayfon/skycast/internal/logger"
	"github.com/rayfon/skycast/internal/state"
	"github.com/rayfon/skycast/internal/weather"
	"github.com/rayfon/skycast/internal/weather/provider/openmeteo"
)

const (
	geocodeHitTTL  = 6 * time.Hour
	geocodeMissTTL = 10 * time.Minute

	shutdownTimeout = 5 * time.Second
)

type Service struct {
	config    *config.Config
	logger    *logger.Logger
	scheduler gocron.Scheduler
	store     *state.Store
	server    *nethttp.Server
}

func New(conf *config.Config, log *logger.Logger) (*Service, error) {
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	httpClient := http.New(log)
	provider, err := openmeteo.New(httpClient, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create Open-Meteo provider: %w", err)
	}
	guarded := weather.NewRateLimited(weather.NewBreaker(provider),
		conf.Weather.RequestsPerSecond, conf.Weather.Burst)

	geocoder := geocode.NewCachedGeocoder(nominatim.New(httpClient, conf.LocaleTag()),
		geocodeHitTTL, geocodeMissTTL)

	store := state.New(log, guarded, geocoder, createLocationSource(conf, log, httpClient))

	service := &Service{
		config:    conf,
		logger:    log,
		scheduler: scheduler,
		store:     store,
		server: &nethttp.Server{
			Addr:              conf.Server.ListenAddr,
			Handler:           httpapi.NewServer(store, log).Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
	return service, nil
}

// Store exposes the application state, mainly for the one-shot CLI mode.
func (s *Service) Store() *state.Store {
	return s.store
}

// Run loads the initial city, starts the refresh scheduler and the HTTP API,
// and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	// An empty default city starts the daemon without weather data until a
	// client triggers a load.
	if s.config.DefaultCity != "" {
		if err := s.store.LoadByCity(ctx, s.config.DefaultCity); err != nil {
			// A failed initial fetch is recoverable, the refresh job retries.
			s.logger.Error("failed to load initial city", logger.Err(err),
				slog.String("city", s.config.DefaultCity))
			if errors.Is(err, state.ErrUnknownCity) {
				return fmt.Errorf("unknown default city %q", s.config.DefaultCity)
			}
		}
	}

	if err := s.createScheduledJob(ctx, s.config.Intervals.WeatherUpdate, s.refreshWeather,
		"weather_refresh_job"); err != nil {
		return err
	}
	s.scheduler.Start()

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("http api listening", slog.String("addr", s.server.Addr))
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		_ = s.scheduler.Shutdown()
		return fmt.Errorf("http api failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("failed to shut down http api", logger.Err(err))
	}
	return s.scheduler.Shutdown()
}

func (s *Service) createScheduledJob(ctx context.Context, interval time.Duration,
	task func(context.Context), jobName string,
) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithContext(ctx),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName(jobName),
	)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", jobName, err)
	}
	return nil
}

func (s *Service) refreshWeather(ctx context.Context) {
	if err := s.store.Refresh(ctx); err != nil {
		s.logger.Error("failed to refresh weather data", logger.Err(err))
	}
}

func createLocationSource(conf *config.Config, log *logger.Logger, httpClient *http.Client) location.Source {
	var sources []location.Source

	if conf.GeoLocation.Static.Enabled {
		sources = append(sources, static.New(weather.Coordinate{
			Lat: conf.GeoLocation.Static.Latitude,
			Lon: conf.GeoLocation.Static.Longitude,
		}))
	}
	if !conf.GeoLocation.DisableGPSD {
		sources = append(sources, gpsd.New())
	}
	if !conf.GeoLocation.DisableGeoIP {
		sources = append(sources, geoip.New(httpClient))
	}

	if len(sources) == 0 {
		return nil
	}
	return location.NewChain(log, sources...)
}
