// SPDX-FileCopyrightText: The skycast authors
//
// SPDX-License-Identifier: MIT

// Package httpapi exposes the weather snapshot and forecast window as a small
// JSON-over-HTTP API for mobile, web and CLI clients.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/rayfon/skycast/internal/logger"
	"github.com/rayfon/skycast/internal/state"
	"github.com/rayfon/skycast/internal/weather"
)

type Server struct {
	store *state.Store
	log   *logger.Logger
}

func NewServer(store *state.Store, log *logger.Logger) *Server {
	return &Server{store: store, log: log}
}

// Handler builds the API router including middleware and CORS policy.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	s.RegisterRoutes(r)
	return r
}

func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/weather", s.handleSnapshot)
	r.Get("/weather/hourly", s.handleHourly)
	r.Get("/cities", s.handleCities)
	r.Post("/weather/city/{name}", s.handleLoadCity)
	r.Post("/weather/coordinate", s.handleLoadCoordinate)
	r.Post("/weather/locate", s.handleLocate)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

// handleHourly returns the rolling 24-hour window as a plain array for frontend
// convenience.
func (s *Server) handleHourly(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.NextWindow())
}

func (s *Server) handleCities(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Cities())
}

func (s *Server) handleLoadCity(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.store.LoadByCity(r.Context(), name); err != nil {
		if errors.Is(err, state.ErrUnknownCity) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown city"})
			return
		}
		s.log.Error("failed to load weather for city", logger.Err(err))
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "failed to fetch weather data"})
		return
	}
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

func (s *Server) handleLoadCoordinate(w http.ResponseWriter, r *http.Request) {
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		writeJSON(w, http.StatusBadRequest,
			map[string]string{"error": "query parameters 'lat' and 'lon' are required floats"})
		return
	}
	coords := weather.Coordinate{Lat: lat, Lon: lon}
	if !coords.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "coordinate out of bounds"})
		return
	}

	if err := s.store.LoadByCoordinate(r.Context(), coords, r.URL.Query().Get("label")); err != nil {
		s.log.Error("failed to load weather for coordinate", logger.Err(err))
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "failed to fetch weather data"})
		return
	}
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

func (s *Server) handleLocate(w http.ResponseWriter, r *http.Request) {
	if err := s.store.LoadByLocation(r.Context()); err != nil {
		s.log.Error("failed to load weather for device location", logger.Err(err))
		// The snapshot carries the per-cause user-facing message.
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": s.store.Snapshot().ErrMessage})
		return
	}
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}
