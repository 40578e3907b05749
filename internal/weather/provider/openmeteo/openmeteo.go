// SPDX-FileCopyrightText: The skycast authors
//
// SPDX-License-Identifier: MIT

// Package openmeteo implements the weather.Provider interface on top of the
// Open-Meteo forecast API.
package openmeteo

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rayfon/skycast/internal/http"
	"github.com/rayfon/skycast/internal/logger"
	"github.com/rayfon/skycast/internal/weather"
)

const (
	name        = "open-meteo"
	apiEndpoint = "https://api.open-meteo.com/v1/forecast"
	apiTimeout  = time.Second * 10
)

// The requested metric sets are fixed. The hourly timestamps come back as local
// time strings because of timezone=auto, which the window computation relies on.
var (
	currentFields = []string{
		"temperature_2m", "weather_code", "precipitation_probability", "wind_speed_10m",
		"relative_humidity_2m",
	}
	hourlyFields = []string{"temperature_2m", "precipitation_probability", "weather_code", "is_day"}
	dailyFields  = []string{"temperature_2m_max", "temperature_2m_min"}
)

type OpenMeteo struct {
	endpoint string
	log      *logger.Logger
	http     *http.Client
}

type response struct {
	Timezone string `json:"timezone"`
	Current  struct {
		Temperature              float64 `json:"temperature_2m"`
		WeatherCode              int     `json:"weather_code"`
		PrecipitationProbability float64 `json:"precipitation_probability"`
		WindSpeed                float64 `json:"wind_speed_10m"`
		Humidity                 float64 `json:"relative_humidity_2m"`
	} `json:"current"`
	Daily struct {
		TemperatureMax []float64 `json:"temperature_2m_max"`
		TemperatureMin []float64 `json:"temperature_2m_min"`
	} `json:"daily"`
	Hourly struct {
		Time                     []string  `json:"time"`
		Temperature              []float64 `json:"temperature_2m"`
		PrecipitationProbability []float64 `json:"precipitation_probability"`
		WeatherCode              []int     `json:"weather_code"`
		IsDay                    []int     `json:"is_day"`
	} `json:"hourly"`
}

func New(http *http.Client, log *logger.Logger) (*OpenMeteo, error) {
	if http == nil {
		return nil, fmt.Errorf("http client is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return &OpenMeteo{endpoint: apiEndpoint, http: http, log: log}, nil
}

func (o *OpenMeteo) Name() string {
	return name
}

// Fetch requests the current, hourly and daily weather for the given coordinate and
// shapes the response into a weather.Series. It performs no retries.
func (o *OpenMeteo) Fetch(ctx context.Context, coords weather.Coordinate) (*weather.Series, error) {
	res := new(response)

	query := url.Values{}
	query.Set("latitude", fmt.Sprintf("%f", coords.Lat))
	query.Set("longitude", fmt.Sprintf("%f", coords.Lon))
	query.Set("current", strings.Join(currentFields, ","))
	query.Set("hourly", strings.Join(hourlyFields, ","))
	query.Set("daily", strings.Join(dailyFields, ","))
	query.Set("timezone", "auto")

	code, err := o.http.GetWithTimeout(ctx, o.endpoint, res, query, nil, apiTimeout)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to retrieve weather data from Open-Meteo API: %s",
			weather.ErrProviderFailure, err)
	}
	if code != 200 {
		return nil, fmt.Errorf("%w: Open-Meteo API returned non-positive response code: %d",
			weather.ErrProviderFailure, code)
	}

	hourly, err := zipHourly(res)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", weather.ErrProviderFailure, err)
	}

	series := &weather.Series{
		Current: weather.Current{
			Temperature:              res.Current.Temperature,
			WeatherCode:              res.Current.WeatherCode,
			PrecipitationProbability: res.Current.PrecipitationProbability,
			WindSpeed:                res.Current.WindSpeed,
			Humidity:                 res.Current.Humidity,
		},
		Daily: weather.Daily{
			TemperatureMax: res.Daily.TemperatureMax,
			TemperatureMin: res.Daily.TemperatureMin,
		},
		Hourly:   hourly,
		Timezone: res.Timezone,
	}
	return series, nil
}

// zipHourly folds the parallel hourly arrays of the API response into one item per
// index. All arrays must carry one entry per timestamp.
func zipHourly(res *response) ([]weather.HourlyItem, error) {
	count := len(res.Hourly.Time)
	if len(res.Hourly.Temperature) != count || len(res.Hourly.PrecipitationProbability) != count ||
		len(res.Hourly.WeatherCode) != count || len(res.Hourly.IsDay) != count {
		return nil, fmt.Errorf("hourly arrays are not aligned: %d timestamps, %d/%d/%d/%d values",
			count, len(res.Hourly.Temperature), len(res.Hourly.PrecipitationProbability),
			len(res.Hourly.WeatherCode), len(res.Hourly.IsDay))
	}

	hourly := make([]weather.HourlyItem, 0, count)
	for i := 0; i < count; i++ {
		hourly = append(hourly, weather.HourlyItem{
			Time:                     res.Hourly.Time[i],
			Temperature:              res.Hourly.Temperature[i],
			PrecipitationProbability: res.Hourly.PrecipitationProbability[i],
			WeatherCode:              res.Hourly.WeatherCode[i],
			IsDay:                    res.Hourly.IsDay[i],
		})
	}
	return hourly, nil
}
