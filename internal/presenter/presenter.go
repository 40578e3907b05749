// SPDX-FileCopyrightText: The skycast authors
//
// SPDX-License-Identifier: MIT

// Package presenter renders the weather snapshot and forecast window as plain
// text for the one-shot CLI mode.
package presenter

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/rayfon/skycast/internal/state"
	"github.com/rayfon/skycast/internal/weather"
)

type Presenter struct {
	out io.Writer
}

func New(out io.Writer) *Presenter {
	return &Presenter{out: out}
}

// RenderSnapshot writes the snapshot header: city, current conditions and the
// daily high/low.
func (p *Presenter) RenderSnapshot(snap state.Snapshot) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", snap.City, snap.Description)
	fmt.Fprintf(&b, "%s (high %s / low %s)\n", snap.Temperature, snap.HighTemperature,
		snap.LowTemperature)
	fmt.Fprintf(&b, "Wind %s, humidity %s, precipitation %s\n", snap.WindSpeed, snap.Humidity,
		snap.PrecipitationProbability)
	if !snap.Sunrise.IsZero() {
		fmt.Fprintf(&b, "Sunrise %s, sunset %s, %s\n", snap.Sunrise.Format("15:04"),
			snap.Sunset.Format("15:04"), snap.Moonphase)
	}
	if snap.ErrMessage != "" {
		fmt.Fprintf(&b, "! %s\n", snap.ErrMessage)
	}

	_, err := io.WriteString(p.out, b.String())
	return err
}

// RenderWindow writes the forecast window as an aligned table, one row per hour.
// Emoji glyphs have ambiguous terminal widths, so columns are padded with
// go-runewidth rather than fmt verbs.
func (p *Presenter) RenderWindow(window []weather.HourlyItem) error {
	var b strings.Builder
	for _, hour := range window {
		glyph := Glyph(weather.ClassifyIcon(hour.WeatherCode, hour.IsDay))
		fmt.Fprintf(&b, "%s  %s %s %s\n",
			hourLabel(hour.Time),
			runewidth.FillRight(glyph, 3),
			runewidth.FillLeft(fmt.Sprintf("%d°C", int(hour.Temperature)), 6),
			runewidth.FillLeft(fmt.Sprintf("%d%%", int(hour.PrecipitationProbability)), 5),
		)
	}

	_, err := io.WriteString(p.out, b.String())
	return err
}

// hourLabel extracts the HH:MM part of a provider-local timestamp.
func hourLabel(ts string) string {
	if len(ts) >= 16 {
		return ts[11:16]
	}
	return ts
}
