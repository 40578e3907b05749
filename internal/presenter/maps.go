// SPDX-FileCopyrightText: The skycast authors
//
// SPDX-License-Identifier: MIT

package presenter

import "github.com/rayfon/skycast/internal/weather"

// iconGlyphs maps icon categories to single emoji glyphs for terminal output.
var iconGlyphs = map[weather.Icon]string{
	weather.IconClearDay:     "☀️",
	weather.IconClearNight:   "🌙",
	weather.IconCloudyDay:    "⛅",
	weather.IconCloudyNight:  "☁️",
	weather.IconFog:          "🌫️",
	weather.IconRain:         "🌧️",
	weather.IconSnow:         "🌨️",
	weather.IconThunderstorm: "⛈️",
}

// Glyph returns the terminal glyph for an icon category.
func Glyph(icon weather.Icon) string {
	if glyph, ok := iconGlyphs[icon]; ok {
		return glyph
	}
	return "?"
}
