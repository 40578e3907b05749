// SPDX-FileCopyrightText: The skycast authors
//
// SPDX-License-Identifier: MIT

package weather

// Icon is a symbolic, day/night-aware classification of a weather condition, used
// by consumers to select a display glyph.
type Icon int

const (
	IconClearDay Icon = iota
	IconClearNight
	IconCloudyDay
	IconCloudyNight
	IconFog
	IconRain
	IconSnow
	IconThunderstorm
)

var iconNames = map[Icon]string{
	IconClearDay:     "clear-day",
	IconClearNight:   "clear-night",
	IconCloudyDay:    "cloudy-day",
	IconCloudyNight:  "cloudy-night",
	IconFog:          "fog",
	IconRain:         "rain",
	IconSnow:         "snow",
	IconThunderstorm: "thunderstorm",
}

func (i Icon) String() string {
	if name, ok := iconNames[i]; ok {
		return name
	}
	return "unknown"
}

// wmoConditions maps WMO weather code integers to their descriptions
var wmoConditions = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	56: "Light freezing drizzle",
	57: "Dense freezing drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	66: "Light freezing rain",
	67: "Heavy freezing rain",
	71: "Slight snowfall",
	73: "Moderate snowfall",
	75: "Heavy snowfall",
	77: "Snow grains",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	85: "Slight snow showers",
	86: "Heavy snow showers",
	95: "Slight thunderstorm",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

// Describe maps a WMO weather code to its English description. It is total: codes
// outside the WMO enumeration yield "Unknown".
func Describe(code int) string {
	if desc, ok := wmoConditions[code]; ok {
		return desc
	}
	return "Unknown"
}

// ClassifyIcon maps a WMO weather code and a day/night flag (1 = day, 0 = night) to
// an Icon. Only the clear and cloudy categories carry a day/night split. Codes
// outside all known groups fall back to clear.
func ClassifyIcon(code, isDay int) Icon {
	switch code {
	case 1, 2, 3:
		if isDay == 1 {
			return IconCloudyDay
		}
		return IconCloudyNight
	case 45, 48:
		return IconFog
	case 51, 53, 55, 56, 57, 61, 63, 65, 66, 67, 80, 81, 82:
		return IconRain
	case 71, 73, 75, 77, 85, 86:
		return IconSnow
	case 95, 96, 99:
		return IconThunderstorm
	}
	// 0 and anything unrecognized
	if isDay == 1 {
		return IconClearDay
	}
	return IconClearNight
}
