// SPDX-FileCopyrightText: The skycast authors
//
// SPDX-License-Identifier: MIT

package weather

import (
	"time"
)

const (
	// WindowSize is the fixed number of hours in a forecast window.
	WindowSize = 24

	// hourLayout is the textual layout of the provider's hourly timestamps.
	hourLayout = "2006-01-02T15:04"
)

// NextWindow returns the rolling 24-hour forecast window of the given hourly series,
// anchored at the current wall-clock hour in the given timezone. It never fails: an
// unresolvable timezone falls back to UTC, unparseable entries are skipped during
// matching, a series without a matching hour anchors at index 0, and a window
// reaching past the end of the series wraps around to its beginning. Only an empty
// series yields an empty window.
func NextWindow(hours []HourlyItem, timezoneID string) []HourlyItem {
	return nextWindowAt(hours, timezoneID, time.Now())
}

func nextWindowAt(hours []HourlyItem, timezoneID string, now time.Time) []HourlyItem {
	if len(hours) == 0 {
		return []HourlyItem{}
	}

	loc, err := time.LoadLocation(timezoneID)
	if err != nil {
		loc = time.UTC
	}
	nowLocal := now.In(loc)

	start := 0
	for i := range hours {
		ts, err := parseHourTime(hours[i].Time)
		if err != nil {
			continue
		}
		if ts.Hour() == nowLocal.Hour() && ts.YearDay() == nowLocal.YearDay() {
			start = i
			break
		}
	}

	window := make([]HourlyItem, 0, WindowSize)
	for i := start; i < start+WindowSize; i++ {
		window = append(window, hours[i%len(hours)])
	}
	return window
}

// parseHourTime parses a provider-local hourly timestamp. Only the first 16
// characters (YYYY-MM-DDTHH:MM) are significant; trailing seconds or zone
// designators are ignored. The series is requested with timezone=auto, so the
// timestamps are already local to the coordinate and no offset conversion is
// applied.
func parseHourTime(val string) (time.Time, error) {
	if len(val) > len(hourLayout) {
		val = val[:len(hourLayout)]
	}
	return time.Parse(hourLayout, val)
}
