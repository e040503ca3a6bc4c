// Package filedate infers a plausible capture date from a bare filename.
// It is the last resort of the timestamp fallback chain: camera and phone
// filenames routinely encode the capture moment (IMG_20240905_142231.jpg,
// 2024-09-05.png) even when the file itself carries no usable metadata.
package filedate

import (
	"regexp"
	"strconv"
	"time"
)

// noonHour is the time of day assumed for date-only matches. Assuming
// midnight risks the value rounding to the previous calendar day once
// normalized to UTC; noon is a neutral choice that survives any offset.
const noonHour = 12

// namePatterns are tried in order; the first match wins. Year is constrained
// to 2000-2099. Each pattern captures either six components (full datetime)
// or three (date only, defaulted to local noon).
//
// Go's regexp has no lookbehind, so digit boundaries are expressed as
// consumed non-capturing groups.
var namePatterns = []struct {
	re      *regexp.Regexp
	hasTime bool
}{
	// Full datetime: YYYY[-_]?MM[-_]?DD followed by HH MM SS with an
	// optional separator between date and time and between time components.
	// Matches IMG_20240905_142231.jpg, 2024-09-05T14:22:31.png,
	// 2024_09_05 14:22:31.jpg and the fully contiguous 14-digit form.
	{regexp.MustCompile(`(?:^|[^0-9])(20[0-9]{2})[-_]?([0-9]{2})[-_]?([0-9]{2})[T :_-]?([0-9]{2})[:_-]?([0-9]{2})[:_-]?([0-9]{2})(?:[^0-9]|$)`), true},

	// Bare date, 8 contiguous digits: 20240905.
	{regexp.MustCompile(`(?:^|[^0-9])(20[0-9]{2})([0-9]{2})([0-9]{2})(?:[^0-9]|$)`), false},

	// Separated date with no time: 2024-09-05 or 2024_09_05.
	{regexp.MustCompile(`(?:^|[^0-9])(20[0-9]{2})[-_]([0-9]{2})[-_]([0-9]{2})(?:[^0-9]|$)`), false},
}

// FromName extracts a capture date from a bare filename (no directory
// components). The result is in local time; date-only matches default to
// local noon. Returns false when no pattern matches or the matched digits
// do not form a valid calendar date.
func FromName(name string) (time.Time, bool) {
	for _, p := range namePatterns {
		m := p.re.FindStringSubmatch(name)
		if m == nil {
			continue
		}

		year := atoi(m[1])
		month := atoi(m[2])
		day := atoi(m[3])

		hour, minute, sec := noonHour, 0, 0
		if p.hasTime {
			hour = atoi(m[4])
			minute = atoi(m[5])
			sec = atoi(m[6])
		}

		t, ok := calendarDate(year, month, day, hour, minute, sec)
		if !ok {
			// Matched digits but not a real date (month 13, day 32).
			// Treated as no match rather than trying weaker patterns
			// against the same bogus digits.
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}

// calendarDate builds a local time from components, rejecting values that
// time.Date would silently normalize (2024-13-40 becoming 2025-02-09).
func calendarDate(year, month, day, hour, minute, sec int) (time.Time, bool) {
	t := time.Date(year, time.Month(month), day, hour, minute, sec, 0, time.Local)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day ||
		t.Hour() != hour || t.Minute() != minute || t.Second() != sec {
		return time.Time{}, false
	}
	return t, true
}

// atoi converts a regexp-captured digit group. Captures are all-digit by
// construction, so the error path is unreachable.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
