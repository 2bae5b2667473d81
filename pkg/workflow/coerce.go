package workflow

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Coercion defaults. Malformed upstream values degrade to these rather than
// failing a conversion - the adapter never raises for bad records.
const (
	// DefaultStart is the fallback start time for unparseable time values.
	DefaultStart = "09:00"
	// DefaultDurationMinutes is the fallback for unparseable durations.
	DefaultDurationMinutes = 120
)

// typeAliases maps known upstream activity-type strings (lower-cased) to
// node types. Lookup is case-insensitive; anything absent coerces to
// TypeAttraction.
var typeAliases = map[string]NodeType{
	"attraction":     TypeAttraction,
	"activity":       TypeAttraction,
	"sightseeing":    TypeAttraction,
	"museum":         TypeAttraction,
	"meal":           TypeMeal,
	"restaurant":     TypeMeal,
	"food":           TypeMeal,
	"dining":         TypeMeal,
	"transit":        TypeTransit,
	"transport":      TypeTransit,
	"transportation": TypeTransit,
	"travel":         TypeTransit,
	"hotel":          TypeHotel,
	"accommodation":  TypeHotel,
	"lodging":        TypeHotel,
	"freetime":       TypeFreeTime,
	"free_time":      TypeFreeTime,
	"free time":      TypeFreeTime,
	"rest":           TypeFreeTime,
	"decision":       TypeDecision,
	"choice":         TypeDecision,
}

// CoerceType maps an upstream activity-type string onto the closed NodeType
// set. Matching is case-insensitive and whitespace-tolerant; unrecognized
// strings always map to TypeAttraction.
func CoerceType(raw string) NodeType {
	if t, ok := typeAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return t
	}
	return TypeAttraction
}

var clockRe = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)

// CoerceStart normalizes a time value to HH:MM. Values already in HH:MM pass
// through, ISO-style datetimes are converted to their local clock time, and
// anything unparseable falls back to DefaultStart.
func CoerceStart(raw string) string {
	s := strings.TrimSpace(raw)
	if m := clockRe.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		mi, _ := strconv.Atoi(m[2])
		return fmt.Sprintf("%02d:%02d", h, mi)
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Local().Format("15:04")
		}
	}
	return DefaultStart
}

var numberRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

// CoerceDuration normalizes a duration value to whole minutes.
//
// Numeric values pass through as minutes. Strings mentioning "hour" or "hr"
// are parsed as hours, strings mentioning "min" as literal minutes, and
// other numeric-bearing strings are assumed to be hours. Anything else
// falls back to DefaultDurationMinutes.
func CoerceDuration(raw any) int {
	switch v := raw.(type) {
	case nil:
		return DefaultDurationMinutes
	case float64:
		return clampDuration(int(v))
	case float32:
		return clampDuration(int(v))
	case int:
		return clampDuration(v)
	case int64:
		return clampDuration(int(v))
	case string:
		return coerceDurationString(v)
	}
	return DefaultDurationMinutes
}

func coerceDurationString(s string) int {
	lower := strings.ToLower(s)
	match := numberRe.FindString(lower)
	if match == "" {
		return DefaultDurationMinutes
	}
	n, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return DefaultDurationMinutes
	}
	switch {
	case strings.Contains(lower, "min"):
		return clampDuration(int(n))
	case strings.Contains(lower, "hour"), strings.Contains(lower, "hr"):
		return clampDuration(int(n * 60))
	default:
		// Bare numeric strings are assumed to be hours.
		return clampDuration(int(n * 60))
	}
}

func clampDuration(minutes int) int {
	if minutes < 0 {
		return 0
	}
	return minutes
}

// clockMinutes parses an HH:MM string into minutes after midnight.
// Unparseable values take the DefaultStart clock value.
func clockMinutes(clock string) int {
	m := clockRe.FindStringSubmatch(strings.TrimSpace(clock))
	if m == nil {
		m = clockRe.FindStringSubmatch(DefaultStart)
	}
	h, _ := strconv.Atoi(m[1])
	mi, _ := strconv.Atoi(m[2])
	return h*60 + mi
}

// formatClock renders minutes after midnight as HH:MM, wrapping at midnight.
func formatClock(minutes int) string {
	minutes %= 24 * 60
	if minutes < 0 {
		minutes += 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
