// Package itinerary defines the data exchanged with the external itinerary
// service: raw trip data on the way in, and the reconciled schedule on the
// way out.
//
// Incoming activity records have no authoritative wire schema - different
// origins (AI pipeline, manual entry, imports) use different field names and
// value shapes. Records are therefore kept as loose key/value maps, and the
// workflow adapter owns all coercion. The reconciled schedule on the other
// hand is a fixed, canonical shape ready for persistence.
package itinerary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Trip - Raw Input Model
// =============================================================================

// Trip is a trip as delivered by the itinerary service.
type Trip struct {
	ID          string `json:"id" bson:"id"`
	Name        string `json:"name,omitempty" bson:"name,omitempty"`
	Destination string `json:"destination,omitempty" bson:"destination,omitempty"`
	Days        []Day  `json:"days" bson:"days"`

	// Demo marks seeded demonstration data so it can never be mistaken
	// for a real user trip downstream.
	Demo bool `json:"demo,omitempty" bson:"demo,omitempty"`
}

// Day is one itinerary day holding heterogeneous activity records
// in their original order.
type Day struct {
	DayNumber  int      `json:"day_number" bson:"day_number"`
	Date       string   `json:"date,omitempty" bson:"date,omitempty"`
	Activities []Record `json:"activities" bson:"activities"`
}

// HasActivities reports whether any day of the trip carries activity data.
func (t Trip) HasActivities() bool {
	for _, d := range t.Days {
		if len(d.Activities) > 0 {
			return true
		}
	}
	return false
}

// =============================================================================
// Record - Heterogeneous Activity Data
// =============================================================================

// Record is one raw activity as received from upstream. Field names vary by
// origin, so values are accessed through the candidate-key helpers below
// rather than a fixed struct.
type Record map[string]any

// String returns the first non-empty string value among the candidate keys.
func (r Record) String(keys ...string) string {
	for _, k := range keys {
		if v, ok := r[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// Value returns the first present value among the candidate keys.
// The second return reports whether any key was found.
func (r Record) Value(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// Float returns the first value among the candidate keys that is numeric.
// JSON numbers always decode as float64; integers stored by Go callers are
// accepted as well.
func (r Record) Float(keys ...string) (float64, bool) {
	v, ok := r.Value(keys...)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// Strings returns the first value among the candidate keys that is a string
// slice. JSON arrays decode as []any, so both shapes are accepted.
func (r Record) Strings(keys ...string) []string {
	v, ok := r.Value(keys...)
	if !ok {
		return nil
	}
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// =============================================================================
// Schedule - Canonical Output Model
// =============================================================================

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// PlannedActivity is one activity in the canonical, time-ordered schedule.
// This is the fixed shape handed to the persistence path on Apply.
type PlannedActivity struct {
	Title           string      `json:"title" bson:"title"`
	Type            string      `json:"type" bson:"type"`
	Time            string      `json:"time" bson:"time"`
	DurationMinutes int         `json:"duration_minutes" bson:"duration_minutes"`
	Cost            float64     `json:"cost" bson:"cost"`
	Description     string      `json:"description,omitempty" bson:"description,omitempty"`
	Location        Coordinates `json:"location" bson:"location"`
	Rating          float64     `json:"rating,omitempty" bson:"rating,omitempty"`
	Hours           string      `json:"hours,omitempty" bson:"hours,omitempty"`
	Address         string      `json:"address,omitempty" bson:"address,omitempty"`
	Tags            []string    `json:"tags,omitempty" bson:"tags,omitempty"`
}

// DaySchedule is the reconciled activity list for one day,
// sorted by scheduled time ascending.
type DaySchedule struct {
	DayNumber  int               `json:"day_number" bson:"day_number"`
	Date       string            `json:"date,omitempty" bson:"date,omitempty"`
	Activities []PlannedActivity `json:"activities" bson:"activities"`
}

// Schedule is the full reconciled itinerary for a trip.
type Schedule struct {
	TripID string        `json:"trip_id" bson:"trip_id"`
	Days   []DaySchedule `json:"days" bson:"days"`
}

// ActivityCount returns the total number of planned activities.
func (s Schedule) ActivityCount() int {
	var n int
	for _, d := range s.Days {
		n += len(d.Activities)
	}
	return n
}

// =============================================================================
// Serialization API
// =============================================================================

// MarshalTrip converts a trip to pretty-printed JSON bytes.
func MarshalTrip(t Trip) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return nil, fmt.Errorf("encode trip: %w", err)
	}
	return buf.Bytes(), nil
}

// ReadTrip decodes a trip from JSON on an io.Reader.
func ReadTrip(r io.Reader) (Trip, error) {
	var t Trip
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return Trip{}, fmt.Errorf("decode trip: %w", err)
	}
	return t, nil
}

// ReadTripFile reads a trip from a JSON file.
func ReadTripFile(path string) (Trip, error) {
	f, err := os.Open(path)
	if err != nil {
		return Trip{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadTrip(f)
}

// MarshalSchedule converts a schedule to pretty-printed JSON bytes.
func MarshalSchedule(s Schedule) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// WriteScheduleFile writes a schedule to a JSON file.
func WriteScheduleFile(s Schedule, path string) error {
	data, err := MarshalSchedule(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadScheduleFile reads a schedule from a JSON file.
func ReadScheduleFile(path string) (Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Schedule{}, fmt.Errorf("read %s: %w", path, err)
	}
	var s Schedule
	if err := json.Unmarshal(data, &s); err != nil {
		return Schedule{}, fmt.Errorf("decode schedule: %w", err)
	}
	return s, nil
}
