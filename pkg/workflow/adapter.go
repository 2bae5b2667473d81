package workflow

import (
	"fmt"

	"github.com/wayfare/wayfare/pkg/itinerary"
)

// =============================================================================
// Adapter - Itinerary Data → Day Graphs
// =============================================================================

// Initial grid placement. Nodes are laid on a fixed 3-column grid purely for
// visual spacing when a graph is first built - independent of chronology.
const (
	gridColumns = 3
	gridCellW   = 280.0
	gridCellH   = 160.0
	gridOriginX = 60.0
	gridOriginY = 60.0
)

// FromTrip converts raw trip data into one editor day graph per itinerary
// day. The second return reports whether the trip carried any activity data
// at all: false signals the empty/fallback condition, which callers must
// treat as distinct from a loading or error state.
//
// Conversion never fails. Malformed records degrade field-by-field to
// coercion defaults rather than aborting the day or the trip.
func FromTrip(t itinerary.Trip) ([]Day, bool) {
	if !t.HasActivities() {
		return nil, false
	}
	days := make([]Day, len(t.Days))
	for i, d := range t.Days {
		days[i] = dayFromRecords(d, t.Demo)
	}
	return days, true
}

// dayFromRecords builds one day graph from raw activity records, preserving
// their original input order in the advisory edge chain.
func dayFromRecords(d itinerary.Day, demo bool) Day {
	day := Day{
		DayNumber: d.DayNumber,
		Date:      d.Date,
		Nodes:     make([]Node, len(d.Activities)),
		Edges:     make([]Edge, 0, max(len(d.Activities)-1, 0)),
		Demo:      demo,
	}

	for i, rec := range d.Activities {
		day.Nodes[i] = nodeFromRecord(d.DayNumber, i, rec)
	}

	// Single linear chain in input order: the "suggested path", never
	// authoritative for scheduling.
	for i := 0; i+1 < len(day.Nodes); i++ {
		day.Edges = append(day.Edges, Edge{
			Source: day.Nodes[i].ID,
			Target: day.Nodes[i+1].ID,
		})
	}

	return day
}

// nodeFromRecord coerces one heterogeneous activity record into a node.
func nodeFromRecord(dayNumber, index int, rec itinerary.Record) Node {
	title := rec.String("title", "name", "activity")
	if title == "" {
		title = fmt.Sprintf("Activity %d", index+1)
	}

	duration, hasDuration := rec.Value("duration_minutes", "durationMinutes", "duration", "length")
	if !hasDuration {
		duration = nil
	}

	cost, _ := rec.Float("cost", "price", "estimated_cost")
	rating, _ := rec.Float("rating", "stars")
	distance, _ := rec.Float("distance_km", "distance_from_previous", "distance")
	lat, hasLat := rec.Float("lat", "latitude")
	lng, hasLng := rec.Float("lng", "lon", "longitude")

	n := Node{
		ID:              fmt.Sprintf("day%d-n%d", dayNumber, index+1),
		Type:            CoerceType(rec.String("type", "category", "activity_type")),
		Title:           title,
		Tags:            rec.Strings("tags", "labels"),
		Start:           CoerceStart(rec.String("start", "time", "start_time", "startTime", "scheduled_time")),
		DurationMinutes: CoerceDuration(duration),
		Cost:            cost,
		Position:        gridPosition(index),
		Metadata: Metadata{
			Rating:      rating,
			OpenTime:    rec.String("open_time", "opens", "open"),
			CloseTime:   rec.String("close_time", "closes", "close"),
			Address:     rec.String("address", "location_name"),
			DistanceKM:  distance,
			Lat:         lat,
			Lng:         lng,
			HasLocation: hasLat && hasLng,
		},
		Validation: Validation{Status: StatusValid},
	}
	return n
}

// gridPosition places the i-th node on the fixed 3-column grid:
// column = i mod 3, row = i div 3.
func gridPosition(index int) Position {
	col := index % gridColumns
	row := index / gridColumns
	return Position{
		X: gridOriginX + float64(col)*gridCellW,
		Y: gridOriginY + float64(row)*gridCellH,
	}
}

// =============================================================================
// Demo Seed
// =============================================================================

// DemoTrip returns a small seeded trip for empty-state demonstrations.
// Both the trip and every derived day graph carry the Demo flag so seeded
// data can never be confused with a real user itinerary.
func DemoTrip() itinerary.Trip {
	return itinerary.Trip{
		ID:          "demo",
		Name:        "Sample Day Out",
		Destination: "Lisbon",
		Demo:        true,
		Days: []itinerary.Day{
			{
				DayNumber: 1,
				Date:      "2026-05-01",
				Activities: []itinerary.Record{
					{"title": "Pastéis de Belém", "type": "restaurant", "start": "09:00", "duration": "45 min", "cost": 8.5, "tags": []any{"breakfast", "pastry"}},
					{"title": "Jerónimos Monastery", "type": "attraction", "start": "10:15", "duration": "1.5 hours", "cost": 12.0, "open": "09:30", "close": "18:00"},
					{"title": "Tram 28 to Alfama", "type": "transport", "start": "12:00", "duration": 30, "cost": 3.0},
					{"title": "Lunch in Alfama", "type": "meal", "start": "12:45", "duration": "1 hr", "cost": 22.0},
				},
			},
		},
	}
}

// DemoDays converts the demo trip into day graphs.
func DemoDays() []Day {
	days, _ := FromTrip(DemoTrip())
	return days
}
