package workflow

import (
	"testing"

	"github.com/wayfare/wayfare/pkg/itinerary"
)

func TestFromTripEmpty(t *testing.T) {
	tests := []struct {
		name string
		trip itinerary.Trip
	}{
		{"zero trip", itinerary.Trip{}},
		{"days without activities", itinerary.Trip{
			ID:   "t1",
			Days: []itinerary.Day{{DayNumber: 1}, {DayNumber: 2}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, ok := FromTrip(tt.trip)
			if ok {
				t.Error("expected empty condition, got ok=true")
			}
			if days != nil {
				t.Errorf("expected nil days, got %d", len(days))
			}
		})
	}
}

func TestFromTrip(t *testing.T) {
	trip := itinerary.Trip{
		ID: "lisbon",
		Days: []itinerary.Day{
			{
				DayNumber: 1,
				Date:      "2026-05-01",
				Activities: []itinerary.Record{
					{"name": "Castle", "category": "sightseeing", "time": "10:00", "duration": "2 hours", "price": 15.0},
					{"title": "Lunch", "type": "restaurant", "start": "12:30", "duration_minutes": float64(60), "cost": 25.0},
					{}, // fully empty record still yields a node
					{"title": "Hotel Check-in", "type": "lodging", "start": "not a time", "duration": "??"},
				},
			},
		},
	}

	days, ok := FromTrip(trip)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if len(days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(days))
	}
	day := days[0]

	if day.DayNumber != 1 || day.Date != "2026-05-01" {
		t.Errorf("day header = %d %q", day.DayNumber, day.Date)
	}
	if day.Demo {
		t.Error("non-demo trip marked as demo")
	}
	if len(day.Nodes) != 4 {
		t.Fatalf("expected 4 nodes, got %d", len(day.Nodes))
	}

	// Alternate keys coerce like canonical ones.
	castle := day.Nodes[0]
	if castle.ID != "day1-n1" {
		t.Errorf("id = %q, want day1-n1", castle.ID)
	}
	if castle.Title != "Castle" || castle.Type != TypeAttraction {
		t.Errorf("castle = %q %v", castle.Title, castle.Type)
	}
	if castle.Start != "10:00" || castle.DurationMinutes != 120 || castle.Cost != 15.0 {
		t.Errorf("castle fields = %q %d %.2f", castle.Start, castle.DurationMinutes, castle.Cost)
	}

	lunch := day.Nodes[1]
	if lunch.Type != TypeMeal || lunch.DurationMinutes != 60 {
		t.Errorf("lunch = %v %d", lunch.Type, lunch.DurationMinutes)
	}

	// Empty record degrades to defaults, never fails.
	empty := day.Nodes[2]
	if empty.Title != "Activity 3" {
		t.Errorf("placeholder title = %q", empty.Title)
	}
	if empty.Start != DefaultStart || empty.DurationMinutes != DefaultDurationMinutes {
		t.Errorf("empty record defaults = %q %d", empty.Start, empty.DurationMinutes)
	}
	if empty.Type != TypeAttraction {
		t.Errorf("empty record type = %v, want attraction", empty.Type)
	}

	hotel := day.Nodes[3]
	if hotel.Type != TypeHotel || hotel.Start != DefaultStart || hotel.DurationMinutes != DefaultDurationMinutes {
		t.Errorf("hotel degrades = %v %q %d", hotel.Type, hotel.Start, hotel.DurationMinutes)
	}

	// Linear edge chain in input order.
	if len(day.Edges) != 3 {
		t.Fatalf("expected 3 edges, got %d", len(day.Edges))
	}
	for i, e := range day.Edges {
		if e.Source != day.Nodes[i].ID || e.Target != day.Nodes[i+1].ID {
			t.Errorf("edge %d = %s→%s", i, e.Source, e.Target)
		}
	}
}

func TestGridPosition(t *testing.T) {
	tests := []struct {
		index    int
		col, row int
	}{
		{0, 0, 0},
		{1, 1, 0},
		{2, 2, 0},
		{3, 0, 1},
		{7, 1, 2},
	}

	for _, tt := range tests {
		got := gridPosition(tt.index)
		wantX := gridOriginX + float64(tt.col)*gridCellW
		wantY := gridOriginY + float64(tt.row)*gridCellH
		if got.X != wantX || got.Y != wantY {
			t.Errorf("gridPosition(%d) = (%v, %v), want (%v, %v)", tt.index, got.X, got.Y, wantX, wantY)
		}
	}
}

func TestDemoDays(t *testing.T) {
	days := DemoDays()
	if len(days) != 1 {
		t.Fatalf("expected 1 demo day, got %d", len(days))
	}
	day := days[0]
	if !day.Demo {
		t.Error("demo day not flagged")
	}
	if len(day.Nodes) != 4 || len(day.Edges) != 3 {
		t.Errorf("demo graph = %d nodes, %d edges", len(day.Nodes), len(day.Edges))
	}
	if day.Nodes[0].Type != TypeMeal {
		t.Errorf("first demo node type = %v, want meal", day.Nodes[0].Type)
	}
}
