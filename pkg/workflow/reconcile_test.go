package workflow

import (
	"math"
	"reflect"
	"testing"
)

func TestReconcileOrdersByStartTime(t *testing.T) {
	// Edges deliberately contradict chronology; they must be ignored.
	day := Day{
		DayNumber: 1,
		Date:      "2026-05-01",
		Nodes: []Node{
			{ID: "n3", Title: "Dinner", Start: "19:00", DurationMinutes: 90},
			{ID: "n1", Title: "Breakfast", Start: "08:00", DurationMinutes: 45},
			{ID: "n2", Title: "Museum", Start: "10:00", DurationMinutes: 120},
		},
		Edges: []Edge{
			{Source: "n3", Target: "n1"},
			{Source: "n1", Target: "n2"},
		},
	}

	sched := Reconcile([]Day{day}, ReconcileOptions{TripID: "lisbon"})

	if sched.TripID != "lisbon" {
		t.Errorf("trip id = %q", sched.TripID)
	}
	if len(sched.Days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(sched.Days))
	}

	var titles []string
	for _, a := range sched.Days[0].Activities {
		titles = append(titles, a.Title)
	}
	want := []string{"Breakfast", "Museum", "Dinner"}
	if !reflect.DeepEqual(titles, want) {
		t.Errorf("activity order = %v, want %v", titles, want)
	}
}

func TestReconcileProjection(t *testing.T) {
	day := Day{
		DayNumber: 1,
		Nodes: []Node{{
			ID:              "n1",
			Type:            TypeMeal,
			Title:           "Pastéis de Belém",
			Tags:            []string{"breakfast", "pastry"},
			Start:           "09:00",
			DurationMinutes: 45,
			Cost:            8.5,
			Metadata: Metadata{
				Rating:      4.7,
				OpenTime:    "08:00",
				CloseTime:   "19:00",
				Address:     "Rua de Belém 84",
				Lat:         38.6976,
				Lng:         -9.2033,
				HasLocation: true,
			},
		}},
	}

	a := Reconcile([]Day{day}, ReconcileOptions{TripID: "t"}).Days[0].Activities[0]

	if a.Type != "meal" || a.Time != "09:00" || a.DurationMinutes != 45 {
		t.Errorf("core fields = %q %q %d", a.Type, a.Time, a.DurationMinutes)
	}
	if a.Description != "Meal · breakfast, pastry" {
		t.Errorf("description = %q", a.Description)
	}
	if a.Hours != "08:00 - 19:00" {
		t.Errorf("hours = %q", a.Hours)
	}
	if a.Location.Lat != 38.6976 || a.Location.Lng != -9.2033 {
		t.Errorf("location = %+v", a.Location)
	}
	if a.Rating != 4.7 || a.Address != "Rua de Belém 84" {
		t.Errorf("metadata fields = %v %q", a.Rating, a.Address)
	}
}

func TestHoursDisplay(t *testing.T) {
	tests := []struct {
		name string
		m    Metadata
		want string
	}{
		{"both", Metadata{OpenTime: "09:30", CloseTime: "18:00"}, "09:30 - 18:00"},
		{"open only", Metadata{OpenTime: "09:30"}, "from 09:30"},
		{"close only", Metadata{CloseTime: "18:00"}, "until 18:00"},
		{"neither", Metadata{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hoursDisplay(tt.m); got != tt.want {
				t.Errorf("hoursDisplay = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNodeLocationFallback(t *testing.T) {
	n := Node{ID: "day1-n2", Title: "Mystery Stop"}

	first := nodeLocation(n)
	second := nodeLocation(n)
	if first != second {
		t.Error("fallback location not deterministic")
	}

	if math.Abs(first.Lat-ReferenceLat) > jitterRange {
		t.Errorf("lat %v too far from reference %v", first.Lat, ReferenceLat)
	}
	if math.Abs(first.Lng-ReferenceLng) > jitterRange {
		t.Errorf("lng %v too far from reference %v", first.Lng, ReferenceLng)
	}

	// Different nodes scatter to different fallback points.
	other := nodeLocation(Node{ID: "day1-n3"})
	if other == first {
		t.Error("distinct nodes share a fallback location")
	}
}

func TestReconcileDeterministic(t *testing.T) {
	days := DemoDays()
	first := Reconcile(days, ReconcileOptions{TripID: "demo"})
	second := Reconcile(days, ReconcileOptions{TripID: "demo"})
	if !reflect.DeepEqual(first, second) {
		t.Error("identical graphs reconciled differently")
	}
}
