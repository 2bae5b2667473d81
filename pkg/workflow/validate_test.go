package workflow

import (
	"reflect"
	"strings"
	"testing"
)

func node(id, title, start string, duration int) Node {
	return Node{ID: id, Title: title, Start: start, DurationMinutes: duration}
}

func TestValidateOverlap(t *testing.T) {
	day := Day{
		DayNumber: 1,
		Nodes: []Node{
			node("a", "Breakfast", "08:00", 60),
			node("b", "Museum", "08:30", 120),
			node("c", "Dinner", "19:00", 90),
		},
	}

	nodes := Validate(day, ValidateOptions{})

	a, b, c := nodes[0], nodes[1], nodes[2]
	if a.Validation.Status != StatusError {
		t.Errorf("breakfast status = %v, want error", a.Validation.Status)
	}
	if b.Validation.Status != StatusError {
		t.Errorf("museum status = %v, want error", b.Validation.Status)
	}
	if c.Validation.Status != StatusValid {
		t.Errorf("dinner status = %v, want valid", c.Validation.Status)
	}

	// Each conflicting node names the other's title.
	if !hasMessage(a, `overlaps with "Museum"`) {
		t.Errorf("breakfast messages = %v", a.Validation.Messages)
	}
	if !hasMessage(b, `overlaps with "Breakfast"`) {
		t.Errorf("museum messages = %v", b.Validation.Messages)
	}
}

func TestValidateBackToBackIsNotOverlap(t *testing.T) {
	day := Day{Nodes: []Node{
		node("a", "Breakfast", "08:00", 60),
		node("b", "Museum", "09:00", 120), // starts exactly at breakfast's end
	}}

	for _, n := range Validate(day, ValidateOptions{}) {
		if n.Validation.Status != StatusValid {
			t.Errorf("%s status = %v, want valid", n.Title, n.Validation.Status)
		}
	}
}

func TestValidateOpeningHours(t *testing.T) {
	tests := []struct {
		name       string
		node       Node
		wantStatus Status
		wantMsg    string
	}{
		{
			name: "starts before opening",
			node: Node{ID: "a", Title: "Museum", Start: "09:00", DurationMinutes: 60,
				Metadata: Metadata{OpenTime: "10:00", CloseTime: "18:00"}},
			wantStatus: StatusWarning,
			wantMsg:    "starts before opening time 10:00",
		},
		{
			name: "ends after closing",
			node: Node{ID: "a", Title: "Museum", Start: "17:00", DurationMinutes: 120,
				Metadata: Metadata{OpenTime: "09:00", CloseTime: "18:00"}},
			wantStatus: StatusWarning,
			wantMsg:    "ends after closing time 18:00",
		},
		{
			name: "within hours",
			node: Node{ID: "a", Title: "Museum", Start: "10:00", DurationMinutes: 60,
				Metadata: Metadata{OpenTime: "09:00", CloseTime: "18:00"}},
			wantStatus: StatusValid,
		},
		{
			name:       "no hours declared",
			node:       node("a", "Walk", "03:00", 60),
			wantStatus: StatusValid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(Day{Nodes: []Node{tt.node}}, ValidateOptions{})[0]
			if got.Validation.Status != tt.wantStatus {
				t.Errorf("status = %v, want %v", got.Validation.Status, tt.wantStatus)
			}
			if tt.wantMsg != "" && !hasMessage(got, tt.wantMsg) {
				t.Errorf("messages = %v, want %q", got.Validation.Messages, tt.wantMsg)
			}
		})
	}
}

func TestValidateCostOutlier(t *testing.T) {
	day := Day{Nodes: []Node{
		withCost(node("a", "Coffee", "08:00", 30), 10),
		withCost(node("b", "Tram", "09:00", 30), 12),
		withCost(node("c", "Lunch", "12:00", 60), 11),
		withCost(node("d", "Helicopter Tour", "15:00", 60), 100),
	}}

	nodes := Validate(day, ValidateOptions{})
	// mean of positive costs = 33.25; only 100 exceeds 3x.
	for _, n := range nodes[:3] {
		if n.Validation.Status != StatusValid {
			t.Errorf("%s status = %v, want valid", n.Title, n.Validation.Status)
		}
	}
	heli := nodes[3]
	if heli.Validation.Status != StatusWarning {
		t.Errorf("outlier status = %v, want warning", heli.Validation.Status)
	}
	if len(heli.Validation.Messages) != 1 || !strings.Contains(heli.Validation.Messages[0], "far exceeds day average") {
		t.Errorf("outlier messages = %v", heli.Validation.Messages)
	}
}

func TestValidateCostMultiplierOption(t *testing.T) {
	day := Day{Nodes: []Node{
		withCost(node("a", "Coffee", "08:00", 30), 10),
		withCost(node("b", "Lunch", "12:00", 60), 25),
	}}

	// Default multiplier: 25 < 3 * 17.5, no finding.
	if got := Validate(day, ValidateOptions{})[1]; got.Validation.Status != StatusValid {
		t.Errorf("default multiplier status = %v, want valid", got.Validation.Status)
	}

	// Tightened multiplier flags the same node.
	if got := Validate(day, ValidateOptions{CostOutlierMultiplier: 1.2})[1]; got.Validation.Status != StatusWarning {
		t.Errorf("tight multiplier status = %v, want warning", got.Validation.Status)
	}
}

func TestValidateNegativeCost(t *testing.T) {
	day := Day{Nodes: []Node{withCost(node("a", "Refund?", "08:00", 30), -5)}}
	got := Validate(day, ValidateOptions{})[0]
	if got.Validation.Status != StatusWarning || !hasMessage(got, "negative cost") {
		t.Errorf("negative cost = %v %v", got.Validation.Status, got.Validation.Messages)
	}
}

func TestValidateSingleCostNeverOutlier(t *testing.T) {
	day := Day{Nodes: []Node{withCost(node("a", "Dinner", "19:00", 90), 500)}}
	if got := Validate(day, ValidateOptions{})[0]; got.Validation.Status != StatusValid {
		t.Errorf("single cost status = %v, want valid", got.Validation.Status)
	}
}

func TestValidateSeverityUpgrade(t *testing.T) {
	// A node with both an overlap (error) and an hours finding (warning)
	// reports error status and keeps both messages.
	day := Day{Nodes: []Node{
		Node{ID: "a", Title: "Museum", Start: "09:00", DurationMinutes: 120,
			Metadata: Metadata{OpenTime: "10:00"}},
		node("b", "Brunch", "10:00", 60),
	}}

	got := Validate(day, ValidateOptions{})[0]
	if got.Validation.Status != StatusError {
		t.Errorf("status = %v, want error", got.Validation.Status)
	}
	if len(got.Validation.Messages) != 2 {
		t.Errorf("messages = %v, want overlap + hours", got.Validation.Messages)
	}
}

func TestValidatePure(t *testing.T) {
	day := Day{Nodes: []Node{
		node("a", "Breakfast", "08:00", 60),
		node("b", "Museum", "08:30", 120),
	}}

	_ = Validate(day, ValidateOptions{})

	for _, n := range day.Nodes {
		if n.Validation.Status == StatusError || len(n.Validation.Messages) > 0 {
			t.Errorf("input mutated: %s has %v", n.Title, n.Validation)
		}
	}
}

func TestValidateDeterministic(t *testing.T) {
	day := Day{Nodes: []Node{
		withCost(node("c", "Tour", "09:00", 300), 200),
		withCost(node("a", "Breakfast", "09:00", 60), 10),
		withCost(node("b", "Coffee", "09:30", 30), 5),
	}}

	first := Validate(day, ValidateOptions{})
	second := Validate(day, ValidateOptions{})
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different validation output")
	}
}

func hasMessage(n Node, msg string) bool {
	for _, m := range n.Validation.Messages {
		if m == msg {
			return true
		}
	}
	return false
}

func withCost(n Node, cost float64) Node {
	n.Cost = cost
	return n
}
