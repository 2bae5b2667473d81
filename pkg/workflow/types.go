// Package workflow implements the itinerary graph model: the node/edge
// representation of a day's activities, the adapter that builds it from raw
// itinerary data, temporal validation, deterministic chronological layout,
// and the reconciler that projects the edited graph back into the canonical
// schedule.
//
// The graph is an editing representation only. Edges record a suggested
// visiting sequence and are advisory - the persisted order is always derived
// from node start times by the reconciler, never from graph topology.
package workflow

import (
	"slices"
	"strings"
)

// =============================================================================
// NodeType - Closed Activity Classification
// =============================================================================

// NodeType classifies an itinerary activity. The set is closed: raw type
// strings from upstream are coerced onto one of these variants and never
// passed through as free-form text.
type NodeType int

const (
	// TypeAttraction is a sight or activity. It is also the fallback for
	// unrecognized upstream type strings.
	TypeAttraction NodeType = iota
	// TypeMeal is a restaurant visit or other food stop.
	TypeMeal
	// TypeTransit is travel between locations.
	TypeTransit
	// TypeHotel is accommodation check-in/out or rest.
	TypeHotel
	// TypeFreeTime is unscheduled buffer time.
	TypeFreeTime
	// TypeDecision is a branch point between alternative plans.
	TypeDecision
)

// typeNames maps each variant to its canonical lower-case name, used for
// serialization and for the reconciled schedule's type field.
var typeNames = map[NodeType]string{
	TypeAttraction: "attraction",
	TypeMeal:       "meal",
	TypeTransit:    "transit",
	TypeHotel:      "hotel",
	TypeFreeTime:   "freetime",
	TypeDecision:   "decision",
}

// String returns the canonical lower-case name of the type.
func (t NodeType) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return typeNames[TypeAttraction]
}

// Label returns a human-readable display name.
func (t NodeType) Label() string {
	switch t {
	case TypeFreeTime:
		return "Free Time"
	default:
		return strings.ToUpper(t.String()[:1]) + t.String()[1:]
	}
}

// MarshalText implements encoding.TextMarshaler so node types serialize as
// their canonical names in JSON and BSON.
func (t NodeType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names coerce to
// TypeAttraction, matching the adapter's degrade-to-default policy.
func (t *NodeType) UnmarshalText(text []byte) error {
	*t = CoerceType(string(text))
	return nil
}

// =============================================================================
// Validation - Derived Node Status
// =============================================================================

// Status is the validation classification of a node.
type Status string

const (
	// StatusValid means no findings.
	StatusValid Status = "valid"
	// StatusWarning means advisory findings (hours, cost).
	StatusWarning Status = "warning"
	// StatusError means temporal conflicts.
	StatusError Status = "error"
)

// Validation is the derived consistency state of a node. It is recomputed
// from the day's node set by Validate and must never be edited by hand.
type Validation struct {
	Status   Status   `json:"status" bson:"status"`
	Messages []string `json:"messages,omitempty" bson:"messages,omitempty"`
}

// clone returns a deep copy of the validation state.
func (v Validation) clone() Validation {
	return Validation{Status: v.Status, Messages: slices.Clone(v.Messages)}
}

// =============================================================================
// Node, Edge, Day - Graph Model
// =============================================================================

// Position is a node's cosmetic canvas placement. It never influences
// validation or reconciliation.
type Position struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Metadata carries optional descriptive fields for a node.
type Metadata struct {
	Rating      float64 `json:"rating,omitempty" bson:"rating,omitempty"`
	OpenTime    string  `json:"open_time,omitempty" bson:"open_time,omitempty"`
	CloseTime   string  `json:"close_time,omitempty" bson:"close_time,omitempty"`
	Address     string  `json:"address,omitempty" bson:"address,omitempty"`
	DistanceKM  float64 `json:"distance_km,omitempty" bson:"distance_km,omitempty"`
	Lat         float64 `json:"lat,omitempty" bson:"lat,omitempty"`
	Lng         float64 `json:"lng,omitempty" bson:"lng,omitempty"`
	HasLocation bool    `json:"has_location,omitempty" bson:"has_location,omitempty"`
}

// Node is one itinerary activity as a graph vertex.
type Node struct {
	ID              string     `json:"id" bson:"id"`
	Type            NodeType   `json:"type" bson:"type"`
	Title           string     `json:"title" bson:"title"`
	Tags            []string   `json:"tags,omitempty" bson:"tags,omitempty"`
	Start           string     `json:"start" bson:"start"` // HH:MM
	DurationMinutes int        `json:"duration_minutes" bson:"duration_minutes"`
	Cost            float64    `json:"cost" bson:"cost"`
	Position        Position   `json:"position" bson:"position"`
	Metadata        Metadata   `json:"metadata,omitempty" bson:"metadata,omitempty"`
	Validation      Validation `json:"validation" bson:"validation"`
}

// StartMinutes returns the node's start time as minutes after midnight.
// Unparseable starts fall back to the default start time.
func (n Node) StartMinutes() int {
	return clockMinutes(n.Start)
}

// EndMinutes returns the node's computed end time as minutes after midnight.
func (n Node) EndMinutes() int {
	return n.StartMinutes() + n.DurationMinutes
}

// Clone returns a deep copy of the node.
func (n Node) Clone() Node {
	out := n
	out.Tags = slices.Clone(n.Tags)
	out.Validation = n.Validation.clone()
	return out
}

// Edge is a directed advisory "suggested next" relationship between two
// nodes of the same day.
type Edge struct {
	Source string `json:"source" bson:"source"`
	Target string `json:"target" bson:"target"`
}

// Day is one itinerary day's editor graph.
type Day struct {
	DayNumber int    `json:"day_number" bson:"day_number"`
	Date      string `json:"date,omitempty" bson:"date,omitempty"`
	Nodes     []Node `json:"nodes" bson:"nodes"`
	Edges     []Edge `json:"edges" bson:"edges"`

	// Demo marks seeded demonstration graphs so they are always
	// distinguishable from real user data.
	Demo bool `json:"demo,omitempty" bson:"demo,omitempty"`
}

// Node returns the node with the given ID and true, or a zero node and false.
func (d Day) Node(id string) (Node, bool) {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// HasEdge reports whether the exact ordered pair source→target exists.
func (d Day) HasEdge(source, target string) bool {
	for _, e := range d.Edges {
		if e.Source == source && e.Target == target {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the day graph.
func (d Day) Clone() Day {
	out := d
	out.Nodes = make([]Node, len(d.Nodes))
	for i, n := range d.Nodes {
		out.Nodes[i] = n.Clone()
	}
	out.Edges = slices.Clone(d.Edges)
	return out
}

// =============================================================================
// Snapshot - Undo/Redo Unit
// =============================================================================

// Snapshot is an immutable deep copy of the full multi-day graph state at
// one point in time. Snapshots always span every day of the trip, not just
// the actively edited one, so switching the active day never invalidates
// history.
type Snapshot struct {
	Days []Day `json:"days" bson:"days"`
}

// TakeSnapshot deep-copies the given days into a snapshot.
func TakeSnapshot(days []Day) Snapshot {
	return Snapshot{Days: CloneDays(days)}
}

// Restore returns a deep copy of the snapshot's days, so later edits can
// never reach back into stored history.
func (s Snapshot) Restore() []Day {
	return CloneDays(s.Days)
}

// CloneDays deep-copies a slice of day graphs.
func CloneDays(days []Day) []Day {
	out := make([]Day, len(days))
	for i, d := range days {
		out[i] = d.Clone()
	}
	return out
}
