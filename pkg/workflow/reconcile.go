package workflow

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/wayfare/wayfare/pkg/itinerary"
)

// =============================================================================
// Reconciler - Graph State → Canonical Schedule
// =============================================================================

// Fallback coordinates for nodes without a real location. The reference
// point is offset by a small per-node jitter so co-located fallbacks don't
// stack on the map. This masks "location unknown" as a plausible-looking
// point; see DESIGN.md before changing or removing it.
const (
	ReferenceLat = 38.7223
	ReferenceLng = -9.1393
	jitterRange  = 0.02
)

// ReconcileOptions tunes schedule projection.
type ReconcileOptions struct {
	// TripID is stamped onto the produced schedule.
	TripID string
}

// Reconcile projects the edited day graphs into the canonical, time-ordered
// itinerary schedule. This is the sole write path back to persisted form and
// runs only on an explicit apply - never implicitly during editing.
//
// Within each day, activities are ordered by parsed start time ascending.
// Graph edges are advisory and are never consulted for ordering.
func Reconcile(days []Day, opts ReconcileOptions) itinerary.Schedule {
	out := itinerary.Schedule{
		TripID: opts.TripID,
		Days:   make([]itinerary.DaySchedule, len(days)),
	}

	for i, day := range days {
		ds := itinerary.DaySchedule{
			DayNumber:  day.DayNumber,
			Date:       day.Date,
			Activities: make([]itinerary.PlannedActivity, 0, len(day.Nodes)),
		}
		for _, idx := range chronologicalOrder(day.Nodes) {
			ds.Activities = append(ds.Activities, projectNode(day.Nodes[idx]))
		}
		out.Days[i] = ds
	}
	return out
}

// projectNode converts one node into the persisted activity schema.
func projectNode(n Node) itinerary.PlannedActivity {
	return itinerary.PlannedActivity{
		Title:           n.Title,
		Type:            n.Type.String(),
		Time:            formatClock(n.StartMinutes()),
		DurationMinutes: n.DurationMinutes,
		Cost:            n.Cost,
		Description:     describeNode(n),
		Location:        nodeLocation(n),
		Rating:          n.Metadata.Rating,
		Hours:           hoursDisplay(n.Metadata),
		Address:         n.Metadata.Address,
		Tags:            n.Tags,
	}
}

// describeNode generates a short description from the node's type and tags.
func describeNode(n Node) string {
	if len(n.Tags) == 0 {
		return n.Type.Label()
	}
	return fmt.Sprintf("%s · %s", n.Type.Label(), strings.Join(n.Tags, ", "))
}

// hoursDisplay renders open/close metadata as a display string,
// e.g. "09:30 - 18:00". Returns "" when no hours are declared.
func hoursDisplay(m Metadata) string {
	switch {
	case m.OpenTime != "" && m.CloseTime != "":
		return m.OpenTime + " - " + m.CloseTime
	case m.OpenTime != "":
		return "from " + m.OpenTime
	case m.CloseTime != "":
		return "until " + m.CloseTime
	default:
		return ""
	}
}

// nodeLocation returns the node's real coordinates when present, otherwise
// the fixed reference point plus a jitter derived from the node ID. Hashing
// the ID instead of drawing random numbers keeps reconciliation reproducible
// for identical graph state.
func nodeLocation(n Node) itinerary.Coordinates {
	if n.Metadata.HasLocation {
		return itinerary.Coordinates{Lat: n.Metadata.Lat, Lng: n.Metadata.Lng}
	}
	return itinerary.Coordinates{
		Lat: ReferenceLat + jitter(n.ID+":lat"),
		Lng: ReferenceLng + jitter(n.ID+":lng"),
	}
}

// jitter maps a string onto a stable offset in [-jitterRange/2, jitterRange/2).
func jitter(seed string) float64 {
	h := fnv.New32a()
	h.Write([]byte(seed))
	frac := float64(h.Sum32()) / float64(1<<32)
	return (frac - 0.5) * jitterRange
}
