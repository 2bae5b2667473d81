// Package editor implements the graph mutation surface over itinerary day
// graphs: structural operations (add/update/delete node, connect/disconnect
// edge), undo/redo history over whole-trip snapshots, and the move-gesture
// state machine used by interactive surfaces.
//
// Every operation runs synchronously to completion and never returns an
// error: mutations referencing unknown ids or duplicate edges are no-ops,
// so the editing surface stays usable no matter what it asks for. History
// snapshots always span all days of the trip, not just the active day.
//
// Editor is not safe for concurrent use; it models a single user editing
// one trip in one execution context.
package editor

import (
	"slices"

	"github.com/google/uuid"

	"github.com/wayfare/wayfare/pkg/itinerary"
	"github.com/wayfare/wayfare/pkg/observability"
	"github.com/wayfare/wayfare/pkg/workflow"
)

// Default field values for editor-created nodes, per node type.
const (
	defaultAddDuration   = 60
	defaultMealDuration  = 90
	defaultHotelDuration = 120
)

// Patch carries partial node updates. Nil fields are left untouched by
// UpdateNode; set fields are merged into the node.
type Patch struct {
	Type            *workflow.NodeType `json:"type,omitempty"`
	Title           *string            `json:"title,omitempty"`
	Tags            *[]string          `json:"tags,omitempty"`
	Start           *string            `json:"start,omitempty"`
	DurationMinutes *int               `json:"duration_minutes,omitempty"`
	Cost            *float64           `json:"cost,omitempty"`
	Position        *workflow.Position `json:"position,omitempty"`
	Metadata        *workflow.Metadata `json:"metadata,omitempty"`
}

// Editor holds the full multi-day graph state of one trip under edit.
type Editor struct {
	days    []workflow.Day
	active  int
	history *History
	vopts   workflow.ValidateOptions
	lopts   workflow.LayoutOptions
}

// Option configures an Editor.
type Option func(*Editor)

// WithValidateOptions overrides validation thresholds.
func WithValidateOptions(opts workflow.ValidateOptions) Option {
	return func(e *Editor) { e.vopts = opts }
}

// WithLayoutOptions overrides auto-layout geometry.
func WithLayoutOptions(opts workflow.LayoutOptions) Option {
	return func(e *Editor) { e.lopts = opts }
}

// WithHistoryLimit bounds the undo stack depth.
func WithHistoryLimit(limit int) Option {
	return func(e *Editor) { e.history = NewHistory(limit) }
}

// New creates an editor over the given day graphs. The days are deep-copied
// and validated, so the caller's slice stays untouched by later edits.
func New(days []workflow.Day, opts ...Option) *Editor {
	e := &Editor{
		days:    workflow.CloneDays(days),
		history: NewHistory(0),
	}
	for _, opt := range opts {
		opt(e)
	}
	for i := range e.days {
		e.days[i].Nodes = workflow.Validate(e.days[i], e.vopts)
	}
	return e
}

// Days returns a deep copy of the current multi-day graph state.
func (e *Editor) Days() []workflow.Day {
	return workflow.CloneDays(e.days)
}

// Day returns a deep copy of the day with the given day number and true,
// or a zero day and false when absent.
func (e *Editor) Day(dayNumber int) (workflow.Day, bool) {
	if i := e.dayIndex(dayNumber); i >= 0 {
		return e.days[i].Clone(), true
	}
	return workflow.Day{}, false
}

// ActiveDay returns the day number currently selected for editing.
func (e *Editor) ActiveDay() int {
	if len(e.days) == 0 {
		return 0
	}
	return e.days[e.active].DayNumber
}

// SetActiveDay selects the day under edit. Unknown day numbers are ignored.
// Switching days never touches history: snapshots span the whole trip.
func (e *Editor) SetActiveDay(dayNumber int) {
	if i := e.dayIndex(dayNumber); i >= 0 {
		e.active = i
	}
}

// =============================================================================
// Structural Mutations
// =============================================================================

// AddNode creates a node of the given type at the given position in the day,
// with type-appropriate defaults: a placeholder title, a plausible duration,
// zero cost, and no tags or edges. Returns the new node's id, or "" when the
// day does not exist.
func (e *Editor) AddNode(dayNumber int, t workflow.NodeType, pos workflow.Position) string {
	i := e.dayIndex(dayNumber)
	if i < 0 {
		return ""
	}
	e.record()

	n := workflow.Node{
		ID:              uuid.NewString(),
		Type:            t,
		Title:           "New " + t.Label(),
		Start:           workflow.DefaultStart,
		DurationMinutes: defaultDuration(t),
		Position:        pos,
	}
	e.days[i].Nodes = append(e.days[i].Nodes, n)
	e.revalidate(i)
	observability.Editor().OnMutation("add_node", dayNumber, n.ID)
	return n.ID
}

// UpdateNode merges the patch into the node with the given id and
// revalidates the whole day. Unknown ids are a no-op, not an error.
func (e *Editor) UpdateNode(dayNumber int, id string, p Patch) {
	i := e.dayIndex(dayNumber)
	if i < 0 {
		return
	}
	j := nodeIndex(e.days[i].Nodes, id)
	if j < 0 {
		return
	}
	e.record()

	n := &e.days[i].Nodes[j]
	if p.Type != nil {
		n.Type = *p.Type
	}
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Tags != nil {
		n.Tags = slices.Clone(*p.Tags)
	}
	if p.Start != nil {
		n.Start = workflow.CoerceStart(*p.Start)
	}
	if p.DurationMinutes != nil && *p.DurationMinutes >= 0 {
		n.DurationMinutes = *p.DurationMinutes
	}
	if p.Cost != nil {
		n.Cost = *p.Cost
	}
	if p.Position != nil {
		n.Position = *p.Position
	}
	if p.Metadata != nil {
		n.Metadata = *p.Metadata
	}
	e.revalidate(i)
	observability.Editor().OnMutation("update_node", dayNumber, id)
}

// DeleteNode removes the node and every edge referencing it as source or
// target. Unknown ids are a no-op.
func (e *Editor) DeleteNode(dayNumber int, id string) {
	i := e.dayIndex(dayNumber)
	if i < 0 || nodeIndex(e.days[i].Nodes, id) < 0 {
		return
	}
	e.record()

	day := &e.days[i]
	day.Nodes = slices.DeleteFunc(day.Nodes, func(n workflow.Node) bool { return n.ID == id })
	day.Edges = slices.DeleteFunc(day.Edges, func(ed workflow.Edge) bool {
		return ed.Source == id || ed.Target == id
	})
	e.revalidate(i)
	observability.Editor().OnMutation("delete_node", dayNumber, id)
}

// Connect adds a directed advisory edge. Requests referencing unknown nodes,
// self-loops, or an already-connected ordered pair are rejected as no-ops -
// duplicate edges are never merged.
func (e *Editor) Connect(dayNumber int, sourceID, targetID string) {
	i := e.dayIndex(dayNumber)
	if i < 0 || sourceID == targetID {
		return
	}
	day := &e.days[i]
	if nodeIndex(day.Nodes, sourceID) < 0 || nodeIndex(day.Nodes, targetID) < 0 {
		return
	}
	if day.HasEdge(sourceID, targetID) {
		return
	}
	e.record()
	day.Edges = append(day.Edges, workflow.Edge{Source: sourceID, Target: targetID})
	observability.Editor().OnMutation("connect", dayNumber, sourceID)
}

// Disconnect removes the edge for the exact ordered pair, if present.
func (e *Editor) Disconnect(dayNumber int, sourceID, targetID string) {
	i := e.dayIndex(dayNumber)
	if i < 0 || !e.days[i].HasEdge(sourceID, targetID) {
		return
	}
	e.record()
	e.days[i].Edges = slices.DeleteFunc(e.days[i].Edges, func(ed workflow.Edge) bool {
		return ed.Source == sourceID && ed.Target == targetID
	})
	observability.Editor().OnMutation("disconnect", dayNumber, sourceID)
}

// AutoLayout repositions the day's nodes into chronological order.
// Only positions change, but the operation is undoable like any mutation.
func (e *Editor) AutoLayout(dayNumber int) {
	i := e.dayIndex(dayNumber)
	if i < 0 {
		return
	}
	e.record()
	e.days[i].Nodes = workflow.Layout(e.days[i].Nodes, e.lopts)
	observability.Editor().OnMutation("auto_layout", dayNumber, "")
}

// =============================================================================
// History
// =============================================================================

// Undo restores the most recent snapshot, pushing the current state onto the
// redo stack. No-op when the undo stack is empty.
func (e *Editor) Undo() {
	snap, ok := e.history.Undo(workflow.TakeSnapshot(e.days))
	if !ok {
		return
	}
	e.restore(snap)
	observability.Editor().OnUndo(e.history.UndoDepth())
}

// Redo restores the most recently undone state, pushing the current state
// onto the undo stack. No-op when the redo stack is empty.
func (e *Editor) Redo() {
	snap, ok := e.history.Redo(workflow.TakeSnapshot(e.days))
	if !ok {
		return
	}
	e.restore(snap)
	observability.Editor().OnRedo(e.history.RedoDepth())
}

// CanUndo reports whether an undo step is available.
func (e *Editor) CanUndo() bool { return e.history.UndoDepth() > 0 }

// CanRedo reports whether a redo step is available.
func (e *Editor) CanRedo() bool { return e.history.RedoDepth() > 0 }

// =============================================================================
// Derived Views & Apply
// =============================================================================

// Validate returns the refreshed node set for the day without mutating
// editor state.
func (e *Editor) Validate(dayNumber int) []workflow.Node {
	if i := e.dayIndex(dayNumber); i >= 0 {
		return workflow.Validate(e.days[i], e.vopts)
	}
	return nil
}

// Apply projects the current graphs into the canonical schedule. This is
// the explicit commit point; editing never triggers it implicitly.
func (e *Editor) Apply(tripID string) itinerary.Schedule {
	return workflow.Reconcile(e.days, workflow.ReconcileOptions{TripID: tripID})
}

// =============================================================================
// Session State Bridge
// =============================================================================

// State is the serializable form of an editor, used by session stores.
type State struct {
	Days      []workflow.Day      `json:"days" bson:"days"`
	ActiveDay int                 `json:"active_day" bson:"active_day"`
	Undo      []workflow.Snapshot `json:"undo,omitempty" bson:"undo,omitempty"`
	Redo      []workflow.Snapshot `json:"redo,omitempty" bson:"redo,omitempty"`
}

// State exports the editor's full state, history included.
func (e *Editor) State() State {
	undo, redo := e.history.Stacks()
	return State{
		Days:      workflow.CloneDays(e.days),
		ActiveDay: e.ActiveDay(),
		Undo:      undo,
		Redo:      redo,
	}
}

// FromState reconstructs an editor from previously exported state.
func FromState(s State, opts ...Option) *Editor {
	e := New(s.Days, opts...)
	e.SetActiveDay(s.ActiveDay)
	e.history.SetStacks(s.Undo, s.Redo)
	return e
}

// =============================================================================
// Internals
// =============================================================================

// record pushes a pre-mutation snapshot and clears the redo stack. Called by
// every mutating operation after its no-op checks, so aborted requests never
// litter history.
func (e *Editor) record() {
	e.history.Record(workflow.TakeSnapshot(e.days))
}

func (e *Editor) restore(snap workflow.Snapshot) {
	e.days = snap.Restore()
	if e.active >= len(e.days) {
		e.active = 0
	}
	for i := range e.days {
		e.days[i].Nodes = workflow.Validate(e.days[i], e.vopts)
	}
}

func (e *Editor) revalidate(dayIdx int) {
	e.days[dayIdx].Nodes = workflow.Validate(e.days[dayIdx], e.vopts)
}

func (e *Editor) dayIndex(dayNumber int) int {
	for i, d := range e.days {
		if d.DayNumber == dayNumber {
			return i
		}
	}
	return -1
}

func nodeIndex(nodes []workflow.Node, id string) int {
	for i, n := range nodes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func defaultDuration(t workflow.NodeType) int {
	switch t {
	case workflow.TypeMeal:
		return defaultMealDuration
	case workflow.TypeHotel:
		return defaultHotelDuration
	default:
		return defaultAddDuration
	}
}
