package editor

import "github.com/wayfare/wayfare/pkg/workflow"

// =============================================================================
// MoveGesture - Interaction State Machine for Node Moves
// =============================================================================

// MoveGesture models a continuous node move as an explicit state machine:
// idle, or dragging one node from an origin position. Tracking updates are
// held inside the gesture and committed as a single position mutation on
// release, so per-frame pointer events never touch the editor and exactly
// one history snapshot is recorded per completed move.
//
// Cancelling restores nothing and records nothing - the editor was never
// mutated, so no partial state can escape the gesture boundary.
type MoveGesture struct {
	editor    *Editor
	dayNumber int
	nodeID    string
	origin    workflow.Position
	current   workflow.Position
	dragging  bool
}

// NewMoveGesture creates an idle gesture bound to an editor.
func NewMoveGesture(e *Editor) *MoveGesture {
	return &MoveGesture{editor: e}
}

// Dragging reports whether a move is in progress.
func (g *MoveGesture) Dragging() bool { return g.dragging }

// NodeID returns the id of the node being moved, or "" when idle.
func (g *MoveGesture) NodeID() string {
	if !g.dragging {
		return ""
	}
	return g.nodeID
}

// Begin starts a move of the given node. Returns false (staying idle) when
// a move is already in progress or the node does not exist.
func (g *MoveGesture) Begin(dayNumber int, nodeID string) bool {
	if g.dragging {
		return false
	}
	day, ok := g.editor.Day(dayNumber)
	if !ok {
		return false
	}
	n, ok := day.Node(nodeID)
	if !ok {
		return false
	}
	g.dayNumber = dayNumber
	g.nodeID = nodeID
	g.origin = n.Position
	g.current = n.Position
	g.dragging = true
	return true
}

// Track updates the in-flight position. Idempotent per frame: repeated
// calls with the same position accumulate no drift. No-op when idle.
func (g *MoveGesture) Track(pos workflow.Position) {
	if !g.dragging {
		return
	}
	g.current = pos
}

// Position returns the current in-flight position, or the origin when idle.
func (g *MoveGesture) Position() workflow.Position {
	if g.dragging {
		return g.current
	}
	return g.origin
}

// Commit ends the move, applying the final position through the editor as
// one mutation. A commit at the origin position is dropped entirely so
// clicking without moving never pollutes history.
func (g *MoveGesture) Commit() {
	if !g.dragging {
		return
	}
	g.dragging = false
	if g.current == g.origin {
		return
	}
	pos := g.current
	g.editor.UpdateNode(g.dayNumber, g.nodeID, Patch{Position: &pos})
}

// Cancel ends the move without touching the editor.
func (g *MoveGesture) Cancel() {
	g.dragging = false
}
