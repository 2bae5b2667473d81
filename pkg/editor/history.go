package editor

import "github.com/wayfare/wayfare/pkg/workflow"

// DefaultHistoryLimit bounds the undo stack when no explicit limit is set.
// The oldest snapshot is evicted once the limit is reached. History lives
// only for the session; nothing is persisted across trip reloads.
const DefaultHistoryLimit = 100

// History holds the undo and redo stacks of whole-trip snapshots.
//
// Snapshots are full deep copies rather than deltas - a deliberate
// simplicity/cost tradeoff that is acceptable at this scale (tens of nodes
// across a handful of days).
type History struct {
	undo  []workflow.Snapshot
	redo  []workflow.Snapshot
	limit int
}

// NewHistory creates a history with the given undo depth limit.
// A non-positive limit selects DefaultHistoryLimit.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Record pushes a pre-mutation snapshot onto the undo stack and clears the
// redo stack. Every mutation goes through here before applying its change.
func (h *History) Record(snap workflow.Snapshot) {
	h.undo = append(h.undo, snap)
	if len(h.undo) > h.limit {
		h.undo = h.undo[1:]
	}
	h.redo = nil
}

// Undo pops the most recent snapshot, pushing current onto the redo stack.
// Returns the popped snapshot and true, or a zero snapshot and false when
// the undo stack is empty.
func (h *History) Undo(current workflow.Snapshot) (workflow.Snapshot, bool) {
	if len(h.undo) == 0 {
		return workflow.Snapshot{}, false
	}
	snap := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, current)
	return snap, true
}

// Redo pops the most recently undone snapshot, pushing current onto the
// undo stack. Returns false when the redo stack is empty.
func (h *History) Redo(current workflow.Snapshot) (workflow.Snapshot, bool) {
	if len(h.redo) == 0 {
		return workflow.Snapshot{}, false
	}
	snap := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, current)
	return snap, true
}

// UndoDepth returns the number of snapshots on the undo stack.
func (h *History) UndoDepth() int { return len(h.undo) }

// RedoDepth returns the number of snapshots on the redo stack.
func (h *History) RedoDepth() int { return len(h.redo) }

// Stacks exports both stacks for session serialization.
func (h *History) Stacks() (undo, redo []workflow.Snapshot) {
	return append([]workflow.Snapshot(nil), h.undo...), append([]workflow.Snapshot(nil), h.redo...)
}

// SetStacks replaces both stacks, trimming the undo stack to the limit.
func (h *History) SetStacks(undo, redo []workflow.Snapshot) {
	if len(undo) > h.limit {
		undo = undo[len(undo)-h.limit:]
	}
	h.undo = append([]workflow.Snapshot(nil), undo...)
	h.redo = append([]workflow.Snapshot(nil), redo...)
}
