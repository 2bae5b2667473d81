package editor

import (
	"testing"

	"github.com/wayfare/wayfare/pkg/workflow"
)

func TestMoveGestureCommit(t *testing.T) {
	e := New(twoDayGraph())
	g := NewMoveGesture(e)

	if !g.Begin(1, "a") {
		t.Fatal("begin failed for existing node")
	}
	if !g.Dragging() || g.NodeID() != "a" {
		t.Errorf("gesture state = %v %q", g.Dragging(), g.NodeID())
	}

	// Many tracking frames, one mutation on commit.
	g.Track(workflow.Position{X: 10, Y: 10})
	g.Track(workflow.Position{X: 50, Y: 30})
	g.Track(workflow.Position{X: 100, Y: 60})
	g.Commit()

	day, _ := e.Day(1)
	n, _ := day.Node("a")
	if n.Position != (workflow.Position{X: 100, Y: 60}) {
		t.Errorf("committed position = %+v", n.Position)
	}

	// Exactly one history step for the whole drag.
	e.Undo()
	if e.CanUndo() {
		t.Error("drag recorded more than one snapshot")
	}
	day, _ = e.Day(1)
	n, _ = day.Node("a")
	if n.Position != (workflow.Position{}) {
		t.Errorf("undone position = %+v", n.Position)
	}
}

func TestMoveGestureCommitAtOriginIsDropped(t *testing.T) {
	e := New(twoDayGraph())
	g := NewMoveGesture(e)

	g.Begin(1, "a")
	g.Commit()

	if e.CanUndo() {
		t.Error("click-without-move polluted history")
	}
}

func TestMoveGestureCancel(t *testing.T) {
	e := New(twoDayGraph())
	g := NewMoveGesture(e)

	g.Begin(1, "a")
	g.Track(workflow.Position{X: 500, Y: 500})
	g.Cancel()

	day, _ := e.Day(1)
	n, _ := day.Node("a")
	if n.Position != (workflow.Position{}) {
		t.Errorf("cancel leaked position %+v", n.Position)
	}
	if e.CanUndo() {
		t.Error("cancel recorded a snapshot")
	}
	if g.Dragging() {
		t.Error("gesture still dragging after cancel")
	}
}

func TestMoveGestureBeginGuards(t *testing.T) {
	e := New(twoDayGraph())
	g := NewMoveGesture(e)

	if g.Begin(1, "missing") {
		t.Error("begin succeeded for unknown node")
	}
	if g.Begin(99, "a") {
		t.Error("begin succeeded for unknown day")
	}

	g.Begin(1, "a")
	if g.Begin(1, "b") {
		t.Error("second begin succeeded mid-drag")
	}
}

func TestMoveGestureTrackWhileIdle(t *testing.T) {
	e := New(twoDayGraph())
	g := NewMoveGesture(e)

	g.Track(workflow.Position{X: 42, Y: 42})
	g.Commit()

	if e.CanUndo() {
		t.Error("idle gesture mutated editor")
	}
}
