package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wayfare/wayfare/pkg/editor"
	apperrors "github.com/wayfare/wayfare/pkg/errors"
	"github.com/wayfare/wayfare/pkg/itinerary"
	"github.com/wayfare/wayfare/pkg/observability"
	"github.com/wayfare/wayfare/pkg/session"
	"github.com/wayfare/wayfare/pkg/workflow"
)

// =============================================================================
// Request/Response Types
// =============================================================================

type createSessionRequest struct {
	Trip *itinerary.Trip `json:"trip,omitempty"`
	Demo bool            `json:"demo,omitempty"`
}

type sessionResponse struct {
	SessionID string         `json:"session_id"`
	TripID    string         `json:"trip_id"`
	ActiveDay int            `json:"active_day"`
	Days      []workflow.Day `json:"days"`
	CanUndo   bool           `json:"can_undo"`
	CanRedo   bool           `json:"can_redo"`
}

type addNodeRequest struct {
	Type     workflow.NodeType `json:"type"`
	Position workflow.Position `json:"position"`
}

type addNodeResponse struct {
	NodeID string         `json:"node_id"`
	Days   []workflow.Day `json:"days"`
}

type edgeRequest struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type validationResponse struct {
	DayNumber int             `json:"day_number"`
	Nodes     []workflow.Node `json:"nodes"`
}

type applyResponse struct {
	Schedule itinerary.Schedule `json:"schedule"`
	Saved    bool               `json:"saved"`
}

// =============================================================================
// Session Lifecycle
// =============================================================================

// handleCreateSession opens an editor session from a trip payload. The demo
// flag substitutes the built-in sample trip, mirroring the CLI's --demo.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, err, "decode request body"))
		return
	}

	var trip itinerary.Trip
	switch {
	case req.Demo:
		trip = workflow.DemoTrip()
	case req.Trip != nil:
		trip = *req.Trip
	default:
		writeError(w, apperrors.New(apperrors.ErrCodeInvalidRequest, "request needs a trip or demo=true"))
		return
	}

	days, ok := workflow.FromTrip(trip)
	if !ok {
		writeError(w, apperrors.New(apperrors.ErrCodeInvalidTrip, "trip %q has no days", trip.ID))
		return
	}

	ed := s.newEditor(days)
	sess := session.New(trip, ed.State(), s.ttl)
	if err := s.sessions.Set(r.Context(), sess); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeSessionStore, err, "store session"))
		return
	}

	s.logger.Info("session created", "session", sess.ID, "trip", trip.ID, "days", len(days))
	writeJSON(w, http.StatusCreated, sessionView(sess, ed))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ed, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sessionView(sess, ed))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeSessionStore, err, "delete session"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Mutations
// =============================================================================

func (s *Server) handleAddNode(w http.ResponseWriter, r *http.Request) {
	sess, ed, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	dayNumber, ok := dayParam(w, r)
	if !ok {
		return
	}

	var req addNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, err, "decode request body"))
		return
	}

	id := ed.AddNode(dayNumber, req.Type, req.Position)
	if id == "" {
		writeError(w, apperrors.New(apperrors.ErrCodeInvalidDay, "day %d does not exist", dayNumber))
		return
	}
	if !s.saveSession(w, r, sess, ed) {
		return
	}
	writeJSON(w, http.StatusCreated, addNodeResponse{NodeID: id, Days: ed.Days()})
}

func (s *Server) handleUpdateNode(w http.ResponseWriter, r *http.Request) {
	sess, ed, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	dayNumber, ok := dayParam(w, r)
	if !ok {
		return
	}

	var patch editor.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, err, "decode request body"))
		return
	}

	ed.UpdateNode(dayNumber, chi.URLParam(r, "nodeID"), patch)
	if !s.saveSession(w, r, sess, ed) {
		return
	}
	writeJSON(w, http.StatusOK, sessionView(sess, ed))
}

func (s *Server) handleDeleteNode(w http.ResponseWriter, r *http.Request) {
	sess, ed, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	dayNumber, ok := dayParam(w, r)
	if !ok {
		return
	}

	ed.DeleteNode(dayNumber, chi.URLParam(r, "nodeID"))
	if !s.saveSession(w, r, sess, ed) {
		return
	}
	writeJSON(w, http.StatusOK, sessionView(sess, ed))
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	s.handleEdge(w, r, func(ed *editor.Editor, dayNumber int, req edgeRequest) {
		ed.Connect(dayNumber, req.Source, req.Target)
	})
}

func (s *Server) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	s.handleEdge(w, r, func(ed *editor.Editor, dayNumber int, req edgeRequest) {
		ed.Disconnect(dayNumber, req.Source, req.Target)
	})
}

func (s *Server) handleEdge(w http.ResponseWriter, r *http.Request, op func(*editor.Editor, int, edgeRequest)) {
	sess, ed, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	dayNumber, ok := dayParam(w, r)
	if !ok {
		return
	}

	var req edgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, err, "decode request body"))
		return
	}

	op(ed, dayNumber, req)
	if !s.saveSession(w, r, sess, ed) {
		return
	}
	writeJSON(w, http.StatusOK, sessionView(sess, ed))
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	sess, ed, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	dayNumber, ok := dayParam(w, r)
	if !ok {
		return
	}

	ed.AutoLayout(dayNumber)
	if !s.saveSession(w, r, sess, ed) {
		return
	}
	writeJSON(w, http.StatusOK, sessionView(sess, ed))
}

// =============================================================================
// History & Derived Views
// =============================================================================

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	sess, ed, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	ed.Undo()
	if !s.saveSession(w, r, sess, ed) {
		return
	}
	writeJSON(w, http.StatusOK, sessionView(sess, ed))
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	sess, ed, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	ed.Redo()
	if !s.saveSession(w, r, sess, ed) {
		return
	}
	writeJSON(w, http.StatusOK, sessionView(sess, ed))
}

func (s *Server) handleValidation(w http.ResponseWriter, r *http.Request) {
	_, ed, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	dayNumber, ok := dayParam(w, r)
	if !ok {
		return
	}

	nodes := ed.Validate(dayNumber)
	if nodes == nil {
		writeError(w, apperrors.New(apperrors.ErrCodeInvalidDay, "day %d does not exist", dayNumber))
		return
	}
	writeJSON(w, http.StatusOK, validationResponse{DayNumber: dayNumber, Nodes: nodes})
}

// handleApply reconciles the session's graphs into a schedule and persists it
// in the schedule store. This is the only path from editing to persistence.
func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	sess, ed, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	start := time.Now()
	observability.Apply().OnApplyStart(r.Context(), sess.Trip.ID)

	sched := ed.Apply(sess.Trip.ID)
	err := s.schedules.Save(r.Context(), sched)
	observability.Apply().OnApplyComplete(r.Context(), sess.Trip.ID, sched.ActivityCount(), time.Since(start), err)
	if err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeStore, err, "save schedule %s", sched.TripID))
		return
	}

	s.logger.Info("schedule applied", "session", sess.ID, "trip", sched.TripID, "days", len(sched.Days))
	writeJSON(w, http.StatusOK, applyResponse{Schedule: sched, Saved: true})
}

// =============================================================================
// Session Plumbing
// =============================================================================

func (s *Server) newEditor(days []workflow.Day) *editor.Editor {
	return editor.New(days,
		editor.WithValidateOptions(s.vopts),
		editor.WithLayoutOptions(s.lopts),
	)
}

// loadSession fetches the session named in the URL and rebuilds its editor.
// On failure it writes the error response and returns ok=false.
func (s *Server) loadSession(w http.ResponseWriter, r *http.Request) (*session.Session, *editor.Editor, bool) {
	id := chi.URLParam(r, "sessionID")
	sess, err := s.sessions.Get(r.Context(), id)
	if errors.Is(err, session.ErrNotFound) {
		writeError(w, apperrors.New(apperrors.ErrCodeSessionNotFound, "session %q not found", id))
		return nil, nil, false
	}
	if err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeSessionStore, err, "load session %q", id))
		return nil, nil, false
	}

	ed := editor.FromState(sess.Editor,
		editor.WithValidateOptions(s.vopts),
		editor.WithLayoutOptions(s.lopts),
	)
	return sess, ed, true
}

// saveSession writes the editor's state back into the session and refreshes
// its expiry. On failure it writes the error response and returns false.
func (s *Server) saveSession(w http.ResponseWriter, r *http.Request, sess *session.Session, ed *editor.Editor) bool {
	sess.Editor = ed.State()
	sess.Touch(s.ttl)
	if err := s.sessions.Set(r.Context(), sess); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeSessionStore, err, "store session %q", sess.ID))
		return false
	}
	return true
}

func sessionView(sess *session.Session, ed *editor.Editor) sessionResponse {
	return sessionResponse{
		SessionID: sess.ID,
		TripID:    sess.Trip.ID,
		ActiveDay: ed.ActiveDay(),
		Days:      ed.Days(),
		CanUndo:   ed.CanUndo(),
		CanRedo:   ed.CanRedo(),
	}
}

func dayParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "dayNumber")
	n, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, apperrors.New(apperrors.ErrCodeInvalidRequest, "invalid day number %q", raw))
		return 0, false
	}
	return n, true
}
