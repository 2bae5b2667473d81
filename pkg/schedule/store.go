// Package schedule persists reconciled itinerary schedules.
//
// The graph editing core performs no I/O; on an explicit apply, the
// reconciled schedule is handed to a Store, which is the external
// persistence collaborator. Failures here never reach back into the editor.
package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/wayfare/wayfare/pkg/itinerary"
	"github.com/wayfare/wayfare/pkg/observability"
)

// ErrNotFound is returned when no schedule exists for a trip.
var ErrNotFound = errors.New("schedule not found")

// Store persists reconciled schedules keyed by trip ID.
type Store interface {
	// Save upserts the schedule for its trip.
	Save(ctx context.Context, s itinerary.Schedule) error

	// Load retrieves the schedule for a trip.
	// Returns ErrNotFound when none has been saved.
	Load(ctx context.Context, tripID string) (itinerary.Schedule, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// observeSave wraps a save with store hooks.
func observeSave(ctx context.Context, kind string, s itinerary.Schedule, save func() error) error {
	start := time.Now()
	err := save()
	observability.Store().OnSave(ctx, kind, s.TripID, time.Since(start), err)
	return err
}

// observeLoad wraps a load with store hooks.
func observeLoad(ctx context.Context, kind, tripID string, load func() (itinerary.Schedule, error)) (itinerary.Schedule, error) {
	s, err := load()
	observability.Store().OnLoad(ctx, kind, tripID, err == nil, err)
	return s, err
}
