package schedule

import (
	"context"
	"sync"

	"github.com/wayfare/wayfare/pkg/itinerary"
)

// MemoryStore keeps schedules in memory, for development and tests.
type MemoryStore struct {
	mu        sync.RWMutex
	schedules map[string]itinerary.Schedule
}

// NewMemoryStore creates an empty in-memory schedule store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{schedules: make(map[string]itinerary.Schedule)}
}

// Save upserts the schedule for its trip.
func (s *MemoryStore) Save(ctx context.Context, sched itinerary.Schedule) error {
	return observeSave(ctx, "memory", sched, func() error {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.schedules[sched.TripID] = sched
		return nil
	})
}

// Load retrieves the schedule for a trip.
func (s *MemoryStore) Load(ctx context.Context, tripID string) (itinerary.Schedule, error) {
	return observeLoad(ctx, "memory", tripID, func() (itinerary.Schedule, error) {
		s.mu.RLock()
		defer s.mu.RUnlock()
		sched, ok := s.schedules[tripID]
		if !ok {
			return itinerary.Schedule{}, ErrNotFound
		}
		return sched, nil
	})
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
