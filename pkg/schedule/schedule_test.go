package schedule

import (
	"context"
	"errors"
	"testing"

	"github.com/wayfare/wayfare/pkg/itinerary"
	"github.com/wayfare/wayfare/pkg/workflow"
)

func demoSchedule() itinerary.Schedule {
	return workflow.Reconcile(workflow.DemoDays(), workflow.ReconcileOptions{TripID: "demo"})
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	defer store.Close(ctx)

	if _, err := store.Load(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing schedule err = %v, want ErrNotFound", err)
	}

	sched := demoSchedule()
	if err := store.Save(ctx, sched); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load(ctx, "demo")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.TripID != "demo" || got.ActivityCount() != sched.ActivityCount() {
		t.Errorf("loaded %q with %d activities", got.TripID, got.ActivityCount())
	}

	// Save is an upsert: a second save for the same trip replaces.
	sched.Days = sched.Days[:0]
	if err := store.Save(ctx, sched); err != nil {
		t.Fatal(err)
	}
	got, _ = store.Load(ctx, "demo")
	if len(got.Days) != 0 {
		t.Errorf("upsert did not replace: %d days", len(got.Days))
	}
}
