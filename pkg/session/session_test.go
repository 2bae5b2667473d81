package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/wayfare/wayfare/pkg/editor"
	"github.com/wayfare/wayfare/pkg/workflow"
)

func testSession(t *testing.T, ttl time.Duration) *Session {
	t.Helper()
	ed := editor.New(workflow.DemoDays())
	ed.AddNode(1, workflow.TypeFreeTime, workflow.Position{X: 5, Y: 5})
	return New(workflow.DemoTrip(), ed.State(), ttl)
}

func TestNewSession(t *testing.T) {
	sess := testSession(t, 0)
	if sess.ID == "" {
		t.Error("session has no id")
	}
	if sess.Trip.ID != "demo" {
		t.Errorf("trip id = %q", sess.Trip.ID)
	}
	// Zero TTL selects the default.
	if got := sess.ExpiresAt.Sub(sess.CreatedAt); got != DefaultTTL {
		t.Errorf("ttl = %v, want %v", got, DefaultTTL)
	}
}

func TestSessionExpiryAndTouch(t *testing.T) {
	sess := testSession(t, time.Hour)
	if sess.IsExpired() {
		t.Error("fresh session expired")
	}

	sess.ExpiresAt = time.Now().Add(-time.Minute)
	if !sess.IsExpired() {
		t.Error("past-expiry session not expired")
	}

	sess.Touch(time.Hour)
	if sess.IsExpired() {
		t.Error("touched session still expired")
	}
}

// storeTest exercises the Store contract against any backend.
func storeTest(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing session err = %v, want ErrNotFound", err)
	}

	sess := testSession(t, time.Hour)
	if err := store.Set(ctx, sess); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != sess.ID || got.Trip.ID != sess.Trip.ID {
		t.Errorf("got session %q trip %q", got.ID, got.Trip.ID)
	}
	if len(got.Editor.Days) != len(sess.Editor.Days) || len(got.Editor.Undo) != len(sess.Editor.Undo) {
		t.Error("editor state lost in round trip")
	}

	// The restored state rebuilds a working editor, history included.
	restored := editor.FromState(got.Editor)
	if !restored.CanUndo() {
		t.Error("restored editor lost undo history")
	}

	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, sess.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted session err = %v, want ErrNotFound", err)
	}

	// Deleting an absent session is not an error.
	if err := store.Delete(ctx, "missing"); err != nil {
		t.Errorf("delete missing: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	storeTest(t, store)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	defer store.Close()

	sess := testSession(t, time.Hour)
	sess.ExpiresAt = time.Now().Add(-time.Minute)
	if err := store.Set(ctx, sess); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Get(ctx, sess.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expired session err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreCleanup(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	defer store.Close()

	live := testSession(t, time.Hour)
	dead := testSession(t, time.Hour)
	dead.ExpiresAt = time.Now().Add(-time.Minute)
	store.Set(ctx, live)
	store.Set(ctx, dead)

	if err := store.Cleanup(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(ctx, live.ID); err != nil {
		t.Errorf("live session gone: %v", err)
	}
	if _, ok := store.sessions[dead.ID]; ok {
		t.Error("expired session survived cleanup")
	}
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)

	store, err := NewRedisStore(context.Background(), RedisConfig{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer store.Close()

	storeTest(t, store)
}

func TestRedisStoreTTL(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	store, err := NewRedisStore(ctx, RedisConfig{Addr: mr.Addr()})
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	sess := testSession(t, time.Hour)
	if err := store.Set(ctx, sess); err != nil {
		t.Fatal(err)
	}

	// Redis expires the key itself once its TTL elapses.
	mr.FastForward(2 * time.Hour)
	if _, err := store.Get(ctx, sess.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expired session err = %v, want ErrNotFound", err)
	}
}

func TestRedisStoreUnreachable(t *testing.T) {
	if _, err := NewRedisStore(context.Background(), RedisConfig{Addr: "localhost:1"}); err == nil {
		t.Error("expected connection error")
	}
}
