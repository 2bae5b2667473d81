// Package observability provides hooks for metrics, tracing, and logging.
//
// The core editing packages stay dependency-free from observability
// backends: they emit events through hook interfaces with no-op defaults,
// and the application registers real implementations at startup. This
// avoids import cycles and lets different backends (OpenTelemetry,
// Prometheus, plain logs) plug in without touching the libraries.
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetEditorHooks(&myEditorHooks{})
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Editor Hooks
// =============================================================================

// EditorHooks receives events from graph editing operations. Editor
// operations are synchronous UI-driven calls, so no context flows here.
type EditorHooks interface {
	// OnMutation records a structural mutation (add_node, update_node,
	// delete_node, connect, disconnect, auto_layout).
	OnMutation(op string, dayNumber int, nodeID string)

	// OnUndo records an undo, with the remaining undo depth.
	OnUndo(depth int)

	// OnRedo records a redo, with the remaining redo depth.
	OnRedo(depth int)
}

// =============================================================================
// Apply Hooks
// =============================================================================

// ApplyHooks receives events around schedule reconciliation and persistence.
type ApplyHooks interface {
	// OnApplyStart records the beginning of an apply for a trip.
	OnApplyStart(ctx context.Context, tripID string)

	// OnApplyComplete records the end of an apply.
	OnApplyComplete(ctx context.Context, tripID string, activityCount int, duration time.Duration, err error)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from schedule and session store operations.
type StoreHooks interface {
	// OnSave records a store write.
	OnSave(ctx context.Context, kind, key string, duration time.Duration, err error)

	// OnLoad records a store read and whether the key was found.
	OnLoad(ctx context.Context, kind, key string, found bool, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEditorHooks is a no-op implementation of EditorHooks.
type NoopEditorHooks struct{}

func (NoopEditorHooks) OnMutation(string, int, string) {}
func (NoopEditorHooks) OnUndo(int)                     {}
func (NoopEditorHooks) OnRedo(int)                     {}

// NoopApplyHooks is a no-op implementation of ApplyHooks.
type NoopApplyHooks struct{}

func (NoopApplyHooks) OnApplyStart(context.Context, string) {}
func (NoopApplyHooks) OnApplyComplete(context.Context, string, int, time.Duration, error) {
}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnSave(context.Context, string, string, time.Duration, error) {}
func (NoopStoreHooks) OnLoad(context.Context, string, string, bool, error)          {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	editorHooks EditorHooks = NoopEditorHooks{}
	applyHooks  ApplyHooks  = NoopApplyHooks{}
	storeHooks  StoreHooks  = NoopStoreHooks{}
	hooksMu     sync.RWMutex
)

// SetEditorHooks registers custom editor hooks.
// Call once at application startup before any editing begins.
func SetEditorHooks(h EditorHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		editorHooks = h
	}
}

// SetApplyHooks registers custom apply hooks.
func SetApplyHooks(h ApplyHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		applyHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// Editor returns the registered editor hooks.
func Editor() EditorHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return editorHooks
}

// Apply returns the registered apply hooks.
func Apply() ApplyHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return applyHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	editorHooks = NoopEditorHooks{}
	applyHooks = NoopApplyHooks{}
	storeHooks = NoopStoreHooks{}
}
