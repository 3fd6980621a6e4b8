// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about graph mutations, pointer gestures, and HTTP requests
// served by the editor host.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are synchronous and called on the editor's goroutine, so
// implementations must return quickly.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetModelHooks(&myModelHooks{})
//	    observability.SetGestureHooks(&myGestureHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Model().OnMutation("create_edge", version, len(changes))
//	observability.Model().OnRejected("create_edge", string(errors.ErrCodeSelfLoop))
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Model Hooks
// =============================================================================

// ModelHooks receives events from graph mutations.
type ModelHooks interface {
	// OnMutation records a committed mutation and the version it produced.
	OnMutation(op string, version uint64, changes int)

	// OnRejected records a mutation that was refused with the given error code.
	OnRejected(op string, code string)
}

// =============================================================================
// Gesture Hooks
// =============================================================================

// GestureHooks receives events from the drag controller.
type GestureHooks interface {
	// OnGestureStart records the start of a node or edge drag.
	OnGestureStart(kind, key string)

	// OnGestureEnd records the end of a drag. committed is false for cancelled
	// or abandoned gestures.
	OnGestureEnd(kind, key string, committed bool, duration time.Duration)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP editor host.
type HTTPHooks interface {
	// OnRequest records an incoming HTTP request.
	OnRequest(method, path string)

	// OnResponse records the response written for a request.
	OnResponse(method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopModelHooks is a no-op implementation of ModelHooks.
type NoopModelHooks struct{}

func (NoopModelHooks) OnMutation(string, uint64, int) {}
func (NoopModelHooks) OnRejected(string, string)      {}

// NoopGestureHooks is a no-op implementation of GestureHooks.
type NoopGestureHooks struct{}

func (NoopGestureHooks) OnGestureStart(string, string)                    {}
func (NoopGestureHooks) OnGestureEnd(string, string, bool, time.Duration) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(string, string)                      {}
func (NoopHTTPHooks) OnResponse(string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	modelHooks   ModelHooks   = NoopModelHooks{}
	gestureHooks GestureHooks = NoopGestureHooks{}
	httpHooks    HTTPHooks    = NoopHTTPHooks{}
	hooksMu      sync.RWMutex
)

// SetModelHooks registers custom model hooks.
// This should be called once at application startup before any edits.
func SetModelHooks(h ModelHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		modelHooks = h
	}
}

// SetGestureHooks registers custom gesture hooks.
func SetGestureHooks(h GestureHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		gestureHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Model returns the registered model hooks.
func Model() ModelHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return modelHooks
}

// Gesture returns the registered gesture hooks.
func Gesture() GestureHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return gestureHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	modelHooks = NoopModelHooks{}
	gestureHooks = NoopGestureHooks{}
	httpHooks = NoopHTTPHooks{}
}
