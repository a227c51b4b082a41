// Package observability provides hooks for metrics and tracing.
//
// Libraries emit events through the registered hooks; the defaults are
// no-ops, so instrumentation costs nothing unless a backend is installed.
// Backends are registered by main, which keeps the solver packages free of
// any dependency on a particular metrics system.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSolveHooks(metrics.Hooks())
//	    observability.SetCacheHooks(metrics.Hooks())
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Solve().OnSolveStart(ctx, name, alg)
//	// ... solve ...
//	observability.Solve().OnSolveComplete(ctx, name, alg, conflicts, weight, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Solve Hooks
// =============================================================================

// SolveHooks receives events from the solver pipeline and the iterated
// local search.
type SolveHooks interface {
	// OnSolveStart is called before the initial tree is built.
	OnSolveStart(ctx context.Context, instance, alg string)

	// OnSolveComplete is called with the final tree's conflicts and weight.
	OnSolveComplete(ctx context.Context, instance, alg string, conflicts, weight uint64, duration time.Duration, err error)

	// OnIteration is called after every local search run inside ILS.
	OnIteration(ctx context.Context, iter int, conflicts, weight uint64)

	// OnImprovement is called whenever ILS records a new best tree.
	OnImprovement(ctx context.Context, conflicts, weight uint64)

	// OnRestart is called when ILS rebuilds the tree from scratch.
	OnRestart(ctx context.Context, strategy string)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSolveHooks is a no-op implementation of SolveHooks.
type NoopSolveHooks struct{}

func (NoopSolveHooks) OnSolveStart(context.Context, string, string) {}
func (NoopSolveHooks) OnSolveComplete(context.Context, string, string, uint64, uint64, time.Duration, error) {
}
func (NoopSolveHooks) OnIteration(context.Context, int, uint64, uint64) {}
func (NoopSolveHooks) OnImprovement(context.Context, uint64, uint64)    {}
func (NoopSolveHooks) OnRestart(context.Context, string)                {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	solveHooks SolveHooks = NoopSolveHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	hooksMu    sync.RWMutex
)

// SetSolveHooks registers custom solve hooks.
// This should be called once at application startup before any solve.
func SetSolveHooks(h SolveHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		solveHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Solve returns the registered solve hooks.
func Solve() SolveHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return solveHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	solveHooks = NoopSolveHooks{}
	cacheHooks = NoopCacheHooks{}
}
