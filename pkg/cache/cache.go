// Package cache stores solver results so that repeating a deterministic run
// is free.
//
// A run is deterministic when its seed is fixed: the same instance, the same
// parameters and the same seed always produce the same tree. The [Keyer]
// turns those inputs into a key; the [Cache] backends store opaque bytes
// under it.
//
// Backends:
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis server, for batches spread over machines
//   - [NullCache]: never stores anything (--no-cache)
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiration.
type Cache interface {
	// Get returns the data stored under key. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}

// Clearer is implemented by backends that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// TTLSolution is how long a cached solution stays valid. Solutions do not go
// stale, the limit only bounds the size of the cache.
const TTLSolution = 30 * 24 * time.Hour

// =============================================================================
// Keys
// =============================================================================

// SolutionKeyOpts lists every parameter that influences a solver run.
type SolutionKeyOpts struct {
	Alg            string  `json:"alg"`
	Init           string  `json:"init"`
	Alpha          uint64  `json:"alpha"`
	Beta           uint64  `json:"beta"`
	GreedyAlpha    uint64  `json:"greedy_alpha"`
	GreedyBeta     uint64  `json:"greedy_beta"`
	Seed           uint64  `json:"seed"`
	Sort           bool    `json:"sort"`
	StopOnFeasible bool    `json:"stop_on_feasible"`
	ILS            *ILSKey `json:"ils,omitempty"`
}

// ILSKey holds the iterated local search parameters of a key.
type ILSKey struct {
	MaxIters           int    `json:"max_iters"`
	MaxItersNoImprov   int    `json:"max_iters_no_improv"`
	NumExcludes        int    `json:"num_excludes"`
	ItersRestart       int    `json:"iters_restart"`
	ItersRestartToBest int    `json:"iters_restart_to_best"`
	Restart            string `json:"restart"`
	MaxRebuildAttempts int    `json:"max_rebuild_attempts"`
}

// Keyer derives cache keys.
type Keyer interface {
	// SolutionKey returns the key of a run on the instance whose content
	// hashes to instanceHash.
	SolutionKey(instanceHash string, opts SolutionKeyOpts) string
}

// DefaultKeyer hashes the instance hash together with the options.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SolutionKey implements Keyer.
func (DefaultKeyer) SolutionKey(instanceHash string, opts SolutionKeyOpts) string {
	return hashKey("solution", instanceHash, opts)
}
