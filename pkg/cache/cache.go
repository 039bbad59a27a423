// Package cache stores computed wiring plans and rendered artifacts.
//
// # Overview
//
// A wiring plan is a pure function of its configuration, so every result can
// be cached under a key derived from the configuration alone. The package
// provides one interface and several backends:
//
//   - [FileCache]: one file per entry under a directory, for the CLI
//   - [NullCache]: never stores anything, for tests and --no-cache
//   - [RedisCache]: a shared cache for several API servers
//   - [MongoCache]: a document cache with server-side TTL expiry
//
// # Keys
//
// Keys are built by a [Keyer]. [DefaultKeyer] hashes its inputs with SHA-256;
// [ScopedKeyer] adds a fixed prefix so several tenants or environments can
// share one backend.
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.PlanKey(cache.Hash(configJSON))
//	if data, hit, err := c.Get(ctx, key); err == nil && hit {
//	    // use data
//	}
package cache

import (
	"context"
	"time"
)

// Default TTLs. Plans never go stale, so these only bound storage growth.
const (
	TTLPlan     = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with optional expiry.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. A zero ttl in Set means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop all of their entries.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Keyer derives cache keys.
type Keyer interface {
	// PlanKey returns the key of a computed plan for a configuration hash.
	PlanKey(configHash string) string

	// ArtifactKey returns the key of a rendered artifact of a plan.
	ArtifactKey(planHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render inputs that distinguish two artifacts of
// the same plan.
type ArtifactKeyOpts struct {
	View    string   `json:"view"`
	Format  string   `json:"format"`
	Layers  []string `json:"layers,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	Palette string   `json:"palette,omitempty"`
}

// DefaultKeyer builds keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// PlanKey implements [Keyer].
func (DefaultKeyer) PlanKey(configHash string) string {
	return hashKey("plan", configHash)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(planHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", planHash, opts)
}
