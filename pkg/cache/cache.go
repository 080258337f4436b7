// Package cache stores rendered artifacts in memory so repeated requests for
// the same invoice are served without re-rendering.
//
// Entries live only as long as the process. Keys are derived from a content
// hash of the invoice input plus every option that changes the output, so a
// hit always returns byte-identical output to a fresh render.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long rendered artifacts stay cached.
const TTLArtifact = 15 * time.Minute

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key; ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key if present.
	Delete(ctx context.Context, key string) error
	// Close releases the cache.
	Close() error
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format  string `json:"format"`
	Palette string `json:"palette"` // hash of the resolved palette
	Page    any    `json:"page"`
}

// Keyer derives cache keys.
type Keyer interface {
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer builds "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return artifactKey(inputHash, opts)
}
