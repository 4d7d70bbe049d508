// Package cache provides byte-oriented caching for derivation results and
// rendered artifacts.
//
// # Backends
//
//   - [FileCache]: local directory of zstd-compressed entries, for the CLI
//   - [RedisCache]: shared cache for server deployments
//   - [NullCache]: disables caching
//
// # Keys
//
// Keys are built by a [Keyer] from a content hash of the input plus the
// options that influence the output, so any change to either yields a new
// key. [ScopedKeyer] adds a namespace prefix.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values per entry kind. Derivation and reconstruction
// are pure functions of their input, so their entries live long.
const (
	TTLDerive      = 30 * 24 * time.Hour
	TTLReconstruct = 30 * 24 * time.Hour
	TTLArtifact    = 7 * 24 * time.Hour
)

// Cache stores opaque byte values under string keys.
//
// Get reports a miss with ok == false and a nil error. Expired entries are
// misses. A ttl of zero on Set means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
