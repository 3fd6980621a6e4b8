// Package cache stores rendered artifacts between runs.
//
// Rendering a snapshot through Graphviz dominates export time, while the
// same DOT source always renders to the same bytes. Callers key artifacts by
// a hash of their inputs (see [Key]) and consult a [Cache] before rendering.
//
//   - [FileCache]: one file per entry under a directory, for the CLI
//   - [NullCache]: stores nothing, for tests and --no-cache
//   - [Scoped]: prefixes every key, to keep artifact kinds apart
package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// Cache stores opaque byte blobs by key.
type Cache interface {
	// Get returns the entry for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error
	Close() error
}

// DefaultDir returns the cache directory, $XDG_CACHE_HOME/graphedit or
// ~/.cache/graphedit.
func DefaultDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "graphedit")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "graphedit-cache")
	}
	return filepath.Join(home, ".cache", "graphedit")
}

// scoped prefixes keys before delegating.
type scoped struct {
	inner  Cache
	prefix string
}

// Scoped returns a view of c whose keys are prefixed with prefix.
func Scoped(c Cache, prefix string) Cache {
	return &scoped{inner: c, prefix: prefix}
}

func (s *scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *scoped) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.inner.Set(ctx, s.prefix+key, data, ttl)
}

func (s *scoped) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

func (s *scoped) Close() error { return s.inner.Close() }
