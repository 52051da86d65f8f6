package ports

import "github.com/partforge/partforge/internal/core/domain"

// CacheStore loads and persists the fingerprint cache.
//
// Cache I/O is strictly best-effort: a missing or corrupt file degrades
// to a cold cache, and a failed write must never fail an otherwise
// successful build.
type CacheStore interface {
	// Load reads the cache file. A missing or unparseable file yields an
	// empty cache, never an error.
	Load(path string) *domain.FingerprintCache

	// Save writes the cache as a single JSON document.
	Save(path string, cache *domain.FingerprintCache) error
}
