// Package scadcache persists the fingerprint cache as a flat JSON file.
package scadcache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/partforge/partforge/internal/core/domain"
	"github.com/partforge/partforge/internal/core/ports"
	"go.trai.ch/zerr"
)

// cacheKey is the recognized top-level key of the cache file. Unknown
// keys are tolerated and preserved on save.
const cacheKey = "scad_cache"

var _ ports.CacheStore = (*Store)(nil)

// Store implements ports.CacheStore using a single JSON document.
type Store struct {
	logger ports.Logger
}

// NewStore creates a new cache store.
func NewStore(logger ports.Logger) *Store {
	return &Store{logger: logger}
}

// Load reads the cache file at path. A missing file yields an empty
// cache; a corrupt file is logged and degrades to a cold cache. Load
// never fails the build.
func (s *Store) Load(path string) *domain.FingerprintCache {
	cache := domain.NewFingerprintCache()

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Error(zerr.With(zerr.Wrap(err, "reading cache failed"), "path", path))
		}
		return cache
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Error(zerr.With(zerr.Wrap(err, "parsing cache failed"), "path", path))
		return cache
	}

	for key, raw := range doc {
		if key != cacheKey {
			cache.SetUnknown(key, raw)
			continue
		}
		var entries map[string]string
		if err := json.Unmarshal(raw, &entries); err != nil {
			s.logger.Error(zerr.With(zerr.Wrap(err, "parsing cache entries failed"), "path", path))
			continue
		}
		for artifact, fingerprint := range entries {
			cache.Put(artifact, fingerprint)
		}
	}
	return cache
}

// Save writes the cache as a single JSON document, preserving any
// unknown top-level keys read at load time.
func (s *Store) Save(path string, cache *domain.FingerprintCache) error {
	doc := make(map[string]json.RawMessage, len(cache.Unknown())+1)
	for key, raw := range cache.Unknown() {
		doc[key] = raw
	}

	entries, err := json.Marshal(cache.Entries())
	if err != nil {
		return zerr.Wrap(err, "failed to marshal cache entries")
	}
	doc[cacheKey] = entries

	data, err := json.Marshal(doc)
	if err != nil {
		return zerr.Wrap(err, "failed to marshal cache")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // cache file is project-local state
		return zerr.With(zerr.Wrap(err, "failed to write cache"), "path", path)
	}
	s.logger.Debug(fmt.Sprintf("saved cache with %d entries to %s", cache.Len(), path))
	return nil
}
