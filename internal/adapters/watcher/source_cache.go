package watcher

import (
	"io"
	"os"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// SourceHashCache tracks the content hash of watched files so that
// events that do not change bytes (touch, editor re-save) are dropped
// instead of triggering a rebuild.
type SourceHashCache struct {
	mu     sync.Mutex
	hashes map[string]uint64
}

// NewSourceHashCache creates an empty source hash cache.
func NewSourceHashCache() *SourceHashCache {
	return &SourceHashCache{hashes: make(map[string]uint64)}
}

// Changed reports whether the file at path has different content than
// the last observation and records the new hash. Unreadable files are
// reported as changed, so a deleted source still triggers a rebuild.
func (c *SourceHashCache) Changed(path string) bool {
	hash, err := hashFile(path)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		delete(c.hashes, path)
		return true
	}

	if prev, ok := c.hashes[path]; ok && prev == hash {
		return false
	}
	c.hashes[path] = hash
	return true
}

func hashFile(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the watch set
	if err != nil {
		return 0, err
	}
	defer f.Close() //nolint:errcheck // read-only file

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}
