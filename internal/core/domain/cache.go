package domain

import "encoding/json"

// FingerprintCache maps artifact paths to the fingerprint of their
// (description, artifact) file pair. It is mutated in memory during a
// single build invocation and persisted once at the end.
type FingerprintCache struct {
	entries map[string]string

	// unknown holds top-level cache-file keys this version does not
	// recognize. They are preserved verbatim on save so newer and older
	// versions can share one cache file.
	unknown map[string]json.RawMessage
}

// NewFingerprintCache creates an empty cache.
func NewFingerprintCache() *FingerprintCache {
	return &FingerprintCache{
		entries: make(map[string]string),
		unknown: make(map[string]json.RawMessage),
	}
}

// Lookup returns the stored fingerprint for an artifact path.
func (c *FingerprintCache) Lookup(artifactPath string) (string, bool) {
	fp, ok := c.entries[artifactPath]
	return fp, ok
}

// Put stores the fingerprint for an artifact path.
func (c *FingerprintCache) Put(artifactPath, fingerprint string) {
	c.entries[artifactPath] = fingerprint
}

// Len returns the number of cached entries.
func (c *FingerprintCache) Len() int {
	return len(c.entries)
}

// Entries returns a copy of the path-to-fingerprint mapping.
func (c *FingerprintCache) Entries() map[string]string {
	out := make(map[string]string, len(c.entries))
	for k, v := range c.entries {
		out[k] = v
	}
	return out
}

// SetUnknown records an unrecognized top-level key for round-tripping.
func (c *FingerprintCache) SetUnknown(key string, raw json.RawMessage) {
	c.unknown[key] = raw
}

// Unknown returns the preserved unrecognized top-level keys.
func (c *FingerprintCache) Unknown() map[string]json.RawMessage {
	return c.unknown
}
