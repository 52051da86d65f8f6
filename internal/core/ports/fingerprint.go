package ports

// Fingerprinter computes the content fingerprint of a file pair.
type Fingerprinter interface {
	// Fingerprint digests the given files in order. If any file cannot
	// be read it returns a fresh unique value, so a failed hash is
	// always a cache miss and never matches a stored fingerprint.
	Fingerprint(paths ...string) string
}
