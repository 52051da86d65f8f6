// Package fsdigest computes content fingerprints over file pairs.
package fsdigest

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/partforge/partforge/internal/core/ports"
	"go.trai.ch/zerr"
)

// separator is written before each file's content so that shifting
// bytes across a file boundary can never produce the same digest.
var separator = []byte{0, 0, 0, 1, 0, 0}

var _ ports.Fingerprinter = (*Fingerprinter)(nil)

// Fingerprinter implements ports.Fingerprinter using SHA-256.
type Fingerprinter struct {
	logger ports.Logger
}

// New creates a new Fingerprinter.
func New(logger ports.Logger) *Fingerprinter {
	return &Fingerprinter{logger: logger}
}

// Fingerprint digests the given files in order, writing the fixed
// separator before each file's bytes. If any file cannot be read, the
// failure is logged and a fresh unique value is returned instead: the
// caller sees a guaranteed cache miss rather than an aborted build, and
// the fallback is visibly distinct from any hex digest.
func (f *Fingerprinter) Fingerprint(paths ...string) string {
	digest, err := f.digest(paths)
	if err != nil {
		f.logger.Error(zerr.Wrap(err, "hashing failed"))
		return uuid.NewString()
	}
	return digest
}

func (f *Fingerprinter) digest(paths []string) (string, error) {
	h := sha256.New()
	for _, path := range paths {
		_, _ = h.Write(separator)
		if err := hashFile(h, path); err != nil {
			return "", err
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func hashFile(w io.Writer, path string) error {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer file.Close() //nolint:errcheck // read-only file

	if _, err := io.Copy(w, file); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}
	return nil
}
