// Package emitter writes the intermediate description files.
package emitter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/partforge/partforge/internal/core/domain"
	"github.com/partforge/partforge/internal/core/ports"
	"go.trai.ch/zerr"
)

// Emitter serializes each part into one description file.
type Emitter struct {
	logger ports.Logger
}

// New creates a new Emitter.
func New(logger ports.Logger) *Emitter {
	return &Emitter{logger: logger}
}

// Emit writes one description file per part into dir, creating dir if
// absent. Files are overwritten unconditionally; the emission stage is
// cheap and caching applies only to artifact compilation. The emitted
// bytes are a pure function of (model, resolution), so re-emission
// without changes is byte-identical.
func (e *Emitter) Emit(parts []domain.Part, res domain.Resolution, dir string) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create description directory"), "dir", dir)
	}

	for _, part := range parts {
		e.logger.Info(fmt.Sprintf("building %s.scad", part.Name))

		path := DescriptionPath(dir, part.Name)
		content := header(res) + part.Model.ToSCAD()
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil { //nolint:gosec // project output file
			return zerr.With(zerr.Wrap(err, "failed to write description"), "path", path)
		}
	}
	return nil
}

// header renders the three resolution configuration lines that precede
// the geometry text in every description file.
func header(res domain.Resolution) string {
	return fmt.Sprintf("$fa=%.4f;\n$fs=%.4f;\n$fn=%.4f;\n", res.Fa, res.Fs, res.Fn)
}

// DescriptionPath returns the description file path for a part name.
func DescriptionPath(dir, name string) string {
	return filepath.Join(dir, name+".scad")
}
