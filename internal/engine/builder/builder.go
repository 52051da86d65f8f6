// Package builder compiles descriptions into mesh artifacts with
// fingerprint-based caching.
package builder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/partforge/partforge/internal/core/domain"
	"github.com/partforge/partforge/internal/core/ports"
	"github.com/partforge/partforge/internal/engine/emitter"
	"go.trai.ch/zerr"
)

// Options configure one artifact build invocation.
type Options struct {
	ScadDir   string
	StlDir    string
	CacheFile string
	// Force skips the cache check and always invokes the compiler.
	Force bool
}

// Builder invokes the mesh compiler for parts whose fingerprint changed
// or whose artifact is missing.
type Builder struct {
	compiler     ports.MeshCompiler
	store        ports.CacheStore
	fingerprints ports.Fingerprinter
	logger       ports.Logger
}

// New creates a new Builder.
func New(compiler ports.MeshCompiler, store ports.CacheStore, fingerprints ports.Fingerprinter, logger ports.Logger) *Builder {
	return &Builder{
		compiler:     compiler,
		store:        store,
		fingerprints: fingerprints,
		logger:       logger,
	}
}

// Build compiles the artifacts for the given parts. Compiler failures
// are per-part and non-fatal: the previous artifact, if any, is left
// untouched and the remaining parts still build. The cache is loaded
// once, mutated in memory, and persisted once after all parts.
func (b *Builder) Build(ctx context.Context, parts []domain.Part, opts Options) (*domain.BuildReport, error) {
	cache := b.store.Load(opts.CacheFile)
	report := &domain.BuildReport{}

	if err := os.MkdirAll(opts.StlDir, 0o750); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create artifact directory"), "dir", opts.StlDir)
	}

	for _, part := range parts {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		b.buildPart(ctx, part, opts, cache, report)
	}

	// A failed cache write must never fail an otherwise successful build.
	if err := b.store.Save(opts.CacheFile, cache); err != nil {
		b.logger.Error(zerr.Wrap(err, "writing cache failed"))
	}
	return report, nil
}

func (b *Builder) buildPart(ctx context.Context, part domain.Part, opts Options, cache *domain.FingerprintCache, report *domain.BuildReport) {
	b.logger.Info(fmt.Sprintf("building %s.stl", part.Name))

	scadPath := emitter.DescriptionPath(opts.ScadDir, part.Name)
	stlPath := ArtifactPath(opts.StlDir, part.Name)

	if !opts.Force && b.upToDate(scadPath, stlPath, cache) {
		b.logger.Debug(fmt.Sprintf("%s.stl is up to date", part.Name))
		report.UpToDate = append(report.UpToDate, part.Name)
		return
	}

	if err := b.compiler.Compile(ctx, scadPath, stlPath); err != nil {
		b.logger.Error(zerr.With(zerr.Wrap(err, "compiling part failed"), "part", part.Name))
		report.Failed = append(report.Failed, domain.PartFailure{Name: part.Name, Err: err})
	} else {
		report.Compiled = append(report.Compiled, part.Name)
	}

	// Fingerprint the pair as it exists now, compile failure included.
	// Hashing after compilation records the actual relationship between
	// the current description and artifact bytes, so out-of-band edits
	// to either file invalidate the entry.
	cache.Put(stlPath, b.fingerprints.Fingerprint(scadPath, stlPath))
}

// upToDate reports whether the artifact exists and the stored
// fingerprint still matches the (description, artifact) pair.
func (b *Builder) upToDate(scadPath, stlPath string, cache *domain.FingerprintCache) bool {
	if _, err := os.Stat(stlPath); err != nil {
		return false
	}
	stored, ok := cache.Lookup(stlPath)
	if !ok {
		return false
	}
	return stored == b.fingerprints.Fingerprint(scadPath, stlPath)
}

// ArtifactPath returns the artifact file path for a part name.
func ArtifactPath(dir, name string) string {
	return filepath.Join(dir, name+".stl")
}
