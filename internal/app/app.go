// Package app implements the application layer dispatching the three
// pipeline operations.
package app

import (
	"context"
	"fmt"

	"github.com/partforge/partforge/internal/core/domain"
	"github.com/partforge/partforge/internal/core/ports"
	"github.com/partforge/partforge/internal/engine/builder"
	"github.com/partforge/partforge/internal/engine/emitter"
	"github.com/partforge/partforge/internal/engine/watch"
	"go.trai.ch/zerr"
)

// Options carry the per-invocation settings resolved from flags and
// configuration.
type Options struct {
	ScadDir   string
	StlDir    string
	CacheFile string
	Force     bool
	Debug     bool
}

// App wires the registry snapshot and resolution parameters into the
// pipeline engines.
type App struct {
	registry   *domain.Registry
	resolution domain.Resolution
	emitter    *emitter.Emitter
	builder    *builder.Builder
	newSession func(scadDir string, debug bool) (*watch.Session, error)
	watchPaths []string
	logger     ports.Logger
}

// New creates a new App.
func New(
	registry *domain.Registry,
	resolution domain.Resolution,
	emit *emitter.Emitter,
	build *builder.Builder,
	newSession func(scadDir string, debug bool) (*watch.Session, error),
	watchPaths []string,
	logger ports.Logger,
) *App {
	return &App{
		registry:   registry,
		resolution: resolution,
		emitter:    emit,
		builder:    build,
		newSession: newSession,
		watchPaths: watchPaths,
		logger:     logger,
	}
}

// BuildSCAD emits one description file per registered part.
func (a *App) BuildSCAD(_ context.Context, opts Options) error {
	a.reportRegistrationFailures()
	return a.emitter.Emit(a.registry.Parts(), a.resolution, opts.ScadDir)
}

// BuildSTL emits descriptions and then compiles changed artifacts.
func (a *App) BuildSTL(ctx context.Context, opts Options) error {
	if err := a.BuildSCAD(ctx, opts); err != nil {
		return err
	}

	report, err := a.builder.Build(ctx, a.registry.Parts(), builder.Options{
		ScadDir:   opts.ScadDir,
		StlDir:    opts.StlDir,
		CacheFile: opts.CacheFile,
		Force:     opts.Force,
	})
	if err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("build finished: %d compiled, %d up to date, %d failed",
		len(report.Compiled), len(report.UpToDate), len(report.Failed)))
	return nil
}

// Watch runs the rebuild-on-change loop until ctx is cancelled.
func (a *App) Watch(ctx context.Context, opts Options) error {
	if len(a.watchPaths) == 0 {
		return zerr.New("no watch paths configured")
	}
	session, err := a.newSession(opts.ScadDir, opts.Debug)
	if err != nil {
		return zerr.Wrap(err, "failed to create watch session")
	}
	return session.Run(ctx, a.watchPaths)
}

// reportRegistrationFailures surfaces parts that failed to register.
// Registration is best-effort, so the failures are reported here at
// build time rather than aborting the project.
func (a *App) reportRegistrationFailures() {
	for _, failure := range a.registry.Failures() {
		a.logger.Error(zerr.With(zerr.Wrap(failure.Err, "part registration failed"), "part", failure.Name))
	}
}
