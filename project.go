// Package partforge orchestrates builds of parametric solid-model
// projects: it collects named geometry definitions, serializes each to
// a description file, compiles changed descriptions into mesh artifacts
// via an external geometry compiler, and rebuilds incrementally while
// watching the project's sources.
//
// A model program registers its parts and hands control to Run:
//
//	p := partforge.New("bolt and nut")
//	p.AddPartFunc(Bolt)
//	p.AddPartFunc(Nut)
//	p.Main()
package partforge

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/partforge/partforge/internal/adapters/config"
	"github.com/partforge/partforge/internal/adapters/fsdigest"
	"github.com/partforge/partforge/internal/adapters/logger"
	"github.com/partforge/partforge/internal/adapters/openscad"
	"github.com/partforge/partforge/internal/adapters/relaunch"
	"github.com/partforge/partforge/internal/adapters/scadcache"
	"github.com/partforge/partforge/internal/adapters/watcher"
	"github.com/partforge/partforge/internal/app"
	"github.com/partforge/partforge/internal/cli/commands"
	"github.com/partforge/partforge/internal/core/domain"
	"github.com/partforge/partforge/internal/engine/builder"
	"github.com/partforge/partforge/internal/engine/emitter"
	"github.com/partforge/partforge/internal/engine/watch"
	"go.trai.ch/zerr"
)

// Model is the opaque geometry handle attached to a part.
type Model = domain.Model

// Project is a named collection of parts plus the resolution parameters
// applied uniformly to every emitted description.
type Project struct {
	name       string
	registry   *domain.Registry
	resolution domain.Resolution
	configPath string
	watchPaths []string

	runGuard atomic.Bool
}

// Option configures a Project.
type Option func(*Project)

// WithResolution sets the tessellation parameters (angular resolution,
// minimum fragment size, fixed fragment count).
func WithResolution(fa, fs, fn float64) Option {
	return func(p *Project) {
		p.resolution = domain.Resolution{Fa: fa, Fs: fs, Fn: fn}
	}
}

// WithConfigFile overrides the configuration file looked up by Run.
func WithConfigFile(path string) Option {
	return func(p *Project) { p.configPath = path }
}

// WithWatchPaths overrides the source paths observed by the watch
// operation. Defaults to the configuration file's watch_paths, falling
// back to the current directory.
func WithWatchPaths(paths ...string) Option {
	return func(p *Project) { p.watchPaths = paths }
}

// New creates a project with the given name.
func New(name string, opts ...Option) *Project {
	p := &Project{
		name:       name,
		registry:   domain.NewRegistry(),
		resolution: domain.DefaultResolution(),
		configPath: config.DefaultFilename,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the project name.
func (p *Project) Name() string {
	return p.name
}

// AddPart registers a model under an explicit name. Registration is
// best-effort: a failure is recorded and reported at build time, and
// never blocks registering the remaining parts.
func (p *Project) AddPart(name string, model Model) {
	_ = p.registry.Add(name, model)
}

// AddPartFunc constructs a model by calling fn and registers it under a
// name derived from the function identifier ("WingNut" -> "wing-nut").
// A panicking constructor abandons only this part.
func (p *Project) AddPartFunc(fn func() Model) {
	_ = p.registry.AddFunc(fn)
}

// Part returns the model registered under name.
func (p *Project) Part(name string) (Model, error) {
	return p.registry.Get(name)
}

// Run parses the process arguments and dispatches to one of the
// pipeline operations. It executes at most once per process: re-entrant
// calls are no-ops, so accidentally invoking it twice from the same
// program cannot double-build.
func (p *Project) Run() error {
	if !p.runGuard.CompareAndSwap(false, true) {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.New()

	// --config must be known before the flag defaults can be computed,
	// so it is resolved from the raw arguments ahead of cobra.
	configPath := p.configPath
	if path, ok := configPathFromArgs(os.Args[1:]); ok {
		configPath = path
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load project configuration")
	}

	watchPaths := p.watchPaths
	if len(watchPaths) == 0 {
		watchPaths = cfg.WatchPaths
	}
	if len(watchPaths) == 0 {
		watchPaths = []string{"."}
	}

	store := scadcache.NewStore(log)
	fingerprints := fsdigest.New(log)
	compiler := openscad.NewCompiler(cfg.Compiler, log)

	emit := emitter.New(log)
	build := builder.New(compiler, store, fingerprints, log)

	newSession := func(scadDir string, debug bool) (*watch.Session, error) {
		w, err := watcher.NewWatcher()
		if err != nil {
			return nil, err
		}
		rebuilder := relaunch.NewRebuilder(cfg.RebuildCommand, scadDir, debug, log)
		return watch.NewSession(w, rebuilder, log), nil
	}

	application := app.New(p.registry, p.resolution, emit, build, newSession, watchPaths, log)

	cli := commands.New(application, p.name, commands.Defaults{
		ScadDir:    cfg.ScadDirectory,
		StlDir:     cfg.StlDirectory,
		CacheFile:  cfg.CacheFile,
		ConfigFile: configPath,
	}, log.SetDebug)

	return cli.Execute(ctx)
}

// configPathFromArgs scans raw arguments for the --config flag.
func configPathFromArgs(args []string) (string, bool) {
	for i, arg := range args {
		if arg == "--config" && i+1 < len(args) {
			return args[i+1], true
		}
		if value, ok := strings.CutPrefix(arg, "--config="); ok {
			return value, true
		}
	}
	return "", false
}

// Main runs the project and exits the process with status 1 on error.
// It is the usual last line of a model program.
func (p *Project) Main() {
	if err := p.Run(); err != nil {
		// zerr prints a detailed error report with %+v
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}
