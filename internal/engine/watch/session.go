// Package watch runs the rebuild-on-change loop.
package watch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/partforge/partforge/internal/adapters/watcher"
	"github.com/partforge/partforge/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// DefaultDebounceWindow coalesces event bursts from editors that write
// a file several times in quick succession.
const DefaultDebounceWindow = 100 * time.Millisecond

// Session owns one watch-and-rebuild loop. Rebuilds are serialized: a
// change detected while a rebuild is in flight is queued and handled
// once the current rebuild returns.
type Session struct {
	watcher   ports.SourceWatcher
	rebuilder ports.Rebuilder
	sources   *watcher.SourceHashCache
	logger    ports.Logger
	window    time.Duration
}

// NewSession creates a watch session.
func NewSession(w ports.SourceWatcher, rebuilder ports.Rebuilder, logger ports.Logger) *Session {
	return &Session{
		watcher:   w,
		rebuilder: rebuilder,
		sources:   watcher.NewSourceHashCache(),
		logger:    logger,
		window:    DefaultDebounceWindow,
	}
}

// SetDebounceWindow overrides the debounce window. Used by tests.
func (s *Session) SetDebounceWindow(window time.Duration) {
	s.window = window
}

// Run watches the given source paths until ctx is cancelled. It
// performs one rebuild immediately to establish baseline output, then
// rebuilds on every detected content change. A failed rebuild does not
// stop the loop. Watch handles are released on every exit path.
func (s *Session) Run(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return zerr.New("no source paths to watch")
	}

	if err := s.watcher.Start(ctx, paths); err != nil {
		return zerr.Wrap(err, "failed to start watcher")
	}
	defer func() {
		if err := s.watcher.Stop(); err != nil {
			s.logger.Error(zerr.Wrap(err, "stopping watcher failed"))
		}
	}()

	// Baseline rebuild before entering the loop.
	s.rebuild(ctx)

	// Coalesced triggers land on a one-slot channel: while a rebuild is
	// in flight, further triggers collapse into at most one queued run.
	triggers := make(chan struct{}, 1)
	debouncer := watcher.NewDebouncer(s.window, func(paths []string) {
		changed := false
		for _, path := range paths {
			if s.sources.Changed(path) {
				s.logger.Debug(fmt.Sprintf("source changed: %s", path))
				changed = true
			}
		}
		if !changed {
			return
		}
		select {
		case triggers <- struct{}{}:
		default:
		}
	})

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for event := range s.watcher.Events() {
			debouncer.Add(event.Path)
		}
		// The event stream is closed; deliver anything still sitting
		// inside the debounce window before the loop winds down.
		debouncer.Flush()
		return nil
	})

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-triggers:
				s.rebuild(ctx)
			}
		}
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (s *Session) rebuild(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := s.rebuilder.Rebuild(ctx); err != nil {
		// The loop keeps running; the next change retries.
		s.logger.Error(zerr.Wrap(err, "rebuild failed"))
	}
}
