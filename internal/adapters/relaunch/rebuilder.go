// Package relaunch re-invokes the running program to perform a rebuild.
//
// Each rebuild runs as a child process so the part constructors execute
// against fresh state: the watcher process never accumulates memory or
// stale registrations from repeated rebuilds.
package relaunch

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/partforge/partforge/internal/core/ports"
	"go.trai.ch/zerr"
)

// spawnRetryDelay is how long to wait before the single retry after a
// failed process spawn.
const spawnRetryDelay = 100 * time.Millisecond

var _ ports.Rebuilder = (*Rebuilder)(nil)

// Rebuilder implements ports.Rebuilder by launching the emission
// sub-command as a child process.
type Rebuilder struct {
	command []string
	scadDir string
	debug   bool
	logger  ports.Logger
}

// NewRebuilder creates a rebuilder. An empty command re-invokes the
// program's own entry point (os.Args[0]); projects driven by `go run`
// configure `[go, run, .]` instead so the rebuild recompiles the
// sources it just observed changing.
func NewRebuilder(command []string, scadDir string, debug bool, logger ports.Logger) *Rebuilder {
	if len(command) == 0 {
		command = []string{os.Args[0]}
	}
	return &Rebuilder{
		command: command,
		scadDir: scadDir,
		debug:   debug,
		logger:  logger,
	}
}

// Rebuild launches one emission run and waits for it to finish. A spawn
// failure is retried once after a brief delay; an abandoned rebuild is
// reported as an error so the watch loop can try again on the next
// change.
func (r *Rebuilder) Rebuild(ctx context.Context) error {
	args := append([]string{}, r.command[1:]...)
	args = append(args, "--scad-dir", r.scadDir)
	if r.debug {
		args = append(args, "--debug")
	}
	args = append(args, "build-scad")

	r.logger.Debug(fmt.Sprintf("rebuilding: %s %v", r.command[0], args))

	err := r.runOnce(ctx, args)
	if err == nil {
		return nil
	}
	if _, ok := err.(*exec.ExitError); ok {
		// The child ran and failed; its own logs explain why.
		return zerr.Wrap(err, "rebuild exited with failure")
	}

	// Spawn-level failure: retry once after a brief delay.
	select {
	case <-time.After(spawnRetryDelay):
	case <-ctx.Done():
		return ctx.Err()
	}
	if err := r.runOnce(ctx, args); err != nil {
		return zerr.Wrap(err, "rebuild spawn failed after retry")
	}
	return nil
}

func (r *Rebuilder) runOnce(ctx context.Context, args []string) error {
	//nolint:gosec // command comes from project configuration
	cmd := exec.CommandContext(ctx, r.command[0], args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
