// Package openscad invokes the external mesh compiler as a child process.
package openscad

import (
	"context"
	"os/exec"
	"strings"

	"github.com/partforge/partforge/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultBinary is the compiler executable looked up on PATH when no
// override is configured.
const DefaultBinary = "openscad"

var _ ports.MeshCompiler = (*Compiler)(nil)

// Compiler implements ports.MeshCompiler using os/exec.
type Compiler struct {
	binary string
	logger ports.Logger
}

// NewCompiler creates a compiler adapter. An empty binary selects
// DefaultBinary.
func NewCompiler(binary string, logger ports.Logger) *Compiler {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Compiler{binary: binary, logger: logger}
}

// Compile runs the compiler with the description file as positional
// input and an explicit output path. It blocks until the process exits;
// no timeout is enforced. A nonzero exit status is returned as an error
// carrying the exit code.
func (c *Compiler) Compile(ctx context.Context, scadPath, stlPath string) error {
	//nolint:gosec // binary and paths come from project configuration
	cmd := exec.CommandContext(ctx, c.binary, scadPath, "-o", stlPath)
	cmd.Stdout = &logWriter{logger: c.logger, level: "info"}
	cmd.Stderr = &logWriter{logger: c.logger, level: "error"}

	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.With(zerr.Wrap(err, "compiler failed"), "exit_code", exitCode), "scad", scadPath)
	}
	return nil
}

// logWriter streams compiler output to the logger line by line.
type logWriter struct {
	logger ports.Logger
	level  string
}

func (w *logWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimSuffix(string(p), "\n"), "\n") {
		if line == "" {
			continue
		}
		if w.level == "info" {
			w.logger.Info(line)
		} else {
			w.logger.Error(zerr.New(line))
		}
	}
	return len(p), nil
}
