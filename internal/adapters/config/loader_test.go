package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/partforge/partforge/internal/adapters/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "scad", cfg.ScadDirectory)
		assert.Equal(t, "stl", cfg.StlDirectory)
		assert.Equal(t, ".partforge.cache", cfg.CacheFile)
		assert.Empty(t, cfg.Compiler)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "partforge.yaml")
		content := `
scad_directory: out/scad
cache_file: .cache
compiler: openscad-nightly
watch_paths:
  - model
rebuild_command: [go, run, .]
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "out/scad", cfg.ScadDirectory)
		assert.Equal(t, "stl", cfg.StlDirectory) // untouched default
		assert.Equal(t, ".cache", cfg.CacheFile)
		assert.Equal(t, "openscad-nightly", cfg.Compiler)
		assert.Equal(t, []string{"model"}, cfg.WatchPaths)
		assert.Equal(t, []string{"go", "run", "."}, cfg.RebuildCommand)
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "partforge.yaml")
		require.NoError(t, os.WriteFile(path, []byte("scad_directory: [unclosed"), 0o644))

		_, err := config.Load(path)
		require.Error(t, err)
	})
}
