// Package config loads optional project configuration for partforge.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the configuration file looked up in the working
// directory when no --config flag is given.
const DefaultFilename = "partforge.yaml"

// Config carries the defaults the CLI flags fall back to. All fields
// are optional; zero values select the built-in defaults.
type Config struct {
	ScadDirectory string   `yaml:"scad_directory"`
	StlDirectory  string   `yaml:"stl_directory"`
	CacheFile     string   `yaml:"cache_file"`
	Compiler      string   `yaml:"compiler"`
	WatchPaths    []string `yaml:"watch_paths"`

	// RebuildCommand overrides the argument vector used to re-run the
	// emission step from the watch loop. Empty means "re-invoke this
	// executable"; `[go, run, .]` suits go-run based workflows where the
	// binary itself must be recompiled to pick up source changes.
	RebuildCommand []string `yaml:"rebuild_command"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		ScadDirectory: "scad",
		StlDirectory:  "stl",
		CacheFile:     ".partforge.cache",
	}
}

// Load reads the configuration file at path and merges it over the
// built-in defaults. A missing file yields the defaults; a malformed
// file is an error, since silently ignoring bad configuration would
// build into the wrong directories.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
	}

	if file.ScadDirectory != "" {
		cfg.ScadDirectory = file.ScadDirectory
	}
	if file.StlDirectory != "" {
		cfg.StlDirectory = file.StlDirectory
	}
	if file.CacheFile != "" {
		cfg.CacheFile = file.CacheFile
	}
	if file.Compiler != "" {
		cfg.Compiler = file.Compiler
	}
	if len(file.WatchPaths) > 0 {
		cfg.WatchPaths = file.WatchPaths
	}
	if len(file.RebuildCommand) > 0 {
		cfg.RebuildCommand = file.RebuildCommand
	}
	return cfg, nil
}
