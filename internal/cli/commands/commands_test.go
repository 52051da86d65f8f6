package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/partforge/partforge/internal/app"
	"github.com/partforge/partforge/internal/build"
	"github.com/partforge/partforge/internal/cli/commands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockApp struct {
	buildSCAD func(ctx context.Context, opts app.Options) error
	buildSTL  func(ctx context.Context, opts app.Options) error
	watch     func(ctx context.Context, opts app.Options) error
}

func (m *mockApp) BuildSCAD(ctx context.Context, opts app.Options) error {
	if m.buildSCAD != nil {
		return m.buildSCAD(ctx, opts)
	}
	return nil
}

func (m *mockApp) BuildSTL(ctx context.Context, opts app.Options) error {
	if m.buildSTL != nil {
		return m.buildSTL(ctx, opts)
	}
	return nil
}

func (m *mockApp) Watch(ctx context.Context, opts app.Options) error {
	if m.watch != nil {
		return m.watch(ctx, opts)
	}
	return nil
}

var testDefaults = commands.Defaults{
	ScadDir:   "scad",
	StlDir:    "stl",
	CacheFile: ".partforge.cache",
}

func TestCommands_BuildStl(t *testing.T) {
	t.Run("wires flags into options", func(t *testing.T) {
		var captured app.Options
		called := false
		mock := &mockApp{
			buildSTL: func(_ context.Context, opts app.Options) error {
				captured = opts
				called = true
				return nil
			},
		}

		cli := commands.New(mock, "testproj", testDefaults, nil)
		cli.SetArgs([]string{"build-stl", "--stl-dir", "out", "--force"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.True(t, called)
		assert.True(t, captured.Force)
		assert.Equal(t, "out", captured.StlDir)
		assert.Equal(t, "scad", captured.ScadDir)
		assert.Equal(t, ".partforge.cache", captured.CacheFile)
	})

	t.Run("returns error on build failure", func(t *testing.T) {
		mock := &mockApp{
			buildSTL: func(_ context.Context, _ app.Options) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock, "testproj", testDefaults, nil)
		cli.SetArgs([]string{"build-stl"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func TestCommands_BuildScad(t *testing.T) {
	called := false
	mock := &mockApp{
		buildSCAD: func(_ context.Context, opts app.Options) error {
			called = true
			assert.Equal(t, "descriptions", opts.ScadDir)
			return nil
		},
	}

	cli := commands.New(mock, "testproj", testDefaults, nil)
	cli.SetArgs([]string{"--scad-dir", "descriptions", "build-scad"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, called)
}

func TestCommands_ConfigFlagIsRegistered(t *testing.T) {
	called := false
	mock := &mockApp{
		buildSCAD: func(_ context.Context, _ app.Options) error {
			called = true
			return nil
		},
	}

	cli := commands.New(mock, "testproj", testDefaults, nil)
	cli.SetArgs([]string{"--config", "other.yaml", "build-scad"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, called)
}

func TestCommands_NoSubcommandShowsHelp(t *testing.T) {
	mock := &mockApp{
		buildSTL: func(_ context.Context, _ app.Options) error {
			panic("should not be called")
		},
	}

	cli := commands.New(mock, "testproj", testDefaults, nil)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), "Usage:")
}

func TestCommands_DebugFlagReachesCallback(t *testing.T) {
	var debug bool
	mock := &mockApp{}

	cli := commands.New(mock, "testproj", testDefaults, func(enabled bool) { debug = enabled })
	cli.SetArgs([]string{"--debug", "build-scad"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, debug)
}

func TestCommands_Version(t *testing.T) {
	cli := commands.New(&mockApp{}, "testproj", testDefaults, nil)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), build.Version)
}
