// Package commands implements the CLI surface of a partforge project.
package commands

import (
	"context"
	"io"

	"github.com/partforge/partforge/internal/app"
	"github.com/spf13/cobra"
)

// App is the application surface the commands dispatch to.
type App interface {
	BuildSCAD(ctx context.Context, opts app.Options) error
	BuildSTL(ctx context.Context, opts app.Options) error
	Watch(ctx context.Context, opts app.Options) error
}

// Defaults seed the global flags; they come from the project
// configuration file, falling back to built-in values. ConfigFile is
// the path that configuration was read from.
type Defaults struct {
	ScadDir    string
	StlDir     string
	CacheFile  string
	ConfigFile string
}

// CLI represents the command line interface of a project.
type CLI struct {
	app     App
	rootCmd *cobra.Command
	onDebug func(bool)
}

// New creates a new CLI instance with the given app. onDebug is called
// with the resolved --debug flag before any command runs; pass nil to
// ignore it.
func New(a App, name string, defaults Defaults, onDebug func(bool)) *CLI {
	rootCmd := &cobra.Command{
		Use:           name,
		Short:         "Build parametric solid-model parts",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// No sub-command selected: print usage help.
			return cmd.Help()
		},
	}

	// --config is resolved by the caller before the defaults are
	// computed; it is registered here so it parses and shows in help.
	rootCmd.PersistentFlags().String("config", defaults.ConfigFile, "project configuration file")
	rootCmd.PersistentFlags().String("scad-dir", defaults.ScadDir, "directory to store description (.scad) files")
	rootCmd.PersistentFlags().String("stl-dir", defaults.StlDir, "directory to store artifact (.stl) files")
	rootCmd.PersistentFlags().String("cache-file", defaults.CacheFile, "file to store the build cache")
	rootCmd.PersistentFlags().Bool("force", false, "rebuild artifacts regardless of cache state")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug output")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
		onDebug: onDebug,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if c.onDebug != nil {
			debug, _ := cmd.Flags().GetBool("debug")
			c.onDebug(debug)
		}
	}

	rootCmd.AddCommand(c.newBuildScadCmd())
	rootCmd.AddCommand(c.newBuildStlCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput redirects command output. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// options resolves the global flags into app options.
func options(cmd *cobra.Command) app.Options {
	scadDir, _ := cmd.Flags().GetString("scad-dir")
	stlDir, _ := cmd.Flags().GetString("stl-dir")
	cacheFile, _ := cmd.Flags().GetString("cache-file")
	force, _ := cmd.Flags().GetBool("force")
	debug, _ := cmd.Flags().GetBool("debug")

	return app.Options{
		ScadDir:   scadDir,
		StlDir:    stlDir,
		CacheFile: cacheFile,
		Force:     force,
		Debug:     debug,
	}
}
