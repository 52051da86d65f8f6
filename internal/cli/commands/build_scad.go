package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newBuildScadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build-scad",
		Short: "Emit description files for all parts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.BuildSCAD(cmd.Context(), options(cmd))
		},
	}
}
