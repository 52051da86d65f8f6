package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newBuildStlCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build-stl",
		Short: "Emit descriptions and compile changed mesh artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.BuildSTL(cmd.Context(), options(cmd))
		},
	}
}
