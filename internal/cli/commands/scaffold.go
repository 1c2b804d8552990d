package commands

import (
	"github.com/leapforge/profilegen/internal/cli/config"
	"github.com/leapforge/profilegen/internal/scaffold"
	"github.com/spf13/cobra"
)

// NewScaffoldCommand creates the scaffold command.
func NewScaffoldCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scaffold <profile.yml> <dir>",
		Short: "Create a project tree from a rendered profile",
		Long: `Create a dbt-style project directory from a rendered profile file.

The project folder is named after the profile file. Every top-level
profile key holding a list of paths contributes subfolders, and the
profile content plus a default package manifest are written into the
project root.`,
		Example: `  profilegen scaffold output/acme_profile.yml ./projects`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := config.GetLogger(cmd.Context())

			root, err := scaffold.Create(args[0], args[1], logger)
			if err != nil {
				return err
			}
			printf(cmd, "scaffolded %s\n", root)
			return nil
		},
	}
}
