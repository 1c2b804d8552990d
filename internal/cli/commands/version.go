package commands

import (
	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version, buildDate, gitCommit string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show the profilegen version and build information.`,
		Run: func(cmd *cobra.Command, _ []string) {
			printf(cmd, "profilegen v%s\n", version)
			printf(cmd, "Data-pipeline profile generator\n")
			printf(cmd, "build date: %s\n", buildDate)
			printf(cmd, "commit: %s\n", gitCommit)
		},
	}
}
