package commands

import (
	"fmt"

	"github.com/leapforge/profilegen/internal/scaffold"
	"github.com/spf13/cobra"
)

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	var scaffoldDir string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render profiles for every input record",
		Long: `Render a profile file for every .json record in the input directory.

Records are processed in lexical order. A record that fails is logged
and skipped; the command reports an error at the end when any record
failed. Each record also leaves an intermediate snapshot in the
updated-input directory for inspection.`,
		Example: `  # Render everything in input_dir
  profilegen generate

  # Render and scaffold a project tree per profile
  profilegen generate --scaffold-dir ./projects`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, scaffoldDir)
		},
	}

	cmd.Flags().StringVar(&scaffoldDir, "scaffold-dir", "", "Also scaffold a project tree per rendered profile into this directory")

	return cmd
}

func runGenerate(cmd *cobra.Command, scaffoldDir string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	summary, runErr := cmdCtx.Generator.GenerateAll()

	for _, out := range summary.Rendered {
		printf(cmd, "rendered %s\n", out)
	}
	for _, in := range summary.Failed {
		printf(cmd, "failed   %s\n", in)
	}
	printf(cmd, "%d profiles rendered, %d failed\n", len(summary.Rendered), len(summary.Failed))

	if scaffoldDir != "" {
		for _, out := range summary.Rendered {
			root, err := scaffold.Create(out, scaffoldDir, cmdCtx.Logger)
			if err != nil {
				return fmt.Errorf("failed to scaffold %s: %w", out, err)
			}
			printf(cmd, "scaffolded %s\n", root)
		}
	}

	return runErr
}
