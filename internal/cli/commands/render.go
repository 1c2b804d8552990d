package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "render <input.json>",
		Short: "Render one input record",
		Long: `Render the profile for a single JSON input record.

The rendered document is printed to stdout, which makes it easy to
inspect mapping and template behavior without touching the output
directory.`,
		Example: `  # Render one record to stdout
  profilegen render input/acme.json

  # Render to a file
  profilegen render input/acme.json -o acme_profile.yml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRenderRecord(cmd, args[0], outFile)
		},
	}

	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Write the rendered profile to this file instead of stdout")

	return cmd
}

func runRenderRecord(cmd *cobra.Command, inputPath, outFile string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	rendered, err := cmdCtx.Generator.Render(inputPath)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", inputPath, err)
	}

	if outFile != "" {
		if err := os.WriteFile(outFile, []byte(rendered), 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", outFile, err)
		}
		printf(cmd, "rendered %s\n", outFile)
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), rendered)
	return nil
}
