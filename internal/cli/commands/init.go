package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/leapforge/profilegen/internal/cli/config"
	"github.com/spf13/cobra"
)

const starterConfig = `input_dir: input
output_dir: output
mapping_file: config/mapping.yml
template_file: config/template.txt
updated_input_dir: updated_input
`

const starterMapping = `project: project_name
warehouse: database_type
host: host
user: user
port: port
database: database
schema: schema
threads: threads
snowflake:
  account: account
`

const starterTemplate = `{project_name}:
  target: dev
  outputs:
    dev:
      type: {database_type}
      host: {host}
      user: {user}
      port: {port}
      dbname: {database}
      schema: {schema}
      threads: {threads}
{vars_block}`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new profilegen project",
		Long: `Initialize a new profilegen project with default directory structure
and configuration.

This creates:
  - profilegen.yaml configuration file
  - config/mapping.yml starter mapping table
  - config/template.txt starter profile template
  - input/, output/, updated_input/ directories`,
		Example: `  # Initialize in current directory
  profilegen init

  # Initialize in a new directory
  profilegen init my-project

  # Force overwrite existing config
  profilegen init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(cmd, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, "profilegen.yaml")
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("profilegen.yaml already exists. Use --force to overwrite")
	}

	for _, sub := range []string{
		"config",
		config.DefaultInputDir,
		config.DefaultOutputDir,
		config.DefaultIntermediateDir,
	} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", sub, err)
		}
	}

	files := []struct {
		path    string
		content string
	}{
		{configPath, starterConfig},
		{filepath.Join(dir, config.DefaultMappingFile), starterMapping},
		{filepath.Join(dir, config.DefaultTemplateFile), starterTemplate},
	}
	for _, f := range files {
		if err := os.WriteFile(f.path, []byte(f.content), 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.path, err)
		}
		printf(cmd, "created %s\n", f.path)
	}

	printf(cmd, "\nprofilegen project initialized!\n\n")
	printf(cmd, "Next steps:\n")
	printf(cmd, "  1. Drop JSON input records into %s/\n", config.DefaultInputDir)
	printf(cmd, "  2. Adjust the mapping table in %s\n", config.DefaultMappingFile)
	printf(cmd, "  3. Run 'profilegen generate' to render profiles\n")

	return nil
}
