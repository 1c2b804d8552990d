// Package cli provides the command-line interface for profilegen.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/leapforge/profilegen/internal/cli/commands"
	"github.com/leapforge/profilegen/internal/cli/config"
	"github.com/spf13/cobra"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "profilegen",
		Short: "profilegen - data-pipeline profile generator",
		Long: `profilegen renders JSON input records into templated YAML profile files.

A YAML mapping table renames input fields, recognized boolean words are
normalized, and the resolved values are substituted into a profile
template. Fields with no placeholder in the template are collected into
an auto-generated vars block.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			// Build the run logger and hand it to commands via context.
			level := slog.LevelInfo
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			}))
			cmd.SetContext(config.WithLogger(cmd.Context(), logger))

			if cfg.Verbose {
				if configFile := config.GetConfigFileUsed(); configFile != "" {
					fmt.Fprintf(os.Stderr, "Using config file: %s\n", configFile)
				}
			}

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./profilegen.yaml)")
	rootCmd.PersistentFlags().String("input-dir", "", "Directory scanned for .json input records")
	rootCmd.PersistentFlags().String("output-dir", "", "Directory receiving rendered profiles")
	rootCmd.PersistentFlags().String("mapping-file", "", "Path to the YAML mapping table")
	rootCmd.PersistentFlags().String("template-file", "", "Path to the profile template")
	rootCmd.PersistentFlags().String("updated-input-dir", "", "Directory receiving intermediate snapshots")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version, BuildDate, GitCommit))
	rootCmd.AddCommand(commands.NewGenerateCommand())
	rootCmd.AddCommand(commands.NewRenderCommand())
	rootCmd.AddCommand(commands.NewScaffoldCommand())
	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewWatchCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
