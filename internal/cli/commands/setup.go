// Package commands implements the profilegen subcommands.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/leapforge/profilegen/internal/cli/config"
	"github.com/leapforge/profilegen/internal/profile"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg       *config.Config
	Logger    *slog.Logger
	Generator *profile.Generator
}

// NewCommandContext validates the configuration and builds the profile
// generator for commands that run the pipeline.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	gen, err := profile.New(profile.Config{
		InputDir:        cfg.InputDir,
		OutputDir:       cfg.OutputDir,
		MappingFile:     cfg.MappingFile,
		TemplateFile:    cfg.TemplateFile,
		IntermediateDir: cfg.IntermediateDir,
	}, logger)
	if err != nil {
		return nil, err
	}

	return &CommandContext{
		Cfg:       cfg,
		Logger:    logger,
		Generator: gen,
	}, nil
}

// getConfig returns the current configuration. It uses
// config.GetCurrentConfig() if available, otherwise falls back to
// environment variables with defaults.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	return &config.Config{
		InputDir:        getEnvOrDefault("PROFILEGEN_INPUT_DIR", config.DefaultInputDir),
		OutputDir:       getEnvOrDefault("PROFILEGEN_OUTPUT_DIR", config.DefaultOutputDir),
		MappingFile:     getEnvOrDefault("PROFILEGEN_MAPPING_FILE", config.DefaultMappingFile),
		TemplateFile:    getEnvOrDefault("PROFILEGEN_TEMPLATE_FILE", config.DefaultTemplateFile),
		IntermediateDir: getEnvOrDefault("PROFILEGEN_UPDATED_INPUT_DIR", config.DefaultIntermediateDir),
		Verbose:         os.Getenv("PROFILEGEN_VERBOSE") == "true",
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
