// Package config loads profilegen configuration from file, environment
// variables, and CLI flags, and carries the run logger through command
// contexts.
package config

import "fmt"

// Default configuration values.
const (
	DefaultInputDir        = "input"
	DefaultOutputDir       = "output"
	DefaultMappingFile     = "config/mapping.yml"
	DefaultTemplateFile    = "config/template.txt"
	DefaultIntermediateDir = "updated_input"
)

// Config holds the resolved configuration for a run.
type Config struct {
	// InputDir is scanned for .json input records.
	InputDir string `koanf:"input_dir"`

	// OutputDir receives the rendered profile files.
	OutputDir string `koanf:"output_dir"`

	// MappingFile is the YAML key-rename table.
	MappingFile string `koanf:"mapping_file"`

	// TemplateFile is the plain-text profile template.
	TemplateFile string `koanf:"template_file"`

	// IntermediateDir receives per-record intermediate snapshots.
	// Kept as updated_input_dir in config files for compatibility with
	// existing deployments.
	IntermediateDir string `koanf:"updated_input_dir"`

	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`
}

// Validate checks that every required path key is set.
func (c *Config) Validate() error {
	required := []struct {
		key, value string
	}{
		{"input_dir", c.InputDir},
		{"output_dir", c.OutputDir},
		{"mapping_file", c.MappingFile},
		{"template_file", c.TemplateFile},
		{"updated_input_dir", c.IntermediateDir},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("config key %q is required", r.key)
		}
	}
	return nil
}
