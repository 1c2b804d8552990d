// Package scaffold turns a rendered profile file into a dbt-style
// project directory: one subfolder per path listed in the profile, plus
// the project and package manifests.
package scaffold

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapforge/profilegen/internal/fileio"
	"gopkg.in/yaml.v3"
)

// Project and package manifest file names.
const (
	ProjectFileName  = "dbt_project.yml"
	PackagesFileName = "packages.yml"
)

type packageSpec struct {
	Package string `yaml:"package"`
	Version string `yaml:"version"`
}

type packageManifest struct {
	Packages []packageSpec `yaml:"packages"`
}

// defaultPackages is the dependency manifest written into every
// scaffolded project.
var defaultPackages = packageManifest{
	Packages: []packageSpec{
		{Package: "snowplow/snowplow_unified", Version: "0.5.5"},
	},
}

// Create builds the project tree for a profile file under finalDir and
// returns the project root. The project folder is named after the
// profile file; every top-level profile key whose value is a list of
// strings contributes one subfolder per element. The profile content is
// copied into dbt_project.yml and the default dependency manifest into
// packages.yml.
func Create(profileFile, finalDir string, logger *slog.Logger) (string, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	doc, err := fileio.ReadYAMLNode(profileFile)
	if err != nil {
		return "", err
	}

	base := filepath.Base(profileFile)
	projectName := strings.TrimSuffix(base, filepath.Ext(base))
	projectRoot := filepath.Join(finalDir, projectName)

	if err := os.MkdirAll(projectRoot, 0750); err != nil {
		return "", fmt.Errorf("failed to create project root %s: %w", projectRoot, err)
	}
	logger.Info("creating project folder", "path", projectRoot)

	for _, folder := range folderPaths(doc) {
		if err := os.MkdirAll(filepath.Join(projectRoot, folder), 0750); err != nil {
			return "", fmt.Errorf("failed to create folder %s: %w", folder, err)
		}
	}

	if err := writeYAML(filepath.Join(projectRoot, ProjectFileName), doc); err != nil {
		return "", err
	}
	if err := writeYAML(filepath.Join(projectRoot, PackagesFileName), defaultPackages); err != nil {
		return "", err
	}

	logger.Info("project created", "name", projectName, "path", projectRoot)
	return projectRoot, nil
}

// folderPaths collects the elements of every top-level key whose value
// is a sequence consisting only of strings.
func folderPaths(doc *yaml.Node) []string {
	root := doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil
	}

	var folders []string
	for i := 0; i+1 < len(root.Content); i += 2 {
		value := root.Content[i+1]
		if value.Kind != yaml.SequenceNode {
			continue
		}
		all := make([]string, 0, len(value.Content))
		stringsOnly := true
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				stringsOnly = false
				break
			}
			all = append(all, item.Value)
		}
		if stringsOnly {
			folders = append(folders, all...)
		}
	}
	return folders
}

func writeYAML(path string, v any) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return enc.Close()
}
