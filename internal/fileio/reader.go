// Package fileio loads the files profilegen works with: YAML mapping and
// config files, JSON input records, and plain-text templates. Readers
// fail loudly with typed errors so callers can distinguish a missing
// path from a malformed file.
package fileio

import (
	"errors"
	"fmt"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/leapforge/profilegen/pkg/core"
	"gopkg.in/yaml.v3"
)

// ErrMissingFile reports that a required path does not exist.
var ErrMissingFile = errors.New("file not found")

// UnsupportedFormatError reports a request for a format the reader does
// not understand.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format %q: only 'yml' and 'json' are allowed", e.Format)
}

// ReadData reads path and parses it according to format ("yml", "yaml"
// or "json"). YAML parses into a generic mapping; JSON parses into an
// ordered record.
func ReadData(path, format string) (any, error) {
	switch strings.ToLower(format) {
	case "yml", "yaml":
		return ReadYAML(path)
	case "json":
		return ReadJSON(path)
	default:
		return nil, &UnsupportedFormatError{Format: format}
	}
}

// ReadYAML reads and parses a YAML file into a nested mapping.
func ReadYAML(path string) (map[string]any, error) {
	raw, err := readAll(path, "YAML")
	if err != nil {
		return nil, err
	}

	var data map[string]any
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse YAML file %s: %w", path, err)
	}
	return data, nil
}

// ReadYAMLNode reads a YAML file into a document node, preserving the
// key order of the source. Used where the parsed document is written
// back out, such as project scaffolding.
func ReadYAMLNode(path string) (*yaml.Node, error) {
	raw, err := readAll(path, "YAML")
	if err != nil {
		return nil, err
	}

	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return nil, fmt.Errorf("failed to parse YAML file %s: %w", path, err)
	}
	return &node, nil
}

// ReadJSON reads and parses a JSON file into an ordered record.
func ReadJSON(path string) (*core.Record, error) {
	raw, err := readAll(path, "JSON")
	if err != nil {
		return nil, err
	}

	rec := core.NewRecord()
	if err := json.Unmarshal(raw, rec); err != nil {
		return nil, fmt.Errorf("failed to parse JSON file %s: %w", path, err)
	}
	return rec, nil
}

// ReadText reads a plain-text file, such as a template, into a string.
func ReadText(path string) (string, error) {
	raw, err := readAll(path, "template")
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func readAll(path, kind string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s %w at %s", kind, ErrMissingFile, path)
		}
		return nil, fmt.Errorf("failed to read %s file %s: %w", kind, path, err)
	}
	return raw, nil
}
