// Package profile orchestrates the per-record pipeline: read a JSON
// input record, apply the mapping table, snapshot the intermediate
// result, render the template, and write the profile file.
package profile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/leapforge/profilegen/internal/fileio"
	"github.com/leapforge/profilegen/internal/mapping"
	"github.com/leapforge/profilegen/internal/template"
)

// OutputSuffix is appended to the input record's base name to form the
// profile file name.
const OutputSuffix = "_profile.yml"

// SnapshotPrefix is prepended to the input record's base name to form
// the intermediate snapshot file name.
const SnapshotPrefix = "updated_"

// Config holds the paths a generator works with. MappingFile and
// TemplateFile are loaded once at construction and immutable for the
// run; IntermediateDir may be empty to skip snapshots.
type Config struct {
	InputDir        string
	OutputDir       string
	MappingFile     string
	TemplateFile    string
	IntermediateDir string
}

// Summary reports the outcome of a batch run.
type Summary struct {
	Rendered []string
	Failed   []string
}

// Generator renders profile files from JSON input records.
type Generator struct {
	cfg          Config
	table        *mapping.Table
	tmpl         *template.Template
	mapRenderer  *mapping.Renderer
	tmplRenderer *template.Renderer
	logger       *slog.Logger
}

// New loads the mapping table and template and returns a ready
// generator. A nil logger discards.
func New(cfg Config, logger *slog.Logger) (*Generator, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	table, err := mapping.LoadTable(cfg.MappingFile, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load mapping file: %w", err)
	}

	text, err := fileio.ReadText(cfg.TemplateFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load template file: %w", err)
	}

	logger.Debug("generator initialized",
		"mapping_file", cfg.MappingFile,
		"template_file", cfg.TemplateFile)

	return &Generator{
		cfg:          cfg,
		table:        table,
		tmpl:         template.Parse(text),
		mapRenderer:  mapping.NewRenderer(table, logger),
		tmplRenderer: template.NewRenderer(logger),
		logger:       logger,
	}, nil
}

// Table returns the loaded mapping table.
func (g *Generator) Table() *mapping.Table {
	return g.table
}

// Render runs the mapping and template stages for one input file and
// returns the rendered document without writing the profile. The
// intermediate snapshot is still written when an intermediate directory
// is configured; a snapshot failure is logged, not returned, since
// nothing downstream reads it back.
func (g *Generator) Render(inputPath string) (string, error) {
	record, err := fileio.ReadJSON(inputPath)
	if err != nil {
		return "", err
	}

	im := g.mapRenderer.Render(record)
	g.writeSnapshot(inputPath, im)

	rendered, err := g.tmplRenderer.Render(g.tmpl, im)
	if err != nil {
		return "", err
	}
	return rendered, nil
}

// GenerateFile renders one input record and writes the profile to the
// output directory. Returns the profile path.
func (g *Generator) GenerateFile(inputPath string) (string, error) {
	rendered, err := g.Render(inputPath)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(g.cfg.OutputDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	base := filepath.Base(inputPath)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + OutputSuffix
	outPath := filepath.Join(g.cfg.OutputDir, name)

	if err := os.WriteFile(outPath, []byte(rendered), 0600); err != nil {
		return "", fmt.Errorf("failed to write profile %s: %w", outPath, err)
	}

	g.logger.Info("profile rendered", "input", inputPath, "output", outPath)
	return outPath, nil
}

// GenerateAll processes every .json file in the input directory in
// lexical order. A record that fails is logged and skipped rather than
// aborting the batch; the returned error names the failure count while
// the summary lists both outcomes.
func (g *Generator) GenerateAll() (*Summary, error) {
	summary := &Summary{}
	inputs, err := g.listInputs()
	if err != nil {
		return summary, err
	}

	if len(inputs) == 0 {
		g.logger.Warn("no JSON files found in input directory", "dir", g.cfg.InputDir)
		return summary, nil
	}

	for _, input := range inputs {
		outPath, err := g.GenerateFile(input)
		if err != nil {
			g.logger.Error("record failed", "input", input, "error", err)
			summary.Failed = append(summary.Failed, input)
			continue
		}
		summary.Rendered = append(summary.Rendered, outPath)
	}

	if len(summary.Failed) > 0 {
		return summary, fmt.Errorf("%d of %d records failed", len(summary.Failed), len(inputs))
	}
	return summary, nil
}

func (g *Generator) listInputs() ([]string, error) {
	entries, err := os.ReadDir(g.cfg.InputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("input directory %w at %s", fileio.ErrMissingFile, g.cfg.InputDir)
		}
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var inputs []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		inputs = append(inputs, filepath.Join(g.cfg.InputDir, entry.Name()))
	}
	sort.Strings(inputs)
	return inputs, nil
}

// writeSnapshot persists the intermediate mapping next to the run for
// inspection. It is telemetry: later stages never read it back.
func (g *Generator) writeSnapshot(inputPath string, im *mapping.Intermediate) {
	if g.cfg.IntermediateDir == "" {
		return
	}

	if err := os.MkdirAll(g.cfg.IntermediateDir, 0750); err != nil {
		g.logger.Warn("failed to create intermediate directory", "error", err)
		return
	}

	data, err := json.MarshalIndent(im.Snapshot(), "", "  ")
	if err != nil {
		g.logger.Warn("failed to serialize intermediate snapshot", "error", err)
		return
	}

	path := filepath.Join(g.cfg.IntermediateDir, SnapshotPrefix+filepath.Base(inputPath))
	if err := os.WriteFile(path, data, 0600); err != nil {
		g.logger.Warn("failed to write intermediate snapshot", "path", path, "error", err)
		return
	}

	g.logger.Debug("intermediate snapshot written", "path", path)
}
