package template

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapforge/profilegen/internal/mapping"
	"github.com/leapforge/profilegen/pkg/core"
	"gopkg.in/yaml.v3"
)

// Vars block indentation: key lines sit at the base indent, list items
// two spaces deeper, matching the nesting level of profile-file vars
// sections.
const (
	varsKeyIndent  = 8
	varsListIndent = varsKeyIndent + 2
)

// Renderer substitutes an intermediate mapping into a template.
type Renderer struct {
	logger *slog.Logger
}

// NewRenderer creates a template renderer. A nil logger discards.
func NewRenderer(logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Renderer{logger: logger}
}

// Render produces the final document text. Resolved fields with a
// matching {name} token are substituted in place; the rest accumulate,
// in input order, into the vars block bound to {vars_block}. The
// unknown bucket is never rendered. {project_name} falls back to
// DefaultProjectName when the input did not resolve one, and any other
// unresolved placeholder is left untouched in the output.
func (r *Renderer) Render(tmpl *Template, im *mapping.Intermediate) (string, error) {
	rendered := tmpl.Text()

	vars := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range im.Resolved.Keys() {
		value, _ := im.Resolved.Get(key)

		if !tmpl.Has(key) {
			if err := appendVar(vars, key, value); err != nil {
				return "", fmt.Errorf("failed to serialize vars entry %q: %w", key, err)
			}
			continue
		}
		rendered = strings.ReplaceAll(rendered, "{"+key+"}", core.FormatValue(value))
	}

	varsBlock, err := renderVarsBlock(vars)
	if err != nil {
		return "", err
	}
	rendered = strings.ReplaceAll(rendered, "{"+VarsBlockPlaceholder+"}", varsBlock)
	rendered = strings.ReplaceAll(rendered, "{"+ProjectNamePlaceholder+"}", DefaultProjectName)

	r.logger.Debug("template rendered", "vars_entries", len(vars.Content)/2)

	return rendered, nil
}

func appendVar(vars *yaml.Node, key string, value any) error {
	keyNode := &yaml.Node{}
	if err := keyNode.Encode(key); err != nil {
		return err
	}
	valNode, err := core.EncodeYAML(value)
	if err != nil {
		return err
	}
	vars.Content = append(vars.Content, keyNode, valNode)
	return nil
}

// renderVarsBlock serializes the accumulated vars mapping to block YAML
// and re-indents it. An empty mapping renders as an empty string so
// {vars_block} disappears from the output.
func renderVarsBlock(vars *yaml.Node) (string, error) {
	if len(vars.Content) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(vars); err != nil {
		return "", fmt.Errorf("failed to serialize vars block: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to serialize vars block: %w", err)
	}

	return "vars:\n" + indentBlock(buf.String()), nil
}

// indentBlock applies the vars indentation rule: every key line at
// varsKeyIndent spaces, every list-item line at varsListIndent. Leading
// whitespace from the serializer is discarded first, so nesting deeper
// than one list level flattens to the documented two levels.
func indentBlock(block string) string {
	lines := strings.Split(strings.TrimRight(block, "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		stripped := strings.TrimLeft(line, " ")
		if strings.HasPrefix(stripped, "-") {
			out = append(out, strings.Repeat(" ", varsListIndent)+stripped)
		} else {
			out = append(out, strings.Repeat(" ", varsKeyIndent)+stripped)
		}
	}
	return strings.Join(out, "\n") + "\n"
}
