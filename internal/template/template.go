// Package template implements placeholder substitution for profile
// templates. A template is plain text with {name} tokens plus the two
// reserved tokens {vars_block} and {project_name}. There is no control
// flow: tokens are replaced, and resolved fields without a token are
// folded into an indented vars block.
package template

import (
	"regexp"
)

// Reserved placeholder names.
const (
	VarsBlockPlaceholder   = "vars_block"
	ProjectNamePlaceholder = "project_name"
)

// DefaultProjectName is substituted for {project_name} when the input
// record did not resolve a project name.
const DefaultProjectName = "Default project name"

var placeholderRE = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Template is a parsed template: the raw text plus the set of
// placeholder names it contains. Placeholders are detected by scanning
// {name} tokens once at parse time, so a field name that merely appears
// as a substring of unrelated text is not mistaken for a placeholder.
type Template struct {
	text         string
	placeholders map[string]struct{}
}

// Parse scans text for {name} tokens.
func Parse(text string) *Template {
	t := &Template{
		text:         text,
		placeholders: make(map[string]struct{}),
	}
	for _, match := range placeholderRE.FindAllStringSubmatch(text, -1) {
		t.placeholders[match[1]] = struct{}{}
	}
	return t
}

// Has reports whether the template contains the {name} token.
func (t *Template) Has(name string) bool {
	_, ok := t.placeholders[name]
	return ok
}

// Text returns the raw template text.
func (t *Template) Text() string {
	return t.text
}
