// Package mapping implements the key-rename stage of the profile
// pipeline: a mapping table resolves input field names (optionally
// dotted paths into nested sections) to their target names, and the
// renderer classifies every input field as resolved or unknown.
package mapping

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/leapforge/profilegen/internal/fileio"
)

// Table is a mapping from source key paths to target key names, loaded
// from a YAML mapping file. Nested sections are addressed with dotted
// paths ("snowflake.account").
type Table struct {
	data   map[string]any
	logger *slog.Logger
}

// NewTable wraps an already-parsed mapping. A nil logger discards.
func NewTable(data map[string]any, logger *slog.Logger) *Table {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Table{data: data, logger: logger}
}

// LoadTable reads a mapping file into a Table. The format is taken
// from the file extension; only YAML mappings are meaningful here.
func LoadTable(path string, logger *slog.Logger) (*Table, error) {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	raw, err := fileio.ReadData(path, format)
	if err != nil {
		return nil, err
	}
	data, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("mapping file %s is not a key mapping", path)
	}
	return NewTable(data, logger), nil
}

// Resolve looks up the target name for a source key. The key is split
// on "." and walked through nested sections; a missing segment, a
// non-indexable intermediate, or a path landing on anything but a
// string leaf all count as unresolved. Misses are logged at WARN and
// never returned as errors.
func (t *Table) Resolve(key string) (string, bool) {
	var cur any = t.data
	for _, segment := range strings.Split(key, ".") {
		section, ok := cur.(map[string]any)
		if !ok {
			t.logger.Warn("key not found in mapping table", "key", key)
			return "", false
		}
		cur, ok = section[segment]
		if !ok {
			t.logger.Warn("key not found in mapping table", "key", key)
			return "", false
		}
	}

	target, ok := cur.(string)
	if !ok {
		t.logger.Warn("mapping entry is not a target name", "key", key)
		return "", false
	}
	return target, true
}

// Entries flattens the table into (source path, target name) pairs,
// sorted by source path. Used for inspection output.
func (t *Table) Entries() []Entry {
	var entries []Entry
	flattenEntries("", t.data, &entries)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Source < entries[j].Source })
	return entries
}

// Entry is a single flattened mapping pair.
type Entry struct {
	Source string
	Target string
}

func flattenEntries(prefix string, data map[string]any, out *[]Entry) {
	for key, value := range data {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		switch v := value.(type) {
		case map[string]any:
			flattenEntries(path, v, out)
		case string:
			*out = append(*out, Entry{Source: path, Target: v})
		}
	}
}
