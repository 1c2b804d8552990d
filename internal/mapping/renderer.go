package mapping

import (
	"log/slog"

	"github.com/leapforge/profilegen/pkg/core"
)

// UserVarsKey is the distinguished input key whose children are
// flattened into the same namespace as top-level fields.
const UserVarsKey = "user_set_variables"

// UnknownKey is the bucket key unresolved fields are collected under in
// intermediate snapshots.
const UnknownKey = "unknown"

// Intermediate is the result of applying a mapping table to one input
// record. Resolved holds target-name keyed, normalized values in input
// order. Unknown holds every field whose name could not be resolved,
// keyed by its original name.
type Intermediate struct {
	Resolved *core.Record
	Unknown  *core.Record
}

// Snapshot folds the intermediate mapping into a single record the way
// it is written to the updated-input directory: resolved entries first,
// then the unknown bucket under the literal key "unknown" when any
// field failed to resolve.
func (im *Intermediate) Snapshot() *core.Record {
	snap := core.NewRecord()
	for _, key := range im.Resolved.Keys() {
		v, _ := im.Resolved.Get(key)
		snap.Set(key, v)
	}
	if im.Unknown.Len() > 0 {
		snap.Set(UnknownKey, im.Unknown)
	}
	return snap
}

// Renderer applies a mapping table to input records.
type Renderer struct {
	table  *Table
	logger *slog.Logger
}

// NewRenderer creates a renderer over the given table. A nil logger
// discards.
func NewRenderer(table *Table, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Renderer{table: table, logger: logger}
}

// Render walks the record's top-level keys in stored order, resolving
// each through the table and normalizing scalar values. The
// user_set_variables key flattens one level: its children resolve
// against the same table as top-level fields. Every input key ends up
// exactly once in the result, either under its target name or in the
// unknown bucket; nothing is silently dropped.
func (r *Renderer) Render(record *core.Record) *Intermediate {
	im := &Intermediate{
		Resolved: core.NewRecord(),
		Unknown:  core.NewRecord(),
	}

	for _, key := range record.Keys() {
		value, _ := record.Get(key)

		if key == UserVarsKey {
			if nested, ok := value.(*core.Record); ok {
				for _, child := range nested.Keys() {
					childValue, _ := nested.Get(child)
					r.renderField(im, child, childValue)
				}
				continue
			}
			r.logger.Warn("user_set_variables is not a mapping, treating as plain field", "key", key)
		}

		r.renderField(im, key, value)
	}

	r.logger.Debug("mapping rendered",
		"resolved", im.Resolved.Len(),
		"unknown", im.Unknown.Len())

	return im
}

func (r *Renderer) renderField(im *Intermediate, key string, value any) {
	target, ok := r.table.Resolve(key)
	if !ok {
		im.Unknown.Set(key, value)
		return
	}
	im.Resolved.Set(target, Normalize(value))
}
