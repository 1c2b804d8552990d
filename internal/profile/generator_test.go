package profile

import (
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/leapforge/profilegen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMapping = `warehouse: database_type
a: flag
user: db_user
snowflake:
  account: sf_account
`

const testTemplate = `type: {database_type}
flag: {flag}
{vars_block}`

// newTestProject lays out a full project under a temp dir and returns
// the generator config.
func newTestProject(t *testing.T) Config {
	t.Helper()
	root := t.TempDir()

	cfg := Config{
		InputDir:        filepath.Join(root, "input"),
		OutputDir:       filepath.Join(root, "output"),
		MappingFile:     filepath.Join(root, "mapping.yml"),
		TemplateFile:    filepath.Join(root, "template.txt"),
		IntermediateDir: filepath.Join(root, "updated_input"),
	}

	require.NoError(t, os.MkdirAll(cfg.InputDir, 0750))
	require.NoError(t, os.WriteFile(cfg.MappingFile, []byte(testMapping), 0600))
	require.NoError(t, os.WriteFile(cfg.TemplateFile, []byte(testTemplate), 0600))
	return cfg
}

func writeInput(t *testing.T, cfg Config, name, content string) string {
	t.Helper()
	path := filepath.Join(cfg.InputDir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestGenerateFile(t *testing.T) {
	cfg := newTestProject(t)
	input := writeInput(t, cfg, "acme.json", `{"warehouse": "snowflake", "a": "yes", "user": "svc"}`)

	g, err := New(cfg, testutil.NewTestLogger(t))
	require.NoError(t, err)

	outPath, err := g.GenerateFile(input)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.OutputDir, "acme_profile.yml"), outPath)

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "type: snowflake\nflag: True\nvars:\n        db_user: svc\n", string(content))
}

func TestGenerateFileWritesSnapshot(t *testing.T) {
	cfg := newTestProject(t)
	input := writeInput(t, cfg, "acme.json", `{"warehouse": "redshift", "mystery": 7}`)

	g, err := New(cfg, testutil.NewTestLogger(t))
	require.NoError(t, err)

	_, err = g.GenerateFile(input)
	require.NoError(t, err)

	snap, err := os.ReadFile(filepath.Join(cfg.IntermediateDir, "updated_acme.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"database_type": "redshift", "unknown": {"mystery": 7}}`, string(snap))
}

func TestGenerateFileSnapshotOptional(t *testing.T) {
	cfg := newTestProject(t)
	cfg.IntermediateDir = ""
	input := writeInput(t, cfg, "acme.json", `{"warehouse": "redshift"}`)

	g, err := New(cfg, testutil.NewTestLogger(t))
	require.NoError(t, err)

	_, err = g.GenerateFile(input)
	assert.NoError(t, err)
}

func TestGenerateAllContinuesPastFailures(t *testing.T) {
	cfg := newTestProject(t)
	writeInput(t, cfg, "bad.json", `{not json`)
	writeInput(t, cfg, "good.json", `{"warehouse": "duckdb"}`)

	g, err := New(cfg, testutil.NewTestLogger(t))
	require.NoError(t, err)

	summary, err := g.GenerateAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 records failed")
	assert.Len(t, summary.Rendered, 1)
	assert.Len(t, summary.Failed, 1)

	// The good record still rendered.
	_, statErr := os.Stat(filepath.Join(cfg.OutputDir, "good_profile.yml"))
	assert.NoError(t, statErr)
}

func TestGenerateAllEmptyDirectory(t *testing.T) {
	cfg := newTestProject(t)

	g, err := New(cfg, testutil.NewTestLogger(t))
	require.NoError(t, err)

	summary, err := g.GenerateAll()
	require.NoError(t, err)
	assert.Empty(t, summary.Rendered)
	assert.Empty(t, summary.Failed)
}

func TestGenerateAllSkipsNonJSON(t *testing.T) {
	cfg := newTestProject(t)
	writeInput(t, cfg, "notes.txt", "ignore me")
	writeInput(t, cfg, "acme.json", `{"warehouse": "duckdb"}`)

	g, err := New(cfg, testutil.NewTestLogger(t))
	require.NoError(t, err)

	summary, err := g.GenerateAll()
	require.NoError(t, err)
	assert.Len(t, summary.Rendered, 1)
}

func TestNewMissingMappingFile(t *testing.T) {
	cfg := newTestProject(t)
	require.NoError(t, os.Remove(cfg.MappingFile))

	_, err := New(cfg, testutil.NewTestLogger(t))
	assert.Error(t, err)
}

func TestRenderDoesNotWriteProfile(t *testing.T) {
	cfg := newTestProject(t)
	input := writeInput(t, cfg, "acme.json", `{"warehouse": "duckdb"}`)

	g, err := New(cfg, testutil.NewTestLogger(t))
	require.NoError(t, err)

	out, err := g.Render(input)
	require.NoError(t, err)
	assert.Contains(t, out, "type: duckdb")

	_, statErr := os.Stat(cfg.OutputDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestUserSetVariablesEndToEnd(t *testing.T) {
	cfg := newTestProject(t)
	input := writeInput(t, cfg, "acme.json", `{
		"warehouse": "snowflake",
		"user_set_variables": {"snowflake.account": "acct-123", "custom_metric": 9}
	}`)

	g, err := New(cfg, testutil.NewTestLogger(t))
	require.NoError(t, err)

	_, err = g.GenerateFile(input)
	require.NoError(t, err)

	snap, err := os.ReadFile(filepath.Join(cfg.IntermediateDir, "updated_acme.json"))
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(snap, &parsed))
	assert.Equal(t, "acct-123", parsed["sf_account"])
	unknown, ok := parsed["unknown"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, unknown, "custom_metric")
}
