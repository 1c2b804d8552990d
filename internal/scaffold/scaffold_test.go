package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leapforge/profilegen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const testProfile = `name: acme
model-paths:
  - models
  - models/staging
seed-paths:
  - seeds
threads: 4
mixed-list:
  - models
  - 42
`

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "acme_profile.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestCreateProjectTree(t *testing.T) {
	profile := writeProfile(t, testProfile)
	finalDir := t.TempDir()

	root, err := Create(profile, finalDir, testutil.NewTestLogger(t))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(finalDir, "acme_profile"), root)

	// Folders come from list-of-string keys only.
	for _, dir := range []string{"models", "models/staging", "seeds"} {
		info, err := os.Stat(filepath.Join(root, dir))
		require.NoError(t, err, "expected folder %q", dir)
		assert.True(t, info.IsDir())
	}

	// Mixed-type lists contribute nothing.
	_, err = os.Stat(filepath.Join(root, "42"))
	assert.True(t, os.IsNotExist(err))
}

func TestCreateWritesManifests(t *testing.T) {
	profile := writeProfile(t, testProfile)
	finalDir := t.TempDir()

	root, err := Create(profile, finalDir, testutil.NewTestLogger(t))
	require.NoError(t, err)

	projectRaw, err := os.ReadFile(filepath.Join(root, ProjectFileName))
	require.NoError(t, err)

	var project map[string]any
	require.NoError(t, yaml.Unmarshal(projectRaw, &project))
	assert.Equal(t, "acme", project["name"])
	assert.Equal(t, 4, project["threads"])

	packagesRaw, err := os.ReadFile(filepath.Join(root, PackagesFileName))
	require.NoError(t, err)

	var packages struct {
		Packages []struct {
			Package string `yaml:"package"`
			Version string `yaml:"version"`
		} `yaml:"packages"`
	}
	require.NoError(t, yaml.Unmarshal(packagesRaw, &packages))
	require.Len(t, packages.Packages, 1)
	assert.Equal(t, "snowplow/snowplow_unified", packages.Packages[0].Package)
	assert.Equal(t, "0.5.5", packages.Packages[0].Version)
}

func TestCreatePreservesProfileKeyOrder(t *testing.T) {
	profile := writeProfile(t, "zeta: last\nalpha: first\n")
	finalDir := t.TempDir()

	root, err := Create(profile, finalDir, testutil.NewTestLogger(t))
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(root, ProjectFileName))
	require.NoError(t, err)
	assert.Equal(t, "zeta: last\nalpha: first\n", string(raw))
}

func TestCreateMissingProfile(t *testing.T) {
	_, err := Create(filepath.Join(t.TempDir(), "absent.yml"), t.TempDir(), nil)
	assert.Error(t, err)
}
