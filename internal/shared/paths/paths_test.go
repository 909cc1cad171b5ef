package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "opt", "pmsuite")
	m := Defaults(root)

	assert.Equal(t, root, m[Root])
	assert.Equal(t, filepath.Join(root, "data"), m[DataDir])
	assert.Equal(t, filepath.Join(root, "data", "projects.db"), m[DBPath])
	assert.Equal(t, filepath.Join(root, "data", "exports", "dashboard.csv"), m[DashboardFile])
	assert.Equal(t, filepath.Join(root, "ProjectManager"), m[ProjectManagerDir])

	for key, value := range m {
		assert.True(t, filepath.IsAbs(value), "key %s has relative value %s", key, value)
	}
}

func TestEssentialSubsetOfDefaults(t *testing.T) {
	m := Defaults("/opt/pmsuite")
	for _, key := range Essential() {
		_, ok := m[key]
		assert.True(t, ok, "essential key %s missing from defaults", key)
	}
}

func TestAscendToRootFindsMarker(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "defaults.txt"), []byte("# marker"), 0o644))

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, ok := ascendToRoot(nested)
	require.True(t, ok)
	assert.Equal(t, root, found)
}

func TestAscendToRootFromAppDirectory(t *testing.T) {
	root := t.TempDir()
	app := filepath.Join(root, "ProjectManager")
	require.NoError(t, os.MkdirAll(app, 0o755))

	found, ok := ascendToRoot(app)
	require.True(t, ok)
	assert.Equal(t, root, found)
}

func TestAscendToRootGivesUp(t *testing.T) {
	dir := t.TempDir()
	_, ok := ascendToRoot(dir)
	assert.False(t, ok)
}
