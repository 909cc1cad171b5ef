package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmsuite/pathregistry/internal/persist"
)

// run executes the command tree against a suite rooted at root and returns
// the captured output.
func run(t *testing.T, root string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--root", root}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSetThenGetPersistsAcrossInvocations(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "custom-templates")

	out, err := run(t, root, "set", "TEMPLATES_DIR", target)
	require.NoError(t, err)
	assert.Contains(t, out, target)
	assert.FileExists(t, filepath.Join(root, persist.SnapshotName))

	// A fresh invocation boots from the snapshot the set left behind.
	out, err = run(t, root, "get", "TEMPLATES_DIR")
	require.NoError(t, err)
	assert.Contains(t, out, target)
}

func TestGetUnknownKeyFails(t *testing.T) {
	_, err := run(t, t.TempDir(), "get", "NEVER_SET")
	assert.Error(t, err)
}

func TestListShowsDefaults(t *testing.T) {
	out, err := run(t, t.TempDir(), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "DB_PATH")
	assert.Contains(t, out, "PROJECTS_DIR")
	assert.Contains(t, out, "default")
}

func TestEnsureCreatesDirectory(t *testing.T) {
	root := t.TempDir()
	out, err := run(t, root, "ensure", "LOGS_DIR")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(root, "logs"))
	assert.DirExists(t, filepath.Join(root, "logs"))
}

func TestExportWritesSnapshot(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "handoff.json")

	out, err := run(t, root, "export", target)
	require.NoError(t, err)
	assert.Contains(t, out, "exported")
	assert.FileExists(t, target)
}

func TestMigrateNothingToDo(t *testing.T) {
	out, err := run(t, t.TempDir(), "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing to migrate")
}
