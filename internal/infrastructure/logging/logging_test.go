package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Config{Level: "chatty", OutputPaths: []string{"stderr"}})
	assert.Error(t, err)
}

func TestNewWithLogDirCreatesFileSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	log := NewWithLogDir(Config{Level: "info", OutputPaths: []string{"stderr"}}, dir)
	require.NotNil(t, log)

	log.Info("registry initialized")
	_ = log.Sync()

	assert.DirExists(t, dir)
	data, err := os.ReadFile(filepath.Join(dir, "registry.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "registry initialized")
}

func TestNewWithLogDirFallsBackWhenDirUnavailable(t *testing.T) {
	// A regular file where the log directory should be blocks MkdirAll
	// for any user; the file sink is dropped, not the boot.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	log := NewWithLogDir(Config{Level: "info", OutputPaths: []string{"stderr"}},
		filepath.Join(blocker, "logs"))
	require.NotNil(t, log)
	log.Info("still logging")
}
