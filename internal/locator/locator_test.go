package locator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmsuite/pathregistry/internal/infrastructure/logging"
)

func TestSubstitutionRenamedProductSegment(t *testing.T) {
	dir := t.TempDir()
	current := filepath.Join(dir, "ProjectManager", "data", "projects")
	require.NoError(t, os.MkdirAll(current, 0o755))

	stale := filepath.Join(dir, "ProjectManagerSuite", "data", "projects")
	alt, ok := Substitution{}.Find(stale)
	require.True(t, ok)
	assert.Equal(t, current, alt)
}

func TestSubstitutionNoMatch(t *testing.T) {
	_, ok := Substitution{}.Find(filepath.Join(t.TempDir(), "nothing", "here"))
	assert.False(t, ok)
}

func TestSiblingMatchCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Old-TEMPLATES-backup"), 0o755))

	alt, ok := SiblingMatch{}.Find(filepath.Join(dir, "templates"))
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "Old-TEMPLATES-backup"), alt)
}

func TestSiblingMatchMissingParent(t *testing.T) {
	_, ok := SiblingMatch{}.Find(filepath.Join(t.TempDir(), "gone", "templates"))
	assert.False(t, ok)
}

func TestFallbackRootsDirectChild(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "dashboard.csv")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))

	alt, ok := FallbackRoots{Roots: []string{root}}.Find("/gone/exports/dashboard.csv")
	require.True(t, ok)
	assert.Equal(t, target, alt)
}

func TestFallbackRootsRecursive(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "archive", "2024", "exports")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	target := filepath.Join(nested, "dashboard.csv")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))

	alt, ok := FallbackRoots{Roots: []string{root}}.Find("/gone/dashboard.csv")
	require.True(t, ok)
	assert.Equal(t, target, alt)
}

func TestFallbackRootsSkipsMissingRoots(t *testing.T) {
	_, ok := FallbackRoots{Roots: []string{"/does/not/exist/at/all"}}.Find("/gone/dashboard.csv")
	assert.False(t, ok)
}

func TestChainOrderFirstHitWins(t *testing.T) {
	dir := t.TempDir()

	// Both a sibling match and a fallback-root match exist; the sibling
	// strategy runs first.
	sibling := filepath.Join(dir, "templates-v2")
	require.NoError(t, os.MkdirAll(sibling, 0o755))

	fallbackRoot := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(fallbackRoot, "templates"), 0o755))

	chain := NewWithStrategies(logging.Nop(),
		SiblingMatch{},
		FallbackRoots{Roots: []string{fallbackRoot}},
	)

	alt, ok := chain.Locate("TEMPLATES_DIR", filepath.Join(dir, "templates"))
	require.True(t, ok)
	assert.Equal(t, sibling, alt)
}

func TestChainMiss(t *testing.T) {
	chain := New(t.TempDir(), logging.Nop())
	_, ok := chain.Locate("X_DIR", filepath.Join(t.TempDir(), "definitely", "missing"))
	assert.False(t, ok)
}
