package registry

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferKind(t *testing.T) {
	assert.Equal(t, KindDirectory, InferKind("DATA_DIR"))
	assert.Equal(t, KindDirectory, InferKind("MASTER_FOLDER"))
	assert.Equal(t, KindFile, InferKind("DASHBOARD_FILE"))
	assert.Equal(t, KindFile, InferKind("DB_PATH"))
	assert.Equal(t, KindOpaque, InferKind("ROOT"))
}

func TestRegisterGetRoundTrip(t *testing.T) {
	reg := New()
	dir := t.TempDir()

	reg.Register("templates_dir", dir)

	got, ok := reg.Get("TEMPLATES_DIR")
	require.True(t, ok)
	assert.Equal(t, dir, got)

	// Lookup is case-insensitive on the way in too.
	got, ok = reg.Get("templates_dir")
	require.True(t, ok)
	assert.Equal(t, dir, got)
}

func TestRegisterStoresAbsolutePath(t *testing.T) {
	reg := New()
	reg.Register("TEMP_DIR", filepath.Join(".", "does-not-exist-relative"))

	entry, ok := reg.Entry("TEMP_DIR")
	require.True(t, ok)
	assert.True(t, filepath.IsAbs(entry.Value))
	assert.Equal(t, OriginUser, entry.Origin)
	assert.True(t, entry.UserRegistered())
}

func TestRegisterRejectsEmptyPath(t *testing.T) {
	reg := New()
	reg.Register("DATA_DIR", "   ")
	assert.Equal(t, 0, reg.Len())
}

func TestOriginPrecedence(t *testing.T) {
	reg := New()
	dir := t.TempDir()

	defaultPath := filepath.Join(dir, "default")
	configPath := filepath.Join(dir, "config")
	envPath := filepath.Join(dir, "env")
	for _, p := range []string{defaultPath, configPath, envPath} {
		require.NoError(t, os.MkdirAll(p, 0o755))
	}

	assert.True(t, reg.Apply("DATA_DIR", defaultPath, OriginDefault))
	assert.True(t, reg.Apply("DATA_DIR", configPath, OriginConfig))
	assert.True(t, reg.Apply("DATA_DIR", envPath, OriginEnv))

	// A lower-precedence layer can no longer take the key back.
	assert.False(t, reg.Apply("DATA_DIR", configPath, OriginConfig))

	got, ok := reg.Get("DATA_DIR")
	require.True(t, ok)
	assert.Equal(t, envPath, got)

	entry, _ := reg.Entry("DATA_DIR")
	assert.Equal(t, OriginEnv, entry.Origin)

	// Explicit registration always wins.
	userPath := filepath.Join(dir, "user")
	require.NoError(t, os.MkdirAll(userPath, 0o755))
	reg.Register("DATA_DIR", userPath)
	got, _ = reg.Get("DATA_DIR")
	assert.Equal(t, userPath, got)
}

func TestOverwriteIgnoresPrecedence(t *testing.T) {
	reg := New()
	dir := t.TempDir()

	reg.Register("DATA_DIR", dir)
	imported := filepath.Join(dir, "imported")
	require.NoError(t, os.MkdirAll(imported, 0o755))

	reg.Overwrite("DATA_DIR", imported, OriginConfig)

	got, _ := reg.Get("DATA_DIR")
	assert.Equal(t, imported, got)
}

func TestAliasResolvesAtLookupTime(t *testing.T) {
	reg := New()
	dir := t.TempDir()
	reg.Register("PROJECTS_DIR", dir)

	got, ok := reg.Get("OUTPUT_BASE_DIR")
	require.True(t, ok)
	assert.Equal(t, dir, got)

	// The alias never becomes an entry of its own.
	_, present := reg.All()["OUTPUT_BASE_DIR"]
	assert.False(t, present)

	reg.RegisterAlias("archive_dir", "projects_dir")
	got, ok = reg.Get("ARCHIVE_DIR")
	require.True(t, ok)
	assert.Equal(t, dir, got)
}

func TestGetOrFallback(t *testing.T) {
	reg := New()
	assert.Equal(t, "/fallback", reg.GetOr("NEVER_SET", "/fallback"))

	dir := t.TempDir()
	reg.Register("DATA_DIR", dir)
	assert.Equal(t, dir, reg.GetOr("DATA_DIR", "/fallback"))
}

func TestGetOrHealsDefaultForUnknownKey(t *testing.T) {
	reg := New()
	def := filepath.Join(t.TempDir(), "data", "projects.db")

	got := reg.GetOr("DB_PATH", def)
	assert.Equal(t, def, got)

	// The default is treated like a stored file path: parent created,
	// file itself untouched.
	assert.DirExists(t, filepath.Dir(def))
	assert.NoFileExists(t, def)

	// Nothing was stored on the way through.
	assert.Equal(t, 0, reg.Len())
}

func TestGetOrHealsDefaultDirectory(t *testing.T) {
	reg := New()
	def := filepath.Join(t.TempDir(), "exports")

	got := reg.GetOr("EXPORTS_DIR", def)
	assert.Equal(t, def, got)
	assert.DirExists(t, def)
}

func TestCustomLookupConsultedOnMiss(t *testing.T) {
	custom := t.TempDir()
	reg := New(WithCustomLookup(func(key string) (string, bool) {
		if key == "PROJECTS_DIR" {
			return custom, true
		}
		return "", false
	}))

	got, ok := reg.Get("PROJECTS_DIR")
	require.True(t, ok)
	assert.Equal(t, custom, got)

	// The hook is lookup-time only; nothing was stored.
	assert.Equal(t, 0, reg.Len())
}

func TestCustomLookupHitIsHealed(t *testing.T) {
	target := filepath.Join(t.TempDir(), "relocated-projects")
	reg := New(WithCustomLookup(func(key string) (string, bool) {
		if key == "PROJECTS_DIR" {
			return target, true
		}
		return "", false
	}))

	got, ok := reg.Get("PROJECTS_DIR")
	require.True(t, ok)
	assert.Equal(t, target, got)
	assert.DirExists(t, target)
}

func TestGetHealsMissingDirectory(t *testing.T) {
	reg := New()
	target := filepath.Join(t.TempDir(), "data", "exports")
	reg.Register("EXPORTS_DIR", target)

	got, ok := reg.Get("EXPORTS_DIR")
	require.True(t, ok)
	assert.Equal(t, target, got)
	assert.DirExists(t, target)
}

func TestGetHealsFileParentOnly(t *testing.T) {
	reg := New()
	target := filepath.Join(t.TempDir(), "data", "projects.db")
	reg.Register("DB_PATH", target)

	got, ok := reg.Get("DB_PATH")
	require.True(t, ok)
	assert.Equal(t, target, got)
	assert.DirExists(t, filepath.Dir(target))
	assert.NoFileExists(t, target)
}

func TestOpaqueKeyNeverHealed(t *testing.T) {
	reg := New()
	target := filepath.Join(t.TempDir(), "somewhere")
	reg.RegisterKind("WORKSPACE", target, KindOpaque)

	got, ok := reg.Get("WORKSPACE")
	require.True(t, ok)
	assert.Equal(t, target, got)
	assert.NoDirExists(t, target)
}

type fixedLocator struct {
	alt   string
	calls int
}

func (f *fixedLocator) Locate(key, path string) (string, bool) {
	f.calls++
	if f.alt == "" {
		return "", false
	}
	return f.alt, true
}

func TestLocatorHitIsCached(t *testing.T) {
	dir := t.TempDir()
	moved := filepath.Join(dir, "ProjectManager", "projects")
	require.NoError(t, os.MkdirAll(moved, 0o755))

	loc := &fixedLocator{alt: moved}
	reg := New(WithLocator(loc))

	// Opaque kind so the heal step cannot satisfy the lookup first.
	missing := filepath.Join(dir, "ProjectManagerSuite", "projects")
	reg.RegisterKind("PROJECTS_DIR", missing, KindOpaque)

	got, ok := reg.Get("PROJECTS_DIR")
	require.True(t, ok)
	assert.Equal(t, moved, got)
	assert.Equal(t, 1, loc.calls)

	// Second lookup serves the cached correction without the locator.
	got, ok = reg.Get("PROJECTS_DIR")
	require.True(t, ok)
	assert.Equal(t, moved, got)
	assert.Equal(t, 1, loc.calls)
}

func TestEnsureDirectoryIdempotent(t *testing.T) {
	reg := New()
	target := filepath.Join(t.TempDir(), "logs")
	reg.Register("LOGS_DIR", target)

	assert.True(t, reg.EnsureDirectory("LOGS_DIR"))
	assert.True(t, reg.EnsureDirectory("LOGS_DIR"))
	assert.DirExists(t, target)

	assert.False(t, reg.EnsureDirectory("NEVER_SET"))
}

func TestEntriesSorted(t *testing.T) {
	reg := New()
	dir := t.TempDir()
	reg.Register("ZULU_DIR", filepath.Join(dir, "z"))
	reg.Register("ALPHA_DIR", filepath.Join(dir, "a"))
	reg.Register("MIKE_DIR", filepath.Join(dir, "m"))

	entries := reg.Entries()
	require.Len(t, entries, 3)
	keys := []string{entries[0].Key, entries[1].Key, entries[2].Key}
	assert.Equal(t, []string{"ALPHA_DIR", "MIKE_DIR", "ZULU_DIR"}, keys)
}

func TestConcurrentRegisterAndGet(t *testing.T) {
	reg := New()
	dir := t.TempDir()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			key := "WORKER_" + strings.Repeat("X", n+1) + "_DIR"
			reg.Register(key, filepath.Join(dir, key))
		}(i)
		go func() {
			defer wg.Done()
			reg.Get("WORKER_X_DIR")
			reg.All()
		}()
	}
	wg.Wait()

	assert.Equal(t, 8, reg.Len())
}
