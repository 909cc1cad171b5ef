package boot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmsuite/pathregistry/internal/infrastructure/config"
	"github.com/pmsuite/pathregistry/internal/infrastructure/logging"
	"github.com/pmsuite/pathregistry/internal/persist"
	"github.com/pmsuite/pathregistry/internal/registry"
	"github.com/pmsuite/pathregistry/internal/shared/paths"
)

func TestSeedDefaultsOnly(t *testing.T) {
	root := t.TempDir()
	reg := registry.New()

	result := Seed(reg, root, logging.Nop())

	assert.Equal(t, root, result.Root)
	assert.Empty(t, result.Snapshot)
	assert.Empty(t, result.FlatFile)

	got, ok := reg.Get(paths.DBPath)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "data", "projects.db"), got)

	entry, _ := reg.Entry(paths.DataDir)
	assert.Equal(t, registry.OriginDefault, entry.Origin)
}

func TestSeedSnapshotOverridesDefaults(t *testing.T) {
	root := t.TempDir()
	custom := filepath.Join(root, "elsewhere", "data")
	require.NoError(t, os.MkdirAll(custom, 0o755))

	seeder := registry.New()
	seeder.Register(paths.DataDir, custom)
	store := persist.NewStore(seeder, filepath.Join(root, persist.SnapshotName), "test", logging.Nop())
	require.NoError(t, store.Export(""))

	reg := registry.New()
	result := Seed(reg, root, logging.Nop())
	assert.NotEmpty(t, result.Snapshot)

	got, _ := reg.Get(paths.DataDir)
	assert.Equal(t, custom, got)
}

func TestSeedFlatFileBeatsSnapshot(t *testing.T) {
	root := t.TempDir()

	legacyData := filepath.Join(root, "legacy-data")
	require.NoError(t, os.MkdirAll(legacyData, 0o755))
	flat := "data_dir=" + legacyData + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "defaults.txt"), []byte(flat), 0o644))

	reg := registry.New()
	Seed(reg, root, logging.Nop())

	got, _ := reg.Get(paths.DataDir)
	assert.Equal(t, legacyData, got)

	entry, _ := reg.Entry(paths.DataDir)
	assert.Equal(t, registry.OriginLegacy, entry.Origin)
}

func TestEnvironmentWinsOverEverything(t *testing.T) {
	root := t.TempDir()
	envData := filepath.Join(root, "env-data")
	require.NoError(t, os.MkdirAll(envData, 0o755))

	flat := "data_dir=" + filepath.Join(root, "flat-data") + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "defaults.txt"), []byte(flat), 0o644))

	require.NoError(t, os.Setenv("PMSUITE_PATH_DATA_DIR", envData))
	defer os.Unsetenv("PMSUITE_PATH_DATA_DIR")

	reg := registry.New()
	result := Seed(reg, root, logging.Nop())
	assert.GreaterOrEqual(t, result.EnvOverrides, 1)

	got, _ := reg.Get(paths.DataDir)
	assert.Equal(t, envData, got)

	entry, _ := reg.Entry(paths.DataDir)
	assert.Equal(t, registry.OriginEnv, entry.Origin)
}

func TestEnvOverlayNormalizesValue(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Setenv("PMSUITE_PATH_TEMP_DIR", filepath.Join("scratch", "tmp")))
	defer os.Unsetenv("PMSUITE_PATH_TEMP_DIR")

	reg := registry.New()
	Seed(reg, root, logging.Nop())

	entry, ok := reg.Entry(paths.TempDir)
	require.True(t, ok)
	assert.True(t, filepath.IsAbs(entry.Value))
	assert.Equal(t, registry.OriginEnv, entry.Origin)
}

func TestSpecialEnvVariableMapsToInternalKey(t *testing.T) {
	root := t.TempDir()
	dbPath := filepath.Join(root, "custom", "projects.db")

	require.NoError(t, os.Setenv("PMSUITE_DB_PATH", dbPath))
	defer os.Unsetenv("PMSUITE_DB_PATH")

	reg := registry.New()
	Seed(reg, root, logging.Nop())

	got, _ := reg.Get(paths.DBPath)
	assert.Equal(t, dbPath, got)
}

func TestSeedInstallsCustomProjectsHook(t *testing.T) {
	root := t.TempDir()
	settings := `{"defaults": {"custom_projects_dir": "` + filepath.ToSlash(filepath.Join(root, "my-projects")) + `"}}`
	require.NoError(t, os.WriteFile(filepath.Join(root, persist.SettingsName), []byte(settings), 0o644))

	reg := registry.New()
	result := Seed(reg, root, logging.Nop())
	assert.NotEmpty(t, result.Settings)
}

func TestNewBuildsSeededRegistry(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()
	cfg.Root = root

	reg, result := New(cfg, logging.Nop(), nil)
	assert.Equal(t, root, result.Root)
	assert.Greater(t, reg.Len(), 10)
}
