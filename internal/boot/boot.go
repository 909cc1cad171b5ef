package boot

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/pmsuite/pathregistry/internal/infrastructure/config"
	"github.com/pmsuite/pathregistry/internal/infrastructure/logging"
	"github.com/pmsuite/pathregistry/internal/locator"
	"github.com/pmsuite/pathregistry/internal/persist"
	"github.com/pmsuite/pathregistry/internal/registry"
	"github.com/pmsuite/pathregistry/internal/shared/paths"
)

// Result summarizes what the boot sequence found and loaded.
type Result struct {
	Root         string
	Snapshot     string
	Settings     string
	FlatFile     string
	EnvOverrides int
}

// SnapshotCandidates is the ordered search list for a persisted snapshot.
func SnapshotCandidates(root string) []string {
	return []string{
		filepath.Join(root, persist.SnapshotName),
		filepath.Join(root, "config", persist.SnapshotName),
		filepath.Join(paths.SuiteHome(), persist.SnapshotName),
	}
}

// New constructs a fully seeded registry for this process. cfg.Root
// overrides discovery; observer may be nil. The returned registry is the
// one instance collaborators share for the process lifetime.
func New(cfg *config.Config, log *logging.Logger, observer registry.Observer) (*registry.Registry, Result) {
	if log == nil {
		log = logging.Nop()
	}

	root := cfg.Root
	if root == "" {
		root = paths.DiscoverRoot()
	}

	opts := []registry.Option{
		registry.WithLogger(log),
		registry.WithLocator(locator.New(root, log)),
	}
	if observer != nil {
		opts = append(opts, registry.WithObserver(observer))
	}
	reg := registry.New(opts...)

	result := Seed(reg, root, log)
	log.Info("registry initialized",
		zap.String("root", result.Root),
		zap.String("snapshot", result.Snapshot),
		zap.String("flat_file", result.FlatFile),
		zap.Int("env_overrides", result.EnvOverrides),
		zap.Int("keys", reg.Len()))
	return reg, result
}

// Seed applies the boot layers to an existing registry, lowest precedence
// first. Exposed separately so tests and the importer CLI can seed
// explicitly constructed registries.
func Seed(reg *registry.Registry, root string, log *logging.Logger) Result {
	if log == nil {
		log = logging.Nop()
	}
	result := Result{Root: root}

	for key, value := range paths.Defaults(root) {
		reg.Apply(key, value, registry.OriginDefault)
	}

	store := persist.NewStore(reg, filepath.Join(root, persist.SnapshotName), config.AppVersion, log)
	result.Snapshot = store.LoadFirst(SnapshotCandidates(root))

	for _, candidate := range persist.SettingsCandidates(root) {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		settings, err := persist.LoadSettings(candidate)
		if err != nil {
			log.Warn("skipping malformed settings document",
				zap.String("path", candidate), zap.Error(err))
			continue
		}
		if hook := persist.ApplySettings(reg, settings, log); hook != nil {
			reg.SetCustomLookup(hook)
		}
		result.Settings = candidate
		break
	}

	result.FlatFile = persist.LoadFlatFile(reg, persist.FlatFileCandidates(root), log)
	result.EnvOverrides = ApplyEnv(reg, log)
	return result
}
