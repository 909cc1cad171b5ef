package persist

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/pmsuite/pathregistry/internal/infrastructure/logging"
	"github.com/pmsuite/pathregistry/internal/registry"
)

// MigrationResult records what one migration pass did.
type MigrationResult struct {
	Source   string            `json:"source,omitempty"`
	Backup   string            `json:"backup,omitempty"`
	Migrated map[string]string `json:"migrated"`
	Unmapped []string          `json:"unmapped"`
}

// Migrator upgrades legacy flat-file configuration into the registry and
// moves the old file out of the way. User data is never deleted: the
// legacy file is renamed to <name>.bak.
type Migrator struct {
	reg       *registry.Registry
	locations []string
	log       *logging.Logger
}

// LegacyLocations is the ordered list of flat files older releases wrote.
func LegacyLocations(root string) []string {
	locations := []string{
		filepath.Join(root, "settings.txt"),
		filepath.Join(root, "config", "settings.ini"),
	}
	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(home, "ProjectManager", "defaults.txt"))
	}
	return locations
}

// NewMigrator builds a migrator over the given legacy locations.
func NewMigrator(reg *registry.Registry, locations []string, log *logging.Logger) *Migrator {
	if log == nil {
		log = logging.Nop()
	}
	return &Migrator{reg: reg, locations: locations, log: log}
}

// Run migrates the first existing legacy file. Mapped keys are registered
// at legacy precedence; unmapped keys are reported, never silently
// dropped. Running again once no legacy file remains is a no-op.
func (m *Migrator) Run() (MigrationResult, error) {
	result := MigrationResult{
		Migrated: make(map[string]string),
		Unmapped: []string{},
	}

	for _, location := range m.locations {
		if _, err := os.Stat(location); err != nil {
			continue
		}
		return m.migrateFile(location, result)
	}

	// Nothing left to migrate.
	return result, nil
}

func (m *Migrator) migrateFile(location string, result MigrationResult) (MigrationResult, error) {
	result.Source = location

	values, malformed, err := parseFlatFile(location)
	if err != nil {
		return result, fmt.Errorf("failed to read legacy file %s: %w", location, err)
	}
	for _, line := range malformed {
		m.log.Warn("skipping malformed legacy line",
			zap.String("path", location), zap.String("line", line))
	}

	for key, value := range values {
		mapped, found := legacyKeyMap[key]
		if !found {
			result.Unmapped = append(result.Unmapped, key)
			continue
		}
		m.reg.Apply(mapped, value, registry.OriginLegacy)
		result.Migrated[mapped] = value
	}
	sort.Strings(result.Unmapped)

	backup := location + ".bak"
	if err := os.Rename(location, backup); err != nil {
		return result, fmt.Errorf("failed to back up legacy file %s: %w", location, err)
	}
	result.Backup = backup

	m.log.Info("migrated legacy configuration",
		zap.String("source", location),
		zap.String("backup", backup),
		zap.Int("migrated", len(result.Migrated)),
		zap.Strings("unmapped", result.Unmapped))
	return result, nil
}
