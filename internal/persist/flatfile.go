package persist

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/pmsuite/pathregistry/internal/infrastructure/logging"
	"github.com/pmsuite/pathregistry/internal/registry"
	"github.com/pmsuite/pathregistry/internal/shared/paths"
)

// legacyKeyMap normalizes the lowercase key names older releases wrote to
// the current uppercase key space.
var legacyKeyMap = map[string]string{
	"project_dir":    paths.ProjectsDir,
	"projects_dir":   paths.ProjectsDir,
	"output_dir":     paths.ExportsDir,
	"export_dir":     paths.ExportsDir,
	"database_path":  paths.DBPath,
	"db_path":        paths.DBPath,
	"template_dir":   paths.TemplatesDir,
	"master_dir":     paths.MasterDir,
	"log_dir":        paths.LogsDir,
	"data_dir":       paths.DataDir,
	"temp_dir":       paths.TempDir,
	"backup_dir":     paths.BackupDir,
	"dashboard_file": paths.DashboardFile,
}

// mapFlatKey converts a flat-file key to a current registry key. Legacy
// lowercase names go through the fixed table; anything else is uppercased
// verbatim. ok is false for legacy-looking keys with no mapping.
func mapFlatKey(key string) (string, bool) {
	if mapped, found := legacyKeyMap[strings.ToLower(key)]; found {
		return mapped, true
	}
	// Already-current keys are uppercase with a kind suffix.
	upper := strings.ToUpper(key)
	if upper == key {
		return upper, true
	}
	return "", false
}

// parseFlatFile reads key=value lines, skipping comments and blanks.
// Malformed lines are collected, not fatal.
func parseFlatFile(path string) (map[string]string, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	values := make(map[string]string)
	malformed := []string{}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if !found || key == "" || value == "" {
			malformed = append(malformed, line)
			continue
		}
		values[key] = value
	}
	if err := scanner.Err(); err != nil {
		return values, malformed, err
	}
	return values, malformed, nil
}

// FlatFileCandidates is the ordered search list for the current flat
// configuration file under a suite root.
func FlatFileCandidates(root string) []string {
	candidates := []string{
		filepath.Join(root, "defaults.txt"),
		filepath.Join(root, "data", "defaults.txt"),
		filepath.Join(root, "config", "defaults.txt"),
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, paths.SuiteName, "defaults.txt"))
	}
	return candidates
}

// LoadFlatFile applies the first existing flat file from candidates to the
// registry at legacy precedence. Unmappable and malformed entries are
// logged and skipped. Returns the loaded path, or empty when none existed.
func LoadFlatFile(reg *registry.Registry, candidates []string, log *logging.Logger) string {
	if log == nil {
		log = logging.Nop()
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		values, malformed, err := parseFlatFile(candidate)
		if err != nil {
			log.Warn("skipping unreadable flat file",
				zap.String("path", candidate), zap.Error(err))
			continue
		}
		for _, line := range malformed {
			log.Warn("skipping malformed line",
				zap.String("path", candidate), zap.String("line", line))
		}
		for key, value := range values {
			mapped, ok := mapFlatKey(key)
			if !ok {
				log.Warn("skipping unmapped flat key",
					zap.String("path", candidate), zap.String("key", key))
				continue
			}
			reg.Apply(mapped, value, registry.OriginLegacy)
		}
		log.Info("loaded flat configuration",
			zap.String("path", candidate), zap.Int("keys", len(values)))
		return candidate
	}
	return ""
}
