package persist

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/pmsuite/pathregistry/internal/infrastructure/logging"
	"github.com/pmsuite/pathregistry/internal/registry"
)

// SnapshotName is the default snapshot file name under the suite root.
const SnapshotName = "path_registry.json"

// Snapshot is the persisted form of the registry.
type Snapshot struct {
	Paths      map[string]string `json:"paths"`
	Timestamp  string            `json:"timestamp"`
	AppVersion string            `json:"app_version"`
}

// Store serializes the registry to JSON and back.
type Store struct {
	reg         *registry.Registry
	defaultPath string
	version     string
	log         *logging.Logger
}

// NewStore builds a snapshot store. defaultPath is used when Export or
// Import get an empty path.
func NewStore(reg *registry.Registry, defaultPath, version string, log *logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{reg: reg, defaultPath: defaultPath, version: version, log: log}
}

// Export writes the full key to path map to disk. An existing file is kept
// as a .bak until the new snapshot is safely in place. Write failures are
// returned: losing configuration must be visible to the operator.
func (s *Store) Export(path string) error {
	if path == "" {
		path = s.defaultPath
	}

	snapshot := Snapshot{
		Paths:      s.reg.All(),
		Timestamp:  time.Now().Format(time.RFC3339),
		AppVersion: s.version,
	}

	data, err := sonic.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	backup := path + ".bak"
	hadPrevious := false
	if previous, err := os.ReadFile(path); err == nil {
		if err := os.WriteFile(backup, previous, 0o644); err != nil {
			return fmt.Errorf("failed to back up existing snapshot: %w", err)
		}
		hadPrevious = true
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	if hadPrevious {
		os.Remove(backup)
	}

	s.log.Info("exported path configuration",
		zap.String("path", path), zap.Int("keys", len(snapshot.Paths)))
	return nil
}

// Import reads a snapshot and registers every entry with overwrite
// semantics: imported values win over whatever is currently stored. The
// bare key to path map written by older releases is accepted as well.
func (s *Store) Import(path string) error {
	if path == "" {
		path = s.defaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snapshot Snapshot
	err = sonic.Unmarshal(data, &snapshot)
	if err != nil || (snapshot.Paths == nil && snapshot.Timestamp == "" && snapshot.AppVersion == "") {
		// Older releases persisted the bare map without an envelope.
		var bare map[string]string
		if bareErr := sonic.Unmarshal(data, &bare); bareErr != nil {
			return fmt.Errorf("failed to parse snapshot %s: %w", path, bareErr)
		}
		snapshot.Paths = bare
	}

	for key, value := range snapshot.Paths {
		s.reg.Overwrite(key, value, registry.OriginConfig)
	}

	s.log.Info("imported path configuration",
		zap.String("path", path),
		zap.Int("keys", len(snapshot.Paths)),
		zap.String("snapshot_version", snapshot.AppVersion))
	return nil
}

// LoadFirst imports the first existing snapshot from an ordered candidate
// list. Returns the loaded path, or empty when none existed. A corrupt
// candidate is logged and skipped, and the search continues.
func (s *Store) LoadFirst(candidates []string) string {
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		if err := s.Import(candidate); err != nil {
			s.log.Warn("skipping unreadable snapshot",
				zap.String("path", candidate), zap.Error(err))
			continue
		}
		return candidate
	}
	return ""
}
