package persist

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/pmsuite/pathregistry/internal/infrastructure/logging"
	"github.com/pmsuite/pathregistry/internal/registry"
	"github.com/pmsuite/pathregistry/internal/shared/paths"
)

// SettingsName is the structured settings document file name.
const SettingsName = "settings.json"

// customProjectsKey in the defaults section points at a user-chosen
// projects directory, resolved lazily at lookup time.
const customProjectsKey = "custom_projects_dir"

// Settings is the structured configuration document. Every section is
// optional; absent sections simply contribute nothing.
type Settings struct {
	Paths    map[string]string `json:"paths"`
	Defaults map[string]string `json:"defaults"`
	App      map[string]string `json:"app"`
}

// LoadSettings reads a settings document. Malformed JSON is an error the
// caller downgrades to a warning; a missing file is reported as such.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, err
	}
	var s Settings
	if err := sonic.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	return s, nil
}

// SettingsCandidates is the ordered search list for the settings document.
func SettingsCandidates(root string) []string {
	return []string{
		filepath.Join(root, SettingsName),
		filepath.Join(root, "config", SettingsName),
		filepath.Join(paths.SuiteHome(), SettingsName),
	}
}

// ApplySettings seeds the registry from the paths section at config
// precedence and returns a custom lookup hook built from the defaults
// section, or nil when it contributes nothing.
func ApplySettings(reg *registry.Registry, s Settings, log *logging.Logger) registry.CustomLookup {
	if log == nil {
		log = logging.Nop()
	}

	for key, value := range s.Paths {
		reg.Apply(key, value, registry.OriginConfig)
	}

	custom := s.Defaults[customProjectsKey]
	if custom == "" {
		return nil
	}

	// The chosen directory replaces the default projects location at config
	// precedence; the hook additionally answers legacy keys that resolve to
	// it without being materialized as entries.
	reg.Apply(paths.ProjectsDir, custom, registry.OriginConfig)
	log.Info("custom projects location configured", zap.String("path", custom))
	return func(key string) (string, bool) {
		if key == paths.ProjectsDir {
			return custom, true
		}
		return "", false
	}
}
