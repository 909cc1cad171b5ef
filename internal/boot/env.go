package boot

import (
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/pmsuite/pathregistry/internal/infrastructure/config"
	"github.com/pmsuite/pathregistry/internal/infrastructure/logging"
	"github.com/pmsuite/pathregistry/internal/registry"
)

// ApplyEnv overlays environment variables onto the registry at env
// precedence. The open-ended PMSUITE_PATH_<KEY> space is scanned first,
// then the fixed special-variable table, so a special variable beats a
// generic one naming the same key. Returns how many keys were overlaid.
func ApplyEnv(reg *registry.Registry, log *logging.Logger) int {
	if log == nil {
		log = logging.Nop()
	}

	applied := 0
	for _, pair := range os.Environ() {
		name, value, found := strings.Cut(pair, "=")
		if !found || !strings.HasPrefix(name, config.PathPrefix) || value == "" {
			continue
		}
		key := strings.ToUpper(strings.TrimPrefix(name, config.PathPrefix))
		if key == "" {
			continue
		}
		if reg.Apply(key, value, registry.OriginEnv) {
			applied++
			log.Info("path overridden from environment",
				zap.String("key", key), zap.String("variable", name))
		}
	}

	overrides, err := config.LoadPathOverrides()
	if err != nil {
		log.Warn("failed to read special path variables", zap.Error(err))
		return applied
	}
	for key, value := range overrides.Keyed() {
		if reg.Apply(key, value, registry.OriginEnv) {
			applied++
			log.Info("path overridden from special environment variable",
				zap.String("key", key))
		}
	}
	return applied
}
