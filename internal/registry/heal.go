package registry

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// selfHeal runs the inline recovery sequence for a resolved entry whose
// path may be missing: create the directory (or the file's parent), then
// consult the locator. Filesystem probes run outside the store lock.
func (r *Registry) selfHeal(entry Entry) string {
	path := entry.Value
	if _, err := os.Stat(path); err == nil {
		return path
	}

	switch entry.Kind {
	case KindDirectory:
		if err := os.MkdirAll(path, 0o755); err == nil {
			r.log.Info("healed missing directory",
				zap.String("key", entry.Key), zap.String("path", path))
			if r.observer != nil {
				r.observer.Healed()
			}
			return path
		} else {
			r.log.Error("directory heal failed",
				zap.String("key", entry.Key), zap.String("path", path), zap.Error(err))
		}
	case KindFile:
		// Create the parent only. Manufacturing an empty file here could be
		// mistaken for real data by a collaborator.
		parent := filepath.Dir(path)
		if _, err := os.Stat(parent); err != nil {
			if err := os.MkdirAll(parent, 0o755); err == nil {
				r.log.Info("healed missing parent directory",
					zap.String("key", entry.Key), zap.String("parent", parent))
				if r.observer != nil {
					r.observer.Healed()
				}
			} else {
				r.log.Error("parent heal failed",
					zap.String("key", entry.Key), zap.String("parent", parent), zap.Error(err))
			}
		}
	}

	if r.locator != nil {
		if alt, ok := r.locator.Locate(entry.Key, path); ok {
			r.log.Info("using alternative path",
				zap.String("key", entry.Key), zap.String("path", alt))
			r.cacheRelocation(entry.Key, alt)
			if r.observer != nil {
				r.observer.Relocated()
			}
			return alt
		}
	}

	// Unresolved is not an error: the caller gets the original path back.
	return path
}

// EnsureDirectory resolves key and guarantees the directory exists,
// creating it when missing. Idempotent. Returns false when the key is
// unknown or creation fails.
func (r *Registry) EnsureDirectory(key string) bool {
	path, ok := r.Get(key)
	if !ok {
		return false
	}
	if info, err := os.Stat(path); err == nil {
		return info.IsDir()
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		r.log.Error("ensure directory failed",
			zap.String("key", NormalizeKey(key)), zap.String("path", path), zap.Error(err))
		return false
	}
	r.log.Info("created directory", zap.String("key", NormalizeKey(key)), zap.String("path", path))
	return true
}
