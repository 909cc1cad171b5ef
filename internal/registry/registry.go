package registry

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/pmsuite/pathregistry/internal/infrastructure/logging"
)

// Locator searches for an alternative location when a resolved path is
// missing on disk. Implementations must be side-effect free; the registry
// itself caches any hit.
type Locator interface {
	Locate(key, path string) (string, bool)
}

// Observer receives resolution events, typically backed by metrics.
type Observer interface {
	LookupHit()
	LookupMiss()
	Healed()
	Relocated()
	KeyCount(n int)
}

// CustomLookup resolves keys with a deferred, externally persisted
// location, such as a user-chosen projects directory from the settings
// document. Consulted only after the store and aliases miss.
type CustomLookup func(key string) (string, bool)

// defaultAliases are the fixed lookup-time key equivalences carried over
// from older releases of the suite.
var defaultAliases = map[string]string{
	"OUTPUT_BASE_DIR":       "PROJECTS_DIR",
	"DASHBOARD_EXPORT_DIR":  "EXPORTS_DIR",
	"DASHBOARD_EXPORT_FILE": "DASHBOARD_FILE",
	"MASTER_FOLDER":         "TEMPLATES_DIR",
}

// Registry is the process-wide path store. Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
	aliases map[string]string

	locator  Locator
	custom   CustomLookup
	observer Observer
	log      *logging.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(log *logging.Logger) Option {
	return func(r *Registry) { r.log = log }
}

// WithLocator installs the alternative-location search chain.
func WithLocator(l Locator) Option {
	return func(r *Registry) { r.locator = l }
}

// WithCustomLookup installs the deferred custom-path hook.
func WithCustomLookup(fn CustomLookup) Option {
	return func(r *Registry) { r.custom = fn }
}

// WithObserver installs a resolution event observer.
func WithObserver(o Observer) Option {
	return func(r *Registry) { r.observer = o }
}

// New constructs an empty registry. One registry is built per process and
// handed to every collaborator.
func New(opts ...Option) *Registry {
	r := &Registry{
		entries: make(map[string]Entry),
		aliases: make(map[string]string, len(defaultAliases)),
		log:     logging.Nop(),
	}
	for alias, key := range defaultAliases {
		r.aliases[alias] = key
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NormalizeKey canonicalizes a registry key.
func NormalizeKey(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}

// normalizePath cleans and absolutizes a path. Relative paths are resolved
// against the working directory so a relative value is never stored.
func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// Register stores a path under key with user precedence, which wins over
// every boot layer. The kind is inferred from the key suffix. Registration
// never touches the filesystem.
func (r *Registry) Register(key, path string) {
	r.RegisterKind(key, path, InferKind(NormalizeKey(key)))
}

// RegisterKind stores a path with an explicit kind, bypassing suffix
// inference.
func (r *Registry) RegisterKind(key, path string, kind Kind) {
	k := NormalizeKey(key)
	value := normalizePath(path)
	if value == "" {
		r.log.Warn("refusing to register empty path", zap.String("key", k))
		return
	}

	r.mu.Lock()
	r.entries[k] = Entry{Key: k, Value: value, Kind: kind, Origin: OriginUser}
	n := len(r.entries)
	r.mu.Unlock()

	r.log.Info("path registered", zap.String("key", k), zap.String("path", value))
	if r.observer != nil {
		r.observer.KeyCount(n)
	}
}

// Apply writes a path on behalf of a boot layer. The write is dropped when
// a higher-precedence layer already owns the key. Reports whether the value
// was stored.
func (r *Registry) Apply(key, path string, origin Origin) bool {
	k := NormalizeKey(key)
	value := normalizePath(path)
	if value == "" {
		return false
	}

	r.mu.Lock()
	if existing, ok := r.entries[k]; ok && existing.Origin > origin {
		r.mu.Unlock()
		r.log.Debug("write shadowed by higher-precedence origin",
			zap.String("key", k),
			zap.String("origin", origin.String()),
			zap.String("owner", existing.Origin.String()))
		return false
	}
	r.entries[k] = Entry{Key: k, Value: value, Kind: InferKind(k), Origin: origin}
	n := len(r.entries)
	r.mu.Unlock()

	if r.observer != nil {
		r.observer.KeyCount(n)
	}
	return true
}

// Overwrite unconditionally replaces a key, regardless of the stored
// origin. Used by snapshot import, where imported values win.
func (r *Registry) Overwrite(key, path string, origin Origin) {
	k := NormalizeKey(key)
	value := normalizePath(path)
	if value == "" {
		return
	}

	r.mu.Lock()
	r.entries[k] = Entry{Key: k, Value: value, Kind: InferKind(k), Origin: origin}
	n := len(r.entries)
	r.mu.Unlock()

	if r.observer != nil {
		r.observer.KeyCount(n)
	}
}

// SetCustomLookup installs or replaces the deferred custom-path hook. The
// boot sequence calls this once the persisted settings document has been
// read, which happens after the registry is constructed.
func (r *Registry) SetCustomLookup(fn CustomLookup) {
	r.mu.Lock()
	r.custom = fn
	r.mu.Unlock()
}

// RegisterAlias declares alias to resolve through key at lookup time.
// Aliases never become entries of their own.
func (r *Registry) RegisterAlias(alias, key string) {
	r.mu.Lock()
	r.aliases[NormalizeKey(alias)] = NormalizeKey(key)
	r.mu.Unlock()
}

// Get resolves key to a path. Resolution order: exact entry, alias target,
// custom-path hook. A resolved path missing on disk is healed and, failing
// that, the locator chain runs; a located path is cached back under the
// key. Get never fails for a missing path, only for an unknown key.
func (r *Registry) Get(key string) (string, bool) {
	k := NormalizeKey(key)

	r.mu.RLock()
	entry, ok := r.lookupLocked(k)
	custom := r.custom
	r.mu.RUnlock()

	if !ok {
		if custom != nil {
			if path, found := custom(k); found && path != "" {
				if r.observer != nil {
					r.observer.LookupHit()
				}
				hit := Entry{Key: k, Value: normalizePath(path), Kind: InferKind(k)}
				return r.selfHeal(hit), true
			}
		}
		r.log.Warn("path not found", zap.String("key", k))
		if r.observer != nil {
			r.observer.LookupMiss()
		}
		return "", false
	}

	if r.observer != nil {
		r.observer.LookupHit()
	}
	return r.selfHeal(entry), true
}

// GetOr resolves key, returning fallback when the key is unknown. The
// fallback is healed the same way a stored path would be, with its kind
// inferred from the key, but it is never stored.
func (r *Registry) GetOr(key, fallback string) string {
	if path, ok := r.Get(key); ok {
		return path
	}
	if fallback == "" {
		return ""
	}
	k := NormalizeKey(key)
	return r.selfHeal(Entry{Key: k, Value: normalizePath(fallback), Kind: InferKind(k)})
}

// lookupLocked resolves exact then alias. Callers hold at least a read lock.
func (r *Registry) lookupLocked(key string) (Entry, bool) {
	if entry, ok := r.entries[key]; ok {
		return entry, true
	}
	if target, ok := r.aliases[key]; ok {
		if entry, ok := r.entries[target]; ok {
			return entry, true
		}
	}
	return Entry{}, false
}

// Entry returns the stored entry for a key or its alias target.
func (r *Registry) Entry(key string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookupLocked(NormalizeKey(key))
}

// All returns a copy of the key to path map.
func (r *Registry) All() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m := make(map[string]string, len(r.entries))
	for key, entry := range r.entries {
		m[key] = entry.Value
	}
	return m
}

// Entries returns all entries sorted by key, for deterministic reports and
// exports.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	out := make([]Entry, 0, len(r.entries))
	for _, entry := range r.entries {
		out = append(out, entry)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Len returns the number of stored entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// cacheRelocation remembers a locator hit under the original key, keeping
// the entry's origin.
func (r *Registry) cacheRelocation(key, path string) {
	r.mu.Lock()
	if entry, ok := r.entries[key]; ok {
		entry.Value = path
		r.entries[key] = entry
	}
	r.mu.Unlock()
}
