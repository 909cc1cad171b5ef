// Package registry implements the process-wide path registry shared by all
// suite executables.
//
// The registry maps uppercase keys (DB_PATH, PROJECTS_DIR, ...) to absolute
// paths and self-heals on lookup: a resolved path that is missing on disk
// gets its directory tree created (directories) or its parent created
// (files), and then an alternative-location search runs before the caller
// ever sees the miss. A recovered location is written back under the
// original key so the repair sticks for the rest of the process.
//
// Components:
//   - Registry: mutex-guarded key to entry store with origin precedence
//   - Kind: directory/file/opaque classification, inferred from key suffix
//     at registration unless given explicitly
//   - Origin: which layer wrote an entry (default < config < legacy < env
//     < user registration); lower-ranked writers never clobber higher ones
//   - Aliases: lookup-time key equivalences, never stored as entries
//
// Registration is a pure data operation: no directories are created until
// an explicit EnsureDirectory call, a lookup heal, or auto-repair runs.
//
// One registry is constructed per process and injected into every
// collaborator; there is no package-level instance.
//
// Example Usage:
//
//	reg := registry.New(registry.WithLogger(logger))
//	reg.Register("TEMPLATES_DIR", "/opt/pmsuite/data/templates")
//	dir, ok := reg.Get("TEMPLATES_DIR")
package registry
