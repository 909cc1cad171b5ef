// Package persist moves the registry between memory and disk.
//
// Components:
//   - Store: JSON snapshot export/import, the only cross-process hand-off
//     mechanism the suite has; imports use overwrite semantics
//   - flat-file loader: ordered-candidate key=value files with # comments,
//     tolerant of malformed lines
//   - settings loader: the structured JSON document with paths, defaults
//     and app sections
//   - Migrator: upgrades legacy flat-file configuration into the current
//     key space, renaming the old file to .bak and reporting unmapped keys
//
// Corrupt or malformed input is skipped and logged, never fatal. Failing
// to WRITE a snapshot is an error the caller must see: silently losing
// configuration is the one failure an operator cannot diagnose.
package persist
