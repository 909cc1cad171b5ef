// Package diagnostics inspects the registry's view of the filesystem and
// repairs what can safely be repaired without human judgment.
//
// Components:
//   - Checker: classifies every entry (or just the essential watch-list)
//     into issues; read-only apart from a transient write-probe sentinel
//   - Repairer: applies the fixable subset (directory creation) and
//     reports everything else as failed with a reason
//   - Reporter: renders a fresh report as text, HTML or JSON for operator
//     consumption
//
// Directory absence is fixable. Type mismatches and permission problems
// are not: both require a human decision and are surfaced at high
// severity instead.
package diagnostics
