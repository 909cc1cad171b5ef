// Package paths provides the standard path layout shared by every suite
// executable.
//
// The folder generator, document-list builder and dashboard each boot their
// own registry, so they must all derive the same directory tree from a
// single suite root. Any change to the layout here changes what every
// collaborator sees as the default location for shared data.
//
// Components:
//   - Well-known key constants used across the suite
//   - Defaults: the root-relative default path table
//   - DiscoverRoot: marker-based suite root discovery
//   - SuiteHome: per-user fallback root under Documents
package paths
