// Package locator searches for relocated paths when a registered location
// no longer exists on disk.
//
// The search is an ordered strategy chain; the first hit wins:
//  1. Substitution — known renamed path segments (old product names,
//     flattened data layouts) swapped into the path string
//  2. SiblingMatch — case-insensitive substring match against entries of
//     the parent directory
//  3. FallbackRoots — plausible root directories checked for a direct
//     child, then a bounded recursive scan for the base name
//
// Strategies are side-effect free and independently testable. The registry
// caches any hit back under the original key; the chain itself remembers
// nothing.
package locator
