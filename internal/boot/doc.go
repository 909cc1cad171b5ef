// Package boot assembles and seeds a registry for one process.
//
// Layering order, lowest precedence first:
//  1. computed defaults for the discovered suite root
//  2. persisted JSON snapshot (first existing candidate)
//  3. structured settings document (paths section + custom-path hook)
//  4. legacy flat key=value file
//  5. environment overlay (PMSUITE_PATH_* plus the named special
//     variables), which therefore always wins
//
// Every layer is optional and non-fatal; a process with no configuration
// at all still boots on computed defaults.
package boot
