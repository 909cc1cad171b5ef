// Package config loads process configuration from the environment.
//
// Two distinct environment surfaces exist:
//   - Process settings (log level, HTTP panel address, suite root override)
//     read here through envconfig struct tags.
//   - The open-ended PMSUITE_PATH_* override space, scanned by the boot
//     overlay, which cannot be expressed as a fixed struct.
//
// The fixed "special" path variables (PMSUITE_DB_PATH and friends) live in
// PathOverrides so operators can override the load-bearing paths without
// knowing internal key names.
package config
