// Package http serves the registry's read/write contract to the suite's
// operator panels.
//
// The Tk settings dialog and the dashboard both manage paths through this
// API instead of touching the filesystem, so overrides, healing and
// precedence apply no matter which surface the operator uses.
//
// Routes:
//   - GET  /health            liveness
//   - GET  /paths             full key to path map
//   - GET  /paths/:key        resolve one key (with healing)
//   - POST /paths/:key        register a path
//   - POST /paths/:key/ensure ensure the directory exists
//   - GET  /diagnose          diagnostic report
//   - POST /repair            auto-repair (optionally a supplied issue list)
//   - GET  /report            rendered report (text, html or json)
//   - POST /export, /import   snapshot hand-off
//   - GET  /metrics           Prometheus metrics
package http
