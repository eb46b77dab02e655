// Package confloader loads daemon configuration from files,
// environment variables and flag overrides using koanf.
//
// Priority (highest to lowest):
//
//  1. Command-line flags (fed through LoadMap)
//  2. Environment variables (SENTINEL_ prefix)
//  3. Configuration file (YAML)
//  4. Default values
//
// The Watcher half of the package reloads the configuration file on
// change, which lets the daemon adjust log level and grace timeout
// without a restart.
//
// @design DS-0502
package confloader
