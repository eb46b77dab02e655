// Package config provides daemon configuration for sentineld.
//
// This package defines the configuration structure and validation:
//
//   - spec.go: DaemonConfig struct definition
//   - default.go: Default configuration values
//   - verify.go: Business validation (addresses, ranges, enums)
//
// Configuration is loaded via internal/infra/confloader and supports
// multiple sources: files, environment variables, and flags.
//
// @req RQ-0502
// @design DS-0502
package config
