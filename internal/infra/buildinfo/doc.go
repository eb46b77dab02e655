// Package buildinfo exposes build-time information for sentineld,
// injected via ldflags:
//
//   - Version: Semantic version (e.g., "v1.0.0")
//   - Commit: Git commit hash
//   - BuildTime: Build timestamp
//
// Usage:
//
//	go build -ldflags "-X buildinfo.Version=v1.0.0 -X buildinfo.Commit=abc123"
//
// @design DS-0501
package buildinfo
