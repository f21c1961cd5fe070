// Package config provides configuration helpers for camkit commands.
package config

import "os"

// Defaults shared by the camkit commands.
const (
	DefaultSource   = "0"
	DefaultOutDir   = "captures"
	DefaultPort     = "8585"
	DefaultLogLevel = "info"
)

// Source returns the capture source from CAMKIT_SOURCE.
// A numeric value selects a camera index, anything else is treated
// as a file path or URL. Falls back to device 0 if not set.
func Source() string {
	if src := os.Getenv("CAMKIT_SOURCE"); src != "" {
		return src
	}
	return DefaultSource
}

// OutDir returns the output directory for snapshots and recordings
// from CAMKIT_OUT_DIR, or the default if not set.
func OutDir() string {
	if dir := os.Getenv("CAMKIT_OUT_DIR"); dir != "" {
		return dir
	}
	return DefaultOutDir
}

// Port returns the preview server port from CAMKIT_PORT or the default.
func Port() string {
	if port := os.Getenv("CAMKIT_PORT"); port != "" {
		return port
	}
	return DefaultPort
}

// LogLevel returns the log level from CAMKIT_LOG_LEVEL or the default.
func LogLevel() string {
	if lvl := os.Getenv("CAMKIT_LOG_LEVEL"); lvl != "" {
		return lvl
	}
	return DefaultLogLevel
}
