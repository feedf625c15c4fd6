// ============================================================================
// Wachturm - Telemetrie-Konsole
// ============================================================================
//
// Package:     version
// Description: Central version management for all components
// Author:      Mike Stoffels
// Created:     2026-09-16
// License:     MIT
// ============================================================================

package version

// Version constants for all Wachturm components
const (
	// Application version
	Application = "0.3.0"

	// Component versions
	LogViewer  = "0.3.0"
	NodeViewer = "0.2.0"
	MockAPI    = "0.2.0"
)

// Build metadata, set via -ldflags
var (
	GitCommit = "development"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "logs":
		return LogViewer
	case "node":
		return NodeViewer
	case "mock-api":
		return MockAPI
	default:
		return Application
	}
}
