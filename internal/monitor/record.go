// ============================================================================
// Wachturm - Telemetrie-Konsole
// ============================================================================
//
// Package:     monitor
// Description: Log record and node sample value types
// Author:      Mike Stoffels
// Created:     2026-09-14
// License:     MIT
// ============================================================================

package monitor

import (
	"strings"
	"time"
)

// Severity is the normalized severity of an intrusion log record
type Severity string

// Severity values reported by the backend
const (
	SeverityLow     Severity = "LOW"
	SeverityMedium  Severity = "MEDIUM"
	SeverityHigh    Severity = "HIGH"
	SeverityUnknown Severity = "UNKNOWN"
)

// ParseSeverity normalizes a raw severity string.
// Anything other than LOW, MEDIUM or HIGH becomes SeverityUnknown.
func ParseSeverity(raw string) Severity {
	switch Severity(strings.ToUpper(strings.TrimSpace(raw))) {
	case SeverityLow:
		return SeverityLow
	case SeverityMedium:
		return SeverityMedium
	case SeverityHigh:
		return SeverityHigh
	default:
		return SeverityUnknown
	}
}

// LogRecord is a single intrusion log entry as returned by the backend.
// Records are never modified after decoding.
type LogRecord struct {
	Time        string
	Severity    Severity
	Type        string
	Source      string
	Destination string
	Port        string
	Protocol    string
}

// NodeSample is one resource usage reading of the monitored node
type NodeSample struct {
	Timestamp   time.Time
	CPUUsage    float64
	MemoryUsage float64
	DiskUsage   float64
}
