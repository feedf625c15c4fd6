// ============================================================================
// Wachturm - Telemetrie-Konsole
// ============================================================================
//
// Package:     monitor
// Description: Pure projection of records into display rows
// Author:      Mike Stoffels
// Created:     2026-09-14
// License:     MIT
// ============================================================================

package monitor

// Severity classes used by renderers
const (
	ClassOK       = "ok"
	ClassWarn     = "warn"
	ClassCritical = "critical"
	ClassUnknown  = "unknown"
)

// Row is a display-ready log record
type Row struct {
	Index         int
	Time          string
	Severity      string
	SeverityClass string
	Type          string
	Source        string
	Destination   string
	Port          string
	Protocol      string
}

// SeverityClass maps a severity onto its display class
func SeverityClass(s Severity) string {
	switch s {
	case SeverityLow:
		return ClassOK
	case SeverityMedium:
		return ClassWarn
	case SeverityHigh:
		return ClassCritical
	default:
		return ClassUnknown
	}
}

// Project converts records into rows, preserving order
func Project(records []LogRecord) []Row {
	rows := make([]Row, len(records))
	for i, r := range records {
		rows[i] = Row{
			Index:         i,
			Time:          r.Time,
			Severity:      string(r.Severity),
			SeverityClass: SeverityClass(r.Severity),
			Type:          r.Type,
			Source:        r.Source,
			Destination:   r.Destination,
			Port:          r.Port,
			Protocol:      r.Protocol,
		}
	}
	return rows
}
