// ============================================================================
// Wachturm - Telemetrie-Konsole
// ============================================================================
//
// Package:     logviewer
// Description: Styles for the LogViewer TUI
// Author:      Mike Stoffels
// Created:     2026-09-18
// License:     MIT
// ============================================================================

package logviewer

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/msto63/wachturm/internal/monitor"
)

// Color Palette - Same as other TUI components for consistency
var (
	// Primary colors
	ColorPrimary   = lipgloss.Color("#8B5CF6") // Violet
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorSuccess   = lipgloss.Color("#10B981") // Emerald
	ColorWarning   = lipgloss.Color("#F59E0B") // Amber
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorDimmed    = lipgloss.Color("#374151") // Dark Gray

	// Background colors
	ColorBgPanel = lipgloss.Color("#1E293B") // Slate 800

	// Text colors
	ColorText      = lipgloss.Color("#F8FAFC") // Slate 50
	ColorTextMuted = lipgloss.Color("#94A3B8") // Slate 400
	ColorTextDim   = lipgloss.Color("#64748B") // Slate 500
)

// Logo/Header styles
var (
	LogoStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	SubHeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)
)

// Log row styles
var (
	LogTimestampStyle = lipgloss.NewStyle().
				Foreground(ColorTextDim)

	LogTypeStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	LogRouteStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	// Severity-class styles
	SeverityOKStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	SeverityWarnStyle = lipgloss.NewStyle().
				Foreground(ColorWarning).
				Bold(true)

	SeverityCriticalStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Background(lipgloss.Color("#450A0A")).
				Bold(true)

	SeverityUnknownStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted).
				Bold(true)
)

// Panel/Box styles
var (
	LogPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDimmed).
			Padding(0, 1)

	FilterBarStyle = lipgloss.NewStyle().
			Background(ColorBgPanel).
			Foreground(ColorText).
			Padding(0, 1)

	ErrorBannerStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Background(ColorError).
				Bold(true).
				Padding(0, 1)

	InputErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)
)

// Status bar styles
var (
	StatusBarStyle = lipgloss.NewStyle().
			Background(ColorBgPanel).
			Foreground(ColorText).
			Padding(0, 1)

	StatusOnlineStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess).
				Bold(true)

	StatusPausedStyle = lipgloss.NewStyle().
				Foreground(ColorWarning).
				Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// Filter badge styles
var (
	FilterActiveStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess).
				Bold(true)

	FilterInactiveStyle = lipgloss.NewStyle().
				Foreground(ColorTextDim)
)

// Title panel style
var (
	TitlePanelStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 2)
)

// Icons
const (
	IconActive = "● "
	IconPaused = "‖ "
	IconFilter = "⚑ "
)

// Logo
const Logo = "Wachturm Intruder"

// RenderSeverityBadge renders a severity badge styled by its display class
func RenderSeverityBadge(row monitor.Row) string {
	label := "[" + padRight(row.Severity, 7) + "]"
	switch row.SeverityClass {
	case monitor.ClassOK:
		return SeverityOKStyle.Render(label)
	case monitor.ClassWarn:
		return SeverityWarnStyle.Render(label)
	case monitor.ClassCritical:
		return SeverityCriticalStyle.Render(label)
	default:
		return SeverityUnknownStyle.Render(label)
	}
}

// RenderFilterStatus renders a filter status indicator
func RenderFilterStatus(name string, active bool) string {
	if active {
		return FilterActiveStyle.Render(name)
	}
	return FilterInactiveStyle.Render(name)
}

func padRight(s string, n int) string {
	for len(s) < n {
		s += " "
	}
	return s
}
