// ============================================================================
// Wachturm - Telemetrie-Konsole
// ============================================================================
//
// Package:     nodeview
// Description: Styles for the node resource TUI
// Author:      Mike Stoffels
// Created:     2026-09-19
// License:     MIT
// ============================================================================

package nodeview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color Palette - Same as other TUI components for consistency
var (
	ColorPrimary   = lipgloss.Color("#8B5CF6") // Violet
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorSuccess   = lipgloss.Color("#10B981") // Emerald
	ColorWarning   = lipgloss.Color("#F59E0B") // Amber
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorDimmed    = lipgloss.Color("#374151") // Dark Gray
	ColorText      = lipgloss.Color("#F8FAFC") // Slate 50
	ColorTextMuted = lipgloss.Color("#94A3B8") // Slate 400
)

var (
	LogoStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDimmed).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true).
			Width(10)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorError).
			Bold(true).
			Padding(0, 1)

	LiveStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	PausedStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)
)

const sparkChars = "▁▂▃▄▅▆▇█"

// usageColor picks green, amber or red for a percentage
func usageColor(pct float64) lipgloss.Color {
	switch {
	case pct >= 90:
		return ColorError
	case pct >= 70:
		return ColorWarning
	default:
		return ColorSuccess
	}
}

// RenderBar renders a horizontal usage bar of the given width
func RenderBar(pct float64, width int) string {
	if width < 1 {
		width = 1
	}
	pct = clamp(pct)
	filled := int(pct / 100 * float64(width))
	bar := lipgloss.NewStyle().Foreground(usageColor(pct)).Render(strings.Repeat("█", filled))
	rest := lipgloss.NewStyle().Foreground(ColorDimmed).Render(strings.Repeat("░", width-filled))
	return bar + rest
}

// Sparkline renders one character per value, scaled to 0-100
func Sparkline(values []float64) string {
	chars := []rune(sparkChars)
	var b strings.Builder
	for _, v := range values {
		idx := int(clamp(v) / 100 * float64(len(chars)-1))
		b.WriteRune(chars[idx])
	}
	return b.String()
}

func clamp(pct float64) float64 {
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	default:
		return pct
	}
}
