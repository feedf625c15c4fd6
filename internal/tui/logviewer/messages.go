// ============================================================================
// Wachturm - Telemetrie-Konsole
// ============================================================================
//
// Package:     logviewer
// Description: Message types for async operations in LogViewer
// Author:      Mike Stoffels
// Created:     2026-09-18
// License:     MIT
// ============================================================================

package logviewer

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Message types for tea.Cmd async operations

// stateChangedMsg is sent when the monitor signals new records or a new error
type stateChangedMsg struct{}

// waitForUpdate blocks until the monitor signals a change or done is closed
func waitForUpdate(updates <-chan struct{}, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-updates:
			return stateChangedMsg{}
		case <-done:
			return nil
		}
	}
}
