// ============================================================================
// Wachturm - Telemetrie-Konsole
// ============================================================================
//
// Package:     monitor
// Description: Real-time log monitoring core (polling, buffering, filtering)
// Author:      Mike Stoffels
// Created:     2026-09-14
// License:     MIT
// ============================================================================

// Package monitor implements the live log monitoring core of Wachturm.
//
// A LogMonitor owns one view instance worth of state:
//
//   - a Poller that ticks on a fixed interval and never overlaps fetches,
//   - a FilterSession that maps the active filter onto a Query,
//   - a bounded Buffer that keeps the newest records in arrival order,
//   - a ScrollCoordinator that couples autoscroll with polling.
//
// Rendering is left to the caller; Project turns a buffer snapshot into
// display rows with a severity class.
//
// Typical use:
//
//	mon := monitor.NewLogMonitor(client, monitor.WithInterval(500*time.Millisecond))
//	mon.Start(ctx)
//	defer mon.Stop()
//
//	for range mon.Updates() {
//	    state := mon.State()
//	    // render state.Rows
//	}
package monitor
