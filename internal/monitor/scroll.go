// ============================================================================
// Wachturm - Telemetrie-Konsole
// ============================================================================
//
// Package:     monitor
// Description: Autoscroll state coupled to polling
// Author:      Mike Stoffels
// Created:     2026-09-14
// License:     MIT
// ============================================================================

package monitor

import "sync"

// Switchable is anything whose activity can be turned on and off.
// *Poller satisfies it.
type Switchable interface {
	SetEnabled(enabled bool)
}

// ScrollCoordinator decides when the view follows the newest record.
// Following and polling are one state: freezing the view pauses ingestion,
// so a snapshot under review never shifts.
type ScrollCoordinator struct {
	mu          sync.Mutex
	following   bool
	lastVersion uint64
	target      Switchable
}

// NewScrollCoordinator creates a coordinator with autoscroll on and
// target enabled. target may be nil.
func NewScrollCoordinator(target Switchable) *ScrollCoordinator {
	c := &ScrollCoordinator{following: true, target: target}
	if target != nil {
		target.SetEnabled(true)
	}
	return c
}

// OnBufferVersionChanged records the observed buffer version and reports
// whether the view should scroll to its end.
func (c *ScrollCoordinator) OnBufferVersionChanged(version uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	changed := version != c.lastVersion
	c.lastVersion = version
	return changed && c.following
}

// Toggle flips autoscroll and sets the target's enabled flag to match.
// It returns the new autoscroll value.
func (c *ScrollCoordinator) Toggle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.setLocked(!c.following)
	return c.following
}

// Set forces autoscroll (and the target) to the given value
func (c *ScrollCoordinator) Set(following bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(following)
}

// Enabled reports whether autoscroll is on
func (c *ScrollCoordinator) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.following
}

func (c *ScrollCoordinator) setLocked(following bool) {
	c.following = following
	if c.target != nil {
		c.target.SetEnabled(following)
	}
}
