// ============================================================================
// Wachturm - Telemetrie-Konsole
// ============================================================================
//
// Package:     monitor
// Description: NodeMonitor polls node resource usage into a short history
// Author:      Mike Stoffels
// Created:     2026-09-16
// License:     MIT
// ============================================================================

package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultNodeInterval is the polling interval of the node view
const DefaultNodeInterval = 5 * time.Second

// NodeSource returns the latest resource sample of the node
type NodeSource interface {
	FetchNode(ctx context.Context) (NodeSample, error)
}

// NodeState is the render input of the node view
type NodeState struct {
	Samples []NodeSample
	Version uint64
	Err     string
	Polling PollerState
}

// NodeMonitor runs independently of any LogMonitor; each sample is appended
// to a short history instead of replacing it.
type NodeMonitor struct {
	buffer *Buffer[NodeSample]
	poller *Poller[NodeSample]

	mu      sync.RWMutex
	lastErr error

	updates chan struct{}
}

// NewNodeMonitor creates an idle node monitor.
// WithCapacity defaults to DefaultNodeCapacity, WithInterval to DefaultNodeInterval.
func NewNodeMonitor(src NodeSource, opts ...Option) *NodeMonitor {
	o := options{
		capacity: DefaultNodeCapacity,
		interval: DefaultNodeInterval,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	m := &NodeMonitor{
		buffer:  NewBuffer[NodeSample](o.capacity),
		updates: make(chan struct{}, 1),
	}
	m.poller = NewPoller(PollerConfig{
		Name:     "node",
		Interval: o.interval,
		Logger:   o.logger,
	}, src.FetchNode, m.handleSample, m.handleError)
	return m
}

func (m *NodeMonitor) handleSample(s NodeSample) {
	m.buffer.Push(s)
	m.mu.Lock()
	m.lastErr = nil
	m.mu.Unlock()
	m.notify()
}

func (m *NodeMonitor) handleError(err error) {
	m.mu.Lock()
	m.lastErr = err
	m.mu.Unlock()
	m.notify()
}

func (m *NodeMonitor) notify() {
	select {
	case m.updates <- struct{}{}:
	default:
	}
}

// Start begins polling
func (m *NodeMonitor) Start(ctx context.Context) error {
	return m.poller.Start(ctx)
}

// Stop ends polling; idempotent
func (m *NodeMonitor) Stop() {
	m.poller.Stop()
}

// TogglePause flips polling and returns whether it is now enabled
func (m *NodeMonitor) TogglePause() bool {
	enabled := !m.poller.Enabled()
	m.poller.SetEnabled(enabled)
	m.notify()
	return enabled
}

// Updates delivers a signal whenever a sample or error arrived
func (m *NodeMonitor) Updates() <-chan struct{} {
	return m.updates
}

// Interval returns the polling interval
func (m *NodeMonitor) Interval() time.Duration {
	return m.poller.Interval()
}

// State returns the current history
func (m *NodeMonitor) State() NodeState {
	samples, version := m.buffer.Snapshot()

	m.mu.RLock()
	err := m.lastErr
	m.mu.RUnlock()

	msg := ""
	if err != nil {
		msg = "Knotendaten konnten nicht abgerufen werden"
	}
	return NodeState{
		Samples: samples,
		Version: version,
		Err:     msg,
		Polling: m.poller.State(),
	}
}
