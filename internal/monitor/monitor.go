// ============================================================================
// Wachturm - Telemetrie-Konsole
// ============================================================================
//
// Package:     monitor
// Description: LogMonitor wires poller, filter, buffer and scroll state
// Author:      Mike Stoffels
// Created:     2026-09-15
// License:     MIT
// ============================================================================

package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultLogInterval is the polling interval of the log view
const DefaultLogInterval = 500 * time.Millisecond

// LogSource returns the current snapshot of records matching a query
type LogSource interface {
	FetchLogs(ctx context.Context, q Query) ([]LogRecord, error)
}

// ViewState is everything a renderer needs for one frame
type ViewState struct {
	Rows       []Row
	Version    uint64
	AutoScroll bool
	Err        string
	Query      Query
	Polling    PollerState
}

// Option configures a LogMonitor
type Option func(*options)

type options struct {
	capacity int
	interval time.Duration
	logger   *zap.Logger
}

// WithCapacity sets the number of records kept
func WithCapacity(n int) Option {
	return func(o *options) { o.capacity = n }
}

// WithInterval sets the polling interval
func WithInterval(d time.Duration) Option {
	return func(o *options) { o.interval = d }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// logBatch is a fetch result tagged with the filter generation it was made for
type logBatch struct {
	records    []LogRecord
	generation uint64
}

// LogMonitor is one live log view: it polls a LogSource with the active
// filter and keeps the newest records in a bounded buffer.
type LogMonitor struct {
	source LogSource
	buffer *Buffer[LogRecord]
	filter *FilterSession
	poller *Poller[logBatch]
	scroll *ScrollCoordinator
	logger *zap.Logger

	mu      sync.RWMutex
	lastErr error

	updates chan struct{}
}

// NewLogMonitor creates an idle monitor for src
func NewLogMonitor(src LogSource, opts ...Option) *LogMonitor {
	o := options{
		capacity: DefaultLogCapacity,
		interval: DefaultLogInterval,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	m := &LogMonitor{
		source:  src,
		buffer:  NewBuffer[LogRecord](o.capacity),
		filter:  NewFilterSession(),
		logger:  o.logger,
		updates: make(chan struct{}, 1),
	}
	m.poller = NewPoller(PollerConfig{
		Name:     "logs",
		Interval: o.interval,
		Logger:   o.logger,
	}, m.fetch, m.handleBatch, m.handleError)
	m.scroll = NewScrollCoordinator(m.poller)
	return m
}

func (m *LogMonitor) fetch(ctx context.Context) (logBatch, error) {
	q, gen := m.filter.snapshot()
	records, err := m.source.FetchLogs(ctx, q)
	if err != nil {
		return logBatch{}, err
	}
	return logBatch{records: records, generation: gen}, nil
}

func (m *LogMonitor) handleBatch(b logBatch) {
	m.mu.Lock()
	if b.generation != m.filter.Generation() {
		m.mu.Unlock()
		m.logger.Debug("dropping result for outdated filter",
			zap.Uint64("generation", b.generation))
		return
	}
	m.buffer.Replace(b.records)
	m.lastErr = nil
	m.mu.Unlock()

	m.notify()
}

func (m *LogMonitor) handleError(err error) {
	m.mu.Lock()
	m.lastErr = err
	m.mu.Unlock()
	m.notify()
}

// notify signals a change without blocking; pending signals coalesce
func (m *LogMonitor) notify() {
	select {
	case m.updates <- struct{}{}:
	default:
	}
}

// Start begins polling
func (m *LogMonitor) Start(ctx context.Context) error {
	return m.poller.Start(ctx)
}

// Stop ends polling and waits for the in-flight fetch. It is idempotent.
func (m *LogMonitor) Stop() {
	m.poller.Stop()
}

// Updates delivers a signal whenever the buffer or error state changed
func (m *LogMonitor) Updates() <-chan struct{} {
	return m.updates
}

// SubmitFilter activates a filter. An empty value for a filtered mode is
// rejected with a ValidationError and nothing changes. Submitting the query
// already in effect is a no-op. When the active query changes the buffer is
// cleared and results still in flight for the old query are dropped.
func (m *LogMonitor) SubmitFilter(mode FilterMode, value string) error {
	requested := normalize(Query{Mode: mode, Value: value})
	if err := requested.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	if requested == m.filter.CurrentQuery() {
		m.mu.Unlock()
		return nil
	}
	m.filter.SetMode(mode)
	m.filter.SetValue(value)
	q, err := m.filter.Submit()
	if err != nil {
		m.mu.Unlock()
		return err
	}
	m.buffer.Clear()
	m.lastErr = nil
	m.mu.Unlock()

	m.logger.Info("filter changed", zap.String("query", q.String()))
	m.notify()
	m.poller.Trigger()
	return nil
}

// ToggleAutoScroll flips autoscroll and polling together and returns the
// new autoscroll value
func (m *LogMonitor) ToggleAutoScroll() bool {
	on := m.scroll.Toggle()
	m.notify()
	return on
}

// SetAutoScroll switches autoscroll and polling to the given value
func (m *LogMonitor) SetAutoScroll(on bool) {
	m.scroll.Set(on)
	m.notify()
}

// ShouldScroll reports whether the view must jump to the newest record for
// the given buffer version
func (m *LogMonitor) ShouldScroll(version uint64) bool {
	return m.scroll.OnBufferVersionChanged(version)
}

// Query returns the active query
func (m *LogMonitor) Query() Query {
	return m.filter.CurrentQuery()
}

// Capacity returns the buffer capacity
func (m *LogMonitor) Capacity() int {
	return m.buffer.Cap()
}

// Interval returns the polling interval
func (m *LogMonitor) Interval() time.Duration {
	return m.poller.Interval()
}

// State returns the current view state
func (m *LogMonitor) State() ViewState {
	records, version := m.buffer.Snapshot()

	m.mu.RLock()
	err := m.lastErr
	m.mu.RUnlock()

	return ViewState{
		Rows:       Project(records),
		Version:    version,
		AutoScroll: m.scroll.Enabled(),
		Err:        DisplayMessage(err),
		Query:      m.filter.CurrentQuery(),
		Polling:    m.poller.State(),
	}
}
