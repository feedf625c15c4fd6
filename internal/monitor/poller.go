// ============================================================================
// Wachturm - Telemetrie-Konsole
// ============================================================================
//
// Package:     monitor
// Description: Repeating fetch cycle with overlap prevention
// Author:      Mike Stoffels
// Created:     2026-09-14
// License:     MIT
// ============================================================================

package monitor

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PollerState is the lifecycle state of a Poller
type PollerState int

const (
	StateIdle PollerState = iota
	StateActive
	StatePaused
	StateStopped
)

// String returns the state name
func (s PollerState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StatePaused:
		return "paused"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// FetchFunc performs one fetch cycle
type FetchFunc[T any] func(ctx context.Context) (T, error)

// PollerConfig holds Poller configuration
type PollerConfig struct {
	// Name identifies the poller in log output
	Name string

	// Interval between ticks
	Interval time.Duration

	// Logger, defaults to a no-op logger
	Logger *zap.Logger
}

// Poller runs a FetchFunc on a fixed interval.
// At most one fetch is outstanding at any time: a tick that arrives while a
// fetch is in flight is skipped, never queued.
type Poller[T any] struct {
	id       string
	name     string
	interval time.Duration
	fetch    FetchFunc[T]
	onResult func(T)
	onError  func(error)
	logger   *zap.Logger

	mu       sync.Mutex
	started  bool
	enabled  bool
	inFlight bool
	lastErr  error
	ctx      context.Context
	cancel   context.CancelFunc

	// deliverMu serializes result delivery against Stop
	deliverMu sync.Mutex
	stopped   atomic.Bool
	wg        sync.WaitGroup

	fetches atomic.Int64
	skipped atomic.Int64
}

// NewPoller creates an idle, enabled poller.
// onResult and onError are called from the fetch goroutine and may be nil.
func NewPoller[T any](cfg PollerConfig, fetch FetchFunc[T], onResult func(T), onError func(error)) *Poller[T] {
	if cfg.Interval <= 0 {
		cfg.Interval = 500 * time.Millisecond
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.NewString()

	return &Poller[T]{
		id:       id,
		name:     cfg.Name,
		interval: cfg.Interval,
		fetch:    fetch,
		onResult: onResult,
		onError:  onError,
		enabled:  true,
		logger:   logger.With(zap.String("poller", cfg.Name), zap.String("poller_id", id)),
	}
}

// ID returns the unique poller ID
func (p *Poller[T]) ID() string { return p.id }

// Interval returns the tick interval
func (p *Poller[T]) Interval() time.Duration { return p.interval }

// Start performs one fetch cycle immediately and then arms the ticker.
// Starting a running poller is a no-op; a stopped poller cannot be restarted.
func (p *Poller[T]) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.stopped.Load() {
		p.mu.Unlock()
		return ErrPollerStopped
	}
	if p.started {
		p.mu.Unlock()
		return nil
	}
	p.started = true
	ctx, cancel := context.WithCancel(ctx)
	p.ctx = ctx
	p.cancel = cancel
	p.wg.Add(1)
	p.mu.Unlock()

	p.logger.Debug("poller started", zap.Duration("interval", p.interval))

	p.tick(ctx)
	go p.loop(ctx)
	return nil
}

func (p *Poller[T]) loop(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

// Trigger runs a fetch cycle now instead of waiting for the next tick.
// It follows the same rules as a tick and reports whether a fetch was issued.
func (p *Poller[T]) Trigger() bool {
	p.mu.Lock()
	ctx := p.ctx
	p.mu.Unlock()
	if ctx == nil {
		return false
	}
	return p.tick(ctx)
}

// tick starts a fetch unless the poller is disabled, stopped or busy.
// It reports whether a fetch was issued.
func (p *Poller[T]) tick(ctx context.Context) bool {
	p.mu.Lock()
	if p.stopped.Load() || !p.enabled {
		p.mu.Unlock()
		return false
	}
	if p.inFlight {
		p.mu.Unlock()
		p.skipped.Add(1)
		p.logger.Debug("tick skipped, fetch in flight")
		return false
	}
	p.inFlight = true
	p.wg.Add(1)
	p.mu.Unlock()

	p.fetches.Add(1)
	go p.run(ctx)
	return true
}

func (p *Poller[T]) run(ctx context.Context) {
	defer p.wg.Done()

	result, err := p.fetch(ctx)

	p.mu.Lock()
	p.inFlight = false
	p.lastErr = err
	p.mu.Unlock()

	p.deliverMu.Lock()
	defer p.deliverMu.Unlock()

	if p.stopped.Load() || ctx.Err() != nil {
		return
	}
	if err != nil {
		p.logger.Warn("fetch failed", zap.Error(err))
		if p.onError != nil {
			p.onError(err)
		}
		return
	}
	if p.onResult != nil {
		p.onResult(result)
	}
}

// Pause disables fetching; ticks keep arriving but do nothing
func (p *Poller[T]) Pause() { p.SetEnabled(false) }

// Resume enables fetching again
func (p *Poller[T]) Resume() { p.SetEnabled(true) }

// SetEnabled sets whether ticks perform fetches
func (p *Poller[T]) SetEnabled(enabled bool) {
	p.mu.Lock()
	changed := p.enabled != enabled
	p.enabled = enabled
	p.mu.Unlock()

	if changed {
		p.logger.Debug("poller enabled changed", zap.Bool("enabled", enabled))
	}
}

// Enabled reports whether ticks perform fetches
func (p *Poller[T]) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// InFlight reports whether a fetch is outstanding
func (p *Poller[T]) InFlight() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inFlight
}

// Err returns the error of the last completed fetch, nil after a success
func (p *Poller[T]) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// State returns the lifecycle state
func (p *Poller[T]) State() PollerState {
	if p.stopped.Load() {
		return StateStopped
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case !p.started:
		return StateIdle
	case !p.enabled:
		return StatePaused
	default:
		return StateActive
	}
}

// Stats returns the number of issued fetches and skipped ticks
func (p *Poller[T]) Stats() (fetches, skipped int64) {
	return p.fetches.Load(), p.skipped.Load()
}

// Stop cancels the ticker and any in-flight fetch and waits for both to
// finish. No result is delivered after Stop returns. Stop is idempotent and
// must not be called from the result or error handler.
func (p *Poller[T]) Stop() {
	p.mu.Lock()
	if p.stopped.Swap(true) {
		p.mu.Unlock()
		return
	}
	cancel := p.cancel
	p.mu.Unlock()

	// A delivery already in progress finishes first; later ones see stopped.
	p.deliverMu.Lock()
	if cancel != nil {
		cancel()
	}
	p.deliverMu.Unlock()

	p.wg.Wait()
	p.logger.Debug("poller stopped")
}
