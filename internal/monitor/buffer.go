// ============================================================================
// Wachturm - Telemetrie-Konsole
// ============================================================================
//
// Package:     monitor
// Description: Bounded snapshot buffer with a change version
// Author:      Mike Stoffels
// Created:     2026-09-14
// License:     MIT
// ============================================================================

package monitor

import (
	"fmt"
	"sync"
)

// DefaultLogCapacity is the number of log records kept per view
const DefaultLogCapacity = 100

// DefaultNodeCapacity is the number of node samples kept per view
const DefaultNodeCapacity = 10

// Buffer keeps at most cap items in arrival order.
// Every mutation increments the version so observers can detect new data
// without comparing contents.
type Buffer[T any] struct {
	mu      sync.RWMutex
	items   []T
	cap     int
	version uint64
}

// NewBuffer creates an empty buffer. It panics if capacity is less than 1.
func NewBuffer[T any](capacity int) *Buffer[T] {
	if capacity < 1 {
		panic(fmt.Sprintf("monitor: buffer capacity must be positive, got %d", capacity))
	}
	return &Buffer[T]{
		items: make([]T, 0, capacity),
		cap:   capacity,
	}
}

// Replace substitutes the whole content with the newest cap items of items
func (b *Buffer[T]) Replace(items []T) {
	start := 0
	if len(items) > b.cap {
		start = len(items) - b.cap
	}
	next := make([]T, len(items)-start, b.cap)
	copy(next, items[start:])

	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = next
	b.version++
}

// Push appends one item, dropping the oldest when the buffer is full
func (b *Buffer[T]) Push(item T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.items) >= b.cap {
		next := make([]T, 0, b.cap)
		next = append(next, b.items[len(b.items)-b.cap+1:]...)
		b.items = next
	}
	b.items = append(b.items, item)
	b.version++
}

// Clear empties the buffer
func (b *Buffer[T]) Clear() {
	b.Replace(nil)
}

// Snapshot returns a copy of the items and the current version
func (b *Buffer[T]) Snapshot() ([]T, uint64) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]T, len(b.items))
	copy(out, b.items)
	return out, b.version
}

// Version returns the current version
func (b *Buffer[T]) Version() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

// Len returns the number of items held
func (b *Buffer[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.items)
}

// Cap returns the fixed capacity
func (b *Buffer[T]) Cap() int {
	return b.cap
}
