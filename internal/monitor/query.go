// ============================================================================
// Wachturm - Telemetrie-Konsole
// ============================================================================
//
// Package:     monitor
// Description: Query union and the filter session that produces it
// Author:      Mike Stoffels
// Created:     2026-09-14
// License:     MIT
// ============================================================================

package monitor

import (
	"strings"
	"sync"
)

// FilterMode selects which record field a filter applies to
type FilterMode int

const (
	FilterNone FilterMode = iota
	FilterByPort
	FilterBySourceIP
	FilterByType
)

// String returns the display name of the mode
func (m FilterMode) String() string {
	switch m {
	case FilterNone:
		return "none"
	case FilterByPort:
		return "port"
	case FilterBySourceIP:
		return "source"
	case FilterByType:
		return "type"
	default:
		return "unknown"
	}
}

// ParseFilterMode maps a flag or key name onto a FilterMode
func ParseFilterMode(s string) (FilterMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "all":
		return FilterNone, true
	case "port":
		return FilterByPort, true
	case "source", "source-ip", "ip":
		return FilterBySourceIP, true
	case "type", "category":
		return FilterByType, true
	default:
		return FilterNone, false
	}
}

// Query describes what to fetch from a LogSource.
// The zero value is the unfiltered query.
type Query struct {
	Mode  FilterMode
	Value string
}

// All returns the unfiltered query
func All() Query { return Query{} }

// ByPort returns a query for records whose port equals v
func ByPort(v string) Query { return Query{Mode: FilterByPort, Value: v} }

// BySourceIP returns a query for records whose source equals v
func BySourceIP(v string) Query { return Query{Mode: FilterBySourceIP, Value: v} }

// ByType returns a query for records whose type (category) equals v
func ByType(v string) Query { return Query{Mode: FilterByType, Value: v} }

// IsAll reports whether the query is unfiltered
func (q Query) IsAll() bool {
	return q.Mode == FilterNone
}

// Validate checks that a filtered query carries a value
func (q Query) Validate() error {
	if q.Mode != FilterNone && strings.TrimSpace(q.Value) == "" {
		return &ValidationError{Field: q.Mode.String(), Value: q.Value, Reason: "value must not be empty"}
	}
	return nil
}

func (q Query) String() string {
	if q.IsAll() {
		return "all"
	}
	return q.Mode.String() + "=" + q.Value
}

// FilterSession holds the filter mode and value and the query they produce.
// It is only fed on an explicit submit; the editor keeps keystrokes to itself.
type FilterSession struct {
	mu         sync.RWMutex
	mode       FilterMode
	value      string
	active     Query
	generation uint64
}

// NewFilterSession creates a session with the unfiltered query active
func NewFilterSession() *FilterSession {
	return &FilterSession{}
}

// SetMode switches the filter mode. Switching clears the value and the
// active query falls back to All until a value is supplied. Selecting the
// current mode again changes nothing.
func (s *FilterSession) SetMode(mode FilterMode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if mode == s.mode {
		return
	}
	s.mode = mode
	s.value = ""
	s.activate(All())
}

// SetValue sets the filter value. Under a filtered mode a non-blank value
// becomes the active query; a blank one leaves All in effect.
func (s *FilterSession) SetValue(v string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.value = v
	s.activate(s.pendingLocked())
}

// Mode returns the selected filter mode
func (s *FilterSession) Mode() FilterMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// Value returns the pending filter value
func (s *FilterSession) Value() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Submit validates the mode and value and activates them.
// A filtered mode with an empty value is rejected and nothing changes.
func (s *FilterSession) Submit() (Query, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := normalize(Query{Mode: s.mode, Value: s.value})
	if err := q.Validate(); err != nil {
		return s.active, err
	}
	s.activate(q)
	return q, nil
}

func (s *FilterSession) pendingLocked() Query {
	q := normalize(Query{Mode: s.mode, Value: s.value})
	if q.Validate() != nil {
		return All()
	}
	return q
}

// normalize trims the value and folds every unfiltered query into All
func normalize(q Query) Query {
	if q.Mode == FilterNone {
		return All()
	}
	q.Value = strings.TrimSpace(q.Value)
	return q
}

// CurrentQuery returns the query in effect
func (s *FilterSession) CurrentQuery() Query {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Generation increases every time the active query changes
func (s *FilterSession) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// snapshot returns the active query together with its generation
func (s *FilterSession) snapshot() (Query, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active, s.generation
}

func (s *FilterSession) activate(q Query) {
	if q == s.active {
		return
	}
	s.active = q
	s.generation++
}
