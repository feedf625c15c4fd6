// ============================================================================
// Wachturm - Telemetrie-Konsole
// ============================================================================
//
// Package:     monitor
// Description: Error taxonomy for fetching and filtering
// Author:      Mike Stoffels
// Created:     2026-09-14
// License:     MIT
// ============================================================================

package monitor

import (
	"errors"
	"fmt"
)

// FetchFailedMessage is the single user-visible text for any failed fetch
const FetchFailedMessage = "Logs konnten nicht abgerufen werden"

// Sentinel errors for errors.Is checks
var (
	ErrTransport     = errors.New("transport error")
	ErrShape         = errors.New("unexpected response shape")
	ErrValidation    = errors.New("validation error")
	ErrPollerStopped = errors.New("poller stopped")
)

// ErrorKind classifies a FetchError
type ErrorKind int

const (
	KindTransport ErrorKind = iota
	KindShape
)

// String returns the code of the kind
func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "TRANSPORT"
	case KindShape:
		return "SHAPE"
	default:
		return "UNKNOWN"
	}
}

// FetchError is returned by a source when a fetch fails
type FetchError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

// NewTransportError wraps a network, DNS, timeout or status failure
func NewTransportError(op string, err error) *FetchError {
	return &FetchError{Kind: KindTransport, Op: op, Err: err}
}

// NewShapeError wraps a response body that could not be used
func NewShapeError(op string, err error) *FetchError {
	return &FetchError{Kind: KindShape, Op: op, Err: err}
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error kind
func (e *FetchError) Is(target error) bool {
	switch target {
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrShape:
		return e.Kind == KindShape
	}
	return false
}

// ValidationError reports an input rejected before any request is issued
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Is matches ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// DisplayMessage converts an error into the text shown to the operator.
// Fetch failures collapse into FetchFailedMessage.
func DisplayMessage(err error) string {
	if err == nil {
		return ""
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return "Filterwert darf nicht leer sein"
	}
	return FetchFailedMessage
}
