// ============================================================================
// Wachturm - Telemetrie-Konsole
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating zap loggers
// Author:      Mike Stoffels
// Created:     2026-09-16
// License:     MIT
// ============================================================================

package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Service name
	ServiceName string

	// Log level (debug, info, warn, error)
	Level string

	// Output format
	Format string // "json" or "text" (default: json)

	// Console enables output to stderr. TUI commands disable it.
	Console bool

	// File appends log output to this path if set
	File string

	// Additional outputs (besides stderr and File)
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "info",
		Format:      "json",
		Console:     true,
	}
}

// NewLogger creates a zap logger. Without any output a no-op logger is returned.
// The returned cleanup flushes the logger and closes the log file; it is safe
// to call more than once.
func NewLogger(cfg LoggerConfig) (*zap.Logger, func(), error) {
	var sinks []zapcore.WriteSyncer
	closeFile := func() {}

	if cfg.Console {
		sinks = append(sinks, zapcore.Lock(os.Stderr))
	}
	if cfg.File != "" {
		ws, closeOut, err := zap.Open(cfg.File)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		sinks = append(sinks, ws)
		closeFile = closeOut
	}
	for _, w := range cfg.AdditionalOutputs {
		sinks = append(sinks, zapcore.AddSync(w))
	}

	if len(sinks) == 0 {
		return zap.NewNop(), func() {}, nil
	}

	core := zapcore.NewCore(
		newEncoder(cfg.Format),
		zapcore.NewMultiWriteSyncer(sinks...),
		zap.NewAtomicLevelAt(ParseLevel(cfg.Level).zapLevel()),
	)

	logger := zap.New(core, zap.AddCaller())
	if cfg.ServiceName != "" {
		logger = logger.Named(cfg.ServiceName)
	}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			_ = logger.Sync()
			closeFile()
		})
	}
	return logger, cleanup, nil
}

func newEncoder(format string) zapcore.Encoder {
	if format == "text" {
		config := zap.NewDevelopmentEncoderConfig()
		config.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(t.Format("15:04:05.000"))
		}
		config.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewConsoleEncoder(config)
	}

	config := zap.NewProductionEncoderConfig()
	config.TimeKey = "time"
	config.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewJSONEncoder(config)
}
