// ============================================================================
// MyPL - Front End Toolchain
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating loggers from config strings
// Author:      msto63
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"

	mypllog "github.com/msto63/mypl/pkg/core/log"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Service name
	ServiceName string

	// Log level (trace, debug, info, warn, error, fatal)
	Level string

	// Output format (json, text, console, logfmt; default: json)
	Format string

	// Primary output (default: stderr)
	Output io.Writer

	// Additional outputs written alongside Output
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "info",
		Format:      "json",
	}
}

// NewLogger creates a logger from cfg. Unknown level or format names fall
// back to info and JSON; use Validate first when they must be rejected.
func NewLogger(cfg LoggerConfig) *mypllog.Logger {
	level, err := mypllog.ParseLevel(cfg.Level)
	if err != nil {
		level = mypllog.DefaultLevel()
	}
	format, err := mypllog.ParseFormat(cfg.Format)
	if err != nil {
		format = mypllog.FormatJSON
	}

	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}
	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	return mypllog.NewWithConfig(mypllog.Config{
		Level:  level,
		Format: format,
		Output: output,
		Name:   cfg.ServiceName,
	})
}

// NewSimpleLogger creates a logger with the default configuration
func NewSimpleLogger(serviceName string) *mypllog.Logger {
	return NewLogger(DefaultLoggerConfig(serviceName))
}

// Validate reports whether level and format are known names
func Validate(level, format string) error {
	if _, err := mypllog.ParseLevel(level); err != nil {
		return err
	}
	if _, err := mypllog.ParseFormat(format); err != nil {
		return err
	}
	return nil
}
