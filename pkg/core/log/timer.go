// File: timer.go
// Title: Performance Timer
// Description: Measures an operation and logs its duration when stopped.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-12
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with performance timing
// - 2026-10-12 v0.2.0: Reduced to Stop, StopWithError and Checkpoint

package log

import "time"

// Timer measures a single operation
type Timer struct {
	logger    *Logger
	operation string
	start     time.Time
	fields    Fields
	level     Level
	stopped   bool
}

// NewTimer starts a timer for operation
func NewTimer(logger *Logger, operation string) *Timer {
	return &Timer{
		logger:    logger,
		operation: operation,
		start:     time.Now(),
		fields:    make(Fields),
		level:     LevelDebug,
	}
}

// WithLevel sets the level of the completion message
func (t *Timer) WithLevel(level Level) *Timer {
	t.level = level
	return t
}

// WithField adds a field to the completion message
func (t *Timer) WithField(key string, value interface{}) *Timer {
	t.fields[key] = value
	return t
}

// Elapsed returns the time since start
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// IsRunning reports whether Stop has not been called yet
func (t *Timer) IsRunning() bool {
	return !t.stopped
}

func (t *Timer) finish() (time.Duration, Fields) {
	elapsed := t.Elapsed()
	t.stopped = true
	f := t.fields.Merge(Fields{
		"operation":   t.operation,
		"duration_ms": durationMillis(elapsed),
	})
	return elapsed, f
}

// Stop logs "<operation> completed" and returns the elapsed time. Only the
// first call logs.
func (t *Timer) Stop() time.Duration {
	if t.stopped {
		return 0
	}
	elapsed, f := t.finish()
	if t.logger != nil {
		t.logger.log(t.level, t.operation+" completed", nil, []Fields{f})
	}
	return elapsed
}

// StopWithError logs "<operation> failed" at warn level with err attached
func (t *Timer) StopWithError(err error) time.Duration {
	if t.stopped {
		return 0
	}
	elapsed, f := t.finish()
	f["success"] = false
	if t.logger != nil {
		t.logger.WarnWithErr(t.operation+" failed", err, f)
	}
	return elapsed
}

// Checkpoint logs an intermediate timing at debug level
func (t *Timer) Checkpoint(name string) {
	if t.stopped || t.logger == nil {
		return
	}
	t.logger.Debug(t.operation+" checkpoint: "+name, t.fields.Merge(Fields{
		"operation":  t.operation,
		"checkpoint": name,
		"elapsed_ms": durationMillis(t.Elapsed()),
	}))
}
