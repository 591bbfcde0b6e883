// File: logger.go
// Title: Structured Logger
// Description: Leveled structured logger with immutable context cloning.
//              Clones share the output lock so that components writing to
//              the same stream never interleave lines.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-12
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging
// - 2026-10-12 v0.2.0: Shared write lock, diagnostic field extraction,
//                      removed async mode

package log

import (
	"io"
	"os"
	"sync"
)

// Logger writes structured entries to an output
type Logger struct {
	level     Level
	formatter Formatter
	output    io.Writer
	name      string
	requestID string
	fields    Fields

	writeMu *sync.Mutex
}

// Config configures NewWithConfig
type Config struct {
	Level  Level
	Format Format
	Output io.Writer
	Name   string
}

// New creates a JSON logger at the default level writing to stdout
func New() *Logger {
	return NewWithConfig(Config{Level: DefaultLevel(), Format: FormatJSON})
}

// NewWithConfig creates a logger from cfg; a nil output means stdout
func NewWithConfig(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	return &Logger{
		level:     cfg.Level,
		formatter: GetFormatter(cfg.Format),
		output:    out,
		name:      cfg.Name,
		fields:    make(Fields),
		writeMu:   &sync.Mutex{},
	}
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return NewWithConfig(Config{Level: LevelFatal + 1, Output: io.Discard})
}

func (l *Logger) clone() *Logger {
	c := *l
	c.fields = l.fields.Clone()
	if c.fields == nil {
		c.fields = make(Fields)
	}
	return &c
}

// WithLevel returns a copy with a new minimum level
func (l *Logger) WithLevel(level Level) *Logger {
	c := l.clone()
	c.level = level
	return c
}

// WithFormat returns a copy using another formatter
func (l *Logger) WithFormat(format Format) *Logger {
	c := l.clone()
	c.formatter = GetFormatter(format)
	return c
}

// WithOutput returns a copy writing to w with its own lock
func (l *Logger) WithOutput(w io.Writer) *Logger {
	c := l.clone()
	c.output = w
	c.writeMu = &sync.Mutex{}
	return c
}

// WithName returns a copy with a logger name
func (l *Logger) WithName(name string) *Logger {
	c := l.clone()
	c.name = name
	return c
}

// WithField returns a copy carrying key=value on every entry
func (l *Logger) WithField(key string, value interface{}) *Logger {
	c := l.clone()
	c.fields[key] = value
	return c
}

// WithFields returns a copy carrying all of fields on every entry
func (l *Logger) WithFields(fields Fields) *Logger {
	c := l.clone()
	for k, v := range fields {
		c.fields[k] = v
	}
	return c
}

// WithRequestID returns a copy tagged with a request id
func (l *Logger) WithRequestID(id string) *Logger {
	c := l.clone()
	c.requestID = id
	return c
}

// Name returns the logger name
func (l *Logger) Name() string { return l.name }

// RequestID returns the request id attached to the logger
func (l *Logger) RequestID() string { return l.requestID }

// GetLevel returns the minimum level
func (l *Logger) GetLevel() Level { return l.level }

// IsLevelEnabled reports whether entries at level are written
func (l *Logger) IsLevelEnabled(level Level) bool {
	return level.ShouldLog(l.level)
}

func (l *Logger) Trace(msg string, fields ...Fields) { l.log(LevelTrace, msg, nil, fields) }
func (l *Logger) Debug(msg string, fields ...Fields) { l.log(LevelDebug, msg, nil, fields) }
func (l *Logger) Info(msg string, fields ...Fields)  { l.log(LevelInfo, msg, nil, fields) }
func (l *Logger) Warn(msg string, fields ...Fields)  { l.log(LevelWarn, msg, nil, fields) }
func (l *Logger) Error(msg string, fields ...Fields) { l.log(LevelError, msg, nil, fields) }

// Fatal logs at fatal level and exits the process
func (l *Logger) Fatal(msg string, fields ...Fields) {
	l.log(LevelFatal, msg, nil, fields)
	os.Exit(1)
}

// ErrorWithErr logs msg at error level with err attached
func (l *Logger) ErrorWithErr(msg string, err error, fields ...Fields) {
	l.log(LevelError, msg, err, fields)
}

// WarnWithErr logs msg at warn level with err attached
func (l *Logger) WarnWithErr(msg string, err error, fields ...Fields) {
	l.log(LevelWarn, msg, err, fields)
}

// fielder is implemented by errors that describe themselves as log fields
type fielder interface {
	LogFields() map[string]interface{}
}

// LogError logs err at error level, expanding its fields when it provides them
func (l *Logger) LogError(err error) {
	if err == nil {
		return
	}
	var extra Fields
	if f, ok := err.(fielder); ok {
		extra = Fields(f.LogFields())
	}
	l.log(LevelError, err.Error(), err, []Fields{extra})
}

// StartTimer starts a timer that logs the operation duration when stopped
func (l *Logger) StartTimer(operation string) *Timer {
	return NewTimer(l, operation)
}

func (l *Logger) log(level Level, msg string, err error, fields []Fields) {
	if !level.ShouldLog(l.level) {
		return
	}

	e := NewEntry(level, msg)
	e.Logger = l.name
	e.RequestID = l.requestID
	e.Error = err
	for k, v := range l.fields {
		e.Fields[k] = v
	}
	for _, set := range fields {
		for k, v := range set {
			e.Fields[k] = v
		}
	}

	line, ferr := l.formatter.Format(e)
	if ferr != nil {
		return
	}
	l.writeMu.Lock()
	_, _ = l.output.Write(line)
	l.writeMu.Unlock()
}

var (
	defaultMu     sync.RWMutex
	defaultLogger = NewWithConfig(Config{Level: LevelWarn, Format: FormatText, Output: os.Stderr})
)

// GetDefault returns the process-wide logger
func GetDefault() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the process-wide logger
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}
