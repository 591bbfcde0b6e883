// File: level.go
// Title: Log Levels
// Description: Severity levels used to filter log output.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-12
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with standard log levels
// - 2026-10-12 v0.2.0: Trimmed to the levels used by the MyPL tools

package log

import "strings"

// Level represents the importance of a log message
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = map[Level][2]string{
	LevelTrace: {"trace", "TRC"},
	LevelDebug: {"debug", "DBG"},
	LevelInfo:  {"info", "INF"},
	LevelWarn:  {"warn", "WRN"},
	LevelError: {"error", "ERR"},
	LevelFatal: {"fatal", "FTL"},
}

// String returns the lower-case level name
func (l Level) String() string {
	if n, ok := levelNames[l]; ok {
		return n[0]
	}
	return "unknown"
}

// ShortString returns the three-letter level tag
func (l Level) ShortString() string {
	if n, ok := levelNames[l]; ok {
		return n[1]
	}
	return "???"
}

// Color returns the ANSI color sequence for console output
func (l Level) Color() string {
	switch l {
	case LevelTrace:
		return "\033[37m"
	case LevelDebug:
		return "\033[36m"
	case LevelInfo:
		return "\033[32m"
	case LevelWarn:
		return "\033[33m"
	case LevelError:
		return "\033[31m"
	case LevelFatal:
		return "\033[35m"
	default:
		return "\033[0m"
	}
}

// ShouldLog reports whether l passes the minimum level
func (l Level) ShouldLog(min Level) bool {
	return l >= min
}

// ParseLevel parses a level name or its short form
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace", "trc":
		return LevelTrace, nil
	case "debug", "dbg":
		return LevelDebug, nil
	case "info", "inf":
		return LevelInfo, nil
	case "warn", "wrn", "warning":
		return LevelWarn, nil
	case "error", "err":
		return LevelError, nil
	case "fatal", "ftl":
		return LevelFatal, nil
	}
	return LevelInfo, &ParseError{Input: s, Type: "level"}
}

// ParseError reports an unknown level or format name
type ParseError struct {
	Input string
	Type  string
}

func (e *ParseError) Error() string {
	return "invalid " + e.Type + ": " + e.Input
}

// DefaultLevel is the level of loggers created with New
func DefaultLevel() Level {
	return LevelInfo
}
