// File: entry.go
// Title: Log Entry Structure
// Description: A single log record with its context fields.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-12
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation
// - 2026-10-12 v0.2.0: Removed user and correlation ids, added SortedKeys

package log

import (
	"sort"
	"time"
)

// Fields holds structured key-value pairs
type Fields map[string]interface{}

// Entry is one log record
type Entry struct {
	Timestamp time.Time
	Level     Level
	Message   string
	Logger    string
	RequestID string
	Fields    Fields
	Error     error
	Duration  time.Duration
}

// NewEntry creates an entry stamped with the current time
func NewEntry(level Level, message string) *Entry {
	return &Entry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		Fields:    make(Fields),
	}
}

// Merge returns a new Fields holding f overlaid with other
func (f Fields) Merge(other Fields) Fields {
	out := make(Fields, len(f)+len(other))
	for k, v := range f {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Clone copies f
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	return Fields{}.Merge(f)
}

// SortedKeys returns the field names in lexical order
func (f Fields) SortedKeys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
