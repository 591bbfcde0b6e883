// File: format.go
// Title: Log Formats
// Description: JSON, text, console and logfmt formatters. Field order is
//              sorted so that output is stable across runs.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-12
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with multiple output formats
// - 2026-10-12 v0.2.0: Deterministic field order

package log

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Format selects a formatter
type Format int

const (
	FormatJSON Format = iota
	FormatText
	FormatConsole
	FormatLogfmt
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatText:
		return "text"
	case FormatConsole:
		return "console"
	case FormatLogfmt:
		return "logfmt"
	default:
		return "unknown"
	}
}

// ParseFormat parses a format name
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "text":
		return FormatText, nil
	case "console":
		return FormatConsole, nil
	case "logfmt":
		return FormatLogfmt, nil
	}
	return FormatJSON, &ParseError{Input: s, Type: "format"}
}

// Formatter renders an entry as one line of output
type Formatter interface {
	Format(entry *Entry) ([]byte, error)
}

// GetFormatter returns the formatter for format; unknown values yield JSON
func GetFormatter(format Format) Formatter {
	switch format {
	case FormatText:
		return &TextFormatter{TimestampFormat: "15:04:05"}
	case FormatConsole:
		return &ConsoleFormatter{TextFormatter: TextFormatter{TimestampFormat: "15:04:05"}}
	case FormatLogfmt:
		return &LogfmtFormatter{TimestampFormat: time.RFC3339}
	default:
		return &JSONFormatter{TimestampFormat: time.RFC3339}
	}
}

func durationMillis(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}

// JSONFormatter writes one JSON object per entry
type JSONFormatter struct {
	TimestampFormat string
}

func (f *JSONFormatter) Format(e *Entry) ([]byte, error) {
	data := make(map[string]interface{}, len(e.Fields)+6)
	for k, v := range e.Fields {
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		data[k] = v
	}
	data["timestamp"] = e.Timestamp.Format(f.TimestampFormat)
	data["level"] = e.Level.String()
	data["message"] = e.Message
	if e.Logger != "" {
		data["logger"] = e.Logger
	}
	if e.RequestID != "" {
		data["request_id"] = e.RequestID
	}
	if e.Error != nil {
		data["error"] = e.Error.Error()
	}
	if e.Duration > 0 {
		data["duration_ms"] = durationMillis(e.Duration)
	}

	out, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// TextFormatter writes human-readable lines
type TextFormatter struct {
	TimestampFormat  string
	DisableTimestamp bool
}

func (f *TextFormatter) Format(e *Entry) ([]byte, error) {
	var b strings.Builder
	if !f.DisableTimestamp {
		b.WriteString(e.Timestamp.Format(f.TimestampFormat))
		b.WriteByte(' ')
	}
	fmt.Fprintf(&b, "[%s]", e.Level.ShortString())
	if e.Logger != "" {
		fmt.Fprintf(&b, " {%s}", e.Logger)
	}
	if e.RequestID != "" {
		fmt.Fprintf(&b, " (req=%s)", e.RequestID)
	}
	b.WriteByte(' ')
	b.WriteString(e.Message)

	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for _, k := range e.Fields.SortedKeys() {
			parts = append(parts, fmt.Sprintf("%s=%v", k, e.Fields[k]))
		}
		fmt.Fprintf(&b, " [%s]", strings.Join(parts, " "))
	}
	if e.Error != nil {
		fmt.Fprintf(&b, " error=%q", e.Error.Error())
	}
	if e.Duration > 0 {
		fmt.Fprintf(&b, " duration=%s", e.Duration)
	}
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

// ConsoleFormatter is a TextFormatter with level colors
type ConsoleFormatter struct {
	TextFormatter
	DisableColors bool
}

func (f *ConsoleFormatter) Format(e *Entry) ([]byte, error) {
	line, err := f.TextFormatter.Format(e)
	if err != nil || f.DisableColors {
		return line, err
	}
	return []byte(e.Level.Color() + strings.TrimRight(string(line), "\n") + "\033[0m\n"), nil
}

// LogfmtFormatter writes key=value pairs
type LogfmtFormatter struct {
	TimestampFormat string
}

func (f *LogfmtFormatter) Format(e *Entry) ([]byte, error) {
	parts := []string{
		"timestamp=" + e.Timestamp.Format(f.TimestampFormat),
		"level=" + e.Level.String(),
		fmt.Sprintf("message=%q", e.Message),
	}
	if e.Logger != "" {
		parts = append(parts, "logger="+e.Logger)
	}
	if e.RequestID != "" {
		parts = append(parts, "request_id="+e.RequestID)
	}
	for _, k := range e.Fields.SortedKeys() {
		switch v := e.Fields[k].(type) {
		case string:
			parts = append(parts, fmt.Sprintf("%s=%q", k, v))
		default:
			parts = append(parts, fmt.Sprintf("%s=%v", k, v))
		}
	}
	if e.Error != nil {
		parts = append(parts, fmt.Sprintf("error=%q", e.Error.Error()))
	}
	if e.Duration > 0 {
		parts = append(parts, fmt.Sprintf("duration_ms=%.3f", durationMillis(e.Duration)))
	}
	return []byte(strings.Join(parts, " ") + "\n"), nil
}
