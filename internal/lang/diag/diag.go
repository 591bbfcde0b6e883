// File: diag.go
// Title: Unified Diagnostics
// Description: The single error shape shared by the lexer, parser and type
//              checker: phase, code, message and source position. Sentinel
//              errors allow callers to match a phase with errors.Is.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-12
//
// Change History:
// - 2026-10-12 v0.1.0: Initial implementation

package diag

import (
	"errors"
	"fmt"
)

// Phase names the pipeline stage that rejected the input
type Phase int

const (
	PhaseUnknown Phase = iota
	PhaseLexical
	PhaseSyntax
	PhaseType
)

// String returns the lower-case phase name used in messages
func (p Phase) String() string {
	switch p {
	case PhaseLexical:
		return "lexer"
	case PhaseSyntax:
		return "parser"
	case PhaseType:
		return "type"
	default:
		return "unknown"
	}
}

// Sentinel errors, one per phase
var (
	ErrLexical = errors.New("lexical error")
	ErrSyntax  = errors.New("syntax error")
	ErrType    = errors.New("type error")
)

// Error is a positioned diagnostic
type Error struct {
	Phase   Phase
	Code    Code
	Message string
	Line    int
	Column  int
}

// New creates a diagnostic; the phase is derived from the code
func New(code Code, line, column int, format string, args ...interface{}) *Error {
	return &Error{
		Phase:   code.Phase(),
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Line:    line,
		Column:  column,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("%s error: %s at line %d column %d", e.Phase, e.Message, e.Line, e.Column)
}

// Is matches the phase sentinel
func (e *Error) Is(target error) bool {
	switch target {
	case ErrLexical:
		return e.Phase == PhaseLexical
	case ErrSyntax:
		return e.Phase == PhaseSyntax
	case ErrType:
		return e.Phase == PhaseType
	}
	return false
}

// LogFields describes the diagnostic as structured log fields
func (e *Error) LogFields() map[string]interface{} {
	return map[string]interface{}{
		"phase":  e.Phase.String(),
		"code":   string(e.Code),
		"line":   e.Line,
		"column": e.Column,
	}
}

// As extracts a diagnostic from an error chain
func As(err error) (*Error, bool) {
	var d *Error
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}

// HasCode reports whether err carries the given diagnostic code
func HasCode(err error, code Code) bool {
	d, ok := As(err)
	return ok && d.Code == code
}

// GetCode returns the diagnostic code of err, or "" when err is not a diagnostic
func GetCode(err error) Code {
	if d, ok := As(err); ok {
		return d.Code
	}
	return ""
}
