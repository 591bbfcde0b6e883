// File: codes.go
// Title: Diagnostic Codes
// Description: Stable codes classifying every lexical, syntax and type
//              error reported by the MyPL front end.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-12
//
// Change History:
// - 2026-10-12 v0.1.0: Initial code set

package diag

// Code classifies a diagnostic
type Code string

const (
	// Lexical
	CodeInvalidFloat       Code = "INVALID_FLOAT"
	CodeUnterminatedString Code = "UNTERMINATED_STRING"
	CodeLeadingZero        Code = "LEADING_ZERO"
	CodeMalformedNumber    Code = "MALFORMED_NUMBER"
	CodeUnexpectedChar     Code = "UNEXPECTED_CHARACTER"

	// Syntax
	CodeUnexpectedToken Code = "UNEXPECTED_TOKEN"

	// Type
	CodeUndefinedVariable  Code = "UNDEFINED_VARIABLE"
	CodeUndefinedField     Code = "UNDEFINED_FIELD"
	CodeUndefinedType      Code = "UNDEFINED_TYPE"
	CodeUndefinedFunction  Code = "UNDEFINED_FUNCTION"
	CodeNotAStruct         Code = "NOT_A_STRUCT"
	CodeNotAValue          Code = "NOT_A_VALUE"
	CodeTypeMismatch       Code = "TYPE_MISMATCH"
	CodeAmbiguousType      Code = "AMBIGUOUS_TYPE"
	CodeDuplicateDecl      Code = "DUPLICATE_DECLARATION"
	CodeArityMismatch      Code = "ARITY_MISMATCH"
	CodeInvalidModulo      Code = "INVALID_MODULO"
	CodeInvalidStringOp    Code = "INVALID_STRING_OPERATOR"
	CodeInvalidBoolOperand Code = "INVALID_BOOL_OPERAND"
	CodeInvalidComparison  Code = "INVALID_COMPARISON"
	CodeNonBoolCondition   Code = "NON_BOOL_CONDITION"
	CodeReturnMismatch     Code = "RETURN_TYPE_MISMATCH"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// Phase returns the pipeline stage that reports this code
func (c Code) Phase() Phase {
	switch c {
	case CodeInvalidFloat, CodeUnterminatedString, CodeLeadingZero, CodeMalformedNumber, CodeUnexpectedChar:
		return PhaseLexical
	case CodeUnexpectedToken:
		return PhaseSyntax
	case CodeUndefinedVariable, CodeUndefinedField, CodeUndefinedType, CodeUndefinedFunction,
		CodeNotAStruct, CodeNotAValue, CodeTypeMismatch, CodeAmbiguousType, CodeDuplicateDecl,
		CodeArityMismatch, CodeInvalidModulo, CodeInvalidStringOp, CodeInvalidBoolOperand,
		CodeInvalidComparison, CodeNonBoolCondition, CodeReturnMismatch:
		return PhaseType
	default:
		return PhaseUnknown
	}
}
