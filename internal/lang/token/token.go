// File: token.go
// Title: MyPL Token Model
// Description: Defines the closed set of token kinds produced by the lexer
//              and the immutable token record consumed by the parser.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-12
//
// Change History:
// - 2026-10-12 v0.1.0: Initial token model

package token

import "fmt"

// Kind identifies the lexical category of a token
type Kind int

const (
	// Punctuation and operators
	ASSIGN Kind = iota
	COMMA
	COLON
	DIVIDE
	DOT
	EQUAL
	GREATER_THAN
	GREATER_THAN_EQUAL
	LESS_THAN
	LESS_THAN_EQUAL
	NOT_EQUAL
	LPAREN
	RPAREN
	MINUS
	MODULO
	MULTIPLY
	PLUS
	SEMICOLON

	// Type keywords
	BOOLTYPE
	INTTYPE
	FLOATTYPE
	STRINGTYPE
	STRUCTTYPE

	// Logical keywords
	AND
	OR
	NOT

	// Control keywords
	WHILE
	DO
	IF
	THEN
	ELSE
	ELIF
	END
	FUN
	VAR
	SET
	RETURN
	NEW

	// Literals
	NIL
	BOOLVAL
	INTVAL
	FLOATVAL
	STRINGVAL

	ID
	EOS
)

var kindNames = [...]string{
	ASSIGN:             "ASSIGN",
	COMMA:              "COMMA",
	COLON:              "COLON",
	DIVIDE:             "DIVIDE",
	DOT:                "DOT",
	EQUAL:              "EQUAL",
	GREATER_THAN:       "GREATER_THAN",
	GREATER_THAN_EQUAL: "GREATER_THAN_EQUAL",
	LESS_THAN:          "LESS_THAN",
	LESS_THAN_EQUAL:    "LESS_THAN_EQUAL",
	NOT_EQUAL:          "NOT_EQUAL",
	LPAREN:             "LPAREN",
	RPAREN:             "RPAREN",
	MINUS:              "MINUS",
	MODULO:             "MODULO",
	MULTIPLY:           "MULTIPLY",
	PLUS:               "PLUS",
	SEMICOLON:          "SEMICOLON",
	BOOLTYPE:           "BOOLTYPE",
	INTTYPE:            "INTTYPE",
	FLOATTYPE:          "FLOATTYPE",
	STRINGTYPE:         "STRINGTYPE",
	STRUCTTYPE:         "STRUCTTYPE",
	AND:                "AND",
	OR:                 "OR",
	NOT:                "NOT",
	WHILE:              "WHILE",
	DO:                 "DO",
	IF:                 "IF",
	THEN:               "THEN",
	ELSE:               "ELSE",
	ELIF:               "ELIF",
	END:                "END",
	FUN:                "FUN",
	VAR:                "VAR",
	SET:                "SET",
	RETURN:             "RETURN",
	NEW:                "NEW",
	NIL:                "NIL",
	BOOLVAL:            "BOOLVAL",
	INTVAL:             "INTVAL",
	FLOATVAL:           "FLOATVAL",
	STRINGVAL:          "STRINGVAL",
	ID:                 "ID",
	EOS:                "EOS",
}

// String returns the upper-case name of the kind
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Count is the number of token kinds
const Count = int(EOS) + 1

// Token is a single lexeme with its position. Line and Column are 1-based
// and point at the first character of the lexeme.
type Token struct {
	Kind   Kind
	Lexeme string
	Line   int
	Column int
}

// New creates a token
func New(kind Kind, lexeme string, line, column int) Token {
	return Token{Kind: kind, Lexeme: lexeme, Line: line, Column: column}
}

// String renders the token for diagnostics and token dumps
func (t Token) String() string {
	return fmt.Sprintf("%s '%s' %d:%d", t.Kind, t.Lexeme, t.Line, t.Column)
}

// Pos returns the token position
func (t Token) Pos() (line, column int) {
	return t.Line, t.Column
}

var keywords = map[string]Kind{
	"string": STRINGTYPE,
	"int":    INTTYPE,
	"float":  FLOATTYPE,
	"bool":   BOOLTYPE,
	"struct": STRUCTTYPE,
	"true":   BOOLVAL,
	"false":  BOOLVAL,
	"and":    AND,
	"or":     OR,
	"not":    NOT,
	"while":  WHILE,
	"do":     DO,
	"if":     IF,
	"then":   THEN,
	"else":   ELSE,
	"elif":   ELIF,
	"end":    END,
	"fun":    FUN,
	"var":    VAR,
	"set":    SET,
	"return": RETURN,
	"new":    NEW,
	"nil":    NIL,
}

// Lookup returns the keyword kind for word, or ID
func Lookup(word string) Kind {
	if k, ok := keywords[word]; ok {
		return k
	}
	return ID
}

// IsKeyword reports whether word is reserved
func IsKeyword(word string) bool {
	_, ok := keywords[word]
	return ok
}

// IsRelational reports whether k is a comparison operator
func (k Kind) IsRelational() bool {
	switch k {
	case EQUAL, NOT_EQUAL, LESS_THAN, LESS_THAN_EQUAL, GREATER_THAN, GREATER_THAN_EQUAL:
		return true
	}
	return false
}

// IsArithmetic reports whether k is a math operator
func (k Kind) IsArithmetic() bool {
	switch k {
	case PLUS, MINUS, MULTIPLY, DIVIDE, MODULO:
		return true
	}
	return false
}

// IsPrimitiveType reports whether k names a built-in primitive type
func (k Kind) IsPrimitiveType() bool {
	switch k {
	case INTTYPE, FLOATTYPE, BOOLTYPE, STRINGTYPE:
		return true
	}
	return false
}

// IsLiteral reports whether k is a literal value kind (including nil)
func (k Kind) IsLiteral() bool {
	switch k {
	case NIL, BOOLVAL, INTVAL, FLOATVAL, STRINGVAL:
		return true
	}
	return false
}
