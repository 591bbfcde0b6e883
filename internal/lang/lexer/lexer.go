// File: lexer.go
// Title: MyPL Lexical Analyzer
// Description: Converts a character stream into MyPL tokens on demand.
//              Uses single-rune lookahead over a bufio.Reader and tracks
//              1-based line and column positions for diagnostics.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-12
//
// Change History:
// - 2026-10-12 v0.1.0: Initial lexer implementation

package lexer

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/msto63/mypl/internal/lang/diag"
	"github.com/msto63/mypl/internal/lang/token"
)

const eof rune = -1

// Lexer produces tokens from a source stream. A Lexer is used by a single
// parse and is not safe for concurrent use.
type Lexer struct {
	in     *bufio.Reader
	line   int
	column int // column of the last consumed rune, 0 at line start
	err    error
}

// New creates a lexer reading from r
func New(r io.Reader) *Lexer {
	return &Lexer{in: bufio.NewReader(r), line: 1}
}

// NewString creates a lexer over an in-memory source
func NewString(src string) *Lexer {
	return New(strings.NewReader(src))
}

// Tokenize returns every token of src up to and including EOS
func Tokenize(src string) ([]token.Token, error) {
	lx := NewString(src)
	var tokens []token.Token
	for {
		tok, err := lx.NextToken()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOS {
			return tokens, nil
		}
	}
}

// NextToken returns the next token. Once the input is exhausted every call
// returns an EOS token.
func (l *Lexer) NextToken() (token.Token, error) {
	l.skipTrivia()
	if l.err != nil {
		return token.Token{}, fmt.Errorf("read source: %w", l.err)
	}

	line, col := l.line, l.column+1
	ch := l.peek()

	switch ch {
	case eof:
		return token.New(token.EOS, "", line, col), nil
	case ',':
		return l.single(token.COMMA, line, col), nil
	case ':':
		return l.single(token.COLON, line, col), nil
	case '/':
		return l.single(token.DIVIDE, line, col), nil
	case '(':
		return l.single(token.LPAREN, line, col), nil
	case ')':
		return l.single(token.RPAREN, line, col), nil
	case '-':
		return l.single(token.MINUS, line, col), nil
	case '%':
		return l.single(token.MODULO, line, col), nil
	case '*':
		return l.single(token.MULTIPLY, line, col), nil
	case '+':
		return l.single(token.PLUS, line, col), nil
	case ';':
		return l.single(token.SEMICOLON, line, col), nil
	case '.':
		l.read()
		if isDigit(l.peek()) {
			return token.Token{}, diag.New(diag.CodeInvalidFloat, line, col, "invalid float value")
		}
		return token.New(token.DOT, ".", line, col), nil
	case '=':
		return l.withEqual(token.ASSIGN, token.EQUAL, line, col), nil
	case '<':
		return l.withEqual(token.LESS_THAN, token.LESS_THAN_EQUAL, line, col), nil
	case '>':
		return l.withEqual(token.GREATER_THAN, token.GREATER_THAN_EQUAL, line, col), nil
	case '!':
		l.read()
		if l.peek() == '=' {
			l.read()
			return token.New(token.NOT_EQUAL, "!=", line, col), nil
		}
		return token.Token{}, diag.New(diag.CodeUnexpectedChar, line, col, `unexpected symbol "!"`)
	case '\'':
		l.read()
		return token.Token{}, diag.New(diag.CodeUnexpectedChar, line, col, `unexpected symbol "'"`)
	case '"':
		return l.lexString(line, col)
	}

	switch {
	case isDigit(ch):
		return l.lexNumber(line, col)
	case isIdentStart(ch):
		return l.lexWord(line, col)
	}

	l.read()
	return token.Token{}, diag.New(diag.CodeUnexpectedChar, line, col, "unexpected character %q", ch)
}

// skipTrivia drops whitespace and '#' comments until neither applies
func (l *Lexer) skipTrivia() {
	for {
		for unicode.IsSpace(l.peek()) {
			l.read()
		}
		if l.peek() != '#' {
			return
		}
		for ch := l.peek(); ch != '\n' && ch != eof; ch = l.peek() {
			l.read()
		}
	}
}

func (l *Lexer) single(kind token.Kind, line, col int) token.Token {
	ch := l.read()
	return token.New(kind, string(ch), line, col)
}

// withEqual emits plain, or withEq when the next rune is '='
func (l *Lexer) withEqual(plain, withEq token.Kind, line, col int) token.Token {
	first := l.read()
	if l.peek() == '=' {
		l.read()
		return token.New(withEq, string(first)+"=", line, col)
	}
	return token.New(plain, string(first), line, col)
}

func (l *Lexer) lexString(line, col int) (token.Token, error) {
	l.read() // opening quote
	var sb strings.Builder
	for {
		switch l.peek() {
		case eof:
			return token.Token{}, diag.New(diag.CodeUnterminatedString, l.line, l.column+1,
				"reached EOS character in string")
		case '\n':
			return token.Token{}, diag.New(diag.CodeUnterminatedString, l.line, l.column+1,
				"reached newline character in string")
		case '"':
			l.read()
			return token.New(token.STRINGVAL, sb.String(), line, col), nil
		}
		sb.WriteRune(l.read())
	}
}

func (l *Lexer) lexNumber(line, col int) (token.Token, error) {
	var sb strings.Builder
	first := l.read()
	sb.WriteRune(first)

	if first == '0' && !l.atTerminator() {
		if isDigit(l.peek()) {
			return token.Token{}, diag.New(diag.CodeLeadingZero, line, col, "leading zero in number")
		}
		return token.Token{}, diag.New(diag.CodeMalformedNumber, l.line, l.column+1,
			"unexpected symbol %q in number", l.peek())
	}

	for !l.atTerminator() {
		if !isDigit(l.peek()) {
			return token.Token{}, diag.New(diag.CodeMalformedNumber, l.line, l.column+1,
				"unexpected symbol %q in number", l.peek())
		}
		sb.WriteRune(l.read())
	}

	if l.peek() != '.' {
		return token.New(token.INTVAL, sb.String(), line, col), nil
	}

	sb.WriteRune(l.read())
	if !isDigit(l.peek()) {
		return token.Token{}, diag.New(diag.CodeInvalidFloat, l.line, l.column+1, "missing digit in float value")
	}
	for isDigit(l.peek()) {
		sb.WriteRune(l.read())
	}
	if l.peek() == '.' || !l.atTerminator() {
		return token.Token{}, diag.New(diag.CodeInvalidFloat, l.line, l.column+1,
			"unexpected character %q in float value", l.peek())
	}

	return token.New(token.FLOATVAL, sb.String(), line, col), nil
}

func (l *Lexer) lexWord(line, col int) (token.Token, error) {
	var sb strings.Builder
	for !l.atTerminator() {
		if !isIdentPart(l.peek()) {
			return token.Token{}, diag.New(diag.CodeUnexpectedChar, l.line, l.column+1,
				"unexpected character %q in identifier", l.peek())
		}
		sb.WriteRune(l.read())
	}
	word := sb.String()
	return token.New(token.Lookup(word), word, line, col), nil
}

// read consumes one rune and advances the position
func (l *Lexer) read() rune {
	ch, _, err := l.in.ReadRune()
	if err != nil {
		if err != io.EOF {
			l.err = err
		}
		return eof
	}
	if ch == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
	return ch
}

// peek returns the next rune without consuming it
func (l *Lexer) peek() rune {
	ch, _, err := l.in.ReadRune()
	if err != nil {
		if err != io.EOF {
			l.err = err
		}
		return eof
	}
	_ = l.in.UnreadRune()
	return ch
}

func (l *Lexer) atTerminator() bool {
	return isTerminator(l.peek())
}

func isTerminator(ch rune) bool {
	switch ch {
	case eof, '"', ',', '=', '#', '>', '<', '!', '\'', ':', '/', '.', '(', ')', '-', '%', '*', '+', ';':
		return true
	}
	return unicode.IsSpace(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentPart(ch rune) bool {
	return isIdentStart(ch) || isDigit(ch)
}
