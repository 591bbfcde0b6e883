// File: parser.go
// Title: MyPL Recursive Descent Parser
// Description: Consumes tokens from the lexer on demand and builds the AST.
//              One token of lookahead is held as the current token; the
//              first grammar violation aborts the parse with a positioned
//              syntax diagnostic.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-13
//
// Change History:
// - 2026-10-12 v0.1.0: Initial parser implementation
// - 2026-10-13 v0.1.1: Accept a relation after a parenthesized operand

package parser

import (
	"fmt"
	"strings"

	"github.com/msto63/mypl/internal/lang/ast"
	"github.com/msto63/mypl/internal/lang/diag"
	"github.com/msto63/mypl/internal/lang/lexer"
	"github.com/msto63/mypl/internal/lang/token"
	mypllog "github.com/msto63/mypl/pkg/core/log"
)

// Parser implements recursive descent parsing for MyPL
type Parser struct {
	lexer   *lexer.Lexer
	current token.Token
	logger  *mypllog.Logger
	options Options
}

// Options configures parser behavior
type Options struct {
	Logger *mypllog.Logger
}

// New creates a parser reading tokens from lx
func New(lx *lexer.Lexer, opts Options) *Parser {
	if opts.Logger == nil {
		opts.Logger = mypllog.GetDefault()
	}
	return &Parser{
		lexer:   lx,
		logger:  opts.Logger.WithField("component", "parser"),
		options: opts,
	}
}

// ParseString parses an in-memory program
func ParseString(src string, opts Options) (*ast.StmtList, error) {
	return New(lexer.NewString(src), opts).Parse()
}

// Parse consumes the whole token stream and returns the program root
func (p *Parser) Parse() (*ast.StmtList, error) {
	p.logger.Debug("Starting MyPL parsing")

	prog, err := p.parse()
	if err != nil {
		p.logger.Warn("MyPL parsing failed", mypllog.Fields{
			"error": err.Error(),
		})
		return nil, err
	}

	p.logger.Debug("MyPL parsing completed successfully", mypllog.Fields{
		"statements": len(prog.Stmts),
		"outline":    Describe(prog),
	})
	return prog, nil
}

func (p *Parser) parse() (*ast.StmtList, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	prog := &ast.StmtList{}
	for p.current.Kind != token.EOS {
		stmt, err := p.stmt()
		if err != nil {
			return nil, err
		}
		prog.Stmts = append(prog.Stmts, stmt)
	}
	return prog, nil
}

// ----------------------------------------------------------------------------
// Helpers
// ----------------------------------------------------------------------------

func (p *Parser) advance() error {
	tok, err := p.lexer.NextToken()
	if err != nil {
		return err
	}
	p.current = tok
	return nil
}

// eat consumes the current token if it has the given kind
func (p *Parser) eat(kind token.Kind, expected string) (token.Token, error) {
	tok := p.current
	if tok.Kind != kind {
		return tok, p.unexpected(expected)
	}
	return tok, p.advance()
}

func (p *Parser) is(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.current.Kind == k {
			return true
		}
	}
	return false
}

func (p *Parser) unexpected(expected string) error {
	found := fmt.Sprintf("%q", p.current.Lexeme)
	if p.current.Kind == token.EOS {
		found = "end of input"
	}
	return diag.New(diag.CodeUnexpectedToken, p.current.Line, p.current.Column,
		"expecting %s, found %s", expected, found)
}

// ----------------------------------------------------------------------------
// Statements
// ----------------------------------------------------------------------------

func (p *Parser) stmt() (ast.Stmt, error) {
	switch p.current.Kind {
	case token.STRUCTTYPE:
		return p.structDecl()
	case token.FUN:
		return p.funDecl()
	}
	return p.bstmt()
}

// bstmts parses statements until a block terminator
func (p *Parser) bstmts() (*ast.StmtList, error) {
	list := &ast.StmtList{}
	for !p.is(token.EOS, token.END, token.ELSE, token.ELIF) {
		stmt, err := p.bstmt()
		if err != nil {
			return nil, err
		}
		list.Stmts = append(list.Stmts, stmt)
	}
	return list, nil
}

func (p *Parser) bstmt() (ast.Stmt, error) {
	switch p.current.Kind {
	case token.VAR:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.vdecl()
	case token.SET:
		return p.assign()
	case token.IF:
		return p.ifStmt()
	case token.WHILE:
		return p.whileStmt()
	case token.RETURN:
		return p.returnStmt()
	}

	expr, err := p.expr()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.SEMICOLON, "';'"); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Expr: expr}, nil
}

func (p *Parser) structDecl() (*ast.StructDecl, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	name, err := p.eat(token.ID, "struct name")
	if err != nil {
		return nil, err
	}

	decl := &ast.StructDecl{Name: name}
	for p.is(token.VAR) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		field, err := p.vdecl()
		if err != nil {
			return nil, err
		}
		decl.Fields = append(decl.Fields, field)
	}

	if _, err := p.eat(token.END, "'end'"); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) funDecl() (*ast.FunDecl, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}

	var ret token.Token
	if p.is(token.NIL) {
		ret = p.current
		if err := p.advance(); err != nil {
			return nil, err
		}
	} else {
		t, err := p.typ()
		if err != nil {
			return nil, err
		}
		ret = t
	}

	name, err := p.eat(token.ID, "function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.LPAREN, "'('"); err != nil {
		return nil, err
	}

	decl := &ast.FunDecl{ReturnType: ret, Name: name}
	if !p.is(token.RPAREN) {
		if decl.Params, err = p.params(); err != nil {
			return nil, err
		}
	}
	if _, err := p.eat(token.RPAREN, "')'"); err != nil {
		return nil, err
	}

	if decl.Body, err = p.bstmts(); err != nil {
		return nil, err
	}
	if _, err := p.eat(token.END, "'end'"); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) params() ([]*ast.FunParam, error) {
	var params []*ast.FunParam
	for {
		name, err := p.eat(token.ID, "parameter name")
		if err != nil {
			return nil, err
		}
		if _, err := p.eat(token.COLON, "':'"); err != nil {
			return nil, err
		}
		typ, err := p.typ()
		if err != nil {
			return nil, err
		}
		params = append(params, &ast.FunParam{Name: name, Type: typ})

		if !p.is(token.COMMA) {
			return params, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
}

// vdecl parses `ID (: type)? = expr ;` after the var keyword
func (p *Parser) vdecl() (*ast.VarDecl, error) {
	id, err := p.eat(token.ID, "variable name")
	if err != nil {
		return nil, err
	}

	decl := &ast.VarDecl{ID: id}
	if p.is(token.COLON) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		typ, err := p.typ()
		if err != nil {
			return nil, err
		}
		decl.Type = &typ
	}

	if _, err := p.eat(token.ASSIGN, "'='"); err != nil {
		return nil, err
	}
	if decl.Init, err = p.expr(); err != nil {
		return nil, err
	}
	if _, err := p.eat(token.SEMICOLON, "';'"); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) typ() (token.Token, error) {
	if !p.is(token.ID, token.INTTYPE, token.FLOATTYPE, token.BOOLTYPE, token.STRINGTYPE) {
		return p.current, p.unexpected("type")
	}
	tok := p.current
	return tok, p.advance()
}

func (p *Parser) assign() (*ast.AssignStmt, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	lv, err := p.lvalue()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.ASSIGN, "'='"); err != nil {
		return nil, err
	}
	rhs, err := p.expr()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.SEMICOLON, "';'"); err != nil {
		return nil, err
	}
	return &ast.AssignStmt{LValue: lv, RHS: rhs}, nil
}

func (p *Parser) lvalue() (*ast.LValue, error) {
	path, err := p.path()
	if err != nil {
		return nil, err
	}
	return &ast.LValue{Path: path}, nil
}

// path parses `ID (. ID)*`
func (p *Parser) path() ([]token.Token, error) {
	first, err := p.eat(token.ID, "identifier")
	if err != nil {
		return nil, err
	}
	path := []token.Token{first}
	for p.is(token.DOT) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		seg, err := p.eat(token.ID, "field name")
		if err != nil {
			return nil, err
		}
		path = append(path, seg)
	}
	return path, nil
}

func (p *Parser) returnStmt() (*ast.ReturnStmt, error) {
	stmt := &ast.ReturnStmt{Return: p.current}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if !p.is(token.SEMICOLON) {
		expr, err := p.expr()
		if err != nil {
			return nil, err
		}
		stmt.Expr = expr
	}
	if _, err := p.eat(token.SEMICOLON, "';'"); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) whileStmt() (*ast.WhileStmt, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	cond, err := p.bexpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.DO, "'do'"); err != nil {
		return nil, err
	}
	body, err := p.bstmts()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.END, "'end'"); err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Cond: cond, Body: body}, nil
}

func (p *Parser) ifStmt() (*ast.IfStmt, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	first, err := p.basicIf()
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStmt{If: first}
	if err := p.condTail(stmt); err != nil {
		return nil, err
	}
	return stmt, nil
}

// basicIf parses `bexpr then stmts`
func (p *Parser) basicIf() (*ast.BasicIf, error) {
	cond, err := p.bexpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.THEN, "'then'"); err != nil {
		return nil, err
	}
	body, err := p.bstmts()
	if err != nil {
		return nil, err
	}
	return &ast.BasicIf{Cond: cond, Body: body}, nil
}

// condTail appends elif branches, then the optional else, then eats end
func (p *Parser) condTail(stmt *ast.IfStmt) error {
	switch p.current.Kind {
	case token.ELIF:
		if err := p.advance(); err != nil {
			return err
		}
		branch, err := p.basicIf()
		if err != nil {
			return err
		}
		stmt.ElseIfs = append(stmt.ElseIfs, branch)
		return p.condTail(stmt)
	case token.ELSE:
		if err := p.advance(); err != nil {
			return err
		}
		body, err := p.bstmts()
		if err != nil {
			return err
		}
		stmt.Else = body
	}
	_, err := p.eat(token.END, "'end'")
	return err
}

// ----------------------------------------------------------------------------
// Expressions
// ----------------------------------------------------------------------------

func (p *Parser) bexpr() (*ast.BoolExpr, error) {
	b := &ast.BoolExpr{Start: p.current}

	switch p.current.Kind {
	case token.NOT:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.bexpr()
		if err != nil {
			return nil, err
		}
		b.Negated = true
		b.Nested = inner

	case token.LPAREN:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.bexpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.eat(token.RPAREN, "')'"); err != nil {
			return nil, err
		}
		if p.current.Kind.IsRelational() && isPlainOperand(inner) {
			// (a + b) < c: the parenthesized part was arithmetic
			b.First = &ast.SimpleExpr{Nested: inner.First}
			if err := p.relation(b); err != nil {
				return nil, err
			}
		} else {
			b.Nested = inner
		}

	default:
		first, err := p.expr()
		if err != nil {
			return nil, err
		}
		b.First = first
		if p.current.Kind.IsRelational() {
			if err := p.relation(b); err != nil {
				return nil, err
			}
		}
	}

	if p.is(token.AND, token.OR) {
		conn := p.current
		if err := p.advance(); err != nil {
			return nil, err
		}
		rest, err := p.bexpr()
		if err != nil {
			return nil, err
		}
		b.Connector = &conn
		b.Rest = rest
	}
	return b, nil
}

func (p *Parser) relation(b *ast.BoolExpr) error {
	rel := p.current
	if err := p.advance(); err != nil {
		return err
	}
	second, err := p.expr()
	if err != nil {
		return err
	}
	b.Rel = &rel
	b.Second = second
	return nil
}

// isPlainOperand reports whether b is a bare arithmetic operand
func isPlainOperand(b *ast.BoolExpr) bool {
	return !b.Negated && b.First != nil && b.Rel == nil && b.Connector == nil
}

func (p *Parser) expr() (ast.Expr, error) {
	left := &ast.SimpleExpr{}
	if p.is(token.LPAREN) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err := p.eat(token.RPAREN, "')'"); err != nil {
			return nil, err
		}
		left.Nested = inner
	} else {
		rv, err := p.rvalue()
		if err != nil {
			return nil, err
		}
		left.Value = rv
	}

	if !p.current.Kind.IsArithmetic() {
		return left, nil
	}
	op := p.current
	if err := p.advance(); err != nil {
		return nil, err
	}
	right, err := p.expr()
	if err != nil {
		return nil, err
	}
	return &ast.ComplexExpr{Left: left, Op: op, Right: right}, nil
}

func (p *Parser) rvalue() (ast.RValue, error) {
	switch p.current.Kind {
	case token.NIL, token.STRINGVAL, token.INTVAL, token.BOOLVAL, token.FLOATVAL:
		tok := p.current
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.SimpleRValue{Value: tok}, nil

	case token.NEW:
		newTok := p.current
		if err := p.advance(); err != nil {
			return nil, err
		}
		name, err := p.eat(token.ID, "struct name")
		if err != nil {
			return nil, err
		}
		return &ast.NewRValue{New: newTok, Struct: name}, nil

	case token.ID:
		return p.idrval()
	}
	return nil, p.unexpected("expression")
}

// idrval parses a variable path or a call; after the first identifier a
// '(' commits to a call and a '.' to a dotted path.
func (p *Parser) idrval() (ast.RValue, error) {
	first := p.current
	if err := p.advance(); err != nil {
		return nil, err
	}

	if !p.is(token.LPAREN) {
		path := []token.Token{first}
		for p.is(token.DOT) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			seg, err := p.eat(token.ID, "field name")
			if err != nil {
				return nil, err
			}
			path = append(path, seg)
		}
		return &ast.IDRValue{Path: path}, nil
	}

	if err := p.advance(); err != nil {
		return nil, err
	}
	call := &ast.CallRValue{Fun: first}
	if !p.is(token.RPAREN) {
		for {
			arg, err := p.expr()
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)
			if !p.is(token.COMMA) {
				break
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if _, err := p.eat(token.RPAREN, "')'"); err != nil {
		return nil, err
	}
	return call, nil
}

// Describe renders a short outline of a program for log messages
func Describe(prog *ast.StmtList) string {
	var kinds []string
	for _, s := range prog.Stmts {
		kinds = append(kinds, strings.TrimPrefix(fmt.Sprintf("%T", s), "*ast."))
	}
	return strings.Join(kinds, ",")
}
