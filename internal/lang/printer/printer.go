// File: printer.go
// Title: MyPL Pretty Printer
// Description: Renders an AST as canonical MyPL source. The output re-parses
//              to an equivalent tree and printing is idempotent.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-13
// Modified: 2026-10-13
//
// Change History:
// - 2026-10-13 v0.1.0: Initial printer

package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/msto63/mypl/internal/lang/ast"
	"github.com/msto63/mypl/internal/lang/token"
)

// DefaultIndent is used when Options.Indent is empty
const DefaultIndent = "    "

// Options configures output layout
type Options struct {
	Indent string
}

// Printer writes source text for AST nodes. The first write error stops
// all further output and is returned by every later visit.
type Printer struct {
	w      io.Writer
	indent string
	depth  int
	err    error
}

var _ ast.Visitor[struct{}] = (*Printer)(nil)

// New creates a printer writing to w
func New(w io.Writer, opts Options) *Printer {
	if opts.Indent == "" {
		opts.Indent = DefaultIndent
	}
	return &Printer{w: w, indent: opts.Indent}
}

// Fprint writes prog to w
func Fprint(w io.Writer, prog *ast.StmtList, opts Options) error {
	return New(w, opts).Print(prog)
}

// Sprint returns prog as source text
func Sprint(prog *ast.StmtList, opts Options) (string, error) {
	var b strings.Builder
	if err := Fprint(&b, prog, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Print writes any node
func (p *Printer) Print(n ast.Node) error {
	_, err := ast.Accept[struct{}](n, p)
	return err
}

func (p *Printer) write(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *Printer) writef(format string, args ...interface{}) {
	p.write(fmt.Sprintf(format, args...))
}

// line starts a new indented line
func (p *Printer) line() {
	p.write(strings.Repeat(p.indent, p.depth))
}

func (p *Printer) node(n ast.Node) {
	if p.err != nil {
		return
	}
	if _, err := ast.Accept[struct{}](n, p); err != nil && p.err == nil {
		p.err = err
	}
}

func (p *Printer) block(list *ast.StmtList) {
	p.depth++
	p.node(list)
	p.depth--
}

func (p *Printer) done() (struct{}, error) {
	return struct{}{}, p.err
}

// ----------------------------------------------------------------------------
// Statements
// ----------------------------------------------------------------------------

func (p *Printer) VisitStmtList(n *ast.StmtList) (struct{}, error) {
	for _, s := range n.Stmts {
		p.node(s)
	}
	return p.done()
}

func (p *Printer) VisitExprStmt(n *ast.ExprStmt) (struct{}, error) {
	p.line()
	p.node(n.Expr)
	p.write(";\n")
	return p.done()
}

func (p *Printer) VisitVarDecl(n *ast.VarDecl) (struct{}, error) {
	p.line()
	p.write("var " + n.ID.Lexeme)
	if n.Type != nil {
		p.write(": " + n.Type.Lexeme)
	}
	p.write(" = ")
	p.node(n.Init)
	p.write(";\n")
	return p.done()
}

func (p *Printer) VisitAssignStmt(n *ast.AssignStmt) (struct{}, error) {
	p.line()
	p.write("set ")
	p.node(n.LValue)
	p.write(" = ")
	p.node(n.RHS)
	p.write(";\n")
	return p.done()
}

func (p *Printer) VisitStructDecl(n *ast.StructDecl) (struct{}, error) {
	p.line()
	p.write("struct " + n.Name.Lexeme + "\n")
	p.depth++
	for _, f := range n.Fields {
		p.node(f)
	}
	p.depth--
	p.line()
	p.write("end\n\n")
	return p.done()
}

func (p *Printer) VisitFunDecl(n *ast.FunDecl) (struct{}, error) {
	p.line()
	p.writef("fun %s %s(", n.ReturnType.Lexeme, n.Name.Lexeme)
	for i, param := range n.Params {
		if i > 0 {
			p.write(", ")
		}
		p.node(param)
	}
	p.write(")\n")
	p.block(n.Body)
	p.line()
	p.write("end\n\n")
	return p.done()
}

func (p *Printer) VisitFunParam(n *ast.FunParam) (struct{}, error) {
	p.write(n.Name.Lexeme + ": " + n.Type.Lexeme)
	return p.done()
}

func (p *Printer) VisitReturnStmt(n *ast.ReturnStmt) (struct{}, error) {
	p.line()
	p.write("return")
	if n.Expr != nil {
		p.write(" ")
		p.node(n.Expr)
	}
	p.write(";\n")
	return p.done()
}

func (p *Printer) VisitWhileStmt(n *ast.WhileStmt) (struct{}, error) {
	p.line()
	p.write("while ")
	p.node(n.Cond)
	p.write(" do\n")
	p.block(n.Body)
	p.line()
	p.write("end\n")
	return p.done()
}

func (p *Printer) VisitIfStmt(n *ast.IfStmt) (struct{}, error) {
	p.line()
	p.write("if ")
	p.node(n.If)
	for _, b := range n.ElseIfs {
		p.line()
		p.write("elif ")
		p.node(b)
	}
	if n.Else != nil {
		p.line()
		p.write("else\n")
		p.block(n.Else)
	}
	p.line()
	p.write("end\n")
	return p.done()
}

// VisitBasicIf prints a condition and branch body; the caller writes the
// leading keyword.
func (p *Printer) VisitBasicIf(n *ast.BasicIf) (struct{}, error) {
	p.node(n.Cond)
	p.write(" then\n")
	p.block(n.Body)
	return p.done()
}

// ----------------------------------------------------------------------------
// Expressions
// ----------------------------------------------------------------------------

func (p *Printer) VisitSimpleExpr(n *ast.SimpleExpr) (struct{}, error) {
	if n.Nested != nil {
		p.write("(")
		p.node(n.Nested)
		p.write(")")
		return p.done()
	}
	p.node(n.Value)
	return p.done()
}

func (p *Printer) VisitComplexExpr(n *ast.ComplexExpr) (struct{}, error) {
	p.node(n.Left)
	p.write(" " + n.Op.Lexeme + " ")
	p.node(n.Right)
	return p.done()
}

func (p *Printer) VisitBoolExpr(n *ast.BoolExpr) (struct{}, error) {
	switch {
	case n.Negated:
		p.write("not ")
		p.node(n.Nested)
	case n.Nested != nil:
		p.write("(")
		p.node(n.Nested)
		p.write(")")
	default:
		p.node(n.First)
		if n.Rel != nil {
			p.write(" " + n.Rel.Lexeme + " ")
			p.node(n.Second)
		}
	}
	if n.Connector != nil {
		p.write(" " + n.Connector.Lexeme + " ")
		p.node(n.Rest)
	}
	return p.done()
}

func (p *Printer) VisitLValue(n *ast.LValue) (struct{}, error) {
	p.write(ast.PathString(n.Path))
	return p.done()
}

func (p *Printer) VisitSimpleRValue(n *ast.SimpleRValue) (struct{}, error) {
	if n.Value.Kind == token.STRINGVAL {
		p.write(`"` + n.Value.Lexeme + `"`)
		return p.done()
	}
	p.write(n.Value.Lexeme)
	return p.done()
}

func (p *Printer) VisitNewRValue(n *ast.NewRValue) (struct{}, error) {
	p.write("new " + n.Struct.Lexeme)
	return p.done()
}

func (p *Printer) VisitCallRValue(n *ast.CallRValue) (struct{}, error) {
	p.write(n.Fun.Lexeme + "(")
	for i, arg := range n.Args {
		if i > 0 {
			p.write(", ")
		}
		p.node(arg)
	}
	p.write(")")
	return p.done()
}

func (p *Printer) VisitIDRValue(n *ast.IDRValue) (struct{}, error) {
	p.write(ast.PathString(n.Path))
	return p.done()
}
