// File: nodes.go
// Title: MyPL Abstract Syntax Tree Nodes
// Description: Closed set of AST node types built by the parser. Nodes are
//              plain data; passes traverse them through the Visitor
//              contract in visitor.go.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-12
//
// Change History:
// - 2026-10-12 v0.1.0: Initial node set

package ast

import "github.com/msto63/mypl/internal/lang/token"

// Node is implemented by every AST node
type Node interface {
	// Pos returns the line and column of the node's first token
	Pos() (line, column int)
	node()
}

// Stmt is a statement node
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an arithmetic expression node
type Expr interface {
	Node
	exprNode()
}

// RValue is a value-producing leaf of an expression
type RValue interface {
	Node
	rvalueNode()
}

// StmtList is the program root and every block body
type StmtList struct {
	Stmts []Stmt
}

// ----------------------------------------------------------------------------
// Statements
// ----------------------------------------------------------------------------

// ExprStmt is an expression evaluated for its effect
type ExprStmt struct {
	Expr Expr
}

// VarDecl is `var ID (: type)? = expr;`. Type is nil when omitted.
type VarDecl struct {
	ID   token.Token
	Type *token.Token
	Init Expr
}

// AssignStmt is `set lvalue = expr;`
type AssignStmt struct {
	LValue *LValue
	RHS    Expr
}

// StructDecl declares a struct type with its fields in order
type StructDecl struct {
	Name   token.Token
	Fields []*VarDecl
}

// FunParam is a single `ID: type` parameter
type FunParam struct {
	Name token.Token
	Type token.Token
}

// FunDecl declares a function. ReturnType is a type token or NIL.
type FunDecl struct {
	ReturnType token.Token
	Name       token.Token
	Params     []*FunParam
	Body       *StmtList
}

// ReturnStmt is `return expr?;`. Expr is nil for a bare return.
type ReturnStmt struct {
	Return token.Token
	Expr   Expr
}

// WhileStmt is `while bexpr do stmts end`
type WhileStmt struct {
	Cond *BoolExpr
	Body *StmtList
}

// BasicIf is one guarded branch of a conditional
type BasicIf struct {
	Cond *BoolExpr
	Body *StmtList
}

// IfStmt has one primary branch, any number of elif branches and an
// optional else body (nil when absent).
type IfStmt struct {
	If      *BasicIf
	ElseIfs []*BasicIf
	Else    *StmtList
}

// ----------------------------------------------------------------------------
// Expressions
// ----------------------------------------------------------------------------

// SimpleExpr holds exactly one of a parenthesized expression or an r-value
type SimpleExpr struct {
	Nested Expr
	Value  RValue
}

// ComplexExpr is `left op right`. Right may itself be a ComplexExpr, so
// chains lean right.
type ComplexExpr struct {
	Left  *SimpleExpr
	Op    token.Token
	Right Expr
}

// BoolExpr is a boolean operand with an optional relation and an optional
// and/or continuation.
//
// Exactly one of First and Nested is set. With Negated the expression is
// `not Nested`; otherwise a set Nested is a parenthesized operand.
type BoolExpr struct {
	Negated   bool
	First     Expr
	Nested    *BoolExpr
	Rel       *token.Token
	Second    Expr
	Connector *token.Token
	Rest      *BoolExpr

	// Start is the first token of the expression
	Start token.Token
}

// LValue is an assignment target `ID(.ID)*`
type LValue struct {
	Path []token.Token
}

// ----------------------------------------------------------------------------
// R-values
// ----------------------------------------------------------------------------

// SimpleRValue is a literal: nil, bool, int, float or string
type SimpleRValue struct {
	Value token.Token
}

// NewRValue is `new ID`
type NewRValue struct {
	New    token.Token
	Struct token.Token
}

// CallRValue is `ID(args)`
type CallRValue struct {
	Fun  token.Token
	Args []Expr
}

// IDRValue is a variable read `ID(.ID)*`
type IDRValue struct {
	Path []token.Token
}

// ----------------------------------------------------------------------------
// Positions and markers
// ----------------------------------------------------------------------------

func (n *StmtList) Pos() (int, int) {
	if len(n.Stmts) == 0 {
		return 1, 1
	}
	return n.Stmts[0].Pos()
}
func (n *ExprStmt) Pos() (int, int)   { return n.Expr.Pos() }
func (n *VarDecl) Pos() (int, int)    { return n.ID.Pos() }
func (n *AssignStmt) Pos() (int, int) { return n.LValue.Pos() }
func (n *StructDecl) Pos() (int, int) { return n.Name.Pos() }
func (n *FunParam) Pos() (int, int)   { return n.Name.Pos() }
func (n *FunDecl) Pos() (int, int)    { return n.Name.Pos() }
func (n *ReturnStmt) Pos() (int, int) { return n.Return.Pos() }
func (n *WhileStmt) Pos() (int, int)  { return n.Cond.Pos() }
func (n *BasicIf) Pos() (int, int)    { return n.Cond.Pos() }
func (n *IfStmt) Pos() (int, int)     { return n.If.Pos() }

func (n *SimpleExpr) Pos() (int, int) {
	if n.Value != nil {
		return n.Value.Pos()
	}
	return n.Nested.Pos()
}
func (n *ComplexExpr) Pos() (int, int) { return n.Left.Pos() }

func (n *BoolExpr) Pos() (int, int) {
	if n.Start.Line > 0 {
		return n.Start.Pos()
	}
	if n.First != nil {
		return n.First.Pos()
	}
	if n.Nested != nil {
		return n.Nested.Pos()
	}
	return 1, 1
}

func (n *LValue) Pos() (int, int)       { return n.Path[0].Pos() }
func (n *SimpleRValue) Pos() (int, int) { return n.Value.Pos() }
func (n *NewRValue) Pos() (int, int)    { return n.New.Pos() }
func (n *CallRValue) Pos() (int, int)   { return n.Fun.Pos() }
func (n *IDRValue) Pos() (int, int)     { return n.Path[0].Pos() }

func (*StmtList) node()     {}
func (*ExprStmt) node()     {}
func (*VarDecl) node()      {}
func (*AssignStmt) node()   {}
func (*StructDecl) node()   {}
func (*FunParam) node()     {}
func (*FunDecl) node()      {}
func (*ReturnStmt) node()   {}
func (*WhileStmt) node()    {}
func (*BasicIf) node()      {}
func (*IfStmt) node()       {}
func (*SimpleExpr) node()   {}
func (*ComplexExpr) node()  {}
func (*BoolExpr) node()     {}
func (*LValue) node()       {}
func (*SimpleRValue) node() {}
func (*NewRValue) node()    {}
func (*CallRValue) node()   {}
func (*IDRValue) node()     {}

func (*ExprStmt) stmtNode()   {}
func (*VarDecl) stmtNode()    {}
func (*AssignStmt) stmtNode() {}
func (*StructDecl) stmtNode() {}
func (*FunDecl) stmtNode()    {}
func (*ReturnStmt) stmtNode() {}
func (*WhileStmt) stmtNode()  {}
func (*IfStmt) stmtNode()     {}

func (*SimpleExpr) exprNode()  {}
func (*ComplexExpr) exprNode() {}

func (*SimpleRValue) rvalueNode() {}
func (*NewRValue) rvalueNode()    {}
func (*CallRValue) rvalueNode()   {}
func (*IDRValue) rvalueNode()     {}

// PathString joins a dotted path for messages
func PathString(path []token.Token) string {
	s := ""
	for i, tok := range path {
		if i > 0 {
			s += "."
		}
		s += tok.Lexeme
	}
	return s
}
