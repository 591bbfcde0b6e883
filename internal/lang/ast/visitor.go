// File: visitor.go
// Title: AST Visitor Contract
// Description: Double-dispatch contract for AST passes. A pass implements
//              Visitor[R] with one method per node kind and drives the
//              traversal through Accept; each visit returns its result
//              explicitly.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-12
//
// Change History:
// - 2026-10-12 v0.1.0: Initial generic visitor

package ast

import "fmt"

// Visitor is implemented by AST passes. R is the per-node result, for
// example the synthesized type in the type checker.
type Visitor[R any] interface {
	VisitStmtList(*StmtList) (R, error)
	VisitExprStmt(*ExprStmt) (R, error)
	VisitVarDecl(*VarDecl) (R, error)
	VisitAssignStmt(*AssignStmt) (R, error)
	VisitStructDecl(*StructDecl) (R, error)
	VisitFunDecl(*FunDecl) (R, error)
	VisitReturnStmt(*ReturnStmt) (R, error)
	VisitWhileStmt(*WhileStmt) (R, error)
	VisitIfStmt(*IfStmt) (R, error)
	VisitBasicIf(*BasicIf) (R, error)
	VisitSimpleExpr(*SimpleExpr) (R, error)
	VisitComplexExpr(*ComplexExpr) (R, error)
	VisitBoolExpr(*BoolExpr) (R, error)
	VisitLValue(*LValue) (R, error)
	VisitFunParam(*FunParam) (R, error)
	VisitSimpleRValue(*SimpleRValue) (R, error)
	VisitNewRValue(*NewRValue) (R, error)
	VisitCallRValue(*CallRValue) (R, error)
	VisitIDRValue(*IDRValue) (R, error)
}

// Accept dispatches n to the matching method of v
func Accept[R any](n Node, v Visitor[R]) (R, error) {
	switch n := n.(type) {
	case *StmtList:
		return v.VisitStmtList(n)
	case *ExprStmt:
		return v.VisitExprStmt(n)
	case *VarDecl:
		return v.VisitVarDecl(n)
	case *AssignStmt:
		return v.VisitAssignStmt(n)
	case *StructDecl:
		return v.VisitStructDecl(n)
	case *FunDecl:
		return v.VisitFunDecl(n)
	case *ReturnStmt:
		return v.VisitReturnStmt(n)
	case *WhileStmt:
		return v.VisitWhileStmt(n)
	case *IfStmt:
		return v.VisitIfStmt(n)
	case *BasicIf:
		return v.VisitBasicIf(n)
	case *SimpleExpr:
		return v.VisitSimpleExpr(n)
	case *ComplexExpr:
		return v.VisitComplexExpr(n)
	case *BoolExpr:
		return v.VisitBoolExpr(n)
	case *LValue:
		return v.VisitLValue(n)
	case *FunParam:
		return v.VisitFunParam(n)
	case *SimpleRValue:
		return v.VisitSimpleRValue(n)
	case *NewRValue:
		return v.VisitNewRValue(n)
	case *CallRValue:
		return v.VisitCallRValue(n)
	case *IDRValue:
		return v.VisitIDRValue(n)
	}
	var zero R
	return zero, fmt.Errorf("ast: unknown node type %T", n)
}

// Inspect walks the tree rooted at n in depth-first source order, calling fn
// for each node. Children are skipped when fn returns false.
func Inspect(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch n := n.(type) {
	case *StmtList:
		for _, s := range n.Stmts {
			Inspect(s, fn)
		}
	case *ExprStmt:
		Inspect(n.Expr, fn)
	case *VarDecl:
		Inspect(n.Init, fn)
	case *AssignStmt:
		Inspect(n.LValue, fn)
		Inspect(n.RHS, fn)
	case *StructDecl:
		for _, f := range n.Fields {
			Inspect(f, fn)
		}
	case *FunDecl:
		for _, p := range n.Params {
			Inspect(p, fn)
		}
		Inspect(n.Body, fn)
	case *ReturnStmt:
		if n.Expr != nil {
			Inspect(n.Expr, fn)
		}
	case *WhileStmt:
		Inspect(n.Cond, fn)
		Inspect(n.Body, fn)
	case *IfStmt:
		Inspect(n.If, fn)
		for _, b := range n.ElseIfs {
			Inspect(b, fn)
		}
		if n.Else != nil {
			Inspect(n.Else, fn)
		}
	case *BasicIf:
		Inspect(n.Cond, fn)
		Inspect(n.Body, fn)
	case *SimpleExpr:
		if n.Nested != nil {
			Inspect(n.Nested, fn)
		} else {
			Inspect(n.Value, fn)
		}
	case *ComplexExpr:
		Inspect(n.Left, fn)
		Inspect(n.Right, fn)
	case *BoolExpr:
		if n.Nested != nil {
			Inspect(n.Nested, fn)
		} else {
			Inspect(n.First, fn)
		}
		if n.Second != nil {
			Inspect(n.Second, fn)
		}
		if n.Rest != nil {
			Inspect(n.Rest, fn)
		}
	case *CallRValue:
		for _, a := range n.Args {
			Inspect(a, fn)
		}
	}
}
