// File: checker.go
// Title: MyPL Static Type Checker
// Description: Single pass visitor over a parsed program that drives the
//              symbol table to enforce static typing, struct shapes and
//              function signatures. Each visit returns the synthesized type
//              of its node; the first violation aborts the pass.
// Author: msto63
// Version: v0.1.2
// Created: 2026-10-12
// Modified: 2026-10-14
//
// Change History:
// - 2026-10-12 v0.1.0: Initial checker implementation
// - 2026-10-13 v0.1.1: Record synthesized types in Annotations
// - 2026-10-14 v0.1.2: Function bodies get their own scope, duplicate
//                      built-ins are rejected

package checker

import (
	"fmt"

	"github.com/msto63/mypl/internal/lang/ast"
	"github.com/msto63/mypl/internal/lang/diag"
	"github.com/msto63/mypl/internal/lang/symtab"
	"github.com/msto63/mypl/internal/lang/token"
	"github.com/msto63/mypl/internal/lang/types"
	mypllog "github.com/msto63/mypl/pkg/core/log"
)

// returnBinding is the implicit identifier holding the expected return type
const returnBinding = "return"

// Options configures the checker
type Options struct {
	Logger   *mypllog.Logger
	Builtins *Builtins
}

// Checker validates MyPL programs. A Checker may be reused; every Check
// call owns a fresh symbol table.
type Checker struct {
	logger   *mypllog.Logger
	builtins *Builtins

	table *symtab.Table
	ann   *Annotations
}

var _ ast.Visitor[types.Type] = (*Checker)(nil)

// New creates a checker
func New(opts Options) *Checker {
	if opts.Logger == nil {
		opts.Logger = mypllog.GetDefault()
	}
	if opts.Builtins == nil {
		opts.Builtins = DefaultBuiltins()
	}
	return &Checker{
		logger:   opts.Logger.WithField("component", "checker"),
		builtins: opts.Builtins,
	}
}

// Check type-checks prog and returns the type of every visited node
func (c *Checker) Check(prog *ast.StmtList) (*Annotations, error) {
	c.logger.Debug("Starting type check", mypllog.Fields{
		"statements": len(prog.Stmts),
		"builtins":   len(c.builtins.Functions),
	})

	c.table = symtab.New()
	c.ann = newAnnotations()
	defer func() { c.table = nil }()

	c.table.Push()
	for _, fn := range c.builtins.Functions {
		if fn.Name == returnBinding || c.table.DeclaredLocally(fn.Name) {
			return nil, fmt.Errorf("%w: duplicate function %q", ErrInvalidBuiltins, fn.Name)
		}
		c.table.Define(fn.Name, symtab.FunInfo(fn.Signature))
	}
	c.table.Define(returnBinding, symtab.VarInfo(c.builtins.Return))

	err := c.table.Scoped(func() error {
		_, err := c.visit(prog)
		return err
	})
	if err != nil {
		c.logger.Warn("Type check failed", mypllog.Fields{"error": err.Error()})
		return nil, err
	}

	c.logger.Debug("Type check completed successfully", mypllog.Fields{
		"annotated": c.ann.Len(),
	})
	return c.ann, nil
}

// visit dispatches n and records the synthesized type
func (c *Checker) visit(n ast.Node) (types.Type, error) {
	t, err := ast.Accept[types.Type](n, c)
	if err != nil {
		return types.Type{}, err
	}
	c.ann.record(n, t)
	return t, nil
}

// branch checks an optional condition and a block inside one fresh scope.
// It synthesizes the block's last statement type, or bool when empty.
func (c *Checker) branch(cond *ast.BoolExpr, list *ast.StmtList) (types.Type, error) {
	result := types.BoolType
	err := c.table.Scoped(func() error {
		if cond != nil {
			if _, err := c.visit(cond); err != nil {
				return err
			}
		}
		t, err := c.visit(list)
		if err != nil {
			return err
		}
		if len(list.Stmts) > 0 {
			result = t
		}
		return nil
	})
	return result, err
}

func typeError(code diag.Code, tok token.Token, format string, args ...interface{}) error {
	return diag.New(code, tok.Line, tok.Column, format, args...)
}

func nodeError(code diag.Code, n ast.Node, format string, args ...interface{}) error {
	line, col := n.Pos()
	return diag.New(code, line, col, format, args...)
}

// resolveType maps a type token to a type; struct names must be declared
func (c *Checker) resolveType(tok token.Token) (types.Type, error) {
	switch tok.Kind {
	case token.INTTYPE:
		return types.IntType, nil
	case token.FLOATTYPE:
		return types.FloatType, nil
	case token.BOOLTYPE:
		return types.BoolType, nil
	case token.STRINGTYPE:
		return types.StringType, nil
	case token.NIL:
		return types.NilType, nil
	}
	info, ok := c.table.Lookup(tok.Lexeme)
	if !ok || info.Class != symtab.StructType {
		return types.Type{}, typeError(diag.CodeUndefinedType, tok, "undefined type %q", tok.Lexeme)
	}
	return types.StructOf(tok.Lexeme), nil
}

// assignable reports whether a value of type src may be stored in dst
func assignable(dst, src types.Type) bool {
	return src == dst || (src.IsNil() && dst.IsStruct())
}

// ----------------------------------------------------------------------------
// Statements
// ----------------------------------------------------------------------------

// VisitStmtList visits statements in order; scopes are opened by callers
func (c *Checker) VisitStmtList(n *ast.StmtList) (types.Type, error) {
	last := types.NilType
	for _, s := range n.Stmts {
		t, err := c.visit(s)
		if err != nil {
			return types.Type{}, err
		}
		last = t
	}
	return last, nil
}

func (c *Checker) VisitExprStmt(n *ast.ExprStmt) (types.Type, error) {
	return c.visit(n.Expr)
}

func (c *Checker) VisitVarDecl(n *ast.VarDecl) (types.Type, error) {
	name := n.ID.Lexeme
	if c.table.DeclaredLocally(name) {
		return types.Type{}, typeError(diag.CodeDuplicateDecl, n.ID, "repeat declaration of %q", name)
	}

	initType, err := c.visit(n.Init)
	if err != nil {
		return types.Type{}, err
	}

	varType := initType
	if n.Type != nil {
		declared, err := c.resolveType(*n.Type)
		if err != nil {
			return types.Type{}, err
		}
		if !assignable(declared, initType) {
			return types.Type{}, typeError(diag.CodeTypeMismatch, n.ID,
				"cannot initialize %q of type %s with %s", name, declared, initType)
		}
		varType = declared
	} else if initType.IsNil() {
		return types.Type{}, typeError(diag.CodeAmbiguousType, n.ID,
			"cannot infer type of %q from nil", name)
	}

	c.table.Define(name, symtab.VarInfo(varType))
	return varType, nil
}

func (c *Checker) VisitAssignStmt(n *ast.AssignStmt) (types.Type, error) {
	lhs, err := c.visit(n.LValue)
	if err != nil {
		return types.Type{}, err
	}
	rhs, err := c.visit(n.RHS)
	if err != nil {
		return types.Type{}, err
	}
	if !rhs.IsNil() && rhs != lhs {
		return types.Type{}, nodeError(diag.CodeTypeMismatch, n.LValue,
			"cannot assign %s to %q of type %s", rhs, ast.PathString(n.LValue.Path), lhs)
	}
	return lhs, nil
}

func (c *Checker) VisitStructDecl(n *ast.StructDecl) (types.Type, error) {
	name := n.Name.Lexeme
	if c.table.DeclaredLocally(name) {
		return types.Type{}, typeError(diag.CodeDuplicateDecl, n.Name, "repeat declaration of %q", name)
	}

	// Declared up front so fields may refer to the struct itself
	shape := types.NewShape(name)
	c.table.Define(name, symtab.StructInfo(shape))

	err := c.table.Scoped(func() error {
		for _, f := range n.Fields {
			t, err := c.visit(f)
			if err != nil {
				return err
			}
			shape.Add(f.ID.Lexeme, t)
		}
		return nil
	})
	if err != nil {
		return types.Type{}, err
	}

	c.logger.Trace("Struct declared", mypllog.Fields{"struct": shape.String()})
	return types.NilType, nil
}

func (c *Checker) VisitFunDecl(n *ast.FunDecl) (types.Type, error) {
	name := n.Name.Lexeme
	if c.table.DeclaredLocally(name) {
		return types.Type{}, typeError(diag.CodeDuplicateDecl, n.Name, "repeat declaration of %q", name)
	}

	ret, err := c.resolveType(n.ReturnType)
	if err != nil {
		return types.Type{}, err
	}
	sig := &types.Signature{Return: ret}
	for _, p := range n.Params {
		t, err := c.resolveType(p.Type)
		if err != nil {
			return types.Type{}, err
		}
		sig.Params = append(sig.Params, t)
	}

	// Recorded before the body so recursive calls resolve
	c.table.Define(name, symtab.FunInfo(sig))

	err = c.table.Scoped(func() error {
		c.table.Define(returnBinding, symtab.VarInfo(ret))

		for _, p := range n.Params {
			if _, err := c.visit(p); err != nil {
				return err
			}
		}

		// Body declarations live one scope below the parameters
		var last types.Type
		err := c.table.Scoped(func() error {
			var err error
			last, err = c.visit(n.Body)
			return err
		})
		if err != nil {
			return err
		}
		if !assignable(ret, last) {
			return typeError(diag.CodeReturnMismatch, n.ReturnType,
				"function %q must return %s, body yields %s", name, ret, last)
		}
		return nil
	})
	if err != nil {
		return types.Type{}, err
	}
	return types.NilType, nil
}

func (c *Checker) VisitFunParam(n *ast.FunParam) (types.Type, error) {
	name := n.Name.Lexeme
	if c.table.DeclaredLocally(name) {
		return types.Type{}, typeError(diag.CodeDuplicateDecl, n.Name, "repeat declaration of parameter %q", name)
	}
	t, err := c.resolveType(n.Type)
	if err != nil {
		return types.Type{}, err
	}
	c.table.Define(name, symtab.VarInfo(t))
	return t, nil
}

func (c *Checker) VisitReturnStmt(n *ast.ReturnStmt) (types.Type, error) {
	t := types.NilType
	if n.Expr != nil {
		var err error
		if t, err = c.visit(n.Expr); err != nil {
			return types.Type{}, err
		}
	}
	want, _ := c.table.Lookup(returnBinding)
	if !assignable(want.Type, t) {
		return types.Type{}, typeError(diag.CodeReturnMismatch, n.Return,
			"cannot return %s, expecting %s", t, want.Type)
	}
	return t, nil
}

func (c *Checker) VisitWhileStmt(n *ast.WhileStmt) (types.Type, error) {
	return c.branch(n.Cond, n.Body)
}

func (c *Checker) VisitIfStmt(n *ast.IfStmt) (types.Type, error) {
	result, err := c.visit(n.If)
	if err != nil {
		return types.Type{}, err
	}
	for _, b := range n.ElseIfs {
		if result, err = c.visit(b); err != nil {
			return types.Type{}, err
		}
	}
	if n.Else != nil {
		if result, err = c.branch(nil, n.Else); err != nil {
			return types.Type{}, err
		}
	}
	return result, nil
}

// VisitBasicIf checks one branch; the condition lives in the branch scope
func (c *Checker) VisitBasicIf(n *ast.BasicIf) (types.Type, error) {
	return c.branch(n.Cond, n.Body)
}

// ----------------------------------------------------------------------------
// Expressions
// ----------------------------------------------------------------------------

func (c *Checker) VisitSimpleExpr(n *ast.SimpleExpr) (types.Type, error) {
	if n.Nested != nil {
		return c.visit(n.Nested)
	}
	return c.visit(n.Value)
}

func (c *Checker) VisitComplexExpr(n *ast.ComplexExpr) (types.Type, error) {
	lhs, err := c.visit(n.Left)
	if err != nil {
		return types.Type{}, err
	}
	rhs, err := c.visit(n.Right)
	if err != nil {
		return types.Type{}, err
	}

	op := n.Op
	switch {
	case lhs.Kind == types.Bool || rhs.Kind == types.Bool:
		return types.Type{}, typeError(diag.CodeInvalidBoolOperand, op,
			"invalid bool operand for %q", op.Lexeme)
	case lhs.IsNil() && rhs.IsNil():
		return types.Type{}, typeError(diag.CodeTypeMismatch, op,
			"both operands of %q are nil", op.Lexeme)
	case lhs.IsStruct() || rhs.IsStruct():
		return types.Type{}, typeError(diag.CodeTypeMismatch, op,
			"invalid struct operand for %q", op.Lexeme)
	case (lhs.Kind == types.String || rhs.Kind == types.String) && op.Kind != token.PLUS:
		return types.Type{}, typeError(diag.CodeInvalidStringOp, op,
			"invalid string operator %q", op.Lexeme)
	case op.Kind == token.MODULO && (lhs.Kind != types.Int || rhs.Kind != types.Int):
		return types.Type{}, typeError(diag.CodeInvalidModulo, op,
			"invalid use of modulo on %s and %s", lhs, rhs)
	case !lhs.IsNil() && !rhs.IsNil() && lhs != rhs:
		return types.Type{}, typeError(diag.CodeTypeMismatch, op,
			"mismatched operands %s %s %s", lhs, op.Lexeme, rhs)
	}

	if lhs.IsNil() {
		return rhs, nil
	}
	return lhs, nil
}

func (c *Checker) VisitBoolExpr(n *ast.BoolExpr) (types.Type, error) {
	switch {
	case n.Nested != nil:
		if _, err := c.visit(n.Nested); err != nil {
			return types.Type{}, err
		}

	case n.Rel != nil:
		lhs, err := c.visit(n.First)
		if err != nil {
			return types.Type{}, err
		}
		rhs, err := c.visit(n.Second)
		if err != nil {
			return types.Type{}, err
		}
		if err := checkRelation(*n.Rel, lhs, rhs); err != nil {
			return types.Type{}, err
		}

	default:
		t, err := c.visit(n.First)
		if err != nil {
			return types.Type{}, err
		}
		if t.Kind != types.Bool {
			return types.Type{}, nodeError(diag.CodeNonBoolCondition, n,
				"expecting bool condition, found %s", t)
		}
	}

	if n.Rest != nil {
		if _, err := c.visit(n.Rest); err != nil {
			return types.Type{}, err
		}
	}
	return types.BoolType, nil
}

func checkRelation(rel token.Token, lhs, rhs types.Type) error {
	equality := rel.Kind == token.EQUAL || rel.Kind == token.NOT_EQUAL
	if lhs.IsNil() || rhs.IsNil() {
		if !equality {
			return typeError(diag.CodeInvalidComparison, rel, "invalid comparison %q with nil", rel.Lexeme)
		}
		return nil
	}
	if lhs != rhs {
		return typeError(diag.CodeInvalidComparison, rel,
			"invalid comparison %s %s %s", lhs, rel.Lexeme, rhs)
	}
	if !equality && !lhs.IsOrdered() {
		return typeError(diag.CodeInvalidComparison, rel,
			"operator %q does not apply to %s", rel.Lexeme, lhs)
	}
	return nil
}

func (c *Checker) VisitLValue(n *ast.LValue) (types.Type, error) {
	return c.resolvePath(n.Path)
}

func (c *Checker) VisitIDRValue(n *ast.IDRValue) (types.Type, error) {
	return c.resolvePath(n.Path)
}

// resolvePath walks a dotted path, resolving each struct by name
func (c *Checker) resolvePath(path []token.Token) (types.Type, error) {
	head := path[0]
	info, ok := c.table.Lookup(head.Lexeme)
	if !ok || info.Class == symtab.Unresolved {
		return types.Type{}, typeError(diag.CodeUndefinedVariable, head, "undefined variable %q", head.Lexeme)
	}
	if info.Class != symtab.Variable {
		return types.Type{}, typeError(diag.CodeNotAValue, head, "%s %q used as a value", info.Class, head.Lexeme)
	}

	cur := info.Type
	for i, seg := range path[1:] {
		if !cur.IsStruct() {
			return types.Type{}, typeError(diag.CodeNotAStruct, seg,
				"%q is %s, not a struct", ast.PathString(path[:i+1]), cur)
		}
		st, ok := c.table.Lookup(cur.Name)
		if !ok || st.Class != symtab.StructType {
			return types.Type{}, typeError(diag.CodeUndefinedType, seg, "undefined type %q", cur.Name)
		}
		field, ok := st.Shape.Lookup(seg.Lexeme)
		if !ok {
			return types.Type{}, typeError(diag.CodeUndefinedField, seg,
				"undefined field %q in struct %s", seg.Lexeme, cur.Name)
		}
		cur = field
	}
	return cur, nil
}

func (c *Checker) VisitSimpleRValue(n *ast.SimpleRValue) (types.Type, error) {
	switch n.Value.Kind {
	case token.INTVAL:
		return types.IntType, nil
	case token.FLOATVAL:
		return types.FloatType, nil
	case token.BOOLVAL:
		return types.BoolType, nil
	case token.STRINGVAL:
		return types.StringType, nil
	}
	return types.NilType, nil
}

func (c *Checker) VisitNewRValue(n *ast.NewRValue) (types.Type, error) {
	name := n.Struct.Lexeme
	info, ok := c.table.Lookup(name)
	if !ok {
		return types.Type{}, typeError(diag.CodeUndefinedType, n.Struct, "undefined type %q", name)
	}
	if info.Class != symtab.StructType {
		return types.Type{}, typeError(diag.CodeNotAStruct, n.Struct, "%q is not a struct", name)
	}
	return types.StructOf(name), nil
}

func (c *Checker) VisitCallRValue(n *ast.CallRValue) (types.Type, error) {
	name := n.Fun.Lexeme
	info, ok := c.table.Lookup(name)
	if !ok || info.Class != symtab.Function {
		return types.Type{}, typeError(diag.CodeUndefinedFunction, n.Fun, "undefined function %q", name)
	}

	sig := info.Signature
	if len(n.Args) != len(sig.Params) {
		return types.Type{}, typeError(diag.CodeArityMismatch, n.Fun,
			"function %q expects %d arguments, found %d", name, len(sig.Params), len(n.Args))
	}
	for i, arg := range n.Args {
		t, err := c.visit(arg)
		if err != nil {
			return types.Type{}, err
		}
		if !assignable(sig.Params[i], t) {
			return types.Type{}, nodeError(diag.CodeTypeMismatch, arg,
				"argument %d of %q must be %s, found %s", i+1, name, sig.Params[i], t)
		}
	}
	return sig.Return, nil
}
