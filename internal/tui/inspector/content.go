// ============================================================================
// MyPL - Front End Toolchain
// ============================================================================
//
// Package:     inspector
// Description: Plain text builders for the inspector tabs
// Author:      msto63
// Created:     2026-10-13
// License:     MIT
// ============================================================================

package inspector

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kr/pretty"

	"github.com/msto63/mypl/internal/lang/ast"
	"github.com/msto63/mypl/internal/lang/checker"
	"github.com/msto63/mypl/internal/lang/token"
)

// sourceView numbers every source line
func sourceView(src string) string {
	lines := strings.Split(strings.TrimRight(src, "\n"), "\n")
	width := len(fmt.Sprint(len(lines)))

	var b strings.Builder
	for i, line := range lines {
		fmt.Fprintf(&b, "%*d │ %s\n", width, i+1, line)
	}
	return b.String()
}

// tokensView lists tokens as "line:col  KIND  lexeme"
func tokensView(toks []token.Token) string {
	if len(toks) == 0 {
		return "no tokens\n"
	}
	var b strings.Builder
	for _, tok := range toks {
		pos := fmt.Sprintf("%d:%d", tok.Line, tok.Column)
		fmt.Fprintf(&b, "%-8s %-18s %s\n", pos, tok.Kind, tok.Lexeme)
	}
	return b.String()
}

// astView dumps the tree with kr/pretty
func astView(prog *ast.StmtList) string {
	if prog == nil {
		return "no syntax tree\n"
	}
	return pretty.Sprintf("%# v\n", prog)
}

// typesView lists the synthesized type of each expression, condition,
// r-value and l-value in source order
func typesView(ann *checker.Annotations) string {
	if ann == nil {
		return "no type information\n"
	}

	type row struct {
		line, col int
		kind      string
		typ       string
	}
	var rows []row
	for _, e := range ann.Entries() {
		switch e.Node.(type) {
		case ast.Expr, ast.RValue, *ast.LValue, *ast.BoolExpr:
		default:
			continue
		}
		line, col := e.Node.Pos()
		rows = append(rows, row{line, col, nodeKind(e.Node), e.Type.String()})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].line != rows[j].line {
			return rows[i].line < rows[j].line
		}
		return rows[i].col < rows[j].col
	})

	if len(rows) == 0 {
		return "no expressions\n"
	}
	var b strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&b, "%-8s %-14s %s\n", fmt.Sprintf("%d:%d", r.line, r.col), r.kind, r.typ)
	}
	return b.String()
}

func nodeKind(n ast.Node) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast.")
}
