// File: symtab.go
// Title: Scoped Symbol Table
// Description: Stack of scopes mapping identifiers to type information.
//              Lookups search innermost to outermost; declarations always
//              target the innermost scope.
// Author: msto63
// Version: v0.1.1
// Created: 2026-10-12
// Modified: 2026-10-14
//
// Change History:
// - 2026-10-12 v0.1.0: Initial implementation
// - 2026-10-14 v0.1.1: Define combines Declare and SetType

package symtab

import (
	"fmt"
	"sort"
	"strings"

	"github.com/msto63/mypl/internal/lang/types"
)

// Class distinguishes what an identifier is bound to
type Class int

const (
	Unresolved Class = iota
	Variable
	StructType
	Function
)

func (c Class) String() string {
	switch c {
	case Variable:
		return "var"
	case StructType:
		return "struct"
	case Function:
		return "fun"
	}
	return "unresolved"
}

// Info is the type information bound to an identifier. Exactly one of
// Type, Shape and Signature is meaningful, selected by Class.
type Info struct {
	Class     Class
	Type      types.Type
	Shape     *types.Shape
	Signature *types.Signature
}

// VarInfo binds a variable of type t
func VarInfo(t types.Type) Info {
	return Info{Class: Variable, Type: t}
}

// StructInfo binds a struct type
func StructInfo(s *types.Shape) Info {
	return Info{Class: StructType, Shape: s}
}

// FunInfo binds a function
func FunInfo(sig *types.Signature) Info {
	return Info{Class: Function, Signature: sig}
}

func (i Info) String() string {
	switch i.Class {
	case Variable:
		return i.Type.String()
	case StructType:
		if i.Shape != nil {
			return i.Shape.String()
		}
	case Function:
		if i.Signature != nil {
			return i.Signature.String()
		}
	}
	return i.Class.String()
}

type scope map[string]Info

// Table is a stack of scopes. It is owned by a single checking run.
type Table struct {
	scopes []scope
}

// New returns an empty table with no scopes
func New() *Table {
	return &Table{}
}

// Push opens a new innermost scope
func (t *Table) Push() {
	t.scopes = append(t.scopes, make(scope))
}

// Pop discards the innermost scope; it is a no-op on an empty table
func (t *Table) Pop() {
	if len(t.scopes) > 0 {
		t.scopes = t.scopes[:len(t.scopes)-1]
	}
}

// Depth returns the number of open scopes
func (t *Table) Depth() int {
	return len(t.scopes)
}

// Scoped runs fn inside a fresh scope and pops it afterwards, also when fn
// fails.
func (t *Table) Scoped(fn func() error) error {
	t.Push()
	defer t.Pop()
	return fn()
}

// Declare binds id in the innermost scope with unresolved information,
// shadowing any outer binding. It panics when no scope is open.
func (t *Table) Declare(id string) {
	if len(t.scopes) == 0 {
		panic("symtab: Declare with no open scope")
	}
	t.scopes[len(t.scopes)-1][id] = Info{}
}

// Define declares id in the innermost scope and records info in one step
func (t *Table) Define(id string, info Info) {
	if len(t.scopes) == 0 {
		panic("symtab: Define with no open scope")
	}
	t.scopes[len(t.scopes)-1][id] = info
}

// SetType records info for the innermost binding of id
func (t *Table) SetType(id string, info Info) error {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if _, ok := t.scopes[i][id]; ok {
			t.scopes[i][id] = info
			return nil
		}
	}
	return fmt.Errorf("symtab: %q is not declared", id)
}

// Lookup returns the innermost binding of id
func (t *Table) Lookup(id string) (Info, bool) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if info, ok := t.scopes[i][id]; ok {
			return info, true
		}
	}
	return Info{}, false
}

// Exists reports whether id is bound in any open scope
func (t *Table) Exists(id string) bool {
	_, ok := t.Lookup(id)
	return ok
}

// DeclaredLocally reports whether id is bound in the innermost scope
func (t *Table) DeclaredLocally(id string) bool {
	if len(t.scopes) == 0 {
		return false
	}
	_, ok := t.scopes[len(t.scopes)-1][id]
	return ok
}

// String dumps all scopes, outermost first, with names sorted
func (t *Table) String() string {
	var b strings.Builder
	for depth, sc := range t.scopes {
		names := make([]string, 0, len(sc))
		for name := range sc {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Fprintf(&b, "scope %d:\n", depth)
		for _, name := range names {
			fmt.Fprintf(&b, "  %s %s: %s\n", sc[name].Class, name, sc[name])
		}
	}
	return b.String()
}
