package checker

import (
	"github.com/msto63/mypl/internal/lang/ast"
	"github.com/msto63/mypl/internal/lang/types"
)

// Entry pairs a node with its synthesized type
type Entry struct {
	Node ast.Node
	Type types.Type
}

// Annotations is the side table produced by a successful check. The tree
// itself is never modified.
type Annotations struct {
	byNode  map[ast.Node]types.Type
	entries []Entry
}

func newAnnotations() *Annotations {
	return &Annotations{byNode: make(map[ast.Node]types.Type)}
}

func (a *Annotations) record(n ast.Node, t types.Type) {
	if _, seen := a.byNode[n]; !seen {
		a.entries = append(a.entries, Entry{Node: n, Type: t})
	}
	a.byNode[n] = t
}

// TypeOf returns the synthesized type of n
func (a *Annotations) TypeOf(n ast.Node) (types.Type, bool) {
	t, ok := a.byNode[n]
	return t, ok
}

// Len returns the number of annotated nodes
func (a *Annotations) Len() int {
	return len(a.entries)
}

// Entries returns annotations in completion order: children precede their
// parents.
func (a *Annotations) Entries() []Entry {
	out := make([]Entry, len(a.entries))
	copy(out, a.entries)
	return out
}
