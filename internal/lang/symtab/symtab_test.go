package symtab

import (
	"errors"
	"testing"

	"github.com/msto63/mypl/internal/lang/types"
)

func TestTable_LookupInnermostFirst(t *testing.T) {
	tbl := New()
	tbl.Push()
	tbl.Declare("x")
	if err := tbl.SetType("x", VarInfo(types.IntType)); err != nil {
		t.Fatalf("SetType() error = %v", err)
	}

	tbl.Push()
	tbl.Declare("x")
	_ = tbl.SetType("x", VarInfo(types.StringType))

	if info, _ := tbl.Lookup("x"); info.Type != types.StringType {
		t.Errorf("Lookup(x) in inner scope = %v, want string", info.Type)
	}

	tbl.Pop()
	if info, _ := tbl.Lookup("x"); info.Type != types.IntType {
		t.Errorf("Lookup(x) after Pop = %v, want int", info.Type)
	}
}

func TestTable_DeclaredLocally(t *testing.T) {
	tbl := New()
	if tbl.DeclaredLocally("a") {
		t.Error("DeclaredLocally() on empty table should be false")
	}
	tbl.Push()
	tbl.Declare("a")
	tbl.Push()

	if tbl.DeclaredLocally("a") {
		t.Error("DeclaredLocally(a) = true in a new scope")
	}
	if !tbl.Exists("a") {
		t.Error("Exists(a) = false, want true")
	}
	if tbl.Exists("b") {
		t.Error("Exists(b) = true, want false")
	}
}

func TestTable_Define(t *testing.T) {
	tbl := New()
	tbl.Push()
	tbl.Define("x", VarInfo(types.IntType))
	tbl.Push()
	tbl.Define("x", VarInfo(types.BoolType))

	if !tbl.DeclaredLocally("x") {
		t.Error("DeclaredLocally(x) = false after Define")
	}
	if info, _ := tbl.Lookup("x"); info.Class != Variable || info.Type != types.BoolType {
		t.Errorf("Lookup(x) = %v %v, want var bool", info.Class, info.Type)
	}
	tbl.Pop()
	if info, _ := tbl.Lookup("x"); info.Type != types.IntType {
		t.Errorf("Lookup(x) after Pop = %v, want int", info.Type)
	}
}

func TestTable_DefineNoScopePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Define() with no open scope should panic")
		}
	}()
	New().Define("x", VarInfo(types.IntType))
}

func TestTable_SetTypeUndeclared(t *testing.T) {
	tbl := New()
	tbl.Push()
	if err := tbl.SetType("ghost", VarInfo(types.IntType)); err == nil {
		t.Error("SetType() on an undeclared name should fail")
	}
}

func TestTable_SetTypeUpdatesInnermostHolder(t *testing.T) {
	tbl := New()
	tbl.Push()
	tbl.Declare("f")
	tbl.Push()

	sig := &types.Signature{Return: types.IntType}
	if err := tbl.SetType("f", FunInfo(sig)); err != nil {
		t.Fatalf("SetType() error = %v", err)
	}
	tbl.Pop()

	info, ok := tbl.Lookup("f")
	if !ok || info.Class != Function || info.Signature != sig {
		t.Errorf("Lookup(f) = %v, %v, want function binding", info, ok)
	}
}

func TestTable_Scoped(t *testing.T) {
	tbl := New()
	tbl.Push()

	boom := errors.New("boom")
	err := tbl.Scoped(func() error {
		if tbl.Depth() != 2 {
			t.Errorf("Depth() inside Scoped = %d, want 2", tbl.Depth())
		}
		tbl.Declare("tmp")
		return boom
	})

	if !errors.Is(err, boom) {
		t.Errorf("Scoped() error = %v, want %v", err, boom)
	}
	if tbl.Depth() != 1 {
		t.Errorf("Depth() after failed Scoped = %d, want 1", tbl.Depth())
	}
	if tbl.Exists("tmp") {
		t.Error("binding leaked out of Scoped")
	}
}

func TestTable_PopEmpty(t *testing.T) {
	tbl := New()
	tbl.Pop()
	if tbl.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", tbl.Depth())
	}
}

func TestTable_String(t *testing.T) {
	tbl := New()
	tbl.Push()
	tbl.Declare("b")
	_ = tbl.SetType("b", VarInfo(types.BoolType))
	tbl.Declare("a")
	shape := types.NewShape("P")
	shape.Add("x", types.IntType)
	_ = tbl.SetType("a", StructInfo(shape))

	want := "scope 0:\n  struct a: struct P{x: int}\n  var b: bool\n"
	if got := tbl.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
