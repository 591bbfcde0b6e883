package inspector

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/msto63/mypl/internal/lang/frontend"
	"github.com/msto63/mypl/internal/lang/lexer"
	mypllog "github.com/msto63/mypl/pkg/core/log"
)

const src = "var x = 1;\nvar y = x + 2;\n"

func compiled(t *testing.T) Config {
	t.Helper()
	e, err := frontend.New(frontend.Options{Logger: mypllog.Discard()})
	if err != nil {
		t.Fatalf("frontend.New() error = %v", err)
	}
	res, err := e.Compile(context.Background(), "prog.mypl", src)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	return Config{Name: "prog.mypl", Source: src, Result: res, Tokens: toks}
}

func TestSourceView(t *testing.T) {
	want := "1 │ var x = 1;\n2 │ var y = x + 2;\n"
	if got := sourceView(src); got != want {
		t.Errorf("sourceView() = %q, want %q", got, want)
	}
}

func TestTokensView(t *testing.T) {
	toks, _ := lexer.Tokenize("x;")
	got := tokensView(toks)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("tokensView() = %q, want 3 lines", got)
	}
	if !strings.HasPrefix(lines[0], "1:1") || !strings.Contains(lines[0], "ID") || !strings.HasSuffix(lines[0], "x") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[2], "EOS") {
		t.Errorf("last line = %q, want EOS", lines[2])
	}
	if tokensView(nil) != "no tokens\n" {
		t.Error("tokensView(nil) should report no tokens")
	}
}

func TestTypesView(t *testing.T) {
	cfg := compiled(t)
	got := typesView(cfg.Result.Types)

	for _, want := range []string{"ComplexExpr", "IDRValue", "int"} {
		if !strings.Contains(got, want) {
			t.Errorf("typesView() missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "VarDecl") || strings.Contains(got, "StmtList") {
		t.Errorf("typesView() should list only expressions:\n%s", got)
	}
	if lines := strings.Split(got, "\n"); !strings.HasPrefix(lines[0], "1:9") {
		t.Errorf("typesView() first row = %q, want position 1:9", lines[0])
	}
	if typesView(nil) != "no type information\n" {
		t.Error("typesView(nil) should report missing types")
	}
}

func TestAstView(t *testing.T) {
	cfg := compiled(t)
	if got := astView(cfg.Result.Program); !strings.Contains(got, "VarDecl") {
		t.Errorf("astView() missing VarDecl:\n%s", got)
	}
	if astView(nil) != "no syntax tree\n" {
		t.Error("astView(nil) should report missing tree")
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModel_TabSwitching(t *testing.T) {
	m := New(compiled(t))
	m = update(m, tea.WindowSizeMsg{Width: 100, Height: 30})

	tests := []struct {
		msg  tea.Msg
		want Tab
	}{
		{runes("3"), TabAST},
		{tea.KeyMsg{Type: tea.KeyTab}, TabTypes},
		{tea.KeyMsg{Type: tea.KeyTab}, TabSource},
		{tea.KeyMsg{Type: tea.KeyShiftTab}, TabTypes},
		{runes("2"), TabTokens},
		{runes("x"), TabTokens},
	}
	for _, tt := range tests {
		m = update(m, tt.msg)
		if m.Active() != tt.want {
			t.Errorf("after %v Active() = %v, want %v", tt.msg, m.Active(), tt.want)
		}
	}
}

func TestModel_Quit(t *testing.T) {
	m := New(compiled(t))
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestModel_View(t *testing.T) {
	m := New(compiled(t))
	if got := m.View(); got != "Loading inspector..." {
		t.Errorf("View() before sizing = %q", got)
	}

	m = update(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	view := m.View()
	for _, want := range []string{Logo, "prog.mypl", "Source", "Types", "var y = x + 2;"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestModel_ErrorStatus(t *testing.T) {
	m := New(Config{Name: "bad.mypl", Source: "var x = ;", Err: errors.New("parser error: boom")})
	if got := m.status(); got != "parser error: boom" {
		t.Errorf("status() = %q", got)
	}
	if m.contents[TabTypes] != "no type information\n" {
		t.Errorf("Types tab = %q", m.contents[TabTypes])
	}
}
