package frontend

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/msto63/mypl/internal/lang/checker"
	"github.com/msto63/mypl/internal/lang/diag"
	"github.com/msto63/mypl/internal/lang/token"
	mypllog "github.com/msto63/mypl/pkg/core/log"
)

func newEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = mypllog.Discard()
	}
	e, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return e
}

func TestNew_InvalidMaxSourceLength(t *testing.T) {
	if _, err := New(Options{Logger: mypllog.Discard(), MaxSourceLength: -1}); err == nil {
		t.Error("New() with negative MaxSourceLength should fail")
	}
}

func TestEngine_Compile(t *testing.T) {
	e := newEngine(t, Options{})

	res, err := e.Compile(context.Background(), "ok.mypl", `var x = 1; println(itos(x));`)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if _, err := uuid.Parse(res.RunID); err != nil {
		t.Errorf("RunID = %q is not a uuid: %v", res.RunID, err)
	}
	if res.Name != "ok.mypl" {
		t.Errorf("Name = %v, want ok.mypl", res.Name)
	}
	if len(res.Program.Stmts) != 2 || res.Types.Len() == 0 {
		t.Errorf("Compile() result missing program or types: %+v", res)
	}

	again, err := e.Compile(context.Background(), "", `var y = 2;`)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if again.RunID == res.RunID {
		t.Error("two runs share a run id")
	}
	if again.Name != "<input>" {
		t.Errorf("Name = %v, want <input>", again.Name)
	}
}

func TestEngine_CompileErrors(t *testing.T) {
	e := newEngine(t, Options{})

	tests := []struct {
		name  string
		src   string
		phase error
		code  diag.Code
	}{
		{"lexical", `var x = 0123;`, diag.ErrLexical, diag.CodeLeadingZero},
		{"syntax", `var x = ;`, diag.ErrSyntax, diag.CodeUnexpectedToken},
		{"type", `var x = 1; set x = "s";`, diag.ErrType, diag.CodeTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Compile(context.Background(), "bad.mypl", tt.src)
			if !errors.Is(err, tt.phase) {
				t.Errorf("Compile() error = %v, want %v", err, tt.phase)
			}
			if got := diag.GetCode(err); got != tt.code {
				t.Errorf("Compile() code = %v, want %v", got, tt.code)
			}
		})
	}
}

func TestEngine_CompileCancelled(t *testing.T) {
	e := newEngine(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := e.Compile(ctx, "x", `var x = 1;`); !errors.Is(err, context.Canceled) {
		t.Errorf("Compile() error = %v, want context.Canceled", err)
	}
}

func TestEngine_SourceTooLarge(t *testing.T) {
	e := newEngine(t, Options{MaxSourceLength: 8})

	if _, err := e.Compile(context.Background(), "big", `var x = 12345;`); !errors.Is(err, ErrSourceTooLarge) {
		t.Errorf("Compile() error = %v, want ErrSourceTooLarge", err)
	}
	if _, err := e.Tokenize(`var x = 12345;`); !errors.Is(err, ErrSourceTooLarge) {
		t.Errorf("Tokenize() error = %v, want ErrSourceTooLarge", err)
	}
}

func TestEngine_Tokenize(t *testing.T) {
	e := newEngine(t, Options{})
	toks, err := e.Tokenize(`x;`)
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	want := []token.Kind{token.ID, token.SEMICOLON, token.EOS}
	if len(toks) != len(want) {
		t.Fatalf("Tokenize() = %v, want %d tokens", toks, len(want))
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d = %v, want %v", i, toks[i].Kind, k)
		}
	}
}

func TestEngine_Format(t *testing.T) {
	e := newEngine(t, Options{})
	got, err := e.Format(`while x do set x = false; end`)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if want := "while x do\n    set x = false;\nend\n"; got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestEngine_CustomBuiltins(t *testing.T) {
	b, err := checker.LoadBuiltins(strings.NewReader("return: int\nfunctions:\n  - name: beep\n"))
	if err != nil {
		t.Fatalf("LoadBuiltins() error = %v", err)
	}
	e := newEngine(t, Options{Builtins: b})

	if _, err := e.Compile(context.Background(), "b", `beep();`); err != nil {
		t.Errorf("Compile() error = %v", err)
	}
	if _, err := e.Compile(context.Background(), "b", `println("x");`); !diag.HasCode(err, diag.CodeUndefinedFunction) {
		t.Errorf("Compile() error = %v, want UNDEFINED_FUNCTION", err)
	}
}

func TestEngine_RunIDLogged(t *testing.T) {
	var buf strings.Builder
	logger := mypllog.NewWithConfig(mypllog.Config{
		Level:  mypllog.LevelDebug,
		Format: mypllog.FormatText,
		Output: &buf,
	})
	e := newEngine(t, Options{Logger: logger})

	res, err := e.Compile(context.Background(), "log.mypl", `var x = 1;`)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "(req="+res.RunID+")") {
		t.Errorf("log output does not carry run id %s:\n%s", res.RunID, out)
	}
	if !strings.Contains(out, "compile completed") {
		t.Errorf("log output missing compile timing:\n%s", out)
	}
}
