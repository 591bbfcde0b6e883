package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/msto63/mypl/internal/lang/diag"
)

func TestRenderer_Diagnostic(t *testing.T) {
	src := "var a = 1;\nset a = \"x\";\n"
	r := renderer{}

	tests := []struct {
		name string
		d    *diag.Error
		want string
	}{
		{
			"type error",
			diag.New(diag.CodeTypeMismatch, 2, 5, "boom"),
			"prog.mypl:2:5: type error [TYPE_MISMATCH]: boom\n  set a = \"x\";\n      ^\n",
		},
		{
			"first column",
			diag.New(diag.CodeUnexpectedToken, 1, 1, "unexpected var"),
			"prog.mypl:1:1: parser error [UNEXPECTED_TOKEN]: unexpected var\n  var a = 1;\n  ^\n",
		},
		{
			"line out of range",
			diag.New(diag.CodeUnexpectedChar, 9, 1, "bad"),
			"prog.mypl:9:1: lexer error [UNEXPECTED_CHARACTER]: bad\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Diagnostic("prog.mypl", src, tt.d); got != tt.want {
				t.Errorf("Diagnostic() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderer_Error(t *testing.T) {
	r := renderer{}
	if _, ok := r.Error("x", "", errors.New("plain")); ok {
		t.Error("Error() should reject errors without a diagnostic")
	}

	wrapped := errors.Join(errors.New("context"), diag.New(diag.CodeNotAValue, 1, 3, "oops"))
	out, ok := r.Error("x", "a b c", wrapped)
	if !ok {
		t.Fatal("Error() should find a wrapped diagnostic")
	}
	if !strings.HasPrefix(out, "x:1:3: type error [NOT_A_VALUE]: oops") {
		t.Errorf("Error() = %q", out)
	}
}

func TestCaret(t *testing.T) {
	tests := []struct {
		line string
		col  int
		want string
	}{
		{"abc", 1, "^"},
		{"abc", 3, "  ^"},
		{"\tx = 1;", 2, "\t^"},
		{"ab", 5, "  ^"},
	}

	for _, tt := range tests {
		if got := caret(tt.line, tt.col); got != tt.want {
			t.Errorf("caret(%q, %d) = %q, want %q", tt.line, tt.col, got, tt.want)
		}
	}
}

func TestSourceLine(t *testing.T) {
	src := "one\r\ntwo\n"
	if got, ok := sourceLine(src, 1); !ok || got != "one" {
		t.Errorf("sourceLine(1) = %q, %v, want one", got, ok)
	}
	if got, ok := sourceLine(src, 2); !ok || got != "two" {
		t.Errorf("sourceLine(2) = %q, %v, want two", got, ok)
	}
	if _, ok := sourceLine(src, 0); ok {
		t.Error("sourceLine(0) should fail")
	}
}
