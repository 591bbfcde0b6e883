package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// run executes the command tree with fresh flag values
func run(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("MYPL_CONFIG", "")
	cfgFile, verbose, logFormat, noColor = "", false, "", false
	checkWatch, fmtCheck, fmtWrite = false, false, false

	var out, errOut bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--no-color"}, args...))
	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestLex(t *testing.T) {
	out, _, err := run(t, "x;", "lex")
	if err != nil {
		t.Fatalf("lex error = %v", err)
	}
	if !strings.Contains(out, "'x' 1:1") {
		t.Errorf("lex output = %q, want token x at 1:1", out)
	}
}

func TestCheck(t *testing.T) {
	out, _, err := run(t, "var x = 1;\nvar y = x + 2;\n", "check", "-")
	if err != nil {
		t.Fatalf("check error = %v", err)
	}
	if !strings.HasPrefix(out, "ok <stdin> (run ") {
		t.Errorf("check output = %q", out)
	}
}

func TestCheck_TypeError(t *testing.T) {
	_, stderr, err := run(t, "var x = 1;\nset x = \"a\";\n", "check")
	if !errors.Is(err, errReported) {
		t.Fatalf("check error = %v, want errReported", err)
	}
	for _, want := range []string{"<stdin>:2:", "type error [TYPE_MISMATCH]", "set x = \"a\";", "^"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, stderr)
		}
	}
}

func TestCheck_WatchNeedsFile(t *testing.T) {
	if _, _, err := run(t, "", "check", "--watch"); err == nil {
		t.Error("check --watch without a file should fail")
	}
}

func TestFmt(t *testing.T) {
	out, _, err := run(t, "var x=1;  set x =x+1;", "fmt")
	if err != nil {
		t.Fatalf("fmt error = %v", err)
	}
	if want := "var x = 1;\nset x = x + 1;\n"; out != want {
		t.Errorf("fmt output = %q, want %q", out, want)
	}
}

func TestFmt_Check(t *testing.T) {
	if _, _, err := run(t, "var x = 1;\n", "fmt", "--check"); err != nil {
		t.Errorf("fmt --check on formatted input error = %v", err)
	}

	_, stderr, err := run(t, "var x=1;", "fmt", "--check")
	if !errors.Is(err, errReported) {
		t.Errorf("fmt --check error = %v, want errReported", err)
	}
	if !strings.Contains(stderr, "is not formatted") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestFmt_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.mypl")
	if err := os.WriteFile(path, []byte("var x=1;"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := run(t, "", "fmt", "-w", path); err != nil {
		t.Fatalf("fmt -w error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "var x = 1;\n" {
		t.Errorf("rewritten file = %q", data)
	}
}

func TestParse(t *testing.T) {
	out, _, err := run(t, "var x = 1;", "parse")
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}
	if !strings.Contains(out, "VarDecl") {
		t.Errorf("parse output = %q, want VarDecl", out)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "", "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(out, "mypl v") || !strings.Contains(out, "Go Version:") {
		t.Errorf("version output = %q", out)
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.toml")
	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(good, []byte("[output]\nindent = \"\\t\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("[general]\nlog_level = \"chatty\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := run(t, "while x do y; end", "--config", good, "fmt")
	if err != nil {
		t.Fatalf("fmt with config error = %v", err)
	}
	if want := "while x do\n\ty;\nend\n"; out != want {
		t.Errorf("fmt output = %q, want %q", out, want)
	}

	if _, _, err := run(t, "", "--config", bad, "version"); err == nil {
		t.Error("invalid config should fail")
	}
}

func TestBuiltinsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "builtins.yaml")
	table := "return: int\nfunctions:\n  - name: beep\n    params: []\n    returns: int\n"
	if err := os.WriteFile(path, []byte(table), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := filepath.Join(t.TempDir(), "mypl.toml")
	if err := os.WriteFile(cfg, []byte("[checker]\nbuiltins_file = \""+path+"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := run(t, "beep();", "--config", cfg, "check"); err != nil {
		t.Errorf("check with custom builtins error = %v", err)
	}
	if _, _, err := run(t, "print(\"x\");", "--config", cfg, "check"); !errors.Is(err, errReported) {
		t.Errorf("print should be undefined with custom builtins, error = %v", err)
	}
}
