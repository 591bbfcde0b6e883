package printer

import (
	"errors"
	"strings"
	"testing"

	"github.com/msto63/mypl/internal/lang/ast"
	"github.com/msto63/mypl/internal/lang/parser"
	mypllog "github.com/msto63/mypl/pkg/core/log"
)

const sample = `# linked list
struct Node var v = 0; var next: Node = nil; end
fun int sum(n: Node)
  var total = 0;
  while not n == nil do set total = total + n.v; set n = n.next; end
  return total;
end
fun nil show(s: string) println("value: " + s); return; end
var head = new Node;
set head.v = 3 * (2 + 1);
if sum(head) > 5 and (head.v % 2 == 1 or false) then show(itos(sum(head)));
elif (head.v + 1) < 10 then show("small");
else show("none"); end
`

func parse(t *testing.T, src string) *ast.StmtList {
	t.Helper()
	prog, err := parser.ParseString(src, parser.Options{Logger: mypllog.Discard()})
	if err != nil {
		t.Fatalf("ParseString() error = %v\n%s", err, src)
	}
	return prog
}

func TestSprint(t *testing.T) {
	got, err := Sprint(parse(t, sample), Options{})
	if err != nil {
		t.Fatalf("Sprint() error = %v", err)
	}

	want := `struct Node
    var v = 0;
    var next: Node = nil;
end

fun int sum(n: Node)
    var total = 0;
    while not n == nil do
        set total = total + n.v;
        set n = n.next;
    end
    return total;
end

fun nil show(s: string)
    println("value: " + s);
    return;
end

var head = new Node;
set head.v = 3 * (2 + 1);
if sum(head) > 5 and (head.v % 2 == 1 or false) then
    show(itos(sum(head)));
elif (head.v + 1) < 10 then
    show("small");
else
    show("none");
end
`
	if got != want {
		t.Errorf("Sprint() =\n%s\nwant\n%s", got, want)
	}
}

func TestSprint_Idempotent(t *testing.T) {
	programs := []string{
		sample,
		``,
		`while true do end`,
		`if a then elif b then end`,
		`var x: int = (1 + 2) * 3; x;`,
		`while (a) and not (b or c) do end`,
		`if (x) < 3 then end`,
		`var s = "with  two spaces";`,
	}

	for _, src := range programs {
		first, err := Sprint(parse(t, src), Options{})
		if err != nil {
			t.Fatalf("Sprint() error = %v", err)
		}
		second, err := Sprint(parse(t, first), Options{})
		if err != nil {
			t.Fatalf("Sprint() reparse error = %v", err)
		}
		if first != second {
			t.Errorf("printing is not idempotent:\nfirst:\n%s\nsecond:\n%s", first, second)
		}
	}
}

func TestSprint_Indent(t *testing.T) {
	got, err := Sprint(parse(t, `while x do y; end`), Options{Indent: "\t"})
	if err != nil {
		t.Fatalf("Sprint() error = %v", err)
	}
	if want := "while x do\n\ty;\nend\n"; got != want {
		t.Errorf("Sprint() = %q, want %q", got, want)
	}
}

type failingWriter struct{ n int }

func (w *failingWriter) Write(b []byte) (int, error) {
	if w.n == 0 {
		return 0, errors.New("disk full")
	}
	w.n--
	return len(b), nil
}

func TestFprint_WriteError(t *testing.T) {
	err := Fprint(&failingWriter{n: 3}, parse(t, `var x = 1; var y = 2;`), Options{})
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Fprint() error = %v, want disk full", err)
	}
}
