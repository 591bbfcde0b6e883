package token

import "testing"

func TestKindCount(t *testing.T) {
	if Count != 45 {
		t.Errorf("Count = %d, want 45", Count)
	}
	for k := Kind(0); int(k) < Count; k++ {
		if kindNames[k] == "" {
			t.Errorf("kind %d has no name", int(k))
		}
	}
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{ASSIGN, "ASSIGN"},
		{GREATER_THAN_EQUAL, "GREATER_THAN_EQUAL"},
		{STRINGVAL, "STRINGVAL"},
		{EOS, "EOS"},
		{Kind(99), "Kind(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("Kind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		word string
		want Kind
	}{
		{"int", INTTYPE},
		{"struct", STRUCTTYPE},
		{"true", BOOLVAL},
		{"false", BOOLVAL},
		{"elif", ELIF},
		{"nil", NIL},
		{"new", NEW},
		{"x", ID},
		{"Int", ID},
		{"ends", ID},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := Lookup(tt.word); got != tt.want {
				t.Errorf("Lookup(%q) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}
}

func TestToken_String(t *testing.T) {
	tok := New(ID, "count", 3, 7)
	if got := tok.String(); got != "ID 'count' 3:7" {
		t.Errorf("Token.String() = %v, want %v", got, "ID 'count' 3:7")
	}
}

func TestKindPredicates(t *testing.T) {
	if !LESS_THAN_EQUAL.IsRelational() || PLUS.IsRelational() {
		t.Error("IsRelational() misclassifies operators")
	}
	if !MODULO.IsArithmetic() || EQUAL.IsArithmetic() {
		t.Error("IsArithmetic() misclassifies operators")
	}
	if !STRINGTYPE.IsPrimitiveType() || STRUCTTYPE.IsPrimitiveType() {
		t.Error("IsPrimitiveType() misclassifies type keywords")
	}
	if !NIL.IsLiteral() || ID.IsLiteral() {
		t.Error("IsLiteral() misclassifies literals")
	}
}
