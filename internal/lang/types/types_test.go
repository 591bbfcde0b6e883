package types

import "testing"

func TestType_String(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{NilType, "nil"},
		{BoolType, "bool"},
		{IntType, "int"},
		{FloatType, "float"},
		{StringType, "string"},
		{StructOf("Point"), "Point"},
		{Type{}, "invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.want {
				t.Errorf("String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPrimitive(t *testing.T) {
	if got, ok := Primitive("float"); !ok || got != FloatType {
		t.Errorf("Primitive(float) = %v, %v", got, ok)
	}
	if _, ok := Primitive("Point"); ok {
		t.Error("Primitive(Point) should not resolve")
	}
}

func TestType_Equality(t *testing.T) {
	if StructOf("A") == StructOf("B") {
		t.Error("distinct struct names should not be equal")
	}
	if StructOf("A") != StructOf("A") {
		t.Error("same struct name should be equal")
	}
	if !StringType.IsOrdered() || BoolType.IsOrdered() || StructOf("A").IsOrdered() {
		t.Error("IsOrdered() misclassifies types")
	}
}

func TestShape(t *testing.T) {
	s := NewShape("Point")
	if !s.Add("x", IntType) || !s.Add("y", FloatType) {
		t.Fatal("Add() rejected a new field")
	}
	if s.Add("x", StringType) {
		t.Error("Add() accepted a duplicate field")
	}
	if got, ok := s.Lookup("y"); !ok || got != FloatType {
		t.Errorf("Lookup(y) = %v, %v", got, ok)
	}
	if _, ok := s.Lookup("z"); ok {
		t.Error("Lookup(z) should fail")
	}
	if got := s.String(); got != "struct Point{x: int, y: float}" {
		t.Errorf("String() = %v", got)
	}
}

func TestSignature_String(t *testing.T) {
	sig := &Signature{Params: []Type{IntType, StringType}, Return: StringType}
	if got := sig.String(); got != "fun(int, string) string" {
		t.Errorf("String() = %v", got)
	}
}
