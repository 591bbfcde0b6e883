// File: types.go
// Title: MyPL Type Model
// Description: Primitive type tags, named struct types, struct shapes and
//              function signatures used by the symbol table and checker.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-12
//
// Change History:
// - 2026-10-12 v0.1.0: Initial type model

package types

import (
	"fmt"
	"strings"
)

// Kind is the tag of a type
type Kind int

const (
	Invalid Kind = iota
	Nil
	Bool
	Int
	Float
	String
	Struct
)

// Type is a MyPL type. Name is set only for Struct.
type Type struct {
	Kind Kind
	Name string
}

var (
	NilType    = Type{Kind: Nil}
	BoolType   = Type{Kind: Bool}
	IntType    = Type{Kind: Int}
	FloatType  = Type{Kind: Float}
	StringType = Type{Kind: String}
)

// StructOf returns the named struct type
func StructOf(name string) Type {
	return Type{Kind: Struct, Name: name}
}

// Primitive returns the primitive type with the given name
func Primitive(name string) (Type, bool) {
	switch name {
	case "nil":
		return NilType, true
	case "bool":
		return BoolType, true
	case "int":
		return IntType, true
	case "float":
		return FloatType, true
	case "string":
		return StringType, true
	}
	return Type{}, false
}

func (t Type) String() string {
	switch t.Kind {
	case Nil:
		return "nil"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Struct:
		return t.Name
	}
	return "invalid"
}

func (t Type) IsNil() bool    { return t.Kind == Nil }
func (t Type) IsStruct() bool { return t.Kind == Struct }

// IsOrdered reports whether values of t support <, <=, > and >=
func (t Type) IsOrdered() bool {
	return t.Kind == Int || t.Kind == Float || t.Kind == String
}

// Field is a named struct member
type Field struct {
	Name string
	Type Type
}

// Shape is the ordered field list of a struct type
type Shape struct {
	Name   string
	Fields []Field
}

// NewShape creates an empty shape
func NewShape(name string) *Shape {
	return &Shape{Name: name}
}

// Add appends a field; it returns false when the name is already present
func (s *Shape) Add(name string, t Type) bool {
	if _, ok := s.Lookup(name); ok {
		return false
	}
	s.Fields = append(s.Fields, Field{Name: name, Type: t})
	return true
}

// Lookup returns the type of a field
func (s *Shape) Lookup(name string) (Type, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return Type{}, false
}

func (s *Shape) String() string {
	parts := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		parts[i] = f.Name + ": " + f.Type.String()
	}
	return fmt.Sprintf("struct %s{%s}", s.Name, strings.Join(parts, ", "))
}

// Signature is a function type
type Signature struct {
	Params []Type
	Return Type
}

func (s *Signature) String() string {
	parts := make([]string, len(s.Params))
	for i, p := range s.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("fun(%s) %s", strings.Join(parts, ", "), s.Return)
}
