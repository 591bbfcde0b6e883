// File: builtins.go
// Title: Built-in Function Table
// Description: Immutable seed table of built-in function signatures and the
//              top-level return type. The default table is embedded as YAML;
//              custom tables can be decoded from any reader.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-12
//
// Change History:
// - 2026-10-12 v0.1.0: Initial YAML seed table

package checker

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/msto63/mypl/internal/lang/types"
)

//go:embed builtins.yaml
var defaultBuiltinsYAML []byte

// ErrInvalidBuiltins is returned for malformed built-in tables
var ErrInvalidBuiltins = errors.New("invalid builtins")

// Builtin is one predeclared function
type Builtin struct {
	Name      string
	Signature *types.Signature
}

// Builtins is the seed table loaded into the outermost scope
type Builtins struct {
	Return    types.Type
	Functions []Builtin
}

// Lookup returns the signature of a built-in function
func (b *Builtins) Lookup(name string) (*types.Signature, bool) {
	for _, fn := range b.Functions {
		if fn.Name == name {
			return fn.Signature, true
		}
	}
	return nil, false
}

type builtinsFile struct {
	Return    string `yaml:"return"`
	Functions []struct {
		Name    string   `yaml:"name"`
		Params  []string `yaml:"params"`
		Returns string   `yaml:"returns"`
	} `yaml:"functions"`
}

var (
	defaultOnce     sync.Once
	defaultBuiltins *Builtins
)

// DefaultBuiltins returns the embedded standard table
func DefaultBuiltins() *Builtins {
	defaultOnce.Do(func() {
		b, err := LoadBuiltins(bytes.NewReader(defaultBuiltinsYAML))
		if err != nil {
			panic(fmt.Sprintf("checker: embedded builtins: %v", err))
		}
		defaultBuiltins = b
	})
	return defaultBuiltins
}

// LoadBuiltins decodes a YAML built-in table
func LoadBuiltins(r io.Reader) (*Builtins, error) {
	var raw builtinsFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBuiltins, err)
	}

	ret, err := builtinType(raw.Return)
	if err != nil {
		return nil, fmt.Errorf("%w: return: %v", ErrInvalidBuiltins, err)
	}

	b := &Builtins{Return: ret}
	seen := make(map[string]bool)
	for i, fn := range raw.Functions {
		if fn.Name == "" {
			return nil, fmt.Errorf("%w: function %d has no name", ErrInvalidBuiltins, i)
		}
		if seen[fn.Name] || fn.Name == returnBinding {
			return nil, fmt.Errorf("%w: duplicate function %q", ErrInvalidBuiltins, fn.Name)
		}
		seen[fn.Name] = true

		sig := &types.Signature{}
		for _, p := range fn.Params {
			t, err := builtinType(p)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidBuiltins, fn.Name, err)
			}
			if t.IsNil() {
				return nil, fmt.Errorf("%w: %s: nil parameter", ErrInvalidBuiltins, fn.Name)
			}
			sig.Params = append(sig.Params, t)
		}
		if sig.Return, err = builtinType(fn.Returns); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidBuiltins, fn.Name, err)
		}
		b.Functions = append(b.Functions, Builtin{Name: fn.Name, Signature: sig})
	}
	return b, nil
}

func builtinType(name string) (types.Type, error) {
	if name == "" {
		return types.NilType, nil
	}
	t, ok := types.Primitive(name)
	if !ok {
		return types.Type{}, fmt.Errorf("unknown type %q", name)
	}
	return t, nil
}
