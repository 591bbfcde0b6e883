// File: engine.go
// Title: MyPL Front End Engine
// Description: High-level interface that runs the lexer, parser and type
//              checker as one pipeline. Every compile run is tagged with a
//              fresh run id that appears in its log entries and result.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-13
// Modified: 2026-10-13
//
// Change History:
// - 2026-10-13 v0.1.0: Initial engine implementation

package frontend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/msto63/mypl/internal/lang/ast"
	"github.com/msto63/mypl/internal/lang/checker"
	"github.com/msto63/mypl/internal/lang/lexer"
	"github.com/msto63/mypl/internal/lang/parser"
	"github.com/msto63/mypl/internal/lang/printer"
	"github.com/msto63/mypl/internal/lang/token"
	mypllog "github.com/msto63/mypl/pkg/core/log"
)

// DefaultMaxSourceLength bounds the accepted program size in bytes
const DefaultMaxSourceLength = 1 << 20

// ErrSourceTooLarge is returned for programs above MaxSourceLength
var ErrSourceTooLarge = errors.New("source exceeds maximum length")

// Options configures the engine
type Options struct {
	Logger          *mypllog.Logger
	Builtins        *checker.Builtins
	Printer         printer.Options
	MaxSourceLength int
}

// Engine compiles MyPL sources. It holds no per-run state and may be used
// from several goroutines.
type Engine struct {
	logger  *mypllog.Logger
	options Options
}

// Result is the outcome of a successful compile
type Result struct {
	RunID    string
	Name     string
	Program  *ast.StmtList
	Types    *checker.Annotations
	Duration time.Duration
}

// New creates an engine
func New(opts Options) (*Engine, error) {
	if opts.Logger == nil {
		opts.Logger = mypllog.GetDefault()
	}
	if opts.Builtins == nil {
		opts.Builtins = checker.DefaultBuiltins()
	}
	if opts.MaxSourceLength == 0 {
		opts.MaxSourceLength = DefaultMaxSourceLength
	}
	if opts.MaxSourceLength < 0 {
		return nil, fmt.Errorf("invalid max source length %d", opts.MaxSourceLength)
	}

	logger := opts.Logger.WithField("component", "frontend")
	logger.Debug("MyPL front end initialized", mypllog.Fields{
		"builtins":        len(opts.Builtins.Functions),
		"maxSourceLength": opts.MaxSourceLength,
	})

	return &Engine{logger: logger, options: opts}, nil
}

func (e *Engine) checkSize(src string) error {
	if len(src) > e.options.MaxSourceLength {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrSourceTooLarge, len(src), e.options.MaxSourceLength)
	}
	return nil
}

// Tokenize returns every token of src including the final EOS
func (e *Engine) Tokenize(src string) ([]token.Token, error) {
	if err := e.checkSize(src); err != nil {
		return nil, err
	}
	return lexer.Tokenize(src)
}

// Parse parses src without type checking
func (e *Engine) Parse(src string) (*ast.StmtList, error) {
	if err := e.checkSize(src); err != nil {
		return nil, err
	}
	return parser.ParseString(src, parser.Options{Logger: e.logger})
}

// Format parses src and returns it as canonical source text
func (e *Engine) Format(src string) (string, error) {
	prog, err := e.Parse(src)
	if err != nil {
		return "", err
	}
	return printer.Sprint(prog, e.options.Printer)
}

// Compile parses and type-checks src. Language errors are returned as the
// *diag.Error produced by the failing stage.
func (e *Engine) Compile(ctx context.Context, name, src string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := e.checkSize(src); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		name = "<input>"
	}

	runID := uuid.NewString()
	logger := e.logger.WithRequestID(runID).WithField("file", name)
	timer := logger.StartTimer("compile")

	prog, err := parser.New(lexer.NewString(src), parser.Options{Logger: logger}).Parse()
	if err != nil {
		timer.StopWithError(err)
		return nil, err
	}
	timer.Checkpoint("parsed")

	if err := ctx.Err(); err != nil {
		timer.StopWithError(err)
		return nil, err
	}

	ann, err := checker.New(checker.Options{Logger: logger, Builtins: e.options.Builtins}).Check(prog)
	if err != nil {
		timer.StopWithError(err)
		return nil, err
	}

	return &Result{
		RunID:    runID,
		Name:     name,
		Program:  prog,
		Types:    ann,
		Duration: timer.Stop(),
	}, nil
}
