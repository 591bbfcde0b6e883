// ============================================================================
// MyPL - Front End Toolchain
// ============================================================================
//
// Package:     cmd
// Description: CLI command for the compile inspector TUI
// Author:      msto63
// Created:     2026-10-13
// License:     MIT
// ============================================================================

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/msto63/mypl/internal/tui/inspector"
	mypllog "github.com/msto63/mypl/pkg/core/log"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Browse tokens, tree and types in a terminal UI",
	Long: `Compiles a program and opens the interactive inspector.

Tabs:
  1 Source   numbered source lines
  2 Tokens   token stream with positions
  3 AST      syntax tree
  4 Types    synthesized type of every expression

A compile error is shown in the status bar; the tabs hold whatever the
front end produced before it.

Keys:
  tab / shift+tab   Next / previous tab
  1-4               Select tab
  up/down           Scroll
  PgUp/PgDn         Page
  g / G             Top / Bottom
  q / Ctrl+C        Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	name, src, err := readSource(cmd, args)
	if err != nil {
		return err
	}

	cfg := inspector.Config{Name: name, Source: src}
	cfg.Tokens, _ = current.engine.Tokenize(src)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg.Result, cfg.Err = current.engine.Compile(ctx, name, src)
	if cfg.Err != nil {
		current.logger.Debug("Opening inspector on failed compile", mypllog.Fields{"error": cfg.Err.Error()})
	}
	return inspector.Run(cfg)
}
