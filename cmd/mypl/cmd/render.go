// ============================================================================
// MyPL - Front End Toolchain
// ============================================================================
//
// Package:     cmd
// Description: Terminal rendering of language diagnostics
// Author:      msto63
// Created:     2026-10-13
// License:     MIT
// ============================================================================

package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/mypl/internal/lang/diag"
)

var (
	errorLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	locationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94A3B8"))

	caretStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B")).
			Bold(true)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981")).
		Bold(true)
)

// renderer formats command output, with or without colors
type renderer struct {
	color bool
}

func (r renderer) style(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

// OK renders the success marker
func (r renderer) OK() string {
	return r.style(okStyle, "ok")
}

// Error renders err when it carries a diagnostic
func (r renderer) Error(name, src string, err error) (string, bool) {
	d, ok := diag.As(err)
	if !ok {
		return "", false
	}
	return r.Diagnostic(name, src, d), true
}

// Diagnostic renders d as
//
//	<file>:<line>:<column>: <phase> error [<CODE>]: <message>
//	  <source line>
//	  <caret>
func (r renderer) Diagnostic(name, src string, d *diag.Error) string {
	var b strings.Builder
	loc := fmt.Sprintf("%s:%d:%d:", name, d.Line, d.Column)
	label := fmt.Sprintf("%s error [%s]:", d.Phase, d.Code)
	fmt.Fprintf(&b, "%s %s %s\n", r.style(locationStyle, loc), r.style(errorLabelStyle, label), d.Message)

	line, ok := sourceLine(src, d.Line)
	if !ok {
		return b.String()
	}
	fmt.Fprintf(&b, "  %s\n", line)
	fmt.Fprintf(&b, "  %s\n", r.style(caretStyle, caret(line, d.Column)))
	return b.String()
}

// sourceLine returns the 1-based line n of src
func sourceLine(src string, n int) (string, bool) {
	lines := strings.Split(src, "\n")
	if n < 1 || n > len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[n-1], "\r"), true
}

// caret places ^ under column col, copying tabs so it lines up
func caret(line string, col int) string {
	var b strings.Builder
	for i, r := range []rune(line) {
		if i >= col-1 {
			break
		}
		if r == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteRune(' ')
		}
	}
	b.WriteRune('^')
	return b.String()
}
