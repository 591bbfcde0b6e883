// ============================================================================
// MyPL - Front End Toolchain
// ============================================================================
//
// Package:     version
// Description: Central version management for the toolchain
// Author:      msto63
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package version

// Version constants for the toolchain components
const (
	// Toolchain version
	Toolchain = "0.3.0"

	// Component versions
	Lexer   = "0.3.0"
	Parser  = "0.3.0"
	Checker = "0.3.0"
	Printer = "0.1.0"

	// Language is the MyPL language level accepted by the front end
	Language = "1.0.0"
)

// Commit is set at build time with -ldflags "-X .../version.Commit=<sha>"
var Commit = "dev"

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "lexer":
		return Lexer
	case "parser":
		return Parser
	case "checker":
		return Checker
	case "printer":
		return Printer
	case "language":
		return Language
	default:
		return Toolchain
	}
}
