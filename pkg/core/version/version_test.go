package version

import (
	"regexp"
	"testing"
)

// semverRegex validates semantic versioning format
var semverRegex = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

func TestVersionConstants(t *testing.T) {
	tests := []struct {
		name    string
		version string
	}{
		{"Toolchain", Toolchain},
		{"Lexer", Lexer},
		{"Parser", Parser},
		{"Checker", Checker},
		{"Printer", Printer},
		{"Language", Language},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.version == "" {
				t.Errorf("%s version is empty", tt.name)
			}
			if !semverRegex.MatchString(tt.version) {
				t.Errorf("%s version %q does not match semver format (x.y.z)", tt.name, tt.version)
			}
		})
	}
}

func TestComponentVersion(t *testing.T) {
	tests := []struct {
		name      string
		component string
		expected  string
	}{
		{"lexer", "lexer", Lexer},
		{"parser", "parser", Parser},
		{"checker", "checker", Checker},
		{"printer", "printer", Printer},
		{"language", "language", Language},
		{"unknown component", "unknown", Toolchain},
		{"empty component", "", Toolchain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ComponentVersion(tt.component)
			if result != tt.expected {
				t.Errorf("ComponentVersion(%q) = %q, want %q", tt.component, result, tt.expected)
			}
		})
	}
}
