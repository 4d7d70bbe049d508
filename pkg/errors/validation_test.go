package errors

import (
	"strings"
	"testing"
)

func TestValidateLabel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "f", false},
		{"latex", `\mathbf{I}^{\mathscal{A}}_{X,Y}`, false},
		{"nested", "{{a}}", false},
		{"unicode", "α→β", false},

		{"empty", "", true},
		{"too long", strings.Repeat("x", MaxLabelLength+1), true},
		{"unbalanced open", "a{b", true},
		{"unbalanced close", "a}b{", true},
		{"newline", "a\nb", true},
		{"null byte", "a\x00b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLabel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLabel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidLabel) {
				t.Errorf("ValidateLabel(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidLabel)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "snake lemma", false},
		{"valid dashes", "five-lemma_v2", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"slash", "a/b", true},
		{"backslash", `a\b`, true},
		{"control", "a\tb", true},
		{"too long", strings.Repeat("n", 129), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "diagrams/square.cd", false},
		{"nested", "a/b/c.eq", false},

		{"empty", "", true},
		{"absolute", "/etc/passwd", true},
		{"traversal", "../secret", true},
		{"backslash", `a\b`, true},
		{"null byte", "a\x00b", true},
		{"too long", strings.Repeat("p", 501), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"uuid", "0b7d6a54-3f5e-4c1a-9d55-6a2f8b1e9c10", false},
		{"word", "square_1", false},

		{"empty", "", true},
		{"slash", "a/b", true},
		{"dot", "a.b", true},
		{"too long", strings.Repeat("a", 65), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
