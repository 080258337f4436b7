package errors

import (
	"strings"
	"testing"
)

func TestValidateCellText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"with ordinal", "1. PROJECT SETUP", false},
		{"without ordinal", "Setup", false},
		{"unicode", "3. Vidéo · Sync", false},
		{"at limit", strings.Repeat("a", MaxCellText), false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"newline", "1. Setup\nMore", true},
		{"tab", "1.\tSetup", true},
		{"over limit", strings.Repeat("a", MaxCellText+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSectionName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSectionName() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateSectionName() code = %v, want %v", GetCode(err), ErrCodeInvalidInput)
			}

			err = ValidateTask(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTask() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidItem) {
				t.Errorf("ValidateTask() code = %v, want %v", GetCode(err), ErrCodeInvalidItem)
			}
		})
	}
}

func TestValidateTextLength(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		limit   int
		wantErr bool
	}{
		{"empty", "", 5, false},
		{"multiline at limit", "ab\ncd", 5, false},
		{"runes not bytes", "ééééé", 5, false},
		{"over limit", "abcdef", 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTextLength(ErrCodeInvalidItem, "description", tt.input, tt.limit)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTextLength(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidItem) {
				t.Errorf("code = %v, want INVALID_ITEM", GetCode(err))
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
		{"relative", "invoice.yaml", false},
		{"nested", "out/2026/invoice.xlsx", false},
		{"absolute", "/tmp/invoice.xlsx", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 501), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}
