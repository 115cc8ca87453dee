package errors

import (
	"strings"
	"testing"
)

func TestValidateFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"slide", "slide-1-capa.png", false},
		{"sleeve", "sleeve-girassol-90x330mm-300dpi.png", false},
		{"upper extension", "POST.PNG", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 300) + ".png", true},
		{"with path /", "out/slide.png", true},
		{"with path \\", "out\\slide.png", true},
		{"traversal", "..png", true},
		{"hidden", ".slide.png", true},
		{"wrong extension", "slide.jpg", true},
		{"control char", "slide\x01.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilename(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFilename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidFilename) {
				t.Errorf("ValidateFilename(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidFilename)
			}
		})
	}
}

func TestValidatePanelID(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"slide-1", false},
		{"sleeve/art", false},
		{"sleeve", false},
		{"", true},
		{"Slide-1", true},
		{"slide--1", true},
		{"/sleeve", true},
		{"sleeve/", true},
		{"slide 1", true},
	}

	for _, tt := range tests {
		err := ValidatePanelID(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePanelID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}
