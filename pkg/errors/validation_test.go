package errors

import (
	"strings"
	"testing"
)

func TestValidateLookup(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid domain", "example.com", false},
		{"valid url", "https://example.com/path?q=1", false},
		{"valid technology", "Google-Analytics", false},
		{"valid company", "Acme Inc", false},

		{"empty", "", true},
		{"whitespace", "   ", true},
		{"too long", strings.Repeat("a", 3000), true},
		{"at length limit", strings.Repeat("a", maxLookupLength), false},
		{"one over length limit", strings.Repeat("a", maxLookupLength+1), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"carriage return", "foo\rbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLookup("url", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLookup(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("expected INVALID_INPUT, got %v", err)
			}
		})
	}
}

func TestValidateLookups(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		wantErr bool
	}{
		{"single", []string{"php"}, false},
		{"multiple", []string{"php", "jquery"}, false},
		{"nil", nil, true},
		{"empty element", []string{"php", ""}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLookups("technologies", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLookups(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
