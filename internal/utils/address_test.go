package utils

import (
	"testing"
)

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "long suffix abbreviated",
			input: "123 Main Street",
			want:  "123 main st",
		},
		{
			name:  "punctuation and case stripped",
			input: "123 MAIN ST.,",
			want:  "123 main st",
		},
		{
			name:  "whitespace collapsed",
			input: "  123   Main   Street  ",
			want:  "123 main st",
		},
		{
			name:  "full address",
			input: "456 Oak Avenue, Springfield, IL 62704",
			want:  "456 oak ave springfield il 62704",
		},
		{
			name:  "unit marker hash stripped",
			input: "789 Elm Rd #12",
			want:  "789 elm rd 12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeAddress(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeAddress(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeAddress_SpellingsConverge(t *testing.T) {
	spellings := []string{
		"123 Main Street",
		"123 main st",
		"123 Main St.",
		" 123  MAIN  STREET ",
	}

	want := NormalizeAddress(spellings[0])
	for _, spelling := range spellings[1:] {
		if got := NormalizeAddress(spelling); got != want {
			t.Errorf("NormalizeAddress(%q) = %q, want %q", spelling, got, want)
		}
	}
}

func TestSuffixTables(t *testing.T) {
	tests := []struct {
		token     string
		streetSfx bool
		commonSfx bool
		canonical string
	}{
		{token: "Street", streetSfx: true, commonSfx: true, canonical: "st"},
		{token: "ave.", streetSfx: true, commonSfx: true, canonical: "ave"},
		{token: "Boulevard", streetSfx: true, commonSfx: false, canonical: "blvd"},
		{token: "way", streetSfx: true, commonSfx: false, canonical: "way"},
		{token: "banana", streetSfx: false, commonSfx: false, canonical: "banana"},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			if got := IsStreetSuffix(tt.token); got != tt.streetSfx {
				t.Errorf("IsStreetSuffix(%q) = %v, want %v", tt.token, got, tt.streetSfx)
			}
			if got := IsCommonSuffix(tt.token); got != tt.commonSfx {
				t.Errorf("IsCommonSuffix(%q) = %v, want %v", tt.token, got, tt.commonSfx)
			}
			if got := CanonicalSuffix(tt.token); got != tt.canonical {
				t.Errorf("CanonicalSuffix(%q) = %q, want %q", tt.token, got, tt.canonical)
			}
		})
	}
}

func TestContainsStreetSuffix(t *testing.T) {
	if !ContainsStreetSuffix("123 Main St near the park") {
		t.Error("expected suffix in the middle of the text to be found")
	}
	if ContainsStreetSuffix("hello world") {
		t.Error("expected no suffix in plain words")
	}
}
