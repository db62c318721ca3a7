package model

import (
	"testing"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ParsedAddress
	}{
		{
			name:  "street only",
			input: "123 Main St",
			want:  ParsedAddress{Street: "123 Main St"},
		},
		{
			name:  "city with state and zip",
			input: "123 Main St, Springfield, IL 62704",
			want:  ParsedAddress{Street: "123 Main St", City: "Springfield", State: "IL", Zip: "62704"},
		},
		{
			name:  "city and state zip in one part",
			input: "123 Main St, Boston MA 02101",
			want:  ParsedAddress{Street: "123 Main St", City: "Boston", State: "MA", Zip: "02101"},
		},
		{
			name:  "state only tail",
			input: "123 Main St, Springfield, IL",
			want:  ParsedAddress{Street: "123 Main St", City: "Springfield", State: "IL"},
		},
		{
			name:  "zip only tail",
			input: "123 Main St, 62704",
			want:  ParsedAddress{Street: "123 Main St", Zip: "62704"},
		},
		{
			name:  "zip+4",
			input: "123 Main St, Springfield, IL 62704-1234",
			want:  ParsedAddress{Street: "123 Main St", City: "Springfield", State: "IL", Zip: "62704-1234"},
		},
		{
			name:  "city only tail",
			input: "123 Main St, Springfield",
			want:  ParsedAddress{Street: "123 Main St", City: "Springfield"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAddress(tt.input)
			if got != tt.want {
				t.Errorf("ParseAddress(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParsedAddress_Line(t *testing.T) {
	tests := []struct {
		name string
		addr ParsedAddress
		want string
	}{
		{
			name: "full",
			addr: ParsedAddress{Street: "123 Main St", City: "Springfield", State: "IL", Zip: "62704"},
			want: "123 Main St, Springfield, IL 62704",
		},
		{
			name: "street only",
			addr: ParsedAddress{Street: "123 Main St"},
			want: "123 Main St",
		},
		{
			name: "no city",
			addr: ParsedAddress{Street: "123 Main St", State: "IL", Zip: "62704"},
			want: "123 Main St, IL 62704",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.addr.Line(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}
