package model

import (
	"regexp"
	"strings"
)

// RecognizedAddress is the result of running free text through the
// address recognizer. It is a value object: built once per input and
// never mutated afterwards.
type RecognizedAddress struct {
	IsAddress  bool              `json:"is_address"`
	Confidence float64           `json:"confidence"`
	Formatted  string            `json:"formatted,omitempty"`
	Components AddressComponents `json:"components"`
}

// AddressComponents holds the pieces extracted from a recognized address.
// Absent components are empty strings, never placeholders.
type AddressComponents struct {
	Number string `json:"number,omitempty"`
	Street string `json:"street,omitempty"`
	City   string `json:"city,omitempty"`
	State  string `json:"state,omitempty"`
	Zip    string `json:"zip,omitempty"`
}

// ParsedAddress is the comma-split form the aggregation pipeline hands to
// source fetchers. This is deliberately not a geocoding parse.
type ParsedAddress struct {
	Street string `json:"street"`
	City   string `json:"city,omitempty"`
	State  string `json:"state,omitempty"`
	Zip    string `json:"zip,omitempty"`
}

var zipPattern = regexp.MustCompile(`^\d{5}(?:-\d{4})?$`)

// ParseAddress splits a one-line address into street/city/state/zip on
// commas. "123 Main St, Boston, MA 02101" and "123 Main St, Boston MA 02101"
// both parse; anything without commas is treated as street only.
func ParseAddress(address string) ParsedAddress {
	parts := strings.Split(address, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	parsed := ParsedAddress{Street: parts[0]}
	if len(parts) == 1 {
		return parsed
	}

	// Last part may be "MA 02101", "MA", or just "02101".
	last := parts[len(parts)-1]
	fields := strings.Fields(last)
	switch {
	case len(fields) >= 2 && zipPattern.MatchString(fields[len(fields)-1]):
		parsed.Zip = fields[len(fields)-1]
		parsed.State = fields[len(fields)-2]
		if rest := strings.Join(fields[:len(fields)-2], " "); rest != "" && len(parts) == 2 {
			parsed.City = rest
		}
	case len(fields) == 1 && zipPattern.MatchString(fields[0]):
		parsed.Zip = fields[0]
	case len(fields) == 1 && len(fields[0]) == 2:
		parsed.State = strings.ToUpper(fields[0])
	default:
		parsed.City = last
	}

	// Middle parts are the city (and anything else the sender included).
	if len(parts) > 2 {
		parsed.City = strings.Join(parts[1:len(parts)-1], ", ")
	}

	return parsed
}

// Line returns the address back as a single comma-joined line.
func (p ParsedAddress) Line() string {
	parts := []string{p.Street}
	if p.City != "" {
		parts = append(parts, p.City)
	}
	tail := strings.TrimSpace(p.State + " " + p.Zip)
	if tail != "" {
		parts = append(parts, tail)
	}
	return strings.Join(parts, ", ")
}
