package utils

import (
	"strings"
)

// canonicalSuffixes maps every recognized street-suffix spelling to its USPS
// abbreviation. Used for recognition, confidence scoring, and cache keys.
var canonicalSuffixes = map[string]string{
	"street":    "st",
	"st":        "st",
	"avenue":    "ave",
	"ave":       "ave",
	"road":      "rd",
	"rd":        "rd",
	"drive":     "dr",
	"dr":        "dr",
	"boulevard": "blvd",
	"blvd":      "blvd",
	"lane":      "ln",
	"ln":        "ln",
	"court":     "ct",
	"ct":        "ct",
	"circle":    "cir",
	"cir":       "cir",
	"place":     "pl",
	"pl":        "pl",
	"terrace":   "ter",
	"ter":       "ter",
	"parkway":   "pkwy",
	"pkwy":      "pkwy",
	"trail":     "trl",
	"trl":       "trl",
	"way":       "way",
	"highway":   "hwy",
	"hwy":       "hwy",
}

// commonSuffixes are the eight most frequent suffixes; a street using one of
// these earns a recognition confidence bonus.
var commonSuffixes = map[string]bool{
	"street": true, "st": true,
	"avenue": true, "ave": true,
	"road": true, "rd": true,
	"drive": true, "dr": true,
}

// IsStreetSuffix returns true if the token is a recognized street suffix
// in either long or abbreviated form.
func IsStreetSuffix(token string) bool {
	_, ok := canonicalSuffixes[cleanToken(token)]
	return ok
}

// IsCommonSuffix returns true if the token is one of the eight most common
// street suffixes.
func IsCommonSuffix(token string) bool {
	return commonSuffixes[cleanToken(token)]
}

// CanonicalSuffix returns the USPS abbreviation for a suffix token, or the
// cleaned token itself if it is not a recognized suffix.
func CanonicalSuffix(token string) string {
	cleaned := cleanToken(token)
	if canonical, ok := canonicalSuffixes[cleaned]; ok {
		return canonical
	}
	return cleaned
}

// ContainsStreetSuffix returns true if any whitespace-separated token of the
// text is a recognized street suffix.
func ContainsStreetSuffix(text string) bool {
	for _, token := range strings.Fields(text) {
		if IsStreetSuffix(token) {
			return true
		}
	}
	return false
}

// NormalizeAddress produces a stable key for an address string: lowercase,
// punctuation stripped, suffixes abbreviated, whitespace collapsed. Two
// spellings of the same address normalize to the same key.
func NormalizeAddress(address string) string {
	var tokens []string
	for _, token := range strings.Fields(address) {
		cleaned := cleanToken(token)
		if cleaned == "" {
			continue
		}
		tokens = append(tokens, CanonicalSuffix(cleaned))
	}
	return strings.Join(tokens, " ")
}

func cleanToken(token string) string {
	return strings.Trim(strings.ToLower(strings.TrimSpace(token)), ".,#")
}
