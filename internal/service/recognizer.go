package service

import (
	"regexp"
	"strings"

	"propboard/internal/model"
	"propboard/internal/utils"
)

// RoutingThreshold is the recognizer confidence above which free text is
// routed as an address instead of a command.
const RoutingThreshold = 0.6

// maxConfidence caps recognition confidence after adjustments.
const maxConfidence = 0.99

// suffixAlt matches any recognized street-suffix spelling. Kept in sync with
// the suffix tables in internal/utils.
const suffixAlt = `(?:street|st|avenue|ave|road|rd|drive|dr|boulevard|blvd|lane|ln|court|ct|circle|cir|place|pl|terrace|ter|parkway|pkwy|trail|trl|way|highway|hwy)`

// addressPattern is one entry in the ordered pattern list. Earlier patterns
// are more specific and carry higher trust; the first match wins.
type addressPattern struct {
	re         *regexp.Regexp
	confidence float64
	components func(m []string) model.AddressComponents
}

// AddressRecognizer decides whether free text denotes a mailing address and
// extracts its components. It holds no mutable state; Recognize is a pure
// function of its input.
type AddressRecognizer struct {
	patterns []addressPattern
}

// NewAddressRecognizer creates a recognizer with the ordered pattern list,
// from most to least specific.
func NewAddressRecognizer() *AddressRecognizer {
	return &AddressRecognizer{
		patterns: []addressPattern{
			// number + street + suffix + city + state + ZIP
			{
				re:         regexp.MustCompile(`(?i)^(\d+)\s+([a-z0-9 .']+?)\s+(` + suffixAlt + `)\.?,?\s+([a-z .]+?),?\s+([a-z]{2})\s+(\d{5}(?:-\d{4})?)$`),
				confidence: 0.98,
				components: func(m []string) model.AddressComponents {
					return model.AddressComponents{
						Number: m[1],
						Street: m[2] + " " + m[3],
						City:   strings.TrimSpace(m[4]),
						State:  strings.ToUpper(m[5]),
						Zip:    m[6],
					}
				},
			},
			// number + street + suffix + city + state
			{
				re:         regexp.MustCompile(`(?i)^(\d+)\s+([a-z0-9 .']+?)\s+(` + suffixAlt + `)\.?,?\s+([a-z .]+?),?\s+([a-z]{2})$`),
				confidence: 0.95,
				components: func(m []string) model.AddressComponents {
					return model.AddressComponents{
						Number: m[1],
						Street: m[2] + " " + m[3],
						City:   strings.TrimSpace(m[4]),
						State:  strings.ToUpper(m[5]),
					}
				},
			},
			// number + street + suffix + unit marker
			{
				re:         regexp.MustCompile(`(?i)^(\d+)\s+([a-z0-9 .']+?)\s+(` + suffixAlt + `)\.?,?\s+(?:apt|apartment|unit|suite|ste|#)\.?\s*([a-z0-9-]+)$`),
				confidence: 0.85,
				components: func(m []string) model.AddressComponents {
					return model.AddressComponents{
						Number: m[1],
						Street: m[2] + " " + m[3],
					}
				},
			},
			// number + street + suffix
			{
				re:         regexp.MustCompile(`(?i)^(\d+)\s+([a-z0-9 .']+?)\s+(` + suffixAlt + `)\.?$`),
				confidence: 0.90,
				components: func(m []string) model.AddressComponents {
					return model.AddressComponents{
						Number: m[1],
						Street: m[2] + " " + m[3],
					}
				},
			},
			// number + bare word sequence, no suffix
			{
				re:         regexp.MustCompile(`(?i)^(\d+)\s+([a-z]+(?:\s+[a-z]+){0,3})$`),
				confidence: 0.70,
				components: func(m []string) model.AddressComponents {
					return model.AddressComponents{
						Number: m[1],
						Street: m[2],
					}
				},
			},
		},
	}
}

// Recognize decides whether text denotes a mailing address. It never fails;
// non-addresses come back with IsAddress=false and confidence 0. Calling it
// twice on the same input yields identical results.
func (r *AddressRecognizer) Recognize(text string) *model.RecognizedAddress {
	text = strings.TrimSpace(text)

	// Too short to be an address; rejected before any pattern runs.
	if len(text) < 3 {
		return &model.RecognizedAddress{}
	}

	for _, p := range r.patterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		components := p.components(m)
		confidence := adjustConfidence(p.confidence, components.Street)
		return &model.RecognizedAddress{
			IsAddress:  confidence > RoutingThreshold,
			Confidence: confidence,
			Formatted:  formatAddress(components),
			Components: components,
		}
	}

	// Heuristic fallback: looks address-like if it starts with a house
	// number and mentions a street suffix anywhere.
	if startsWithDigit(text) && utils.ContainsStreetSuffix(text) {
		components := splitHeuristic(text)
		return &model.RecognizedAddress{
			IsAddress:  true,
			Confidence: 0.70,
			Formatted:  formatAddress(components),
			Components: components,
		}
	}

	return &model.RecognizedAddress{}
}

// adjustConfidence applies the post-match adjustments: a bonus when the
// street uses one of the eight most common suffixes, a penalty for very
// short street names, then a clamp to [0, 0.99].
func adjustConfidence(base float64, street string) float64 {
	confidence := base

	tokens := strings.Fields(street)
	if len(tokens) > 0 && utils.IsCommonSuffix(tokens[len(tokens)-1]) {
		confidence += 0.05
	}
	if len(street) < 4 {
		confidence -= 0.10
	}

	if confidence > maxConfidence {
		confidence = maxConfidence
	}
	if confidence < 0 {
		confidence = 0
	}
	return confidence
}

// formatAddress reconstructs "{number} {street}[, {city}, {state}][ {zip}]"
// from whichever components are present.
func formatAddress(c model.AddressComponents) string {
	var b strings.Builder
	b.WriteString(c.Number)
	if c.Street != "" {
		b.WriteString(" ")
		b.WriteString(c.Street)
	}
	if c.City != "" {
		b.WriteString(", ")
		b.WriteString(c.City)
	}
	if c.State != "" {
		b.WriteString(", ")
		b.WriteString(c.State)
	}
	if c.Zip != "" {
		b.WriteString(" ")
		b.WriteString(c.Zip)
	}
	return b.String()
}

func startsWithDigit(text string) bool {
	return text[0] >= '0' && text[0] <= '9'
}

// splitHeuristic splits heuristic-matched text into house number and the rest.
func splitHeuristic(text string) model.AddressComponents {
	i := 0
	for i < len(text) && text[i] >= '0' && text[i] <= '9' {
		i++
	}
	return model.AddressComponents{
		Number: text[:i],
		Street: strings.TrimSpace(strings.Trim(text[i:], ",")),
	}
}
