package matching

import (
	"strings"

	"bitbucket.org/platesync/unify_backend/models"
)

// Variation is the result of scanning a raw name for an embedded
// size/quantity/serving/strength qualifier.
type Variation struct {
	// BaseName is the raw name with the matched span removed and cleaned up.
	// Equal to the (normalized) input when no rule matched.
	BaseName string
	// Name is the formatted variation, e.g. "12 pcs" or "Large". Empty when
	// Matched is false.
	Name    string
	Type    models.VariationType
	Matched bool
}

// ExtractVariation scans the configured rules in order and returns the first
// match. "Lg Coke" becomes {BaseName: "Coke", Name: "Large", Type: size}.
func (m *Matcher) ExtractVariation(name string) Variation {
	normalized := NormalizeName(name)
	for _, rule := range m.rules {
		loc := rule.re.FindStringSubmatchIndex(normalized)
		if loc == nil {
			continue
		}
		formatted := string(rule.re.ExpandString(nil, rule.format, normalized, loc))
		base := cleanupBase(normalized[:loc[0]] + " " + normalized[loc[1]:])
		return Variation{
			BaseName: base,
			Name:     strings.TrimSpace(formatted),
			Type:     rule.typ,
			Matched:  true,
		}
	}
	return Variation{BaseName: normalized}
}

// cleanupBase tidies what is left after a matched span is cut out: stray
// separators at the seam, empty parens, doubled spaces.
func cleanupBase(s string) string {
	s = strings.ReplaceAll(s, "()", "")
	s = strings.ReplaceAll(s, "( )", "")
	s = NormalizeName(s)
	s = strings.Trim(s, " -–—,./")
	return NormalizeName(s)
}

var sizeWordFold = map[string]string{
	"lg":      "Large",
	"lrg":     "Large",
	"large":   "Large",
	"sm":      "Small",
	"sml":     "Small",
	"small":   "Small",
	"med":     "Medium",
	"md":      "Medium",
	"medium":  "Medium",
	"xl":      "Extra Large",
	"reg":     "Regular",
	"regular": "Regular",
}

// NormalizeVariationName canonicalizes a platform-supplied variation label:
// dash prefixes stripped, size abbreviations folded (lg/sm/med ->
// Large/Small/Medium), leftover free text title-cased. Raw labels that
// normalize to the same string collapse to one ProductVariation row.
func NormalizeVariationName(raw string) string {
	s := strings.TrimLeft(strings.TrimSpace(raw), "-–— ")
	words := strings.Fields(s)
	out := make([]string, 0, len(words))
	for _, w := range words {
		key := strings.ToLower(strings.Trim(w, "."))
		if folded, ok := sizeWordFold[key]; ok {
			out = append(out, folded)
			continue
		}
		out = append(out, TitleCase(w))
	}
	return strings.Join(out, " ")
}
