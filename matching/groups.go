package matching

import (
	"strings"
	"unicode/utf8"
)

// GroupMatch is a successful classification of a raw name into a configured
// product group. VariationName is empty when the raw text carried no
// qualifier beyond the canonical name itself.
type GroupMatch struct {
	CanonicalName string
	VariationName string
}

// fuzzyWordThreshold returns how much edit distance a word of the given
// length tolerates. Short words tolerate less: the space of unrelated "near"
// short words is denser. These constants are tuned against known
// false-positive/negative fixtures; do not adjust without re-validating.
func fuzzyWordThreshold(length int) int {
	if length <= 5 {
		return 1
	}
	return 2
}

// sameLengthRejectCutoff: below or at this length, an equal-length fuzzy
// candidate is rejected outright ("rings" is not a typo of "wings"). Above
// it, equal-length typos like "expresso"/"espresso" are accepted.
const sameLengthRejectCutoff = 6

// fuzzyWordMatch reports whether candidate is an acceptable typo of target.
// Exact equality does not count; that path is handled separately.
func fuzzyWordMatch(candidate, target string) bool {
	tlen := utf8.RuneCountInString(target)
	clen := utf8.RuneCountInString(candidate)
	if clen == tlen && tlen <= sameLengthRejectCutoff {
		return false
	}
	threshold := fuzzyWordThreshold(tlen)
	d := Distance(candidate, target, DistanceOptions{MaxDistance: threshold})
	return d > 0 && d <= threshold
}

// MatchProductToGroup classifies rawName against the configured groups,
// first match wins. Per group the checks run in order: exact whole-word
// suffix, fuzzy suffix, exact/substring keyword, fuzzy keyword. Ambiguous
// configurations are a configuration-authoring problem, not an error.
func (m *Matcher) MatchProductToGroup(rawName string) (GroupMatch, bool) {
	name := NormalizeName(rawName)
	if name == "" {
		return GroupMatch{}, false
	}
	words := strings.Fields(name)

	for _, g := range m.groups {
		if match, ok := m.matchGroup(g, name, words); ok {
			return match, true
		}
	}
	return GroupMatch{}, false
}

func (m *Matcher) matchGroup(g ProductGroup, name string, words []string) (GroupMatch, bool) {
	lowerName := strings.ToLower(name)

	if g.Suffix != "" {
		suffix := strings.ToLower(g.Suffix)

		// Exact whole-word suffix.
		last := strings.ToLower(words[len(words)-1])
		if last == suffix {
			return GroupMatch{
				CanonicalName: g.CanonicalName,
				VariationName: strings.TrimSpace(strings.Join(words[:len(words)-1], " ")),
			}, true
		}

		// Fuzzy suffix: bound each word against the suffix.
		for i, w := range words {
			if fuzzyWordMatch(strings.ToLower(w), suffix) {
				rest := make([]string, 0, len(words)-1)
				rest = append(rest, words[:i]...)
				rest = append(rest, words[i+1:]...)
				return GroupMatch{
					CanonicalName: g.CanonicalName,
					VariationName: strings.TrimSpace(strings.Join(rest, " ")),
				}, true
			}
		}
	}

	for _, kw := range g.Keywords {
		keyword := strings.ToLower(strings.TrimSpace(kw))
		if keyword == "" {
			continue
		}
		if strings.Contains(lowerName, keyword) {
			return GroupMatch{
				CanonicalName: g.CanonicalName,
				VariationName: keywordVariation(name, g.CanonicalName),
			}, true
		}
		for _, w := range words {
			if fuzzyWordMatch(strings.ToLower(w), keyword) {
				return GroupMatch{
					CanonicalName: g.CanonicalName,
					VariationName: keywordVariation(name, g.CanonicalName),
				}, true
			}
		}
	}

	return GroupMatch{}, false
}

// Keyword matches carry the entire raw name as the variation, unless the raw
// name is just the canonical name again.
func keywordVariation(name, canonicalName string) string {
	if strings.EqualFold(name, canonicalName) {
		return ""
	}
	return name
}
