package matching

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeName trims and collapses interior whitespace. Raw platform names
// arrive with doubled spaces and tab padding often enough that every
// comparison path funnels through this first.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// TitleCase title-cases each word using English casing rules.
func TitleCase(s string) string {
	return cases.Title(language.English).String(strings.ToLower(s))
}

// NormalizeCategoryName strips emoji and decorative symbols, collapses
// whitespace and title-cases, so "🔥 appetizers" and "APPETIZERS" dedupe to
// the same Category row.
func NormalizeCategoryName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if isEmoji(r) {
			continue
		}
		b.WriteRune(r)
	}
	return TitleCase(NormalizeName(b.String()))
}

func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F000 && r <= 0x1FAFF: // pictographs, transport, supplemental
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols, dingbats
		return true
	case r == 0x200D || (r >= 0xFE00 && r <= 0xFE0F): // ZWJ, variation selectors
		return true
	}
	return unicode.Is(unicode.So, r)
}

// ExpandAbbreviations replaces whole words found in the abbreviation table
// ("coke" -> "coca-cola"). Lookup is case-insensitive; output is lower-cased
// since it only feeds comparison keys.
func (m *Matcher) ExpandAbbreviations(name string) string {
	words := strings.Fields(strings.ToLower(name))
	for i, w := range words {
		if full, ok := m.abbreviations[w]; ok {
			words[i] = full
		}
	}
	// Expansion can reintroduce a word the name already had ("French Fries"
	// with fries -> "french fries"); collapse consecutive repeats.
	expanded := strings.Fields(strings.Join(words, " "))
	out := expanded[:0]
	for _, w := range expanded {
		if len(out) > 0 && out[len(out)-1] == w {
			continue
		}
		out = append(out, w)
	}
	return strings.Join(out, " ")
}

// ComparisonKey builds the normalized form used for catalog matching: any
// embedded variation is extracted away, then abbreviations are expanded on
// the remaining base name.
func (m *Matcher) ComparisonKey(rawName string) string {
	ext := m.ExtractVariation(rawName)
	return m.ExpandAbbreviations(ext.BaseName)
}
