package matching

import "testing"

func TestNormalizeCategoryName(t *testing.T) {
	cases := []struct {
		in, expected string
	}{
		{"APPETIZERS", "Appetizers"},
		{"🔥 appetizers", "Appetizers"},
		{"Desserts 🍰", "Desserts"},
		{"  side   dishes ", "Side Dishes"},
		{"Drinks & Juices", "Drinks & Juices"},
	}
	for _, tc := range cases {
		if got := NormalizeCategoryName(tc.in); got != tc.expected {
			t.Fatalf("NormalizeCategoryName(%q) = %q, expected %q", tc.in, got, tc.expected)
		}
	}
}

func TestExpandAbbreviations(t *testing.T) {
	m := defaultMatcher(t)
	cases := []struct {
		in, expected string
	}{
		{"Coke", "coca-cola"},
		{"Dbl Chz Burger", "double chz burger"},
		{"BBQ Chkn Sand", "barbecue chicken sandwich"},
		{"Fries", "french fries"},
		// Expansion must not duplicate a word already present.
		{"French Fries", "french fries"},
	}
	for _, tc := range cases {
		if got := m.ExpandAbbreviations(tc.in); got != tc.expected {
			t.Fatalf("ExpandAbbreviations(%q) = %q, expected %q", tc.in, got, tc.expected)
		}
	}
}

func TestComparisonKey(t *testing.T) {
	m := defaultMatcher(t)
	// The embedded size qualifier is stripped before abbreviation expansion.
	if got := m.ComparisonKey("Lg Coke"); got != "coca-cola" {
		t.Fatalf("ComparisonKey(%q) = %q, expected %q", "Lg Coke", got, "coca-cola")
	}
	if got := m.ComparisonKey("Chicken Quesadilla"); got != "chicken quesadilla" {
		t.Fatalf("ComparisonKey passthrough = %q", got)
	}
}
