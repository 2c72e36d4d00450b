package matching

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DistanceOptions controls string folding before the edit-distance
// computation and optionally bounds the search.
type DistanceOptions struct {
	// MaxDistance, when > 0, caps the computation. The returned value is
	// MaxDistance+1 whenever the true distance exceeds the cap; callers
	// must treat any value above the cap as "no match", not as an exact
	// measurement.
	MaxDistance int

	CaseSensitive       bool
	NormalizeDiacritics bool
}

var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func stripDiacritics(s string) string {
	out, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		return s
	}
	return out
}

// Distance returns the Levenshtein distance between a and b. Comparison is
// case-insensitive unless opts.CaseSensitive is set. The computation keeps
// two DP rows, so space is O(min(len(a), len(b))).
func Distance(a, b string, opts DistanceOptions) int {
	if !opts.CaseSensitive {
		a = strings.ToLower(a)
		b = strings.ToLower(b)
	}
	if opts.NormalizeDiacritics {
		a = stripDiacritics(a)
		b = stripDiacritics(b)
	}
	if a == b {
		return 0
	}

	ra := []rune(a)
	rb := []rune(b)
	// Iterate over the longer string so the rows span the shorter one.
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}
	if len(rb) == 0 {
		return capDistance(len(ra), opts.MaxDistance)
	}
	if opts.MaxDistance > 0 && len(ra)-len(rb) > opts.MaxDistance {
		return opts.MaxDistance + 1
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		rowMin := curr[0]
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			d := del
			if ins < d {
				d = ins
			}
			if sub < d {
				d = sub
			}
			curr[j] = d
			if d < rowMin {
				rowMin = d
			}
		}
		if opts.MaxDistance > 0 && rowMin > opts.MaxDistance {
			return opts.MaxDistance + 1
		}
		prev, curr = curr, prev
	}

	return capDistance(prev[len(rb)], opts.MaxDistance)
}

func capDistance(d, max int) int {
	if max > 0 && d > max {
		return max + 1
	}
	return d
}
