package utils

import (
	"github.com/shopspring/decimal"
)

// UniqueSlice returns s with duplicates removed, preserving first-seen order.
func UniqueSlice[T comparable](s []T) []T {
	seen := make(map[T]struct{}, len(s))
	out := make([]T, 0, len(s))
	for _, v := range s {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// DollarsToCents converts a dollar-denominated decimal to integer minor
// units, rounding half up the way the platforms themselves round.
func DollarsToCents(d decimal.Decimal) int64 {
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// ParseDollarsToCents parses a dollar string ("9.99") into cents. Empty or
// malformed input yields zero, matching the platforms' habit of omitting
// zero-valued money fields.
func ParseDollarsToCents(raw string) int64 {
	if raw == "" {
		return 0
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0
	}
	return DollarsToCents(d)
}
