package matching

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"bitbucket.org/platesync/unify_backend/models"
)

var ErrInvalidConfig = errors.New("invalid matching config")

// VariationRule is one configured extraction rule. Rules are evaluated in
// list order and the first match wins, so specific patterns must be listed
// before generic ones — the order is policy, not an implementation detail.
type VariationRule struct {
	Name    string               `json:"name" validate:"required"`
	Pattern string               `json:"pattern" validate:"required"`
	Type    models.VariationType `json:"type" validate:"required,oneof=quantity size serving strength"`
	// Format is a regexp expansion template applied to the rule's captures,
	// e.g. "$1 pcs", or a fixed replacement like "Large".
	Format string `json:"format" validate:"required"`
}

// ProductGroup recognizes one canonical product from raw text via a trailing
// suffix word and/or contained keywords. At least one of the two must be set.
type ProductGroup struct {
	CanonicalName string   `json:"canonical_name" validate:"required"`
	Suffix        string   `json:"suffix"`
	Keywords      []string `json:"keywords"`
}

// Config is the full matching configuration surface. Operators retune
// behavior by editing this data, not engine code.
type Config struct {
	VariationRules []VariationRule   `json:"variation_rules" validate:"dive"`
	Abbreviations  map[string]string `json:"abbreviations"`
	Groups         []ProductGroup    `json:"product_groups" validate:"dive"`
}

type compiledRule struct {
	name   string
	re     *regexp.Regexp
	typ    models.VariationType
	format string
}

// Matcher is the compiled, immutable form of a Config. Construct once,
// inject everywhere; safe for concurrent use.
type Matcher struct {
	rules         []compiledRule
	abbreviations map[string]string
	groups        []ProductGroup
}

var configValidator = validator.New()

// NewMatcher validates and compiles cfg. Any configuration problem is fatal
// here, before a single record is processed: matching behavior cannot be
// trusted on a half-valid rule set.
func NewMatcher(cfg Config) (*Matcher, error) {
	if err := configValidator.Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	m := &Matcher{
		abbreviations: make(map[string]string, len(cfg.Abbreviations)),
		groups:        make([]ProductGroup, 0, len(cfg.Groups)),
	}

	for _, rule := range cfg.VariationRules {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %q: %v", ErrInvalidConfig, rule.Name, err)
		}
		m.rules = append(m.rules, compiledRule{
			name:   rule.Name,
			re:     re,
			typ:    rule.Type,
			format: rule.Format,
		})
	}

	for k, v := range cfg.Abbreviations {
		m.abbreviations[strings.ToLower(strings.TrimSpace(k))] = strings.ToLower(strings.TrimSpace(v))
	}

	for _, g := range cfg.Groups {
		g.CanonicalName = strings.TrimSpace(g.CanonicalName)
		g.Suffix = strings.TrimSpace(g.Suffix)
		if g.Suffix == "" && len(g.Keywords) == 0 {
			return nil, fmt.Errorf("%w: group %q has neither suffix nor keywords", ErrInvalidConfig, g.CanonicalName)
		}
		if strings.ContainsAny(g.Suffix, " \t") {
			return nil, fmt.Errorf("%w: group %q: suffix must be a single word", ErrInvalidConfig, g.CanonicalName)
		}
		m.groups = append(m.groups, g)
	}

	return m, nil
}

// DefaultConfig carries the tuned rule set validated against the known
// false-positive/negative fixtures. Product groups are deployment data and
// default to empty.
func DefaultConfig() Config {
	return Config{
		VariationRules: []VariationRule{
			{Name: "piece-count", Pattern: `(?i)\b(\d+)\s*(?:pcs?|pieces?|ct)\b\.?`, Type: models.VariationTypeQuantity, Format: "$1 pcs"},
			{Name: "dozen", Pattern: `(?i)\b(?:a\s+)?dozen\b`, Type: models.VariationTypeQuantity, Format: "12 pcs"},
			{Name: "fluid-ounces", Pattern: `(?i)\b(\d+)\s*oz\b\.?`, Type: models.VariationTypeSize, Format: "$1 oz"},
			{Name: "extra-large", Pattern: `(?i)\b(?:x-?large|extra\s+large|xl)\b\.?`, Type: models.VariationTypeSize, Format: "Extra Large"},
			{Name: "large", Pattern: `(?i)\b(?:lg|lrg|large)\b\.?`, Type: models.VariationTypeSize, Format: "Large"},
			{Name: "small", Pattern: `(?i)\b(?:sm|sml|small)\b\.?`, Type: models.VariationTypeSize, Format: "Small"},
			{Name: "medium", Pattern: `(?i)\b(?:med|md|medium)\b\.?`, Type: models.VariationTypeSize, Format: "Medium"},
			{Name: "family-size", Pattern: `(?i)\b(?:family|party)\s+(?:size|pack)\b`, Type: models.VariationTypeServing, Format: "Family Size"},
			{Name: "half-tray", Pattern: `(?i)\bhalf\s+(?:tray|pan)\b`, Type: models.VariationTypeServing, Format: "Half Tray"},
			{Name: "full-tray", Pattern: `(?i)\bfull\s+(?:tray|pan)\b`, Type: models.VariationTypeServing, Format: "Full Tray"},
			// No bare "hot" rule: it would strip "Hot" out of "Hot Dog".
			{Name: "extra-hot", Pattern: `(?i)\bextra\s+hot\b`, Type: models.VariationTypeStrength, Format: "Extra Hot"},
			{Name: "mild", Pattern: `(?i)\bmild\b`, Type: models.VariationTypeStrength, Format: "Mild"},
			{Name: "spicy", Pattern: `(?i)\bspicy\b`, Type: models.VariationTypeStrength, Format: "Spicy"},
		},
		Abbreviations: map[string]string{
			"coke":  "coca-cola",
			"fries": "french fries",
			"oj":    "orange juice",
			"choc":  "chocolate",
			"chk":   "chicken",
			"chkn":  "chicken",
			"bbq":   "barbecue",
			"blt":   "bacon lettuce tomato",
			"dbl":   "double",
			"sand":  "sandwich",
			"sndwch": "sandwich",
			"quesa": "quesadilla",
		},
	}
}
