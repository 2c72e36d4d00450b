package matching

import (
	"unicode/utf8"

	"bitbucket.org/platesync/unify_backend/models"
)

// DefaultResolverThreshold is the base acceptance distance for catalog
// matching. The second-chance tier (≤ 25% of key length, capped at 5) exists
// because a fixed small threshold is too strict for long multi-word names
// and too loose for short ones.
const (
	DefaultResolverThreshold = 3
	resolverDistanceCeiling  = 5
)

type catalogEntry struct {
	product *models.Product
	key     string
}

// Catalog is the read-only canonical product index the mappers resolve
// against. Build it fully before any mapper runs; it is safe for concurrent
// reads and must not be mutated afterwards.
type Catalog struct {
	matcher *Matcher
	entries []catalogEntry
	byKey   map[string]*models.Product
	byID    map[string]*models.Product
}

func NewCatalog(m *Matcher) *Catalog {
	return &Catalog{
		matcher: m,
		byKey:   make(map[string]*models.Product),
		byID:    make(map[string]*models.Product),
	}
}

// Add indexes a canonical product under its comparison key. If two products
// collapse to the same key, the first keeps the exact-match slot — catalog
// order is authoritative.
func (c *Catalog) Add(p *models.Product) {
	key := c.matcher.ComparisonKey(p.Name)
	c.entries = append(c.entries, catalogEntry{product: p, key: key})
	if _, exists := c.byKey[key]; !exists {
		c.byKey[key] = p
	}
	c.byID[p.ID] = p
}

func (c *Catalog) Len() int { return len(c.entries) }

func (c *Catalog) ByID(id string) (*models.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// FindCanonicalProduct resolves a raw line-item name to the best catalog
// entry using the default threshold.
func (c *Catalog) FindCanonicalProduct(rawName string) (*models.Product, bool) {
	return c.FindCanonicalProductWithThreshold(rawName, DefaultResolverThreshold)
}

// FindCanonicalProductWithThreshold tries an exact comparison-key match
// first, then scans the catalog keeping the minimum bounded distance.
// Accepts when the minimum is within threshold, or — second chance for long
// names — within a quarter of the key length and at most 5.
func (c *Catalog) FindCanonicalProductWithThreshold(rawName string, threshold int) (*models.Product, bool) {
	key := c.matcher.ComparisonKey(rawName)
	if key == "" {
		return nil, false
	}
	if p, ok := c.byKey[key]; ok {
		return p, true
	}

	bound := threshold
	if bound < resolverDistanceCeiling {
		bound = resolverDistanceCeiling
	}

	best := bound + 1
	var bestProduct *models.Product
	for _, entry := range c.entries {
		d := Distance(key, entry.key, DistanceOptions{MaxDistance: bound})
		if d < best {
			best = d
			bestProduct = entry.product
		}
	}
	if bestProduct == nil {
		return nil, false
	}

	if best <= threshold {
		return bestProduct, true
	}
	keyLen := utf8.RuneCountInString(key)
	if best <= keyLen/4 && best <= resolverDistanceCeiling {
		return bestProduct, true
	}
	return nil, false
}
