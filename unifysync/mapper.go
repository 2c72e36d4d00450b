package unifysync

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"bitbucket.org/platesync/unify_backend/matching"
	"bitbucket.org/platesync/unify_backend/models"
)

// MapperContext is the shared read-only state every platform mapper
// resolves against. Nothing in here may be mutated once the mappers start;
// that discipline is what makes running them concurrently safe without a
// locking protocol.
type MapperContext struct {
	Locations LocationMap
	Catalog   *CatalogData
	Matcher   *matching.Matcher
	Logger    *logrus.Logger
}

// MapperResult is one platform's independent output batch. Batches are
// merged only after every mapper has returned.
type MapperResult struct {
	Platform   models.SourcePlatform
	Orders     []*models.Order
	Items      []*models.OrderItem
	Payments   []*models.Payment
	Aliases    []*models.ProductAlias
	Variations []*models.ProductVariation
	Stats      PlatformStats
}

// mapperBatch wraps a MapperResult with the per-run bookkeeping a single
// mapper needs: alias dedup and locally-discovered variations. It is owned
// by exactly one mapper goroutine.
type mapperBatch struct {
	ctx           *MapperContext
	result        *MapperResult
	seenAliases   map[string]struct{}
	newVariations map[string]*models.ProductVariation
}

func newMapperBatch(ctx *MapperContext, platform models.SourcePlatform) *mapperBatch {
	return &mapperBatch{
		ctx: ctx,
		result: &MapperResult{
			Platform:   platform,
			Orders:     []*models.Order{},
			Items:      []*models.OrderItem{},
			Payments:   []*models.Payment{},
			Aliases:    []*models.ProductAlias{},
			Variations: []*models.ProductVariation{},
		},
		seenAliases:   make(map[string]struct{}),
		newVariations: make(map[string]*models.ProductVariation),
	}
}

// resolvedItem is the outcome of pushing one raw line-item name through the
// group classifier and the catalog resolver.
type resolvedItem struct {
	Product   *models.Product
	Variation *models.ProductVariation
}

// resolveProduct classifies the raw name: configured product groups first
// (they encode operator knowledge), the canonical-catalog resolver second.
func (b *mapperBatch) resolveProduct(rawName string) (resolvedItem, bool) {
	rawName = matching.NormalizeName(rawName)
	if rawName == "" {
		return resolvedItem{}, false
	}

	if gm, ok := b.ctx.Matcher.MatchProductToGroup(rawName); ok {
		product, found := b.ctx.Catalog.Catalog.FindCanonicalProduct(gm.CanonicalName)
		if found {
			var variation *models.ProductVariation
			if gm.VariationName != "" {
				variation = b.resolveVariation(product.ID, gm.VariationName, rawName)
			}
			return resolvedItem{Product: product, Variation: variation}, true
		}
	}

	product, found := b.ctx.Catalog.Catalog.FindCanonicalProduct(rawName)
	if !found {
		return resolvedItem{}, false
	}

	var variation *models.ProductVariation
	if ext := b.ctx.Matcher.ExtractVariation(rawName); ext.Matched {
		variation = b.resolveVariation(product.ID, ext.Name, rawName)
	}
	return resolvedItem{Product: product, Variation: variation}, true
}

// resolveVariation looks the normalized name up in the pre-built index, then
// in this batch's own discoveries, and only then mints a new row. Variation
// ids are deterministic, so two mappers discovering the same variation
// independently produce the same row and the merge collapses them.
func (b *mapperBatch) resolveVariation(productID, name, sourceRawName string) *models.ProductVariation {
	normalized := matching.NormalizeVariationName(name)
	if normalized == "" {
		return nil
	}
	if v, ok := b.ctx.Catalog.VariationIndex.Lookup(productID, normalized); ok {
		return v
	}
	key := variationKey(productID, normalized)
	if v, ok := b.newVariations[key]; ok {
		return v
	}
	v := &models.ProductVariation{
		ID:            models.NewVariationID(productID, normalized),
		ProductID:     productID,
		Name:          normalized,
		Type:          classifyVariationType(b.ctx.Matcher, normalized),
		SourceRawName: sourceRawName,
	}
	b.newVariations[key] = v
	b.result.Variations = append(b.result.Variations, v)
	return v
}

// registerAlias records the (raw name, platform) -> product mapping the
// first time this batch sees it. First writer wins; replays are no-ops.
func (b *mapperBatch) registerAlias(productID, rawName string) {
	rawName = matching.NormalizeName(rawName)
	if rawName == "" {
		return
	}
	if _, seen := b.seenAliases[rawName]; seen {
		return
	}
	b.seenAliases[rawName] = struct{}{}
	b.result.Aliases = append(b.result.Aliases, &models.ProductAlias{
		ID:        models.NewAliasID(rawName, b.result.Platform),
		ProductID: productID,
		RawName:   rawName,
		Source:    b.result.Platform,
	})
}

func (b *mapperBatch) warn(funcName, context string, fields logrus.Fields) {
	if b.ctx.Logger == nil {
		return
	}
	fields["platform"] = b.result.Platform
	b.ctx.Logger.WithFields(fields).Warnf("%s: %s", funcName, context)
}

// parseTime accepts RFC3339 with or without sub-second precision; the zero
// time signals "absent" to callers.
func parseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	// The third layout is Toast's: millisecond precision, colonless offset.
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.000-0700", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
