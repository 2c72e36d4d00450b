package unifysync

import (
	"strings"

	"bitbucket.org/platesync/unify_backend/matching"
	"bitbucket.org/platesync/unify_backend/models"
)

// VariationIndex resolves (product id, normalized variation name) to the
// already-known variation row. Built during catalog ingestion, read-only
// while the mappers run.
type VariationIndex struct {
	byKey map[string]*models.ProductVariation
}

func NewVariationIndex() *VariationIndex {
	return &VariationIndex{byKey: make(map[string]*models.ProductVariation)}
}

func variationKey(productID, name string) string {
	return productID + "|" + strings.ToLower(name)
}

func (ix *VariationIndex) Lookup(productID, name string) (*models.ProductVariation, bool) {
	v, ok := ix.byKey[variationKey(productID, name)]
	return v, ok
}

func (ix *VariationIndex) add(v *models.ProductVariation) {
	key := variationKey(v.ProductID, v.Name)
	if _, exists := ix.byKey[key]; !exists {
		ix.byKey[key] = v
	}
}

// variationRef lets the Square mapper resolve a line item directly through
// its catalog_object_id instead of name matching.
type variationRef struct {
	ProductID   string
	VariationID string
}

// CatalogData is everything catalog ingestion produces: the canonical
// category/product/variation rows plus the matching index structures the
// mappers read.
type CatalogData struct {
	Categories []*models.Category
	Products   []*models.Product
	Variations []*models.ProductVariation

	Catalog        *matching.Catalog
	VariationIndex *VariationIndex

	squareVariations map[string]variationRef
}

// SquareVariationRef resolves a Square catalog_object_id from an order line
// item to the canonical product/variation pair it was ingested as.
func (cd *CatalogData) SquareVariationRef(catalogObjectID string) (variationRef, bool) {
	ref, ok := cd.squareVariations[catalogObjectID]
	return ref, ok
}

// IngestCatalog builds the canonical product catalog from Square's rich
// catalog feed. Categories dedupe by normalized name; each item becomes one
// Product; item variations seed the variation index with normalized names.
func IngestCatalog(matcher *matching.Matcher, objects []SquareCatalogObject) *CatalogData {
	cd := &CatalogData{
		Categories:       []*models.Category{},
		Products:         []*models.Product{},
		Variations:       []*models.ProductVariation{},
		Catalog:          matching.NewCatalog(matcher),
		VariationIndex:   NewVariationIndex(),
		squareVariations: make(map[string]variationRef),
	}

	categoryBySourceID := make(map[string]*models.Category)
	categoryByName := make(map[string]*models.Category)

	for _, obj := range objects {
		if obj.Type != "CATEGORY" || obj.CategoryData == nil {
			continue
		}
		name := matching.NormalizeCategoryName(obj.CategoryData.Name)
		if name == "" {
			continue
		}
		cat, ok := categoryByName[name]
		if !ok {
			cat = &models.Category{ID: models.NewCategoryID(name), Name: name}
			categoryByName[name] = cat
			cd.Categories = append(cd.Categories, cat)
		}
		categoryBySourceID[obj.ID] = cat
	}

	for _, obj := range objects {
		if obj.Type != "ITEM" || obj.ItemData == nil {
			continue
		}
		name := matching.NormalizeName(obj.ItemData.Name)
		if name == "" {
			continue
		}
		product := &models.Product{
			ID:          models.NewProductID(obj.ID),
			Name:        name,
			Description: strings.TrimSpace(obj.ItemData.Description),
			SourceID:    obj.ID,
		}
		if cat, ok := categoryBySourceID[obj.ItemData.CategoryID]; ok {
			product.CategoryID = cat.ID
		}
		cd.Products = append(cd.Products, product)
		cd.Catalog.Add(product)

		for _, sv := range obj.ItemData.Variations {
			if sv.ItemVariationData == nil {
				continue
			}
			rawName := strings.TrimSpace(sv.ItemVariationData.Name)
			// Square uses "Regular" as the implicit no-variation slot.
			if rawName == "" || strings.EqualFold(rawName, "regular") {
				if sv.ID != "" {
					cd.squareVariations[sv.ID] = variationRef{ProductID: product.ID}
				}
				continue
			}
			normalized := matching.NormalizeVariationName(rawName)
			variation, exists := cd.VariationIndex.Lookup(product.ID, normalized)
			if !exists {
				variation = &models.ProductVariation{
					ID:            models.NewVariationID(product.ID, normalized),
					ProductID:     product.ID,
					Name:          normalized,
					Type:          classifyVariationType(matcher, rawName),
					SourceRawName: rawName,
				}
				cd.VariationIndex.add(variation)
				cd.Variations = append(cd.Variations, variation)
			}
			if sv.ID != "" {
				cd.squareVariations[sv.ID] = variationRef{
					ProductID:   product.ID,
					VariationID: variation.ID,
				}
			}
		}
	}

	return cd
}

// classifyVariationType runs the variation label itself through the pattern
// library; labels no rule recognizes (flavors, styles) default to serving.
func classifyVariationType(matcher *matching.Matcher, rawName string) models.VariationType {
	if ext := matcher.ExtractVariation(rawName); ext.Matched {
		return ext.Type
	}
	return models.VariationTypeServing
}
