package unifysync

import (
	"testing"

	"bitbucket.org/platesync/unify_backend/matching"
)

// Shared fixtures: one location known to all three platforms and a Square
// catalog with the products the mapper tests resolve against.

func testRunConfig() RunConfig {
	cfg := RunConfig{
		Matching: matching.DefaultConfig(),
		Locations: []LocationRow{
			{
				Name:       "Downtown",
				ToastGUID:  "toast-rest-1",
				DoorDashID: "dd-store-1",
				SquareID:   "sq-loc-1",
			},
		},
	}
	cfg.Matching.Groups = []matching.ProductGroup{
		{CanonicalName: "Chicken Wings", Suffix: "Wings"},
	}
	return cfg
}

func testSquareLocations() []SquareLocation {
	return []SquareLocation{
		{
			ID:       "sq-loc-1",
			Name:     "Downtown",
			Timezone: "America/Chicago",
			Phone:    "(312) 555-0175",
			Address: &SquareAddress{
				AddressLine1:  "1 W Main St",
				Locality:      "Chicago",
				AdminDistrict: "IL",
				PostalCode:    "60601",
				Country:       "US",
			},
		},
	}
}

func testSquareCatalog() []SquareCatalogObject {
	return []SquareCatalogObject{
		{Type: "CATEGORY", ID: "cat-entrees", CategoryData: &SquareCategoryData{Name: "Entrees"}},
		{Type: "CATEGORY", ID: "cat-entrees-dup", CategoryData: &SquareCategoryData{Name: "🔥 ENTREES"}},
		{Type: "CATEGORY", ID: "cat-drinks", CategoryData: &SquareCategoryData{Name: "Drinks"}},
		{
			Type: "ITEM", ID: "sq-wings",
			ItemData: &SquareItemData{
				Name:       "Chicken Wings",
				CategoryID: "cat-entrees",
				Variations: []SquareItemVariation{
					{ID: "v-wings-6", ItemVariationData: &SquareItemVariationData{Name: "6 pcs"}},
					{ID: "v-wings-12", ItemVariationData: &SquareItemVariationData{Name: "12 pcs"}},
				},
			},
		},
		{
			Type: "ITEM", ID: "sq-coke",
			ItemData: &SquareItemData{
				Name:       "Coca-Cola",
				CategoryID: "cat-drinks",
				Variations: []SquareItemVariation{
					{ID: "v-coke-lg", ItemVariationData: &SquareItemVariationData{Name: "Large"}},
					{ID: "v-coke-sm", ItemVariationData: &SquareItemVariationData{Name: "Small"}},
				},
			},
		},
		{
			Type: "ITEM", ID: "sq-burger",
			ItemData: &SquareItemData{
				Name:       "Cheeseburger",
				CategoryID: "cat-entrees-dup",
				Variations: []SquareItemVariation{
					{ID: "v-burger-reg", ItemVariationData: &SquareItemVariationData{Name: "Regular"}},
				},
			},
		},
		{
			Type: "ITEM", ID: "sq-churros",
			ItemData: &SquareItemData{Name: "Churros", CategoryID: "cat-entrees"},
		},
	}
}

func testMapperContext(t *testing.T) *MapperContext {
	t.Helper()
	cfg := testRunConfig()
	matcher, err := matching.NewMatcher(cfg.Matching)
	if err != nil {
		t.Fatalf("NewMatcher error: %v", err)
	}
	_, locationMap := BuildLocations(cfg.Locations, testSquareLocations(), "")
	return &MapperContext{
		Locations: locationMap,
		Catalog:   IngestCatalog(matcher, testSquareCatalog()),
		Matcher:   matcher,
	}
}
