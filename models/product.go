package models

// Product is the authoritative canonical catalog entry, sourced from the
// Square catalog feed. Matching never alters a Product; it only attaches
// aliases and variations.
type Product struct {
	ID          string `gorm:"primary_key;size:36" json:"id"`
	Name        string `gorm:"size:255;not null" json:"name"`
	CategoryID  string `gorm:"size:36;index" json:"category_id,omitempty"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	SourceID    string `gorm:"size:64;index" json:"source_id,omitempty"`
}

// ProductVariation is a size/quantity/serving/strength qualifier attached to
// a product. (ProductID, Name) is unique; raw names that normalize to the
// same variation collapse to one row.
type ProductVariation struct {
	ID            string        `gorm:"primary_key;size:36" json:"id"`
	ProductID     string        `gorm:"size:36;not null;index:idx_variation_product_name,unique" json:"product_id"`
	Name          string        `gorm:"size:100;not null;index:idx_variation_product_name,unique" json:"name"`
	Type          VariationType `gorm:"size:16;not null" json:"type"`
	SourceRawName string        `gorm:"size:255" json:"source_raw_name,omitempty"`
}

// ProductAlias records that one platform's raw product string denotes a
// canonical product. (RawName, Source) is unique; the first writer wins.
type ProductAlias struct {
	ID        string         `gorm:"primary_key;size:36" json:"id"`
	ProductID string         `gorm:"size:36;not null;index" json:"product_id"`
	RawName   string         `gorm:"size:255;not null;index:idx_alias_raw_source,unique" json:"raw_name"`
	Source    SourcePlatform `gorm:"size:16;not null;index:idx_alias_raw_source,unique" json:"source"`
}
