package models

import "time"

// Order money fields are minor units (cents). Every persisted Order carries
// at least one OrderItem; itemless orders are dropped by the mappers, never
// persisted.
type Order struct {
	ID              string         `gorm:"primary_key;size:36" json:"id"`
	Source          SourcePlatform `gorm:"size:16;not null;index:idx_order_source_native,unique" json:"source"`
	SourceOrderID   string         `gorm:"size:64;not null;index:idx_order_source_native,unique" json:"source_order_id"`
	LocationID      string         `gorm:"size:36;not null;index" json:"location_id"`
	OrderType       OrderType      `gorm:"size:32;not null" json:"order_type"`
	Channel         Channel        `gorm:"size:32;not null" json:"channel"`
	Status          OrderStatus    `gorm:"size:32;not null" json:"status"`
	CreatedAt       time.Time      `gorm:"not null" json:"created_at"`
	ClosedAt        *time.Time     `json:"closed_at,omitempty"`
	SubtotalCents   int64          `gorm:"not null" json:"subtotal_cents"`
	TaxCents        int64          `gorm:"not null" json:"tax_cents"`
	TipCents        int64          `gorm:"not null" json:"tip_cents"`
	TotalCents      int64          `gorm:"not null" json:"total_cents"`
	PlatformFeeCents int64         `json:"platform_fee_cents"`
	ContainsAlcohol bool           `json:"contains_alcohol"`
	IsCatering      bool           `json:"is_catering"`
}

type OrderItem struct {
	ID                  string     `gorm:"primary_key;size:36" json:"id"`
	OrderID             string     `gorm:"size:36;not null;index" json:"order_id"`
	ProductID           *string    `gorm:"size:36;index" json:"product_id,omitempty"`
	VariationID         *string    `gorm:"size:36;index" json:"variation_id,omitempty"`
	RawName             string     `gorm:"size:255;not null" json:"raw_name"`
	Quantity            int        `gorm:"not null" json:"quantity"`
	UnitPriceCents      int64      `gorm:"not null" json:"unit_price_cents"`
	TotalPriceCents     int64      `gorm:"not null" json:"total_price_cents"`
	TaxCents            int64      `json:"tax_cents"`
	Modifiers           []Modifier `gorm:"serializer:json" json:"modifiers,omitempty"`
	SpecialInstructions string     `gorm:"type:text" json:"special_instructions,omitempty"`
}

// Modifier order is preserved from the source line item.
type Modifier struct {
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
}
