package models

import "time"

// Payment amounts are minor units. Fully-refunded payments are excluded from
// the snapshot entirely.
type Payment struct {
	ID                 string      `gorm:"primary_key;size:36" json:"id"`
	OrderID            string      `gorm:"size:36;not null;index" json:"order_id"`
	SourcePaymentID    string      `gorm:"size:64;not null" json:"source_payment_id"`
	Type               PaymentType `gorm:"size:16;not null" json:"type"`
	CardBrand          string      `gorm:"size:32" json:"card_brand,omitempty"`
	LastFour           string      `gorm:"size:4" json:"last_four,omitempty"`
	AmountCents        int64       `gorm:"not null" json:"amount_cents"`
	TipCents           int64       `json:"tip_cents"`
	ProcessingFeeCents int64       `json:"processing_fee_cents"`
	PaidAt             time.Time   `json:"paid_at"`
}
