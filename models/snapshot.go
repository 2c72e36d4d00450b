package models

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// SchemaVersion stamps every produced snapshot. Bump on any change to the
// canonical entity shapes so the loader can refuse snapshots it does not
// understand.
const SchemaVersion = "2024-09-01"

// Snapshot is the complete, immutable output of one preprocessing run: the
// full row set for every canonical entity, versioned and timestamped. The
// external loader persists collections in foreign-key order: locations and
// categories before products, products before variations/aliases, locations
// before orders, orders before items and payments.
type Snapshot struct {
	SchemaVersion string              `json:"schema_version"`
	GeneratedAt   time.Time           `json:"generated_at"`
	Locations     []*Location         `json:"locations"`
	Categories    []*Category         `json:"categories"`
	Products      []*Product          `json:"products"`
	Variations    []*ProductVariation `json:"variations"`
	Aliases       []*ProductAlias     `json:"aliases"`
	Orders        []*Order            `json:"orders"`
	Items         []*OrderItem        `json:"items"`
	Payments      []*Payment          `json:"payments"`
}

// SnapshotLoader is the persistence boundary. Implementations live outside
// this module; the contract is: validate the top-level shape, then persist
// collections transactionally in dependency order.
type SnapshotLoader interface {
	Load(ctx context.Context, snap *Snapshot) error
}

var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Validate checks the top-level shape the loader relies on. Collection
// emptiness is legal (a platform may have had no traffic); nil collections,
// a missing version, or a zero timestamp are not.
func (s *Snapshot) Validate() error {
	if s.SchemaVersion == "" {
		return fmt.Errorf("%w: missing schema version", ErrInvalidSnapshot)
	}
	if s.GeneratedAt.IsZero() {
		return fmt.Errorf("%w: missing generation timestamp", ErrInvalidSnapshot)
	}
	for name, coll := range map[string]bool{
		"locations":  s.Locations == nil,
		"categories": s.Categories == nil,
		"products":   s.Products == nil,
		"variations": s.Variations == nil,
		"aliases":    s.Aliases == nil,
		"orders":     s.Orders == nil,
		"items":      s.Items == nil,
		"payments":   s.Payments == nil,
	} {
		if coll {
			return fmt.Errorf("%w: nil %s collection", ErrInvalidSnapshot, name)
		}
	}
	return nil
}
