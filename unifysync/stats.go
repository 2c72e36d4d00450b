package unifysync

import "bitbucket.org/platesync/unify_backend/models"

// PlatformStats is the per-platform outcome report: emitted counts plus
// per-category drop counts, so operators can judge match quality without
// reading logs line by line.
type PlatformStats struct {
	Orders   int `json:"orders"`
	Items    int `json:"items"`
	Payments int `json:"payments"`

	UnknownLocationOrders   int `json:"unknown_location_orders"`
	VoidedItems             int `json:"voided_items"`
	UnresolvedItems         int `json:"unresolved_items"`
	ItemlessOrdersDropped   int `json:"itemless_orders_dropped"`
	RefundedPaymentsDropped int `json:"refunded_payments_dropped"`
}

// RunStats summarizes one completed preprocessing run.
type RunStats struct {
	Locations  int `json:"locations"`
	Categories int `json:"categories"`
	Products   int `json:"products"`
	Variations int `json:"variations"`
	Aliases    int `json:"aliases"`
	Orders     int `json:"orders"`
	Items      int `json:"items"`
	Payments   int `json:"payments"`

	Platforms map[models.SourcePlatform]PlatformStats `json:"platforms"`
	// SkippedPlatforms lists platforms whose export failed to parse on a
	// partial-coverage run.
	SkippedPlatforms []models.SourcePlatform `json:"skipped_platforms,omitempty"`
}
