package unifysync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"bitbucket.org/platesync/unify_backend/matching"
	"bitbucket.org/platesync/unify_backend/models"
)

var ErrNoUsableInput = errors.New("no platform export could be parsed")

// RunConfig is the full configuration surface of one preprocessing run:
// the linguistic matching rules plus the location table.
type RunConfig struct {
	Matching        matching.Config `json:"matching"`
	Locations       []LocationRow   `json:"locations" validate:"dive"`
	DefaultTimezone string          `json:"default_timezone"`
}

// Options are caller-visible run policies.
type Options struct {
	// AllowPartial keeps the run alive when one platform's export fails to
	// parse, continuing with the remaining platforms. When false, any parse
	// failure aborts the whole run and no snapshot is produced. This is the
	// single, uniform policy for platform-level failures; record-level gaps
	// always drop the record, never the batch.
	AllowPartial bool

	Logger *logrus.Logger
}

// Run executes one full preprocessing pass: locations, catalog ingestion,
// the three platform mappers (concurrently), and snapshot assembly. The
// returned snapshot is complete and versioned; on error no snapshot is
// produced at all.
func Run(ctx context.Context, inputs Inputs, cfg RunConfig, opts Options) (*models.Snapshot, *RunStats, error) {
	docs, skipped, err := ParseInputs(inputs, opts)
	if err != nil {
		return nil, nil, err
	}
	snap, stats, err := RunDocuments(ctx, docs, cfg, opts)
	if err != nil {
		return nil, nil, err
	}
	stats.SkippedPlatforms = skipped
	return snap, stats, nil
}

// ParseInputs decodes the raw export documents. A parse failure is fatal
// for that platform's contribution; Options.AllowPartial decides whether
// the run survives it.
func ParseInputs(inputs Inputs, opts Options) (Documents, []models.SourcePlatform, error) {
	var docs Documents
	var skipped []models.SourcePlatform

	fail := func(platform models.SourcePlatform, err error) error {
		if !opts.AllowPartial {
			return fmt.Errorf("parse %s export: %w", platform, err)
		}
		skipped = append(skipped, platform)
		if opts.Logger != nil {
			opts.Logger.WithFields(logrus.Fields{"platform": platform}).
				Warnf("ParseInputs: export unusable, continuing without it: %v", err)
		}
		return nil
	}

	if len(inputs.Toast) > 0 {
		var doc ToastExport
		if err := json.Unmarshal(inputs.Toast, &doc); err != nil {
			if ferr := fail(models.SourcePlatformToast, err); ferr != nil {
				return Documents{}, nil, ferr
			}
		} else {
			docs.Toast = &doc
		}
	}
	if len(inputs.DoorDash) > 0 {
		var doc DoorDashExport
		if err := json.Unmarshal(inputs.DoorDash, &doc); err != nil {
			if ferr := fail(models.SourcePlatformDoorDash, err); ferr != nil {
				return Documents{}, nil, ferr
			}
		} else {
			docs.DoorDash = &doc
		}
	}
	if len(inputs.Square) > 0 {
		var doc SquareExport
		if err := json.Unmarshal(inputs.Square, &doc); err != nil {
			if ferr := fail(models.SourcePlatformSquare, err); ferr != nil {
				return Documents{}, nil, ferr
			}
		} else {
			docs.Square = &doc
		}
	}

	if docs.Toast == nil && docs.DoorDash == nil && docs.Square == nil {
		return Documents{}, nil, ErrNoUsableInput
	}
	return docs, skipped, nil
}

// RunDocuments is Run over already-decoded exports; tests and embedders use
// it directly.
func RunDocuments(ctx context.Context, docs Documents, cfg RunConfig, opts Options) (*models.Snapshot, *RunStats, error) {
	matcher, err := matching.NewMatcher(cfg.Matching)
	if err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var squareLocations []SquareLocation
	var squareCatalog []SquareCatalogObject
	if docs.Square != nil {
		squareLocations = docs.Square.Locations
		squareCatalog = docs.Square.Catalog
	}

	locations, locationMap := BuildLocations(cfg.Locations, squareLocations, cfg.DefaultTimezone)
	catalogData := IngestCatalog(matcher, squareCatalog)

	mctx := &MapperContext{
		Locations: locationMap,
		Catalog:   catalogData,
		Matcher:   matcher,
		Logger:    opts.Logger,
	}

	// The mappers share only read-only state and each owns its result
	// batch, so one goroutine per platform needs no locking; batches are
	// merged after all three have returned.
	results := make([]*MapperResult, 3)
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		results[0] = MapToastOrders(mctx, docs.Toast)
	}()
	go func() {
		defer wg.Done()
		results[1] = MapDoorDashOrders(mctx, docs.DoorDash)
	}()
	go func() {
		defer wg.Done()
		results[2] = MapSquareOrders(mctx, docs.Square)
	}()
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	snap, stats := assembleSnapshot(locations, catalogData, results)
	if err := snap.Validate(); err != nil {
		return nil, nil, err
	}
	return snap, stats, nil
}

// assembleSnapshot merges the independent mapper batches in fixed platform
// order. Variations collapse by their deterministic id, aliases by
// (raw name, platform); first writer wins.
func assembleSnapshot(locations []*models.Location, catalogData *CatalogData, results []*MapperResult) (*models.Snapshot, *RunStats) {
	snap := &models.Snapshot{
		SchemaVersion: models.SchemaVersion,
		GeneratedAt:   time.Now().UTC(),
		Locations:     locations,
		Categories:    catalogData.Categories,
		Products:      catalogData.Products,
		Variations:    append([]*models.ProductVariation{}, catalogData.Variations...),
		Aliases:       []*models.ProductAlias{},
		Orders:        []*models.Order{},
		Items:         []*models.OrderItem{},
		Payments:      []*models.Payment{},
	}

	stats := &RunStats{Platforms: make(map[models.SourcePlatform]PlatformStats, len(results))}

	seenVariations := make(map[string]struct{}, len(snap.Variations))
	for _, v := range snap.Variations {
		seenVariations[v.ID] = struct{}{}
	}
	seenAliases := make(map[string]struct{})

	for _, res := range results {
		if res == nil {
			continue
		}
		for _, v := range res.Variations {
			if _, dup := seenVariations[v.ID]; dup {
				continue
			}
			seenVariations[v.ID] = struct{}{}
			snap.Variations = append(snap.Variations, v)
		}
		for _, a := range res.Aliases {
			if _, dup := seenAliases[a.ID]; dup {
				continue
			}
			seenAliases[a.ID] = struct{}{}
			snap.Aliases = append(snap.Aliases, a)
		}
		snap.Orders = append(snap.Orders, res.Orders...)
		snap.Items = append(snap.Items, res.Items...)
		snap.Payments = append(snap.Payments, res.Payments...)
		stats.Platforms[res.Platform] = res.Stats
	}

	stats.Locations = len(snap.Locations)
	stats.Categories = len(snap.Categories)
	stats.Products = len(snap.Products)
	stats.Variations = len(snap.Variations)
	stats.Aliases = len(snap.Aliases)
	stats.Orders = len(snap.Orders)
	stats.Items = len(snap.Items)
	stats.Payments = len(snap.Payments)
	return snap, stats
}
