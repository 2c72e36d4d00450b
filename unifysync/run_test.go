package unifysync

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"bitbucket.org/platesync/unify_backend/models"
)

func marshalInput(t *testing.T, doc any) []byte {
	t.Helper()
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return data
}

func fullInputs(t *testing.T) Inputs {
	t.Helper()
	square := squareOrdersFixture()
	square.Locations = testSquareLocations()
	square.Catalog = testSquareCatalog()

	// Both Toast and DoorDash sell Buffalo Wings, so both mappers discover
	// the same variation independently.
	toast := toastFixture()
	toast.Orders[0].Checks[0].Selections = append(toast.Orders[0].Checks[0].Selections, ToastSelection{
		GUID:        "t-sel-4",
		DisplayName: "Buffalo Wings",
		Quantity:    json.Number("1"),
		Price:       json.Number("6.49"),
	})

	return Inputs{
		Toast:    marshalInput(t, toast),
		DoorDash: marshalInput(t, doordashFixture()),
		Square:   marshalInput(t, square),
	}
}

func TestRun_EndToEnd(t *testing.T) {
	snap, stats, err := Run(context.Background(), fullInputs(t), testRunConfig(), Options{})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if err := snap.Validate(); err != nil {
		t.Fatalf("snapshot invalid: %v", err)
	}
	if snap.SchemaVersion != models.SchemaVersion {
		t.Fatalf("schema version = %q", snap.SchemaVersion)
	}

	if stats.Locations != 1 || stats.Categories != 2 || stats.Products != 4 {
		t.Fatalf("entity stats wrong: %+v", stats)
	}
	// One kept order per platform.
	if stats.Orders != 3 || len(snap.Orders) != 3 {
		t.Fatalf("expected 3 orders, got stats=%d snap=%d", stats.Orders, len(snap.Orders))
	}
	if stats.Items != 4 || stats.Payments != 3 {
		t.Fatalf("item/payment stats wrong: %+v", stats)
	}
	if len(stats.Platforms) != 3 {
		t.Fatalf("expected stats for 3 platforms, got %v", stats.Platforms)
	}
	if len(stats.SkippedPlatforms) != 0 {
		t.Fatalf("nothing should be skipped: %v", stats.SkippedPlatforms)
	}

	// Every order kept at least one item, and every item points at its order.
	orderIDs := make(map[string]bool, len(snap.Orders))
	for _, o := range snap.Orders {
		orderIDs[o.ID] = true
	}
	itemsPerOrder := make(map[string]int)
	for _, item := range snap.Items {
		if !orderIDs[item.OrderID] {
			t.Fatalf("item %s references unknown order %s", item.ID, item.OrderID)
		}
		itemsPerOrder[item.OrderID]++
	}
	for id := range orderIDs {
		if itemsPerOrder[id] == 0 {
			t.Fatalf("order %s has no items", id)
		}
	}
	for _, pay := range snap.Payments {
		if !orderIDs[pay.OrderID] {
			t.Fatalf("payment %s references unknown order %s", pay.ID, pay.OrderID)
		}
	}

	// Toast's "Buffalo Wings" would mint the same variation DoorDash does;
	// the catalog seeds plus one Buffalo discovery is all that survives.
	seen := make(map[string]bool)
	for _, v := range snap.Variations {
		if seen[v.ID] {
			t.Fatalf("duplicate variation id %s", v.ID)
		}
		seen[v.ID] = true
	}
	var buffalo int
	for _, v := range snap.Variations {
		if v.Name == "Buffalo" {
			buffalo++
		}
	}
	if buffalo != 1 {
		t.Fatalf("expected exactly one Buffalo variation, got %d", buffalo)
	}

	// Aliases are unique per (raw name, platform).
	seenAliases := make(map[string]bool)
	for _, a := range snap.Aliases {
		key := string(a.Source) + "|" + a.RawName
		if seenAliases[key] {
			t.Fatalf("duplicate alias %s", key)
		}
		seenAliases[key] = true
	}
}

func TestRun_Deterministic(t *testing.T) {
	cfg := testRunConfig()
	snapA, _, err := Run(context.Background(), fullInputs(t), cfg, Options{})
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	snapB, _, err := Run(context.Background(), fullInputs(t), cfg, Options{})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	ids := func(s *models.Snapshot) []string {
		var out []string
		for _, o := range s.Orders {
			out = append(out, o.ID)
		}
		for _, i := range s.Items {
			out = append(out, i.ID)
		}
		for _, v := range s.Variations {
			out = append(out, v.ID)
		}
		for _, a := range s.Aliases {
			out = append(out, a.ID)
		}
		return out
	}
	a, b := ids(snapA), ids(snapB)
	if len(a) != len(b) {
		t.Fatalf("id counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("id %d differs: %s vs %s", i, a[i], b[i])
		}
	}
}

func TestRun_ParseFailureAborts(t *testing.T) {
	inputs := fullInputs(t)
	inputs.DoorDash = []byte("{not json")

	_, _, err := Run(context.Background(), inputs, testRunConfig(), Options{})
	if err == nil {
		t.Fatal("expected a parse error to abort the run")
	}
}

func TestRun_AllowPartialSkipsPlatform(t *testing.T) {
	inputs := fullInputs(t)
	inputs.DoorDash = []byte("{not json")

	snap, stats, err := Run(context.Background(), inputs, testRunConfig(), Options{AllowPartial: true})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(stats.SkippedPlatforms) != 1 || stats.SkippedPlatforms[0] != models.SourcePlatformDoorDash {
		t.Fatalf("skipped = %v", stats.SkippedPlatforms)
	}
	if stats.Orders != 2 {
		t.Fatalf("expected 2 orders without doordash, got %d", stats.Orders)
	}
	for _, o := range snap.Orders {
		if o.Source == models.SourcePlatformDoorDash {
			t.Fatal("doordash orders must not appear")
		}
	}
}

func TestRun_NoUsableInput(t *testing.T) {
	_, _, err := Run(context.Background(), Inputs{}, testRunConfig(), Options{})
	if !errors.Is(err, ErrNoUsableInput) {
		t.Fatalf("expected ErrNoUsableInput, got %v", err)
	}

	_, _, err = Run(context.Background(), Inputs{Toast: []byte("{bad")}, testRunConfig(), Options{AllowPartial: true})
	if !errors.Is(err, ErrNoUsableInput) {
		t.Fatalf("expected ErrNoUsableInput when everything is skipped, got %v", err)
	}
}

func TestRun_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := Run(ctx, fullInputs(t), testRunConfig(), Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
