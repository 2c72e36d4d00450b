package unifysync

import (
	"encoding/json"
	"testing"

	"bitbucket.org/platesync/unify_backend/models"
)

func toastFixture() *ToastExport {
	return &ToastExport{
		Orders: []ToastOrder{
			{
				GUID:           "t-ord-1",
				RestaurantGUID: "toast-rest-1",
				DiningOption:   "DINE_IN",
				Source:         "In Store",
				OpenedDate:     "2024-06-01T18:02:11.000+0000",
				ClosedDate:     "2024-06-01T18:40:00Z",
				Checks: []ToastCheck{
					{
						GUID:        "t-chk-1",
						TotalAmount: json.Number("9.99"),
						TaxAmount:   json.Number("0.79"),
						TipAmount:   json.Number("1.00"),
						Selections: []ToastSelection{
							{
								GUID:        "t-sel-1",
								DisplayName: "Lg Coke",
								Quantity:    json.Number("1"),
								Price:       json.Number("3.50"),
								Tax:         json.Number("0.29"),
								Modifiers: []ToastModifier{
									{DisplayName: "No Ice", Price: json.Number("0")},
								},
								SpecialRequest: "extra napkins",
							},
							{
								GUID:        "t-sel-2",
								DisplayName: "Cheeseburger",
								Quantity:    json.Number("1"),
								Price:       json.Number("5.70"),
								Voided:      true,
							},
							{
								GUID:        "t-sel-3",
								DisplayName: "Mystery Stew",
								Quantity:    json.Number("1"),
								Price:       json.Number("0.79"),
							},
						},
						Payments: []ToastPayment{
							{
								GUID:        "t-pay-1",
								Type:        "CREDIT",
								CardType:    "VISA",
								Last4Digits: "1111",
								Amount:      json.Number("9.99"),
								TipAmount:   json.Number("1.00"),
								PaidDate:    "2024-06-01T18:40:00Z",
							},
							{
								GUID:         "t-pay-2",
								Type:         "CREDIT",
								Amount:       json.Number("9.99"),
								RefundStatus: "FULL",
							},
						},
					},
				},
			},
			{
				GUID:           "t-ord-voided",
				RestaurantGUID: "toast-rest-1",
				Voided:         true,
			},
			{
				GUID:           "t-ord-strange",
				RestaurantGUID: "no-such-restaurant",
				Checks:         []ToastCheck{{GUID: "t-chk-x"}},
			},
		},
	}
}

func TestMapToastOrders(t *testing.T) {
	res := MapToastOrders(testMapperContext(t), toastFixture())

	if len(res.Orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(res.Orders))
	}
	order := res.Orders[0]

	if order.ID != models.NewOrderID(models.SourcePlatformToast, "t-chk-1") {
		t.Fatal("order id must derive from the check guid")
	}
	if order.TotalCents != 999 || order.TaxCents != 79 || order.TipCents != 100 {
		t.Fatalf("money wrong: total=%d tax=%d tip=%d", order.TotalCents, order.TaxCents, order.TipCents)
	}
	// Toast reports the gross total; subtotal is derived.
	if order.SubtotalCents != 820 {
		t.Fatalf("subtotal = %d, expected 820", order.SubtotalCents)
	}
	if order.OrderType != models.OrderTypeDineIn {
		t.Fatalf("order type = %q", order.OrderType)
	}
	if order.Channel != models.ChannelPos {
		t.Fatalf("channel = %q", order.Channel)
	}
	if order.Status != models.OrderStatusCompleted || order.ClosedAt == nil {
		t.Fatalf("closed order must be completed: %q closedAt=%v", order.Status, order.ClosedAt)
	}

	// Only the resolvable, unvoided selection survives.
	if len(res.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(res.Items))
	}
	item := res.Items[0]
	if item.RawName != "Lg Coke" || item.TotalPriceCents != 350 || item.TaxCents != 29 {
		t.Fatalf("item wrong: %+v", item)
	}
	if item.VariationID == nil {
		t.Fatal("Lg Coke must carry the Large variation")
	}
	if len(item.Modifiers) != 1 || item.Modifiers[0].Name != "No Ice" {
		t.Fatalf("modifiers wrong: %+v", item.Modifiers)
	}
	if item.SpecialInstructions != "extra napkins" {
		t.Fatalf("special instructions wrong: %q", item.SpecialInstructions)
	}

	if len(res.Payments) != 1 {
		t.Fatalf("expected 1 payment, got %d", len(res.Payments))
	}
	pay := res.Payments[0]
	if pay.Type != models.PaymentTypeCredit || pay.CardBrand != "VISA" || pay.LastFour != "1111" {
		t.Fatalf("payment wrong: %+v", pay)
	}
	if pay.AmountCents != 999 || pay.TipCents != 100 {
		t.Fatalf("payment money wrong: %+v", pay)
	}

	s := res.Stats
	if s.Orders != 1 || s.Items != 1 || s.Payments != 1 {
		t.Fatalf("stats wrong: %+v", s)
	}
	if s.VoidedItems != 1 || s.UnresolvedItems != 1 || s.RefundedPaymentsDropped != 1 {
		t.Fatalf("drop stats wrong: %+v", s)
	}
	if s.UnknownLocationOrders != 1 || s.ItemlessOrdersDropped != 1 {
		t.Fatalf("order drop stats wrong: %+v", s)
	}
}

func TestMapToastOrders_DropsCheckWithNoSurvivingItems(t *testing.T) {
	export := &ToastExport{
		Orders: []ToastOrder{
			{
				GUID:           "t-ord-2",
				RestaurantGUID: "toast-rest-1",
				Checks: []ToastCheck{
					{
						GUID: "t-chk-2",
						Selections: []ToastSelection{
							{DisplayName: "Cheeseburger", Voided: true},
						},
					},
				},
			},
		},
	}
	res := MapToastOrders(testMapperContext(t), export)
	if len(res.Orders) != 0 {
		t.Fatalf("expected no orders, got %d", len(res.Orders))
	}
	if res.Stats.ItemlessOrdersDropped != 1 || res.Stats.VoidedItems != 1 {
		t.Fatalf("stats wrong: %+v", res.Stats)
	}
}

func TestMapToastOrders_NilExport(t *testing.T) {
	res := MapToastOrders(testMapperContext(t), nil)
	if len(res.Orders) != 0 || len(res.Items) != 0 {
		t.Fatal("nil export must produce an empty batch")
	}
}

func TestQuantityFromNumber(t *testing.T) {
	cases := []struct {
		in       string
		expected int
	}{
		{"1", 1},
		{"3", 3},
		{"2.5", 2},
		{"0.4", 1},
		{"0", 1},
		{"", 1},
		{"n/a", 1},
	}
	for _, tc := range cases {
		if got := quantityFromNumber(json.Number(tc.in)); got != tc.expected {
			t.Fatalf("quantityFromNumber(%q) = %d, expected %d", tc.in, got, tc.expected)
		}
	}
}
