package unifysync

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"bitbucket.org/platesync/unify_backend/models"
	"bitbucket.org/platesync/unify_backend/utils"
)

// MapToastOrders maps the Toast POS export into the canonical shape. One
// canonical Order is emitted per check (the check is the bill); the parent
// order contributes dining option and channel.
func MapToastOrders(ctx *MapperContext, export *ToastExport) *MapperResult {
	b := newMapperBatch(ctx, models.SourcePlatformToast)
	if export == nil {
		return b.result
	}

	for _, src := range export.Orders {
		if src.Voided {
			b.result.Stats.ItemlessOrdersDropped++
			b.warn("MapToastOrders", "order voided at source", logrus.Fields{"order": src.GUID})
			continue
		}
		loc, ok := b.ctx.Locations.Resolve(src.RestaurantGUID)
		if !ok {
			b.result.Stats.UnknownLocationOrders++
			b.warn("MapToastOrders", "unknown restaurant guid", logrus.Fields{
				"order":      src.GUID,
				"restaurant": src.RestaurantGUID,
			})
			continue
		}

		for _, check := range src.Checks {
			b.mapToastCheck(src, check, loc.ID)
		}
	}

	return b.result
}

func (b *mapperBatch) mapToastCheck(src ToastOrder, check ToastCheck, locationID string) {
	orderID := models.NewOrderID(models.SourcePlatformToast, check.GUID)

	items := make([]*models.OrderItem, 0, len(check.Selections))
	for _, sel := range check.Selections {
		if sel.Voided {
			b.result.Stats.VoidedItems++
			continue
		}
		resolved, ok := b.resolveProduct(sel.DisplayName)
		if !ok {
			b.result.Stats.UnresolvedItems++
			b.warn("mapToastCheck", "unresolved product", logrus.Fields{
				"order": check.GUID,
				"name":  sel.DisplayName,
			})
			continue
		}
		b.registerAlias(resolved.Product.ID, sel.DisplayName)

		qty := quantityFromNumber(sel.Quantity)
		totalCents := centsFromNumber(sel.Price)
		item := &models.OrderItem{
			ID:                  models.NewOrderItemID(orderID, len(items)),
			OrderID:             orderID,
			ProductID:           &resolved.Product.ID,
			RawName:             sel.DisplayName,
			Quantity:            qty,
			UnitPriceCents:      totalCents / int64(qty),
			TotalPriceCents:     totalCents,
			TaxCents:            centsFromNumber(sel.Tax),
			SpecialInstructions: sel.SpecialRequest,
		}
		if resolved.Variation != nil {
			item.VariationID = &resolved.Variation.ID
		}
		for _, mod := range sel.Modifiers {
			item.Modifiers = append(item.Modifiers, models.Modifier{
				Name:       mod.DisplayName,
				PriceCents: centsFromNumber(mod.Price),
			})
		}
		items = append(items, item)
	}

	// Zero kept items — not zero raw items — drops the whole check.
	if len(items) == 0 {
		b.result.Stats.ItemlessOrdersDropped++
		b.warn("mapToastCheck", "no items survived filtering", logrus.Fields{"order": check.GUID})
		return
	}

	// Toast reports total and tax; subtotal is derived.
	totalCents := centsFromNumber(check.TotalAmount)
	taxCents := centsFromNumber(check.TaxAmount)
	tipCents := centsFromNumber(check.TipAmount)

	createdAt := parseTime(src.OpenedDate)
	closedAt := parseTime(src.ClosedDate)
	status := models.OrderStatusOpen
	if !closedAt.IsZero() {
		status = models.OrderStatusCompleted
	}

	order := &models.Order{
		ID:            orderID,
		Source:        models.SourcePlatformToast,
		SourceOrderID: check.GUID,
		LocationID:    locationID,
		OrderType:     models.NormalizeOrderType(src.DiningOption),
		Channel:       models.NormalizeChannel(strings.ReplaceAll(src.Source, " ", "_")),
		Status:        status,
		CreatedAt:     createdAt,
		ClosedAt:      timePtr(closedAt),
		SubtotalCents: totalCents - taxCents - tipCents,
		TaxCents:      taxCents,
		TipCents:      tipCents,
		TotalCents:    totalCents,
	}

	for _, pay := range check.Payments {
		if strings.EqualFold(strings.TrimSpace(pay.RefundStatus), "FULL") {
			b.result.Stats.RefundedPaymentsDropped++
			continue
		}
		b.result.Payments = append(b.result.Payments, &models.Payment{
			ID:              models.NewPaymentID(orderID, pay.GUID),
			OrderID:         orderID,
			SourcePaymentID: pay.GUID,
			Type:            models.NormalizePaymentType(pay.Type),
			CardBrand:       pay.CardType,
			LastFour:        pay.Last4Digits,
			AmountCents:     centsFromNumber(pay.Amount),
			TipCents:        centsFromNumber(pay.TipAmount),
			PaidAt:          parseTime(pay.PaidDate),
		})
		b.result.Stats.Payments++
	}

	b.result.Orders = append(b.result.Orders, order)
	b.result.Items = append(b.result.Items, items...)
	b.result.Stats.Orders++
	b.result.Stats.Items += len(items)
}

func centsFromNumber(n json.Number) int64 {
	return utils.ParseDollarsToCents(n.String())
}

// quantityFromNumber floors fractional quantities and clamps to a minimum
// of one; weight-sold items report fractional counts.
func quantityFromNumber(n json.Number) int {
	if n.String() == "" {
		return 1
	}
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil || f < 1 {
		return 1
	}
	return int(f)
}
