package unifysync

import (
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"bitbucket.org/platesync/unify_backend/models"
)

// MapSquareOrders maps the unified-commerce export. Line items carrying a
// catalog_object_id resolve directly through the ingested catalog; ad-hoc
// amounts fall back to name matching like the other platforms.
func MapSquareOrders(ctx *MapperContext, export *SquareExport) *MapperResult {
	b := newMapperBatch(ctx, models.SourcePlatformSquare)
	if export == nil {
		return b.result
	}

	for _, src := range export.Orders {
		if strings.EqualFold(src.State, "CANCELED") {
			b.result.Stats.ItemlessOrdersDropped++
			b.warn("MapSquareOrders", "order canceled at source", logrus.Fields{"order": src.ID})
			continue
		}
		loc, ok := b.ctx.Locations.Resolve(src.LocationID)
		if !ok {
			b.result.Stats.UnknownLocationOrders++
			b.warn("MapSquareOrders", "unknown location id", logrus.Fields{
				"order":    src.ID,
				"location": src.LocationID,
			})
			continue
		}

		orderID := models.NewOrderID(models.SourcePlatformSquare, src.ID)
		channel := squareChannel(src.Source.Name)

		items := make([]*models.OrderItem, 0, len(src.LineItems))
		for _, line := range src.LineItems {
			qty := squareQuantity(line.Quantity)
			if qty == 0 {
				b.result.Stats.VoidedItems++
				continue
			}

			productID, variationID, ok := b.resolveSquareLine(line)
			if !ok {
				b.result.Stats.UnresolvedItems++
				b.warn("MapSquareOrders", "unresolved product", logrus.Fields{
					"order": src.ID,
					"name":  line.Name,
				})
				continue
			}
			b.registerAlias(productID, squareRawName(line))

			item := &models.OrderItem{
				ID:                  models.NewOrderItemID(orderID, len(items)),
				OrderID:             orderID,
				ProductID:           &productID,
				RawName:             squareRawName(line),
				Quantity:            qty,
				UnitPriceCents:      line.BasePriceMoney.Amount,
				TotalPriceCents:     line.TotalMoney.Amount,
				TaxCents:            line.TotalTaxMoney.Amount,
				SpecialInstructions: line.Note,
			}
			if variationID != "" {
				item.VariationID = &variationID
			}
			for _, mod := range line.Modifiers {
				item.Modifiers = append(item.Modifiers, models.Modifier{
					Name:       mod.Name,
					PriceCents: mod.TotalPriceMoney.Amount,
				})
			}
			items = append(items, item)
		}

		if len(items) == 0 {
			b.result.Stats.ItemlessOrdersDropped++
			b.warn("MapSquareOrders", "no items survived filtering", logrus.Fields{"order": src.ID})
			continue
		}

		// Square reports total, tax and tip; subtotal is derived.
		totalCents := src.TotalMoney.Amount
		taxCents := src.TotalTaxMoney.Amount
		tipCents := src.TotalTipMoney.Amount

		createdAt := parseTime(src.CreatedAt)
		closedAt := parseTime(src.ClosedAt)

		order := &models.Order{
			ID:            orderID,
			Source:        models.SourcePlatformSquare,
			SourceOrderID: src.ID,
			LocationID:    loc.ID,
			OrderType:     squareOrderType(src.Fulfillments, channel),
			Channel:       channel,
			Status:        models.NormalizeOrderStatus(src.State),
			CreatedAt:     createdAt,
			ClosedAt:      timePtr(closedAt),
			SubtotalCents: totalCents - taxCents - tipCents,
			TaxCents:      taxCents,
			TipCents:      tipCents,
			TotalCents:    totalCents,
		}

		for _, tender := range src.Tenders {
			if tender.FullyRefunded {
				b.result.Stats.RefundedPaymentsDropped++
				continue
			}
			payment := &models.Payment{
				ID:                 models.NewPaymentID(orderID, tender.ID),
				OrderID:            orderID,
				SourcePaymentID:    tender.ID,
				Type:               models.NormalizePaymentType(tender.Type),
				AmountCents:        tender.AmountMoney.Amount,
				TipCents:           tender.TipMoney.Amount,
				ProcessingFeeCents: tender.ProcessingFeeMoney.Amount,
				PaidAt:             parseTime(tender.CreatedAt),
			}
			if tender.CardDetails != nil {
				payment.CardBrand = tender.CardDetails.Card.CardBrand
				payment.LastFour = tender.CardDetails.Card.Last4
			}
			b.result.Payments = append(b.result.Payments, payment)
			b.result.Stats.Payments++
		}

		b.result.Orders = append(b.result.Orders, order)
		b.result.Items = append(b.result.Items, items...)
		b.result.Stats.Orders++
		b.result.Stats.Items += len(items)
	}

	return b.result
}

// resolveSquareLine prefers the direct catalog reference; name matching is
// the fallback for ad-hoc line items.
func (b *mapperBatch) resolveSquareLine(line SquareLineItem) (productID, variationID string, ok bool) {
	if line.CatalogObjectID != "" {
		if ref, found := b.ctx.Catalog.SquareVariationRef(line.CatalogObjectID); found {
			return ref.ProductID, ref.VariationID, true
		}
	}
	resolved, found := b.resolveProduct(squareRawName(line))
	if !found {
		return "", "", false
	}
	if resolved.Variation != nil {
		return resolved.Product.ID, resolved.Variation.ID, true
	}
	return resolved.Product.ID, "", true
}

// squareRawName reconstructs the operator-visible item text, variation
// included, so aliases record what the receipt actually said.
func squareRawName(line SquareLineItem) string {
	name := strings.TrimSpace(line.Name)
	variation := strings.TrimSpace(line.VariationName)
	if variation == "" || strings.EqualFold(variation, "regular") {
		return name
	}
	return name + " - " + variation
}

func squareChannel(sourceName string) models.Channel {
	lower := strings.ToLower(sourceName)
	if strings.Contains(lower, "online") || strings.Contains(lower, "ecom") || strings.Contains(lower, "app") {
		return models.ChannelOnline
	}
	return models.ChannelPos
}

// squareOrderType: explicit fulfillment wins; otherwise a register sale is
// table service and an online sale without fulfillment is a pickup.
func squareOrderType(fulfillments []SquareFulfillment, channel models.Channel) models.OrderType {
	for _, f := range fulfillments {
		switch strings.ToUpper(strings.TrimSpace(f.Type)) {
		case "PICKUP":
			return models.OrderTypePickup
		case "DELIVERY", "SHIPMENT", "MANAGED_DELIVERY":
			return models.OrderTypeDelivery
		case "DINE_IN":
			return models.OrderTypeDineIn
		}
	}
	if channel == models.ChannelOnline {
		return models.OrderTypePickup
	}
	return models.OrderTypeDineIn
}

func squareQuantity(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 1
	}
	if f <= 0 {
		return 0
	}
	if f < 1 {
		return 1
	}
	return int(f)
}
