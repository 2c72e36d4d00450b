package unifysync

import (
	"github.com/sirupsen/logrus"

	"bitbucket.org/platesync/unify_backend/models"
)

// MapDoorDashOrders maps the delivery-marketplace export. DoorDash money is
// already integer cents; the synthetic payment per order carries the
// merchant payout, not the consumer total, with the commission recorded as
// the processing fee.
func MapDoorDashOrders(ctx *MapperContext, export *DoorDashExport) *MapperResult {
	b := newMapperBatch(ctx, models.SourcePlatformDoorDash)
	if export == nil {
		return b.result
	}

	for _, src := range export.Orders {
		loc, ok := b.ctx.Locations.Resolve(src.StoreID)
		if !ok {
			b.result.Stats.UnknownLocationOrders++
			b.warn("MapDoorDashOrders", "unknown store id", logrus.Fields{
				"order": src.ID,
				"store": src.StoreID,
			})
			continue
		}

		orderID := models.NewOrderID(models.SourcePlatformDoorDash, src.ID)

		items := make([]*models.OrderItem, 0, len(src.Items))
		for _, line := range src.Items {
			if line.IsRemoved {
				b.result.Stats.VoidedItems++
				continue
			}
			resolved, ok := b.resolveProduct(line.Name)
			if !ok {
				b.result.Stats.UnresolvedItems++
				b.warn("MapDoorDashOrders", "unresolved product", logrus.Fields{
					"order": src.ID,
					"name":  line.Name,
				})
				continue
			}
			b.registerAlias(resolved.Product.ID, line.Name)

			qty := line.Quantity
			if qty < 1 {
				qty = 1
			}
			item := &models.OrderItem{
				ID:                  models.NewOrderItemID(orderID, len(items)),
				OrderID:             orderID,
				ProductID:           &resolved.Product.ID,
				RawName:             line.Name,
				Quantity:            qty,
				UnitPriceCents:      line.Price,
				TotalPriceCents:     line.Price * int64(qty),
				SpecialInstructions: line.SpecialInstructions,
			}
			if resolved.Variation != nil {
				item.VariationID = &resolved.Variation.ID
			}
			for _, opt := range line.Options {
				item.Modifiers = append(item.Modifiers, models.Modifier{
					Name:       opt.Name,
					PriceCents: opt.Price,
				})
			}
			items = append(items, item)
		}

		if len(items) == 0 {
			b.result.Stats.ItemlessOrdersDropped++
			b.warn("MapDoorDashOrders", "no items survived filtering", logrus.Fields{"order": src.ID})
			continue
		}

		createdAt := parseTime(src.CreatedAt)
		completedAt := parseTime(src.CompletedAt)

		order := &models.Order{
			ID:               orderID,
			Source:           models.SourcePlatformDoorDash,
			SourceOrderID:    src.ID,
			LocationID:       loc.ID,
			OrderType:        models.NormalizeOrderType(src.FulfillmentType),
			Channel:          models.ChannelDoorDash,
			Status:           models.NormalizeOrderStatus(src.OrderStatus),
			CreatedAt:        createdAt,
			ClosedAt:         timePtr(completedAt),
			SubtotalCents:    src.Subtotal,
			TaxCents:         src.TaxAmount,
			TipCents:         src.TipAmount,
			TotalCents:       src.OrderValue,
			PlatformFeeCents: src.Commission,
			ContainsAlcohol:  src.ContainsAlcohol,
			IsCatering:       src.IsCatering,
		}

		paidAt := completedAt
		if paidAt.IsZero() {
			paidAt = createdAt
		}
		b.result.Payments = append(b.result.Payments, &models.Payment{
			ID:                 models.NewPaymentID(orderID, src.ID),
			OrderID:            orderID,
			SourcePaymentID:    src.ID,
			Type:               models.PaymentTypeDoorDash,
			AmountCents:        src.NetPayout,
			TipCents:           src.TipAmount,
			ProcessingFeeCents: src.Commission,
			PaidAt:             paidAt,
		})

		b.result.Orders = append(b.result.Orders, order)
		b.result.Items = append(b.result.Items, items...)
		b.result.Stats.Orders++
		b.result.Stats.Items += len(items)
		b.result.Stats.Payments++
	}

	return b.result
}
