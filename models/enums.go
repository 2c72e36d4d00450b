package models

import "strings"

type SourcePlatform string

const (
	SourcePlatformToast    SourcePlatform = "toast"
	SourcePlatformDoorDash SourcePlatform = "doordash"
	SourcePlatformSquare   SourcePlatform = "square"
)

type OrderType string

const (
	OrderTypeDineIn   OrderType = "dine_in"
	OrderTypeTakeout  OrderType = "takeout"
	OrderTypePickup   OrderType = "pickup"
	OrderTypeDelivery OrderType = "delivery"
)

type Channel string

const (
	ChannelPos        Channel = "pos"
	ChannelOnline     Channel = "online"
	ChannelDoorDash   Channel = "doordash"
	ChannelThirdParty Channel = "third_party"
)

type OrderStatus string

const (
	OrderStatusOpen      OrderStatus = "open"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCanceled  OrderStatus = "canceled"
)

type PaymentType string

const (
	PaymentTypeCredit   PaymentType = "credit"
	PaymentTypeCash     PaymentType = "cash"
	PaymentTypeWallet   PaymentType = "wallet"
	PaymentTypeDoorDash PaymentType = "doordash"
	PaymentTypeOther    PaymentType = "other"
)

type VariationType string

const (
	VariationTypeQuantity VariationType = "quantity"
	VariationTypeSize     VariationType = "size"
	VariationTypeServing  VariationType = "serving"
	VariationTypeStrength VariationType = "strength"
)

// Fixed lookup tables covering every spelling the three platforms emit.
// Unrecognized values pass through lower-cased instead of failing, so a new
// platform-side value degrades to a readable string rather than an aborted
// run.

var orderTypeTable = map[string]OrderType{
	"dine_in":          OrderTypeDineIn,
	"dine-in":          OrderTypeDineIn,
	"dine in":          OrderTypeDineIn,
	"eat_in":           OrderTypeDineIn,
	"table_service":    OrderTypeDineIn,
	"takeout":          OrderTypeTakeout,
	"take_out":         OrderTypeTakeout,
	"take out":         OrderTypeTakeout,
	"to_go":            OrderTypeTakeout,
	"togo":             OrderTypeTakeout,
	"pickup":           OrderTypePickup,
	"pick_up":          OrderTypePickup,
	"curbside":         OrderTypePickup,
	"delivery":         OrderTypeDelivery,
	"deliver":          OrderTypeDelivery,
	"marketplace":      OrderTypeDelivery,
	"own_delivery":     OrderTypeDelivery,
	"managed_delivery": OrderTypeDelivery,
}

func NormalizeOrderType(raw string) OrderType {
	key := strings.ToLower(strings.TrimSpace(raw))
	if t, ok := orderTypeTable[key]; ok {
		return t
	}
	return OrderType(key)
}

var channelTable = map[string]Channel{
	"pos":          ChannelPos,
	"register":     ChannelPos,
	"in_store":     ChannelPos,
	"kiosk":        ChannelPos,
	"online":       ChannelOnline,
	"online_store": ChannelOnline,
	"ecom":         ChannelOnline,
	"app":          ChannelOnline,
	"website":      ChannelOnline,
	"doordash":     ChannelDoorDash,
	"caviar":       ChannelDoorDash,
	"grubhub":      ChannelThirdParty,
	"ubereats":     ChannelThirdParty,
	"uber_eats":    ChannelThirdParty,
	"postmates":    ChannelThirdParty,
	"third_party":  ChannelThirdParty,
	"partner":      ChannelThirdParty,
}

func NormalizeChannel(raw string) Channel {
	key := strings.ToLower(strings.TrimSpace(raw))
	if c, ok := channelTable[key]; ok {
		return c
	}
	return Channel(key)
}

var orderStatusTable = map[string]OrderStatus{
	"open":        OrderStatusOpen,
	"pending":     OrderStatusOpen,
	"in_progress": OrderStatusOpen,
	"paid":        OrderStatusCompleted,
	"closed":      OrderStatusCompleted,
	"completed":   OrderStatusCompleted,
	"delivered":   OrderStatusCompleted,
	"fulfilled":   OrderStatusCompleted,
	"canceled":    OrderStatusCanceled,
	"cancelled":   OrderStatusCanceled,
	"voided":      OrderStatusCanceled,
}

func NormalizeOrderStatus(raw string) OrderStatus {
	key := strings.ToLower(strings.TrimSpace(raw))
	if s, ok := orderStatusTable[key]; ok {
		return s
	}
	return OrderStatus(key)
}

var paymentTypeTable = map[string]PaymentType{
	"credit":             PaymentTypeCredit,
	"credit_card":        PaymentTypeCredit,
	"card":               PaymentTypeCredit,
	"debit":              PaymentTypeCredit,
	"cash":               PaymentTypeCash,
	"wallet":             PaymentTypeWallet,
	"apple_pay":          PaymentTypeWallet,
	"google_pay":         PaymentTypeWallet,
	"cash_app_pay":       PaymentTypeWallet,
	"gift_card":          PaymentTypeOther,
	"house_account":      PaymentTypeOther,
	"other":              PaymentTypeOther,
	"doordash":           PaymentTypeDoorDash,
	"marketplace_payout": PaymentTypeDoorDash,
}

func NormalizePaymentType(raw string) PaymentType {
	key := strings.ToLower(strings.TrimSpace(raw))
	if p, ok := paymentTypeTable[key]; ok {
		return p
	}
	return PaymentTypeOther
}
