package unifysync

import "encoding/json"

// Inputs carries the three raw platform export documents. A nil slice means
// the platform contributed nothing this run; a document that fails to parse
// is fatal for that platform's contribution (Options.AllowPartial decides
// whether the run survives it).
type Inputs struct {
	Toast    []byte
	DoorDash []byte
	Square   []byte
}

// Documents is the decoded form of Inputs.
type Documents struct {
	Toast    *ToastExport
	DoorDash *DoorDashExport
	Square   *SquareExport
}

// --- Toast (table-service POS) ---

type ToastExport struct {
	Restaurants []ToastRestaurant `json:"restaurants"`
	Orders      []ToastOrder      `json:"orders"`
}

type ToastRestaurant struct {
	GUID     string `json:"guid"`
	Name     string `json:"name"`
	TimeZone string `json:"timeZone"`
	Phone    string `json:"phone"`
}

type ToastOrder struct {
	GUID           string       `json:"guid"`
	RestaurantGUID string       `json:"restaurantGuid"`
	DiningOption   string       `json:"diningOption"`
	Source         string       `json:"source"`
	OpenedDate     string       `json:"openedDate"`
	ClosedDate     string       `json:"closedDate"`
	Voided         bool         `json:"voided"`
	Checks         []ToastCheck `json:"checks"`
}

type ToastCheck struct {
	GUID        string           `json:"guid"`
	TotalAmount json.Number      `json:"totalAmount"`
	TaxAmount   json.Number      `json:"taxAmount"`
	TipAmount   json.Number      `json:"tipAmount"`
	Selections  []ToastSelection `json:"selections"`
	Payments    []ToastPayment   `json:"payments"`
}

type ToastSelection struct {
	GUID           string          `json:"guid"`
	DisplayName    string          `json:"displayName"`
	Quantity       json.Number     `json:"quantity"`
	Price          json.Number     `json:"price"`
	Tax            json.Number     `json:"tax"`
	Voided         bool            `json:"voided"`
	Modifiers      []ToastModifier `json:"modifiers"`
	SpecialRequest string          `json:"specialRequest"`
}

type ToastModifier struct {
	DisplayName string      `json:"displayName"`
	Price       json.Number `json:"price"`
}

type ToastPayment struct {
	GUID         string      `json:"guid"`
	Type         string      `json:"type"`
	CardType     string      `json:"cardType"`
	Last4Digits  string      `json:"last4Digits"`
	Amount       json.Number `json:"amount"`
	TipAmount    json.Number `json:"tipAmount"`
	RefundStatus string      `json:"refundStatus"`
	PaidDate     string      `json:"paidDate"`
}

// --- DoorDash (delivery marketplace) ---
// Money fields arrive as integer cents.

type DoorDashExport struct {
	Stores []DoorDashStore `json:"stores"`
	Orders []DoorDashOrder `json:"orders"`
}

type DoorDashStore struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
	Phone    string `json:"phone_number"`
}

type DoorDashOrder struct {
	ID              string         `json:"id"`
	StoreID         string         `json:"store_id"`
	FulfillmentType string         `json:"fulfillment_type"`
	OrderStatus     string         `json:"order_status"`
	CreatedAt       string         `json:"created_at"`
	CompletedAt     string         `json:"completed_at"`
	ContainsAlcohol bool           `json:"contains_alcohol"`
	IsCatering      bool           `json:"is_catering"`
	Subtotal        int64          `json:"subtotal"`
	TaxAmount       int64          `json:"tax_amount"`
	TipAmount       int64          `json:"tip_amount"`
	OrderValue      int64          `json:"order_value"`
	Commission      int64          `json:"commission"`
	NetPayout       int64          `json:"net_payout"`
	Items           []DoorDashItem `json:"items"`
}

type DoorDashItem struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	Quantity            int              `json:"quantity"`
	Price               int64            `json:"price"`
	IsRemoved           bool             `json:"is_removed"`
	Options             []DoorDashOption `json:"options"`
	SpecialInstructions string           `json:"special_instructions"`
}

type DoorDashOption struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// --- Square (unified commerce) ---
// Money objects carry integer cents in Amount.

type SquareExport struct {
	Locations []SquareLocation      `json:"locations"`
	Catalog   []SquareCatalogObject `json:"catalog"`
	Orders    []SquareOrder         `json:"orders"`
}

type SquareLocation struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Timezone string         `json:"timezone"`
	Phone    string         `json:"phone_number"`
	Address  *SquareAddress `json:"address,omitempty"`
}

type SquareAddress struct {
	AddressLine1  string `json:"address_line_1"`
	AddressLine2  string `json:"address_line_2"`
	Locality      string `json:"locality"`
	AdminDistrict string `json:"administrative_district_level_1"`
	PostalCode    string `json:"postal_code"`
	Country       string `json:"country"`
}

type SquareCatalogObject struct {
	Type         string              `json:"type"`
	ID           string              `json:"id"`
	CategoryData *SquareCategoryData `json:"category_data,omitempty"`
	ItemData     *SquareItemData     `json:"item_data,omitempty"`
}

type SquareCategoryData struct {
	Name string `json:"name"`
}

type SquareItemData struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	CategoryID  string                `json:"category_id"`
	Variations  []SquareItemVariation `json:"variations"`
}

type SquareItemVariation struct {
	ID                string                   `json:"id"`
	ItemVariationData *SquareItemVariationData `json:"item_variation_data,omitempty"`
}

type SquareItemVariationData struct {
	Name       string       `json:"name"`
	PriceMoney *SquareMoney `json:"price_money,omitempty"`
}

type SquareMoney struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type SquareOrder struct {
	ID            string              `json:"id"`
	LocationID    string              `json:"location_id"`
	State         string              `json:"state"`
	Source        SquareOrderSource   `json:"source"`
	Fulfillments  []SquareFulfillment `json:"fulfillments"`
	CreatedAt     string              `json:"created_at"`
	ClosedAt      string              `json:"closed_at"`
	TotalMoney    SquareMoney         `json:"total_money"`
	TotalTaxMoney SquareMoney         `json:"total_tax_money"`
	TotalTipMoney SquareMoney         `json:"total_tip_money"`
	LineItems     []SquareLineItem    `json:"line_items"`
	Tenders       []SquareTender      `json:"tenders"`
}

type SquareOrderSource struct {
	Name string `json:"name"`
}

type SquareFulfillment struct {
	Type string `json:"type"`
}

type SquareLineItem struct {
	UID             string               `json:"uid"`
	Name            string               `json:"name"`
	VariationName   string               `json:"variation_name"`
	CatalogObjectID string               `json:"catalog_object_id"`
	Quantity        string               `json:"quantity"`
	BasePriceMoney  SquareMoney          `json:"base_price_money"`
	TotalMoney      SquareMoney          `json:"total_money"`
	TotalTaxMoney   SquareMoney          `json:"total_tax_money"`
	Modifiers       []SquareItemModifier `json:"modifiers"`
	Note            string               `json:"note"`
}

type SquareItemModifier struct {
	Name            string      `json:"name"`
	TotalPriceMoney SquareMoney `json:"total_price_money"`
}

type SquareCardDetails struct {
	Card SquareCard `json:"card"`
}

type SquareCard struct {
	CardBrand string `json:"card_brand"`
	Last4     string `json:"last_4"`
}

type SquareTender struct {
	ID                 string             `json:"id"`
	Type               string             `json:"type"`
	CardDetails        *SquareCardDetails `json:"card_details,omitempty"`
	AmountMoney        SquareMoney        `json:"amount_money"`
	TipMoney           SquareMoney        `json:"tip_money"`
	ProcessingFeeMoney SquareMoney        `json:"processing_fee_money"`
	CreatedAt          string             `json:"created_at"`
	FullyRefunded      bool               `json:"fully_refunded"`
}
