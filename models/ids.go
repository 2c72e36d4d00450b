package models

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// All canonical ids are UUIDv5 values derived from the entity's natural key,
// so a re-run over identical inputs mints identical ids and two mappers that
// discover the same variation independently agree on its id without
// coordination.
var idNamespace = uuid.MustParse("8f1a2b64-0c6d-4e5a-9b1f-3d7c2a905e14")

func deterministicID(parts ...string) string {
	return uuid.NewSHA1(idNamespace, []byte(strings.Join(parts, "|"))).String()
}

func NewLocationID(name string) string {
	return deterministicID("location", name)
}

func NewCategoryID(normalizedName string) string {
	return deterministicID("category", normalizedName)
}

func NewProductID(sourceID string) string {
	return deterministicID("product", sourceID)
}

func NewVariationID(productID, name string) string {
	return deterministicID("variation", productID, name)
}

func NewAliasID(rawName string, source SourcePlatform) string {
	return deterministicID("alias", rawName, string(source))
}

func NewOrderID(source SourcePlatform, sourceOrderID string) string {
	return deterministicID("order", string(source), sourceOrderID)
}

func NewOrderItemID(orderID string, index int) string {
	return deterministicID("order_item", orderID, strconv.Itoa(index))
}

func NewPaymentID(orderID, sourcePaymentID string) string {
	return deterministicID("payment", orderID, sourcePaymentID)
}
