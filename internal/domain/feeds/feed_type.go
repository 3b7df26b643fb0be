package feeds

// FeedType identifies one family of batch feed accepted by the marketplace
// feed-processing API. The values are the stable wire tags the remote side
// expects in the SubmitFeed call.
type FeedType string

const (
	// FeedTypeOrderAcknowledgement confirms receipt of marketplace orders
	FeedTypeOrderAcknowledgement FeedType = "_POST_ORDER_ACKNOWLEDGEMENT_DATA_"
	// FeedTypeOrderAdjustment posts refunds and payment adjustments
	FeedTypeOrderAdjustment FeedType = "_POST_PAYMENT_ADJUSTMENT_DATA_"
	// FeedTypeOrderFulfillment confirms shipment of marketplace orders
	FeedTypeOrderFulfillment FeedType = "_POST_ORDER_FULFILLMENT_DATA_"
	// FeedTypeProduct creates or updates product listings
	FeedTypeProduct FeedType = "_POST_PRODUCT_DATA_"
	// FeedTypePrices updates listing prices
	FeedTypePrices FeedType = "_POST_PRODUCT_PRICING_DATA_"
	// FeedTypeInventory updates available stock quantities
	FeedTypeInventory FeedType = "_POST_INVENTORY_AVAILABILITY_DATA_"
	// FeedTypeRelationship links variation products to their parents
	FeedTypeRelationship FeedType = "_POST_PRODUCT_RELATIONSHIP_DATA_"
	// FeedTypeImage uploads product image references
	FeedTypeImage FeedType = "_POST_PRODUCT_IMAGE_DATA_"
)

// IsValid returns true if the feed type is one of the known wire tags
func (t FeedType) IsValid() bool {
	switch t {
	case FeedTypeOrderAcknowledgement, FeedTypeOrderAdjustment, FeedTypeOrderFulfillment,
		FeedTypeProduct, FeedTypePrices, FeedTypeInventory, FeedTypeRelationship, FeedTypeImage:
		return true
	default:
		return false
	}
}

// String returns the wire value of the feed type
func (t FeedType) String() string {
	return string(t)
}

// MessageType returns the public message-type tag used inside the feed
// envelope for this feed type. The tag names both the MessageType header
// element and the per-record payload element.
func (t FeedType) MessageType() string {
	switch t {
	case FeedTypeOrderAcknowledgement:
		return "OrderAcknowledgement"
	case FeedTypeOrderAdjustment:
		return "OrderAdjustment"
	case FeedTypeOrderFulfillment:
		return "OrderFulfillment"
	case FeedTypeProduct:
		return "Product"
	case FeedTypePrices:
		return "Price"
	case FeedTypeInventory:
		return "Inventory"
	case FeedTypeRelationship:
		return "Relationship"
	case FeedTypeImage:
		return "ProductImage"
	default:
		return ""
	}
}

// DisplayName returns a human-readable name for the feed type
func (t FeedType) DisplayName() string {
	switch t {
	case FeedTypeOrderAcknowledgement:
		return "Order Acknowledgement"
	case FeedTypeOrderAdjustment:
		return "Order Adjustment"
	case FeedTypeOrderFulfillment:
		return "Order Fulfillment"
	case FeedTypeProduct:
		return "Products"
	case FeedTypePrices:
		return "Prices"
	case FeedTypeInventory:
		return "Inventory"
	case FeedTypeRelationship:
		return "Relationships"
	case FeedTypeImage:
		return "Images"
	default:
		return string(t)
	}
}
