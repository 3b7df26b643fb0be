package feeds

import (
	"time"

	"github.com/shopspring/decimal"
)

// Typed builders for the feed families this system sends most often. Each
// renders itself into the record tree the envelope codec encodes; feed
// families without a builder (product, relationship, image) take raw record
// trees built by the caller.

// AcknowledgedItem is one order line confirmed in an acknowledgement feed
type AcknowledgedItem struct {
	// OrderItemID is the marketplace's line item id
	OrderItemID string
	// MerchantOrderItemID is the seller-side line item id
	MerchantOrderItemID string
}

// OrderAcknowledgementMessage confirms receipt of one marketplace order
type OrderAcknowledgementMessage struct {
	// MarketplaceOrderID is the order id assigned by the marketplace
	MarketplaceOrderID string
	// MerchantOrderID is the seller-side order reference
	MerchantOrderID string
	// StatusCode is Success or Failure
	StatusCode string
	Items      []AcknowledgedItem
}

// RecordTree renders the message as an envelope record
func (m OrderAcknowledgementMessage) RecordTree() *Node {
	n := NewNode().
		Set("AmazonOrderID", String(m.MarketplaceOrderID)).
		Set("MerchantOrderID", String(m.MerchantOrderID)).
		Set("StatusCode", String(m.StatusCode))
	if len(m.Items) > 0 {
		items := make(Repeated, 0, len(m.Items))
		for _, item := range m.Items {
			items = append(items, NewNode().
				Set("AmazonOrderItemCode", String(item.OrderItemID)).
				Set("MerchantOrderItemID", String(item.MerchantOrderItemID)))
		}
		n.Set("Item", items)
	}
	return n
}

// FulfilledItem is one shipped order line in a fulfillment feed
type FulfilledItem struct {
	OrderItemID string
	Quantity    int64
}

// OrderFulfillmentMessage confirms shipment of one marketplace order
type OrderFulfillmentMessage struct {
	MerchantOrderID string
	CarrierCode     string
	ShippingMethod  string
	TrackingNumber  string
	ShipDate        time.Time
	Items           []FulfilledItem
}

// RecordTree renders the message as an envelope record
func (m OrderFulfillmentMessage) RecordTree() *Node {
	fulfillment := NewNode().
		Set("CarrierCode", String(m.CarrierCode)).
		Set("ShippingMethod", String(m.ShippingMethod)).
		Set("ShipperTrackingNumber", String(m.TrackingNumber))
	n := NewNode().
		Set("MerchantOrderID", String(m.MerchantOrderID)).
		Set("FulfillmentDate", Date(m.ShipDate)).
		Set("FulfillmentData", fulfillment)
	if len(m.Items) > 0 {
		items := make(Repeated, 0, len(m.Items))
		for _, item := range m.Items {
			items = append(items, NewNode().
				Set("AmazonOrderItemCode", String(item.OrderItemID)).
				Set("Quantity", Int(item.Quantity)))
		}
		n.Set("Item", items)
	}
	return n
}

// PriceMessage updates the standard price of one listing
type PriceMessage struct {
	SKU string
	// Currency is the ISO currency code of the price
	Currency      string
	StandardPrice decimal.Decimal
	// SalePrice is optional; when set, SaleStart/SaleEnd bound the sale window
	SalePrice *decimal.Decimal
	SaleStart time.Time
	SaleEnd   time.Time
}

// RecordTree renders the message as an envelope record
func (m PriceMessage) RecordTree() *Node {
	price := NewNode().
		Set("currency", String(m.Currency)).
		Set("StandardPrice", Amount(m.StandardPrice))
	n := NewNode().
		Set("SKU", String(m.SKU)).
		Set("StandardPrice", price)
	if m.SalePrice != nil {
		n.Set("Sale", NewNode().
			Set("StartDate", Date(m.SaleStart)).
			Set("EndDate", Date(m.SaleEnd)).
			Set("SalePrice", Amount(*m.SalePrice)))
	}
	return n
}

// InventoryMessage updates the available quantity of one listing
type InventoryMessage struct {
	SKU      string
	Quantity int64
	// FulfillmentLatency is the handling time in days; zero is omitted
	FulfillmentLatency int64
}

// RecordTree renders the message as an envelope record
func (m InventoryMessage) RecordTree() *Node {
	n := NewNode().
		Set("SKU", String(m.SKU)).
		Set("Quantity", Int(m.Quantity))
	if m.FulfillmentLatency > 0 {
		n.Set("FulfillmentLatency", Int(m.FulfillmentLatency))
	}
	return n
}
