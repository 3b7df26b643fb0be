package handler

import (
	"time"

	"github.com/shopspring/decimal"

	appfeeds "github.com/sellerbridge/backend/internal/application/feeds"
	"github.com/sellerbridge/backend/internal/domain/feeds"
)

// PriceUpdateRequest is one listing price change
// @Description Price update for a single SKU
type PriceUpdateRequest struct {
	SKU           string     `json:"sku" binding:"required,min=1,max=80" example:"ABC-001"`
	Currency      string     `json:"currency" binding:"required,len=3" example:"USD"`
	StandardPrice float64    `json:"standard_price" binding:"required,gte=0" example:"19.90"`
	SalePrice     *float64   `json:"sale_price" binding:"omitempty,gte=0" example:"14.90"`
	SaleStart     *time.Time `json:"sale_start"`
	SaleEnd       *time.Time `json:"sale_end"`
}

func (r PriceUpdateRequest) toMessage() feeds.PriceMessage {
	msg := feeds.PriceMessage{
		SKU:           r.SKU,
		Currency:      r.Currency,
		StandardPrice: decimal.NewFromFloat(r.StandardPrice),
	}
	if r.SalePrice != nil {
		sale := decimal.NewFromFloat(*r.SalePrice)
		msg.SalePrice = &sale
		if r.SaleStart != nil {
			msg.SaleStart = *r.SaleStart
		}
		if r.SaleEnd != nil {
			msg.SaleEnd = *r.SaleEnd
		}
	}
	return msg
}

// InventoryUpdateRequest is one listing quantity change
// @Description Inventory update for a single SKU
type InventoryUpdateRequest struct {
	SKU                string `json:"sku" binding:"required,min=1,max=80" example:"ABC-001"`
	Quantity           int64  `json:"quantity" binding:"gte=0" example:"42"`
	FulfillmentLatency int64  `json:"fulfillment_latency" binding:"omitempty,gte=0" example:"3"`
}

func (r InventoryUpdateRequest) toMessage() feeds.InventoryMessage {
	return feeds.InventoryMessage{
		SKU:                r.SKU,
		Quantity:           r.Quantity,
		FulfillmentLatency: r.FulfillmentLatency,
	}
}

// OrderAckItemRequest is one order line in an acknowledgement
type OrderAckItemRequest struct {
	OrderItemID         string `json:"order_item_id" binding:"required" example:"51234567890123"`
	MerchantOrderItemID string `json:"merchant_order_item_id" example:"L-1"`
}

// OrderAckRequest acknowledges one marketplace order
// @Description Acknowledgement of a received marketplace order
type OrderAckRequest struct {
	MarketplaceOrderID string                `json:"marketplace_order_id" binding:"required" example:"902-3159896-1390916"`
	MerchantOrderID    string                `json:"merchant_order_id" example:"SO-2041"`
	StatusCode         string                `json:"status_code" binding:"required,oneof=Success Failure" example:"Success"`
	Items              []OrderAckItemRequest `json:"items"`
}

func (r OrderAckRequest) toMessage() feeds.OrderAcknowledgementMessage {
	msg := feeds.OrderAcknowledgementMessage{
		MarketplaceOrderID: r.MarketplaceOrderID,
		MerchantOrderID:    r.MerchantOrderID,
		StatusCode:         r.StatusCode,
	}
	for _, item := range r.Items {
		msg.Items = append(msg.Items, feeds.AcknowledgedItem{
			OrderItemID:         item.OrderItemID,
			MerchantOrderItemID: item.MerchantOrderItemID,
		})
	}
	return msg
}

// FulfillmentItemRequest is one shipped order line
type FulfillmentItemRequest struct {
	OrderItemID string `json:"order_item_id" binding:"required" example:"51234567890123"`
	Quantity    int64  `json:"quantity" binding:"required,gt=0" example:"1"`
}

// FulfillmentRequest confirms shipment of one marketplace order
// @Description Shipment confirmation for a marketplace order
type FulfillmentRequest struct {
	MerchantOrderID string                   `json:"merchant_order_id" binding:"required" example:"SO-2041"`
	CarrierCode     string                   `json:"carrier_code" binding:"required" example:"UPS"`
	ShippingMethod  string                   `json:"shipping_method" example:"Ground"`
	TrackingNumber  string                   `json:"tracking_number" example:"1Z999AA10123456784"`
	ShipDate        time.Time                `json:"ship_date" binding:"required"`
	Items           []FulfillmentItemRequest `json:"items"`
}

func (r FulfillmentRequest) toMessage() feeds.OrderFulfillmentMessage {
	msg := feeds.OrderFulfillmentMessage{
		MerchantOrderID: r.MerchantOrderID,
		CarrierCode:     r.CarrierCode,
		ShippingMethod:  r.ShippingMethod,
		TrackingNumber:  r.TrackingNumber,
		ShipDate:        r.ShipDate,
	}
	for _, item := range r.Items {
		msg.Items = append(msg.Items, feeds.FulfilledItem{
			OrderItemID: item.OrderItemID,
			Quantity:    item.Quantity,
		})
	}
	return msg
}

// ReconcileRequest optionally restricts a reconciliation pass to specific
// remote submission ids
type ReconcileRequest struct {
	SubmissionIDs []string `json:"submission_ids"`
}

// SubmissionListFilter holds the query parameters for listing submissions
type SubmissionListFilter struct {
	FeedType  string `form:"feed_type"`
	Status    string `form:"status"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
}

// SubmissionDetailResponse is one per-record outcome in a response
type SubmissionDetailResponse struct {
	MessageID      string            `json:"message_id"`
	ResultCode     string            `json:"result_code"`
	MessageCode    string            `json:"message_code"`
	Description    string            `json:"description"`
	AdditionalInfo map[string]string `json:"additional_info,omitempty"`
}

// SubmissionResponse represents a feed submission in API responses
type SubmissionResponse struct {
	ID                 string                     `json:"id"`
	FeedType           string                     `json:"feed_type"`
	FeedTypeName       string                     `json:"feed_type_name"`
	SubmissionID       string                     `json:"submission_id"`
	ProcessingStatus   string                     `json:"processing_status"`
	Pending            bool                       `json:"pending"`
	MessagesProcessed  *int64                     `json:"messages_processed,omitempty"`
	MessagesSuccessful *int64                     `json:"messages_successful,omitempty"`
	MessagesErrored    *int64                     `json:"messages_errored,omitempty"`
	MessagesWarned     *int64                     `json:"messages_warned,omitempty"`
	Details            []SubmissionDetailResponse `json:"details,omitempty"`
	CreatedAt          time.Time                  `json:"created_at"`
	UpdatedAt          time.Time                  `json:"updated_at"`
}

// SubmissionReceiptResponse reports the outcome of a feed submit
type SubmissionReceiptResponse struct {
	SubmissionID string              `json:"submission_id"`
	Recorded     bool                `json:"recorded"`
	Submission   *SubmissionResponse `json:"submission,omitempty"`
}

// ReconcileSummaryResponse reports the outcome of a reconciliation pass
type ReconcileSummaryResponse struct {
	Checked   int `json:"checked"`
	Advanced  int `json:"advanced"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
	Deferred  int `json:"deferred"`
}

func toSubmissionResponse(sub *feeds.FeedSubmission) *SubmissionResponse {
	resp := &SubmissionResponse{
		ID:                 sub.ID.String(),
		FeedType:           sub.FeedType.String(),
		FeedTypeName:       sub.FeedType.DisplayName(),
		SubmissionID:       sub.SubmissionID,
		ProcessingStatus:   sub.ProcessingStatus.String(),
		Pending:            sub.ProcessingStatus.IsPending(),
		MessagesProcessed:  sub.MessagesProcessed,
		MessagesSuccessful: sub.MessagesSuccessful,
		MessagesErrored:    sub.MessagesErrored,
		MessagesWarned:     sub.MessagesWarned,
		CreatedAt:          sub.CreatedAt,
		UpdatedAt:          sub.UpdatedAt,
	}
	for _, d := range sub.Details {
		resp.Details = append(resp.Details, SubmissionDetailResponse{
			MessageID:      d.MessageID,
			ResultCode:     d.ResultCode,
			MessageCode:    d.MessageCode,
			Description:    d.Description,
			AdditionalInfo: d.AdditionalInfo,
		})
	}
	return resp
}

func toReceiptResponse(outcome *appfeeds.SubmitOutcome) *SubmissionReceiptResponse {
	resp := &SubmissionReceiptResponse{
		SubmissionID: outcome.SubmissionID,
		Recorded:     outcome.Recorded,
	}
	if outcome.Submission != nil {
		resp.Submission = toSubmissionResponse(outcome.Submission)
	}
	return resp
}

func toReconcileSummaryResponse(summary *appfeeds.ReconcileSummary) ReconcileSummaryResponse {
	return ReconcileSummaryResponse{
		Checked:   summary.Checked,
		Advanced:  summary.Advanced,
		Completed: summary.Completed,
		Cancelled: summary.Cancelled,
		Deferred:  summary.Deferred,
	}
}
