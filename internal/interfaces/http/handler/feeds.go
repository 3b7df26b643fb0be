package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appfeeds "github.com/sellerbridge/backend/internal/application/feeds"
	"github.com/sellerbridge/backend/internal/domain/feeds"
)

// FeedsHandler handles feed submission API endpoints
type FeedsHandler struct {
	BaseHandler
	submitter  *appfeeds.SubmitterService
	reconciler *appfeeds.ReconcilerService
	repo       feeds.FeedSubmissionReader
}

// NewFeedsHandler creates a new FeedsHandler
func NewFeedsHandler(
	submitter *appfeeds.SubmitterService,
	reconciler *appfeeds.ReconcilerService,
	repo feeds.FeedSubmissionReader,
) *FeedsHandler {
	return &FeedsHandler{
		submitter:  submitter,
		reconciler: reconciler,
		repo:       repo,
	}
}

// RegisterRoutes registers all feed routes
func (h *FeedsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	feedsGroup := rg.Group("/feeds")
	{
		feedsGroup.GET("/submissions", h.List)
		feedsGroup.GET("/submissions/:id", h.GetByID)
		feedsGroup.POST("/submissions/reconcile", h.Reconcile)
		feedsGroup.POST("/prices", h.SubmitPrices)
		feedsGroup.POST("/inventory", h.SubmitInventory)
		feedsGroup.POST("/order-acknowledgements", h.SubmitOrderAcknowledgements)
		feedsGroup.POST("/order-fulfillments", h.SubmitOrderFulfillments)
	}
}

// List godoc
//
//	@Summary		List feed submissions
//	@Description	Retrieve a paginated list of feed submissions, newest first
//	@Tags			feeds
//	@Produce		json
//	@Param			feed_type	query		string	false	"Feed type wire tag"
//	@Param			status		query		string	false	"Processing status wire value"
//	@Param			page		query		int		false	"Page number"	default(1)
//	@Param			page_size	query		int		false	"Page size"		default(20)	maximum(100)
//	@Success		200			{object}	APIResponse[[]SubmissionResponse]
//	@Failure		400			{object}	ErrorResponse
//	@Router			/feeds/submissions [get]
func (h *FeedsHandler) List(c *gin.Context) {
	var query SubmissionListFilter
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.PageSize <= 0 {
		query.PageSize = 20
	}

	filter := feeds.SubmissionFilter{
		Page:      query.Page,
		PageSize:  query.PageSize,
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
	}
	if query.FeedType != "" {
		feedType := feeds.FeedType(query.FeedType)
		if !feedType.IsValid() {
			h.BadRequest(c, "Unknown feed type")
			return
		}
		filter.FeedType = &feedType
	}
	if query.Status != "" {
		status := feeds.SubmissionStatus(query.Status)
		if !status.IsValid() {
			h.BadRequest(c, "Unknown processing status")
			return
		}
		filter.Status = &status
	}

	submissions, total, err := h.repo.FindAll(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]*SubmissionResponse, 0, len(submissions))
	for i := range submissions {
		responses = append(responses, toSubmissionResponse(&submissions[i]))
	}
	h.SuccessWithMeta(c, responses, total, filter.Page, filter.PageSize)
}

// GetByID godoc
//
//	@Summary		Get feed submission by ID
//	@Description	Retrieve a feed submission with its per-record outcomes
//	@Tags			feeds
//	@Produce		json
//	@Param			id	path		string	true	"Submission ID"	format(uuid)
//	@Success		200	{object}	APIResponse[SubmissionResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/feeds/submissions/{id} [get]
func (h *FeedsHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid submission ID format")
		return
	}

	submission, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toSubmissionResponse(submission))
}

// Reconcile godoc
//
//	@Summary		Reconcile pending submissions
//	@Description	Run one reconciliation pass against the marketplace, optionally restricted to given remote submission ids
//	@Tags			feeds
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ReconcileRequest	false	"Optional remote submission id restriction"
//	@Success		200		{object}	APIResponse[ReconcileSummaryResponse]
//	@Failure		502		{object}	ErrorResponse
//	@Router			/feeds/submissions/reconcile [post]
func (h *FeedsHandler) Reconcile(c *gin.Context) {
	var req ReconcileRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	summary, err := h.reconciler.Reconcile(c.Request.Context(), req.SubmissionIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toReconcileSummaryResponse(summary))
}

// SubmitPrices godoc
//
//	@Summary		Submit a price feed
//	@Description	Send listing price updates to the marketplace as one batch feed
//	@Tags			feeds
//	@Accept			json
//	@Produce		json
//	@Param			request	body		[]PriceUpdateRequest	true	"Price updates"
//	@Success		202		{object}	APIResponse[SubmissionReceiptResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		502		{object}	ErrorResponse
//	@Router			/feeds/prices [post]
func (h *FeedsHandler) SubmitPrices(c *gin.Context) {
	var reqs []PriceUpdateRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	messages := make([]feeds.PriceMessage, 0, len(reqs))
	for _, r := range reqs {
		messages = append(messages, r.toMessage())
	}

	outcome, err := h.submitter.SubmitPrices(c.Request.Context(), messages)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Accepted(c, toReceiptResponse(outcome))
}

// SubmitInventory godoc
//
//	@Summary		Submit an inventory feed
//	@Description	Send stock quantity updates to the marketplace as one batch feed
//	@Tags			feeds
//	@Accept			json
//	@Produce		json
//	@Param			request	body		[]InventoryUpdateRequest	true	"Inventory updates"
//	@Success		202		{object}	APIResponse[SubmissionReceiptResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		502		{object}	ErrorResponse
//	@Router			/feeds/inventory [post]
func (h *FeedsHandler) SubmitInventory(c *gin.Context) {
	var reqs []InventoryUpdateRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	messages := make([]feeds.InventoryMessage, 0, len(reqs))
	for _, r := range reqs {
		messages = append(messages, r.toMessage())
	}

	outcome, err := h.submitter.SubmitInventory(c.Request.Context(), messages)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Accepted(c, toReceiptResponse(outcome))
}

// SubmitOrderAcknowledgements godoc
//
//	@Summary		Submit an order acknowledgement feed
//	@Description	Confirm receipt of marketplace orders as one batch feed
//	@Tags			feeds
//	@Accept			json
//	@Produce		json
//	@Param			request	body		[]OrderAckRequest	true	"Order acknowledgements"
//	@Success		202		{object}	APIResponse[SubmissionReceiptResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		502		{object}	ErrorResponse
//	@Router			/feeds/order-acknowledgements [post]
func (h *FeedsHandler) SubmitOrderAcknowledgements(c *gin.Context) {
	var reqs []OrderAckRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	messages := make([]feeds.OrderAcknowledgementMessage, 0, len(reqs))
	for _, r := range reqs {
		messages = append(messages, r.toMessage())
	}

	outcome, err := h.submitter.SubmitOrderAcknowledgements(c.Request.Context(), messages)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Accepted(c, toReceiptResponse(outcome))
}

// SubmitOrderFulfillments godoc
//
//	@Summary		Submit an order fulfillment feed
//	@Description	Confirm shipment of marketplace orders as one batch feed
//	@Tags			feeds
//	@Accept			json
//	@Produce		json
//	@Param			request	body		[]FulfillmentRequest	true	"Shipment confirmations"
//	@Success		202		{object}	APIResponse[SubmissionReceiptResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		502		{object}	ErrorResponse
//	@Router			/feeds/order-fulfillments [post]
func (h *FeedsHandler) SubmitOrderFulfillments(c *gin.Context) {
	var reqs []FulfillmentRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	messages := make([]feeds.OrderFulfillmentMessage, 0, len(reqs))
	for _, r := range reqs {
		messages = append(messages, r.toMessage())
	}

	outcome, err := h.submitter.SubmitOrderFulfillments(c.Request.Context(), messages)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Accepted(c, toReceiptResponse(outcome))
}
