package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	appcatalog "github.com/sellerbridge/backend/internal/application/catalog"
	"github.com/sellerbridge/backend/internal/domain/catalog"
)

// CatalogHandler handles catalog lookup API endpoints
type CatalogHandler struct {
	BaseHandler
	locator *appcatalog.SkuLocator
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(locator *appcatalog.SkuLocator) *CatalogHandler {
	return &CatalogHandler{locator: locator}
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	catalogGroup := rg.Group("/catalog")
	{
		catalogGroup.GET("/sku/:sku", h.LookupSku)
	}
}

// ItemResponse represents a catalog item in API responses
type ItemResponse struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	VariationCode string    `json:"variation_code,omitempty"`
	ProductCode   string    `json:"product_code,omitempty"`
	Price         string    `json:"price"`
	Quantity      int64     `json:"quantity"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toItemResponse(item *catalog.Item) ItemResponse {
	return ItemResponse{
		ID:            item.ID.String(),
		Code:          item.Code,
		Name:          item.Name,
		VariationCode: item.VariationCode,
		ProductCode:   item.ProductCode,
		Price:         item.Price,
		Quantity:      item.Quantity,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
}

// LookupSku godoc
//
//	@Summary		Resolve a marketplace SKU
//	@Description	Resolve a marketplace SKU back to its catalog item using the configured lookup pattern
//	@Tags			catalog
//	@Produce		json
//	@Param			sku	path		string	true	"Marketplace SKU"
//	@Success		200	{object}	APIResponse[ItemResponse]
//	@Failure		404	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/catalog/sku/{sku} [get]
func (h *CatalogHandler) LookupSku(c *gin.Context) {
	sku := c.Param("sku")
	if sku == "" {
		h.BadRequest(c, "SKU is required")
		return
	}

	item, err := h.locator.Locate(c.Request.Context(), sku)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if item == nil {
		h.NotFound(c, "No catalog item matches this SKU")
		return
	}
	h.Success(c, toItemResponse(item))
}
