package handler

import (
	"github.com/gin-gonic/gin"

	inventoryapp "github.com/distribops/backend/internal/application/inventory"
)

// StockHandler exposes goods-in and stock visibility endpoints
type StockHandler struct {
	BaseHandler
	stockService *inventoryapp.StockService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService *inventoryapp.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// RegisterRoutes registers stock routes
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stock := rg.Group("/stock")
	{
		stock.POST("/receive", h.ReceiveStock)
		stock.GET("", h.List)
		stock.GET("/low", h.ListLowStock)
		stock.GET("/product/:id", h.GetByProduct)
	}
}

// ReceiveStock records a goods-in delivery
func (h *StockHandler) ReceiveStock(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req inventoryapp.ReceiveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	stock, err := h.stockService.ReceiveStock(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stock)
}

// GetByProduct returns the stock row for one product
func (h *StockHandler) GetByProduct(c *gin.Context) {
	productID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product id")
		return
	}

	stock, err := h.stockService.GetByProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stock)
}

// List returns all stock rows
func (h *StockHandler) List(c *gin.Context) {
	var filter inventoryapp.StockListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	items, err := h.stockService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// ListLowStock returns rows under the replenishment threshold
func (h *StockHandler) ListLowStock(c *gin.Context) {
	items, err := h.stockService.ListLowStock(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}
