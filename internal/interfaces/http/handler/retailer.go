package handler

import (
	"github.com/gin-gonic/gin"

	partnerapp "github.com/distribops/backend/internal/application/partner"
)

// RetailerHandler exposes the retailer register endpoints
type RetailerHandler struct {
	BaseHandler
	retailerService *partnerapp.RetailerService
}

// NewRetailerHandler creates a new RetailerHandler
func NewRetailerHandler(retailerService *partnerapp.RetailerService) *RetailerHandler {
	return &RetailerHandler{retailerService: retailerService}
}

// RegisterRoutes registers retailer routes
func (h *RetailerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	retailers := rg.Group("/retailers")
	{
		retailers.POST("", h.Create)
		retailers.GET("", h.List)
		retailers.GET("/:id", h.GetByID)
		retailers.PATCH("/:id", h.Update)
	}
}

// Create registers a retailer
func (h *RetailerHandler) Create(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req partnerapp.CreateRetailerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	retailer, err := h.retailerService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, retailer)
}

// Update applies a partial update to a retailer
func (h *RetailerHandler) Update(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	retailerID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid retailer id")
		return
	}

	var req partnerapp.UpdateRetailerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	retailer, err := h.retailerService.Update(c.Request.Context(), actor, retailerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, retailer)
}

// GetByID returns one retailer
func (h *RetailerHandler) GetByID(c *gin.Context) {
	retailerID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid retailer id")
		return
	}

	retailer, err := h.retailerService.GetByID(c.Request.Context(), retailerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, retailer)
}

// List returns retailers with pagination
func (h *RetailerHandler) List(c *gin.Context) {
	var filter partnerapp.RetailerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	retailers, total, err := h.retailerService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, retailers, total, filter.Page, filter.PageSize)
}
