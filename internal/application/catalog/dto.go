package catalog

import (
	"time"

	"github.com/distribops/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to add a product to the catalog
type CreateProductRequest struct {
	Name            string           `json:"name" binding:"required,min=1,max=200"`
	UnitPrice       decimal.Decimal  `json:"unit_price" binding:"required"`
	GSTPercentage   *decimal.Decimal `json:"gst_percentage"`
	BottlesPerCrate int              `json:"bottles_per_crate" binding:"required,min=1"`
}

// UpdateProductRequest represents a partial product update
type UpdateProductRequest struct {
	UnitPrice       *decimal.Decimal `json:"unit_price"`
	GSTPercentage   *decimal.Decimal `json:"gst_percentage"`
	BottlesPerCrate *int             `json:"bottles_per_crate"`
	Active          *bool            `json:"active"`
}

// ProductListFilter represents query filters for listing products
type ProductListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	GSTPercentage   decimal.Decimal `json:"gst_percentage"`
	BottlesPerCrate int             `json:"bottles_per_crate"`
	Active          bool            `json:"active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Version         int             `json:"version"`
}

// ToProductResponse converts a domain product to a response DTO
func ToProductResponse(product *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:              product.ID,
		Name:            product.Name,
		UnitPrice:       product.UnitPrice,
		GSTPercentage:   product.GSTPercentage,
		BottlesPerCrate: product.BottlesPerCrate,
		Active:          product.Active,
		CreatedAt:       product.CreatedAt,
		UpdatedAt:       product.UpdatedAt,
		Version:         product.Version,
	}
}

// ToProductResponses converts a slice of products to response DTOs
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
