package partner

import (
	"time"

	"github.com/distribops/backend/internal/domain/partner"
	"github.com/google/uuid"
)

// CreateRetailerRequest represents a request to register a retailer
type CreateRetailerRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Address string `json:"address" binding:"required,max=500"`
	Phone   string `json:"phone" binding:"required,max=20"`
	GSTIN   string `json:"gstin" binding:"omitempty,len=15"`
}

// UpdateRetailerRequest represents a partial retailer update
type UpdateRetailerRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	GSTIN   *string `json:"gstin"`
	Active  *bool   `json:"active"`
}

// RetailerListFilter represents query filters for listing retailers
type RetailerListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// RetailerResponse represents a retailer in API responses
type RetailerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	GSTIN     string    `json:"gstin"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// ToRetailerResponse converts a domain retailer to a response DTO
func ToRetailerResponse(retailer *partner.Retailer) RetailerResponse {
	return RetailerResponse{
		ID:        retailer.ID,
		Name:      retailer.Name,
		Address:   retailer.Address,
		Phone:     retailer.Phone,
		GSTIN:     retailer.GSTIN,
		Active:    retailer.Active,
		CreatedAt: retailer.CreatedAt,
		UpdatedAt: retailer.UpdatedAt,
		Version:   retailer.Version,
	}
}

// ToRetailerResponses converts a slice of retailers to response DTOs
func ToRetailerResponses(retailers []partner.Retailer) []RetailerResponse {
	responses := make([]RetailerResponse, len(retailers))
	for i := range retailers {
		responses[i] = ToRetailerResponse(&retailers[i])
	}
	return responses
}
