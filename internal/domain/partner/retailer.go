package partner

import (
	"time"

	"github.com/distribops/backend/internal/domain/shared"
)

// Retailer represents a retail outlet served by the distributor.
// Retailer contact details are copied into invoices at generation time;
// later edits here never rewrite issued invoices.
type Retailer struct {
	shared.BaseAggregateRoot
	Name    string `gorm:"type:varchar(200);not null"`
	Address string `gorm:"type:text"`
	Phone   string `gorm:"type:varchar(20)"`
	GSTIN   string `gorm:"type:varchar(15)"`
	Active  bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Retailer) TableName() string {
	return "retailers"
}

// NewRetailer creates a new retailer
func NewRetailer(name, address, phone, gstin string) (*Retailer, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Retailer name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Retailer name cannot exceed 200 characters")
	}
	if gstin != "" && len(gstin) != 15 {
		return nil, shared.NewDomainError("INVALID_GSTIN", "GSTIN must be 15 characters")
	}

	return &Retailer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Address:           address,
		Phone:             phone,
		GSTIN:             gstin,
		Active:            true,
	}, nil
}

// Rename changes the retailer's display name
func (r *Retailer) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Retailer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Retailer name cannot exceed 200 characters")
	}
	r.Name = name
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// UpdateContact updates the retailer's contact details
func (r *Retailer) UpdateContact(address, phone string) {
	r.Address = address
	r.Phone = phone
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// UpdateGSTIN updates the retailer's GST identification number
func (r *Retailer) UpdateGSTIN(gstin string) error {
	if gstin != "" && len(gstin) != 15 {
		return shared.NewDomainError("INVALID_GSTIN", "GSTIN must be 15 characters")
	}
	r.GSTIN = gstin
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// Deactivate marks the retailer as inactive
func (r *Retailer) Deactivate() {
	r.Active = false
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// Activate marks the retailer as active again
func (r *Retailer) Activate() {
	r.Active = true
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// Snapshot is the point-in-time copy of retailer details embedded into
// an invoice when it is generated.
type Snapshot struct {
	Name    string
	Address string
	Phone   string
	GSTIN   string
}

// Snapshot returns a copy of the retailer's current billing details
func (r *Retailer) Snapshot() Snapshot {
	return Snapshot{
		Name:    r.Name,
		Address: r.Address,
		Phone:   r.Phone,
		GSTIN:   r.GSTIN,
	}
}
