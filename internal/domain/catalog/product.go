package catalog

import (
	"time"

	"github.com/distribops/backend/internal/domain/shared"
	"github.com/distribops/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Product represents a sellable product in the distributor's catalog.
// It is the aggregate root for catalog operations. Stock quantity is not
// stored here; it lives in the inventory StockItem aggregate and is only
// mutated through the inventory ledger.
type Product struct {
	shared.BaseAggregateRoot
	Name            string          `gorm:"type:varchar(200);not null;uniqueIndex"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	GSTPercentage   decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	BottlesPerCrate int             `gorm:"not null;default:1"`
	Active          bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product. The GST percentage comes from the
// caller (service-level default when the request omits it) so no global
// tax constant is baked into the domain.
func NewProduct(name string, unitPrice valueobject.Money, gstPercentage decimal.Decimal, bottlesPerCrate int) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	if unitPrice.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price must be positive")
	}
	if _, err := valueobject.NewGSTRate(gstPercentage); err != nil {
		return nil, shared.NewDomainError("INVALID_GST", err.Error())
	}
	if bottlesPerCrate <= 0 {
		return nil, shared.NewDomainError("INVALID_CRATE_SIZE", "Bottles per crate must be positive")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		UnitPrice:         unitPrice.Amount().Round(2),
		GSTPercentage:     gstPercentage,
		BottlesPerCrate:   bottlesPerCrate,
		Active:            true,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// UpdatePrice changes the unit price. Existing orders keep their snapshot.
func (p *Product) UpdatePrice(unitPrice valueobject.Money) error {
	if unitPrice.Amount().LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_PRICE", "Unit price must be positive")
	}

	old := p.UnitPrice
	p.UnitPrice = unitPrice.Amount().Round(2)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductPriceChangedEvent(p, old))

	return nil
}

// UpdateGSTPercentage changes the product's GST rate for future orders.
func (p *Product) UpdateGSTPercentage(percent decimal.Decimal) error {
	if _, err := valueobject.NewGSTRate(percent); err != nil {
		return shared.NewDomainError("INVALID_GST", err.Error())
	}

	p.GSTPercentage = percent
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetBottlesPerCrate updates the crate packing size
func (p *Product) SetBottlesPerCrate(n int) error {
	if n <= 0 {
		return shared.NewDomainError("INVALID_CRATE_SIZE", "Bottles per crate must be positive")
	}

	p.BottlesPerCrate = n
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Deactivate removes the product from sale without deleting history
func (p *Product) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Activate returns the product to sale
func (p *Product) Activate() {
	p.Active = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// GetUnitPriceMoney returns the unit price as Money value object
func (p *Product) GetUnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyINR(p.UnitPrice)
}

// GSTRate returns the product's GST rate value object
func (p *Product) GSTRate() valueobject.GSTRate {
	return valueobject.MustGSTRate(p.GSTPercentage)
}
