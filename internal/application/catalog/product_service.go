package catalog

import (
	"context"

	"github.com/distribops/backend/internal/domain/catalog"
	"github.com/distribops/backend/internal/domain/identity"
	"github.com/distribops/backend/internal/domain/inventory"
	"github.com/distribops/backend/internal/domain/shared"
	"github.com/distribops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductService manages the product catalog. Creating a product also seeds
// its stock row at zero so the inventory ledger always has a row to lock.
type ProductService struct {
	productRepo    catalog.ProductRepository
	stockRepo      inventory.StockItemRepository
	defaultGSTRate decimal.Decimal
}

// NewProductService creates a new ProductService. defaultGSTRate is applied
// when a create request carries no explicit rate.
func NewProductService(productRepo catalog.ProductRepository, stockRepo inventory.StockItemRepository, defaultGSTRate decimal.Decimal) *ProductService {
	return &ProductService{
		productRepo:    productRepo,
		stockRepo:      stockRepo,
		defaultGSTRate: defaultGSTRate,
	}
}

// Create adds a product and seeds its zero-quantity stock item. Admin only.
func (s *ProductService) Create(ctx context.Context, actor identity.Actor, req CreateProductRequest) (*ProductResponse, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	if existing, err := s.productRepo.FindByName(ctx, req.Name); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A product with this name already exists")
	}

	gstRate := s.defaultGSTRate
	if req.GSTPercentage != nil {
		gstRate = *req.GSTPercentage
	}

	product, err := catalog.NewProduct(req.Name, valueobject.NewMoneyINR(req.UnitPrice), gstRate, req.BottlesPerCrate)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	stock, err := inventory.NewStockItem(product.ID)
	if err != nil {
		return nil, err
	}
	if err := s.stockRepo.Save(ctx, stock); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Update applies a partial update to a product. Admin only.
func (s *ProductService) Update(ctx context.Context, actor identity.Actor, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.UnitPrice != nil {
		if err := product.UpdatePrice(valueobject.NewMoneyINR(*req.UnitPrice)); err != nil {
			return nil, err
		}
	}
	if req.GSTPercentage != nil {
		if err := product.UpdateGSTPercentage(*req.GSTPercentage); err != nil {
			return nil, err
		}
	}
	if req.BottlesPerCrate != nil {
		if err := product.SetBottlesPerCrate(*req.BottlesPerCrate); err != nil {
			return nil, err
		}
	}
	if req.Active != nil {
		if *req.Active {
			product.Activate()
		} else {
			product.Deactivate()
		}
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductResponses(products), total, nil
}
