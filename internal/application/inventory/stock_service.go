package inventory

import (
	"context"

	"github.com/distribops/backend/internal/domain/identity"
	"github.com/distribops/backend/internal/domain/inventory"
	"github.com/distribops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StockService handles goods-in and stock visibility. Deduction happens
// only through order approval; this service never decrements.
type StockService struct {
	stockRepo         inventory.StockItemRepository
	eventPublisher    shared.EventPublisher
	lowStockThreshold int64
}

// NewStockService creates a new StockService. lowStockThreshold drives the
// low-stock listing used by the replenishment view.
func NewStockService(stockRepo inventory.StockItemRepository, lowStockThreshold int64) *StockService {
	return &StockService{
		stockRepo:         stockRepo,
		lowStockThreshold: lowStockThreshold,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *StockService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// ReceiveStock records a goods-in delivery against a product. Admin only.
func (s *StockService) ReceiveStock(ctx context.Context, actor identity.Actor, req ReceiveStockRequest) (*StockItemResponse, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	stock, err := s.stockRepo.FindByProductID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if err := stock.IncrementStock(req.Quantity); err != nil {
		return nil, err
	}
	if err := s.stockRepo.SaveWithLock(ctx, stock); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, stock)

	response := ToStockItemResponse(stock)
	return &response, nil
}

// GetByProduct retrieves the stock row for a product
func (s *StockService) GetByProduct(ctx context.Context, productID uuid.UUID) (*StockItemResponse, error) {
	stock, err := s.stockRepo.FindByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	response := ToStockItemResponse(stock)
	return &response, nil
}

// List retrieves all stock rows with pagination
func (s *StockService) List(ctx context.Context, filter StockListFilter) ([]StockItemResponse, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	items, err := s.stockRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	return ToStockItemResponses(items), nil
}

// ListLowStock retrieves rows under the configured replenishment threshold
func (s *StockService) ListLowStock(ctx context.Context) ([]StockItemResponse, error) {
	items, err := s.stockRepo.FindBelowThreshold(ctx, s.lowStockThreshold)
	if err != nil {
		return nil, err
	}
	return ToStockItemResponses(items), nil
}

func (s *StockService) publishEvents(ctx context.Context, stock *inventory.StockItem) {
	if s.eventPublisher == nil {
		return
	}
	events := stock.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	stock.ClearDomainEvents()
}
