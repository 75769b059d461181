package catalog

import (
	"context"
	"testing"

	"github.com/distribops/backend/internal/domain/catalog"
	"github.com/distribops/backend/internal/domain/identity"
	"github.com/distribops/backend/internal/domain/inventory"
	"github.com/distribops/backend/internal/domain/shared"
	"github.com/distribops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByName(ctx context.Context, name string) (*catalog.Product, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockStockItemRepository is a mock implementation of inventory.StockItemRepository
type MockStockItemRepository struct {
	mock.Mock
}

func (m *MockStockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) FindByProductID(ctx context.Context, productID uuid.UUID) (*inventory.StockItem, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) FindByProductIDForUpdate(ctx context.Context, productID uuid.UUID) (*inventory.StockItem, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) FindBelowThreshold(ctx context.Context, threshold int64) ([]inventory.StockItem, error) {
	args := m.Called(ctx, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) Save(ctx context.Context, item *inventory.StockItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockStockItemRepository) SaveWithLock(ctx context.Context, item *inventory.StockItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func admin() identity.Actor {
	return identity.Actor{ID: uuid.New(), Role: identity.RoleAdmin}
}

func newProductServiceFixture() (*ProductService, *MockProductRepository, *MockStockItemRepository) {
	productRepo := new(MockProductRepository)
	stockRepo := new(MockStockItemRepository)
	service := NewProductService(productRepo, stockRepo, decimal.NewFromInt(18))
	return service, productRepo, stockRepo
}

func TestProductService_Create(t *testing.T) {
	service, productRepo, stockRepo := newProductServiceFixture()

	productRepo.On("FindByName", mock.Anything, "Kinley 1L").Return(nil, shared.ErrNotFound)
	productRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)
	stockRepo.On("Save", mock.Anything, mock.AnythingOfType("*inventory.StockItem")).Return(nil)

	resp, err := service.Create(context.Background(), admin(), CreateProductRequest{
		Name:            "Kinley 1L",
		UnitPrice:       decimal.RequireFromString("20.00"),
		BottlesPerCrate: 12,
	})

	require.NoError(t, err)
	assert.Equal(t, "Kinley 1L", resp.Name)
	// Default GST rate applies when the request carries none
	assert.True(t, resp.GSTPercentage.Equal(decimal.NewFromInt(18)))
	// Product creation seeds the zero-quantity stock row
	stockRepo.AssertNumberOfCalls(t, "Save", 1)
}

func TestProductService_Create_ExplicitGST(t *testing.T) {
	service, productRepo, stockRepo := newProductServiceFixture()
	five := decimal.NewFromInt(5)

	productRepo.On("FindByName", mock.Anything, "Kinley 500ml").Return(nil, shared.ErrNotFound)
	productRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)
	stockRepo.On("Save", mock.Anything, mock.AnythingOfType("*inventory.StockItem")).Return(nil)

	resp, err := service.Create(context.Background(), admin(), CreateProductRequest{
		Name:            "Kinley 500ml",
		UnitPrice:       decimal.RequireFromString("10.50"),
		GSTPercentage:   &five,
		BottlesPerCrate: 24,
	})

	require.NoError(t, err)
	assert.True(t, resp.GSTPercentage.Equal(five))
}

func TestProductService_Create_DuplicateName(t *testing.T) {
	service, productRepo, stockRepo := newProductServiceFixture()
	unitPrice, err := valueobject.NewMoneyINRFromString("20.00")
	require.NoError(t, err)
	existing, err := catalog.NewProduct("Kinley 1L", unitPrice, decimal.NewFromInt(18), 12)
	require.NoError(t, err)

	productRepo.On("FindByName", mock.Anything, "Kinley 1L").Return(existing, nil)

	_, err = service.Create(context.Background(), admin(), CreateProductRequest{
		Name:            "Kinley 1L",
		UnitPrice:       decimal.RequireFromString("20.00"),
		BottlesPerCrate: 12,
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	stockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProductService_Create_NonAdmin(t *testing.T) {
	service, _, _ := newProductServiceFixture()

	_, err := service.Create(context.Background(),
		identity.Actor{ID: uuid.New(), Role: identity.RoleSalesRep},
		CreateProductRequest{Name: "Kinley 1L", UnitPrice: decimal.RequireFromString("20.00"), BottlesPerCrate: 12})

	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestProductService_Update(t *testing.T) {
	service, productRepo, _ := newProductServiceFixture()
	unitPrice, err := valueobject.NewMoneyINRFromString("20.00")
	require.NoError(t, err)
	product, err := catalog.NewProduct("Kinley 1L", unitPrice, decimal.NewFromInt(18), 12)
	require.NoError(t, err)
	product.ClearDomainEvents()

	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	productRepo.On("SaveWithLock", mock.Anything, product).Return(nil)

	newPrice := decimal.RequireFromString("22.00")
	inactive := false
	resp, err := service.Update(context.Background(), admin(), product.ID, UpdateProductRequest{
		UnitPrice: &newPrice,
		Active:    &inactive,
	})

	require.NoError(t, err)
	assert.True(t, resp.UnitPrice.Equal(newPrice))
	assert.False(t, resp.Active)
}
