package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/distribops/backend/internal/domain/shared"
	"github.com/distribops/backend/internal/domain/shared/valueobject"
	"github.com/distribops/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func mustMoney(t *testing.T, amount string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyINRFromString(amount)
	require.NoError(t, err)
	return m
}

// newMockDB creates a GORM connection backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestGormOrderRepository_FindByID_NotFound(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormOrderRepository(db)

	orderID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1`).
		WithArgs(orderID, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	order, err := repo.FindByID(context.Background(), orderID)

	assert.Nil(t, order)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormOrderRepository_FindByID(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormOrderRepository(db)

	orderID := uuid.New()
	retailerID := uuid.New()
	salesRepID := uuid.New()

	orderRows := sqlmock.NewRows([]string{
		"id", "order_number", "retailer_id", "retailer_name", "sales_rep_id",
		"total_amount", "status", "payment_mode", "version",
	}).AddRow(
		orderID, "ORD-20260829-0001", retailerID, "Sharma Traders", salesRepID,
		decimal.RequireFromString("452.00"), "REQUESTED", "CASH", 1,
	)

	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1`).
		WithArgs(orderID, 1).
		WillReturnRows(orderRows)

	itemRows := sqlmock.NewRows([]string{
		"id", "order_id", "product_id", "product_name", "quantity",
		"price_per_unit", "gst_percentage", "total_price",
	}).AddRow(
		uuid.New(), orderID, uuid.New(), "Kinley 1L", 20,
		decimal.RequireFromString("22.60"), decimal.NewFromInt(18), decimal.RequireFromString("452.00"),
	)

	mock.ExpectQuery(`SELECT \* FROM "order_items" WHERE "order_items"\."order_id" = \$1`).
		WithArgs(orderID).
		WillReturnRows(itemRows)

	order, err := repo.FindByID(context.Background(), orderID)

	require.NoError(t, err)
	assert.Equal(t, "ORD-20260829-0001", order.OrderNumber)
	assert.Equal(t, trade.OrderStatusRequested, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Kinley 1L", order.Items[0].ProductName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormOrderRepository_SaveWithLock_Conflict(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormOrderRepository(db)

	order, err := trade.NewOrder("ORD-1", uuid.New(), "Sharma Traders", uuid.New(),
		trade.PaymentModeCash, trade.GPSCoordinate{}, []trade.ItemSnapshot{{
			ProductID:   uuid.New(),
			ProductName: "Kinley 1L",
			Quantity:    1,
			UnitPrice:   mustMoney(t, "20.00"),
		}})
	require.NoError(t, err)
	require.NoError(t, order.Approve())

	mock.ExpectExec(`UPDATE "orders" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.SaveWithLock(context.Background(), order)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "OPTIMISTIC_LOCK_FAILED", domainErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormOrderRepository_NextOrderNumber(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormOrderRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "orders" WHERE created_at >= \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(41))

	number, err := repo.NextOrderNumber(context.Background())

	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("ORD-%s-0042", time.Now().Format("20060102")), number)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormOrderRepository_CountByStatus(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormOrderRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "orders" WHERE status = \$1`).
		WithArgs("REQUESTED").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountByStatus(context.Background(), trade.OrderStatusRequested)

	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
