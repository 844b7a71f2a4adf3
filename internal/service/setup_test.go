package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"retail-backoffice/internal/client"
	"retail-backoffice/internal/config"
	"retail-backoffice/internal/dto"
	"retail-backoffice/internal/model"
	"retail-backoffice/internal/repository"
	"retail-backoffice/internal/tenant"
)

const testTenant = "tenant-1"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection so every query sees the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, client.Migrate(db))
	return db
}

func testCtx() context.Context {
	return tenant.WithID(context.Background(), testTenant)
}

type fixture struct {
	db         *gorm.DB
	orders     OrderService
	payments   PaymentService
	production ProductionService
	catalog    CatalogService
}

func newFixture(t *testing.T, stock config.Stock) *fixture {
	t.Helper()

	db := newTestDB(t)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	productRepo := repository.NewProductRepository(db)
	productionRepo := repository.NewProductionRepository(db)
	customerRepo := repository.NewCustomerRepository(db)

	paging := config.Paging{DefaultSize: 20, MaxSize: 100}

	return &fixture{
		db:         db,
		orders:     NewOrderService(db, orderRepo),
		payments:   NewPaymentService(db, paging, orderRepo, paymentRepo),
		production: NewProductionService(db, stock, productionRepo, productRepo),
		catalog:    NewCatalogService(db, productRepo, customerRepo),
	}
}

func (f *fixture) mustCreateProduct(t *testing.T, sku string, stock int) *model.Product {
	t.Helper()

	product, err := f.catalog.CreateProduct(testCtx(), sku, "product "+sku,
		decimal.NewFromInt(10), decimal.NewFromInt(5), stock)
	require.NoError(t, err)
	return product
}

func (f *fixture) mustCreateOrder(t *testing.T, items []dto.OrderItemRequest) *model.Order {
	t.Helper()

	order, err := f.orders.CreateOrder(testCtx(), &dto.CreateOrderRequest{
		CustomerID: "customer-1",
		UserID:     "user-1",
		Items:      items,
	})
	require.NoError(t, err)
	return order
}

func (f *fixture) mustCreateProductionOrder(t *testing.T) *model.ProductionOrder {
	t.Helper()

	order, err := f.production.CreateProductionOrder(testCtx(), "recipe-1", "line-1", decimal.NewFromInt(100))
	require.NoError(t, err)
	return order
}

func (f *fixture) productStock(t *testing.T, id string) int {
	t.Helper()

	var product model.Product
	require.NoError(t, f.db.Where("id = ?", id).First(&product).Error)
	return product.QuantityInStock
}
