package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retail-backoffice/internal/apperr"
	"retail-backoffice/internal/config"
	"retail-backoffice/internal/dto"
	"retail-backoffice/internal/model"
)

func Test_IssueMaterials_DecrementsStock(t *testing.T) {
	f := newFixture(t, config.Stock{})

	flour := f.mustCreateProduct(t, "FLOUR", 100)
	sugar := f.mustCreateProduct(t, "SUGAR", 50)
	po := f.mustCreateProductionOrder(t)

	err := f.production.IssueMaterials(testCtx(), po.ID, []dto.MaterialItemRequest{
		{ProductID: flour.ID, Quantity: decimal.NewFromInt(30)},
		{ProductID: sugar.ID, Quantity: decimal.NewFromInt(10)},
		{ProductID: flour.ID, Quantity: decimal.NewFromInt(5)},
	})
	require.NoError(t, err)

	assert.Equal(t, 65, f.productStock(t, flour.ID))
	assert.Equal(t, 40, f.productStock(t, sugar.ID))

	var issues []model.MaterialIssue
	require.NoError(t, f.db.Where("production_order_id = ?", po.ID).Find(&issues).Error)
	assert.Len(t, issues, 3)
}

func Test_IssueMaterials_ZeroQuantityWritesNoStock(t *testing.T) {
	f := newFixture(t, config.Stock{})

	flour := f.mustCreateProduct(t, "FLOUR", 100)
	po := f.mustCreateProductionOrder(t)

	err := f.production.IssueMaterials(testCtx(), po.ID, []dto.MaterialItemRequest{
		{ProductID: flour.ID, Quantity: decimal.Zero},
	})
	require.NoError(t, err)

	assert.Equal(t, 100, f.productStock(t, flour.ID))

	var issues []model.MaterialIssue
	require.NoError(t, f.db.Where("production_order_id = ?", po.ID).Find(&issues).Error)
	assert.Len(t, issues, 1)
}

func Test_IssueMaterials_TruncatesFractionalQuantity(t *testing.T) {
	f := newFixture(t, config.Stock{})

	flour := f.mustCreateProduct(t, "FLOUR", 100)
	po := f.mustCreateProductionOrder(t)

	err := f.production.IssueMaterials(testCtx(), po.ID, []dto.MaterialItemRequest{
		{ProductID: flour.ID, Quantity: decimal.RequireFromString("2.75")},
	})
	require.NoError(t, err)

	// the issue row keeps the fractional quantity, the stock delta is whole units
	assert.Equal(t, 98, f.productStock(t, flour.ID))

	var issue model.MaterialIssue
	require.NoError(t, f.db.Where("production_order_id = ?", po.ID).First(&issue).Error)
	assert.True(t, issue.Quantity.Equal(decimal.RequireFromString("2.75")))
}

func Test_IssueMaterials_StockFloor(t *testing.T) {
	f := newFixture(t, config.Stock{AllowNegative: false})

	flour := f.mustCreateProduct(t, "FLOUR", 10)
	po := f.mustCreateProductionOrder(t)

	err := f.production.IssueMaterials(testCtx(), po.ID, []dto.MaterialItemRequest{
		{ProductID: flour.ID, Quantity: decimal.NewFromInt(11)},
	})
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))

	// the rejected call leaves nothing behind
	assert.Equal(t, 10, f.productStock(t, flour.ID))
	var count int64
	require.NoError(t, f.db.Model(&model.MaterialIssue{}).Where("production_order_id = ?", po.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func Test_IssueMaterials_NegativeStockAllowedByPolicy(t *testing.T) {
	f := newFixture(t, config.Stock{AllowNegative: true})

	flour := f.mustCreateProduct(t, "FLOUR", 10)
	po := f.mustCreateProductionOrder(t)

	err := f.production.IssueMaterials(testCtx(), po.ID, []dto.MaterialItemRequest{
		{ProductID: flour.ID, Quantity: decimal.NewFromInt(25)},
	})
	require.NoError(t, err)

	assert.Equal(t, -15, f.productStock(t, flour.ID))
}

func Test_IssueMaterials_OrderNotFound(t *testing.T) {
	f := newFixture(t, config.Stock{})

	err := f.production.IssueMaterials(testCtx(), "no-such-order", []dto.MaterialItemRequest{
		{ProductID: "p1", Quantity: decimal.NewFromInt(1)},
	})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func Test_IssueMaterials_ProductNotFound(t *testing.T) {
	f := newFixture(t, config.Stock{})

	po := f.mustCreateProductionOrder(t)

	err := f.production.IssueMaterials(testCtx(), po.ID, []dto.MaterialItemRequest{
		{ProductID: "no-such-product", Quantity: decimal.NewFromInt(1)},
	})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func Test_ReceiveOutput(t *testing.T) {
	f := newFixture(t, config.Stock{})

	bread := f.mustCreateProduct(t, "BREAD", 0)
	cake := f.mustCreateProduct(t, "CAKE", 5)
	po := f.mustCreateProductionOrder(t)

	expiry := time.Now().AddDate(0, 1, 0)
	err := f.production.ReceiveOutput(testCtx(), po.ID, []dto.MaterialItemRequest{
		{ProductID: bread.ID, Quantity: decimal.NewFromInt(40), BatchNumber: "B-001", ExpiryDate: &expiry},
		{ProductID: cake.ID, Quantity: decimal.RequireFromString("12.5")},
	})
	require.NoError(t, err)

	assert.Equal(t, 40, f.productStock(t, bread.ID))
	assert.Equal(t, 17, f.productStock(t, cake.ID))

	loaded, err := f.production.GetProductionOrder(testCtx(), po.ID)
	require.NoError(t, err)
	assert.True(t, loaded.ProducedQuantity.Equal(decimal.RequireFromString("52.5")),
		"produced = %s", loaded.ProducedQuantity)

	var outputs []model.ProductionOutput
	require.NoError(t, f.db.Where("production_order_id = ?", po.ID).Find(&outputs).Error)
	assert.Len(t, outputs, 2)

	// a batch only for the line that carried a batch number
	var batches []model.Batch
	require.NoError(t, f.db.Find(&batches).Error)
	require.Len(t, batches, 1)
	assert.Equal(t, bread.ID, batches[0].ProductID)
	assert.Equal(t, "B-001", batches[0].BatchNumber)
	require.NotNil(t, batches[0].ExpiryDate)
}

func Test_ReceiveOutput_AccumulatesProducedQuantity(t *testing.T) {
	f := newFixture(t, config.Stock{})

	bread := f.mustCreateProduct(t, "BREAD", 0)
	po := f.mustCreateProductionOrder(t)

	for i := 0; i < 3; i++ {
		err := f.production.ReceiveOutput(testCtx(), po.ID, []dto.MaterialItemRequest{
			{ProductID: bread.ID, Quantity: decimal.NewFromInt(10)},
		})
		require.NoError(t, err)
	}

	loaded, err := f.production.GetProductionOrder(testCtx(), po.ID)
	require.NoError(t, err)
	assert.True(t, loaded.ProducedQuantity.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, 30, f.productStock(t, bread.ID))
}

func Test_ChangeOrderStatus(t *testing.T) {
	f := newFixture(t, config.Stock{})

	po := f.mustCreateProductionOrder(t)
	assert.Equal(t, model.ProductionDraft, po.Status)

	// no transition graph: DRAFT straight to COMPLETED is fine
	updated, err := f.production.ChangeOrderStatus(testCtx(), po.ID, "completed")
	require.NoError(t, err)
	assert.Equal(t, model.ProductionCompleted, updated.Status)

	_, err = f.production.ChangeOrderStatus(testCtx(), po.ID, "PAUSED")
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))

	_, err = f.production.ChangeOrderStatus(testCtx(), "no-such-order", "CLOSED")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
