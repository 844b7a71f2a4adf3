package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retail-backoffice/internal/apperr"
	"retail-backoffice/internal/config"
	"retail-backoffice/internal/dto"
	"retail-backoffice/internal/model"
)

func orderWorth25(t *testing.T, f *fixture) *model.Order {
	t.Helper()
	return f.mustCreateOrder(t, []dto.OrderItemRequest{
		{ProductID: "p1", Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
		{ProductID: "p2", Quantity: 1, UnitPrice: decimal.RequireFromString("5.00")},
	})
}

func Test_CreatePayment_FullBalanceMarksPaid(t *testing.T) {
	f := newFixture(t, config.Stock{})
	order := orderWorth25(t, f)

	payment, err := f.payments.CreatePayment(testCtx(), &dto.CreatePaymentRequest{
		OrderID: order.ID,
		Amount:  decimal.RequireFromString("25.00"),
		Method:  "cash",
	})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPending, payment.Status)
	assert.Equal(t, model.MethodCash, payment.Method)

	loaded, err := f.orders.GetOrder(testCtx(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, loaded.PaymentStatus)

	// even a cent more is over the balance now
	_, err = f.payments.CreatePayment(testCtx(), &dto.CreatePaymentRequest{
		OrderID: order.ID,
		Amount:  decimal.RequireFromString("0.01"),
		Method:  "cash",
	})
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
}

func Test_CreatePayment_PartialLeavesStatus(t *testing.T) {
	f := newFixture(t, config.Stock{})
	order := orderWorth25(t, f)

	_, err := f.payments.CreatePayment(testCtx(), &dto.CreatePaymentRequest{
		OrderID: order.ID,
		Amount:  decimal.RequireFromString("10.00"),
		Method:  "card",
	})
	require.NoError(t, err)

	loaded, err := f.orders.GetOrder(testCtx(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPending, loaded.PaymentStatus)

	// two partials summing to the total flip it
	_, err = f.payments.CreatePayment(testCtx(), &dto.CreatePaymentRequest{
		OrderID: order.ID,
		Amount:  decimal.RequireFromString("15.00"),
		Method:  "card",
	})
	require.NoError(t, err)

	loaded, err = f.orders.GetOrder(testCtx(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, loaded.PaymentStatus)
}

func Test_CreatePayment_RejectionWritesNothing(t *testing.T) {
	f := newFixture(t, config.Stock{})
	order := orderWorth25(t, f)

	_, err := f.payments.CreatePayment(testCtx(), &dto.CreatePaymentRequest{
		OrderID: order.ID,
		Amount:  decimal.RequireFromString("30.00"),
		Method:  "cash",
	})
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))

	page, err := f.payments.SearchPayments(testCtx(), &dto.SearchPaymentsRequest{OrderID: order.ID})
	require.NoError(t, err)
	assert.Zero(t, page.TotalCount)

	loaded, err := f.orders.GetOrder(testCtx(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPending, loaded.PaymentStatus)
}

func Test_CreatePayment_OrderNotFound(t *testing.T) {
	f := newFixture(t, config.Stock{})

	_, err := f.payments.CreatePayment(testCtx(), &dto.CreatePaymentRequest{
		OrderID: "no-such-order",
		Amount:  decimal.NewFromInt(1),
		Method:  "cash",
	})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func Test_UpdatePayment_PartialFields(t *testing.T) {
	f := newFixture(t, config.Stock{})
	order := orderWorth25(t, f)

	payment, err := f.payments.CreatePayment(testCtx(), &dto.CreatePaymentRequest{
		OrderID: order.ID,
		Amount:  decimal.RequireFromString("10.00"),
		Method:  "cash",
		Notes:   "first installment",
	})
	require.NoError(t, err)

	status := "COMPLETED"
	updated, err := f.payments.UpdatePayment(testCtx(), payment.ID, &dto.UpdatePaymentRequest{
		Status: &status,
	})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentCompleted, updated.Status)
	// untouched fields keep their values
	assert.Equal(t, "first installment", updated.Notes)
	assert.True(t, updated.Amount.Equal(payment.Amount))

	bad := "NOT_A_STATUS"
	_, err = f.payments.UpdatePayment(testCtx(), payment.ID, &dto.UpdatePaymentRequest{Status: &bad})
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
}

func Test_DeletePayment_SoftDelete(t *testing.T) {
	f := newFixture(t, config.Stock{})
	order := orderWorth25(t, f)

	payment, err := f.payments.CreatePayment(testCtx(), &dto.CreatePaymentRequest{
		OrderID: order.ID,
		Amount:  decimal.RequireFromString("10.00"),
		Method:  "cash",
	})
	require.NoError(t, err)

	require.NoError(t, f.payments.DeletePayment(testCtx(), payment.ID))

	// deleted payments disappear from every read path
	page, err := f.payments.SearchPayments(testCtx(), &dto.SearchPaymentsRequest{OrderID: order.ID})
	require.NoError(t, err)
	assert.Zero(t, page.TotalCount)

	_, err = f.payments.UpdatePayment(testCtx(), payment.ID, &dto.UpdatePaymentRequest{})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	err = f.payments.DeletePayment(testCtx(), payment.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	// the row itself survives as history
	var raw model.Payment
	require.NoError(t, f.db.Where("id = ?", payment.ID).First(&raw).Error)
	assert.True(t, raw.Deleted)

	// the freed balance is accepted again
	_, err = f.payments.CreatePayment(testCtx(), &dto.CreatePaymentRequest{
		OrderID: order.ID,
		Amount:  decimal.RequireFromString("25.00"),
		Method:  "cash",
	})
	require.NoError(t, err)
}

func Test_RefundPayment(t *testing.T) {
	f := newFixture(t, config.Stock{})
	order := orderWorth25(t, f)

	payment, err := f.payments.CreatePayment(testCtx(), &dto.CreatePaymentRequest{
		OrderID:       order.ID,
		Amount:        decimal.RequireFromString("25.00"),
		Method:        "card",
		TransactionID: "txn-123",
	})
	require.NoError(t, err)

	// only COMPLETED payments are refundable
	_, err = f.payments.RefundPayment(testCtx(), payment.ID, "")
	assert.Equal(t, apperr.KindIllegalState, apperr.KindOf(err))

	status := "COMPLETED"
	_, err = f.payments.UpdatePayment(testCtx(), payment.ID, &dto.UpdatePaymentRequest{Status: &status})
	require.NoError(t, err)

	refund, err := f.payments.RefundPayment(testCtx(), payment.ID, "customer returned goods")
	require.NoError(t, err)
	assert.True(t, refund.Amount.Equal(decimal.RequireFromString("-25.00")))
	assert.Equal(t, model.PaymentRefunded, refund.Status)
	assert.Equal(t, "REFUND_txn-123", refund.TransactionID)
	assert.Equal(t, model.MethodCard, refund.Method)
	assert.NotEqual(t, payment.ID, refund.ID)

	// the original row is untouched
	var original model.Payment
	require.NoError(t, f.db.Where("id = ?", payment.ID).First(&original).Error)
	assert.Equal(t, model.PaymentCompleted, original.Status)
	assert.True(t, original.Amount.Equal(decimal.RequireFromString("25.00")))
}

func Test_RefundPayment_NotFound(t *testing.T) {
	f := newFixture(t, config.Stock{})

	_, err := f.payments.RefundPayment(testCtx(), "no-such-payment", "")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func Test_SearchPayments_FiltersAndPaging(t *testing.T) {
	f := newFixture(t, config.Stock{})

	orderA := orderWorth25(t, f)
	orderB := orderWorth25(t, f)

	for _, amount := range []string{"5.00", "5.00", "10.00"} {
		_, err := f.payments.CreatePayment(testCtx(), &dto.CreatePaymentRequest{
			OrderID: orderA.ID,
			Amount:  decimal.RequireFromString(amount),
			Method:  "cash",
		})
		require.NoError(t, err)
	}
	_, err := f.payments.CreatePayment(testCtx(), &dto.CreatePaymentRequest{
		OrderID: orderB.ID,
		Amount:  decimal.RequireFromString("25.00"),
		Method:  "card",
	})
	require.NoError(t, err)

	page, err := f.payments.SearchPayments(testCtx(), &dto.SearchPaymentsRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 4, page.TotalCount)

	page, err = f.payments.SearchPayments(testCtx(), &dto.SearchPaymentsRequest{OrderID: orderA.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.TotalCount)

	page, err = f.payments.SearchPayments(testCtx(), &dto.SearchPaymentsRequest{Status: "pending"})
	require.NoError(t, err)
	assert.EqualValues(t, 4, page.TotalCount)

	page, err = f.payments.SearchPayments(testCtx(), &dto.SearchPaymentsRequest{OrderID: orderA.ID, Page: 1, Size: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.TotalCount)
	assert.Len(t, page.Items, 2)

	page, err = f.payments.SearchPayments(testCtx(), &dto.SearchPaymentsRequest{OrderID: orderA.ID, Page: 2, Size: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)

	_, err = f.payments.SearchPayments(testCtx(), &dto.SearchPaymentsRequest{Status: "bogus"})
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
}
