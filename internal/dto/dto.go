package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type CreateOrderRequest struct {
	CustomerID string             `json:"customer_id"`
	UserID     string             `json:"user_id"`
	Status     string             `json:"status"`
	Notes      string             `json:"notes"`
	Items      []OrderItemRequest `json:"items"`
}

type CreatePaymentRequest struct {
	OrderID       string          `json:"order_id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	Notes         string          `json:"notes"`
	TransactionID string          `json:"transaction_id"`
}

// UpdatePaymentRequest applies only the fields present in the body; absent
// fields leave the stored value untouched.
type UpdatePaymentRequest struct {
	Amount        *decimal.Decimal `json:"amount"`
	Method        *string          `json:"method"`
	Status        *string          `json:"status"`
	Notes         *string          `json:"notes"`
	TransactionID *string          `json:"transaction_id"`
}

type RefundPaymentRequest struct {
	Notes string `json:"notes"`
}

type SearchPaymentsRequest struct {
	OrderID   string     `query:"order_id"`
	Status    string     `query:"status"`
	StartDate *time.Time `query:"start_date"`
	EndDate   *time.Time `query:"end_date"`
	Page      int        `query:"page"`
	Size      int        `query:"size"`
}

type MaterialItemRequest struct {
	ProductID   string          `json:"product_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	BatchNumber string          `json:"batch_number"`
	ExpiryDate  *time.Time      `json:"expiry_date"`
}

type MaterialItemsRequest struct {
	Items []MaterialItemRequest `json:"items"`
}

type ChangeProductionStatusRequest struct {
	Status string `json:"status"`
}

type CreateProductionOrderRequest struct {
	RecipeID        string          `json:"recipe_id"`
	WorkCenter      string          `json:"work_center"`
	PlannedQuantity decimal.Decimal `json:"planned_quantity"`
}

type CreateProductRequest struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	InitialStock int             `json:"initial_stock"`
}

type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalCount int64 `json:"total_count"`
}
