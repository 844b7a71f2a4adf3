package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"retail-backoffice/internal/apperr"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderCompleted  OrderStatus = "COMPLETED"
	OrderCancelled  OrderStatus = "CANCELLED"
	OrderRefunded   OrderStatus = "REFUNDED"
)

// ParseOrderStatus maps a client-supplied status string, case-insensitively,
// onto the enum. Unknown values are an InvalidArgument.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case OrderPending:
		return OrderPending, nil
	case OrderProcessing:
		return OrderProcessing, nil
	case OrderCompleted:
		return OrderCompleted, nil
	case OrderCancelled:
		return OrderCancelled, nil
	case OrderRefunded:
		return OrderRefunded, nil
	}
	return "", apperr.InvalidArgument("unknown order status %q", s)
}

type OrderPaymentStatus string

const (
	PaymentStatusPending           OrderPaymentStatus = "PENDING"
	PaymentStatusAuthorized        OrderPaymentStatus = "AUTHORIZED"
	PaymentStatusPaid              OrderPaymentStatus = "PAID"
	PaymentStatusRefunded          OrderPaymentStatus = "REFUNDED"
	PaymentStatusPartiallyRefunded OrderPaymentStatus = "PARTIALLY_REFUNDED"
	PaymentStatusVoided            OrderPaymentStatus = "VOIDED"
	PaymentStatusFailed            OrderPaymentStatus = "FAILED"
)

type Order struct {
	ID             string             `gorm:"primaryKey;size:36;not null"`
	TenantID       string             `gorm:"size:36;index;not null"`
	OrderNumber    string             `gorm:"size:64;uniqueIndex;not null"`
	CustomerID     string             `gorm:"size:36;index;not null"`
	UserID         string             `gorm:"size:36;index;not null"`
	Subtotal       decimal.Decimal    `gorm:"type:decimal(20,4);not null"`
	TaxAmount      decimal.Decimal    `gorm:"type:decimal(20,4);not null"`
	DiscountAmount decimal.Decimal    `gorm:"type:decimal(20,4);not null"`
	TotalAmount    decimal.Decimal    `gorm:"type:decimal(20,4);not null"`
	OrderDate      time.Time
	Status         OrderStatus        `gorm:"size:32;index;not null"`
	PaymentStatus  OrderPaymentStatus `gorm:"size:32;index;not null"`
	Notes          string             `gorm:"size:1024"`

	// Insertion order is line order.
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrderItem struct {
	ID             uint            `gorm:"primaryKey"`
	OrderID        string          `gorm:"size:36;index;not null"`
	ProductID      string          `gorm:"size:36;index;not null"`
	Quantity       int             `gorm:"not null"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	TotalPrice     decimal.Decimal `gorm:"type:decimal(20,4);not null"`

	CreatedAt time.Time
}

// CalculateTotal recomputes the line total:
// unit price * quantity - discount + tax.
func (i *OrderItem) CalculateTotal() {
	i.TotalPrice = i.UnitPrice.
		Mul(decimal.NewFromInt(int64(i.Quantity))).
		Sub(i.DiscountAmount).
		Add(i.TaxAmount)
}

// CalculateTotals recomputes the order's subtotal from its items and derives
// the total amount. Item totals must be finalized (CalculateTotal) before
// calling this, or the subtotal reflects stale line totals.
func (o *Order) CalculateTotals() {
	subtotal := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.TotalPrice)
	}
	o.Subtotal = subtotal
	o.TotalAmount = subtotal.Add(o.TaxAmount).Sub(o.DiscountAmount)
}
