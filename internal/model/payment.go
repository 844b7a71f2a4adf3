package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"retail-backoffice/internal/apperr"
)

type PaymentMethod string

const (
	MethodCash         PaymentMethod = "CASH"
	MethodCard         PaymentMethod = "CARD"
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	MethodMobile       PaymentMethod = "MOBILE"
	MethodOther        PaymentMethod = "OTHER"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(strings.ToUpper(strings.TrimSpace(s))) {
	case MethodCash:
		return MethodCash, nil
	case MethodCard:
		return MethodCard, nil
	case MethodBankTransfer:
		return MethodBankTransfer, nil
	case MethodMobile:
		return MethodMobile, nil
	case MethodOther:
		return MethodOther, nil
	}
	return "", apperr.InvalidArgument("unknown payment method %q", s)
}

type PaymentState string

const (
	PaymentPending           PaymentState = "PENDING"
	PaymentCompleted         PaymentState = "COMPLETED"
	PaymentFailed            PaymentState = "FAILED"
	PaymentRefunded          PaymentState = "REFUNDED"
	PaymentPartiallyRefunded PaymentState = "PARTIALLY_REFUNDED"
	PaymentCancelled         PaymentState = "CANCELLED"
)

func ParsePaymentState(s string) (PaymentState, error) {
	switch PaymentState(strings.ToUpper(strings.TrimSpace(s))) {
	case PaymentPending:
		return PaymentPending, nil
	case PaymentCompleted:
		return PaymentCompleted, nil
	case PaymentFailed:
		return PaymentFailed, nil
	case PaymentRefunded:
		return PaymentRefunded, nil
	case PaymentPartiallyRefunded:
		return PaymentPartiallyRefunded, nil
	case PaymentCancelled:
		return PaymentCancelled, nil
	}
	return "", apperr.InvalidArgument("unknown payment status %q", s)
}

// Payment is one recorded money movement against an order. Refunds are
// appended as new rows with a negated amount; historical rows are never
// mutated, and deletion only flips the Deleted flag.
type Payment struct {
	ID            string          `gorm:"primaryKey;size:36;not null"`
	TenantID      string          `gorm:"size:36;index;not null"`
	OrderID       string          `gorm:"size:36;index;not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	Method        PaymentMethod   `gorm:"size:32;not null"`
	Status        PaymentState    `gorm:"size:32;index;not null"`
	TransactionID string          `gorm:"size:128"`
	Notes         string          `gorm:"size:1024"`
	CreatedBy     string          `gorm:"size:36"`
	Deleted       bool            `gorm:"index;not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
