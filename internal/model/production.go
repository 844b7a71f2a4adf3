package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"retail-backoffice/internal/apperr"
)

type ProductionStatus string

const (
	ProductionDraft      ProductionStatus = "DRAFT"
	ProductionReleased   ProductionStatus = "RELEASED"
	ProductionInProgress ProductionStatus = "IN_PROGRESS"
	ProductionCompleted  ProductionStatus = "COMPLETED"
	ProductionClosed     ProductionStatus = "CLOSED"
)

// ParseProductionStatus validates the status value; any status may follow any
// other, there is deliberately no transition graph.
func ParseProductionStatus(s string) (ProductionStatus, error) {
	switch ProductionStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case ProductionDraft:
		return ProductionDraft, nil
	case ProductionReleased:
		return ProductionReleased, nil
	case ProductionInProgress:
		return ProductionInProgress, nil
	case ProductionCompleted:
		return ProductionCompleted, nil
	case ProductionClosed:
		return ProductionClosed, nil
	}
	return "", apperr.InvalidArgument("unknown production order status %q", s)
}

type ProductionOrder struct {
	ID               string           `gorm:"primaryKey;size:36;not null"`
	TenantID         string           `gorm:"size:36;index;not null"`
	OrderNumber      string           `gorm:"size:64;uniqueIndex;not null"`
	RecipeID         string           `gorm:"size:36;index"`
	WorkCenter       string           `gorm:"size:128"`
	PlannedQuantity  decimal.Decimal  `gorm:"type:decimal(20,4);not null"`
	ProducedQuantity decimal.Decimal  `gorm:"type:decimal(20,4);not null"`
	Status           ProductionStatus `gorm:"size:32;index;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MaterialIssue is an append-only record of raw material consumed by a
// production order.
type MaterialIssue struct {
	ID                uint            `gorm:"primaryKey"`
	TenantID          string          `gorm:"size:36;index;not null"`
	ProductionOrderID string          `gorm:"size:36;index;not null"`
	ProductID         string          `gorm:"size:36;index;not null"`
	Quantity          decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	BatchNumber       string          `gorm:"size:64"`
	ExpiryDate        *time.Time

	CreatedAt time.Time
}

// ProductionOutput is an append-only record of finished goods received from a
// production order.
type ProductionOutput struct {
	ID                uint            `gorm:"primaryKey"`
	TenantID          string          `gorm:"size:36;index;not null"`
	ProductionOrderID string          `gorm:"size:36;index;not null"`
	ProductID         string          `gorm:"size:36;index;not null"`
	Quantity          decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	BatchNumber       string          `gorm:"size:64"`
	ExpiryDate        *time.Time

	CreatedAt time.Time
}

// Batch is a traceability record created when an output line carries a batch
// number.
type Batch struct {
	ID             uint   `gorm:"primaryKey"`
	TenantID       string `gorm:"size:36;index;not null"`
	ProductID      string `gorm:"size:36;index;not null"`
	BatchNumber    string `gorm:"size:64;index;not null"`
	ProductionDate *time.Time
	ExpiryDate     *time.Time

	CreatedAt time.Time
}
