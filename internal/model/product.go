package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product stock is only ever changed by a signed delta applied at the store
// layer; QuantityInStock is never written directly by a workflow.
type Product struct {
	ID              string          `gorm:"primaryKey;size:36;not null"`
	TenantID        string          `gorm:"size:36;index;not null"`
	SKU             string          `gorm:"size:64;uniqueIndex;not null"`
	Name            string          `gorm:"size:255;not null"`
	Price           decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	CostPrice       decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	QuantityInStock int             `gorm:"not null"`
	Active          bool            `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Customer is soft-deletable; read paths filter on the flag.
type Customer struct {
	ID       string `gorm:"primaryKey;size:36;not null"`
	TenantID string `gorm:"size:36;index;not null"`
	Name     string `gorm:"size:255;not null"`
	Email    string `gorm:"size:255;index"`
	Phone    string `gorm:"size:64"`
	Deleted  bool   `gorm:"index;not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
