package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"retail-backoffice/internal/model"
	"retail-backoffice/internal/tenant"
)

// ErrStockFloor is returned when a decrement would drive on-hand quantity
// below zero and the negative-stock policy forbids it.
var ErrStockFloor = errors.New("stock adjustment below zero")

type ProductRepository interface {
	Create(ctx context.Context, tx *gorm.DB, product *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindMany(ctx context.Context, ids []string) ([]*model.Product, error)
	// AdjustStock applies a signed delta to a product's on-hand quantity as a
	// single atomic update, so concurrent adjustments never lose writes. With
	// allowNegative false, a decrement past zero fails with ErrStockFloor and
	// writes nothing.
	AdjustStock(ctx context.Context, tx *gorm.DB, id string, delta int, allowNegative bool) error
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) Create(ctx context.Context, tx *gorm.DB, product *model.Product) error {
	return tx.WithContext(ctx).Create(product).Error
}

func (r *productRepoImpl) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(ctx)).
		Where("id = ?", id).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindMany(ctx context.Context, ids []string) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(ctx)).
		Where("id IN ?", ids).
		Find(&products).Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) AdjustStock(ctx context.Context, tx *gorm.DB, id string, delta int, allowNegative bool) error {
	query := tx.WithContext(ctx).Model(&model.Product{}).
		Scopes(tenant.Scope(ctx)).
		Where("id = ?", id)

	if !allowNegative {
		query = query.Where("quantity_in_stock + ? >= 0", delta)
	}

	result := query.Updates(map[string]interface{}{
		"quantity_in_stock": gorm.Expr("quantity_in_stock + ?", delta),
		"updated_at":        time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// The product exists (the caller verified it); the guard is what
		// rejected the update.
		if !allowNegative {
			return ErrStockFloor
		}
		return gorm.ErrRecordNotFound
	}
	return nil
}
