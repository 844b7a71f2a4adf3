package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"retail-backoffice/internal/model"
	"retail-backoffice/internal/tenant"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	FindByID(ctx context.Context, id string) (*model.Order, error)
	// FindForUpdate loads the order under a row lock so that concurrent
	// payment acceptance against the same order is serialized.
	FindForUpdate(ctx context.Context, tx *gorm.DB, id string) (*model.Order, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id string, status model.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, tx *gorm.DB, id string, status model.OrderPaymentStatus) error
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) FindByID(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(ctx)).
		Preload("Items").
		Where("id = ?", id).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) FindForUpdate(ctx context.Context, tx *gorm.DB, id string) (*model.Order, error) {
	var order model.Order
	err := tx.WithContext(ctx).
		Scopes(tenant.Scope(ctx)).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) UpdateStatus(ctx context.Context, tx *gorm.DB, id string, status model.OrderStatus) error {
	return tx.WithContext(ctx).Model(&model.Order{}).
		Scopes(tenant.Scope(ctx)).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

func (r *orderRepoImpl) UpdatePaymentStatus(ctx context.Context, tx *gorm.DB, id string, status model.OrderPaymentStatus) error {
	return tx.WithContext(ctx).Model(&model.Order{}).
		Scopes(tenant.Scope(ctx)).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"payment_status": status,
			"updated_at":     time.Now(),
		}).Error
}
