package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"retail-backoffice/internal/model"
	"retail-backoffice/internal/tenant"
)

type CustomerRepository interface {
	Create(ctx context.Context, tx *gorm.DB, customer *model.Customer) error
	FindByID(ctx context.Context, id string) (*model.Customer, error)
	SoftDelete(ctx context.Context, tx *gorm.DB, id string) error
}

type customerRepoImpl struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepoImpl{
		db: db,
	}
}

func (r *customerRepoImpl) Create(ctx context.Context, tx *gorm.DB, customer *model.Customer) error {
	return tx.WithContext(ctx).Create(customer).Error
}

func (r *customerRepoImpl) FindByID(ctx context.Context, id string) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(ctx), notDeleted).
		Where("id = ?", id).
		First(&customer).Error

	if err != nil {
		return nil, err
	}

	return &customer, nil
}

func (r *customerRepoImpl) SoftDelete(ctx context.Context, tx *gorm.DB, id string) error {
	result := tx.WithContext(ctx).Model(&model.Customer{}).
		Scopes(tenant.Scope(ctx), notDeleted).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"deleted":    true,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
