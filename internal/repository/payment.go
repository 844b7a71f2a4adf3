package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"retail-backoffice/internal/model"
	"retail-backoffice/internal/tenant"
)

// PaymentFilter holds the optional search predicates; a zero field matches
// everything.
type PaymentFilter struct {
	OrderID   string
	Status    model.PaymentState
	StartDate *time.Time
	EndDate   *time.Time
}

type PaymentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, payment *model.Payment) error
	FindByID(ctx context.Context, id string) (*model.Payment, error)
	// ListByOrder returns every live payment recorded against an order.
	ListByOrder(ctx context.Context, tx *gorm.DB, orderID string) ([]*model.Payment, error)
	Update(ctx context.Context, tx *gorm.DB, payment *model.Payment) error
	SoftDelete(ctx context.Context, tx *gorm.DB, id string) error
	Search(ctx context.Context, filter PaymentFilter, offset, limit int) ([]*model.Payment, int64, error)
}

type paymentRepoImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepoImpl{
		db: db,
	}
}

// notDeleted is the single place the soft-delete predicate lives; every read
// path goes through it.
func notDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("deleted = ?", false)
}

func (r *paymentRepoImpl) Create(ctx context.Context, tx *gorm.DB, payment *model.Payment) error {
	return tx.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepoImpl) FindByID(ctx context.Context, id string) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(ctx), notDeleted).
		Where("id = ?", id).
		First(&payment).Error

	if err != nil {
		return nil, err
	}

	return &payment, nil
}

func (r *paymentRepoImpl) ListByOrder(ctx context.Context, tx *gorm.DB, orderID string) ([]*model.Payment, error) {
	var payments []*model.Payment
	err := tx.WithContext(ctx).
		Scopes(tenant.Scope(ctx), notDeleted).
		Where("order_id = ?", orderID).
		Find(&payments).Error

	if err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *paymentRepoImpl) Update(ctx context.Context, tx *gorm.DB, payment *model.Payment) error {
	return tx.WithContext(ctx).Save(payment).Error
}

func (r *paymentRepoImpl) SoftDelete(ctx context.Context, tx *gorm.DB, id string) error {
	result := tx.WithContext(ctx).Model(&model.Payment{}).
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

func (r *paymentRepoImpl) Search(ctx context.Context, filter PaymentFilter, offset, limit int) ([]*model.Payment, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Payment{}).
		Scopes(tenant.Scope(ctx), notDeleted)

	if filter.OrderID != "" {
		query = query.Where("order_id = ?", filter.OrderID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.StartDate != nil {
		query = query.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("created_at <= ?", *filter.EndDate)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []*model.Payment
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&payments).Error

	if err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}
