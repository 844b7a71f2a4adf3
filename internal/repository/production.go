package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"retail-backoffice/internal/model"
	"retail-backoffice/internal/tenant"
)

type ProductionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.ProductionOrder) error
	FindByID(ctx context.Context, id string) (*model.ProductionOrder, error)
	// FindForUpdate locks the production order row so concurrent issue/output
	// calls against the same order are serialized.
	FindForUpdate(ctx context.Context, tx *gorm.DB, id string) (*model.ProductionOrder, error)
	Save(ctx context.Context, tx *gorm.DB, order *model.ProductionOrder) error
	CreateIssues(ctx context.Context, tx *gorm.DB, issues []*model.MaterialIssue) error
	CreateOutputs(ctx context.Context, tx *gorm.DB, outputs []*model.ProductionOutput) error
	CreateBatch(ctx context.Context, tx *gorm.DB, batch *model.Batch) error
	ListIssues(ctx context.Context, orderID string) ([]*model.MaterialIssue, error)
	ListOutputs(ctx context.Context, orderID string) ([]*model.ProductionOutput, error)
}

type productionRepoImpl struct {
	db *gorm.DB
}

func NewProductionRepository(db *gorm.DB) ProductionRepository {
	return &productionRepoImpl{
		db: db,
	}
}

func (r *productionRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.ProductionOrder) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *productionRepoImpl) FindByID(ctx context.Context, id string) (*model.ProductionOrder, error) {
	var order model.ProductionOrder
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(ctx)).
		Where("id = ?", id).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *productionRepoImpl) FindForUpdate(ctx context.Context, tx *gorm.DB, id string) (*model.ProductionOrder, error) {
	var order model.ProductionOrder
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

func (r *productionRepoImpl) Save(ctx context.Context, tx *gorm.DB, order *model.ProductionOrder) error {
	return tx.WithContext(ctx).Save(order).Error
}

func (r *productionRepoImpl) CreateIssues(ctx context.Context, tx *gorm.DB, issues []*model.MaterialIssue) error {
	return tx.WithContext(ctx).Create(&issues).Error
}

func (r *productionRepoImpl) CreateOutputs(ctx context.Context, tx *gorm.DB, outputs []*model.ProductionOutput) error {
	return tx.WithContext(ctx).Create(&outputs).Error
}

func (r *productionRepoImpl) CreateBatch(ctx context.Context, tx *gorm.DB, batch *model.Batch) error {
	return tx.WithContext(ctx).Create(batch).Error
}

func (r *productionRepoImpl) ListIssues(ctx context.Context, orderID string) ([]*model.MaterialIssue, error) {
	var issues []*model.MaterialIssue
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(ctx)).
		Where("production_order_id = ?", orderID).
		Find(&issues).Error

	if err != nil {
		return nil, err
	}

	return issues, nil
}

func (r *productionRepoImpl) ListOutputs(ctx context.Context, orderID string) ([]*model.ProductionOutput, error) {
	var outputs []*model.ProductionOutput
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(ctx)).
		Where("production_order_id = ?", orderID).
		Find(&outputs).Error

	if err != nil {
		return nil, err
	}

	return outputs, nil
}
