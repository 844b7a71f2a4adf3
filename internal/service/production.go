package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"retail-backoffice/internal/apperr"
	"retail-backoffice/internal/config"
	"retail-backoffice/internal/dto"
	"retail-backoffice/internal/model"
	"retail-backoffice/internal/repository"
	"retail-backoffice/internal/tenant"
)

type ProductionService interface {
	CreateProductionOrder(ctx context.Context, recipeID, workCenter string, plannedQty decimal.Decimal) (*model.ProductionOrder, error)
	GetProductionOrder(ctx context.Context, id string) (*model.ProductionOrder, error)
	IssueMaterials(ctx context.Context, orderID string, items []dto.MaterialItemRequest) error
	ReceiveOutput(ctx context.Context, orderID string, items []dto.MaterialItemRequest) error
	ChangeOrderStatus(ctx context.Context, orderID, status string) (*model.ProductionOrder, error)
}

type productionServiceImpl struct {
	db             *gorm.DB
	stock          config.Stock
	productionRepo repository.ProductionRepository
	productRepo    repository.ProductRepository
}

func NewProductionService(
	db *gorm.DB,
	stock config.Stock,
	productionRepo repository.ProductionRepository,
	productRepo repository.ProductRepository,
) ProductionService {
	return &productionServiceImpl{
		db:             db,
		stock:          stock,
		productionRepo: productionRepo,
		productRepo:    productRepo,
	}
}

func (s *productionServiceImpl) CreateProductionOrder(ctx context.Context, recipeID, workCenter string, plannedQty decimal.Decimal) (*model.ProductionOrder, error) {
	if plannedQty.LessThanOrEqual(decimal.Zero) {
		return nil, apperr.InvalidArgument("planned quantity must be positive")
	}

	order := &model.ProductionOrder{
		ID:               uuid.NewString(),
		TenantID:         tenant.ID(ctx),
		OrderNumber:      fmt.Sprintf("PO-%s-%s", time.Now().Format("20060102150405"), uuid.NewString()[:8]),
		RecipeID:         recipeID,
		WorkCenter:       workCenter,
		PlannedQuantity:  plannedQty,
		ProducedQuantity: decimal.Zero,
		Status:           model.ProductionDraft,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.productionRepo.Create(ctx, tx, order)
	})
	if err != nil {
		return nil, fmt.Errorf("store production order: %w", err)
	}

	return order, nil
}

func (s *productionServiceImpl) GetProductionOrder(ctx context.Context, id string) (*model.ProductionOrder, error) {
	order, err := s.productionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("production order %s not found", id)
		}
		return nil, fmt.Errorf("load production order: %w", err)
	}
	return order, nil
}

func validateMaterialItems(items []dto.MaterialItemRequest) error {
	if len(items) == 0 {
		return apperr.InvalidArgument("at least one item is required")
	}
	for _, item := range items {
		if item.ProductID == "" {
			return apperr.InvalidArgument("item product id is required")
		}
		if item.Quantity.IsNegative() {
			return apperr.InvalidArgument("item quantity must not be negative")
		}
	}
	return nil
}

// IssueMaterials records one MaterialIssue row per item and decrements each
// product's stock by the item quantity, all in one transaction. Quantities
// are truncated to whole units for the stock delta; zero-quantity items write
// no stock change.
func (s *productionServiceImpl) IssueMaterials(ctx context.Context, orderID string, items []dto.MaterialItemRequest) error {
	if err := validateMaterialItems(items); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.productionRepo.FindForUpdate(ctx, tx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("production order %s not found", orderID)
			}
			return fmt.Errorf("load production order: %w", err)
		}

		issues := make([]*model.MaterialIssue, len(items))
		for i, item := range items {
			issues[i] = &model.MaterialIssue{
				TenantID:          order.TenantID,
				ProductionOrderID: order.ID,
				ProductID:         item.ProductID,
				Quantity:          item.Quantity,
				BatchNumber:       item.BatchNumber,
				ExpiryDate:        item.ExpiryDate,
			}
		}
		if err := s.productionRepo.CreateIssues(ctx, tx, issues); err != nil {
			return fmt.Errorf("store material issues: %w", err)
		}

		for _, item := range items {
			delta := int(item.Quantity.IntPart())
			if delta == 0 {
				continue
			}
			err := s.productRepo.AdjustStock(ctx, tx, item.ProductID, -delta, s.stock.AllowNegative)
			switch {
			case errors.Is(err, repository.ErrStockFloor):
				// The guard also trips when the product row is missing.
				if _, findErr := s.productRepo.FindByID(ctx, item.ProductID); errors.Is(findErr, gorm.ErrRecordNotFound) {
					return apperr.NotFound("product %s not found", item.ProductID)
				}
				return apperr.InvalidArgument("insufficient stock for product %s", item.ProductID)
			case errors.Is(err, gorm.ErrRecordNotFound):
				return apperr.NotFound("product %s not found", item.ProductID)
			case err != nil:
				return fmt.Errorf("decrement stock for product %s: %w", item.ProductID, err)
			}
		}

		logrus.WithFields(logrus.Fields{
			"production_order": order.OrderNumber,
			"lines":            len(items),
		}).Info("materials issued")
		return nil
	})
}

// ReceiveOutput records one ProductionOutput row per item, accumulates the
// order's produced quantity, creates a Batch for every item carrying a batch
// number, and increments each product's stock. All four steps commit or none
// do.
func (s *productionServiceImpl) ReceiveOutput(ctx context.Context, orderID string, items []dto.MaterialItemRequest) error {
	if err := validateMaterialItems(items); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.productionRepo.FindForUpdate(ctx, tx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("production order %s not found", orderID)
			}
			return fmt.Errorf("load production order: %w", err)
		}

		outputs := make([]*model.ProductionOutput, len(items))
		received := decimal.Zero
		for i, item := range items {
			outputs[i] = &model.ProductionOutput{
				TenantID:          order.TenantID,
				ProductionOrderID: order.ID,
				ProductID:         item.ProductID,
				Quantity:          item.Quantity,
				BatchNumber:       item.BatchNumber,
				ExpiryDate:        item.ExpiryDate,
			}
			received = received.Add(item.Quantity)
		}
		if err := s.productionRepo.CreateOutputs(ctx, tx, outputs); err != nil {
			return fmt.Errorf("store production outputs: %w", err)
		}

		order.ProducedQuantity = order.ProducedQuantity.Add(received)
		if err := s.productionRepo.Save(ctx, tx, order); err != nil {
			return fmt.Errorf("update produced quantity: %w", err)
		}

		for _, item := range items {
			if item.BatchNumber == "" {
				continue
			}
			batch := &model.Batch{
				TenantID:    order.TenantID,
				ProductID:   item.ProductID,
				BatchNumber: item.BatchNumber,
				ExpiryDate:  item.ExpiryDate,
			}
			if err := s.productionRepo.CreateBatch(ctx, tx, batch); err != nil {
				return fmt.Errorf("store batch %s: %w", item.BatchNumber, err)
			}
		}

		for _, item := range items {
			delta := int(item.Quantity.IntPart())
			if delta == 0 {
				continue
			}
			err := s.productRepo.AdjustStock(ctx, tx, item.ProductID, delta, true)
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				return apperr.NotFound("product %s not found", item.ProductID)
			case err != nil:
				return fmt.Errorf("increment stock for product %s: %w", item.ProductID, err)
			}
		}

		logrus.WithFields(logrus.Fields{
			"production_order": order.OrderNumber,
			"received":         received,
		}).Info("production output received")
		return nil
	})
}

// ChangeOrderStatus sets the status directly; any status may follow any
// other.
func (s *productionServiceImpl) ChangeOrderStatus(ctx context.Context, orderID, status string) (*model.ProductionOrder, error) {
	parsed, err := model.ParseProductionStatus(status)
	if err != nil {
		return nil, err
	}

	var order *model.ProductionOrder
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err = s.productionRepo.FindForUpdate(ctx, tx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("production order %s not found", orderID)
			}
			return fmt.Errorf("load production order: %w", err)
		}

		order.Status = parsed
		if err := s.productionRepo.Save(ctx, tx, order); err != nil {
			return fmt.Errorf("update production order status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}
