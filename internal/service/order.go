package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"retail-backoffice/internal/apperr"
	"retail-backoffice/internal/dto"
	"retail-backoffice/internal/model"
	"retail-backoffice/internal/repository"
	"retail-backoffice/internal/tenant"
)

type OrderService interface {
	CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (*model.Order, error)
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	CancelOrder(ctx context.Context, id string) (*model.Order, error)
}

type orderServiceImpl struct {
	db        *gorm.DB
	orderRepo repository.OrderRepository
}

func NewOrderService(db *gorm.DB, orderRepo repository.OrderRepository) OrderService {
	return &orderServiceImpl{
		db:        db,
		orderRepo: orderRepo,
	}
}

// newOrderNumber returns a human-facing order number. The timestamp keeps it
// roughly sortable; the uuid fragment plus the unique index at the store make
// collisions impossible.
func newOrderNumber() string {
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102150405"), uuid.NewString()[:8])
}

func (s *orderServiceImpl) CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (*model.Order, error) {
	if req.CustomerID == "" {
		return nil, apperr.InvalidArgument("customer id is required")
	}
	if len(req.Items) == 0 {
		return nil, apperr.InvalidArgument("order must contain at least one item")
	}

	status := model.OrderPending
	if req.Status != "" {
		parsed, err := model.ParseOrderStatus(req.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	items := make([]model.OrderItem, len(req.Items))
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, apperr.InvalidArgument("item quantity must be positive")
		}
		items[i] = model.OrderItem{
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice,
			DiscountAmount: decimal.Zero,
			TaxAmount:      decimal.Zero,
		}
		// Line totals first, order totals after.
		items[i].CalculateTotal()
	}

	order := &model.Order{
		ID:             uuid.NewString(),
		TenantID:       tenant.ID(ctx),
		OrderNumber:    newOrderNumber(),
		CustomerID:     req.CustomerID,
		UserID:         req.UserID,
		TaxAmount:      decimal.Zero,
		DiscountAmount: decimal.Zero,
		OrderDate:      time.Now(),
		Status:         status,
		PaymentStatus:  model.PaymentStatusPending,
		Notes:          req.Notes,
		Items:          items,
	}
	order.CalculateTotals()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("store order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (s *orderServiceImpl) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order %s not found", id)
		}
		return nil, fmt.Errorf("load order: %w", err)
	}
	return order, nil
}

func (s *orderServiceImpl) CancelOrder(ctx context.Context, id string) (*model.Order, error) {
	var order *model.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = s.orderRepo.FindForUpdate(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("order %s not found", id)
			}
			return fmt.Errorf("load order: %w", err)
		}

		switch order.Status {
		case model.OrderCancelled:
			return apperr.IllegalState("order %s is already cancelled", id)
		case model.OrderCompleted:
			return apperr.IllegalState("order %s is completed and cannot be cancelled", id)
		}

		// Stock restoration and refunds are the caller's responsibility.
		if err := s.orderRepo.UpdateStatus(ctx, tx, id, model.OrderCancelled); err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		order.Status = model.OrderCancelled
		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}
