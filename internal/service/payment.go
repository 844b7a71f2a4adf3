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
	"retail-backoffice/internal/config"
	"retail-backoffice/internal/dto"
	"retail-backoffice/internal/model"
	"retail-backoffice/internal/repository"
	"retail-backoffice/internal/tenant"
)

type PaymentService interface {
	CreatePayment(ctx context.Context, req *dto.CreatePaymentRequest) (*model.Payment, error)
	UpdatePayment(ctx context.Context, id string, req *dto.UpdatePaymentRequest) (*model.Payment, error)
	DeletePayment(ctx context.Context, id string) error
	RefundPayment(ctx context.Context, id string, notes string) (*model.Payment, error)
	SearchPayments(ctx context.Context, req *dto.SearchPaymentsRequest) (*dto.Page[*model.Payment], error)
}

type paymentServiceImpl struct {
	db          *gorm.DB
	paging      config.Paging
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentRepository
}

func NewPaymentService(
	db *gorm.DB,
	paging config.Paging,
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
) PaymentService {
	return &paymentServiceImpl{
		db:          db,
		paging:      paging,
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
	}
}

// CreatePayment accepts a payment against the order's outstanding balance.
// The order row is locked for the duration of the transaction, so two
// concurrent payments against the same order cannot both pass the balance
// check.
func (s *paymentServiceImpl) CreatePayment(ctx context.Context, req *dto.CreatePaymentRequest) (*model.Payment, error) {
	method, err := model.ParsePaymentMethod(req.Method)
	if err != nil {
		return nil, err
	}

	var payment *model.Payment
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindForUpdate(ctx, tx, req.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("order %s not found", req.OrderID)
			}
			return fmt.Errorf("load order: %w", err)
		}

		existing, err := s.paymentRepo.ListByOrder(ctx, tx, order.ID)
		if err != nil {
			return fmt.Errorf("list payments: %w", err)
		}

		totalPaid := decimal.Zero
		for _, p := range existing {
			totalPaid = totalPaid.Add(p.Amount)
		}

		if totalPaid.Add(req.Amount).GreaterThan(order.TotalAmount) {
			return apperr.InvalidArgument("payment exceeds balance: paid %s + %s > total %s",
				totalPaid, req.Amount, order.TotalAmount)
		}

		payment = &model.Payment{
			ID:            uuid.NewString(),
			TenantID:      tenant.ID(ctx),
			OrderID:       order.ID,
			Amount:        req.Amount,
			Method:        method,
			Status:        model.PaymentPending,
			TransactionID: req.TransactionID,
			Notes:         req.Notes,
		}
		if err := s.paymentRepo.Create(ctx, tx, payment); err != nil {
			return fmt.Errorf("store payment: %w", err)
		}

		if totalPaid.Add(req.Amount).GreaterThanOrEqual(order.TotalAmount) {
			if err := s.orderRepo.UpdatePaymentStatus(ctx, tx, order.ID, model.PaymentStatusPaid); err != nil {
				return fmt.Errorf("mark order paid: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return payment, nil
}

// UpdatePayment applies only the fields present in the request. It does not
// re-derive the owning order's payment status; that asymmetry with
// CreatePayment is deliberate.
func (s *paymentServiceImpl) UpdatePayment(ctx context.Context, id string, req *dto.UpdatePaymentRequest) (*model.Payment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("payment %s not found", id)
		}
		return nil, fmt.Errorf("load payment: %w", err)
	}

	if req.Amount != nil {
		payment.Amount = *req.Amount
	}
	if req.Method != nil {
		method, err := model.ParsePaymentMethod(*req.Method)
		if err != nil {
			return nil, err
		}
		payment.Method = method
	}
	if req.Status != nil {
		state, err := model.ParsePaymentState(*req.Status)
		if err != nil {
			return nil, err
		}
		payment.Status = state
	}
	if req.Notes != nil {
		payment.Notes = *req.Notes
	}
	if req.TransactionID != nil {
		payment.TransactionID = *req.TransactionID
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.paymentRepo.Update(ctx, tx, payment)
	})
	if err != nil {
		return nil, fmt.Errorf("store payment: %w", err)
	}

	return payment, nil
}

func (s *paymentServiceImpl) DeletePayment(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.paymentRepo.SoftDelete(ctx, tx, id)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("payment %s not found", id)
		}
		return fmt.Errorf("delete payment: %w", err)
	}
	return nil
}

// RefundPayment appends a new payment row with the negated amount; the
// original row is never touched. The payment history is a ledger.
func (s *paymentServiceImpl) RefundPayment(ctx context.Context, id string, notes string) (*model.Payment, error) {
	original, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("payment %s not found", id)
		}
		return nil, fmt.Errorf("load payment: %w", err)
	}

	if original.Status != model.PaymentCompleted {
		return nil, apperr.IllegalState("payment %s is %s, only COMPLETED payments can be refunded", id, original.Status)
	}

	refundRef := original.TransactionID
	if refundRef == "" {
		refundRef = fmt.Sprintf("%d", time.Now().UnixMilli())
	}

	refund := &model.Payment{
		ID:            uuid.NewString(),
		TenantID:      original.TenantID,
		OrderID:       original.OrderID,
		Amount:        original.Amount.Neg(),
		Method:        original.Method,
		Status:        model.PaymentRefunded,
		TransactionID: "REFUND_" + refundRef,
		Notes:         notes,
		CreatedBy:     original.CreatedBy,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.paymentRepo.Create(ctx, tx, refund)
	})
	if err != nil {
		return nil, fmt.Errorf("store refund: %w", err)
	}

	return refund, nil
}

func (s *paymentServiceImpl) SearchPayments(ctx context.Context, req *dto.SearchPaymentsRequest) (*dto.Page[*model.Payment], error) {
	filter := repository.PaymentFilter{
		OrderID:   req.OrderID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if req.Status != "" {
		state, err := model.ParsePaymentState(req.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = state
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	size := req.Size
	if size <= 0 {
		size = s.paging.DefaultSize
	}
	if size > s.paging.MaxSize {
		size = s.paging.MaxSize
	}

	payments, total, err := s.paymentRepo.Search(ctx, filter, (page-1)*size, size)
	if err != nil {
		return nil, fmt.Errorf("search payments: %w", err)
	}

	return &dto.Page[*model.Payment]{
		Items:      payments,
		Page:       page,
		Size:       size,
		TotalCount: total,
	}, nil
}
