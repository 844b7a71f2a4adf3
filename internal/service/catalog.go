package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"retail-backoffice/internal/apperr"
	"retail-backoffice/internal/model"
	"retail-backoffice/internal/repository"
	"retail-backoffice/internal/tenant"
)

// CatalogService covers the supporting product/customer records the order and
// manufacturing workflows reference.
type CatalogService interface {
	CreateProduct(ctx context.Context, sku, name string, price, costPrice decimal.Decimal, initialStock int) (*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	CreateCustomer(ctx context.Context, name, email, phone string) (*model.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
}

type catalogServiceImpl struct {
	db           *gorm.DB
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
}

func NewCatalogService(db *gorm.DB, productRepo repository.ProductRepository, customerRepo repository.CustomerRepository) CatalogService {
	return &catalogServiceImpl{
		db:           db,
		productRepo:  productRepo,
		customerRepo: customerRepo,
	}
}

func (s *catalogServiceImpl) CreateProduct(ctx context.Context, sku, name string, price, costPrice decimal.Decimal, initialStock int) (*model.Product, error) {
	if sku == "" {
		return nil, apperr.InvalidArgument("sku is required")
	}

	product := &model.Product{
		ID:              uuid.NewString(),
		TenantID:        tenant.ID(ctx),
		SKU:             sku,
		Name:            name,
		Price:           price,
		CostPrice:       costPrice,
		QuantityInStock: initialStock,
		Active:          true,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.productRepo.Create(ctx, tx, product)
	})
	if err != nil {
		return nil, fmt.Errorf("store product: %w", err)
	}

	return product, nil
}

func (s *catalogServiceImpl) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product %s not found", id)
		}
		return nil, fmt.Errorf("load product: %w", err)
	}
	return product, nil
}

func (s *catalogServiceImpl) CreateCustomer(ctx context.Context, name, email, phone string) (*model.Customer, error) {
	if name == "" {
		return nil, apperr.InvalidArgument("customer name is required")
	}

	customer := &model.Customer{
		ID:       uuid.NewString(),
		TenantID: tenant.ID(ctx),
		Name:     name,
		Email:    email,
		Phone:    phone,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.customerRepo.Create(ctx, tx, customer)
	})
	if err != nil {
		return nil, fmt.Errorf("store customer: %w", err)
	}

	return customer, nil
}

func (s *catalogServiceImpl) DeleteCustomer(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.customerRepo.SoftDelete(ctx, tx, id)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("customer %s not found", id)
		}
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}
