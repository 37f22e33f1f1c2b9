package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"rollstock/internal/domain"
	"rollstock/internal/port"
)

// CustomerService manages customer records.
type CustomerService interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	List(ctx context.Context, offset, limit int) ([]domain.Customer, int, error)
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type customerService struct {
	customerRepo port.CustomerRepository
}

// NewCustomerService creates a new CustomerService implementation.
func NewCustomerService(customerRepo port.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) Create(ctx context.Context, c *domain.Customer) error {
	c.Name = strings.TrimSpace(c.Name)
	c.GSTIN = strings.TrimSpace(c.GSTIN)
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if c.GSTIN == "" {
		return fmt.Errorf("%w: gstin is required", domain.ErrValidation)
	}
	c.ID = uuid.New()
	return s.customerRepo.Create(ctx, c)
}

func (s *customerService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}

func (s *customerService) List(ctx context.Context, offset, limit int) ([]domain.Customer, int, error) {
	return s.customerRepo.List(ctx, offset, limit)
}

func (s *customerService) Update(ctx context.Context, c *domain.Customer) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	return s.customerRepo.Update(ctx, c)
}

func (s *customerService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.customerRepo.Delete(ctx, id)
}
