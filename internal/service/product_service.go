package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"rollstock/internal/domain"
	"rollstock/internal/port"
)

// ProductService manages product records.
type ProductService interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, offset, limit int) ([]domain.Product, int, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	productRepo port.ProductRepository
}

// NewProductService creates a new ProductService implementation.
func NewProductService(productRepo port.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) Create(ctx context.Context, p *domain.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	p.ID = uuid.New()
	return s.productRepo.Create(ctx, p)
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

func (s *productService) List(ctx context.Context, offset, limit int) ([]domain.Product, int, error) {
	return s.productRepo.List(ctx, offset, limit)
}

func (s *productService) Update(ctx context.Context, p *domain.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	return s.productRepo.Update(ctx, p)
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.productRepo.Delete(ctx, id)
}
