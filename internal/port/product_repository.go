package port

import (
	"context"

	"github.com/google/uuid"

	"rollstock/internal/domain"
)

// ProductRepository provides access to product records.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, offset, limit int) ([]domain.Product, int, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}
