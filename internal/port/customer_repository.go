package port

import (
	"context"

	"github.com/google/uuid"

	"rollstock/internal/domain"
)

// CustomerRepository provides access to customer records.
type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	List(ctx context.Context, offset, limit int) ([]domain.Customer, int, error)
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
}
