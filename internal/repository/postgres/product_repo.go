package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"rollstock/internal/domain"
	"rollstock/internal/port"
)

type productRepo struct {
	db *sqlx.DB
}

// NewProductRepo creates a new PostgreSQL-backed ProductRepository.
func NewProductRepo(db *sqlx.DB) port.ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, p *domain.Product) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `INSERT INTO products (id, name, hsn_code, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.HSNCode, p.Description, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("productRepo.Create: %w", err)
	}
	return nil
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var p domain.Product
	err := r.db.GetContext(ctx, &p, "SELECT * FROM products WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("productRepo.GetByID: %w", err)
	}
	return &p, nil
}

func (r *productRepo) List(ctx context.Context, offset, limit int) ([]domain.Product, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM products"); err != nil {
		return nil, 0, fmt.Errorf("productRepo.List count: %w", err)
	}

	var products []domain.Product
	err := r.db.SelectContext(ctx, &products,
		"SELECT * FROM products ORDER BY name ASC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("productRepo.List: %w", err)
	}
	return products, total, nil
}

func (r *productRepo) Update(ctx context.Context, p *domain.Product) error {
	p.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE products SET name = $1, hsn_code = $2, description = $3, updated_at = $4
		 WHERE id = $5`,
		p.Name, p.HSNCode, p.Description, p.UpdatedAt, p.ID)
	if err != nil {
		return fmt.Errorf("productRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("productRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
