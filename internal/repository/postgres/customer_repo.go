package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"rollstock/internal/domain"
	"rollstock/internal/port"
)

type customerRepo struct {
	db *sqlx.DB
}

// NewCustomerRepo creates a new PostgreSQL-backed CustomerRepository.
func NewCustomerRepo(db *sqlx.DB) port.CustomerRepository {
	return &customerRepo{db: db}
}

func (r *customerRepo) Create(ctx context.Context, c *domain.Customer) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	query := `INSERT INTO customers (id, name, gstin, address, phone, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Name, c.GSTIN, c.Address, c.Phone, c.Email, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateCustomer
		}
		return fmt.Errorf("customerRepo.Create: %w", err)
	}
	return nil
}

func (r *customerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	var c domain.Customer
	err := r.db.GetContext(ctx, &c, "SELECT * FROM customers WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("customerRepo.GetByID: %w", err)
	}
	return &c, nil
}

func (r *customerRepo) List(ctx context.Context, offset, limit int) ([]domain.Customer, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM customers"); err != nil {
		return nil, 0, fmt.Errorf("customerRepo.List count: %w", err)
	}

	var customers []domain.Customer
	err := r.db.SelectContext(ctx, &customers,
		"SELECT * FROM customers ORDER BY name ASC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("customerRepo.List: %w", err)
	}
	return customers, total, nil
}

func (r *customerRepo) Update(ctx context.Context, c *domain.Customer) error {
	c.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE customers SET name = $1, gstin = $2, address = $3, phone = $4, email = $5, updated_at = $6
		 WHERE id = $7`,
		c.Name, c.GSTIN, c.Address, c.Phone, c.Email, c.UpdatedAt, c.ID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateCustomer
		}
		return fmt.Errorf("customerRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

func (r *customerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM customers WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("customerRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}
