package repository

import (
	"context"
	"errors"
	"fmt"

	"campus_market/internal/model"

	"github.com/jackc/pgx/v5"
)

// ContactAccessRepository defines operations for contact access grants
type ContactAccessRepository interface {
	// Create inserts a grant. A grant already held for the same
	// (product, buyer) pair is returned unchanged instead of duplicated.
	Create(ctx context.Context, access *model.ContactAccess) error
	Exists(ctx context.Context, productID, buyerID int) (bool, error)
	FindByBuyer(ctx context.Context, buyerID int) ([]model.ContactAccess, error)
}

type contactAccessRepository struct {
	db DB
}

// NewContactAccessRepository creates a new ContactAccessRepository backed by Postgres
func NewContactAccessRepository(db DB) ContactAccessRepository {
	return &contactAccessRepository{db: db}
}

const contactAccessColumns = `id, product_id, buyer_id, created_at`

// Create inserts a grant row; the unique pair index turns racing duplicates into no-ops
func (r *contactAccessRepository) Create(ctx context.Context, a *model.ContactAccess) error {
	sql := `INSERT INTO contact_access (product_id, buyer_id, created_at)
            VALUES ($1, $2, $3)
            ON CONFLICT (product_id, buyer_id) DO NOTHING
            RETURNING id, created_at`
	err := r.db.QueryRow(ctx, sql, a.ProductID, a.BuyerID, a.CreatedAt).Scan(&a.ID, &a.CreatedAt)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to create contact access: %w", err)
	}

	// Conflict path: the pair already holds a grant, return the existing row
	existing := `SELECT ` + contactAccessColumns + ` FROM contact_access WHERE product_id = $1 AND buyer_id = $2`
	err = r.db.QueryRow(ctx, existing, a.ProductID, a.BuyerID).Scan(&a.ID, &a.ProductID, &a.BuyerID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to load existing contact access: %w", err)
	}
	return nil
}

// Exists reports whether a grant exists for the exact (product, buyer) pair
func (r *contactAccessRepository) Exists(ctx context.Context, productID, buyerID int) (bool, error) {
	var exists bool
	sql := `SELECT EXISTS (SELECT 1 FROM contact_access WHERE product_id = $1 AND buyer_id = $2)`
	if err := r.db.QueryRow(ctx, sql, productID, buyerID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check contact access: %w", err)
	}
	return exists, nil
}

// FindByBuyer retrieves all grants held by a buyer, newest first
func (r *contactAccessRepository) FindByBuyer(ctx context.Context, buyerID int) ([]model.ContactAccess, error) {
	sql := `SELECT ` + contactAccessColumns + ` FROM contact_access
            WHERE buyer_id = $1
            ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(ctx, sql, buyerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query contact access by buyer: %w", err)
	}
	defer rows.Close()

	var grants []model.ContactAccess
	for rows.Next() {
		var a model.ContactAccess
		if err := rows.Scan(&a.ID, &a.ProductID, &a.BuyerID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact access row: %w", err)
		}
		grants = append(grants, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contact access rows: %w", err)
	}
	return grants, nil
}
