package repository

import (
	"context"
	"errors"
	"fmt"

	"campus_market/internal/model"

	"github.com/jackc/pgx/v5"
)

// ProductRepository defines operations for product data
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id int) (*model.Product, error)
	FindByCategory(ctx context.Context, category string) ([]model.Product, error)
	FindBySeller(ctx context.Context, sellerID int) ([]model.Product, error)
	FindRecent(ctx context.Context, limit int) ([]model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	MarkSold(ctx context.Context, id int) (*model.Product, error)
	Delete(ctx context.Context, id int) error
}

type productRepository struct {
	db DB
}

// NewProductRepository creates a new ProductRepository backed by Postgres
func NewProductRepository(db DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, title, description, price, category, condition, image_url, seller_id, is_sold, created_at, updated_at`

// Create inserts a new product into the database
func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	sql := `INSERT INTO products (title, description, price, category, condition, image_url, seller_id, is_sold, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, sql, p.Title, p.Description, p.Price, p.Category, p.Condition, p.ImageURL, p.SellerID, p.IsSold, p.CreatedAt, p.UpdatedAt).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// FindByID retrieves a product by its ID
func (r *productRepository) FindByID(ctx context.Context, id int) (*model.Product, error) {
	p := &model.Product{}
	sql := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&p.ID, &p.Title, &p.Description, &p.Price, &p.Category, &p.Condition,
		&p.ImageURL, &p.SellerID, &p.IsSold, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return p, nil
}

// FindByCategory retrieves unsold products in a category, newest first
func (r *productRepository) FindByCategory(ctx context.Context, category string) ([]model.Product, error) {
	sql := `SELECT ` + productColumns + ` FROM products
            WHERE category = $1 AND is_sold = FALSE
            ORDER BY created_at DESC, id DESC`
	return r.queryMany(ctx, sql, category)
}

// FindBySeller retrieves all of a seller's products (sold and unsold), newest first
func (r *productRepository) FindBySeller(ctx context.Context, sellerID int) ([]model.Product, error) {
	sql := `SELECT ` + productColumns + ` FROM products
            WHERE seller_id = $1
            ORDER BY created_at DESC, id DESC`
	return r.queryMany(ctx, sql, sellerID)
}

// FindRecent retrieves up to limit unsold products, newest first
func (r *productRepository) FindRecent(ctx context.Context, limit int) ([]model.Product, error) {
	sql := `SELECT ` + productColumns + ` FROM products
            WHERE is_sold = FALSE
            ORDER BY created_at DESC, id DESC LIMIT $1`
	return r.queryMany(ctx, sql, limit)
}

// Update writes the mutable fields of a product; updated_at is re-stamped by trigger
func (r *productRepository) Update(ctx context.Context, p *model.Product) error {
	sql := `UPDATE products
            SET title = $1, description = $2, price = $3, category = $4, condition = $5, image_url = $6, is_sold = $7, updated_at = NOW()
            WHERE id = $8 RETURNING updated_at`
	err := r.db.QueryRow(ctx, sql, p.Title, p.Description, p.Price, p.Category, p.Condition, p.ImageURL, p.IsSold, p.ID).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("product not found for update")
		}
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// MarkSold flips is_sold to true; re-applying the flag on a sold product is a no-op
func (r *productRepository) MarkSold(ctx context.Context, id int) (*model.Product, error) {
	p := &model.Product{}
	sql := `UPDATE products SET is_sold = TRUE, updated_at = NOW()
            WHERE id = $1 RETURNING ` + productColumns
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&p.ID, &p.Title, &p.Description, &p.Price, &p.Category, &p.Condition,
		&p.ImageURL, &p.SellerID, &p.IsSold, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to mark product as sold: %w", err)
	}
	return p, nil
}

// Delete removes a product listing from the database
func (r *productRepository) Delete(ctx context.Context, id int) error {
	sql := `DELETE FROM products WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("product not found for deletion")
	}
	return nil
}

func (r *productRepository) queryMany(ctx context.Context, sql string, args ...any) ([]model.Product, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &p.Price, &p.Category, &p.Condition,
			&p.ImageURL, &p.SellerID, &p.IsSold, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}
	return products, nil
}
