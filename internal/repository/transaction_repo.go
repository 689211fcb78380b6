package repository

import (
	"context"
	"errors"
	"fmt"

	"campus_market/internal/model"

	"github.com/jackc/pgx/v5"
)

// TransactionRepository defines operations for the fee ledger
type TransactionRepository interface {
	Create(ctx context.Context, transaction *model.Transaction) error
	FindByID(ctx context.Context, id int64) (*model.Transaction, error)
	FindByUser(ctx context.Context, userID int) ([]model.Transaction, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*model.Transaction, error)
}

type transactionRepository struct {
	db DB
}

// NewTransactionRepository creates a new TransactionRepository backed by Postgres
func NewTransactionRepository(db DB) TransactionRepository {
	return &transactionRepository{db: db}
}

const transactionColumns = `id, product_id, seller_id, buyer_id, amount, transaction_type, status, payment_id, created_at`

// Create appends a new ledger entry
func (r *transactionRepository) Create(ctx context.Context, t *model.Transaction) error {
	sql := `INSERT INTO transactions (product_id, seller_id, buyer_id, amount, transaction_type, status, payment_id, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at`
	err := r.db.QueryRow(ctx, sql, t.ProductID, t.SellerID, t.BuyerID, t.Amount, t.TransactionType, t.Status, t.PaymentID, t.CreatedAt).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// FindByID retrieves a ledger entry by its ID
func (r *transactionRepository) FindByID(ctx context.Context, id int64) (*model.Transaction, error) {
	t := &model.Transaction{}
	sql := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&t.ID, &t.ProductID, &t.SellerID, &t.BuyerID, &t.Amount,
		&t.TransactionType, &t.Status, &t.PaymentID, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find transaction by ID: %w", err)
	}
	return t, nil
}

// FindByUser retrieves all entries where the user is the seller or the buyer, newest first
func (r *transactionRepository) FindByUser(ctx context.Context, userID int) ([]model.Transaction, error) {
	sql := `SELECT ` + transactionColumns + ` FROM transactions
            WHERE seller_id = $1 OR buyer_id = $1
            ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(ctx, sql, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions by user: %w", err)
	}
	defer rows.Close()

	var transactions []model.Transaction
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(
			&t.ID, &t.ProductID, &t.SellerID, &t.BuyerID, &t.Amount,
			&t.TransactionType, &t.Status, &t.PaymentID, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactions = append(transactions, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return transactions, nil
}

// UpdateStatus overwrites only the status field of an existing entry
func (r *transactionRepository) UpdateStatus(ctx context.Context, id int64, status string) (*model.Transaction, error) {
	t := &model.Transaction{}
	sql := `UPDATE transactions SET status = $1 WHERE id = $2 RETURNING ` + transactionColumns
	err := r.db.QueryRow(ctx, sql, status, id).Scan(
		&t.ID, &t.ProductID, &t.SellerID, &t.BuyerID, &t.Amount,
		&t.TransactionType, &t.Status, &t.PaymentID, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to update transaction status: %w", err)
	}
	return t, nil
}
