package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campus_market/internal/model"
	"campus_market/internal/repository"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// LedgerService records fee and cashback events. Entries are append-only:
// recording never touches prior entries, and only the status field of an
// entry may change after creation.
type LedgerService interface {
	Record(ctx context.Context, req model.CreateTransactionRequest) (*model.Transaction, error)
	GetTransaction(ctx context.Context, id int64) (*model.Transaction, error)
	GetByUser(ctx context.Context, userID int) ([]model.Transaction, error)
	SetStatus(ctx context.Context, id int64, status string) (*model.Transaction, error)
}

type ledgerService struct {
	repo repository.TransactionRepository
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(repo repository.TransactionRepository) LedgerService {
	return &ledgerService{repo: repo}
}

func (s *ledgerService) Record(ctx context.Context, req model.CreateTransactionRequest) (*model.Transaction, error) {
	transaction := &model.Transaction{
		ProductID:       req.ProductID,
		SellerID:        req.SellerID,
		BuyerID:         req.BuyerID,
		Amount:          req.Amount,
		TransactionType: req.TransactionType,
		Status:          req.Status,
		PaymentID:       req.PaymentID,
		CreatedAt:       time.Now(),
	}

	if err := s.repo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}
	return transaction, nil
}

func (s *ledgerService) GetTransaction(ctx context.Context, id int64) (*model.Transaction, error) {
	transaction, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction by ID: %w", err)
	}
	if transaction == nil {
		return nil, ErrTransactionNotFound
	}
	return transaction, nil
}

func (s *ledgerService) GetByUser(ctx context.Context, userID int) ([]model.Transaction, error) {
	transactions, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user transactions: %w", err)
	}
	return transactions, nil
}

// SetStatus overwrites the status field. Any string-to-string transition is
// accepted; the upstream payment flow owns transition legality.
func (s *ledgerService) SetStatus(ctx context.Context, id int64, status string) (*model.Transaction, error) {
	transaction, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to set transaction status: %w", err)
	}
	if transaction == nil {
		return nil, ErrTransactionNotFound
	}
	return transaction, nil
}
