package model

import "time"

const (
	TransactionTypeListingFee = "listing_fee"
	TransactionTypeContactFee = "contact_fee"
	TransactionTypeCashback   = "cashback"
)

const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusRefunded  = "refunded"
)

// Transaction represents a fee or cashback event in the ledger.
// Entries are append-only; only the status field changes after creation.
type Transaction struct {
	ID              int64     `json:"id"`
	ProductID       *int      `json:"product_id,omitempty"` // Pointer for optional field
	SellerID        int       `json:"seller_id"`
	BuyerID         *int      `json:"buyer_id,omitempty"`
	Amount          int64     `json:"amount"` // In paisa
	TransactionType string    `json:"transaction_type"`
	Status          string    `json:"status"`
	PaymentID       *string   `json:"payment_id,omitempty"` // External payment reference
	CreatedAt       time.Time `json:"created_at"`
}

// CreateTransactionRequest is used for recording a new ledger entry
type CreateTransactionRequest struct {
	ProductID       *int    `json:"product_id"`
	SellerID        int     `json:"seller_id" binding:"required"`
	BuyerID         *int    `json:"buyer_id"`
	Amount          int64   `json:"amount" binding:"required,gt=0"`
	TransactionType string  `json:"transaction_type" binding:"required"`
	Status          string  `json:"status" binding:"required"`
	PaymentID       *string `json:"payment_id"`
}

type UpdateTransactionStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
