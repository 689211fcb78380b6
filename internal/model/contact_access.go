package model

import "time"

// ContactAccess is a durable grant unlocking a seller's contact details
// for one (product, buyer) pair. There is no expiry and no revocation.
type ContactAccess struct {
	ID        int       `json:"id"`
	ProductID int       `json:"product_id"`
	BuyerID   int       `json:"buyer_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateContactAccessRequest is used for granting contact access
type CreateContactAccessRequest struct {
	ProductID int `json:"product_id" binding:"required"`
	BuyerID   int `json:"buyer_id" binding:"required"`
}
