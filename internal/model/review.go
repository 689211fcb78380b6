package model

import "time"

const (
	MinReviewRating  = 1
	MaxReviewRating  = 5
	MaxCommentLength = 500
)

// Review is a 1-5 star rating of a user, tied to a product
type Review struct {
	ID         int       `json:"id"`
	ProductID  int       `json:"product_id"`
	ReviewerID int       `json:"reviewer_id"`
	ReviewedID int       `json:"reviewed_id"` // The person being rated
	Rating     int       `json:"rating"`
	Comment    *string   `json:"comment,omitempty"` // Pointer for optional field
	CreatedAt  time.Time `json:"created_at"`
}

// CreateReviewRequest is used for submitting a new review
type CreateReviewRequest struct {
	ProductID  int     `json:"product_id" binding:"required"`
	ReviewerID int     `json:"reviewer_id" binding:"required"`
	ReviewedID int     `json:"reviewed_id" binding:"required"`
	Rating     int     `json:"rating" binding:"required,gte=1,lte=5"`
	Comment    *string `json:"comment" binding:"omitempty,max=500"`
}
