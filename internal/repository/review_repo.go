package repository

import (
	"context"
	"errors"
	"fmt"

	"campus_market/internal/model"

	"github.com/jackc/pgx/v5"
)

// ReviewRepository defines operations for review data
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	FindByProduct(ctx context.Context, productID int) ([]model.Review, error)
	FindByReviewer(ctx context.Context, reviewerID int) ([]model.Review, error)
	FindByReviewedUser(ctx context.Context, reviewedID int) ([]model.Review, error)
	// AverageForUser returns the mean rating over all reviews of the user,
	// 0 when the user has no reviews.
	AverageForUser(ctx context.Context, userID int) (float64, error)
}

type reviewRepository struct {
	db DB
}

// NewReviewRepository creates a new ReviewRepository backed by Postgres
func NewReviewRepository(db DB) ReviewRepository {
	return &reviewRepository{db: db}
}

const reviewColumns = `id, product_id, reviewer_id, reviewed_id, rating, comment, created_at`

// Create inserts a new review
func (r *reviewRepository) Create(ctx context.Context, rv *model.Review) error {
	sql := `INSERT INTO reviews (product_id, reviewer_id, reviewed_id, rating, comment, created_at)
            VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	err := r.db.QueryRow(ctx, sql, rv.ProductID, rv.ReviewerID, rv.ReviewedID, rv.Rating, rv.Comment, rv.CreatedAt).Scan(&rv.ID, &rv.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// FindByProduct retrieves all reviews tied to a product, newest first
func (r *reviewRepository) FindByProduct(ctx context.Context, productID int) ([]model.Review, error) {
	sql := `SELECT ` + reviewColumns + ` FROM reviews
            WHERE product_id = $1 ORDER BY created_at DESC, id DESC`
	return r.queryMany(ctx, sql, productID)
}

// FindByReviewer retrieves all reviews written by a user, newest first
func (r *reviewRepository) FindByReviewer(ctx context.Context, reviewerID int) ([]model.Review, error) {
	sql := `SELECT ` + reviewColumns + ` FROM reviews
            WHERE reviewer_id = $1 ORDER BY created_at DESC, id DESC`
	return r.queryMany(ctx, sql, reviewerID)
}

// FindByReviewedUser retrieves all reviews a user has received, newest first
func (r *reviewRepository) FindByReviewedUser(ctx context.Context, reviewedID int) ([]model.Review, error) {
	sql := `SELECT ` + reviewColumns + ` FROM reviews
            WHERE reviewed_id = $1 ORDER BY created_at DESC, id DESC`
	return r.queryMany(ctx, sql, reviewedID)
}

// AverageForUser computes the mean rating for a reviewed user
func (r *reviewRepository) AverageForUser(ctx context.Context, userID int) (float64, error) {
	var avg float64
	sql := `SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE reviewed_id = $1`
	err := r.db.QueryRow(ctx, sql, userID).Scan(&avg)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("failed to compute average rating: %w", err)
	}
	return avg, nil
}

func (r *reviewRepository) queryMany(ctx context.Context, sql string, args ...any) ([]model.Review, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.ReviewerID, &rv.ReviewedID, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review row: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating review rows: %w", err)
	}
	return reviews, nil
}
