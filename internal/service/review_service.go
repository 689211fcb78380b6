package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"campus_market/internal/model"
	"campus_market/internal/repository"
)

var (
	ErrInvalidRating  = errors.New("rating must be an integer between 1 and 5")
	ErrCommentTooLong = errors.New("comment must be at most 500 characters")
)

// ReviewService records ratings and aggregates them per user
type ReviewService interface {
	Record(ctx context.Context, req model.CreateReviewRequest) (*model.Review, error)
	ForProduct(ctx context.Context, productID int) ([]model.Review, error)
	ByReviewer(ctx context.Context, reviewerID int) ([]model.Review, error)
	ByUser(ctx context.Context, userID int) ([]model.Review, error)
	AverageRatingFor(ctx context.Context, userID int) (float64, error)
}

type reviewService struct {
	repo repository.ReviewRepository
}

// NewReviewService creates a new ReviewService
func NewReviewService(repo repository.ReviewRepository) ReviewService {
	return &reviewService{repo: repo}
}

func (s *reviewService) Record(ctx context.Context, req model.CreateReviewRequest) (*model.Review, error) {
	if req.Rating < model.MinReviewRating || req.Rating > model.MaxReviewRating {
		return nil, ErrInvalidRating
	}
	// Rune count, matching the binding-level max=500
	if req.Comment != nil && utf8.RuneCountInString(*req.Comment) > model.MaxCommentLength {
		return nil, ErrCommentTooLong
	}

	review := &model.Review{
		ProductID:  req.ProductID,
		ReviewerID: req.ReviewerID,
		ReviewedID: req.ReviewedID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		CreatedAt:  time.Now(),
	}

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to record review: %w", err)
	}
	return review, nil
}

func (s *reviewService) ForProduct(ctx context.Context, productID int) ([]model.Review, error) {
	reviews, err := s.repo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews for product: %w", err)
	}
	return reviews, nil
}

// ByReviewer returns the reviews written by a user
func (s *reviewService) ByReviewer(ctx context.Context, reviewerID int) ([]model.Review, error) {
	reviews, err := s.repo.FindByReviewer(ctx, reviewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews by reviewer: %w", err)
	}
	return reviews, nil
}

// ByUser returns the reviews a user has received
func (s *reviewService) ByUser(ctx context.Context, userID int) ([]model.Review, error) {
	reviews, err := s.repo.FindByReviewedUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews for user: %w", err)
	}
	return reviews, nil
}

// AverageRatingFor returns 0 for a user with no reviews, never NaN
func (s *reviewService) AverageRatingFor(ctx context.Context, userID int) (float64, error) {
	avg, err := s.repo.AverageForUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to compute average rating: %w", err)
	}
	return avg, nil
}
