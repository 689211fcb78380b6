package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campus_market/internal/model"
	"campus_market/internal/repository"
)

var ErrProductNotFound = errors.New("product not found")

// DefaultRecentLimit is used when a recent-products query gives no limit
const DefaultRecentLimit = 10

// CatalogService defines operations over product listings
type CatalogService interface {
	CreateProduct(ctx context.Context, req model.CreateProductRequest) (*model.Product, error)
	GetProduct(ctx context.Context, id int) (*model.Product, error)
	ListByCategory(ctx context.Context, category string) ([]model.Product, error)
	ListBySeller(ctx context.Context, sellerID int) ([]model.Product, error)
	ListRecent(ctx context.Context, limit int) ([]model.Product, error)
	UpdateProduct(ctx context.Context, id int, req model.UpdateProductRequest) (*model.Product, error)
	MarkSold(ctx context.Context, id int) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int) error
}

type catalogService struct {
	repo repository.ProductRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(repo repository.ProductRepository) CatalogService {
	return &catalogService{repo: repo}
}

func (s *catalogService) CreateProduct(ctx context.Context, req model.CreateProductRequest) (*model.Product, error) {
	now := time.Now()
	product := &model.Product{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Condition:   req.Condition,
		ImageURL:    req.ImageURL,
		SellerID:    req.SellerID,
		IsSold:      false, // Listings always start unsold
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product in repo: %w", err)
	}
	return product, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id int) (*model.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *catalogService) ListByCategory(ctx context.Context, category string) ([]model.Product, error) {
	products, err := s.repo.FindByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list products by category: %w", err)
	}
	return products, nil
}

func (s *catalogService) ListBySeller(ctx context.Context, sellerID int) ([]model.Product, error) {
	products, err := s.repo.FindBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products by seller: %w", err)
	}
	return products, nil
}

func (s *catalogService) ListRecent(ctx context.Context, limit int) ([]model.Product, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	products, err := s.repo.FindRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent products: %w", err)
	}
	return products, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, id int, req model.UpdateProductRequest) (*model.Product, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find product for update: %w", err)
	}
	if existing == nil {
		return nil, ErrProductNotFound
	}

	// Apply updates
	if req.Title != nil {
		existing.Title = *req.Title
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.Price != nil {
		existing.Price = *req.Price
	}
	if req.Category != nil {
		existing.Category = *req.Category
	}
	if req.Condition != nil {
		existing.Condition = *req.Condition
	}
	if req.ImageURL != nil { // handles setting to "" as well
		existing.ImageURL = req.ImageURL
	}
	existing.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update product in repo: %w", err)
	}
	return existing, nil
}

// MarkSold flips the sold flag. Re-applying it to an already sold product is
// not an error; the flag only ever moves from false to true.
func (s *catalogService) MarkSold(ctx context.Context, id int) (*model.Product, error) {
	product, err := s.repo.MarkSold(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to mark product as sold: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id int) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find product for deletion: %w", err)
	}
	if existing == nil {
		return ErrProductNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product in repo: %w", err)
	}
	return nil
}
