package service

import (
	"context"
	"fmt"
	"time"

	"anandam/internal/model"
	"anandam/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	repo   repository.ProductRepository
	logger zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(repo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		repo:   repo,
		logger: logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves products matching the filter.
func (s *productService) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if id == "" {
		return nil, fmt.Errorf("product ID is required")
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// Create adds a product to the catalogue.
func (s *productService) Create(ctx context.Context, p *model.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}

	s.logger.Info().Str("product_id", p.ID).Str("name", p.Name).Msg("product created")
	return nil
}

// Update replaces a product's mutable fields.
func (s *productService) Update(ctx context.Context, p *model.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	if p.ID == "" {
		return fmt.Errorf("product ID is required")
	}

	return s.repo.Update(ctx, p)
}

// Delete removes a product.
func (s *productService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("product ID is required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

// AdjustStock adds delta to a product's stock.
func (s *productService) AdjustStock(ctx context.Context, id string, delta int) error {
	if id == "" {
		return fmt.Errorf("product ID is required")
	}

	return s.repo.AdjustStock(ctx, id, delta)
}

// AddReview records a customer review.
func (s *productService) AddReview(ctx context.Context, review *model.Review) error {
	if review.ProductID == "" {
		return fmt.Errorf("product ID is required")
	}
	if review.Rating < 1 || review.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}

	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}

	return s.repo.AddReview(ctx, review)
}

// ListReviews retrieves a product's reviews.
func (s *productService) ListReviews(ctx context.Context, productID string) ([]model.Review, error) {
	if productID == "" {
		return nil, fmt.Errorf("product ID is required")
	}

	return s.repo.ListReviews(ctx, productID)
}

// validateProduct checks the fields the catalogue cannot accept blank or
// negative.
func validateProduct(p *model.Product) error {
	if p == nil {
		return fmt.Errorf("product is nil")
	}
	if p.Name == "" {
		return fmt.Errorf("product name is required")
	}
	if p.Price < 0 || p.OriginalPrice < 0 {
		return fmt.Errorf("product price cannot be negative")
	}
	if p.Stock < 0 {
		return fmt.Errorf("product stock cannot be negative")
	}
	return nil
}
