package service

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves products matching the filter with pagination.
func (s *productService) List(ctx context.Context, filter model.ProductFilter, page, limit int) (model.Page[model.Product], error) {
	result, err := s.productRepo.List(ctx, filter, page, limit)
	if err != nil {
		s.logger.Error().Err(err).
			Str("keyword", filter.Keyword).
			Int("page", page).
			Int("limit", limit).
			Msg("failed to list products")
		return model.Page[model.Product]{}, fmt.Errorf("failed to list products: %w", err)
	}

	s.logger.Debug().
		Int("count", result.Count).
		Int("page", result.Page).
		Int("pages", result.Pages).
		Msg("listed products")

	return result, nil
}

// GetByID retrieves a single product.
func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// Create adds a product to the catalogue with a zero rating aggregate.
func (s *productService) Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	now := time.Now()
	product := &model.Product{
		ID:           uuid.New(),
		Name:         req.Name,
		Description:  req.Description,
		Brand:        req.Brand,
		Image:        req.Image,
		CategoryID:   req.CategoryID,
		Price:        req.Price,
		CountInStock: req.CountInStock,
		Rating:       0,
		NumReviews:   0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("name", req.Name).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().Str("product_id", product.ID.String()).Str("name", product.Name).Msg("product created")

	return product, nil
}

// Update overwrites a product's fields. The rating aggregate is untouched;
// only the review service writes it.
func (s *productService) Update(ctx context.Context, id uuid.UUID, req *model.ProductRequest) (*model.Product, error) {
	product, err := s.productRepo.Update(ctx, id, req)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	if product == nil {
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// Delete removes a product.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	found, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if !found {
		return model.ErrProductNotFound
	}

	s.logger.Info().Str("product_id", id.String()).Msg("product deleted")

	return nil
}
