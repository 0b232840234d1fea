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

// categoryService implements CategoryService.
type categoryService struct {
	categoryRepo repository.CategoryRepository
	logger       zerolog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo repository.CategoryRepository, logger zerolog.Logger) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		logger:       logger.With().Str("service", "category").Logger(),
	}
}

func (s *categoryService) List(ctx context.Context, page, limit int) (model.Page[model.Category], error) {
	result, err := s.categoryRepo.List(ctx, page, limit)
	if err != nil {
		return model.Page[model.Category]{}, fmt.Errorf("failed to list categories: %w", err)
	}
	return result, nil
}

func (s *categoryService) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return nil, model.ErrCategoryNotFound
	}
	return category, nil
}

// Create adds a category. The unique index on name rejects duplicates.
func (s *categoryService) Create(ctx context.Context, req *model.CategoryRequest) (*model.Category, error) {
	category := &model.Category{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		CreatedAt:   time.Now(),
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info().Str("category_id", category.ID.String()).Str("name", category.Name).Msg("category created")

	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req *model.CategoryRequest) (*model.Category, error) {
	category, err := s.categoryRepo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, model.ErrCategoryNotFound
	}
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	found, err := s.categoryRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if !found {
		return model.ErrCategoryNotFound
	}

	s.logger.Info().Str("category_id", id.String()).Msg("category deleted")

	return nil
}
