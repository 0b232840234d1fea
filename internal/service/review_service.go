package service

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/auth"
	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// reviewService implements ReviewService.
type reviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "review").Logger(),
	}
}

// Create persists a review and recomputes the product's rating aggregate.
// The whole operation runs in one transaction: the product row lock
// serializes concurrent reviews of the same product, so the aggregate never
// reflects a transient subset, and the unique index on (product, user)
// rejects concurrent duplicates that pass the pre-check.
func (s *reviewService) Create(ctx context.Context, productID uuid.UUID, requester auth.Context, req *model.ReviewRequest) error {
	if req == nil || req.Rating < 1 || req.Rating > 5 {
		return model.ErrInvalidRating
	}

	tx, err := s.reviewRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to create review: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	product, err := s.productRepo.GetForUpdate(ctx, tx, productID)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	if product == nil {
		err = model.ErrProductNotFound
		return err
	}

	exists, err := s.reviewRepo.Exists(ctx, tx, productID, requester.UserID)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	if exists {
		s.logger.Debug().
			Str("product_id", productID.String()).
			Str("user_id", requester.UserID.String()).
			Msg("duplicate review rejected")
		err = model.ErrAlreadyReviewed
		return err
	}

	review := &model.Review{
		ID:        uuid.New(),
		ProductID: productID,
		UserID:    requester.UserID,
		UserName:  requester.Name,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
	}

	if err = s.reviewRepo.Create(ctx, tx, review); err != nil {
		return err
	}

	stats, err := s.reviewRepo.Stats(ctx, tx, productID)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	if err = s.productRepo.UpdateStats(ctx, tx, productID, stats); err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to commit transaction")
		return fmt.Errorf("failed to create review: %w", err)
	}

	s.logger.Info().
		Str("product_id", productID.String()).
		Str("user_id", requester.UserID.String()).
		Int("rating", req.Rating).
		Float64("new_rating", stats.Rating).
		Int("num_reviews", stats.NumReviews).
		Msg("review created")

	return nil
}

// ListByProduct retrieves all reviews for a product, newest first.
func (s *reviewService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.Review, error) {
	reviews, err := s.reviewRepo.ListByProduct(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to list reviews")
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}
