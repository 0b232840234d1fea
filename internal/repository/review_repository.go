package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// uniqueViolation is the PostgreSQL error code for unique constraint failures.
const uniqueViolation = "23505"

// reviewRepository implements the ReviewRepository interface using PostgreSQL.
type reviewRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool *pgxpool.Pool, logger zerolog.Logger) ReviewRepository {
	return &reviewRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "review").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *reviewRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Exists reports whether the user already reviewed the product.
func (r *reviewRepository) Exists(ctx context.Context, tx pgx.Tx, productID, userID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM reviews WHERE product_id = $1 AND user_id = $2
		)
	`

	var exists bool
	err := tx.QueryRow(ctx, query, productID, userID).Scan(&exists)
	if err != nil {
		r.logger.Error().Err(err).
			Str("product_id", productID.String()).
			Str("user_id", userID.String()).
			Msg("failed to check existing review")
		return false, fmt.Errorf("failed to check existing review: %w", err)
	}

	return exists, nil
}

// Create inserts a review within the provided transaction. The unique index
// on (product_id, user_id) is the backstop for concurrent duplicates.
func (r *reviewRepository) Create(ctx context.Context, tx pgx.Tx, review *model.Review) error {
	query := `
		INSERT INTO reviews (id, product_id, user_id, user_name, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := tx.Exec(ctx, query,
		review.ID, review.ProductID, review.UserID, review.UserName,
		review.Rating, review.Comment, review.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			r.logger.Debug().
				Str("product_id", review.ProductID.String()).
				Str("user_id", review.UserID.String()).
				Msg("duplicate review rejected by unique index")
			return model.ErrAlreadyReviewed
		}
		r.logger.Error().Err(err).Str("review_id", review.ID.String()).Msg("failed to create review")
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// Stats computes the rating aggregate for a product from the review table.
func (r *reviewRepository) Stats(ctx context.Context, tx pgx.Tx, productID uuid.UUID) (model.ProductStats, error) {
	query := `
		SELECT COALESCE(AVG(rating), 0), COUNT(*)
		FROM reviews
		WHERE product_id = $1
	`

	var stats model.ProductStats
	err := tx.QueryRow(ctx, query, productID).Scan(&stats.Rating, &stats.NumReviews)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to compute review stats")
		return model.ProductStats{}, fmt.Errorf("failed to compute review stats: %w", err)
	}

	return stats, nil
}

// ListByProduct retrieves all reviews for a product, newest first.
func (r *reviewRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.Review, error) {
	query := `
		SELECT id, product_id, user_id, user_name, rating, comment, created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to query reviews")
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []model.Review{}
	for rows.Next() {
		var review model.Review
		err := rows.Scan(
			&review.ID, &review.ProductID, &review.UserID, &review.UserName,
			&review.Rating, &review.Comment, &review.CreatedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan review row")
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating review rows")
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}
