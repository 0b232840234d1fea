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

const categoryColumns = `id, name, description, image, created_at`

// categoryRepository implements the CategoryRepository interface using PostgreSQL.
type categoryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCategoryRepository creates a new PostgreSQL-backed category repository.
func NewCategoryRepository(pool *pgxpool.Pool, logger zerolog.Logger) CategoryRepository {
	return &categoryRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "category").Logger(),
	}
}

func scanCategory(row pgx.Row) (model.Category, error) {
	var c model.Category
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Image, &c.CreatedAt)
	return c, err
}

// Create inserts a new category. A duplicate name surfaces as
// model.ErrCategoryExists.
func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	query := `
		INSERT INTO categories (id, name, description, image, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		category.ID, category.Name, category.Description, category.Image, category.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			r.logger.Debug().Str("name", category.Name).Msg("duplicate category name rejected")
			return model.ErrCategoryExists
		}
		r.logger.Error().Err(err).Str("category_id", category.ID.String()).Msg("failed to create category")
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

// GetByID retrieves a category by ID.
func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	query := fmt.Sprintf("SELECT %s FROM categories WHERE id = $1", categoryColumns)

	c, err := scanCategory(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("category_id", id.String()).Msg("category not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("category_id", id.String()).Msg("failed to query category")
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return &c, nil
}

// List retrieves categories with pagination.
func (r *categoryRepository) List(ctx context.Context, page, limit int) (model.Page[model.Category], error) {
	countQuery := "SELECT COUNT(*) FROM categories"
	selectQuery := fmt.Sprintf("SELECT %s FROM categories ORDER BY created_at DESC", categoryColumns)

	result, err := listPage(ctx, r.pool, countQuery, selectQuery, nil, page, limit,
		func(rows pgx.Rows) (model.Category, error) { return scanCategory(rows) })
	if err != nil {
		r.logger.Error().Err(err).Int("page", page).Int("limit", limit).Msg("failed to list categories")
		return model.Page[model.Category]{}, fmt.Errorf("failed to list categories: %w", err)
	}

	return result, nil
}

// Update overwrites a category.
func (r *categoryRepository) Update(ctx context.Context, id uuid.UUID, req *model.CategoryRequest) (*model.Category, error) {
	query := fmt.Sprintf(`
		UPDATE categories
		SET name = $2, description = $3, image = $4
		WHERE id = $1
		RETURNING %s
	`, categoryColumns)

	c, err := scanCategory(r.pool.QueryRow(ctx, query, id, req.Name, req.Description, req.Image))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, model.ErrCategoryExists
		}
		r.logger.Error().Err(err).Str("category_id", id.String()).Msg("failed to update category")
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return &c, nil
}

// Delete removes a category.
func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("category_id", id.String()).Msg("failed to delete category")
		return false, fmt.Errorf("failed to delete category: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
