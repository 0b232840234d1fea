package repository

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const productColumns = `id, name, description, brand, image, category_id, price,
	count_in_stock, rating, num_reviews, created_at, updated_at`

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

func scanProduct(row pgx.Row) (model.Product, error) {
	var p model.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Brand, &p.Image, &p.CategoryID,
		&p.Price, &p.CountInStock, &p.Rating, &p.NumReviews,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// List retrieves products matching the filter with pagination.
func (r *productRepository) List(ctx context.Context, filter model.ProductFilter, page, limit int) (model.Page[model.Product], error) {
	where := []string{}
	args := []any{}

	if filter.Keyword != "" {
		args = append(args, "%"+filter.Keyword+"%")
		where = append(where, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)))
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	countQuery := "SELECT COUNT(*) FROM products" + clause
	selectQuery := fmt.Sprintf(
		"SELECT %s FROM products%s ORDER BY created_at DESC", productColumns, clause,
	)

	result, err := listPage(ctx, r.pool, countQuery, selectQuery, args, page, limit,
		func(rows pgx.Rows) (model.Product, error) { return scanProduct(rows) })
	if err != nil {
		r.logger.Error().Err(err).
			Str("keyword", filter.Keyword).
			Int("page", page).
			Int("limit", limit).
			Msg("failed to list products")
		return model.Page[model.Product]{}, fmt.Errorf("failed to list products: %w", err)
	}

	return result, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE id = $1", productColumns)

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("product_id", id.String()).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// GetForUpdate retrieves a product inside a transaction with a row lock.
func (r *productRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE id = $1 FOR UPDATE", productColumns)

	p, err := scanProduct(tx.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("product_id", id.String()).Msg("product not found for update")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to lock product")
		return nil, fmt.Errorf("failed to lock product: %w", err)
	}

	return &p, nil
}

// Create inserts a new product.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	query := `
		INSERT INTO products (id, name, description, brand, image, category_id,
			price, count_in_stock, rating, num_reviews, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.pool.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.Brand,
		product.Image, product.CategoryID, product.Price, product.CountInStock,
		product.Rating, product.NumReviews, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", product.ID.String()).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// Update overwrites the mutable fields of a product.
func (r *productRepository) Update(ctx context.Context, id uuid.UUID, req *model.ProductRequest) (*model.Product, error) {
	query := fmt.Sprintf(`
		UPDATE products
		SET name = $2, description = $3, brand = $4, image = $5,
			category_id = $6, price = $7, count_in_stock = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, productColumns)

	p, err := scanProduct(r.pool.QueryRow(ctx, query,
		id, req.Name, req.Description, req.Brand, req.Image,
		req.CategoryID, req.Price, req.CountInStock,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return &p, nil
}

// Delete removes a product.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to delete product")
		return false, fmt.Errorf("failed to delete product: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// UpdateStats writes the denormalized rating aggregate within the provided
// transaction.
func (r *productRepository) UpdateStats(ctx context.Context, tx pgx.Tx, id uuid.UUID, stats model.ProductStats) error {
	query := `
		UPDATE products
		SET rating = $2, num_reviews = $3, updated_at = NOW()
		WHERE id = $1
	`

	_, err := tx.Exec(ctx, query, id, stats.Rating, stats.NumReviews)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to update product stats")
		return fmt.Errorf("failed to update product stats: %w", err)
	}

	r.logger.Debug().
		Str("product_id", id.String()).
		Float64("rating", stats.Rating).
		Int("num_reviews", stats.NumReviews).
		Msg("product stats updated")

	return nil
}
