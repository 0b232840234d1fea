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

const userColumns = `id, name, email, password_hash, is_admin, addresses, created_at`

// userRepository implements the UserRepository interface using PostgreSQL.
type userRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool, logger zerolog.Logger) UserRepository {
	return &userRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

func scanUser(row pgx.Row) (model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsAdmin,
		&u.Addresses, &u.CreatedAt,
	)
	return u, err
}

// Create inserts a new user. A duplicate email surfaces as model.ErrUserExists.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, is_admin, addresses, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.IsAdmin,
		user.Addresses, user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			r.logger.Debug().Str("email", user.Email).Msg("duplicate email rejected")
			return model.ErrUserExists
		}
		r.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to create user")
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID.
func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userColumns)

	u, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("user_id", id.String()).Msg("user not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &u, nil
}

// GetByEmail retrieves a user by email.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE email = $1", userColumns)

	u, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("email", email).Msg("failed to query user by email")
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}

	return &u, nil
}

// List retrieves users with pagination.
func (r *userRepository) List(ctx context.Context, page, limit int) (model.Page[model.User], error) {
	countQuery := "SELECT COUNT(*) FROM users"
	selectQuery := fmt.Sprintf("SELECT %s FROM users ORDER BY created_at DESC", userColumns)

	result, err := listPage(ctx, r.pool, countQuery, selectQuery, nil, page, limit,
		func(rows pgx.Rows) (model.User, error) { return scanUser(rows) })
	if err != nil {
		r.logger.Error().Err(err).Int("page", page).Int("limit", limit).Msg("failed to list users")
		return model.Page[model.User]{}, fmt.Errorf("failed to list users: %w", err)
	}

	return result, nil
}

// Update overwrites a user's profile fields.
func (r *userRepository) Update(ctx context.Context, user *model.User) (bool, error) {
	query := `
		UPDATE users
		SET name = $2, email = $3, password_hash = $4, addresses = $5
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Addresses,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to update user")
		return false, fmt.Errorf("failed to update user: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Delete removes a user.
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to delete user")
		return false, fmt.Errorf("failed to delete user: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
