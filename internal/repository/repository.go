package repository

import (
	"context"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// List retrieves products matching the filter with the shared
	// pagination envelope semantics.
	List(ctx context.Context, filter model.ProductFilter, page, limit int) (model.Page[model.Product], error)

	// GetByID retrieves a single product by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// GetForUpdate retrieves a product inside a transaction with a row
	// lock, serializing concurrent writers on the same product.
	GetForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Product, error)

	// Create inserts a new product.
	Create(ctx context.Context, product *model.Product) error

	// Update overwrites the mutable fields of a product and returns the
	// updated row, or nil if the product does not exist.
	Update(ctx context.Context, id uuid.UUID, req *model.ProductRequest) (*model.Product, error)

	// Delete removes a product. Returns false if no row was deleted.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// UpdateStats writes the denormalized rating aggregate within the
	// provided transaction.
	UpdateStats(ctx context.Context, tx pgx.Tx, id uuid.UUID, stats model.ProductStats) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Create inserts a new order within the provided transaction.
	Create(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateItems inserts the order's snapshot items within the provided
	// transaction.
	CreateItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order with its items and its owner resolved to
	// name and email. Returns nil if no such order exists.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// ListByUser retrieves a user's orders, newest first, items included.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)

	// ListAll retrieves every order, newest first, with the owner resolved
	// to at least a display name.
	ListAll(ctx context.Context) ([]model.Order, error)

	// MarkPaid unconditionally overwrites the payment state of an order.
	// Returns false if the order does not exist.
	MarkPaid(ctx context.Context, id uuid.UUID, result *model.PaymentResult) (bool, error)

	// MarkDelivered unconditionally overwrites the delivery state of an
	// order. Returns false if the order does not exist.
	MarkDelivered(ctx context.Context, id uuid.UUID) (bool, error)
}

// ReviewRepository defines the interface for review data access operations.
type ReviewRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Exists reports whether the user already reviewed the product, within
	// the provided transaction.
	Exists(ctx context.Context, tx pgx.Tx, productID, userID uuid.UUID) (bool, error)

	// Create inserts a review within the provided transaction. A unique
	// violation on (product, user) surfaces as model.ErrAlreadyReviewed.
	Create(ctx context.Context, tx pgx.Tx, review *model.Review) error

	// Stats computes the rating aggregate for a product from the review
	// table, within the provided transaction. Zero reviews yields a zero
	// aggregate.
	Stats(ctx context.Context, tx pgx.Tx, productID uuid.UUID) (model.ProductStats, error)

	// ListByProduct retrieves all reviews for a product, newest first.
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.Review, error)
}

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	// Create inserts a new user. A duplicate email surfaces as
	// model.ErrUserExists.
	Create(ctx context.Context, user *model.User) error

	// GetByID retrieves a user by ID, or nil if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// GetByEmail retrieves a user by email, or nil if absent.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// List retrieves users with the shared pagination envelope semantics.
	List(ctx context.Context, page, limit int) (model.Page[model.User], error)

	// Update overwrites a user's profile fields. Returns false if the user
	// does not exist.
	Update(ctx context.Context, user *model.User) (bool, error)

	// Delete removes a user. Returns false if no row was deleted.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// CategoryRepository defines the interface for category data access operations.
type CategoryRepository interface {
	// Create inserts a new category. A duplicate name surfaces as
	// model.ErrCategoryExists.
	Create(ctx context.Context, category *model.Category) error

	// GetByID retrieves a category by ID, or nil if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)

	// List retrieves categories with the shared pagination envelope
	// semantics.
	List(ctx context.Context, page, limit int) (model.Page[model.Category], error)

	// Update overwrites a category and returns the updated row, or nil if
	// the category does not exist.
	Update(ctx context.Context, id uuid.UUID, req *model.CategoryRequest) (*model.Category, error)

	// Delete removes a category. Returns false if no row was deleted.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
