package service

import (
	"context"

	"storefront/internal/auth"
	"storefront/internal/model"

	"github.com/google/uuid"
)

// OrderService defines operations for order management.
type OrderService interface {
	// Create builds an order from the caller-supplied cart snapshot. The
	// item fields and pricing are stored verbatim; nothing is re-fetched
	// from the live catalogue.
	Create(ctx context.Context, userID uuid.UUID, req *model.OrderRequest) (*model.Order, error)

	// GetByID retrieves an order. Only the owner or an admin may read it.
	GetByID(ctx context.Context, id uuid.UUID, requester auth.Context) (*model.Order, error)

	// Pay marks an order paid, recording the gateway result. The write is
	// an unconditional overwrite; a repeated call succeeds and refreshes
	// paidAt.
	Pay(ctx context.Context, id uuid.UUID, result model.PaymentResult) (*model.Order, error)

	// Deliver marks an order delivered. Admin gating belongs to the route,
	// not this method.
	Deliver(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// ListMine retrieves the caller's orders, newest first.
	ListMine(ctx context.Context, userID uuid.UUID) ([]model.Order, error)

	// ListAll retrieves every order for the admin dashboard.
	ListAll(ctx context.Context) ([]model.Order, error)
}

// ReviewService defines operations for product reviews.
type ReviewService interface {
	// Create persists a review and recomputes the product's rating
	// aggregate. At most one review per (product, user) is allowed.
	Create(ctx context.Context, productID uuid.UUID, requester auth.Context, req *model.ReviewRequest) error

	// ListByProduct retrieves all reviews for a product, newest first.
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.Review, error)
}

// ProductService defines operations for the product catalogue.
type ProductService interface {
	// List retrieves products matching the filter with pagination.
	List(ctx context.Context, filter model.ProductFilter, page, limit int) (model.Page[model.Product], error)

	// GetByID retrieves a single product.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// Create adds a product to the catalogue.
	Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error)

	// Update overwrites a product's fields.
	Update(ctx context.Context, id uuid.UUID, req *model.ProductRequest) (*model.Product, error)

	// Delete removes a product.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryService defines operations for category management.
type CategoryService interface {
	List(ctx context.Context, page, limit int) (model.Page[model.Category], error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	Create(ctx context.Context, req *model.CategoryRequest) (*model.Category, error)
	Update(ctx context.Context, id uuid.UUID, req *model.CategoryRequest) (*model.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserService defines identity and account operations.
type UserService interface {
	// Register creates an account and returns a signed token.
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)

	// Login verifies credentials and returns a signed token.
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)

	// Profile retrieves the caller's account.
	Profile(ctx context.Context, userID uuid.UUID) (*model.User, error)

	// UpdateProfile updates the caller's account and re-issues a token.
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *model.UpdateProfileRequest) (*model.AuthResponse, error)

	// GetByID retrieves an account for the admin dashboard.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// List retrieves accounts with pagination for the admin dashboard.
	List(ctx context.Context, page, limit int) (model.Page[model.User], error)

	// Delete removes an account.
	Delete(ctx context.Context, id uuid.UUID) error
}
