package router

import (
	"net/http"
	"time"

	"storefront/internal/auth"
	"storefront/internal/handler"
	"storefront/internal/middleware"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

// Handlers bundles the per-resource HTTP handlers wired into the router.
type Handlers struct {
	User     *handler.UserHandler
	Product  *handler.ProductHandler
	Category *handler.CategoryHandler
	Order    *handler.OrderHandler
	Review   *handler.ReviewHandler
}

// New creates the HTTP router with all routes and middleware configured.
// Route-level auth follows the storefront contract: catalogue reads are
// public, order access requires a login, admin endpoints require the admin
// flag.
func New(
	h Handlers,
	tokens *auth.TokenManager,
	users repository.UserRepository,
	requestTimeout time.Duration,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	protect := middleware.Auth(tokens, users, logger)
	admin := func(next http.HandlerFunc) http.Handler {
		return protect(middleware.RequireAdmin(logger)(next))
	}
	private := func(next http.HandlerFunc) http.Handler {
		return protect(next)
	}

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Users
	mux.HandleFunc("POST /api/users/login", h.User.Login)
	mux.HandleFunc("POST /api/users/register", h.User.Register)
	mux.Handle("GET /api/users/profile", private(h.User.Profile))
	mux.Handle("PUT /api/users/profile", private(h.User.UpdateProfile))
	mux.Handle("GET /api/users", admin(h.User.List))
	mux.Handle("GET /api/users/{id}", admin(h.User.GetByID))
	mux.Handle("DELETE /api/users/{id}", admin(h.User.Delete))

	// Products
	mux.HandleFunc("GET /api/products", h.Product.List)
	mux.HandleFunc("GET /api/products/{id}", h.Product.GetByID)
	mux.Handle("POST /api/products", admin(h.Product.Create))
	mux.Handle("PUT /api/products/{id}", admin(h.Product.Update))
	mux.Handle("DELETE /api/products/{id}", admin(h.Product.Delete))

	// Categories
	mux.HandleFunc("GET /api/categories", h.Category.List)
	mux.HandleFunc("GET /api/categories/{id}", h.Category.GetByID)
	mux.Handle("POST /api/categories", admin(h.Category.Create))
	mux.Handle("PUT /api/categories/{id}", admin(h.Category.Update))
	mux.Handle("DELETE /api/categories/{id}", admin(h.Category.Delete))

	// Orders
	mux.Handle("POST /api/orders", private(h.Order.Create))
	mux.Handle("GET /api/orders", admin(h.Order.ListAll))
	mux.Handle("GET /api/orders/myorders", private(h.Order.ListMine))
	mux.Handle("GET /api/orders/{id}", private(h.Order.GetByID))
	mux.Handle("PUT /api/orders/{id}/pay", private(h.Order.Pay))
	mux.Handle("PUT /api/orders/{id}/deliver", admin(h.Order.Deliver))

	// Reviews
	mux.Handle("POST /api/reviews/{productId}", private(h.Review.Create))
	mux.HandleFunc("GET /api/reviews/{productId}", h.Review.ListByProduct)

	// Apply middleware in order: Recovery -> Logging -> CORS -> Timeout
	var root http.Handler = mux
	root = middleware.Timeout(requestTimeout)(root)
	root = middleware.CORS(root)
	root = middleware.Logging(logger)(root)
	root = middleware.Recovery(logger)(root)

	return root
}
