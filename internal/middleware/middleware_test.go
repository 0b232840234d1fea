package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/auth"
	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, page, limit int) (model.Page[model.User], error) {
	args := m.Called(ctx, page, limit)
	return args.Get(0).(model.Page[model.User]), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) (bool, error) {
	args := m.Called(ctx, user)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth(t *testing.T) {
	logger := zerolog.Nop()
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	userID := uuid.New()
	user := &model.User{ID: userID, Name: "Alice", Email: "alice@example.com", IsAdmin: true}

	t.Run("Valid token attaches caller identity", func(t *testing.T) {
		token, err := tokens.Issue(userID, "Alice", true)
		require.NoError(t, err)

		mockUsers := new(MockUserRepository)
		mockUsers.On("GetByID", mock.Anything, userID).Return(user, nil)

		var got auth.Context
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ac, ok := auth.FromContext(r.Context())
			require.True(t, ok)
			got = ac
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		Auth(tokens, mockUsers, logger)(inner).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, userID, got.UserID)
		assert.Equal(t, "Alice", got.Name)
		assert.True(t, got.IsAdmin)

		mockUsers.AssertExpectations(t)
	})

	t.Run("Missing token", func(t *testing.T) {
		mockUsers := new(MockUserRepository)

		req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
		w := httptest.NewRecorder()

		Auth(tokens, mockUsers, logger)(okHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "no token")
		mockUsers.AssertNotCalled(t, "GetByID")
	})

	t.Run("Invalid token", func(t *testing.T) {
		mockUsers := new(MockUserRepository)

		req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		w := httptest.NewRecorder()

		Auth(tokens, mockUsers, logger)(okHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "token failed")
	})

	t.Run("Token for a deleted user", func(t *testing.T) {
		token, err := tokens.Issue(userID, "Alice", false)
		require.NoError(t, err)

		mockUsers := new(MockUserRepository)
		mockUsers.On("GetByID", mock.Anything, userID).Return(nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		Auth(tokens, mockUsers, logger)(okHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockUsers.AssertExpectations(t)
	})
}

func TestRequireAdmin(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("Admin passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req = req.WithContext(auth.WithContext(req.Context(), auth.Context{UserID: uuid.New(), IsAdmin: true}))
		w := httptest.NewRecorder()

		RequireAdmin(logger)(okHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Non-admin rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req = req.WithContext(auth.WithContext(req.Context(), auth.Context{UserID: uuid.New()}))
		w := httptest.NewRecorder()

		RequireAdmin(logger)(okHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "admin")
	})

	t.Run("Unauthenticated rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		w := httptest.NewRecorder()

		RequireAdmin(logger)(okHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestTimeout(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deadline, ok := r.Context().Deadline()
		assert.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(100*time.Millisecond), deadline, 50*time.Millisecond)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	w := httptest.NewRecorder()

	Timeout(100 * time.Millisecond)(handler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORS_Preflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	w := httptest.NewRecorder()

	CORS(okHandler()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestRecovery(t *testing.T) {
	logger := zerolog.Nop()

	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	w := httptest.NewRecorder()

	Recovery(logger)(panicking).ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}
