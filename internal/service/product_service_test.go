package service

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context, filter model.ProductFilter, page, limit int) (model.Page[model.Product], error) {
	args := m.Called(ctx, filter, page, limit)
	return args.Get(0).(model.Page[model.Product]), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, id uuid.UUID, req *model.ProductRequest) (*model.Product, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) UpdateStats(ctx context.Context, tx pgx.Tx, id uuid.UUID, stats model.ProductStats) error {
	args := m.Called(ctx, tx, id, stats)
	return args.Error(0)
}

func TestProductService_List(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	filter := model.ProductFilter{Keyword: "phone"}
	page := model.Page[model.Product]{
		Items: []model.Product{{ID: uuid.New(), Name: "Phone"}},
		Page:  1,
		Pages: 1,
		Count: 1,
	}

	mockProductRepo := new(MockProductRepository)
	service := NewProductService(mockProductRepo, logger)

	mockProductRepo.On("List", ctx, filter, 1, 10).Return(page, nil)

	got, err := service.List(ctx, filter, 1, 10)

	require.NoError(t, err)
	assert.Equal(t, page, got)

	mockProductRepo.AssertExpectations(t)
}

func TestProductService_List_RepositoryError(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockProductRepo := new(MockProductRepository)
	service := NewProductService(mockProductRepo, logger)

	mockProductRepo.On("List", ctx, model.ProductFilter{}, 1, 10).
		Return(model.Page[model.Product]{}, errors.New("database error"))

	_, err := service.List(ctx, model.ProductFilter{}, 1, 10)

	require.Error(t, err)
	mockProductRepo.AssertExpectations(t)
}

func TestProductService_GetByID(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	productID := uuid.New()
	product := &model.Product{ID: productID, Name: "Phone", Price: 599.99}

	tests := []struct {
		name        string
		mockProduct *model.Product
		mockError   error
		expectedErr error
	}{
		{name: "Success", mockProduct: product},
		{name: "Not found", mockProduct: nil, expectedErr: model.ErrProductNotFound},
		{name: "Repository error", mockError: errors.New("database error")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockProductRepo := new(MockProductRepository)
			service := NewProductService(mockProductRepo, logger)

			mockProductRepo.On("GetByID", ctx, productID).Return(tt.mockProduct, tt.mockError)

			got, err := service.GetByID(ctx, productID)

			switch {
			case tt.expectedErr != nil:
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, got)
			case tt.mockError != nil:
				require.Error(t, err)
				assert.Nil(t, got)
			default:
				require.NoError(t, err)
				assert.Equal(t, product, got)
			}

			mockProductRepo.AssertExpectations(t)
		})
	}
}

func TestProductService_Create_ZeroRatingAggregate(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	req := &model.ProductRequest{
		Name:         "Phone",
		Description:  "A phone",
		Brand:        "Acme",
		Price:        599.99,
		CountInStock: 5,
	}

	mockProductRepo := new(MockProductRepository)
	service := NewProductService(mockProductRepo, logger)

	mockProductRepo.On("Create", ctx, mock.AnythingOfType("*model.Product")).Return(nil)

	product, err := service.Create(ctx, req)

	require.NoError(t, err)
	require.NotNil(t, product)
	assert.NotEqual(t, uuid.Nil, product.ID)
	assert.Equal(t, float64(0), product.Rating)
	assert.Equal(t, 0, product.NumReviews)

	mockProductRepo.AssertExpectations(t)
}

func TestProductService_Update(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	productID := uuid.New()
	req := &model.ProductRequest{Name: "Phone v2", Price: 649.99}
	updated := &model.Product{ID: productID, Name: "Phone v2", Price: 649.99}

	t.Run("Success", func(t *testing.T) {
		mockProductRepo := new(MockProductRepository)
		service := NewProductService(mockProductRepo, logger)

		mockProductRepo.On("Update", ctx, productID, req).Return(updated, nil)

		got, err := service.Update(ctx, productID, req)

		require.NoError(t, err)
		assert.Equal(t, updated, got)
	})

	t.Run("Not found", func(t *testing.T) {
		mockProductRepo := new(MockProductRepository)
		service := NewProductService(mockProductRepo, logger)

		mockProductRepo.On("Update", ctx, productID, req).Return(nil, nil)

		got, err := service.Update(ctx, productID, req)

		assert.ErrorIs(t, err, model.ErrProductNotFound)
		assert.Nil(t, got)
	})
}

func TestProductService_Delete(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	productID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockProductRepo := new(MockProductRepository)
		service := NewProductService(mockProductRepo, logger)

		mockProductRepo.On("Delete", ctx, productID).Return(true, nil)

		err := service.Delete(ctx, productID)
		require.NoError(t, err)
	})

	t.Run("Not found", func(t *testing.T) {
		mockProductRepo := new(MockProductRepository)
		service := NewProductService(mockProductRepo, logger)

		mockProductRepo.On("Delete", ctx, productID).Return(false, nil)

		err := service.Delete(ctx, productID)
		assert.ErrorIs(t, err, model.ErrProductNotFound)
	})
}
