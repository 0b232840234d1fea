package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/auth"
	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) Create(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	args := m.Called(ctx, tx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) CreateItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	args := m.Called(ctx, tx, items)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderRepository) MarkPaid(ctx context.Context, id uuid.UUID, result *model.PaymentResult) (bool, error) {
	args := m.Called(ctx, id, result)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) MarkDelivered(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockTx is a minimal mock implementation of pgx.Tx for testing.
type MockTx struct {
	mock.Mock
	committed  bool
	rolledBack bool
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	m.committed = true
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	m.rolledBack = true
	return args.Error(0)
}

// Stub methods to satisfy pgx.Tx interface - these are not used in our tests
func (m *MockTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *MockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (m *MockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (m *MockTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (m *MockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (m *MockTx) Exec(ctx context.Context, sql string, arguments ...any) (commandTag pgconn.CommandTag, err error) {
	return
}
func (m *MockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (m *MockTx) Conn() *pgx.Conn                                               { return nil }

func validOrderRequest() *model.OrderRequest {
	return &model.OrderRequest{
		Items: []model.OrderItemRequest{
			{ProductID: uuid.New(), Name: "Widget", Qty: 2, Price: 10.00, Image: "/images/widget.jpg"},
			{ProductID: uuid.New(), Name: "Gadget", Qty: 1, Price: 25.50, Image: "/images/gadget.jpg"},
		},
		ShippingAddress: model.ShippingAddress{
			Address:    "1 Main St",
			City:       "Springfield",
			PostalCode: "12345",
			Country:    "USA",
		},
		PaymentMethod: "PayPal",
		ItemsPrice:    45.50,
		TaxPrice:      4.55,
		ShippingPrice: 5.00,
		TotalPrice:    55.05,
	}
}

func TestOrderService_Create_Success(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	userID := uuid.New()
	req := validOrderRequest()

	mockOrderRepo := new(MockOrderRepository)
	mockTx := new(MockTx)

	service := NewOrderService(mockOrderRepo, logger)

	mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockOrderRepo.On("Create", ctx, mockTx, mock.AnythingOfType("*model.Order")).Return(nil)
	mockOrderRepo.On("CreateItems", ctx, mockTx, mock.AnythingOfType("[]model.OrderItem")).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)

	order, err := service.Create(ctx, userID, req)

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.NotEqual(t, uuid.Nil, order.ID)
	assert.Equal(t, userID, order.UserID)
	assert.Len(t, order.Items, 2)
	assert.False(t, order.IsPaid)
	assert.False(t, order.IsDelivered)

	// Snapshot fields are stored verbatim from the request.
	assert.Equal(t, req.Items[0].Name, order.Items[0].Name)
	assert.Equal(t, req.Items[0].Price, order.Items[0].Price)
	assert.Equal(t, req.TotalPrice, order.TotalPrice)

	mockOrderRepo.AssertExpectations(t)
	mockTx.AssertExpectations(t)
}

func TestOrderService_Create_EmptyItems(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockOrderRepo := new(MockOrderRepository)
	service := NewOrderService(mockOrderRepo, logger)

	tests := []struct {
		name string
		req  *model.OrderRequest
	}{
		{name: "Nil request", req: nil},
		{name: "Empty items", req: &model.OrderRequest{Items: []model.OrderItemRequest{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := service.Create(ctx, uuid.New(), tt.req)

			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrNoOrderItems)
			assert.Nil(t, order)
		})
	}

	mockOrderRepo.AssertNotCalled(t, "BeginTx")
}

func TestOrderService_Create_TransactionRollback(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	req := validOrderRequest()

	mockOrderRepo := new(MockOrderRepository)
	mockTx := new(MockTx)

	service := NewOrderService(mockOrderRepo, logger)

	mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockOrderRepo.On("Create", ctx, mockTx, mock.AnythingOfType("*model.Order")).
		Return(errors.New("database error"))
	mockTx.On("Rollback", ctx).Return(nil)

	order, err := service.Create(ctx, uuid.New(), req)

	require.Error(t, err)
	assert.Nil(t, order)
	assert.True(t, mockTx.rolledBack)

	mockOrderRepo.AssertExpectations(t)
	mockTx.AssertExpectations(t)
}

func TestOrderService_GetByID(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	ownerID := uuid.New()
	orderID := uuid.New()
	order := &model.Order{ID: orderID, UserID: ownerID, CreatedAt: time.Now()}

	tests := []struct {
		name        string
		requester   auth.Context
		mockOrder   *model.Order
		mockError   error
		expectedErr error
	}{
		{
			name:      "Owner can read",
			requester: auth.Context{UserID: ownerID},
			mockOrder: order,
		},
		{
			name:      "Admin can read another user's order",
			requester: auth.Context{UserID: uuid.New(), IsAdmin: true},
			mockOrder: order,
		},
		{
			name:        "Non-owner is rejected",
			requester:   auth.Context{UserID: uuid.New()},
			mockOrder:   order,
			expectedErr: model.ErrNotOrderOwner,
		},
		{
			name:        "Order not found",
			requester:   auth.Context{UserID: ownerID},
			mockOrder:   nil,
			expectedErr: model.ErrOrderNotFound,
		},
		{
			name:        "Repository error",
			requester:   auth.Context{UserID: ownerID},
			mockError:   errors.New("database error"),
			expectedErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockOrderRepo := new(MockOrderRepository)
			service := NewOrderService(mockOrderRepo, logger)

			mockOrderRepo.On("GetByID", ctx, orderID).Return(tt.mockOrder, tt.mockError)

			got, err := service.GetByID(ctx, orderID, tt.requester)

			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, got)
			} else if tt.mockError != nil {
				require.Error(t, err)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, order, got)
			}

			mockOrderRepo.AssertExpectations(t)
		})
	}
}

func TestOrderService_Pay(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	orderID := uuid.New()
	result := model.PaymentResult{ID: "PAY-1", Status: "COMPLETED", EmailAddress: "buyer@example.com"}
	paidAt := time.Now()
	paid := &model.Order{ID: orderID, IsPaid: true, PaidAt: &paidAt, PaymentResult: &result}

	t.Run("Success", func(t *testing.T) {
		mockOrderRepo := new(MockOrderRepository)
		service := NewOrderService(mockOrderRepo, logger)

		mockOrderRepo.On("MarkPaid", ctx, orderID, &result).Return(true, nil)
		mockOrderRepo.On("GetByID", ctx, orderID).Return(paid, nil)

		got, err := service.Pay(ctx, orderID, result)

		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, got.IsPaid)
		assert.Equal(t, &result, got.PaymentResult)

		mockOrderRepo.AssertExpectations(t)
	})

	t.Run("Repeated pay succeeds", func(t *testing.T) {
		// MarkPaid is an unconditional overwrite; paying an already-paid
		// order is not an error.
		mockOrderRepo := new(MockOrderRepository)
		service := NewOrderService(mockOrderRepo, logger)

		mockOrderRepo.On("MarkPaid", ctx, orderID, &result).Return(true, nil)
		mockOrderRepo.On("GetByID", ctx, orderID).Return(paid, nil)

		_, err := service.Pay(ctx, orderID, result)
		require.NoError(t, err)
		_, err = service.Pay(ctx, orderID, result)
		require.NoError(t, err)
	})

	t.Run("Order not found", func(t *testing.T) {
		mockOrderRepo := new(MockOrderRepository)
		service := NewOrderService(mockOrderRepo, logger)

		mockOrderRepo.On("MarkPaid", ctx, orderID, &result).Return(false, nil)

		got, err := service.Pay(ctx, orderID, result)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrOrderNotFound)
		assert.Nil(t, got)

		mockOrderRepo.AssertNotCalled(t, "GetByID")
	})
}

func TestOrderService_Deliver(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	orderID := uuid.New()
	deliveredAt := time.Now()

	t.Run("Unpaid order can be delivered", func(t *testing.T) {
		delivered := &model.Order{ID: orderID, IsPaid: false, IsDelivered: true, DeliveredAt: &deliveredAt}

		mockOrderRepo := new(MockOrderRepository)
		service := NewOrderService(mockOrderRepo, logger)

		mockOrderRepo.On("MarkDelivered", ctx, orderID).Return(true, nil)
		mockOrderRepo.On("GetByID", ctx, orderID).Return(delivered, nil)

		got, err := service.Deliver(ctx, orderID)

		require.NoError(t, err)
		assert.True(t, got.IsDelivered)
		assert.False(t, got.IsPaid)

		mockOrderRepo.AssertExpectations(t)
	})

	t.Run("Order not found", func(t *testing.T) {
		mockOrderRepo := new(MockOrderRepository)
		service := NewOrderService(mockOrderRepo, logger)

		mockOrderRepo.On("MarkDelivered", ctx, orderID).Return(false, nil)

		got, err := service.Deliver(ctx, orderID)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrOrderNotFound)
		assert.Nil(t, got)
	})
}

func TestOrderService_ListMine(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	userID := uuid.New()

	orders := []model.Order{
		{ID: uuid.New(), UserID: userID},
		{ID: uuid.New(), UserID: userID},
	}

	mockOrderRepo := new(MockOrderRepository)
	service := NewOrderService(mockOrderRepo, logger)

	mockOrderRepo.On("ListByUser", ctx, userID).Return(orders, nil)

	got, err := service.ListMine(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, orders, got)

	mockOrderRepo.AssertExpectations(t)
}

func TestOrderService_ListAll(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	orders := []model.Order{{ID: uuid.New()}, {ID: uuid.New()}, {ID: uuid.New()}}

	mockOrderRepo := new(MockOrderRepository)
	service := NewOrderService(mockOrderRepo, logger)

	mockOrderRepo.On("ListAll", ctx).Return(orders, nil)

	got, err := service.ListAll(ctx)

	require.NoError(t, err)
	assert.Len(t, got, 3)

	mockOrderRepo.AssertExpectations(t)
}
