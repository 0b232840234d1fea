package service

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/auth"
	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(orderRepo repository.OrderRepository, logger zerolog.Logger) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// Create builds an order from the caller-supplied cart snapshot.
// Pricing fields are stored exactly as supplied; the server trusts the
// client's arithmetic.
func (s *orderService) Create(ctx context.Context, userID uuid.UUID, req *model.OrderRequest) (*model.Order, error) {
	if req == nil || len(req.Items) == 0 {
		return nil, model.ErrNoOrderItems
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	order := &model.Order{
		ID:              uuid.New(),
		UserID:          userID,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		ItemsPrice:      req.ItemsPrice,
		TaxPrice:        req.TaxPrice,
		ShippingPrice:   req.ShippingPrice,
		TotalPrice:      req.TotalPrice,
		IsPaid:          false,
		IsDelivered:     false,
		CreatedAt:       time.Now(),
	}

	if err = s.orderRepo.Create(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	items := make([]model.OrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = model.OrderItem{
			ID:            uuid.New(),
			OrderID:       order.ID,
			ProductID:     item.ProductID,
			Name:          item.Name,
			Qty:           item.Qty,
			Price:         item.Price,
			Image:         item.Image,
			SelectedColor: item.SelectedColor,
			SelectedSize:  item.SelectedSize,
		}
	}

	if err = s.orderRepo.CreateItems(ctx, tx, items); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Int("item_count", len(items)).
			Msg("failed to create order items")
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	order.Items = items

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("user_id", userID.String()).
		Int("item_count", len(items)).
		Msg("order created successfully")

	return order, nil
}

// GetByID retrieves an order, enforcing the owner-or-admin rule.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID, requester auth.Context) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	if !requester.IsAdmin && order.UserID != requester.UserID {
		s.logger.Warn().
			Str("order_id", id.String()).
			Str("requester", requester.UserID.String()).
			Msg("order read denied")
		return nil, model.ErrNotOrderOwner
	}

	return order, nil
}

// Pay marks an order paid. The update overwrites unconditionally, so a
// repeated call succeeds and refreshes paidAt.
func (s *orderService) Pay(ctx context.Context, id uuid.UUID, result model.PaymentResult) (*model.Order, error) {
	found, err := s.orderRepo.MarkPaid(ctx, id, &result)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to mark order paid")
		return nil, fmt.Errorf("failed to mark order paid: %w", err)
	}
	if !found {
		return nil, model.ErrOrderNotFound
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	s.logger.Info().Str("order_id", id.String()).Msg("order marked paid")

	return order, nil
}

// Deliver marks an order delivered. An unpaid order can be delivered; there
// is no cross-field guard.
func (s *orderService) Deliver(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	found, err := s.orderRepo.MarkDelivered(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to mark order delivered")
		return nil, fmt.Errorf("failed to mark order delivered: %w", err)
	}
	if !found {
		return nil, model.ErrOrderNotFound
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	s.logger.Info().Str("order_id", id.String()).Msg("order marked delivered")

	return order, nil
}

// ListMine retrieves the caller's orders, newest first.
func (s *orderService) ListMine(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to list user orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListAll retrieves every order for the admin dashboard.
func (s *orderService) ListAll(ctx context.Context) ([]model.Order, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
