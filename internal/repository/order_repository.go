package repository

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const orderColumns = `o.id, o.user_id, o.payment_method, o.payment_result,
	o.items_price, o.tax_price, o.shipping_price, o.total_price,
	o.is_paid, o.paid_at, o.is_delivered, o.delivered_at,
	o.ship_address, o.ship_city, o.ship_postal_code, o.ship_country,
	o.created_at`

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

func scanOrder(row pgx.Row, o *model.Order) error {
	return row.Scan(
		&o.ID, &o.UserID, &o.PaymentMethod, &o.PaymentResult,
		&o.ItemsPrice, &o.TaxPrice, &o.ShippingPrice, &o.TotalPrice,
		&o.IsPaid, &o.PaidAt, &o.IsDelivered, &o.DeliveredAt,
		&o.ShippingAddress.Address, &o.ShippingAddress.City,
		&o.ShippingAddress.PostalCode, &o.ShippingAddress.Country,
		&o.CreatedAt,
	)
}

// Create inserts a new order within the provided transaction.
func (r *orderRepository) Create(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (id, user_id, payment_method, payment_result,
			items_price, tax_price, shipping_price, total_price,
			is_paid, paid_at, is_delivered, delivered_at,
			ship_address, ship_city, ship_postal_code, ship_country, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := tx.Exec(ctx, query,
		order.ID, order.UserID, order.PaymentMethod, order.PaymentResult,
		order.ItemsPrice, order.TaxPrice, order.ShippingPrice, order.TotalPrice,
		order.IsPaid, order.PaidAt, order.IsDelivered, order.DeliveredAt,
		order.ShippingAddress.Address, order.ShippingAddress.City,
		order.ShippingAddress.PostalCode, order.ShippingAddress.Country,
		order.CreatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Msg("order created successfully")

	return nil
}

// CreateItems inserts the order's snapshot items within the provided transaction.
func (r *orderRepository) CreateItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items (id, order_id, product_id, name, qty, price,
			image, selected_color, selected_size)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query,
			item.ID, item.OrderID, item.ProductID, item.Name, item.Qty,
			item.Price, item.Image, item.SelectedColor, item.SelectedSize,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(items); i++ {
		_, err := results.Exec()
		if err != nil {
			r.logger.Error().
				Err(err).
				Str("order_id", items[i].OrderID.String()).
				Str("product_id", items[i].ProductID.String()).
				Msg("failed to create order item")
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(items)).
		Msg("order items created successfully")

	return nil
}

// GetByID retrieves an order with its items and its owner resolved to name
// and email.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s, u.name, u.email
		FROM orders o
		JOIN users u ON u.id = o.user_id
		WHERE o.id = $1
	`, orderColumns)

	var order model.Order
	var userName, userEmail string
	row := r.pool.QueryRow(ctx, query, id)
	err := row.Scan(
		&order.ID, &order.UserID, &order.PaymentMethod, &order.PaymentResult,
		&order.ItemsPrice, &order.TaxPrice, &order.ShippingPrice, &order.TotalPrice,
		&order.IsPaid, &order.PaidAt, &order.IsDelivered, &order.DeliveredAt,
		&order.ShippingAddress.Address, &order.ShippingAddress.City,
		&order.ShippingAddress.PostalCode, &order.ShippingAddress.Country,
		&order.CreatedAt, &userName, &userEmail,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	order.User = &model.OrderUser{ID: order.UserID, Name: userName, Email: userEmail}

	items, err := r.itemsForOrders(ctx, []uuid.UUID{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = items[order.ID]

	return &order, nil
}

// ListByUser retrieves a user's orders, newest first, items included.
func (r *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM orders o
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC
	`, orderColumns)

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query user orders")
		return nil, fmt.Errorf("failed to query user orders: %w", err)
	}
	defer rows.Close()

	orders, err := r.collectOrders(rows, false)
	if err != nil {
		return nil, err
	}

	return r.attachItems(ctx, orders)
}

// ListAll retrieves every order, newest first, with the owner's name resolved.
func (r *orderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s, u.name
		FROM orders o
		JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at DESC
	`, orderColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders, err := r.collectOrders(rows, true)
	if err != nil {
		return nil, err
	}

	return r.attachItems(ctx, orders)
}

// MarkPaid unconditionally overwrites the payment state of an order.
// Last write wins when callers race.
func (r *orderRepository) MarkPaid(ctx context.Context, id uuid.UUID, result *model.PaymentResult) (bool, error) {
	query := `
		UPDATE orders
		SET is_paid = TRUE, paid_at = $2, payment_result = $3
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, time.Now(), result)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to mark order paid")
		return false, fmt.Errorf("failed to mark order paid: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// MarkDelivered unconditionally overwrites the delivery state of an order.
func (r *orderRepository) MarkDelivered(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE orders
		SET is_delivered = TRUE, delivered_at = $2
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, time.Now())
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to mark order delivered")
		return false, fmt.Errorf("failed to mark order delivered: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// collectOrders scans order rows, optionally with a trailing user name column.
func (r *orderRepository) collectOrders(rows pgx.Rows, withUserName bool) ([]model.Order, error) {
	var orders []model.Order
	for rows.Next() {
		var order model.Order
		var err error
		if withUserName {
			var userName string
			err = rows.Scan(
				&order.ID, &order.UserID, &order.PaymentMethod, &order.PaymentResult,
				&order.ItemsPrice, &order.TaxPrice, &order.ShippingPrice, &order.TotalPrice,
				&order.IsPaid, &order.PaidAt, &order.IsDelivered, &order.DeliveredAt,
				&order.ShippingAddress.Address, &order.ShippingAddress.City,
				&order.ShippingAddress.PostalCode, &order.ShippingAddress.Country,
				&order.CreatedAt, &userName,
			)
			if err == nil {
				order.User = &model.OrderUser{ID: order.UserID, Name: userName}
			}
		} else {
			err = scanOrder(rows, &order)
		}
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// attachItems loads the snapshot items for a set of orders in one query.
func (r *orderRepository) attachItems(ctx context.Context, orders []model.Order) ([]model.Order, error) {
	if len(orders) == 0 {
		return []model.Order{}, nil
	}

	ids := make([]uuid.UUID, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	itemsByOrder, err := r.itemsForOrders(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		orders[i].Items = itemsByOrder[orders[i].ID]
	}

	return orders, nil
}

// itemsForOrders retrieves the snapshot items for the given order ids,
// grouped by order.
func (r *orderRepository) itemsForOrders(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]model.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, name, qty, price, image,
			selected_color, selected_size
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("order_count", len(ids)).Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	itemsByOrder := make(map[uuid.UUID][]model.OrderItem)
	for rows.Next() {
		var item model.OrderItem
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Name, &item.Qty,
			&item.Price, &item.Image, &item.SelectedColor, &item.SelectedSize,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return itemsByOrder, nil
}
