package model

import (
	"time"

	"github.com/google/uuid"
)

// Order represents a customer order. Item rows are snapshots taken at order
// time and never change, even when the live product does. Pricing fields are
// stored exactly as supplied by the caller and are never recomputed
// server-side.
type Order struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	UserID          uuid.UUID       `json:"user" db:"user_id"`
	User            *OrderUser      `json:"userDetails,omitempty"`
	Items           []OrderItem     `json:"orderItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod" db:"payment_method"`
	PaymentResult   *PaymentResult  `json:"paymentResult,omitempty" db:"payment_result"`
	ItemsPrice      float64         `json:"itemsPrice" db:"items_price"`
	TaxPrice        float64         `json:"taxPrice" db:"tax_price"`
	ShippingPrice   float64         `json:"shippingPrice" db:"shipping_price"`
	TotalPrice      float64         `json:"totalPrice" db:"total_price"`
	IsPaid          bool            `json:"isPaid" db:"is_paid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty" db:"paid_at"`
	IsDelivered     bool            `json:"isDelivered" db:"is_delivered"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty" db:"delivered_at"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
}

// OrderUser is the resolved owner of an order, attached on reads that need
// display details.
type OrderUser struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email,omitempty"`
}

// OrderItem is a snapshot of a product line at the moment the order was
// placed.
type OrderItem struct {
	ID            uuid.UUID `json:"-" db:"id"`
	OrderID       uuid.UUID `json:"-" db:"order_id"`
	ProductID     uuid.UUID `json:"product" db:"product_id"`
	Name          string    `json:"name" db:"name"`
	Qty           int       `json:"qty" db:"qty"`
	Price         float64   `json:"price" db:"price"`
	Image         string    `json:"image" db:"image"`
	SelectedColor *string   `json:"selectedColor,omitempty" db:"selected_color"`
	SelectedSize  *string   `json:"selectedSize,omitempty" db:"selected_size"`
}

// ShippingAddress is the destination recorded on the order.
type ShippingAddress struct {
	Address    string `json:"address" db:"ship_address"`
	City       string `json:"city" db:"ship_city"`
	PostalCode string `json:"postalCode" db:"ship_postal_code"`
	Country    string `json:"country" db:"ship_country"`
}

// PaymentResult is the gateway payload recorded when an order is marked
// paid. It is stored verbatim; no gateway integration happens here.
type PaymentResult struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	UpdateTime   string `json:"update_time"`
	EmailAddress string `json:"email_address"`
}

// OrderRequest is the payload for creating an order.
type OrderRequest struct {
	Items           []OrderItemRequest `json:"orderItems"`
	ShippingAddress ShippingAddress    `json:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod"`
	ItemsPrice      float64            `json:"itemsPrice"`
	TaxPrice        float64            `json:"taxPrice"`
	ShippingPrice   float64            `json:"shippingPrice"`
	TotalPrice      float64            `json:"totalPrice"`
}

// OrderItemRequest is a single line in an order request. The fields are
// stored verbatim as the order snapshot.
type OrderItemRequest struct {
	ProductID     uuid.UUID `json:"product"`
	Name          string    `json:"name"`
	Qty           int       `json:"qty"`
	Price         float64   `json:"price"`
	Image         string    `json:"image"`
	SelectedColor *string   `json:"selectedColor,omitempty"`
	SelectedSize  *string   `json:"selectedSize,omitempty"`
}
