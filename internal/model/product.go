package model

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a catalogue product. Rating and NumReviews are a
// denormalized cache recomputed by the review service; the review table is
// the authoritative source.
type Product struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Name         string     `json:"name" db:"name"`
	Description  string     `json:"description" db:"description"`
	Brand        string     `json:"brand" db:"brand"`
	Image        string     `json:"image" db:"image"`
	CategoryID   *uuid.UUID `json:"category,omitempty" db:"category_id"`
	Price        float64    `json:"price" db:"price"`
	CountInStock int        `json:"countInStock" db:"count_in_stock"`
	Rating       float64    `json:"rating" db:"rating"`
	NumReviews   int        `json:"numReviews" db:"num_reviews"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
}

// ProductFilter narrows product listings. Keyword matches the name
// case-insensitively as a substring; CategoryID matches exactly.
type ProductFilter struct {
	Keyword    string
	CategoryID *uuid.UUID
}

// ProductRequest is the payload for creating or updating a product.
type ProductRequest struct {
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Brand        string     `json:"brand"`
	Image        string     `json:"image"`
	CategoryID   *uuid.UUID `json:"category,omitempty"`
	Price        float64    `json:"price"`
	CountInStock int        `json:"countInStock"`
}
