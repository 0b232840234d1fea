package model

import (
	"time"

	"github.com/google/uuid"
)

// Review is a single product review. At most one review exists per
// (product, user) pair, enforced by a unique index.
type Review struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ProductID uuid.UUID `json:"product" db:"product_id"`
	UserID    uuid.UUID `json:"user" db:"user_id"`
	UserName  string    `json:"name" db:"user_name"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// ReviewRequest is the payload for creating a review.
type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ProductStats is the aggregate recomputed from the review table and cached
// on the product row.
type ProductStats struct {
	Rating     float64
	NumReviews int
}
