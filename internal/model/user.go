package model

import (
	"time"

	"github.com/google/uuid"
)

// User is an account in the identity subsystem. The password hash is never
// serialized in responses.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsAdmin      bool      `json:"isAdmin" db:"is_admin"`
	Addresses    []Address `json:"addresses" db:"addresses"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// Address is a saved shipping address on a user profile.
type Address struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the payload for authenticating.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest is the payload for updating the caller's profile.
// Empty fields are left unchanged.
type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by login, register and profile update. It carries
// a fresh token alongside the public user fields.
type AuthResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	IsAdmin bool      `json:"isAdmin"`
	Token   string    `json:"token"`
}
