package model

// ErrorResponse is the envelope returned for every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON   = "INVALID_JSON"
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeUnauthorised  = "UNAUTHORIZED"
	ErrCodeConflict      = "CONFLICT"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// DomainError is a business-rule failure that maps onto a client-visible
// HTTP status. Infrastructure failures are wrapped with fmt.Errorf instead.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNoOrderItems       = NewDomainError(ErrCodeValidation, "No order items")
	ErrInvalidRating      = NewDomainError(ErrCodeValidation, "Rating must be between 1 and 5")
	ErrInvalidUserData    = NewDomainError(ErrCodeValidation, "Invalid user data")
	ErrOrderNotFound      = NewDomainError(ErrCodeNotFound, "Order not found")
	ErrProductNotFound    = NewDomainError(ErrCodeNotFound, "Product not found")
	ErrCategoryNotFound   = NewDomainError(ErrCodeNotFound, "Category not found")
	ErrUserNotFound       = NewDomainError(ErrCodeNotFound, "User not found")
	ErrNotOrderOwner      = NewDomainError(ErrCodeUnauthorised, "Not authorized to view this order")
	ErrInvalidCredentials = NewDomainError(ErrCodeUnauthorised, "Invalid email or password")
	ErrAlreadyReviewed    = NewDomainError(ErrCodeConflict, "Product already reviewed")
	ErrUserExists         = NewDomainError(ErrCodeConflict, "User already exists")
	ErrCategoryExists     = NewDomainError(ErrCodeConflict, "Category already exists")
)
