package errors

import (
	"net/http"

	"supermarket/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// Predefined error types
var (
	// Catalog-related errors
	ErrProductNotFound = NewBaseError(
		http.StatusNotFound,
		"PRODUCT_NOT_FOUND",
		"Invalid product choice.",
		"",
	)

	ErrCategoryNotFound = NewBaseError(
		http.StatusNotFound,
		"CATEGORY_NOT_FOUND",
		"Invalid category choice.",
		"",
	)

	ErrInsufficientStock = NewBaseError(
		http.StatusConflict,
		"INSUFFICIENT_STOCK",
		"Insufficient quantity available.",
		"",
	)

	// Cart-related errors
	ErrInvalidQuantity = NewBaseError(
		http.StatusBadRequest,
		"INVALID_QUANTITY",
		"Quantity must be greater than zero.",
		"",
	)

	ErrEmptyCart = NewBaseError(
		http.StatusUnprocessableEntity,
		"EMPTY_CART",
		"Cart is empty.",
		"",
	)

	ErrCartLineNotFound = NewBaseError(
		http.StatusNotFound,
		"CART_LINE_NOT_FOUND",
		"Invalid item number.",
		"",
	)

	// Discount-related errors
	ErrDiscountNotFound = NewBaseError(
		http.StatusNotFound,
		"DISCOUNT_NOT_FOUND",
		"Invalid discount number.",
		"",
	)

	ErrNoDiscounts = NewBaseError(
		http.StatusNotFound,
		"NO_DISCOUNTS",
		"No discounts available.",
		"",
	)

	// Account-related errors
	ErrAccountAlreadyExists = NewBaseError(
		http.StatusConflict,
		"ACCOUNT_ALREADY_EXISTS",
		"An account with this email already exists.",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid email or password. Please try again.",
		"",
	)

	ErrLoginRequired = NewBaseError(
		http.StatusUnauthorized,
		"LOGIN_REQUIRED",
		"Please login or register to continue.",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Password processing failed.",
		"",
	)

	ErrPasswordStrength = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_STRENGTH",
		"Password does not meet the strength requirements.",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed.",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal error.",
		"",
	)
)

// WithDetails returns a copy of the error carrying detailed information.
// The copy still matches e with errors.Is.
func (e *BaseError) WithDetails(details string) error {
	return &detailedError{BaseError: &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}, origin: e}
}

type detailedError struct {
	*BaseError
	origin *BaseError
}

func (e *detailedError) Unwrap() error {
	return e.origin
}

func (e *detailedError) Error() string {
	if e.details == "" {
		return e.message
	}

	return e.message + " " + e.details
}
