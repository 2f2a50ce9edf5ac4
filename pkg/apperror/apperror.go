package apperror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error
type Kind string

const (
	KindValidation          Kind = "validation"
	KindNotFound            Kind = "not_found"
	KindInsufficientStock   Kind = "insufficient_stock"
	KindInvariantViolation  Kind = "invariant_violation"
	KindConcurrencyConflict Kind = "concurrency_conflict"
	KindInternal            Kind = "internal"
)

// Error represents an application error with an HTTP mapping
type Error struct {
	Kind    Kind   `json:"kind"`
	Code    int    `json:"-"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error
func New(kind Kind, code int, message string, err error) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Err: err}
}

// Validation creates a validation error (malformed or missing input)
func Validation(format string, args ...interface{}) *Error {
	return New(KindValidation, http.StatusBadRequest, fmt.Sprintf(format, args...), nil)
}

// NotFound creates a not-found error for a referenced entity
func NotFound(format string, args ...interface{}) *Error {
	return New(KindNotFound, http.StatusNotFound, fmt.Sprintf(format, args...), nil)
}

// InsufficientStock creates an inventory guard failure for a product
func InsufficientStock(productName string, productID uint) *Error {
	return New(KindInsufficientStock, http.StatusConflict,
		fmt.Sprintf("insufficient stock for %s (product %d)", productName, productID), nil)
}

// InvariantViolation signals a blocked account-rule mutation
func InvariantViolation(format string, args ...interface{}) *Error {
	return New(KindInvariantViolation, http.StatusConflict, fmt.Sprintf(format, args...), nil)
}

// ConcurrencyConflict signals lock contention surfaced by the store
func ConcurrencyConflict(err error) *Error {
	return New(KindConcurrencyConflict, http.StatusConflict, "operation conflicted with a concurrent request", err)
}

// Internal wraps an unexpected error
func Internal(err error) *Error {
	return New(KindInternal, http.StatusInternalServerError, "internal server error", err)
}

// IsKind reports whether err is an application error of the given kind
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// HandleError writes err as a JSON response with the mapped status code
func HandleError(w http.ResponseWriter, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = Internal(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Code)
	json.NewEncoder(w).Encode(appErr)
}
