package dto

import "net/http"

// Error codes shared by the domain and the API surface.
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeAlreadyExists is used when creating a duplicate resource
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "INVALID_INPUT"
	// ErrCodeInsufficientStock is used when stock cannot cover a sale
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
	// ErrCodeInvalidState is used when an operation is invalid for the current state
	ErrCodeInvalidState = "INVALID_STATE"
)

// errorCodeHTTPStatus maps error codes to HTTP status codes.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:          http.StatusInternalServerError,
	ErrCodeBadRequest:        http.StatusBadRequest,
	ErrCodeNotFound:          http.StatusNotFound,
	ErrCodeAlreadyExists:     http.StatusConflict,
	ErrCodeInvalidInput:      http.StatusBadRequest,
	ErrCodeInsufficientStock: http.StatusBadRequest,
	ErrCodeInvalidState:      http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status for an error code. Unknown
// codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
