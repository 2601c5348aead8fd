package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/molweight-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check for them with errors.Is; the API layer maps them to HTTP status codes.
var (
	// ErrNotOwned indicates a resource is owned by a different user than the one making the request.
	// API layer should map this to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrCompoundNotFound indicates that the compound does not exist.
	ErrCompoundNotFound = errors.New("compound not found")

	// ErrFormulaConflict indicates the user already registered a compound with this formula.
	// API layer should map this to HTTP 409 Conflict.
	ErrFormulaConflict = errors.New("formula already registered")

	// ErrSymbolTableNotLoaded indicates no element registry has been loaded yet.
	// API layer should map this to HTTP 503 Service Unavailable.
	ErrSymbolTableNotLoaded = errors.New("element symbol table not loaded")
)

// ServiceError wraps unexpected errors from the service layer with context.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "register_compound")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
// It returns known sentinel errors directly without wrapping and maps
// store-level sentinels to their service-level counterparts.
func NewServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrNotOwned),
		errors.Is(err, ErrCompoundNotFound),
		errors.Is(err, ErrFormulaConflict),
		errors.Is(err, ErrSymbolTableNotLoaded):
		return err
	case errors.Is(err, store.ErrCompoundNotFound):
		return ErrCompoundNotFound
	case errors.Is(err, store.ErrFormulaExists):
		return ErrFormulaConflict
	}

	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
