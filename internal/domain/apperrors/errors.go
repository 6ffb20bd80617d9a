// Package apperrors defines the error taxonomy shared between services and
// the HTTP layer. Handlers translate these into status codes; everything
// else surfaces as a generic 500.
package apperrors

import "fmt"

// ValidationError flags a user-correctable request problem.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validation builds a ValidationError from a format string.
func Validation(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError flags a lookup against a missing resource.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

// NotFound builds a NotFoundError from a format string.
func NotFound(format string, args ...any) *NotFoundError {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

// InsufficientStockError aborts an offline sale whose requested quantity
// exceeds the available stock for a size.
type InsufficientStockError struct {
	Size      string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for size %q: available %d, requested %d", e.Size, e.Available, e.Requested)
}

// TransactionError wraps a failed atomic commit. No partial state change is
// observable when it is returned.
type TransactionError struct {
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction failed: %v", e.Err)
}

func (e *TransactionError) Unwrap() error { return e.Err }
