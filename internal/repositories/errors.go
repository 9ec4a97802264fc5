package repositories

import (
	"errors"
	"fmt"
)

// Common repository errors
var (
	// ErrNotFound is returned when an entity is not found
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidID is returned when an invalid ID is provided
	ErrInvalidID = errors.New("invalid ID")

	// ErrValidation is returned when entity validation fails
	ErrValidation = errors.New("validation error")

	// ErrConstraint is returned when a database constraint is violated
	ErrConstraint = errors.New("constraint violation")

	// ErrTransaction is returned when a transaction operation fails
	ErrTransaction = errors.New("transaction error")

	// ErrConnection is returned when database connection fails
	ErrConnection = errors.New("database connection error")
)

// RepositoryError represents a repository-specific error with additional context
type RepositoryError struct {
	Op      string // Operation that failed
	Entity  string // Entity type
	ID      int64  // Entity ID, zero when not applicable
	Err     error  // Underlying error
	Message string // Human-readable message
}

// Error implements the error interface
func (e *RepositoryError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	if e.ID != 0 {
		return fmt.Sprintf("%s %s operation failed for ID %d: %v", e.Entity, e.Op, e.ID, e.Err)
	}

	return fmt.Sprintf("%s %s operation failed: %v", e.Entity, e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// NewRepositoryError creates a new repository error
func NewRepositoryError(op, entity string, id int64, err error) *RepositoryError {
	return &RepositoryError{
		Op:     op,
		Entity: entity,
		ID:     id,
		Err:    err,
	}
}

// NotFoundError creates a "not found" repository error
func NotFoundError(entity string, id int64) *RepositoryError {
	return &RepositoryError{
		Op:      "get",
		Entity:  entity,
		ID:      id,
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s with ID %d not found", entity, id),
	}
}

// ValidationError creates a "validation" repository error; the model's
// field errors stay reachable through errors.As
func ValidationError(entity string, id int64, err error) *RepositoryError {
	return &RepositoryError{
		Op:      "validate",
		Entity:  entity,
		ID:      id,
		Err:     fmt.Errorf("%w: %w", ErrValidation, err),
		Message: fmt.Sprintf("validation failed for %s: %v", entity, err),
	}
}

// ConstraintError creates a "constraint violation" repository error
func ConstraintError(entity, op string, err error) *RepositoryError {
	return &RepositoryError{
		Op:      op,
		Entity:  entity,
		Err:     fmt.Errorf("%w: %w", ErrConstraint, err),
		Message: fmt.Sprintf("constraint violation for %s (%s): %v", entity, op, err),
	}
}

// TransactionError creates a "transaction" repository error
func TransactionError(op string, err error) *RepositoryError {
	return &RepositoryError{
		Op:      op,
		Entity:  "transaction",
		Err:     fmt.Errorf("%w: %w", ErrTransaction, err),
		Message: fmt.Sprintf("transaction %s failed: %v", op, err),
	}
}

// ConnectionError creates a "connection" repository error
func ConnectionError(err error) *RepositoryError {
	return &RepositoryError{
		Op:      "connect",
		Entity:  "database",
		Err:     fmt.Errorf("%w: %w", ErrConnection, err),
		Message: fmt.Sprintf("database connection failed: %v", err),
	}
}

// IsNotFound checks if an error is a "not found" error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a "validation" error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsConstraint checks if an error is a "constraint violation" error
func IsConstraint(err error) bool {
	return errors.Is(err, ErrConstraint)
}

// IsTransaction checks if an error is a "transaction" error
func IsTransaction(err error) bool {
	return errors.Is(err, ErrTransaction)
}

// IsConnection checks if an error is a "connection" error
func IsConnection(err error) bool {
	return errors.Is(err, ErrConnection)
}
