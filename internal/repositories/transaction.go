package repositories

import (
	"context"
)

// Transaction represents a database transaction that can be used across multiple repositories
type Transaction interface {
	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Context returns a context carrying the transaction; repository calls
	// made with it run inside the transaction
	Context() context.Context
}

// TransactionManager manages database transactions
type TransactionManager interface {
	// BeginTransaction starts a new transaction
	BeginTransaction(ctx context.Context) (Transaction, error)

	// WithTransaction executes a function within a transaction
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// RepositoryManager provides access to all repositories and transaction management
type RepositoryManager interface {
	TransactionManager

	// Campers returns the camper repository
	Campers() CamperRepository

	// Activities returns the activity repository
	Activities() ActivityRepository

	// Signups returns the signup repository
	Signups() SignupRepository

	// Health checks the health of the repository connections
	Health(ctx context.Context) error
}
