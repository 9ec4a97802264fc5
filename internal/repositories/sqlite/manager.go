package sqlite

import (
	"context"
	"database/sql"

	"camp-signup-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// SQLiteRepositoryManager implements the RepositoryManager interface for SQLite
type SQLiteRepositoryManager struct {
	db                 *sql.DB
	logger             *logrus.Logger
	camperRepo         repositories.CamperRepository
	activityRepo       repositories.ActivityRepository
	signupRepo         repositories.SignupRepository
	transactionManager repositories.TransactionManager
}

// NewSQLiteRepositoryManager creates a repository manager on top of an open
// database handle. The manager does not own the handle.
func NewSQLiteRepositoryManager(db *sql.DB, logger *logrus.Logger) repositories.RepositoryManager {
	if logger == nil {
		logger = logrus.New()
	}

	manager := &SQLiteRepositoryManager{
		db:     db,
		logger: logger,
	}

	manager.signupRepo = NewSignupRepository(db, logger)
	manager.camperRepo = NewCamperRepository(db, manager.signupRepo, logger)
	manager.activityRepo = NewActivityRepository(db, logger)
	manager.transactionManager = NewSQLiteTransactionManager(db, logger)

	return manager
}

// BeginTransaction starts a new transaction
func (m *SQLiteRepositoryManager) BeginTransaction(ctx context.Context) (repositories.Transaction, error) {
	return m.transactionManager.BeginTransaction(ctx)
}

// WithTransaction executes a function within a transaction
func (m *SQLiteRepositoryManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.transactionManager.WithTransaction(ctx, fn)
}

// Campers returns the camper repository
func (m *SQLiteRepositoryManager) Campers() repositories.CamperRepository {
	return m.camperRepo
}

// Activities returns the activity repository
func (m *SQLiteRepositoryManager) Activities() repositories.ActivityRepository {
	return m.activityRepo
}

// Signups returns the signup repository
func (m *SQLiteRepositoryManager) Signups() repositories.SignupRepository {
	return m.signupRepo
}

// Health checks the health of the repository connections
func (m *SQLiteRepositoryManager) Health(ctx context.Context) error {
	if m.db == nil {
		return repositories.ConnectionError(sql.ErrConnDone)
	}

	if err := m.db.PingContext(ctx); err != nil {
		return repositories.ConnectionError(err)
	}

	return nil
}
