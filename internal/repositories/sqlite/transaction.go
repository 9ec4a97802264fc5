package sqlite

import (
	"context"
	"database/sql"

	"camp-signup-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// SQLiteTransaction implements the Transaction interface for SQLite
type SQLiteTransaction struct {
	tx     *sql.Tx
	ctx    context.Context
	logger *logrus.Logger
}

// NewSQLiteTransaction creates a new SQLite transaction whose context
// routes repository calls through tx
func NewSQLiteTransaction(ctx context.Context, tx *sql.Tx, logger *logrus.Logger) repositories.Transaction {
	if logger == nil {
		logger = logrus.New()
	}
	return &SQLiteTransaction{
		tx:     tx,
		ctx:    withTx(ctx, tx),
		logger: logger,
	}
}

// Commit commits the transaction
func (t *SQLiteTransaction) Commit() error {
	if err := t.tx.Commit(); err != nil {
		t.logger.WithError(err).Error("Failed to commit transaction")
		return repositories.TransactionError("commit", err)
	}
	t.logger.Debug("Transaction committed successfully")
	return nil
}

// Rollback rolls back the transaction
func (t *SQLiteTransaction) Rollback() error {
	if err := t.tx.Rollback(); err != nil {
		t.logger.WithError(err).Error("Failed to rollback transaction")
		return repositories.TransactionError("rollback", err)
	}
	t.logger.Debug("Transaction rolled back successfully")
	return nil
}

// Context returns the transaction context
func (t *SQLiteTransaction) Context() context.Context {
	return t.ctx
}

// SQLiteTransactionManager implements the TransactionManager interface for SQLite
type SQLiteTransactionManager struct {
	db     *sql.DB
	logger *logrus.Logger
}

// NewSQLiteTransactionManager creates a new SQLite transaction manager
func NewSQLiteTransactionManager(db *sql.DB, logger *logrus.Logger) repositories.TransactionManager {
	if logger == nil {
		logger = logrus.New()
	}
	return &SQLiteTransactionManager{
		db:     db,
		logger: logger,
	}
}

// BeginTransaction starts a new transaction
func (tm *SQLiteTransactionManager) BeginTransaction(ctx context.Context) (repositories.Transaction, error) {
	tx, err := tm.db.BeginTx(ctx, nil)
	if err != nil {
		tm.logger.WithError(err).Error("Failed to begin transaction")
		return nil, repositories.TransactionError("begin", err)
	}

	tm.logger.Debug("Transaction started successfully")
	return NewSQLiteTransaction(ctx, tx, tm.logger), nil
}

// WithTransaction executes a function within a transaction. A transaction
// already carried by ctx is reused instead of nesting a new one.
func (tm *SQLiteTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	tx, err := tm.BeginTransaction(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx.Context()); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			tm.logger.WithError(rollbackErr).Error("Failed to rollback transaction after error")
		}
		return err
	}

	return tx.Commit()
}
