package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"camp-signup-api/internal/repositories"

	"github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type txKey struct{}

// withTx returns a context carrying tx
func withTx(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// txFromContext returns the transaction stored in ctx, if any
func txFromContext(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*sql.Tx)
	return tx, ok && tx != nil
}

// BaseRepository provides common functionality for all SQLite repositories
type BaseRepository[T any] struct {
	db     *sql.DB
	table  string
	entity string
	logger *logrus.Logger
}

// NewBaseRepository creates a new base repository
func NewBaseRepository[T any](db *sql.DB, table, entity string, logger *logrus.Logger) *BaseRepository[T] {
	if logger == nil {
		logger = logrus.New()
	}
	return &BaseRepository[T]{
		db:     db,
		table:  table,
		entity: entity,
		logger: logger,
	}
}

// conn returns the transaction carried by ctx or the shared handle
func (r *BaseRepository[T]) conn(ctx context.Context) querier {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return r.db
}

// Count returns the total number of rows in the table
func (r *BaseRepository[T]) Count(ctx context.Context) (int64, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", r.table)

	var count int64
	if err := r.executeQueryRow(ctx, "count", query).Scan(&count); err != nil {
		return 0, repositories.NewRepositoryError("count", r.entity, 0, err)
	}
	return count, nil
}

// Exists checks if an entity with the given ID exists
func (r *BaseRepository[T]) Exists(ctx context.Context, id int64) (bool, error) {
	query := fmt.Sprintf("SELECT 1 FROM %s WHERE id = ? LIMIT 1", r.table)

	var exists int
	err := r.executeQueryRow(ctx, "exists", query, id).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, repositories.NewRepositoryError("exists", r.entity, id, err)
	}

	return exists == 1, nil
}

// logQuery logs a query with its execution time
func (r *BaseRepository[T]) logQuery(operation string, query string, args []interface{}, duration time.Duration, err error) {
	fields := logrus.Fields{
		"operation": operation,
		"table":     r.table,
		"query":     query,
		"args":      args,
		"duration":  duration,
	}

	if err != nil {
		fields["error"] = err.Error()
		r.logger.WithFields(fields).Error("Query failed")
	} else {
		r.logger.WithFields(fields).Debug("Query executed")
	}
}

// executeQuery executes a query and logs the result
func (r *BaseRepository[T]) executeQuery(ctx context.Context, operation, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := r.conn(ctx).QueryContext(ctx, query, args...)
	r.logQuery(operation, query, args, time.Since(start), err)

	if err != nil {
		return nil, repositories.NewRepositoryError(operation, r.entity, 0, err)
	}

	return rows, nil
}

// executeQueryRow executes a single-row query and logs the result
func (r *BaseRepository[T]) executeQueryRow(ctx context.Context, operation, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := r.conn(ctx).QueryRowContext(ctx, query, args...)
	r.logQuery(operation, query, args, time.Since(start), nil)

	return row
}

// executeExec executes a non-query statement and logs the result.
// Constraint violations reported by SQLite come back as ErrConstraint.
func (r *BaseRepository[T]) executeExec(ctx context.Context, operation, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := r.conn(ctx).ExecContext(ctx, query, args...)
	r.logQuery(operation, query, args, time.Since(start), err)

	if err != nil {
		if isConstraintViolation(err) {
			return nil, repositories.ConstraintError(r.entity, operation, err)
		}
		return nil, repositories.NewRepositoryError(operation, r.entity, 0, err)
	}

	return result, nil
}

// checkRowsAffected checks that the statement touched the row it targeted
func (r *BaseRepository[T]) checkRowsAffected(result sql.Result, operation string, id int64) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return repositories.NewRepositoryError(operation, r.entity, id, err)
	}

	if rowsAffected == 0 {
		return repositories.NotFoundError(r.entity, id)
	}

	return nil
}

// validateID validates that an ID can refer to a stored row
func (r *BaseRepository[T]) validateID(id int64) error {
	if id <= 0 {
		return repositories.NewRepositoryError("validate", r.entity, id, repositories.ErrInvalidID)
	}
	return nil
}

// isConstraintViolation reports whether err is a SQLite constraint failure
// (CHECK, FOREIGN KEY, NOT NULL, UNIQUE)
func isConstraintViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	return false
}
