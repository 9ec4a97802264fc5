package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"camp-signup-api/internal/models"
	"camp-signup-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// ActivityRepository implements the ActivityRepository interface for SQLite
type ActivityRepository struct {
	*BaseRepository[models.Activity]
}

// NewActivityRepository creates a new SQLite activity repository
func NewActivityRepository(db *sql.DB, logger *logrus.Logger) repositories.ActivityRepository {
	return &ActivityRepository{
		BaseRepository: NewBaseRepository[models.Activity](db, "activities", "activity", logger),
	}
}

// Create creates a new activity
func (r *ActivityRepository) Create(ctx context.Context, activity *models.Activity) error {
	if err := activity.Validate(); err != nil {
		return repositories.ValidationError("activity", activity.ID, err)
	}

	query := `
		INSERT INTO activities (name, difficulty, created_at, updated_at)
		VALUES (?, ?, ?, ?)`

	result, err := r.executeExec(ctx, "create", query,
		activity.Name,
		activity.Difficulty,
		activity.CreatedAt,
		activity.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return repositories.NewRepositoryError("create", "activity", 0, err)
	}
	activity.ID = id

	return nil
}

// GetByID retrieves an activity by ID
func (r *ActivityRepository) GetByID(ctx context.Context, id int64) (*models.Activity, error) {
	if err := r.validateID(id); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, difficulty, created_at, updated_at
		FROM activities
		WHERE id = ?`

	activity := &models.Activity{}
	err := r.executeQueryRow(ctx, "get_by_id", query, id).Scan(
		&activity.ID,
		&activity.Name,
		&activity.Difficulty,
		&activity.CreatedAt,
		&activity.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.NotFoundError("activity", id)
		}
		return nil, repositories.NewRepositoryError("get_by_id", "activity", id, err)
	}

	return activity, nil
}

// Delete deletes an activity by ID. Its signups go with it through the
// ON DELETE CASCADE foreign key.
func (r *ActivityRepository) Delete(ctx context.Context, id int64) error {
	if err := r.validateID(id); err != nil {
		return err
	}

	result, err := r.executeExec(ctx, "delete", "DELETE FROM activities WHERE id = ?", id)
	if err != nil {
		return err
	}

	return r.checkRowsAffected(result, "delete", id)
}

// List retrieves all activities
func (r *ActivityRepository) List(ctx context.Context) ([]*models.Activity, error) {
	query := `
		SELECT id, name, difficulty, created_at, updated_at
		FROM activities
		ORDER BY id`

	rows, err := r.executeQuery(ctx, "list", query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := []*models.Activity{}
	for rows.Next() {
		activity := &models.Activity{}
		err := rows.Scan(
			&activity.ID,
			&activity.Name,
			&activity.Difficulty,
			&activity.CreatedAt,
			&activity.UpdatedAt,
		)
		if err != nil {
			return nil, repositories.NewRepositoryError("list", "activity", 0, err)
		}
		activities = append(activities, activity)
	}

	if err = rows.Err(); err != nil {
		return nil, repositories.NewRepositoryError("list", "activity", 0, err)
	}

	return activities, nil
}
