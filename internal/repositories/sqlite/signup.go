package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"camp-signup-api/internal/models"
	"camp-signup-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// SignupRepository implements the SignupRepository interface for SQLite
type SignupRepository struct {
	*BaseRepository[models.Signup]
}

// NewSignupRepository creates a new SQLite signup repository
func NewSignupRepository(db *sql.DB, logger *logrus.Logger) repositories.SignupRepository {
	return &SignupRepository{
		BaseRepository: NewBaseRepository[models.Signup](db, "signups", "signup", logger),
	}
}

// Create creates a new signup. A camper or activity that does not exist
// fails the foreign key and is reported as a constraint violation.
func (r *SignupRepository) Create(ctx context.Context, signup *models.Signup) error {
	if err := signup.Validate(); err != nil {
		return repositories.ValidationError("signup", signup.ID, err)
	}

	query := `
		INSERT INTO signups (camper_id, activity_id, time, created_at)
		VALUES (?, ?, ?, ?)`

	result, err := r.executeExec(ctx, "create", query,
		signup.CamperID,
		signup.ActivityID,
		signup.Time,
		signup.CreatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return repositories.NewRepositoryError("create", "signup", 0, err)
	}
	signup.ID = id

	return nil
}

// GetByID retrieves a signup by ID with its camper and activity loaded
func (r *SignupRepository) GetByID(ctx context.Context, id int64) (*models.Signup, error) {
	if err := r.validateID(id); err != nil {
		return nil, err
	}

	query := `
		SELECT s.id, s.camper_id, s.activity_id, s.time, s.created_at,
			   c.id, c.name, c.age, c.created_at, c.updated_at,
			   a.id, a.name, a.difficulty, a.created_at, a.updated_at
		FROM signups s
		JOIN campers c ON c.id = s.camper_id
		JOIN activities a ON a.id = s.activity_id
		WHERE s.id = ?`

	signup := &models.Signup{Camper: &models.Camper{}, Activity: &models.Activity{}}
	err := r.executeQueryRow(ctx, "get_by_id", query, id).Scan(
		&signup.ID,
		&signup.CamperID,
		&signup.ActivityID,
		&signup.Time,
		&signup.CreatedAt,
		&signup.Camper.ID,
		&signup.Camper.Name,
		&signup.Camper.Age,
		&signup.Camper.CreatedAt,
		&signup.Camper.UpdatedAt,
		&signup.Activity.ID,
		&signup.Activity.Name,
		&signup.Activity.Difficulty,
		&signup.Activity.CreatedAt,
		&signup.Activity.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.NotFoundError("signup", id)
		}
		return nil, repositories.NewRepositoryError("get_by_id", "signup", id, err)
	}

	return signup, nil
}

// GetByCamperID retrieves a camper's signups with their activities loaded
func (r *SignupRepository) GetByCamperID(ctx context.Context, camperID int64) ([]*models.Signup, error) {
	query := `
		SELECT s.id, s.camper_id, s.activity_id, s.time, s.created_at,
			   a.id, a.name, a.difficulty, a.created_at, a.updated_at
		FROM signups s
		JOIN activities a ON a.id = s.activity_id
		WHERE s.camper_id = ?
		ORDER BY s.id`

	rows, err := r.executeQuery(ctx, "get_by_camper_id", query, camperID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	signups := []*models.Signup{}
	for rows.Next() {
		signup := &models.Signup{Activity: &models.Activity{}}
		err := rows.Scan(
			&signup.ID,
			&signup.CamperID,
			&signup.ActivityID,
			&signup.Time,
			&signup.CreatedAt,
			&signup.Activity.ID,
			&signup.Activity.Name,
			&signup.Activity.Difficulty,
			&signup.Activity.CreatedAt,
			&signup.Activity.UpdatedAt,
		)
		if err != nil {
			return nil, repositories.NewRepositoryError("get_by_camper_id", "signup", 0, err)
		}
		signups = append(signups, signup)
	}

	if err = rows.Err(); err != nil {
		return nil, repositories.NewRepositoryError("get_by_camper_id", "signup", 0, err)
	}

	return signups, nil
}

// List retrieves all signups without their owners
func (r *SignupRepository) List(ctx context.Context) ([]*models.Signup, error) {
	query := `
		SELECT id, camper_id, activity_id, time, created_at
		FROM signups
		ORDER BY id`

	rows, err := r.executeQuery(ctx, "list", query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	signups := []*models.Signup{}
	for rows.Next() {
		signup := &models.Signup{}
		err := rows.Scan(
			&signup.ID,
			&signup.CamperID,
			&signup.ActivityID,
			&signup.Time,
			&signup.CreatedAt,
		)
		if err != nil {
			return nil, repositories.NewRepositoryError("list", "signup", 0, err)
		}
		signups = append(signups, signup)
	}

	if err = rows.Err(); err != nil {
		return nil, repositories.NewRepositoryError("list", "signup", 0, err)
	}

	return signups, nil
}

// DeleteByActivityID removes every signup for an activity
func (r *SignupRepository) DeleteByActivityID(ctx context.Context, activityID int64) (int64, error) {
	result, err := r.executeExec(ctx, "delete_by_activity_id", "DELETE FROM signups WHERE activity_id = ?", activityID)
	if err != nil {
		return 0, err
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, repositories.NewRepositoryError("delete_by_activity_id", "signup", 0, err)
	}

	return removed, nil
}
