package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"camp-signup-api/internal/models"
	"camp-signup-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// CamperRepository implements the CamperRepository interface for SQLite
type CamperRepository struct {
	*BaseRepository[models.Camper]
	signups repositories.SignupRepository
}

// NewCamperRepository creates a new SQLite camper repository. The signup
// repository is used to load a camper's signups.
func NewCamperRepository(db *sql.DB, signups repositories.SignupRepository, logger *logrus.Logger) repositories.CamperRepository {
	return &CamperRepository{
		BaseRepository: NewBaseRepository[models.Camper](db, "campers", "camper", logger),
		signups:        signups,
	}
}

// Create creates a new camper
func (r *CamperRepository) Create(ctx context.Context, camper *models.Camper) error {
	if err := camper.Validate(); err != nil {
		return repositories.ValidationError("camper", camper.ID, err)
	}

	query := `
		INSERT INTO campers (name, age, created_at, updated_at)
		VALUES (?, ?, ?, ?)`

	result, err := r.executeExec(ctx, "create", query,
		camper.Name,
		camper.Age,
		camper.CreatedAt,
		camper.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return repositories.NewRepositoryError("create", "camper", 0, err)
	}
	camper.ID = id

	return nil
}

// GetByID retrieves a camper by ID without its signups
func (r *CamperRepository) GetByID(ctx context.Context, id int64) (*models.Camper, error) {
	if err := r.validateID(id); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, age, created_at, updated_at
		FROM campers
		WHERE id = ?`

	camper := &models.Camper{}
	err := r.executeQueryRow(ctx, "get_by_id", query, id).Scan(
		&camper.ID,
		&camper.Name,
		&camper.Age,
		&camper.CreatedAt,
		&camper.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.NotFoundError("camper", id)
		}
		return nil, repositories.NewRepositoryError("get_by_id", "camper", id, err)
	}

	return camper, nil
}

// GetWithSignups retrieves a camper with its signups and their activities
func (r *CamperRepository) GetWithSignups(ctx context.Context, id int64) (*models.Camper, error) {
	camper, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	signups, err := r.signups.GetByCamperID(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, s := range signups {
		s.Camper = camper
	}
	camper.Signups = signups

	return camper, nil
}

// Update updates an existing camper
func (r *CamperRepository) Update(ctx context.Context, camper *models.Camper) error {
	if err := camper.Validate(); err != nil {
		return repositories.ValidationError("camper", camper.ID, err)
	}

	camper.UpdateTimestamp()

	query := `
		UPDATE campers
		SET name = ?, age = ?, updated_at = ?
		WHERE id = ?`

	result, err := r.executeExec(ctx, "update", query,
		camper.Name,
		camper.Age,
		camper.UpdatedAt,
		camper.ID,
	)
	if err != nil {
		return err
	}

	return r.checkRowsAffected(result, "update", camper.ID)
}

// List retrieves all campers
func (r *CamperRepository) List(ctx context.Context) ([]*models.Camper, error) {
	query := `
		SELECT id, name, age, created_at, updated_at
		FROM campers
		ORDER BY id`

	rows, err := r.executeQuery(ctx, "list", query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campers := []*models.Camper{}
	for rows.Next() {
		camper := &models.Camper{}
		err := rows.Scan(
			&camper.ID,
			&camper.Name,
			&camper.Age,
			&camper.CreatedAt,
			&camper.UpdatedAt,
		)
		if err != nil {
			return nil, repositories.NewRepositoryError("list", "camper", 0, err)
		}
		campers = append(campers, camper)
	}

	if err = rows.Err(); err != nil {
		return nil, repositories.NewRepositoryError("list", "camper", 0, err)
	}

	return campers, nil
}
