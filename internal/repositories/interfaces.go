package repositories

import (
	"context"

	"camp-signup-api/internal/models"
)

// BaseRepository defines the operations shared by every repository
type BaseRepository[T any] interface {
	// Create creates a new entity and assigns its ID
	Create(ctx context.Context, entity *T) error

	// GetByID retrieves an entity by its ID
	GetByID(ctx context.Context, id int64) (*T, error)

	// List retrieves all entities in ID order
	List(ctx context.Context) ([]*T, error)

	// Count returns the total number of entities
	Count(ctx context.Context) (int64, error)

	// Exists checks if an entity with the given ID exists
	Exists(ctx context.Context, id int64) (bool, error)
}

// CamperRepository defines operations specific to campers
type CamperRepository interface {
	BaseRepository[models.Camper]

	// Update overwrites the stored name and age of an existing camper
	Update(ctx context.Context, camper *models.Camper) error

	// GetWithSignups retrieves a camper and loads its signups with their activities
	GetWithSignups(ctx context.Context, id int64) (*models.Camper, error)
}

// ActivityRepository defines operations specific to activities
type ActivityRepository interface {
	BaseRepository[models.Activity]

	// Delete deletes an activity by its ID
	Delete(ctx context.Context, id int64) error
}

// SignupRepository defines operations specific to signups
type SignupRepository interface {
	BaseRepository[models.Signup]

	// GetByCamperID retrieves a camper's signups with their activities loaded
	GetByCamperID(ctx context.Context, camperID int64) ([]*models.Signup, error)

	// DeleteByActivityID removes every signup for an activity and returns how many were removed
	DeleteByActivityID(ctx context.Context, activityID int64) (int64, error)
}
