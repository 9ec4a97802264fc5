package services

import (
	"context"

	"camp-signup-api/internal/models"
)

// CamperService defines the interface for camper business logic operations
type CamperService interface {
	// CRUD operations
	CreateCamper(ctx context.Context, req *CreateCamperRequest) (*models.Camper, error)
	GetCamper(ctx context.Context, id int64) (*models.Camper, error)
	UpdateCamper(ctx context.Context, id int64, req *UpdateCamperRequest) (*models.Camper, error)
	ListCampers(ctx context.Context) ([]*models.Camper, error)
}

// ActivityService defines the interface for activity business logic operations
type ActivityService interface {
	CreateActivity(ctx context.Context, req *CreateActivityRequest) (*models.Activity, error)
	ListActivities(ctx context.Context) ([]*models.Activity, error)

	// DeleteActivity removes the activity together with its signups
	DeleteActivity(ctx context.Context, id int64) error
}

// SignupService defines the interface for signup business logic operations
type SignupService interface {
	CreateSignup(ctx context.Context, req *CreateSignupRequest) (*models.Signup, error)
}

// Request types.
// Pointer fields tell a field that was left out of the body apart from
// one sent with its zero value.

type CreateCamperRequest struct {
	Name *string `json:"name" validate:"required"`
	Age  *int    `json:"age" validate:"required"`
}

type UpdateCamperRequest struct {
	Name *string `json:"name,omitempty"`
	Age  *int    `json:"age,omitempty"`
}

type CreateActivityRequest struct {
	Name       string `json:"name" validate:"required,max=255"`
	Difficulty int    `json:"difficulty" validate:"min=0"`
}

type CreateSignupRequest struct {
	CamperID   *int64 `json:"camper_id" validate:"required"`
	ActivityID *int64 `json:"activity_id" validate:"required"`
	Time       *int   `json:"time" validate:"required"`
}
