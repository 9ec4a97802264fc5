package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"camp-signup-api/internal/models"
	"camp-signup-api/internal/repositories"
)

// camperService implements the CamperService interface
type camperService struct {
	camperRepo repositories.CamperRepository
	validator  *validator.Validate
	logger     *logrus.Logger
}

// NewCamperService creates a new camper service instance
func NewCamperService(camperRepo repositories.CamperRepository, logger *logrus.Logger) CamperService {
	if logger == nil {
		logger = logrus.New()
	}
	return &camperService{
		camperRepo: camperRepo,
		validator:  validator.New(),
		logger:     logger,
	}
}

// CreateCamper creates a new camper
func (s *camperService) CreateCamper(ctx context.Context, req *CreateCamperRequest) (*models.Camper, error) {
	if req == nil {
		return nil, invalid("camper", fmt.Errorf("create camper request cannot be nil"))
	}

	// Validate request
	if err := s.validator.Struct(req); err != nil {
		return nil, invalid("camper", err)
	}

	camper := models.NewCamper(*req.Name, *req.Age)

	if err := camper.Validate(); err != nil {
		return nil, invalid("camper", err)
	}

	if err := s.camperRepo.Create(ctx, camper); err != nil {
		return nil, fmt.Errorf("failed to create camper: %w", classify("camper", err))
	}

	// A new camper has no signups yet
	camper.Signups = []*models.Signup{}

	s.logger.WithField("camper_id", camper.ID).Info("Camper created")
	return camper, nil
}

// GetCamper retrieves a camper by ID with its signups and their activities
func (s *camperService) GetCamper(ctx context.Context, id int64) (*models.Camper, error) {
	if id <= 0 {
		return nil, repositories.NotFoundError("camper", id)
	}

	camper, err := s.camperRepo.GetWithSignups(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get camper: %w", err)
	}

	return camper, nil
}

// UpdateCamper applies the supplied fields to an existing camper and stores
// the result. Fields left out of the request keep their stored values.
func (s *camperService) UpdateCamper(ctx context.Context, id int64, req *UpdateCamperRequest) (*models.Camper, error) {
	if id <= 0 {
		return nil, repositories.NotFoundError("camper", id)
	}

	if req == nil {
		return nil, invalid("camper", fmt.Errorf("update camper request cannot be nil"))
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, invalid("camper", err)
	}

	camper, err := s.camperRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get camper: %w", err)
	}

	// Update fields if provided
	if req.Name != nil {
		camper.Rename(*req.Name)
	}
	if req.Age != nil {
		camper.Age = *req.Age
	}

	if err := camper.Validate(); err != nil {
		return nil, invalid("camper", err)
	}

	if err := s.camperRepo.Update(ctx, camper); err != nil {
		return nil, fmt.Errorf("failed to update camper: %w", classify("camper", err))
	}

	s.logger.WithField("camper_id", id).Info("Camper updated")
	return s.GetCamper(ctx, id)
}

// ListCampers retrieves every camper in id order
func (s *camperService) ListCampers(ctx context.Context) ([]*models.Camper, error) {
	campers, err := s.camperRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list campers: %w", err)
	}
	return campers, nil
}
