package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"camp-signup-api/internal/models"
	"camp-signup-api/internal/repositories"
)

// activityService implements the ActivityService interface
type activityService struct {
	activityRepo repositories.ActivityRepository
	signupRepo   repositories.SignupRepository
	txManager    repositories.TransactionManager
	validator    *validator.Validate
	logger       *logrus.Logger
}

// NewActivityService creates a new activity service instance
func NewActivityService(
	activityRepo repositories.ActivityRepository,
	signupRepo repositories.SignupRepository,
	txManager repositories.TransactionManager,
	logger *logrus.Logger,
) ActivityService {
	if logger == nil {
		logger = logrus.New()
	}
	return &activityService{
		activityRepo: activityRepo,
		signupRepo:   signupRepo,
		txManager:    txManager,
		validator:    validator.New(),
		logger:       logger,
	}
}

// CreateActivity creates a new activity
func (s *activityService) CreateActivity(ctx context.Context, req *CreateActivityRequest) (*models.Activity, error) {
	if req == nil {
		return nil, invalid("activity", fmt.Errorf("create activity request cannot be nil"))
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, invalid("activity", err)
	}

	activity := models.NewActivity(req.Name, req.Difficulty)
	if err := activity.Validate(); err != nil {
		return nil, invalid("activity", err)
	}

	if err := s.activityRepo.Create(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", classify("activity", err))
	}

	return activity, nil
}

// ListActivities retrieves every activity in id order
func (s *activityService) ListActivities(ctx context.Context) ([]*models.Activity, error) {
	activities, err := s.activityRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}

// DeleteActivity deletes an activity and its signups in one transaction
func (s *activityService) DeleteActivity(ctx context.Context, id int64) error {
	if id <= 0 {
		return repositories.NotFoundError("activity", id)
	}

	var removed int64
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		exists, err := s.activityRepo.Exists(txCtx, id)
		if err != nil {
			return err
		}
		if !exists {
			return repositories.NotFoundError("activity", id)
		}

		removed, err = s.signupRepo.DeleteByActivityID(txCtx, id)
		if err != nil {
			return err
		}

		return s.activityRepo.Delete(txCtx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"activity_id":     id,
		"signups_removed": removed,
	}).Info("Activity deleted")
	return nil
}
