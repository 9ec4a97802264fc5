package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"camp-signup-api/internal/models"
	"camp-signup-api/internal/repositories"
)

// signupService implements the SignupService interface
type signupService struct {
	signupRepo   repositories.SignupRepository
	camperRepo   repositories.CamperRepository
	activityRepo repositories.ActivityRepository
	txManager    repositories.TransactionManager
	validator    *validator.Validate
	logger       *logrus.Logger
}

// NewSignupService creates a new signup service instance
func NewSignupService(
	signupRepo repositories.SignupRepository,
	camperRepo repositories.CamperRepository,
	activityRepo repositories.ActivityRepository,
	txManager repositories.TransactionManager,
	logger *logrus.Logger,
) SignupService {
	if logger == nil {
		logger = logrus.New()
	}
	return &signupService{
		signupRepo:   signupRepo,
		camperRepo:   camperRepo,
		activityRepo: activityRepo,
		txManager:    txManager,
		validator:    validator.New(),
		logger:       logger,
	}
}

// CreateSignup books a camper into an activity at an hour of the day and
// returns the stored signup with its camper and activity loaded
func (s *signupService) CreateSignup(ctx context.Context, req *CreateSignupRequest) (*models.Signup, error) {
	if req == nil {
		return nil, invalid("signup", fmt.Errorf("create signup request cannot be nil"))
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, invalid("signup", err)
	}

	signup := models.NewSignup(*req.CamperID, *req.ActivityID, *req.Time)
	if err := signup.Validate(); err != nil {
		return nil, invalid("signup", err)
	}

	var created *models.Signup
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.requireOwners(txCtx, signup); err != nil {
			return err
		}

		if err := s.signupRepo.Create(txCtx, signup); err != nil {
			return classify("signup", err)
		}

		loaded, err := s.signupRepo.GetByID(txCtx, signup.ID)
		if err != nil {
			return err
		}
		created = loaded
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create signup: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"signup_id":   created.ID,
		"camper_id":   created.CamperID,
		"activity_id": created.ActivityID,
	}).Info("Signup created")
	return created, nil
}

// requireOwners checks that the camper and activity a signup points at exist
func (s *signupService) requireOwners(ctx context.Context, signup *models.Signup) error {
	camperExists, err := s.camperRepo.Exists(ctx, signup.CamperID)
	if err != nil {
		return err
	}
	if !camperExists {
		return invalid("signup", &models.ValidationError{
			Field:   "camper_id",
			Message: fmt.Sprintf("camper %d does not exist", signup.CamperID),
			Value:   signup.CamperID,
		})
	}

	activityExists, err := s.activityRepo.Exists(ctx, signup.ActivityID)
	if err != nil {
		return err
	}
	if !activityExists {
		return invalid("signup", &models.ValidationError{
			Field:   "activity_id",
			Message: fmt.Sprintf("activity %d does not exist", signup.ActivityID),
			Value:   signup.ActivityID,
		})
	}

	return nil
}
