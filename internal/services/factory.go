package services

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"camp-signup-api/internal/repositories"
)

// ServiceContainer holds all service instances
type ServiceContainer struct {
	CamperService   CamperService
	ActivityService ActivityService
	SignupService   SignupService
}

// NewServiceContainer creates a new service container with all services
func NewServiceContainer(repos repositories.RepositoryManager, logger *logrus.Logger) (*ServiceContainer, error) {
	if repos == nil {
		return nil, fmt.Errorf("repository manager cannot be nil")
	}

	if logger == nil {
		logger = logrus.New()
	}

	camperService := NewCamperService(repos.Campers(), logger)

	activityService := NewActivityService(repos.Activities(), repos.Signups(), repos, logger)

	signupService := NewSignupService(
		repos.Signups(),
		repos.Campers(),
		repos.Activities(),
		repos,
		logger,
	)

	return &ServiceContainer{
		CamperService:   camperService,
		ActivityService: activityService,
		SignupService:   signupService,
	}, nil
}

// Validate validates that all services are properly initialized
func (sc *ServiceContainer) Validate() error {
	if sc.CamperService == nil {
		return fmt.Errorf("camper service is nil")
	}
	if sc.ActivityService == nil {
		return fmt.Errorf("activity service is nil")
	}
	if sc.SignupService == nil {
		return fmt.Errorf("signup service is nil")
	}

	return nil
}

// Close performs cleanup for all services
func (sc *ServiceContainer) Close() error {
	return nil
}
