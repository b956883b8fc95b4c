package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/runwayhq/runway/internal/database/models"
	"github.com/runwayhq/runway/internal/database/types"
	"go.uber.org/zap"
)

// SubmitApplicationParams carries a designer's waitlist submission.
type SubmitApplicationParams struct {
	DesignName        string
	DesignDescription string
	DesignImageURL    string
}

// ApplicationService handles design application business logic.
type ApplicationService struct {
	applications *models.ApplicationModel
	logger       *zap.Logger
}

// NewApplication creates a new application service.
func NewApplication(applications *models.ApplicationModel, logger *zap.Logger) *ApplicationService {
	return &ApplicationService{
		applications: applications,
		logger:       logger.Named("application_service"),
	}
}

// Submit files a new pending application for the applicant and moves them
// onto the waitlist. An applicant with an open application cannot file
// another.
func (s *ApplicationService) Submit(
	ctx context.Context, applicantID string, params SubmitApplicationParams,
) (*types.DesignApplication, error) {
	if strings.TrimSpace(params.DesignName) == "" {
		return nil, types.ErrDesignNameRequired
	}

	application := &types.DesignApplication{
		ID:                uuid.New().String(),
		ApplicantID:       applicantID,
		DesignName:        strings.TrimSpace(params.DesignName),
		DesignDescription: params.DesignDescription,
		DesignImageURL:    params.DesignImageURL,
		Status:            types.ApplicationStatusPending,
		SubmittedAt:       time.Now(),
	}

	if err := s.applications.Create(ctx, application); err != nil {
		return nil, err
	}

	s.logger.Info("Application submitted",
		zap.String("applicationID", application.ID),
		zap.String("applicantID", applicantID))

	return application, nil
}

// Get retrieves one application with its applicant.
func (s *ApplicationService) Get(ctx context.Context, applicationID string) (*types.DesignApplication, error) {
	return s.applications.GetByID(ctx, applicationID)
}

// List retrieves applications newest first, optionally filtered by status.
func (s *ApplicationService) List(
	ctx context.Context, status types.ApplicationStatus,
) ([]*types.DesignApplication, error) {
	return s.applications.List(ctx, status)
}

// Reject manually rejects a pending application outside of any voting round.
func (s *ApplicationService) Reject(
	ctx context.Context, applicationID, reviewerID string,
) (*types.DesignApplication, error) {
	application, err := s.applications.Reject(ctx, applicationID, reviewerID, time.Now())
	if err != nil {
		return nil, err
	}

	s.logger.Info("Application rejected",
		zap.String("applicationID", applicationID),
		zap.String("reviewerID", reviewerID))

	return application, nil
}
