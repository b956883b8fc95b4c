package convert

import (
	"github.com/runwayhq/runway/internal/database/types"
	restTypes "github.com/runwayhq/runway/internal/rest/types"
)

// Application converts a database application to its REST API shape.
func Application(application *types.DesignApplication) *restTypes.Application {
	if application == nil {
		return nil
	}

	result := &restTypes.Application{
		ID:                application.ID,
		DesignName:        application.DesignName,
		DesignDescription: application.DesignDescription,
		DesignImageURL:    application.DesignImageURL,
		Status:            string(application.Status),
		SubmittedAt:       application.SubmittedAt,
		Applicant:         Applicant(application.Applicant),
	}

	if !application.ReviewedAt.IsZero() {
		reviewedAt := application.ReviewedAt
		result.ReviewedAt = &reviewedAt
	}

	return result
}

// Applications converts a slice of database applications.
func Applications(applications []*types.DesignApplication) []*restTypes.Application {
	result := make([]*restTypes.Application, len(applications))
	for i, application := range applications {
		result[i] = Application(application)
	}

	return result
}

// Applicant converts the public slice of a user shown with applications.
func Applicant(user *types.User) *restTypes.Applicant {
	if user == nil {
		return nil
	}

	return &restTypes.Applicant{
		ID:   user.ID,
		Name: user.Name,
	}
}
