package types

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrApplicationNotFound   = errors.New("application not found")
	ErrDesignNameRequired    = errors.New("design name is required")
	ErrOpenApplicationExists = errors.New("user already has an open application")
	ErrInvalidTransition     = errors.New("invalid application status transition")
)

// ApplicationStatus is the lifecycle state of a waitlist design application.
type ApplicationStatus string

const (
	ApplicationStatusPending    ApplicationStatus = "pending"
	ApplicationStatusInVoting   ApplicationStatus = "in_voting"
	ApplicationStatusApproved   ApplicationStatus = "approved"
	ApplicationStatusWaitlisted ApplicationStatus = "waitlisted"
	ApplicationStatusRejected   ApplicationStatus = "rejected"
)

// statusTransitions is the full transition table. Pending applications enter
// voting when pulled into a round, and leave voting as approved or
// waitlisted when the round closes. Rejection is a manual path that never
// goes through a round.
var statusTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationStatusPending:    {ApplicationStatusInVoting, ApplicationStatusRejected},
	ApplicationStatusInVoting:   {ApplicationStatusApproved, ApplicationStatusWaitlisted},
	ApplicationStatusApproved:   {},
	ApplicationStatusWaitlisted: {},
	ApplicationStatusRejected:   {},
}

// CanTransition reports whether the status change is listed in the
// transition table.
func (s ApplicationStatus) CanTransition(to ApplicationStatus) bool {
	for _, next := range statusTransitions[s] {
		if next == to {
			return true
		}
	}

	return false
}

// IsOpen reports whether the application still awaits a decision.
func (s ApplicationStatus) IsOpen() bool {
	return s == ApplicationStatusPending || s == ApplicationStatusInVoting
}

// DesignApplication represents one designer's request to join the waitlist
// with a specific design.
type DesignApplication struct {
	ID                string            `bun:",pk"       json:"id"`
	ApplicantID       string            `bun:",notnull"  json:"applicantId"`
	DesignName        string            `bun:",notnull"  json:"designName"`
	DesignDescription string            `bun:",nullzero" json:"designDescription,omitempty"`
	DesignImageURL    string            `bun:",nullzero" json:"designImageUrl,omitempty"`
	Status            ApplicationStatus `bun:",notnull"  json:"status"`
	SubmittedAt       time.Time         `bun:",notnull"  json:"submittedAt"`
	ReviewedAt        time.Time         `bun:",nullzero" json:"reviewedAt"`
	ReviewedBy        string            `bun:",nullzero" json:"reviewedBy,omitempty"`

	Applicant *User `bun:"rel:belongs-to,join:applicant_id=id" json:"applicant,omitempty"`
}

// Transition moves the application to the given status. Terminal statuses
// stamp the review metadata; entering voting does not count as a review.
// Illegal transitions fail before anything is written.
func (a *DesignApplication) Transition(to ApplicationStatus, reviewerID string, now time.Time) error {
	if !a.Status.CanTransition(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, to)
	}

	a.Status = to

	switch to {
	case ApplicationStatusApproved, ApplicationStatusWaitlisted, ApplicationStatusRejected:
		a.ReviewedAt = now
		a.ReviewedBy = reviewerID
	case ApplicationStatusPending, ApplicationStatusInVoting:
	}

	return nil
}
