package types

import "time"

// VoteType is the wire value for a cast vote.
type VoteType string

const (
	VoteTypeUp   VoteType = "up"
	VoteTypeDown VoteType = "down"
)

// Valid reports whether the vote type is one of the accepted wire values.
func (v VoteType) Valid() bool {
	return v == VoteTypeUp || v == VoteTypeDown
}

// ErrorResponse is the envelope for all error replies.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CreateRoundRequest starts a new voting round. Zero-valued numeric fields
// fall back to server defaults.
type CreateRoundRequest struct {
	Name               string `json:"name"`
	Description        string `json:"description"`
	DurationHours      int    `json:"durationHours"`
	MaxApplications    int    `json:"maxApplications"`
	ApprovalPercentage int    `json:"approvalPercentage"`
	MinVotes           int    `json:"minVotes"`
	StartImmediately   bool   `json:"startImmediately"`
}

// CastVoteRequest records one vote on a round entry.
type CastVoteRequest struct {
	VoteType VoteType `json:"voteType"`
}

// SubmitApplicationRequest files a new waitlist design application.
type SubmitApplicationRequest struct {
	DesignName        string `json:"designName"`
	DesignDescription string `json:"designDescription"`
	DesignImageURL    string `json:"designImageUrl"`
}

// CreateChallengeRequest defines a new daily challenge.
type CreateChallengeRequest struct {
	Date               time.Time `json:"date"`
	Theme              string    `json:"theme"`
	MainItem           string    `json:"mainItem"`
	CompetitionStart   time.Time `json:"competitionStart"`
	SubmissionDeadline time.Time `json:"submissionDeadline"`
	CompetitionEnd     time.Time `json:"competitionEnd"`
}

// Applicant is the public slice of a user shown alongside applications and
// as the creator of a round.
type Applicant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Application represents a design application.
type Application struct {
	ID                string     `json:"id"`
	DesignName        string     `json:"designName"`
	DesignDescription string     `json:"designDescription,omitempty"`
	DesignImageURL    string     `json:"designImageUrl,omitempty"`
	Status            string     `json:"status"`
	SubmittedAt       time.Time  `json:"submittedAt"`
	ReviewedAt        *time.Time `json:"reviewedAt,omitempty"`
	Applicant         *Applicant `json:"applicant,omitempty"`
}

// RoundEntry represents one application's participation in a round.
type RoundEntry struct {
	ID           string       `json:"id"`
	Upvotes      int          `json:"upvotes"`
	Downvotes    int          `json:"downvotes"`
	TotalVotes   int          `json:"totalVotes"`
	ApprovalRate float64      `json:"approvalRate"`
	IsApproved   bool         `json:"isApproved"`
	Application  *Application `json:"application,omitempty"`
}

// Round represents a voting round.
type Round struct {
	ID                 string       `json:"id"`
	Name               string       `json:"name"`
	Description        string       `json:"description,omitempty"`
	StartTime          time.Time    `json:"startTime"`
	EndTime            time.Time    `json:"endTime"`
	IsActive           bool         `json:"isActive"`
	MaxApplications    int          `json:"maxApplications"`
	ApprovalPercentage int          `json:"approvalPercentage"`
	MinVotes           int          `json:"minVotes"`
	ApprovedCount      int          `json:"approvedCount"`
	TotalVotes         int          `json:"totalVotes"`
	CreatedAt          time.Time    `json:"createdAt"`
	Creator            *Applicant   `json:"creator,omitempty"`
	Entries            []RoundEntry `json:"entries,omitempty"`
}

// CreateRoundResponse is the reply to a round creation.
type CreateRoundResponse struct {
	Round  Round `json:"round"`
	Pulled int   `json:"pulledApplications"`
}

// VoteCounts is a live vote snapshot for one entry.
type VoteCounts struct {
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
	Total     int `json:"total"`
}

// TallyResult is one entry's final ranking after a round closes.
type TallyResult struct {
	EntryID       string  `json:"entryId"`
	ApplicationID string  `json:"applicationId"`
	ApplicantName string  `json:"applicantName"`
	Upvotes       int     `json:"upvotes"`
	Downvotes     int     `json:"downvotes"`
	TotalVotes    int     `json:"totalVotes"`
	ApprovalRate  float64 `json:"approvalRate"`
	Eligible      bool    `json:"eligible"`
	Approved      bool    `json:"approved"`
}

// CloseRoundResponse is the reply to closing a round.
type CloseRoundResponse struct {
	Round   Round         `json:"round"`
	Results []TallyResult `json:"results"`
}

// ActiveRoundResponse is the public view of the running round with live
// per-entry counts.
type ActiveRoundResponse struct {
	Round  Round                 `json:"round"`
	Counts map[string]VoteCounts `json:"counts"`
}

// Challenge represents a daily challenge with its projected phase.
type Challenge struct {
	ID                 string    `json:"id"`
	Date               time.Time `json:"date"`
	Theme              string    `json:"theme"`
	MainItem           string    `json:"mainItem,omitempty"`
	SubmissionDeadline time.Time `json:"submissionDeadline"`
	CompetitionEnd     time.Time `json:"competitionEnd"`
	Phase              string    `json:"phase"`
}
