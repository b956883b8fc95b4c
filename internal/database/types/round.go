package types

import (
	"errors"
	"time"
)

var (
	ErrRoundNameRequired         = errors.New("round name is required")
	ErrRoundNotFound             = errors.New("voting round not found")
	ErrRoundNotActive            = errors.New("voting round is not active")
	ErrActiveRoundExists         = errors.New("another voting round is already active")
	ErrNoPendingApplications     = errors.New("no pending applications to pull into the round")
	ErrEntryNotFound             = errors.New("round entry not found")
	ErrInvalidApprovalPercentage = errors.New("approval percentage must be between 1 and 100")
)

// Round creation defaults, applied when the request leaves a field unset.
const (
	DefaultRoundDurationHours = 72
	DefaultMaxApplications    = 20
	DefaultApprovalPercentage = 30
	DefaultMinVotes           = 5
	ScheduledRoundStartDelay  = time.Minute
)

// VotingRound is one time-boxed community voting event over a batch of
// waitlist applications. At most one round is active at any time; the
// aggregate counters are written exactly once, when the round closes.
type VotingRound struct {
	ID                 string    `bun:",pk"       json:"id"`
	Name               string    `bun:",notnull"  json:"name"`
	Description        string    `bun:",nullzero" json:"description,omitempty"`
	StartTime          time.Time `bun:",notnull"  json:"startTime"`
	EndTime            time.Time `bun:",notnull"  json:"endTime"`
	IsActive           bool      `bun:",notnull"  json:"isActive"`
	MaxApplications    int       `bun:",notnull"  json:"maxApplications"`
	ApprovalPercentage int       `bun:",notnull"  json:"approvalPercentage"`
	MinVotes           int       `bun:",notnull"  json:"minVotes"`
	ApprovedCount      int       `bun:",notnull"  json:"approvedCount"`
	TotalVotes         int       `bun:",notnull"  json:"totalVotes"`
	CreatedBy          string    `bun:",notnull"  json:"createdBy"`
	CreatedAt          time.Time `bun:",notnull"  json:"createdAt"`

	Creator *User         `bun:"rel:belongs-to,join:created_by=id"  json:"creator,omitempty"`
	Entries []*RoundEntry `bun:"rel:has-many,join:id=round_id"      json:"entries,omitempty"`
}

// Expired reports whether the round's voting window has ended.
func (r *VotingRound) Expired(now time.Time) bool {
	return !now.Before(r.EndTime)
}

// RoundEntry is the membership row tracking one application's participation
// and tally within one round. Tallies are display-only until the round
// closes, at which point the final counts are persisted here.
type RoundEntry struct {
	ID            string    `bun:",pk"                json:"id"`
	RoundID       string    `bun:",notnull"           json:"roundId"`
	ApplicationID string    `bun:",notnull,unique"    json:"applicationId"`
	Upvotes       int       `bun:",notnull"           json:"upvotes"`
	Downvotes     int       `bun:",notnull"           json:"downvotes"`
	TotalVotes    int       `bun:",notnull"           json:"totalVotes"`
	ApprovalRate  float64   `bun:",notnull"           json:"approvalRate"`
	IsApproved    bool      `bun:",notnull"           json:"isApproved"`
	CreatedAt     time.Time `bun:",notnull"           json:"createdAt"`

	Round       *VotingRound       `bun:"rel:belongs-to,join:round_id=id"       json:"-"`
	Application *DesignApplication `bun:"rel:belongs-to,join:application_id=id" json:"application,omitempty"`
}
