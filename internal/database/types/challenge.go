package types

import (
	"errors"
	"time"
)

var (
	ErrChallengeNotFound         = errors.New("challenge not found")
	ErrChallengeThemeRequired    = errors.New("challenge theme is required")
	ErrChallengeDeadlineRequired = errors.New("challenge submission deadline is required")
)

// ChallengePhase is a derived lifecycle label for a daily challenge. It is
// never stored: two callers evaluating at different instants may observe
// different phases for the same row.
type ChallengePhase string

const (
	ChallengePhaseScheduled  ChallengePhase = "scheduled"
	ChallengePhaseSubmitting ChallengePhase = "accepting_submissions"
	ChallengePhaseVoting     ChallengePhase = "voting_only"
	ChallengePhaseCompleted  ChallengePhase = "completed"
)

// Challenge represents one daily design challenge.
type Challenge struct {
	ID                 string    `bun:",pk"       json:"id"`
	Date               time.Time `bun:",notnull"  json:"date"`
	Theme              string    `bun:",notnull"  json:"theme"`
	MainItem           string    `bun:",nullzero" json:"mainItem,omitempty"`
	CompetitionStart   time.Time `bun:",nullzero" json:"competitionStart"`
	SubmissionDeadline time.Time `bun:",notnull"  json:"submissionDeadline"`
	CompetitionEnd     time.Time `bun:",nullzero" json:"competitionEnd"`
	CreatedAt          time.Time `bun:",notnull"  json:"createdAt"`
}

// PhaseAt projects the challenge's phase at the given instant. Legacy rows
// without an explicit competition start fall back to the challenge date at
// midnight UTC, and rows without a competition end fall back to the
// submission deadline.
func (c *Challenge) PhaseAt(now time.Time) ChallengePhase {
	start := c.CompetitionStart
	if start.IsZero() {
		start = time.Date(c.Date.Year(), c.Date.Month(), c.Date.Day(), 0, 0, 0, 0, time.UTC)
	}

	end := c.CompetitionEnd
	if end.IsZero() {
		end = c.SubmissionDeadline
	}

	switch {
	case now.Before(start):
		return ChallengePhaseScheduled
	case now.Before(c.SubmissionDeadline):
		return ChallengePhaseSubmitting
	case now.Before(end):
		return ChallengePhaseVoting
	default:
		return ChallengePhaseCompleted
	}
}
