package types

import (
	"errors"
	"time"
)

var ErrVoteNotFound = errors.New("vote not found")

// Vote is one member's up or down vote on a round entry. The unique
// (round_entry_id, voter_id) constraint makes casting idempotent: a second
// vote from the same voter replaces the first.
type Vote struct {
	ID           int64     `bun:",pk,autoincrement" json:"id"`
	RoundEntryID string    `bun:",notnull"          json:"roundEntryId"`
	VoterID      string    `bun:",notnull"          json:"voterId"`
	IsUpvote     bool      `bun:",notnull"          json:"isUpvote"`
	CreatedAt    time.Time `bun:",notnull"          json:"createdAt"`
}

// VoteCounts is a live snapshot of an entry's votes, read for display.
// Counts only become authoritative when persisted onto the entry at close.
type VoteCounts struct {
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
}

// Total returns the combined vote count.
func (c VoteCounts) Total() int {
	return c.Upvotes + c.Downvotes
}
