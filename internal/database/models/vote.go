package models

import (
	"context"
	"fmt"
	"time"

	"github.com/runwayhq/runway/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// VoteModel handles database operations for the vote ledger.
type VoteModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewVote creates a new vote model.
func NewVote(db *bun.DB, logger *zap.Logger) *VoteModel {
	return &VoteModel{
		db:     db,
		logger: logger.Named("db_vote"),
	}
}

// Upsert casts a vote. A prior vote by the same voter on the same entry is
// replaced; rapid double-clicks collapse into one row through the unique
// (round_entry_id, voter_id) constraint.
func (r *VoteModel) Upsert(ctx context.Context, entryID, voterID string, isUpvote bool) error {
	vote := &types.Vote{
		RoundEntryID: entryID,
		VoterID:      voterID,
		IsUpvote:     isUpvote,
		CreatedAt:    time.Now(),
	}

	_, err := r.db.NewInsert().
		Model(vote).
		On("CONFLICT (round_entry_id, voter_id) DO UPDATE").
		Set("is_upvote = EXCLUDED.is_upvote").
		Set("created_at = EXCLUDED.created_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to cast vote: %w", err)
	}

	return nil
}

// Delete retracts a voter's vote on an entry.
func (r *VoteModel) Delete(ctx context.Context, entryID, voterID string) error {
	res, err := r.db.NewDelete().
		Model((*types.Vote)(nil)).
		Where("round_entry_id = ?", entryID).
		Where("voter_id = ?", voterID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to retract vote: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read retract result: %w", err)
	}

	if rows == 0 {
		return types.ErrVoteNotFound
	}

	return nil
}

// Counts returns a live snapshot of one entry's votes.
func (r *VoteModel) Counts(ctx context.Context, entryID string) (types.VoteCounts, error) {
	var counts types.VoteCounts

	err := r.db.NewSelect().
		Model((*types.Vote)(nil)).
		ColumnExpr("COUNT(*) FILTER (WHERE is_upvote) AS upvotes").
		ColumnExpr("COUNT(*) FILTER (WHERE NOT is_upvote) AS downvotes").
		Where("round_entry_id = ?", entryID).
		Scan(ctx, &counts)
	if err != nil {
		return types.VoteCounts{}, fmt.Errorf("failed to count votes: %w", err)
	}

	return counts, nil
}

// CountsForRound returns live snapshots for every entry of a round, keyed by
// entry ID. Entries without votes are absent from the map.
func (r *VoteModel) CountsForRound(ctx context.Context, roundID string) (map[string]types.VoteCounts, error) {
	var rows []struct {
		RoundEntryID string `bun:"round_entry_id"`
		Upvotes      int    `bun:"upvotes"`
		Downvotes    int    `bun:"downvotes"`
	}

	err := r.db.NewSelect().
		TableExpr("votes AS v").
		Join("JOIN round_entries AS e ON e.id = v.round_entry_id").
		ColumnExpr("v.round_entry_id AS round_entry_id").
		ColumnExpr("COUNT(*) FILTER (WHERE v.is_upvote) AS upvotes").
		ColumnExpr("COUNT(*) FILTER (WHERE NOT v.is_upvote) AS downvotes").
		Where("e.round_id = ?", roundID).
		GroupExpr("v.round_entry_id").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to count round votes: %w", err)
	}

	counts := make(map[string]types.VoteCounts, len(rows))
	for _, row := range rows {
		counts[row.RoundEntryID] = types.VoteCounts{
			Upvotes:   row.Upvotes,
			Downvotes: row.Downvotes,
		}
	}

	return counts, nil
}
