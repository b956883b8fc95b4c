package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/runwayhq/runway/internal/database/dbretry"
	"github.com/runwayhq/runway/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// RoundModel handles database operations for voting rounds and their entries.
type RoundModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewRound creates a new round model.
func NewRound(db *bun.DB, logger *zap.Logger) *RoundModel {
	return &RoundModel{
		db:     db,
		logger: logger.Named("db_round"),
	}
}

// CreateWithEntries persists a new round together with its membership rows,
// pulling up to maxApplications pending applications oldest-first and moving
// them into voting. The whole operation is one transaction: it either leaves
// a fully populated round or nothing at all.
func (r *RoundModel) CreateWithEntries(
	ctx context.Context, round *types.VotingRound, maxApplications int,
) (int, error) {
	pulled := 0

	err := dbretry.Transaction(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		// The unique partial index backs this check under concurrency; the
		// explicit select gives concurrent admins a clean conflict error.
		exists, err := tx.NewSelect().
			Model((*types.VotingRound)(nil)).
			Where("is_active = TRUE").
			Exists(ctx)
		if err != nil {
			return fmt.Errorf("failed to check for an active round: %w", err)
		}

		if exists {
			return types.ErrActiveRoundExists
		}

		var applications []*types.DesignApplication

		err = tx.NewSelect().
			Model(&applications).
			Where("status = ?", types.ApplicationStatusPending).
			Order("submitted_at ASC").
			Limit(maxApplications).
			Scan(ctx)
		if err != nil {
			return fmt.Errorf("failed to select pending applications: %w", err)
		}

		if len(applications) == 0 {
			return types.ErrNoPendingApplications
		}

		if _, err := tx.NewInsert().Model(round).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert round: %w", err)
		}

		entries := make([]*types.RoundEntry, len(applications))
		applicationIDs := make([]string, len(applications))

		for i, application := range applications {
			entries[i] = &types.RoundEntry{
				ID:            uuid.New().String(),
				RoundID:       round.ID,
				ApplicationID: application.ID,
				CreatedAt:     round.CreatedAt,
			}
			applicationIDs[i] = application.ID
		}

		if _, err := tx.NewInsert().Model(&entries).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert round entries: %w", err)
		}

		_, err = tx.NewUpdate().
			Model((*types.DesignApplication)(nil)).
			Set("status = ?", types.ApplicationStatusInVoting).
			Where("id IN (?)", bun.In(applicationIDs)).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to move applications into voting: %w", err)
		}

		pulled = len(applications)

		return nil
	})
	if err != nil {
		return 0, err
	}

	r.logger.Debug("Created voting round",
		zap.String("roundID", round.ID),
		zap.Int("entries", pulled))

	return pulled, nil
}

// Close tallies every entry of the round and finalizes it. All tally rows,
// application transitions, applicant waitlist updates and the round's own
// aggregates are written in a single transaction; a failure anywhere rolls
// everything back and the round stays active for a retry.
func (r *RoundModel) Close(
	ctx context.Context, roundID, reviewerID string, now time.Time,
) (*types.VotingRound, []types.TallyResult, error) {
	var (
		round   types.VotingRound
		results []types.TallyResult
	)

	err := dbretry.Transaction(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().
			Model(&round).
			Where("id = ?", roundID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return types.ErrRoundNotFound
			}

			return fmt.Errorf("failed to load round: %w", err)
		}

		if !round.IsActive {
			return types.ErrRoundNotActive
		}

		var tallies []types.EntryTally

		err = tx.NewSelect().
			TableExpr("round_entries AS e").
			Join("JOIN design_applications AS a ON a.id = e.application_id").
			Join("JOIN users AS u ON u.id = a.applicant_id").
			Join("LEFT JOIN votes AS v ON v.round_entry_id = e.id").
			ColumnExpr("e.id AS entry_id").
			ColumnExpr("e.application_id AS application_id").
			ColumnExpr("a.applicant_id AS applicant_id").
			ColumnExpr("u.name AS applicant_name").
			ColumnExpr("a.submitted_at AS submitted_at").
			ColumnExpr("COUNT(v.id) FILTER (WHERE v.is_upvote) AS upvotes").
			ColumnExpr("COUNT(v.id) FILTER (WHERE NOT v.is_upvote) AS downvotes").
			Where("e.round_id = ?", roundID).
			GroupExpr("e.id, e.application_id, a.applicant_id, u.name, a.submitted_at").
			Scan(ctx, &tallies)
		if err != nil {
			return fmt.Errorf("failed to aggregate votes: %w", err)
		}

		results = types.ComputeRoundResults(tallies, round.MinVotes, round.ApprovalPercentage)

		totalVotes := 0
		approvedCount := 0

		for _, result := range results {
			totalVotes += result.TotalVotes
			if result.Approved {
				approvedCount++
			}

			_, err := tx.NewUpdate().
				Model((*types.RoundEntry)(nil)).
				Set("upvotes = ?", result.Upvotes).
				Set("downvotes = ?", result.Downvotes).
				Set("total_votes = ?", result.TotalVotes).
				Set("approval_rate = ?", result.ApprovalRate).
				Set("is_approved = ?", result.Approved).
				Where("id = ?", result.EntryID).
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to persist entry tally: %w", err)
			}

			application := new(types.DesignApplication)

			err = tx.NewSelect().
				Model(application).
				Where("id = ?", result.ApplicationID).
				Scan(ctx)
			if err != nil {
				return fmt.Errorf("failed to load application: %w", err)
			}

			status := types.ApplicationStatusWaitlisted
			if result.Approved {
				status = types.ApplicationStatusApproved
			}

			if err := application.Transition(status, reviewerID, now); err != nil {
				return err
			}

			_, err = tx.NewUpdate().
				Model(application).
				Column("status", "reviewed_at", "reviewed_by").
				WherePK().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to update application status: %w", err)
			}

			if result.Approved {
				_, err = tx.NewUpdate().
					Model((*types.User)(nil)).
					Set("waitlist_status = ?", types.WaitlistStatusApproved).
					Where("id = ?", result.ApplicantID).
					Exec(ctx)
				if err != nil {
					return fmt.Errorf("failed to approve applicant: %w", err)
				}
			}
		}

		// Conditional update so a concurrent close loses cleanly.
		res, err := tx.NewUpdate().
			Model((*types.VotingRound)(nil)).
			Set("is_active = ?", false).
			Set("end_time = ?", now).
			Set("approved_count = ?", approvedCount).
			Set("total_votes = ?", totalVotes).
			Where("id = ? AND is_active = TRUE", roundID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to finalize round: %w", err)
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read close result: %w", err)
		}

		if rows == 0 {
			return types.ErrRoundNotActive
		}

		round.IsActive = false
		round.EndTime = now
		round.ApprovedCount = approvedCount
		round.TotalVotes = totalVotes

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	r.logger.Debug("Closed voting round",
		zap.String("roundID", round.ID),
		zap.Int("approved", round.ApprovedCount),
		zap.Int("totalVotes", round.TotalVotes))

	return &round, results, nil
}

// GetByID retrieves one round with its creator and entries.
func (r *RoundModel) GetByID(ctx context.Context, roundID string) (*types.VotingRound, error) {
	round := new(types.VotingRound)

	err := r.db.NewSelect().
		Model(round).
		Relation("Creator").
		Relation("Entries").
		Relation("Entries.Application").
		Relation("Entries.Application.Applicant").
		Where("voting_round.id = ?", roundID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrRoundNotFound
		}

		return nil, fmt.Errorf("failed to get round: %w", err)
	}

	return round, nil
}

// GetAll retrieves every round, newest first, with creators and entries.
func (r *RoundModel) GetAll(ctx context.Context) ([]*types.VotingRound, error) {
	var rounds []*types.VotingRound

	err := r.db.NewSelect().
		Model(&rounds).
		Relation("Creator").
		Relation("Entries").
		Relation("Entries.Application").
		Relation("Entries.Application.Applicant").
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}

	return rounds, nil
}

// GetActive retrieves the currently active round with its entries, or
// ErrRoundNotFound when no round is active.
func (r *RoundModel) GetActive(ctx context.Context) (*types.VotingRound, error) {
	round := new(types.VotingRound)

	err := r.db.NewSelect().
		Model(round).
		Relation("Entries").
		Relation("Entries.Application").
		Relation("Entries.Application.Applicant").
		Where("is_active = TRUE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrRoundNotFound
		}

		return nil, fmt.Errorf("failed to get active round: %w", err)
	}

	return round, nil
}

// GetExpiredActive returns the active round if its voting window has ended.
func (r *RoundModel) GetExpiredActive(ctx context.Context, now time.Time) (*types.VotingRound, error) {
	round := new(types.VotingRound)

	err := r.db.NewSelect().
		Model(round).
		Where("is_active = TRUE").
		Where("end_time <= ?", now).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrRoundNotFound
		}

		return nil, fmt.Errorf("failed to get expired round: %w", err)
	}

	return round, nil
}

// GetEntry retrieves one round entry with its round.
func (r *RoundModel) GetEntry(ctx context.Context, entryID string) (*types.RoundEntry, error) {
	entry := new(types.RoundEntry)

	err := r.db.NewSelect().
		Model(entry).
		Relation("Round").
		Where("round_entry.id = ?", entryID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrEntryNotFound
		}

		return nil, fmt.Errorf("failed to get round entry: %w", err)
	}

	return entry, nil
}
