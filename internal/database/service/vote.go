package service

import (
	"context"

	"github.com/runwayhq/runway/internal/database/models"
	"github.com/runwayhq/runway/internal/database/types"
	"go.uber.org/zap"
)

// VoteService handles vote casting business logic.
type VoteService struct {
	rounds *models.RoundModel
	votes  *models.VoteModel
	logger *zap.Logger
}

// NewVote creates a new vote service.
func NewVote(rounds *models.RoundModel, votes *models.VoteModel, logger *zap.Logger) *VoteService {
	return &VoteService{
		rounds: rounds,
		votes:  votes,
		logger: logger.Named("vote_service"),
	}
}

// Cast records a vote on a round entry. Voting on an entry whose round has
// already closed is a conflict. A second vote from the same voter replaces
// the first. Returns the updated live counts.
func (s *VoteService) Cast(
	ctx context.Context, entryID, voterID string, isUpvote bool,
) (types.VoteCounts, error) {
	if err := s.checkEntryVotable(ctx, entryID); err != nil {
		return types.VoteCounts{}, err
	}

	if err := s.votes.Upsert(ctx, entryID, voterID, isUpvote); err != nil {
		return types.VoteCounts{}, err
	}

	s.logger.Debug("Vote cast",
		zap.String("entryID", entryID),
		zap.String("voterID", voterID),
		zap.Bool("upvote", isUpvote))

	return s.votes.Counts(ctx, entryID)
}

// Retract removes a voter's vote from an entry. Returns the updated live
// counts.
func (s *VoteService) Retract(ctx context.Context, entryID, voterID string) (types.VoteCounts, error) {
	if err := s.checkEntryVotable(ctx, entryID); err != nil {
		return types.VoteCounts{}, err
	}

	if err := s.votes.Delete(ctx, entryID, voterID); err != nil {
		return types.VoteCounts{}, err
	}

	s.logger.Debug("Vote retracted",
		zap.String("entryID", entryID),
		zap.String("voterID", voterID))

	return s.votes.Counts(ctx, entryID)
}

// Counts returns the live vote snapshot for an entry.
func (s *VoteService) Counts(ctx context.Context, entryID string) (types.VoteCounts, error) {
	if _, err := s.rounds.GetEntry(ctx, entryID); err != nil {
		return types.VoteCounts{}, err
	}

	return s.votes.Counts(ctx, entryID)
}

func (s *VoteService) checkEntryVotable(ctx context.Context, entryID string) error {
	entry, err := s.rounds.GetEntry(ctx, entryID)
	if err != nil {
		return err
	}

	if entry.Round == nil || !entry.Round.IsActive {
		return types.ErrRoundNotActive
	}

	return nil
}
