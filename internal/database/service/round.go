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

// CreateRoundParams carries the admin's round configuration. Zero-valued
// fields fall back to the documented defaults.
type CreateRoundParams struct {
	Name               string
	Description        string
	DurationHours      int
	MaxApplications    int
	ApprovalPercentage int
	MinVotes           int
	StartImmediately   bool
}

// ActiveRound bundles the active round with live vote snapshots per entry.
type ActiveRound struct {
	Round  *types.VotingRound
	Counts map[string]types.VoteCounts
}

// RoundService handles voting round lifecycle business logic.
type RoundService struct {
	rounds *models.RoundModel
	votes  *models.VoteModel
	logger *zap.Logger
}

// NewRound creates a new round service.
func NewRound(rounds *models.RoundModel, votes *models.VoteModel, logger *zap.Logger) *RoundService {
	return &RoundService{
		rounds: rounds,
		votes:  votes,
		logger: logger.Named("round_service"),
	}
}

// Create starts a new voting round, pulling pending applications into it
// oldest-first. Returns the created round and the number of applications
// pulled.
func (s *RoundService) Create(
	ctx context.Context, params CreateRoundParams, creatorID string,
) (*types.VotingRound, int, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, 0, types.ErrRoundNameRequired
	}

	if params.DurationHours <= 0 {
		params.DurationHours = types.DefaultRoundDurationHours
	}

	if params.MaxApplications <= 0 {
		params.MaxApplications = types.DefaultMaxApplications
	}

	if params.ApprovalPercentage <= 0 {
		params.ApprovalPercentage = types.DefaultApprovalPercentage
	}

	if params.ApprovalPercentage > 100 {
		return nil, 0, types.ErrInvalidApprovalPercentage
	}

	if params.MinVotes <= 0 {
		params.MinVotes = types.DefaultMinVotes
	}

	now := time.Now()

	start := now
	if !params.StartImmediately {
		start = now.Add(types.ScheduledRoundStartDelay)
	}

	round := &types.VotingRound{
		ID:                 uuid.New().String(),
		Name:               strings.TrimSpace(params.Name),
		Description:        params.Description,
		StartTime:          start,
		EndTime:            start.Add(time.Duration(params.DurationHours) * time.Hour),
		IsActive:           true,
		MaxApplications:    params.MaxApplications,
		ApprovalPercentage: params.ApprovalPercentage,
		MinVotes:           params.MinVotes,
		CreatedBy:          creatorID,
		CreatedAt:          now,
	}

	pulled, err := s.rounds.CreateWithEntries(ctx, round, params.MaxApplications)
	if err != nil {
		return nil, 0, err
	}

	s.logger.Info("Voting round created",
		zap.String("roundID", round.ID),
		zap.String("name", round.Name),
		zap.Int("entries", pulled),
		zap.Time("endTime", round.EndTime))

	return round, pulled, nil
}

// Close finalizes a round: tallies every entry, approves the top slice of
// eligible applications and deactivates the round.
func (s *RoundService) Close(
	ctx context.Context, roundID, reviewerID string,
) (*types.VotingRound, []types.TallyResult, error) {
	round, results, err := s.rounds.Close(ctx, roundID, reviewerID, time.Now())
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("Voting round closed",
		zap.String("roundID", round.ID),
		zap.String("reviewerID", reviewerID),
		zap.Int("entries", len(results)),
		zap.Int("approved", round.ApprovedCount),
		zap.Int("totalVotes", round.TotalVotes))

	return round, results, nil
}

// List returns every round, newest first.
func (s *RoundService) List(ctx context.Context) ([]*types.VotingRound, error) {
	return s.rounds.GetAll(ctx)
}

// GetActive returns the active round together with live vote snapshots for
// its entries. The snapshots carry no isolation guarantee; two consecutive
// reads may legitimately differ.
func (s *RoundService) GetActive(ctx context.Context) (*ActiveRound, error) {
	round, err := s.rounds.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := s.votes.CountsForRound(ctx, round.ID)
	if err != nil {
		return nil, err
	}

	return &ActiveRound{
		Round:  round,
		Counts: counts,
	}, nil
}

// CloseExpired closes the active round if its window has ended. Returns
// ErrRoundNotFound when nothing is due.
func (s *RoundService) CloseExpired(ctx context.Context, reviewerID string) (*types.VotingRound, error) {
	round, err := s.rounds.GetExpiredActive(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	closed, _, err := s.Close(ctx, round.ID, reviewerID)
	if err != nil {
		return nil, err
	}

	return closed, nil
}
