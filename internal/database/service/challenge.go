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

// CreateChallengeParams carries a new daily challenge definition.
type CreateChallengeParams struct {
	Date               time.Time
	Theme              string
	MainItem           string
	CompetitionStart   time.Time
	SubmissionDeadline time.Time
	CompetitionEnd     time.Time
}

// ChallengeView is a challenge together with its phase projected at read
// time.
type ChallengeView struct {
	*types.Challenge
	Phase types.ChallengePhase `json:"phase"`
}

// ChallengeService handles daily challenge business logic.
type ChallengeService struct {
	challenges *models.ChallengeModel
	logger     *zap.Logger
}

// NewChallenge creates a new challenge service.
func NewChallenge(challenges *models.ChallengeModel, logger *zap.Logger) *ChallengeService {
	return &ChallengeService{
		challenges: challenges,
		logger:     logger.Named("challenge_service"),
	}
}

// Create persists a new daily challenge.
func (s *ChallengeService) Create(ctx context.Context, params CreateChallengeParams) (*types.Challenge, error) {
	if strings.TrimSpace(params.Theme) == "" {
		return nil, types.ErrChallengeThemeRequired
	}

	if params.SubmissionDeadline.IsZero() {
		return nil, types.ErrChallengeDeadlineRequired
	}

	challenge := &types.Challenge{
		ID:                 uuid.New().String(),
		Date:               params.Date,
		Theme:              strings.TrimSpace(params.Theme),
		MainItem:           params.MainItem,
		CompetitionStart:   params.CompetitionStart,
		SubmissionDeadline: params.SubmissionDeadline,
		CompetitionEnd:     params.CompetitionEnd,
		CreatedAt:          time.Now(),
	}

	if err := s.challenges.Create(ctx, challenge); err != nil {
		return nil, err
	}

	s.logger.Info("Challenge created",
		zap.String("challengeID", challenge.ID),
		zap.String("theme", challenge.Theme))

	return challenge, nil
}

// Get retrieves one challenge with its current phase.
func (s *ChallengeService) Get(ctx context.Context, challengeID string) (*ChallengeView, error) {
	challenge, err := s.challenges.GetByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	return &ChallengeView{
		Challenge: challenge,
		Phase:     challenge.PhaseAt(time.Now()),
	}, nil
}

// List retrieves challenges newest first with their current phases.
func (s *ChallengeService) List(ctx context.Context, limit int) ([]*ChallengeView, error) {
	challenges, err := s.challenges.List(ctx, limit)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	views := make([]*ChallengeView, len(challenges))

	for i, challenge := range challenges {
		views[i] = &ChallengeView{
			Challenge: challenge,
			Phase:     challenge.PhaseAt(now),
		}
	}

	return views, nil
}
