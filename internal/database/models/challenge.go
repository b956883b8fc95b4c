package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/runwayhq/runway/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ChallengeModel handles database operations for daily challenges.
type ChallengeModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewChallenge creates a new challenge model.
func NewChallenge(db *bun.DB, logger *zap.Logger) *ChallengeModel {
	return &ChallengeModel{
		db:     db,
		logger: logger.Named("db_challenge"),
	}
}

// Create persists a new challenge.
func (r *ChallengeModel) Create(ctx context.Context, challenge *types.Challenge) error {
	if _, err := r.db.NewInsert().Model(challenge).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert challenge: %w", err)
	}

	return nil
}

// GetByID retrieves one challenge.
func (r *ChallengeModel) GetByID(ctx context.Context, challengeID string) (*types.Challenge, error) {
	challenge := new(types.Challenge)

	err := r.db.NewSelect().
		Model(challenge).
		Where("id = ?", challengeID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrChallengeNotFound
		}

		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}

	return challenge, nil
}

// List retrieves challenges newest first.
func (r *ChallengeModel) List(ctx context.Context, limit int) ([]*types.Challenge, error) {
	var challenges []*types.Challenge

	query := r.db.NewSelect().
		Model(&challenges).
		Order("date DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list challenges: %w", err)
	}

	return challenges, nil
}
