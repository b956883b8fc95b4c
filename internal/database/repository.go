package database

import (
	"github.com/runwayhq/runway/internal/database/models"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// Repository provides access to all database models.
type Repository struct {
	round       *models.RoundModel
	application *models.ApplicationModel
	vote        *models.VoteModel
	challenge   *models.ChallengeModel
	user        *models.UserModel
}

// NewRepository creates a new repository instance with all models.
func NewRepository(db *bun.DB, logger *zap.Logger) *Repository {
	return &Repository{
		round:       models.NewRound(db, logger),
		application: models.NewApplication(db, logger),
		vote:        models.NewVote(db, logger),
		challenge:   models.NewChallenge(db, logger),
		user:        models.NewUser(db, logger),
	}
}

// Round returns the voting round model repository.
func (r *Repository) Round() *models.RoundModel {
	return r.round
}

// Application returns the design application model repository.
func (r *Repository) Application() *models.ApplicationModel {
	return r.application
}

// Vote returns the vote model repository.
func (r *Repository) Vote() *models.VoteModel {
	return r.vote
}

// Challenge returns the challenge model repository.
func (r *Repository) Challenge() *models.ChallengeModel {
	return r.challenge
}

// User returns the user model repository.
func (r *Repository) User() *models.UserModel {
	return r.user
}
