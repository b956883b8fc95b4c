package database

import (
	"github.com/runwayhq/runway/internal/database/service"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// Service provides access to all business logic services.
type Service struct {
	round       *service.RoundService
	vote        *service.VoteService
	application *service.ApplicationService
	challenge   *service.ChallengeService
}

// NewService creates a new service instance with all services.
func NewService(db *bun.DB, repository *Repository, logger *zap.Logger) *Service {
	roundModel := repository.Round()
	voteModel := repository.Vote()
	applicationModel := repository.Application()
	challengeModel := repository.Challenge()

	return &Service{
		round:       service.NewRound(roundModel, voteModel, logger),
		vote:        service.NewVote(roundModel, voteModel, logger),
		application: service.NewApplication(applicationModel, logger),
		challenge:   service.NewChallenge(challengeModel, logger),
	}
}

// Round returns the voting round service.
func (s *Service) Round() *service.RoundService {
	return s.round
}

// Vote returns the vote service.
func (s *Service) Vote() *service.VoteService {
	return s.vote
}

// Application returns the design application service.
func (s *Service) Application() *service.ApplicationService {
	return s.application
}

// Challenge returns the challenge service.
func (s *Service) Challenge() *service.ChallengeService {
	return s.challenge
}
