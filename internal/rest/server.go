package rest

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
	"github.com/runwayhq/runway/internal/database"
	"github.com/runwayhq/runway/internal/rest/handler"
	"github.com/runwayhq/runway/internal/rest/middleware/header"
	"github.com/runwayhq/runway/internal/rest/middleware/ratelimit"
	"github.com/runwayhq/runway/internal/rest/middleware/session"
	"github.com/runwayhq/runway/internal/setup/config"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// Server implements the REST API service.
type Server struct {
	roundHandler       *handler.RoundHandler
	voteHandler        *handler.VoteHandler
	applicationHandler *handler.ApplicationHandler
	challengeHandler   *handler.ChallengeHandler
}

// NewServer creates a new REST API server.
func NewServer(db database.Client, logger *zap.Logger, config *config.API) (http.Handler, error) {
	server := &Server{
		roundHandler:       handler.NewRoundHandler(db, logger),
		voteHandler:        handler.NewVoteHandler(db, logger),
		applicationHandler: handler.NewApplicationHandler(db, logger),
		challengeHandler:   handler.NewChallengeHandler(db, logger),
	}

	headerMiddleware := header.New(logger)
	rateLimiter := ratelimit.New(&config.RateLimit, logger)
	sessionMiddleware := session.New(db.Model().User(), logger)

	router := bunrouter.New()

	router.Use(
		headerMiddleware.AsRESTMiddleware,
		rateLimiter.AsRESTMiddleware,
	).WithGroup("/v1", func(g *bunrouter.Group) {
		// Public routes
		g.GET("/challenges", server.challengeHandler.ListChallenges)
		g.GET("/challenges/:id", server.challengeHandler.GetChallenge)

		// Authenticated member routes
		g.Use(sessionMiddleware.RequireAuth).WithGroup("", func(g *bunrouter.Group) {
			g.GET("/rounds/active", server.roundHandler.GetActiveRound)
			g.PUT("/entries/:id/vote", server.voteHandler.CastVote)
			g.DELETE("/entries/:id/vote", server.voteHandler.RetractVote)
			g.GET("/entries/:id/votes", server.voteHandler.GetVoteCounts)
			g.POST("/applications", server.applicationHandler.SubmitApplication)
			g.GET("/applications/:id", server.applicationHandler.GetApplication)

			// Admin routes
			g.Use(sessionMiddleware.RequireAdmin).WithGroup("", func(g *bunrouter.Group) {
				g.POST("/rounds", server.roundHandler.CreateRound)
				g.GET("/rounds", server.roundHandler.ListRounds)
				g.POST("/rounds/:id/close", server.roundHandler.CloseRound)
				g.GET("/applications", server.applicationHandler.ListApplications)
				g.POST("/applications/:id/reject", server.applicationHandler.RejectApplication)
				g.POST("/challenges", server.challengeHandler.CreateChallenge)
			})
		})
	})

	// Add gzip compression
	return gzhttp.GzipHandler(router), nil
}
