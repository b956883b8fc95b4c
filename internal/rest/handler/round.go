package handler

import (
	"errors"
	"net/http"

	"github.com/runwayhq/runway/internal/database"
	"github.com/runwayhq/runway/internal/database/service"
	"github.com/runwayhq/runway/internal/database/types"
	"github.com/runwayhq/runway/internal/rest/convert"
	"github.com/runwayhq/runway/internal/rest/middleware/session"
	restTypes "github.com/runwayhq/runway/internal/rest/types"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// RoundHandler handles voting round REST endpoints.
type RoundHandler struct {
	db     database.Client
	logger *zap.Logger
}

// NewRoundHandler creates a new round handler.
func NewRoundHandler(db database.Client, logger *zap.Logger) *RoundHandler {
	return &RoundHandler{
		db:     db,
		logger: logger,
	}
}

// CreateRound starts a new voting round from the oldest pending applications.
func (h *RoundHandler) CreateRound(w http.ResponseWriter, req bunrouter.Request) error {
	var body restTypes.CreateRoundRequest
	if err := decodeBody(req.Request, &body); err != nil {
		return writeJSON(w, http.StatusBadRequest, restTypes.ErrorResponse{Error: "invalid request body"})
	}

	user := session.FromContext(req.Context())

	round, pulled, err := h.db.Service().Round().Create(req.Context(), service.CreateRoundParams{
		Name:               body.Name,
		Description:        body.Description,
		DurationHours:      body.DurationHours,
		MaxApplications:    body.MaxApplications,
		ApprovalPercentage: body.ApprovalPercentage,
		MinVotes:           body.MinVotes,
		StartImmediately:   body.StartImmediately,
	}, user.ID)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return writeJSON(w, http.StatusCreated, restTypes.CreateRoundResponse{
		Round:  convert.Round(round),
		Pulled: pulled,
	})
}

// ListRounds returns every round, newest first.
func (h *RoundHandler) ListRounds(w http.ResponseWriter, req bunrouter.Request) error {
	rounds, err := h.db.Service().Round().List(req.Context())
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, convert.Rounds(rounds))
}

// CloseRound finalizes a round and returns the final ranking.
func (h *RoundHandler) CloseRound(w http.ResponseWriter, req bunrouter.Request) error {
	user := session.FromContext(req.Context())

	round, results, err := h.db.Service().Round().Close(req.Context(), req.Param("id"), user.ID)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, restTypes.CloseRoundResponse{
		Round:   convert.Round(round),
		Results: convert.TallyResults(results),
	})
}

// GetActiveRound returns the running round with live per-entry vote counts.
func (h *RoundHandler) GetActiveRound(w http.ResponseWriter, req bunrouter.Request) error {
	active, err := h.db.Service().Round().GetActive(req.Context())
	if err != nil {
		if errors.Is(err, types.ErrRoundNotFound) {
			return writeJSON(w, http.StatusNotFound, restTypes.ErrorResponse{Error: "no active round"})
		}

		return writeError(w, h.logger, err)
	}

	counts := make(map[string]restTypes.VoteCounts, len(active.Counts))
	for entryID, c := range active.Counts {
		counts[entryID] = convert.VoteCounts(c)
	}

	return bunrouter.JSON(w, restTypes.ActiveRoundResponse{
		Round:  convert.Round(active.Round),
		Counts: counts,
	})
}
