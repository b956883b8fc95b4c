package handler

import (
	"net/http"

	"github.com/runwayhq/runway/internal/database"
	"github.com/runwayhq/runway/internal/rest/convert"
	"github.com/runwayhq/runway/internal/rest/middleware/session"
	restTypes "github.com/runwayhq/runway/internal/rest/types"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// VoteHandler handles vote REST endpoints.
type VoteHandler struct {
	db     database.Client
	logger *zap.Logger
}

// NewVoteHandler creates a new vote handler.
func NewVoteHandler(db database.Client, logger *zap.Logger) *VoteHandler {
	return &VoteHandler{
		db:     db,
		logger: logger,
	}
}

// CastVote records the caller's vote on an entry. Validation failures reject
// the request before anything is written.
func (h *VoteHandler) CastVote(w http.ResponseWriter, req bunrouter.Request) error {
	var body restTypes.CastVoteRequest
	if err := decodeBody(req.Request, &body); err != nil {
		return writeJSON(w, http.StatusBadRequest, restTypes.ErrorResponse{Error: "invalid request body"})
	}

	if !body.VoteType.Valid() {
		return writeJSON(w, http.StatusBadRequest, restTypes.ErrorResponse{
			Error: "voteType must be \"up\" or \"down\"",
		})
	}

	user := session.FromContext(req.Context())

	counts, err := h.db.Service().Vote().Cast(
		req.Context(), req.Param("id"), user.ID, body.VoteType == restTypes.VoteTypeUp,
	)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, convert.VoteCounts(counts))
}

// RetractVote removes the caller's vote from an entry.
func (h *VoteHandler) RetractVote(w http.ResponseWriter, req bunrouter.Request) error {
	user := session.FromContext(req.Context())

	counts, err := h.db.Service().Vote().Retract(req.Context(), req.Param("id"), user.ID)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, convert.VoteCounts(counts))
}

// GetVoteCounts returns the live vote snapshot for an entry.
func (h *VoteHandler) GetVoteCounts(w http.ResponseWriter, req bunrouter.Request) error {
	counts, err := h.db.Service().Vote().Counts(req.Context(), req.Param("id"))
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, convert.VoteCounts(counts))
}
