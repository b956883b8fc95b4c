package handler

import (
	"net/http"
	"strconv"

	"github.com/runwayhq/runway/internal/database"
	"github.com/runwayhq/runway/internal/database/service"
	"github.com/runwayhq/runway/internal/rest/convert"
	restTypes "github.com/runwayhq/runway/internal/rest/types"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// ChallengeHandler handles daily challenge REST endpoints.
type ChallengeHandler struct {
	db     database.Client
	logger *zap.Logger
}

// NewChallengeHandler creates a new challenge handler.
func NewChallengeHandler(db database.Client, logger *zap.Logger) *ChallengeHandler {
	return &ChallengeHandler{
		db:     db,
		logger: logger,
	}
}

// CreateChallenge defines a new daily challenge.
func (h *ChallengeHandler) CreateChallenge(w http.ResponseWriter, req bunrouter.Request) error {
	var body restTypes.CreateChallengeRequest
	if err := decodeBody(req.Request, &body); err != nil {
		return writeJSON(w, http.StatusBadRequest, restTypes.ErrorResponse{Error: "invalid request body"})
	}

	challenge, err := h.db.Service().Challenge().Create(req.Context(), service.CreateChallengeParams{
		Date:               body.Date,
		Theme:              body.Theme,
		MainItem:           body.MainItem,
		CompetitionStart:   body.CompetitionStart,
		SubmissionDeadline: body.SubmissionDeadline,
		CompetitionEnd:     body.CompetitionEnd,
	})
	if err != nil {
		return writeError(w, h.logger, err)
	}

	view := &service.ChallengeView{Challenge: challenge, Phase: challenge.PhaseAt(challenge.CreatedAt)}

	return writeJSON(w, http.StatusCreated, convert.Challenge(view))
}

// GetChallenge returns one challenge with its current phase.
func (h *ChallengeHandler) GetChallenge(w http.ResponseWriter, req bunrouter.Request) error {
	view, err := h.db.Service().Challenge().Get(req.Context(), req.Param("id"))
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, convert.Challenge(view))
}

// ListChallenges returns challenges newest first with their current phases.
// The limit query parameter caps the result size.
func (h *ChallengeHandler) ListChallenges(w http.ResponseWriter, req bunrouter.Request) error {
	limit := 0
	if raw := req.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return writeJSON(w, http.StatusBadRequest, restTypes.ErrorResponse{Error: "invalid limit"})
		}

		limit = parsed
	}

	views, err := h.db.Service().Challenge().List(req.Context(), limit)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, convert.Challenges(views))
}
