package handler

import (
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

// ApplicationHandler handles design application REST endpoints.
type ApplicationHandler struct {
	db     database.Client
	logger *zap.Logger
}

// NewApplicationHandler creates a new application handler.
func NewApplicationHandler(db database.Client, logger *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		db:     db,
		logger: logger,
	}
}

// SubmitApplication files a new waitlist application for the caller.
func (h *ApplicationHandler) SubmitApplication(w http.ResponseWriter, req bunrouter.Request) error {
	var body restTypes.SubmitApplicationRequest
	if err := decodeBody(req.Request, &body); err != nil {
		return writeJSON(w, http.StatusBadRequest, restTypes.ErrorResponse{Error: "invalid request body"})
	}

	user := session.FromContext(req.Context())

	application, err := h.db.Service().Application().Submit(req.Context(), user.ID, service.SubmitApplicationParams{
		DesignName:        body.DesignName,
		DesignDescription: body.DesignDescription,
		DesignImageURL:    body.DesignImageURL,
	})
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return writeJSON(w, http.StatusCreated, convert.Application(application))
}

// GetApplication returns one application.
func (h *ApplicationHandler) GetApplication(w http.ResponseWriter, req bunrouter.Request) error {
	application, err := h.db.Service().Application().Get(req.Context(), req.Param("id"))
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, convert.Application(application))
}

// ListApplications returns applications newest first. The status query
// parameter optionally filters by lifecycle state.
func (h *ApplicationHandler) ListApplications(w http.ResponseWriter, req bunrouter.Request) error {
	status := types.ApplicationStatus(req.URL.Query().Get("status"))

	applications, err := h.db.Service().Application().List(req.Context(), status)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, convert.Applications(applications))
}

// RejectApplication manually rejects a pending application.
func (h *ApplicationHandler) RejectApplication(w http.ResponseWriter, req bunrouter.Request) error {
	user := session.FromContext(req.Context())

	application, err := h.db.Service().Application().Reject(req.Context(), req.Param("id"), user.ID)
	if err != nil {
		return writeError(w, h.logger, err)
	}

	return bunrouter.JSON(w, convert.Application(application))
}
