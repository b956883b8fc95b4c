package handler

import (
	"errors"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/runwayhq/runway/internal/database/types"
	restTypes "github.com/runwayhq/runway/internal/rest/types"
	"go.uber.org/zap"
)

// writeJSON sends a JSON body with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	return sonic.ConfigDefault.NewEncoder(w).Encode(v)
}

// writeError sends the error envelope for a domain error, mapping known
// sentinel errors to their status codes. Unknown errors are logged and
// reported as 500s without leaking details.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) error {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", zap.Error(err))

		return writeJSON(w, status, restTypes.ErrorResponse{Error: "internal server error"})
	}

	return writeJSON(w, status, restTypes.ErrorResponse{Error: err.Error()})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, types.ErrRoundNameRequired),
		errors.Is(err, types.ErrInvalidApprovalPercentage),
		errors.Is(err, types.ErrDesignNameRequired),
		errors.Is(err, types.ErrChallengeThemeRequired),
		errors.Is(err, types.ErrChallengeDeadlineRequired):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrRoundNotFound),
		errors.Is(err, types.ErrEntryNotFound),
		errors.Is(err, types.ErrApplicationNotFound),
		errors.Is(err, types.ErrChallengeNotFound),
		errors.Is(err, types.ErrVoteNotFound),
		errors.Is(err, types.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrRoundNotActive),
		errors.Is(err, types.ErrActiveRoundExists),
		errors.Is(err, types.ErrOpenApplicationExists),
		errors.Is(err, types.ErrNoPendingApplications),
		errors.Is(err, types.ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody parses a JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()

	return sonic.ConfigDefault.NewDecoder(r.Body).Decode(dst)
}
