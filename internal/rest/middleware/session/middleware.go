package session

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/runwayhq/runway/internal/database/models"
	"github.com/runwayhq/runway/internal/database/types"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

type userCtxKey struct{}

// FromContext retrieves the authenticated user stored by RequireAuth.
func FromContext(ctx context.Context) *types.User {
	if user, ok := ctx.Value(userCtxKey{}).(*types.User); ok {
		return user
	}

	return nil
}

// Middleware resolves bearer tokens to users and gates routes by role.
type Middleware struct {
	users  *models.UserModel
	logger *zap.Logger
}

// New creates a new session middleware.
func New(users *models.UserModel, logger *zap.Logger) *Middleware {
	return &Middleware{
		users:  users,
		logger: logger,
	}
}

// RequireAuth returns a bunrouter middleware that rejects requests without a
// valid session token and stores the resolved user in the request context.
func (m *Middleware) RequireAuth(next bunrouter.HandlerFunc) bunrouter.HandlerFunc {
	return func(w http.ResponseWriter, req bunrouter.Request) error {
		token := bearerToken(req.Request)
		if token == "" {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return nil
		}

		user, err := m.users.GetBySessionToken(req.Context(), token, time.Now())
		if err != nil {
			switch {
			case errors.Is(err, types.ErrSessionNotFound),
				errors.Is(err, types.ErrSessionExpired),
				errors.Is(err, types.ErrUserNotFound):
				http.Error(w, "invalid or expired session", http.StatusUnauthorized)
				return nil
			default:
				m.logger.Error("Failed to resolve session", zap.Error(err))
				http.Error(w, "Internal server error", http.StatusInternalServerError)

				return nil
			}
		}

		ctx := context.WithValue(req.Context(), userCtxKey{}, user)

		return next(w, req.WithContext(ctx))
	}
}

// RequireAdmin returns a bunrouter middleware that rejects non-admin users.
// Must run after RequireAuth.
func (m *Middleware) RequireAdmin(next bunrouter.HandlerFunc) bunrouter.HandlerFunc {
	return func(w http.ResponseWriter, req bunrouter.Request) error {
		user := FromContext(req.Context())
		if user == nil {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return nil
		}

		if !user.IsAdmin() {
			m.logger.Debug("Non-admin user attempted admin operation",
				zap.String("userID", user.ID))
			http.Error(w, "admin role required", http.StatusForbidden)

			return nil
		}

		return next(w, req)
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}

	token := strings.TrimPrefix(auth, "Bearer ")
	if token == auth {
		return ""
	}

	return strings.TrimSpace(token)
}
