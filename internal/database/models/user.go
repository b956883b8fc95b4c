package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/runwayhq/runway/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// UserModel handles database operations for users and their sessions.
type UserModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewUser creates a new user model.
func NewUser(db *bun.DB, logger *zap.Logger) *UserModel {
	return &UserModel{
		db:     db,
		logger: logger.Named("db_user"),
	}
}

// Create persists a new user.
func (r *UserModel) Create(ctx context.Context, user *types.User) error {
	if _, err := r.db.NewInsert().Model(user).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetByID retrieves one user.
func (r *UserModel) GetByID(ctx context.Context, userID string) (*types.User, error) {
	user := new(types.User)

	err := r.db.NewSelect().
		Model(user).
		Where("id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrUserNotFound
		}

		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// CreateSession persists a new session token for a user.
func (r *UserModel) CreateSession(ctx context.Context, session *types.Session) error {
	if _, err := r.db.NewInsert().Model(session).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	return nil
}

// GetBySessionToken resolves a bearer token to its user, enforcing session
// expiry at read time.
func (r *UserModel) GetBySessionToken(ctx context.Context, token string, now time.Time) (*types.User, error) {
	session := new(types.Session)

	err := r.db.NewSelect().
		Model(session).
		Relation("User").
		Where("session.token = ?", token).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrSessionNotFound
		}

		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if now.After(session.ExpiresAt) {
		return nil, types.ErrSessionExpired
	}

	if session.User == nil {
		return nil, types.ErrUserNotFound
	}

	return session.User, nil
}
