package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/runwayhq/runway/internal/database/dbretry"
	"github.com/runwayhq/runway/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ApplicationModel handles database operations for waitlist design applications.
type ApplicationModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewApplication creates a new application model.
func NewApplication(db *bun.DB, logger *zap.Logger) *ApplicationModel {
	return &ApplicationModel{
		db:     db,
		logger: logger.Named("db_application"),
	}
}

// Create persists a new pending application and moves the applicant onto the
// waitlist in one transaction. A user with an application still awaiting a
// decision cannot submit another.
func (r *ApplicationModel) Create(ctx context.Context, application *types.DesignApplication) error {
	return dbretry.Transaction(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		open, err := tx.NewSelect().
			Model((*types.DesignApplication)(nil)).
			Where("applicant_id = ?", application.ApplicantID).
			Where("status IN (?)", bun.In([]types.ApplicationStatus{
				types.ApplicationStatusPending,
				types.ApplicationStatusInVoting,
			})).
			Exists(ctx)
		if err != nil {
			return fmt.Errorf("failed to check for open applications: %w", err)
		}

		if open {
			return types.ErrOpenApplicationExists
		}

		if _, err := tx.NewInsert().Model(application).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert application: %w", err)
		}

		_, err = tx.NewUpdate().
			Model((*types.User)(nil)).
			Set("waitlist_status = ?", types.WaitlistStatusPending).
			Where("id = ?", application.ApplicantID).
			Where("waitlist_status = ?", types.WaitlistStatusNone).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to update applicant waitlist status: %w", err)
		}

		return nil
	})
}

// GetByID retrieves one application with its applicant.
func (r *ApplicationModel) GetByID(ctx context.Context, applicationID string) (*types.DesignApplication, error) {
	application := new(types.DesignApplication)

	err := r.db.NewSelect().
		Model(application).
		Relation("Applicant").
		Where("design_application.id = ?", applicationID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrApplicationNotFound
		}

		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	return application, nil
}

// List retrieves applications newest first, optionally filtered by status.
func (r *ApplicationModel) List(ctx context.Context, status types.ApplicationStatus) ([]*types.DesignApplication, error) {
	var applications []*types.DesignApplication

	query := r.db.NewSelect().
		Model(&applications).
		Relation("Applicant").
		Order("submitted_at DESC")

	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	return applications, nil
}

// Reject moves a pending application to rejected, the manual review path
// that never goes through a voting round.
func (r *ApplicationModel) Reject(
	ctx context.Context, applicationID, reviewerID string, now time.Time,
) (*types.DesignApplication, error) {
	application := new(types.DesignApplication)

	err := dbretry.Transaction(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().
			Model(application).
			Where("id = ?", applicationID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return types.ErrApplicationNotFound
			}

			return fmt.Errorf("failed to load application: %w", err)
		}

		if err := application.Transition(types.ApplicationStatusRejected, reviewerID, now); err != nil {
			return err
		}

		_, err = tx.NewUpdate().
			Model(application).
			Column("status", "reviewed_at", "reviewed_by").
			WherePK().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to reject application: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("Rejected application",
		zap.String("applicationID", applicationID),
		zap.String("reviewerID", reviewerID))

	return application, nil
}
