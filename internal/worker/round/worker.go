package round

import (
	"context"
	"errors"
	"time"

	"github.com/runwayhq/runway/internal/database"
	"github.com/runwayhq/runway/internal/database/types"
	"github.com/runwayhq/runway/internal/setup"
	"github.com/runwayhq/runway/internal/worker/core"
	"go.uber.org/zap"
)

// Worker closes voting rounds whose window has ended. It polls on a fixed
// interval so a crashed worker only delays a close, never loses it.
type Worker struct {
	db         database.Client
	reporter   *core.StatusReporter
	interval   time.Duration
	reviewerID string
	logger     *zap.Logger
}

// New creates a new round expiry worker.
func New(app *setup.App, logger *zap.Logger) *Worker {
	reporter := core.NewStatusReporter(app.StatusClient, "round", logger)

	interval := time.Duration(app.Config.Worker.Interval) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}

	return &Worker{
		db:         app.DB,
		reporter:   reporter,
		interval:   interval,
		reviewerID: app.Config.Worker.SystemReviewerID,
		logger:     logger,
	}
}

// Start begins the round worker's main loop. Blocks until the context is
// cancelled.
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Round Worker started",
		zap.String("workerID", w.reporter.GetWorkerID()),
		zap.Duration("interval", w.interval))

	w.reporter.Start(ctx)
	defer w.reporter.Stop()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Round Worker stopped")
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

// tick closes the active round if it has expired. Closing every expired
// round takes at most one pass because only one round can be active.
func (w *Worker) tick(ctx context.Context) {
	w.reporter.UpdateStatus("Checking for expired rounds")

	closed, err := w.db.Service().Round().CloseExpired(ctx, w.reviewerID)
	if err != nil {
		if errors.Is(err, types.ErrRoundNotFound) {
			w.reporter.SetHealthy(true)
			return
		}

		// Another closer may have won the conditional update.
		if errors.Is(err, types.ErrRoundNotActive) {
			w.logger.Debug("Round already closed by another process")
			w.reporter.SetHealthy(true)

			return
		}

		w.logger.Error("Failed to close expired round", zap.Error(err))
		w.reporter.SetHealthy(false)

		return
	}

	w.reporter.SetHealthy(true)
	w.logger.Info("Closed expired voting round",
		zap.String("roundID", closed.ID),
		zap.Int("approved", closed.ApprovedCount),
		zap.Int("totalVotes", closed.TotalVotes))
}
