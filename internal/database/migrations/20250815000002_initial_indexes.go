package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		indexes := []string{
			// Backs the single-active-round invariant: the transactional
			// check in round creation handles the friendly error path, this
			// index makes the invariant hold under concurrent creators.
			`CREATE UNIQUE INDEX IF NOT EXISTS voting_rounds_single_active_idx
				ON voting_rounds (is_active) WHERE is_active`,

			// One vote per voter per entry; casting again replaces.
			`CREATE UNIQUE INDEX IF NOT EXISTS votes_entry_voter_idx
				ON votes (round_entry_id, voter_id)`,

			// FIFO pull of pending applications at round creation.
			`CREATE INDEX IF NOT EXISTS design_applications_status_submitted_idx
				ON design_applications (status, submitted_at)`,

			`CREATE INDEX IF NOT EXISTS round_entries_round_idx
				ON round_entries (round_id)`,

			`CREATE INDEX IF NOT EXISTS sessions_user_idx
				ON sessions (user_id)`,

			`CREATE INDEX IF NOT EXISTS challenges_date_idx
				ON challenges (date)`,
		}

		for _, index := range indexes {
			if _, err := db.NewRaw(index).Exec(ctx); err != nil {
				return fmt.Errorf("failed to create index: %w", err)
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		indexes := []string{
			"DROP INDEX IF EXISTS voting_rounds_single_active_idx",
			"DROP INDEX IF EXISTS votes_entry_voter_idx",
			"DROP INDEX IF EXISTS design_applications_status_submitted_idx",
			"DROP INDEX IF EXISTS round_entries_round_idx",
			"DROP INDEX IF EXISTS sessions_user_idx",
			"DROP INDEX IF EXISTS challenges_date_idx",
		}

		for _, index := range indexes {
			if _, err := db.NewRaw(index).Exec(ctx); err != nil {
				return fmt.Errorf("failed to drop index: %w", err)
			}
		}

		return nil
	})
}
