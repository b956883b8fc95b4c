package migrations

import (
	"context"
	"fmt"

	"github.com/runwayhq/runway/internal/database/types"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		models := []any{
			(*types.User)(nil),
			(*types.Session)(nil),
			(*types.DesignApplication)(nil),
			(*types.VotingRound)(nil),
			(*types.RoundEntry)(nil),
			(*types.Vote)(nil),
			(*types.Challenge)(nil),
		}

		for _, model := range models {
			_, err := db.NewCreateTable().
				Model(model).
				IfNotExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to create table for %T: %w", model, err)
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		models := []any{
			(*types.Vote)(nil),
			(*types.RoundEntry)(nil),
			(*types.VotingRound)(nil),
			(*types.DesignApplication)(nil),
			(*types.Challenge)(nil),
			(*types.Session)(nil),
			(*types.User)(nil),
		}

		for _, model := range models {
			_, err := db.NewDropTable().
				Model(model).
				IfExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to drop table for %T: %w", model, err)
			}
		}

		return nil
	})
}
