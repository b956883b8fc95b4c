// Package dbtest provides an in-memory database for model and service tests.
// The same migrations run against SQLite, so the schema under test matches
// production apart from the dialect.
package dbtest

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/runwayhq/runway/internal/database"
	"github.com/runwayhq/runway/internal/database/migrations"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/migrate"
	"go.uber.org/zap"
)

// New creates a migrated in-memory database client. Each call gets its own
// database, so parallel tests never share state.
func New(t *testing.T) database.Client {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())

	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	// A single connection keeps the shared in-memory database alive and
	// serializes access, which SQLite requires for writes anyway.
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	ctx := context.Background()

	migrator := migrate.NewMigrator(db, migrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("failed to initialize migrations: %v", err)
	}

	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	client := database.NewWithDB(db, zap.NewNop())

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}
