package models_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/runwayhq/runway/internal/database/dbtest"
	"github.com/runwayhq/runway/internal/database/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserModel_GetBySessionToken(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Now()

	t.Run("resolves a valid token", func(t *testing.T) {
		t.Parallel()

		client := dbtest.New(t)
		user := dbtest.SeedUser(t, client, "member", types.UserRoleMember)
		token := dbtest.SeedSession(t, client, user.ID, now.Add(time.Hour))

		got, err := client.Model().User().GetBySessionToken(ctx, token, now)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		t.Parallel()

		client := dbtest.New(t)
		user := dbtest.SeedUser(t, client, "member", types.UserRoleMember)
		token := dbtest.SeedSession(t, client, user.ID, now.Add(-time.Hour))

		_, err := client.Model().User().GetBySessionToken(ctx, token, now)
		require.ErrorIs(t, err, types.ErrSessionExpired)
	})

	t.Run("rejects an unknown token", func(t *testing.T) {
		t.Parallel()

		client := dbtest.New(t)

		_, err := client.Model().User().GetBySessionToken(ctx, uuid.New().String(), now)
		require.ErrorIs(t, err, types.ErrSessionNotFound)
	})
}
