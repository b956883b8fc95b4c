package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/runwayhq/runway/internal/database/dbtest"
	"github.com/runwayhq/runway/internal/database/service"
	"github.com/runwayhq/runway/internal/database/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundService_Create(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("applies defaults", func(t *testing.T) {
		t.Parallel()

		client := dbtest.New(t)
		admin := dbtest.SeedUser(t, client, "admin", types.UserRoleAdmin)
		applicant := dbtest.SeedUser(t, client, "designer", types.UserRoleMember)
		dbtest.SeedApplication(t, client, applicant.ID, time.Now())

		round, pulled, err := client.Service().Round().Create(ctx, service.CreateRoundParams{
			Name:             "Spring Drop",
			StartImmediately: true,
		}, admin.ID)
		require.NoError(t, err)

		assert.Equal(t, 1, pulled)
		assert.True(t, round.IsActive)
		assert.Equal(t, types.DefaultMaxApplications, round.MaxApplications)
		assert.Equal(t, types.DefaultApprovalPercentage, round.ApprovalPercentage)
		assert.Equal(t, types.DefaultMinVotes, round.MinVotes)
		assert.Equal(t,
			time.Duration(types.DefaultRoundDurationHours)*time.Hour,
			round.EndTime.Sub(round.StartTime))
	})

	t.Run("scheduled start is delayed", func(t *testing.T) {
		t.Parallel()

		client := dbtest.New(t)
		admin := dbtest.SeedUser(t, client, "admin", types.UserRoleAdmin)
		applicant := dbtest.SeedUser(t, client, "designer", types.UserRoleMember)
		dbtest.SeedApplication(t, client, applicant.ID, time.Now())

		round, _, err := client.Service().Round().Create(ctx, service.CreateRoundParams{
			Name: "Scheduled Drop",
		}, admin.ID)
		require.NoError(t, err)

		assert.True(t, round.StartTime.After(round.CreatedAt),
			"scheduled round should start after creation")
	})

	t.Run("rejects an approval percentage above 100", func(t *testing.T) {
		t.Parallel()

		client := dbtest.New(t)
		admin := dbtest.SeedUser(t, client, "admin", types.UserRoleAdmin)
		applicant := dbtest.SeedUser(t, client, "designer", types.UserRoleMember)
		dbtest.SeedApplication(t, client, applicant.ID, time.Now())

		_, _, err := client.Service().Round().Create(ctx, service.CreateRoundParams{
			Name:               "Overdrive",
			ApprovalPercentage: 101,
			StartImmediately:   true,
		}, admin.ID)
		require.ErrorIs(t, err, types.ErrInvalidApprovalPercentage)

		_, err = client.Service().Round().GetActive(ctx)
		require.ErrorIs(t, err, types.ErrRoundNotFound)
	})

	t.Run("name is required and nothing is written", func(t *testing.T) {
		t.Parallel()

		client := dbtest.New(t)
		admin := dbtest.SeedUser(t, client, "admin", types.UserRoleAdmin)
		applicant := dbtest.SeedUser(t, client, "designer", types.UserRoleMember)
		app := dbtest.SeedApplication(t, client, applicant.ID, time.Now())

		_, _, err := client.Service().Round().Create(ctx, service.CreateRoundParams{
			Name: "   ",
		}, admin.ID)
		require.ErrorIs(t, err, types.ErrRoundNameRequired)

		// The rejected request touched nothing.
		refreshed, err := client.Model().Application().GetByID(ctx, app.ID)
		require.NoError(t, err)
		assert.Equal(t, types.ApplicationStatusPending, refreshed.Status)

		_, err = client.Service().Round().GetActive(ctx)
		require.ErrorIs(t, err, types.ErrRoundNotFound)
	})
}

func TestRoundService_GetActive(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := dbtest.New(t)
	admin := dbtest.SeedUser(t, client, "admin", types.UserRoleAdmin)
	applicant := dbtest.SeedUser(t, client, "designer", types.UserRoleMember)
	dbtest.SeedApplication(t, client, applicant.ID, time.Now())

	_, _, err := client.Service().Round().Create(ctx, service.CreateRoundParams{
		Name:             "Live Round",
		StartImmediately: true,
	}, admin.ID)
	require.NoError(t, err)

	active, err := client.Service().Round().GetActive(ctx)
	require.NoError(t, err)
	require.Len(t, active.Round.Entries, 1)

	entryID := active.Round.Entries[0].ID

	voter := dbtest.SeedUser(t, client, "voter", types.UserRoleMember)
	_, err = client.Service().Vote().Cast(ctx, entryID, voter.ID, true)
	require.NoError(t, err)

	active, err = client.Service().Round().GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.VoteCounts{Upvotes: 1}, active.Counts[entryID])
}

func TestRoundService_CloseExpired(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("closes a round past its end time", func(t *testing.T) {
		t.Parallel()

		client := dbtest.New(t)
		admin := dbtest.SeedUser(t, client, "admin", types.UserRoleAdmin)
		applicant := dbtest.SeedUser(t, client, "designer", types.UserRoleMember)
		dbtest.SeedApplication(t, client, applicant.ID, time.Now())

		round, _, err := client.Service().Round().Create(ctx, service.CreateRoundParams{
			Name:             "Expired Round",
			StartImmediately: true,
		}, admin.ID)
		require.NoError(t, err)

		// Push the window into the past.
		_, err = client.DB().NewUpdate().
			Model((*types.VotingRound)(nil)).
			Set("end_time = ?", time.Now().Add(-time.Minute)).
			Where("id = ?", round.ID).
			Exec(ctx)
		require.NoError(t, err)

		closed, err := client.Service().Round().CloseExpired(ctx, "system")
		require.NoError(t, err)
		assert.Equal(t, round.ID, closed.ID)
		assert.False(t, closed.IsActive)
	})

	t.Run("nothing due", func(t *testing.T) {
		t.Parallel()

		client := dbtest.New(t)

		_, err := client.Service().Round().CloseExpired(ctx, "system")
		require.ErrorIs(t, err, types.ErrRoundNotFound)
	})
}
