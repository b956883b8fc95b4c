package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/runwayhq/runway/internal/database"
	"github.com/runwayhq/runway/internal/database/dbtest"
	"github.com/runwayhq/runway/internal/database/service"
	"github.com/runwayhq/runway/internal/database/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedActiveRound(t *testing.T, client database.Client) (string, string) {
	t.Helper()

	ctx := context.Background()
	admin := dbtest.SeedUser(t, client, "admin", types.UserRoleAdmin)
	applicant := dbtest.SeedUser(t, client, "designer", types.UserRoleMember)
	dbtest.SeedApplication(t, client, applicant.ID, time.Now())

	round, _, err := client.Service().Round().Create(ctx, service.CreateRoundParams{
		Name:             "Vote Round",
		StartImmediately: true,
	}, admin.ID)
	require.NoError(t, err)

	active, err := client.Service().Round().GetActive(ctx)
	require.NoError(t, err)
	require.Len(t, active.Round.Entries, 1)

	return round.ID, active.Round.Entries[0].ID
}

func TestVoteService_CastAndRetract(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := dbtest.New(t)
	_, entryID := seedActiveRound(t, client)
	voter := dbtest.SeedUser(t, client, "voter", types.UserRoleMember)

	counts, err := client.Service().Vote().Cast(ctx, entryID, voter.ID, true)
	require.NoError(t, err)
	assert.Equal(t, types.VoteCounts{Upvotes: 1}, counts)

	// Changing the vote replaces it rather than double counting.
	counts, err = client.Service().Vote().Cast(ctx, entryID, voter.ID, false)
	require.NoError(t, err)
	assert.Equal(t, types.VoteCounts{Downvotes: 1}, counts)

	counts, err = client.Service().Vote().Retract(ctx, entryID, voter.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, counts.Total())
}

func TestVoteService_ClosedRound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := dbtest.New(t)
	roundID, entryID := seedActiveRound(t, client)
	voter := dbtest.SeedUser(t, client, "voter", types.UserRoleMember)

	_, err := client.Service().Vote().Cast(ctx, entryID, voter.ID, true)
	require.NoError(t, err)

	_, _, err = client.Service().Round().Close(ctx, roundID, "reviewer")
	require.NoError(t, err)

	// Casting on a closed round is a conflict and writes nothing.
	_, err = client.Service().Vote().Cast(ctx, entryID, voter.ID, false)
	require.ErrorIs(t, err, types.ErrRoundNotActive)

	counts, err := client.Model().Vote().Counts(ctx, entryID)
	require.NoError(t, err)
	assert.Equal(t, types.VoteCounts{Upvotes: 1}, counts, "rejected cast must not change the ledger")

	// Retraction is blocked the same way once voting has ended.
	_, err = client.Service().Vote().Retract(ctx, entryID, voter.ID)
	require.ErrorIs(t, err, types.ErrRoundNotActive)
}

func TestVoteService_UnknownEntry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := dbtest.New(t)
	voter := dbtest.SeedUser(t, client, "voter", types.UserRoleMember)

	_, err := client.Service().Vote().Cast(ctx, "missing", voter.ID, true)
	require.ErrorIs(t, err, types.ErrEntryNotFound)
}
