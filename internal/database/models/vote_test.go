package models_test

import (
	"context"
	"testing"
	"time"

	"github.com/runwayhq/runway/internal/database"
	"github.com/runwayhq/runway/internal/database/dbtest"
	"github.com/runwayhq/runway/internal/database/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedRoundWithEntry creates an active round holding one entry and returns
// the entry ID.
func seedRoundWithEntry(t *testing.T, client database.Client) string {
	t.Helper()

	ctx := context.Background()
	admin := dbtest.SeedUser(t, client, "admin", types.UserRoleAdmin)
	applicant := dbtest.SeedUser(t, client, "designer", types.UserRoleMember)
	dbtest.SeedApplication(t, client, applicant.ID, time.Now())

	round := newRound(admin.ID, types.DefaultMinVotes, types.DefaultApprovalPercentage)
	_, err := client.Model().Round().CreateWithEntries(ctx, round, 1)
	require.NoError(t, err)

	created, err := client.Model().Round().GetByID(ctx, round.ID)
	require.NoError(t, err)
	require.Len(t, created.Entries, 1)

	return created.Entries[0].ID
}

func TestVoteModel_Upsert(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := dbtest.New(t)
	entryID := seedRoundWithEntry(t, client)
	voter := dbtest.SeedUser(t, client, "voter", types.UserRoleMember)

	require.NoError(t, client.Model().Vote().Upsert(ctx, entryID, voter.ID, true))

	counts, err := client.Model().Vote().Counts(ctx, entryID)
	require.NoError(t, err)
	assert.Equal(t, types.VoteCounts{Upvotes: 1, Downvotes: 0}, counts)

	// A second vote from the same voter replaces the first.
	require.NoError(t, client.Model().Vote().Upsert(ctx, entryID, voter.ID, false))

	counts, err = client.Model().Vote().Counts(ctx, entryID)
	require.NoError(t, err)
	assert.Equal(t, types.VoteCounts{Upvotes: 0, Downvotes: 1}, counts)
	assert.Equal(t, 1, counts.Total())
}

func TestVoteModel_Delete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := dbtest.New(t)
	entryID := seedRoundWithEntry(t, client)
	voter := dbtest.SeedUser(t, client, "voter", types.UserRoleMember)

	require.NoError(t, client.Model().Vote().Upsert(ctx, entryID, voter.ID, true))
	require.NoError(t, client.Model().Vote().Delete(ctx, entryID, voter.ID))

	counts, err := client.Model().Vote().Counts(ctx, entryID)
	require.NoError(t, err)
	assert.Equal(t, 0, counts.Total())

	// Retracting a vote that does not exist is reported.
	err = client.Model().Vote().Delete(ctx, entryID, voter.ID)
	require.ErrorIs(t, err, types.ErrVoteNotFound)
}

func TestVoteModel_CountsForRound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := dbtest.New(t)
	admin := dbtest.SeedUser(t, client, "admin", types.UserRoleAdmin)

	for range 2 {
		applicant := dbtest.SeedUser(t, client, "designer", types.UserRoleMember)
		dbtest.SeedApplication(t, client, applicant.ID, time.Now())
	}

	round := newRound(admin.ID, types.DefaultMinVotes, types.DefaultApprovalPercentage)
	_, err := client.Model().Round().CreateWithEntries(ctx, round, 2)
	require.NoError(t, err)

	created, err := client.Model().Round().GetByID(ctx, round.ID)
	require.NoError(t, err)
	require.Len(t, created.Entries, 2)

	voter := dbtest.SeedUser(t, client, "voter", types.UserRoleMember)
	require.NoError(t, client.Model().Vote().Upsert(ctx, created.Entries[0].ID, voter.ID, true))

	counts, err := client.Model().Vote().CountsForRound(ctx, round.ID)
	require.NoError(t, err)

	// Only voted entries appear in the snapshot.
	require.Len(t, counts, 1)
	assert.Equal(t, types.VoteCounts{Upvotes: 1}, counts[created.Entries[0].ID])
}
