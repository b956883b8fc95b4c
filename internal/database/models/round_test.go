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

func newRound(creatorID string, minVotes, approvalPercentage int) *types.VotingRound {
	now := time.Now()

	return &types.VotingRound{
		ID:                 uuid.New().String(),
		Name:               "Test Round",
		StartTime:          now,
		EndTime:            now.Add(72 * time.Hour),
		IsActive:           true,
		MaxApplications:    types.DefaultMaxApplications,
		ApprovalPercentage: approvalPercentage,
		MinVotes:           minVotes,
		CreatedBy:          creatorID,
		CreatedAt:          now,
	}
}

func TestRoundModel_CreateWithEntries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("pulls oldest pending applications up to the cap", func(t *testing.T) {
		t.Parallel()

		client := dbtest.New(t)
		admin := dbtest.SeedUser(t, client, "admin", types.UserRoleAdmin)

		base := time.Now().Add(-time.Hour)
		apps := make([]*types.DesignApplication, 5)

		for i := range apps {
			applicant := dbtest.SeedUser(t, client, "designer", types.UserRoleMember)
			apps[i] = dbtest.SeedApplication(t, client, applicant.ID, base.Add(time.Duration(i)*time.Minute))
		}

		round := newRound(admin.ID, types.DefaultMinVotes, types.DefaultApprovalPercentage)

		pulled, err := client.Model().Round().CreateWithEntries(ctx, round, 3)
		require.NoError(t, err)
		assert.Equal(t, 3, pulled)

		got, err := client.Model().Round().GetByID(ctx, round.ID)
		require.NoError(t, err)
		require.Len(t, got.Entries, 3)

		// The three oldest applications entered voting, the rest stayed pending.
		inVoting := map[string]bool{}
		for _, entry := range got.Entries {
			inVoting[entry.ApplicationID] = true
		}

		for i, app := range apps {
			refreshed, err := client.Model().Application().GetByID(ctx, app.ID)
			require.NoError(t, err)

			if i < 3 {
				assert.True(t, inVoting[app.ID], "application %d should be in the round", i)
				assert.Equal(t, types.ApplicationStatusInVoting, refreshed.Status)
			} else {
				assert.False(t, inVoting[app.ID], "application %d should not be in the round", i)
				assert.Equal(t, types.ApplicationStatusPending, refreshed.Status)
			}
		}
	})

	t.Run("rejects a second active round", func(t *testing.T) {
		t.Parallel()

		client := dbtest.New(t)
		admin := dbtest.SeedUser(t, client, "admin", types.UserRoleAdmin)

		for range 2 {
			applicant := dbtest.SeedUser(t, client, "designer", types.UserRoleMember)
			dbtest.SeedApplication(t, client, applicant.ID, time.Now())
		}

		first := newRound(admin.ID, types.DefaultMinVotes, types.DefaultApprovalPercentage)
		_, err := client.Model().Round().CreateWithEntries(ctx, first, 1)
		require.NoError(t, err)

		second := newRound(admin.ID, types.DefaultMinVotes, types.DefaultApprovalPercentage)
		_, err = client.Model().Round().CreateWithEntries(ctx, second, 1)
		require.ErrorIs(t, err, types.ErrActiveRoundExists)

		// The failed attempt left nothing behind.
		_, err = client.Model().Round().GetByID(ctx, second.ID)
		require.ErrorIs(t, err, types.ErrRoundNotFound)
	})

	t.Run("rejects a round with no pending applications", func(t *testing.T) {
		t.Parallel()

		client := dbtest.New(t)
		admin := dbtest.SeedUser(t, client, "admin", types.UserRoleAdmin)

		round := newRound(admin.ID, types.DefaultMinVotes, types.DefaultApprovalPercentage)
		_, err := client.Model().Round().CreateWithEntries(ctx, round, 10)
		require.ErrorIs(t, err, types.ErrNoPendingApplications)

		_, err = client.Model().Round().GetByID(ctx, round.ID)
		require.ErrorIs(t, err, types.ErrRoundNotFound)
	})
}

func TestRoundModel_Close(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("tallies entries and finalizes applications", func(t *testing.T) {
		t.Parallel()

		client := dbtest.New(t)
		admin := dbtest.SeedUser(t, client, "admin", types.UserRoleAdmin)

		base := time.Now().Add(-time.Hour)
		applicants := make([]*types.User, 3)
		apps := make([]*types.DesignApplication, 3)

		for i := range apps {
			applicants[i] = dbtest.SeedUser(t, client, "designer", types.UserRoleMember)
			apps[i] = dbtest.SeedApplication(t, client, applicants[i].ID, base.Add(time.Duration(i)*time.Minute))
		}

		round := newRound(admin.ID, 2, 50)
		_, err := client.Model().Round().CreateWithEntries(ctx, round, 3)
		require.NoError(t, err)

		created, err := client.Model().Round().GetByID(ctx, round.ID)
		require.NoError(t, err)

		entryByApp := map[string]string{}
		for _, entry := range created.Entries {
			entryByApp[entry.ApplicationID] = entry.ID
		}

		// Entry 0: two upvotes. Entry 1: one up, one down. Entry 2: one
		// upvote, below the minimum of two.
		voters := make([]*types.User, 2)
		for i := range voters {
			voters[i] = dbtest.SeedUser(t, client, "voter", types.UserRoleMember)
		}

		votes := client.Model().Vote()
		require.NoError(t, votes.Upsert(ctx, entryByApp[apps[0].ID], voters[0].ID, true))
		require.NoError(t, votes.Upsert(ctx, entryByApp[apps[0].ID], voters[1].ID, true))
		require.NoError(t, votes.Upsert(ctx, entryByApp[apps[1].ID], voters[0].ID, true))
		require.NoError(t, votes.Upsert(ctx, entryByApp[apps[1].ID], voters[1].ID, false))
		require.NoError(t, votes.Upsert(ctx, entryByApp[apps[2].ID], voters[0].ID, true))

		closed, results, err := client.Model().Round().Close(ctx, round.ID, admin.ID, time.Now())
		require.NoError(t, err)
		require.Len(t, results, 3)

		// Every result identifies its application and applicant.
		applicantByApp := map[string]*types.User{}
		for i, app := range apps {
			applicantByApp[app.ID] = applicants[i]
		}

		for _, result := range results {
			assert.Equal(t, entryByApp[result.ApplicationID], result.EntryID)
			assert.Equal(t, applicantByApp[result.ApplicationID].ID, result.ApplicantID)
			assert.Equal(t, applicantByApp[result.ApplicationID].Name, result.ApplicantName)
		}

		// Two eligible entries at 50% means one approval slot, won by the
		// unanimous entry.
		assert.False(t, closed.IsActive)
		assert.Equal(t, 1, closed.ApprovedCount)
		assert.Equal(t, 5, closed.TotalVotes)

		statusByApp := map[string]types.ApplicationStatus{}

		for _, app := range apps {
			refreshed, err := client.Model().Application().GetByID(ctx, app.ID)
			require.NoError(t, err)
			statusByApp[app.ID] = refreshed.Status

			// No application may remain in voting after a close.
			assert.NotEqual(t, types.ApplicationStatusInVoting, refreshed.Status)
			assert.Equal(t, admin.ID, refreshed.ReviewedBy)
			assert.False(t, refreshed.ReviewedAt.IsZero())
		}

		assert.Equal(t, types.ApplicationStatusApproved, statusByApp[apps[0].ID])
		assert.Equal(t, types.ApplicationStatusWaitlisted, statusByApp[apps[1].ID])
		assert.Equal(t, types.ApplicationStatusWaitlisted, statusByApp[apps[2].ID])

		// The approved applicant moved off the waitlist queue.
		winner, err := client.Model().User().GetByID(ctx, applicants[0].ID)
		require.NoError(t, err)
		assert.Equal(t, types.WaitlistStatusApproved, winner.WaitlistStatus)

		// Final tallies are persisted on the entries.
		final, err := client.Model().Round().GetByID(ctx, round.ID)
		require.NoError(t, err)

		for _, entry := range final.Entries {
			switch entry.ApplicationID {
			case apps[0].ID:
				assert.Equal(t, 2, entry.Upvotes)
				assert.Equal(t, 0, entry.Downvotes)
				assert.True(t, entry.IsApproved)
			case apps[1].ID:
				assert.Equal(t, 1, entry.Upvotes)
				assert.Equal(t, 1, entry.Downvotes)
				assert.False(t, entry.IsApproved)
			case apps[2].ID:
				assert.Equal(t, 1, entry.Upvotes)
				assert.Equal(t, 0, entry.Downvotes)
				assert.False(t, entry.IsApproved)
			}
		}
	})

	t.Run("closing twice is a conflict", func(t *testing.T) {
		t.Parallel()

		client := dbtest.New(t)
		admin := dbtest.SeedUser(t, client, "admin", types.UserRoleAdmin)
		applicant := dbtest.SeedUser(t, client, "designer", types.UserRoleMember)
		dbtest.SeedApplication(t, client, applicant.ID, time.Now())

		round := newRound(admin.ID, 1, 50)
		_, err := client.Model().Round().CreateWithEntries(ctx, round, 1)
		require.NoError(t, err)

		_, _, err = client.Model().Round().Close(ctx, round.ID, admin.ID, time.Now())
		require.NoError(t, err)

		_, _, err = client.Model().Round().Close(ctx, round.ID, admin.ID, time.Now())
		require.ErrorIs(t, err, types.ErrRoundNotActive)
	})

	t.Run("unknown round", func(t *testing.T) {
		t.Parallel()

		client := dbtest.New(t)

		_, _, err := client.Model().Round().Close(ctx, uuid.New().String(), "reviewer", time.Now())
		require.ErrorIs(t, err, types.ErrRoundNotFound)
	})
}
