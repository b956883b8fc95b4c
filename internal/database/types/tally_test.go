package types_test

import (
	"testing"
	"time"

	"github.com/runwayhq/runway/internal/database/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 12, 0, 0, 0, time.UTC)
}

func TestComputeRoundResults(t *testing.T) {
	t.Parallel()

	t.Run("minimum vote floor filters low-turnout entries", func(t *testing.T) {
		t.Parallel()

		entries := []types.EntryTally{
			{EntryID: "e1", SubmittedAt: day(1), Upvotes: 5, Downvotes: 1},
			{EntryID: "e2", SubmittedAt: day(2), Upvotes: 4, Downvotes: 0},
			{EntryID: "e3", SubmittedAt: day(3), Upvotes: 3, Downvotes: 7},
		}

		results := types.ComputeRoundResults(entries, 5, 50)
		require.Len(t, results, 3)

		// e2 has a perfect rate but only 4 votes, below the floor of 5.
		// Eligible: e1 (0.833), e3 (0.3). ceil(2*0.5) = 1 approval.
		assert.Equal(t, "e1", results[0].EntryID)
		assert.True(t, results[0].Approved)
		assert.InDelta(t, 5.0/6.0, results[0].ApprovalRate, 1e-9)

		assert.Equal(t, "e3", results[1].EntryID)
		assert.True(t, results[1].Eligible)
		assert.False(t, results[1].Approved)

		assert.Equal(t, "e2", results[2].EntryID)
		assert.False(t, results[2].Eligible)
		assert.False(t, results[2].Approved)
	})

	t.Run("approval count uses ceiling", func(t *testing.T) {
		t.Parallel()

		entries := make([]types.EntryTally, 7)
		for i := range entries {
			entries[i] = types.EntryTally{
				EntryID:     string(rune('a' + i)),
				SubmittedAt: day(i + 1),
				Upvotes:     7 - i,
				Downvotes:   i,
			}
		}

		// 7 eligible at 30% -> ceil(2.1) = 3 approved.
		results := types.ComputeRoundResults(entries, 1, 30)

		approved := 0
		for _, r := range results {
			if r.Approved {
				approved++
			}
		}

		assert.Equal(t, 3, approved)
	})

	t.Run("zero votes never eligible", func(t *testing.T) {
		t.Parallel()

		entries := []types.EntryTally{
			{EntryID: "e1", SubmittedAt: day(1)},
		}

		// Even with no floor and a 100% approval target, a voteless entry
		// has rate 0 and stays out of consideration.
		results := types.ComputeRoundResults(entries, 0, 100)
		require.Len(t, results, 1)
		assert.Zero(t, results[0].ApprovalRate)
		assert.False(t, results[0].Eligible)
		assert.False(t, results[0].Approved)
	})

	t.Run("equal rates break ties by earlier submission", func(t *testing.T) {
		t.Parallel()

		entries := []types.EntryTally{
			{EntryID: "late", SubmittedAt: day(9), Upvotes: 3, Downvotes: 3},
			{EntryID: "early", SubmittedAt: day(1), Upvotes: 4, Downvotes: 4},
		}

		results := types.ComputeRoundResults(entries, 1, 50)
		require.Len(t, results, 2)
		assert.Equal(t, "early", results[0].EntryID)
		assert.True(t, results[0].Approved)
		assert.False(t, results[1].Approved)
	})

	t.Run("no entries", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, types.ComputeRoundResults(nil, 5, 30))
	})
}
