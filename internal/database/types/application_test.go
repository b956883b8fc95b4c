package types_test

import (
	"testing"
	"time"

	"github.com/runwayhq/runway/internal/database/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationStatusTransitions(t *testing.T) {
	t.Parallel()

	allowed := map[types.ApplicationStatus][]types.ApplicationStatus{
		types.ApplicationStatusPending:    {types.ApplicationStatusInVoting, types.ApplicationStatusRejected},
		types.ApplicationStatusInVoting:   {types.ApplicationStatusApproved, types.ApplicationStatusWaitlisted},
		types.ApplicationStatusApproved:   {},
		types.ApplicationStatusWaitlisted: {},
		types.ApplicationStatusRejected:   {},
	}

	statuses := []types.ApplicationStatus{
		types.ApplicationStatusPending,
		types.ApplicationStatusInVoting,
		types.ApplicationStatusApproved,
		types.ApplicationStatusWaitlisted,
		types.ApplicationStatusRejected,
	}

	for from, targets := range allowed {
		legal := make(map[types.ApplicationStatus]bool, len(targets))
		for _, to := range targets {
			legal[to] = true
		}

		for _, to := range statuses {
			assert.Equal(t, legal[to], from.CanTransition(to), "%s -> %s", from, to)
		}
	}
}

func TestApplicationTransition(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.April, 2, 10, 0, 0, 0, time.UTC)

	t.Run("entering voting leaves review metadata empty", func(t *testing.T) {
		t.Parallel()

		app := &types.DesignApplication{Status: types.ApplicationStatusPending}
		require.NoError(t, app.Transition(types.ApplicationStatusInVoting, "admin-1", now))
		assert.Equal(t, types.ApplicationStatusInVoting, app.Status)
		assert.True(t, app.ReviewedAt.IsZero())
		assert.Empty(t, app.ReviewedBy)
	})

	t.Run("closing a round stamps the reviewer", func(t *testing.T) {
		t.Parallel()

		app := &types.DesignApplication{Status: types.ApplicationStatusInVoting}
		require.NoError(t, app.Transition(types.ApplicationStatusApproved, "admin-1", now))
		assert.Equal(t, now, app.ReviewedAt)
		assert.Equal(t, "admin-1", app.ReviewedBy)
	})

	t.Run("illegal transition fails without mutating", func(t *testing.T) {
		t.Parallel()

		app := &types.DesignApplication{Status: types.ApplicationStatusApproved}
		err := app.Transition(types.ApplicationStatusPending, "admin-1", now)
		require.ErrorIs(t, err, types.ErrInvalidTransition)
		assert.Equal(t, types.ApplicationStatusApproved, app.Status)
	})
}
