package types_test

import (
	"testing"
	"time"

	"github.com/runwayhq/runway/internal/database/types"
	"github.com/stretchr/testify/assert"
)

func TestChallengePhaseAt(t *testing.T) {
	t.Parallel()

	at := func(hour, minute int) time.Time {
		return time.Date(2025, time.June, 1, hour, minute, 0, 0, time.UTC)
	}

	challenge := &types.Challenge{
		Date:               at(0, 0),
		Theme:              "Summer streetwear",
		CompetitionStart:   at(9, 0),
		SubmissionDeadline: at(20, 0),
		CompetitionEnd:     at(21, 0),
	}

	assert.Equal(t, types.ChallengePhaseScheduled, challenge.PhaseAt(at(8, 0)))
	assert.Equal(t, types.ChallengePhaseSubmitting, challenge.PhaseAt(at(10, 0)))
	assert.Equal(t, types.ChallengePhaseVoting, challenge.PhaseAt(at(20, 30)))
	assert.Equal(t, types.ChallengePhaseCompleted, challenge.PhaseAt(at(22, 0)))

	// Boundaries are inclusive on entry to the later phase.
	assert.Equal(t, types.ChallengePhaseSubmitting, challenge.PhaseAt(at(9, 0)))
	assert.Equal(t, types.ChallengePhaseVoting, challenge.PhaseAt(at(20, 0)))
	assert.Equal(t, types.ChallengePhaseCompleted, challenge.PhaseAt(at(21, 0)))
}

func TestChallengePhaseAtLegacyFallbacks(t *testing.T) {
	t.Parallel()

	// Rows created before explicit competition windows only carry a date
	// and a submission deadline.
	challenge := &types.Challenge{
		Date:               time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		SubmissionDeadline: time.Date(2025, time.June, 1, 20, 0, 0, 0, time.UTC),
	}

	before := time.Date(2025, time.May, 31, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, types.ChallengePhaseScheduled, challenge.PhaseAt(before))

	during := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, types.ChallengePhaseSubmitting, challenge.PhaseAt(during))

	// Without a competition end there is no voting-only window.
	after := time.Date(2025, time.June, 1, 20, 0, 1, 0, time.UTC)
	assert.Equal(t, types.ChallengePhaseCompleted, challenge.PhaseAt(after))
}
