package convert

import (
	"github.com/runwayhq/runway/internal/database/service"
	restTypes "github.com/runwayhq/runway/internal/rest/types"
)

// Challenge converts a challenge view to its REST API shape.
func Challenge(view *service.ChallengeView) restTypes.Challenge {
	return restTypes.Challenge{
		ID:                 view.ID,
		Date:               view.Date,
		Theme:              view.Theme,
		MainItem:           view.MainItem,
		SubmissionDeadline: view.SubmissionDeadline,
		CompetitionEnd:     view.CompetitionEnd,
		Phase:              string(view.Phase),
	}
}

// Challenges converts a slice of challenge views.
func Challenges(views []*service.ChallengeView) []restTypes.Challenge {
	result := make([]restTypes.Challenge, len(views))
	for i, view := range views {
		result[i] = Challenge(view)
	}

	return result
}
