package convert

import (
	"github.com/runwayhq/runway/internal/database/types"
	restTypes "github.com/runwayhq/runway/internal/rest/types"
)

// Round converts a database voting round to its REST API shape.
func Round(round *types.VotingRound) restTypes.Round {
	entries := make([]restTypes.RoundEntry, len(round.Entries))
	for i, entry := range round.Entries {
		entries[i] = RoundEntry(entry)
	}

	return restTypes.Round{
		ID:                 round.ID,
		Name:               round.Name,
		Description:        round.Description,
		StartTime:          round.StartTime,
		EndTime:            round.EndTime,
		IsActive:           round.IsActive,
		MaxApplications:    round.MaxApplications,
		ApprovalPercentage: round.ApprovalPercentage,
		MinVotes:           round.MinVotes,
		ApprovedCount:      round.ApprovedCount,
		TotalVotes:         round.TotalVotes,
		CreatedAt:          round.CreatedAt,
		Creator:            Applicant(round.Creator),
		Entries:            entries,
	}
}

// Rounds converts a slice of database rounds.
func Rounds(rounds []*types.VotingRound) []restTypes.Round {
	result := make([]restTypes.Round, len(rounds))
	for i, round := range rounds {
		result[i] = Round(round)
	}

	return result
}

// RoundEntry converts a database round entry to its REST API shape.
func RoundEntry(entry *types.RoundEntry) restTypes.RoundEntry {
	return restTypes.RoundEntry{
		ID:           entry.ID,
		Upvotes:      entry.Upvotes,
		Downvotes:    entry.Downvotes,
		TotalVotes:   entry.TotalVotes,
		ApprovalRate: entry.ApprovalRate,
		IsApproved:   entry.IsApproved,
		Application:  Application(entry.Application),
	}
}

// VoteCounts converts a live vote snapshot.
func VoteCounts(counts types.VoteCounts) restTypes.VoteCounts {
	return restTypes.VoteCounts{
		Upvotes:   counts.Upvotes,
		Downvotes: counts.Downvotes,
		Total:     counts.Total(),
	}
}

// TallyResults converts the final ranking produced by a round close.
func TallyResults(results []types.TallyResult) []restTypes.TallyResult {
	converted := make([]restTypes.TallyResult, len(results))
	for i, result := range results {
		converted[i] = restTypes.TallyResult{
			EntryID:       result.EntryID,
			ApplicationID: result.ApplicationID,
			ApplicantName: result.ApplicantName,
			Upvotes:       result.Upvotes,
			Downvotes:     result.Downvotes,
			TotalVotes:    result.TotalVotes,
			ApprovalRate:  result.ApprovalRate,
			Eligible:      result.Eligible,
			Approved:      result.Approved,
		}
	}

	return converted
}
