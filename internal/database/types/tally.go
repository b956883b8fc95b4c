package types

import (
	"math"
	"sort"
	"time"
)

// EntryTally carries the vote aggregates for one round entry going into the
// close computation.
type EntryTally struct {
	EntryID       string
	ApplicationID string
	ApplicantID   string
	ApplicantName string
	SubmittedAt   time.Time
	Upvotes       int
	Downvotes     int
}

// TallyResult is the decision for one entry after a round closes.
type TallyResult struct {
	EntryTally

	TotalVotes   int
	ApprovalRate float64
	Eligible     bool
	Approved     bool
}

// ComputeRoundResults turns raw vote aggregates into approval decisions.
//
// An entry is eligible only when it received at least minVotes votes; an
// entry with zero votes is never eligible. Eligible entries are ranked by
// approval rate descending, with the earlier application submission winning
// ties, and the top ceil(eligible * approvalPercentage / 100) are approved.
// Results come back in ranking order, eligible entries first.
func ComputeRoundResults(entries []EntryTally, minVotes, approvalPercentage int) []TallyResult {
	results := make([]TallyResult, 0, len(entries))

	eligibleCount := 0

	for _, entry := range entries {
		total := entry.Upvotes + entry.Downvotes

		rate := 0.0
		if total > 0 {
			rate = float64(entry.Upvotes) / float64(total)
		}

		eligible := total > 0 && total >= minVotes
		if eligible {
			eligibleCount++
		}

		results = append(results, TallyResult{
			EntryTally:   entry,
			TotalVotes:   total,
			ApprovalRate: rate,
			Eligible:     eligible,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Eligible != results[j].Eligible {
			return results[i].Eligible
		}

		if results[i].ApprovalRate != results[j].ApprovalRate {
			return results[i].ApprovalRate > results[j].ApprovalRate
		}

		return results[i].SubmittedAt.Before(results[j].SubmittedAt)
	})

	approvalCount := int(math.Ceil(float64(eligibleCount) * float64(approvalPercentage) / 100))

	for i := range results {
		if i < approvalCount && results[i].Eligible {
			results[i].Approved = true
		}
	}

	return results
}
