package matching

import (
	"sort"

	"github.com/evcraddock/lease-rules/internal/listing"
)

// DefaultLimit caps Rank when no limit is given.
const DefaultLimit = 5

// Ranked is a scored candidate.
type Ranked struct {
	Candidate  *listing.Candidate `json:"candidate"`
	Score      Result             `json:"score"`
	Heuristics HeuristicsResult   `json:"heuristics"`
}

// Rank scores every candidate against the proposal and returns the best
// limit of them, highest first. Ties keep ID order. The proposal's own
// listing is excluded.
func Rank(proposal *listing.Proposal, candidates []*listing.Candidate, limit int, opts Options) []Ranked {
	var ownID string
	if proposal != nil && proposal.Listing != nil {
		ownID = proposal.Listing.ID
	}

	out := make([]Ranked, 0, len(candidates))
	for _, c := range candidates {
		if c == nil || (ownID != "" && c.ID == ownID) {
			continue
		}
		in := Input{Candidate: c, Proposal: proposal, Options: opts}
		out = append(out, Ranked{
			Candidate:  c,
			Score:      Score(in),
			Heuristics: Heuristics(in),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score.TotalScore != out[j].Score.TotalScore {
			return out[i].Score.TotalScore > out[j].Score.TotalScore
		}
		return out[i].Candidate.ID < out[j].Candidate.ID
	})

	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
