package matching

import (
	"math"

	"github.com/evcraddock/lease-rules/internal/rules"
)

// HeuristicsResult explains a match in human terms. It mirrors the score
// dimensions but never affects the score.
type HeuristicsResult struct {
	BoroughExact           bool     `json:"borough_exact"`
	BoroughAdjacent        bool     `json:"borough_adjacent"`
	PriceWithin10Percent   bool     `json:"price_within_10_percent"`
	PriceWithin20Percent   bool     `json:"price_within_20_percent"`
	PriceWithin50Percent   bool     `json:"price_within_50_percent"`
	PriceProximity         *float64 `json:"price_proximity,omitempty"`
	ScheduleOverlap        bool     `json:"schedule_overlap"`
	ScheduleOverlapPercent int      `json:"schedule_overlap_percent"`
	SupportsWeeklyStays    bool     `json:"supports_weekly_stays"`
	DurationMatch          bool     `json:"duration_match"`
	HostVerified           bool     `json:"host_verified"`
}

// Heuristics evaluates the same judgments as Score, as flags.
func Heuristics(in Input) HeuristicsResult {
	var h HeuristicsResult

	if in.Candidate != nil && in.Proposal != nil {
		candidate := in.Candidate.BoroughLabel()
		proposed := in.Proposal.Listing.BoroughLabel()
		h.BoroughExact = rules.SameBorough(candidate, proposed)
		h.BoroughAdjacent = !h.BoroughExact && rules.IsBoroughAdjacent(candidate, proposed)

		h.ScheduleOverlap = rules.HasScheduleCompatibility(in.Candidate.DaysAvailable, in.Proposal.DaysSelected)
	}

	if proximity, ok := priceProximity(in); ok {
		h.PriceProximity = &proximity
		h.PriceWithin10Percent = proximity <= 0.10
		h.PriceWithin20Percent = proximity <= 0.20
		h.PriceWithin50Percent = proximity <= 0.50
	}

	h.ScheduleOverlapPercent = int(math.Round(scheduleCoverage(in) * 100))
	h.SupportsWeeklyStays = WeeklyStayScore(in) > 0
	h.DurationMatch = DurationScore(in) > 0
	h.HostVerified = HostScore(in) > 0

	return h
}
