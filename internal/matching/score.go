// Package matching scores how well a candidate listing fits a guest's
// proposal. Scorers never fail: any dimension that cannot be evaluated
// scores 0 and the rest of the match still computes.
package matching

import (
	"math"

	"github.com/evcraddock/lease-rules/internal/listing"
	"github.com/evcraddock/lease-rules/internal/pricing"
	"github.com/evcraddock/lease-rules/internal/rules"
)

// Options tunes the predicate thresholds. A nil field uses the default, so
// an explicit 0 is honored.
type Options struct {
	DurationTolerance *int
	MinVerifications  *int
}

func (o Options) tolerance() int {
	if o.DurationTolerance != nil {
		return *o.DurationTolerance
	}
	return rules.DefaultDurationTolerance
}

func (o Options) minVerifications() int {
	if o.MinVerifications != nil {
		return *o.MinVerifications
	}
	return rules.DefaultMinVerifications
}

// Input is one candidate/proposal pairing. Host overrides the candidate's
// own host record when set.
type Input struct {
	Candidate *listing.Candidate
	Proposal  *listing.Proposal
	Host      *listing.Host
	Options   Options
}

func (in Input) host() *listing.Host {
	if in.Host != nil {
		return in.Host
	}
	if in.Candidate != nil {
		return &in.Candidate.Host
	}
	return nil
}

// Breakdown holds each dimension's points.
type Breakdown struct {
	Borough    int `json:"borough"`
	Price      int `json:"price"`
	Schedule   int `json:"schedule"`
	WeeklyStay int `json:"weekly_stay"`
	Duration   int `json:"duration"`
	Host       int `json:"host"`
	PriceDrop  int `json:"price_drop"`
}

// Total sums every dimension.
func (b Breakdown) Total() int {
	return b.Borough + b.Price + b.Schedule + b.WeeklyStay + b.Duration + b.Host + b.PriceDrop
}

// Result is a computed match score.
type Result struct {
	TotalScore       int       `json:"total_score"`
	Breakdown        Breakdown `json:"breakdown"`
	MaxPossibleScore int       `json:"max_possible_score"`
}

// Score computes every dimension and sums them.
func Score(in Input) Result {
	b := Breakdown{
		Borough:    BoroughScore(in),
		Price:      PriceScore(in),
		Schedule:   ScheduleScore(in),
		WeeklyStay: WeeklyStayScore(in),
		Duration:   DurationScore(in),
		Host:       HostScore(in),
		PriceDrop:  0,
	}
	return Result{
		TotalScore:       b.Total(),
		Breakdown:        b,
		MaxPossibleScore: MaxPossibleScore,
	}
}

// BoroughScore awards full points for the same borough and partial credit
// for an adjacent one.
func BoroughScore(in Input) int {
	if in.Candidate == nil || in.Proposal == nil {
		return 0
	}
	candidate := in.Candidate.BoroughLabel()
	proposed := in.Proposal.Listing.BoroughLabel()

	switch {
	case rules.SameBorough(candidate, proposed):
		return BoroughWeight
	case rules.IsBoroughAdjacent(candidate, proposed):
		return AdjacentBoroughScore
	}
	return 0
}

// priceProximity returns |candidate - proposal| / proposal for the proposal's
// night count, or false when it cannot be computed.
func priceProximity(in Input) (float64, bool) {
	if in.Candidate == nil || in.Proposal == nil {
		return 0, false
	}
	budget := in.Proposal.NightlyPrice
	if math.IsNaN(budget) || budget <= 0 {
		return 0, false
	}

	rate, err := pricing.NightlyRateByFrequency(in.Candidate.Pricing, in.Proposal.Nights())
	if err != nil {
		return 0, false
	}

	return math.Abs(rate-budget) / budget, true
}

// PriceScore rewards candidates whose rate is close to the guest's budget.
func PriceScore(in Input) int {
	proximity, ok := priceProximity(in)
	if !ok {
		return 0
	}
	for _, band := range priceBands {
		if proximity <= band.maxProximity {
			return band.points
		}
	}
	return 0
}

// scheduleCoverage returns the fraction of requested days the candidate has
// available.
func scheduleCoverage(in Input) float64 {
	if in.Candidate == nil || in.Proposal == nil {
		return 0
	}
	requested := rules.DistinctDays(in.Proposal.DaysSelected)
	if requested == 0 {
		return 0
	}
	overlap := rules.ScheduleOverlap(in.Candidate.DaysAvailable, in.Proposal.DaysSelected)
	return float64(len(overlap)) / float64(requested)
}

// ScheduleScore scales with how many requested days are available.
func ScheduleScore(in Input) int {
	return int(math.Round(scheduleCoverage(in) * ScheduleWeight))
}

// WeeklyStayScore rewards listings available for full-week stays.
func WeeklyStayScore(in Input) int {
	if in.Candidate == nil {
		return 0
	}
	if rules.SupportsWeeklyStays(in.Candidate.MinimumNights, in.Candidate.DaysAvailable) {
		return WeeklyStayWeight
	}
	return 0
}

// DurationScore rewards a minimum stay close to the requested night count.
func DurationScore(in Input) int {
	if in.Candidate == nil || in.Proposal == nil {
		return 0
	}
	if rules.IsDurationMatch(in.Candidate.MinimumNights, in.Proposal.Nights(), in.Options.tolerance()) {
		return DurationWeight
	}
	return 0
}

// HostScore rewards hosts with enough verifications.
func HostScore(in Input) int {
	h := in.host()
	if h == nil {
		return 0
	}
	if rules.IsHostVerified(h.Verification, in.Options.minVerifications()) {
		return HostWeight
	}
	return 0
}
