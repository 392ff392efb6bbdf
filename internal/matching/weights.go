package matching

// Maximum points per dimension.
const (
	BoroughWeight    = 25
	PriceWeight      = 20
	ScheduleWeight   = 20
	WeeklyStayWeight = 15
	DurationWeight   = 10
	HostWeight       = 5

	// PriceDropWeight is reserved; no price history is available, so the
	// dimension always contributes 0.
	PriceDropWeight = 0

	// AdjacentBoroughScore is the partial credit for a neighboring borough.
	AdjacentBoroughScore = 15

	// MaxPossibleScore is the sum of every dimension's maximum.
	MaxPossibleScore = BoroughWeight + PriceWeight + ScheduleWeight +
		WeeklyStayWeight + DurationWeight + HostWeight + PriceDropWeight
)

// priceBand awards points when the relative price difference is at most
// maxProximity.
type priceBand struct {
	maxProximity float64
	points       int
}

// priceBands are checked in order; the first band that fits wins.
var priceBands = []priceBand{
	{0.10, 20},
	{0.20, 15},
	{0.30, 10},
	{0.50, 5},
}
