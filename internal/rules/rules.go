// Package rules holds the boolean predicates the matching engine scores on.
package rules

import (
	"math"
	"strings"
)

const (
	// DefaultDurationTolerance is how many nights a listing's minimum may
	// differ from the requested night count and still match.
	DefaultDurationTolerance = 1

	// DefaultMinVerifications is the verification count a host needs to be
	// considered verified.
	DefaultMinVerifications = 2

	// FullWeek is the number of available days a listing needs to support
	// weekly stays.
	FullWeek = 7
)

// Borough names, normalized.
const (
	Manhattan    = "manhattan"
	Brooklyn     = "brooklyn"
	Queens       = "queens"
	Bronx        = "bronx"
	StatenIsland = "staten island"
)

// adjacency is symmetric; Manhattan–Staten Island, Bronx–Brooklyn,
// Bronx–Staten Island, and Queens–Staten Island are not neighbors.
var adjacency = map[string][]string{
	Manhattan:    {Brooklyn, Queens, Bronx},
	Brooklyn:     {Manhattan, Queens, StatenIsland},
	Queens:       {Manhattan, Brooklyn, Bronx},
	Bronx:        {Manhattan, Queens},
	StatenIsland: {Brooklyn},
}

// NormalizeBorough trims and lower-cases a borough name.
func NormalizeBorough(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// SameBorough reports whether a and b name the same non-empty borough.
func SameBorough(a, b string) bool {
	a, b = NormalizeBorough(a), NormalizeBorough(b)
	return a != "" && a == b
}

// IsBoroughAdjacent reports whether a and b are neighboring boroughs.
// Unknown names are never adjacent.
func IsBoroughAdjacent(a, b string) bool {
	a, b = NormalizeBorough(a), NormalizeBorough(b)
	for _, n := range adjacency[a] {
		if n == b {
			return true
		}
	}
	return false
}

// daySet returns the distinct weekday indices (0-6) in days.
func daySet(days []int) map[int]struct{} {
	set := make(map[int]struct{}, len(days))
	for _, d := range days {
		if d >= 0 && d <= 6 {
			set[d] = struct{}{}
		}
	}
	return set
}

// DistinctDays returns the number of distinct valid weekdays in days.
func DistinctDays(days []int) int {
	return len(daySet(days))
}

// ScheduleOverlap returns the requested weekdays that are also available,
// in ascending order.
func ScheduleOverlap(available, requested []int) []int {
	avail := daySet(available)
	req := daySet(requested)
	var out []int
	for d := 0; d <= 6; d++ {
		_, a := avail[d]
		_, r := req[d]
		if a && r {
			out = append(out, d)
		}
	}
	return out
}

// HasScheduleCompatibility reports whether at least one requested day is
// available.
func HasScheduleCompatibility(available, requested []int) bool {
	return len(ScheduleOverlap(available, requested)) > 0
}

// SupportsWeeklyStays requires an unset or at most 7-night minimum and all
// seven days available.
func SupportsWeeklyStays(minNights *float64, available []int) bool {
	if minNights != nil && *minNights > FullWeek {
		return false
	}
	return DistinctDays(available) == FullWeek
}

// IsDurationMatch compares a listing's minimum nights with the requested
// night count. A missing or non-numeric minimum is flexible and always
// matches.
func IsDurationMatch(minNights *float64, proposalNights, tolerance int) bool {
	if minNights == nil || math.IsNaN(*minNights) {
		return true
	}
	return math.Abs(*minNights-float64(proposalNights)) <= float64(tolerance)
}

// Verification holds the three host trust signals.
type Verification struct {
	IdentityLinked bool `json:"identity_linked"`
	PhoneVerified  bool `json:"phone_verified"`
	UserVerified   bool `json:"user_verified"`
}

// CountVerifications returns how many of the three signals are set.
func CountVerifications(v Verification) int {
	n := 0
	for _, ok := range []bool{v.IdentityLinked, v.PhoneVerified, v.UserVerified} {
		if ok {
			n++
		}
	}
	return n
}

// IsHostVerified reports whether at least minimum signals are set.
func IsHostVerified(v Verification, minimum int) bool {
	return CountVerifications(v) >= minimum
}
