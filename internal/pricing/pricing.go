// Package pricing computes rental price breakdowns for a listing. Every
// operation either returns a valid figure or fails with a *validate.Error;
// there are no fallbacks and no partial results.
package pricing

import (
	"math"

	"github.com/evcraddock/lease-rules/internal/fields"
	"github.com/evcraddock/lease-rules/internal/validate"
)

const (
	MinNights = 2
	MaxNights = 7

	// WeeksPerCycle is the length of a host billing cycle.
	WeeksPerCycle = 4

	// FullTimeDiscount applies to 7-night stays before markup.
	FullTimeDiscount = 0.13

	// Markup is the flat guest-facing markup on the host rate.
	Markup = 0.17
)

// NightlyRateByFrequency returns the nightly rate a listing charges for a
// stay of nightsSelected nights per week. A non-zero price override wins
// over every tier.
func NightlyRateByFrequency(listing fields.Record, nightsSelected int) (float64, error) {
	const op = "getNightlyRateByFrequency"

	if listing == nil {
		return 0, validate.Errorf(validate.InvalidArgumentType, op, "listing must be an object")
	}
	if err := validate.IntInRange(nightsSelected, MinNights, MaxNights, "nightsSelected", op); err != nil {
		return 0, err
	}

	// A falsy override (0, false, "" or a NaN float) counts as unset and
	// falls through to the tiers.
	if raw, ok := listing.Get(fields.PriceOverride); ok && raw != nil && !isNaNFloat(raw) {
		override := validate.Coerce(raw)
		if math.IsNaN(override) || override < 0 {
			return 0, validate.Errorf(validate.InvalidValue, op, "Invalid price override value")
		}
		if override != 0 {
			return override, nil
		}
	}

	field, _ := fields.NightlyRate(nightsSelected)
	raw, ok := listing.Get(field)
	if !ok || raw == nil {
		return 0, missingRate(op, nightsSelected)
	}

	rate := validate.Coerce(raw)
	if math.IsNaN(rate) || rate < 0 {
		return 0, validate.Errorf(validate.InvalidValue, op, "Invalid rate value")
	}
	if rate == 0 {
		return 0, missingRate(op, nightsSelected)
	}

	return rate, nil
}

func isNaNFloat(v any) bool {
	switch f := v.(type) {
	case float64:
		return math.IsNaN(f)
	case float32:
		return math.IsNaN(float64(f))
	}
	return false
}

func missingRate(op string, nights int) error {
	return validate.Errorf(validate.MissingRate, op, "No price found for %d nights in listing", nights)
}

// FourWeekRent returns the host's compensation for one 4-week cycle.
func FourWeekRent(nightlyRate float64, frequency int) (float64, error) {
	const op = "calculateFourWeekRent"

	if err := validate.NonNegative(nightlyRate, "nightlyRate", op); err != nil {
		return 0, err
	}
	if err := validate.IntInRange(frequency, MinNights, MaxNights, "frequency", op); err != nil {
		return 0, err
	}

	return nightlyRate * float64(frequency) * WeeksPerCycle, nil
}

// GuestFacingPrice converts a host nightly rate into the per-night price a
// guest sees, rounded to cents. Full-week stays are discounted before the
// markup is applied.
func GuestFacingPrice(hostNightlyRate float64, nightsCount int) (float64, error) {
	const op = "calculateGuestFacingPrice"

	if err := validate.NonNegative(hostNightlyRate, "hostNightlyRate", op); err != nil {
		return 0, err
	}
	if err := validate.IntInRange(nightsCount, 1, MaxNights, "nightsCount", op); err != nil {
		return 0, err
	}

	amount := hostNightlyRate * float64(nightsCount)
	if nightsCount == MaxNights {
		amount *= 1 - FullTimeDiscount
	}
	amount *= 1 + Markup

	return roundCents(amount / float64(nightsCount)), nil
}

// ReservationTotal scales a four-week rent to the full stay. Fractional weeks
// are allowed.
func ReservationTotal(fourWeekRent, totalWeeks float64) (float64, error) {
	const op = "calculateReservationTotal"

	if err := validate.NonNegative(fourWeekRent, "fourWeekRent", op); err != nil {
		return 0, err
	}
	if err := validate.Positive(totalWeeks, "totalWeeks", op); err != nil {
		return 0, err
	}

	return fourWeekRent * (totalWeeks / WeeksPerCycle), nil
}

func roundCents(f float64) float64 {
	return math.Round(f*100) / 100
}
