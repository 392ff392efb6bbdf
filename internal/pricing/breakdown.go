package pricing

import (
	"math"

	"github.com/evcraddock/lease-rules/internal/fields"
	"github.com/evcraddock/lease-rules/internal/validate"
)

// BreakdownParams selects the listing, weekly frequency, and stay length to
// price.
type BreakdownParams struct {
	Listing          fields.Record
	NightsPerWeek    int
	ReservationWeeks float64
}

// Breakdown is a complete price for a stay. The damage deposit is refundable
// and is not part of GrandTotal.
type Breakdown struct {
	NightlyPrice     float64 `json:"nightly_price"`
	FourWeekRent     float64 `json:"four_week_rent"`
	ReservationTotal float64 `json:"reservation_total"`
	CleaningFee      float64 `json:"cleaning_fee"`
	DamageDeposit    float64 `json:"damage_deposit"`
	GrandTotal       float64 `json:"grand_total"`
	Valid            bool    `json:"valid"`
}

// CalculateBreakdown prices a stay end to end. Any failure aborts the whole
// calculation.
func CalculateBreakdown(p BreakdownParams) (*Breakdown, error) {
	const op = "calculatePricingBreakdown"

	if p.Listing == nil {
		return nil, validate.Errorf(validate.InvalidArgumentType, op, "listing must be an object")
	}
	if err := validate.Float(p.ReservationWeeks, "reservationWeeks", op); err != nil {
		return nil, err
	}

	nightly, err := NightlyRateByFrequency(p.Listing, p.NightsPerWeek)
	if err != nil {
		return nil, err
	}

	fourWeek, err := FourWeekRent(nightly, p.NightsPerWeek)
	if err != nil {
		return nil, err
	}

	total, err := ReservationTotal(fourWeek, p.ReservationWeeks)
	if err != nil {
		return nil, err
	}

	cleaning, err := optionalFee(p.Listing, fields.CleaningFee, "Cleaning Fee", op)
	if err != nil {
		return nil, err
	}

	deposit, err := optionalFee(p.Listing, fields.DamageDeposit, "Damage Deposit", op)
	if err != nil {
		return nil, err
	}

	return &Breakdown{
		NightlyPrice:     nightly,
		FourWeekRent:     fourWeek,
		ReservationTotal: total,
		CleaningFee:      cleaning,
		DamageDeposit:    deposit,
		GrandTotal:       total + cleaning,
		Valid:            true,
	}, nil
}

// optionalFee reads a fee that defaults to 0 when absent or null.
func optionalFee(listing fields.Record, f fields.Field, label, op string) (float64, error) {
	raw, ok := listing.Get(f)
	if !ok || raw == nil {
		return 0, nil
	}

	fee := validate.Coerce(raw)
	if math.IsNaN(fee) {
		return 0, validate.Errorf(validate.InvalidValue, op, "%s has invalid value", label)
	}
	if fee < 0 {
		return 0, validate.Errorf(validate.InvalidValue, op, "%s cannot be negative", label)
	}

	return fee, nil
}
