package pricing

import (
	"errors"
	"strings"
	"testing"

	"github.com/evcraddock/lease-rules/internal/fields"
	"github.com/evcraddock/lease-rules/internal/validate"
)

func TestCalculateBreakdownScenarioA(t *testing.T) {
	listing := fields.Record{string(fields.NightlyRate4): 100.0}

	b, err := CalculateBreakdown(BreakdownParams{Listing: listing, NightsPerWeek: 4, ReservationWeeks: 13})
	if err != nil {
		t.Fatalf("breakdown: %v", err)
	}

	if b.NightlyPrice != 100 {
		t.Errorf("nightly = %v, want 100", b.NightlyPrice)
	}
	if b.FourWeekRent != 1600 {
		t.Errorf("four week rent = %v, want 1600", b.FourWeekRent)
	}
	if b.ReservationTotal != 5200 {
		t.Errorf("reservation total = %v, want 5200", b.ReservationTotal)
	}
	if b.CleaningFee != 0 || b.DamageDeposit != 0 {
		t.Errorf("fees = (%v, %v), want defaults of 0", b.CleaningFee, b.DamageDeposit)
	}
	if b.GrandTotal != 5200 {
		t.Errorf("grand total = %v, want 5200", b.GrandTotal)
	}
	if !b.Valid {
		t.Error("expected valid breakdown")
	}
}

func TestCalculateBreakdownScenarioB(t *testing.T) {
	listing := fields.Record{
		string(fields.NightlyRate4):  100.0,
		string(fields.CleaningFee):   50.0,
		string(fields.DamageDeposit): 500.0,
	}

	b, err := CalculateBreakdown(BreakdownParams{Listing: listing, NightsPerWeek: 4, ReservationWeeks: 13})
	if err != nil {
		t.Fatalf("breakdown: %v", err)
	}

	if b.GrandTotal != 5250 {
		t.Errorf("grand total = %v, want 5250", b.GrandTotal)
	}
	if b.DamageDeposit != 500 {
		t.Errorf("damage deposit = %v, want 500", b.DamageDeposit)
	}
	if b.GrandTotal != b.ReservationTotal+b.CleaningFee {
		t.Error("grand total must exclude the damage deposit")
	}
}

func TestCalculateBreakdownStringFees(t *testing.T) {
	listing := fields.Record{
		string(fields.NightlyRate3):  "80",
		string(fields.CleaningFee):   "75.5",
		string(fields.DamageDeposit): "300",
	}

	b, err := CalculateBreakdown(BreakdownParams{Listing: listing, NightsPerWeek: 3, ReservationWeeks: 8})
	if err != nil {
		t.Fatalf("breakdown: %v", err)
	}
	if b.CleaningFee != 75.5 {
		t.Errorf("cleaning fee = %v, want 75.5", b.CleaningFee)
	}
	if b.DamageDeposit != 300 {
		t.Errorf("damage deposit = %v, want 300", b.DamageDeposit)
	}
	// 80 * 3 * 4 = 960 per cycle, two cycles.
	if b.GrandTotal != 1920+75.5 {
		t.Errorf("grand total = %v, want %v", b.GrandTotal, 1920+75.5)
	}
}

func TestCalculateBreakdownNullFeesDefault(t *testing.T) {
	listing := fields.Record{
		string(fields.NightlyRate4):  100.0,
		string(fields.CleaningFee):   nil,
		string(fields.DamageDeposit): nil,
	}

	b, err := CalculateBreakdown(BreakdownParams{Listing: listing, NightsPerWeek: 4, ReservationWeeks: 4})
	if err != nil {
		t.Fatalf("breakdown: %v", err)
	}
	if b.CleaningFee != 0 || b.DamageDeposit != 0 {
		t.Errorf("fees = (%v, %v), want 0", b.CleaningFee, b.DamageDeposit)
	}
}

func TestCalculateBreakdownFalseFees(t *testing.T) {
	listing := fields.Record{
		string(fields.NightlyRate4):  100.0,
		string(fields.CleaningFee):   false,
		string(fields.DamageDeposit): false,
	}

	b, err := CalculateBreakdown(BreakdownParams{Listing: listing, NightsPerWeek: 4, ReservationWeeks: 13})
	if err != nil {
		t.Fatalf("breakdown: %v", err)
	}
	if b.CleaningFee != 0 || b.DamageDeposit != 0 {
		t.Errorf("fees = (%v, %v), want 0", b.CleaningFee, b.DamageDeposit)
	}
	if b.GrandTotal != 5200 {
		t.Errorf("grand total = %v, want 5200", b.GrandTotal)
	}
}

func TestCalculateBreakdownFeeErrors(t *testing.T) {
	tests := []struct {
		name  string
		field fields.Field
		value any
		msg   string
	}{
		{"negative cleaning", fields.CleaningFee, -1.0, "Cleaning Fee cannot be negative"},
		{"invalid cleaning", fields.CleaningFee, "lots", "Cleaning Fee has invalid value"},
		{"negative deposit", fields.DamageDeposit, -200.0, "Damage Deposit cannot be negative"},
		{"invalid deposit", fields.DamageDeposit, "n/a", "Damage Deposit has invalid value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listing := fields.Record{string(fields.NightlyRate4): 100.0}
			listing.Set(tt.field, tt.value)

			b, err := CalculateBreakdown(BreakdownParams{Listing: listing, NightsPerWeek: 4, ReservationWeeks: 13})
			if b != nil {
				t.Error("expected no partial breakdown")
			}
			if !errors.Is(err, validate.ErrInvalidValue) {
				t.Fatalf("err = %v, want invalid value", err)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("message = %q, want substring %q", err.Error(), tt.msg)
			}
		})
	}
}

func TestCalculateBreakdownPropagatesRateErrors(t *testing.T) {
	tests := []struct {
		name   string
		params BreakdownParams
		want   error
	}{
		{"nil listing", BreakdownParams{NightsPerWeek: 4, ReservationWeeks: 13}, validate.ErrInvalidArgumentType},
		{"missing tier", BreakdownParams{Listing: fields.Record{}, NightsPerWeek: 4, ReservationWeeks: 13}, validate.ErrMissingRate},
		{"nights out of range", BreakdownParams{Listing: tieredListing(), NightsPerWeek: 1, ReservationWeeks: 13}, validate.ErrOutOfRange},
		{"zero weeks", BreakdownParams{Listing: tieredListing(), NightsPerWeek: 4, ReservationWeeks: 0}, validate.ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := CalculateBreakdown(tt.params)
			if b != nil {
				t.Error("expected no partial breakdown")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCalculateBreakdownNightsOutOfRangeMessage(t *testing.T) {
	for _, nights := range []int{1, 8} {
		_, err := CalculateBreakdown(BreakdownParams{Listing: tieredListing(), NightsPerWeek: nights, ReservationWeeks: 13})
		if !validate.IsKind(err, validate.OutOfRange) {
			t.Fatalf("nights %d: err = %v, want out of range", nights, err)
		}
		if !strings.Contains(err.Error(), "nightsSelected must be between 2-7") {
			t.Errorf("nights %d: message = %q", nights, err.Error())
		}
	}
}

func TestCalculateBreakdownGrandTotalProperty(t *testing.T) {
	listing := tieredListing()
	listing.Set(fields.CleaningFee, 65.0)
	listing.Set(fields.DamageDeposit, 1000.0)

	for nights := MinNights; nights <= MaxNights; nights++ {
		for _, weeks := range []float64{1, 4, 6.5, 13, 26} {
			b, err := CalculateBreakdown(BreakdownParams{Listing: listing, NightsPerWeek: nights, ReservationWeeks: weeks})
			if err != nil {
				t.Fatalf("nights %d weeks %v: %v", nights, weeks, err)
			}
			if b.GrandTotal != b.ReservationTotal+b.CleaningFee {
				t.Errorf("nights %d weeks %v: grand total %v != %v + %v",
					nights, weeks, b.GrandTotal, b.ReservationTotal, b.CleaningFee)
			}
		}
	}
}
