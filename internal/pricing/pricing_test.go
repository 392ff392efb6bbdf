package pricing

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/evcraddock/lease-rules/internal/fields"
	"github.com/evcraddock/lease-rules/internal/validate"
)

func tieredListing() fields.Record {
	return fields.Record{
		string(fields.NightlyRate2): 150.0,
		string(fields.NightlyRate3): 140.0,
		string(fields.NightlyRate4): 100.0,
		string(fields.NightlyRate5): 95.0,
		string(fields.NightlyRate6): 90.0,
		string(fields.NightlyRate7): 85.0,
	}
}

func TestNightlyRateByFrequencyTiers(t *testing.T) {
	listing := tieredListing()
	want := map[int]float64{2: 150, 3: 140, 4: 100, 5: 95, 6: 90, 7: 85}

	for nights, rate := range want {
		got, err := NightlyRateByFrequency(listing, nights)
		if err != nil {
			t.Fatalf("nights %d: %v", nights, err)
		}
		if got != rate {
			t.Errorf("nights %d: got %v, want %v", nights, got, rate)
		}
	}
}

func TestNightlyRateByFrequencyOverride(t *testing.T) {
	listing := tieredListing()
	listing.Set(fields.PriceOverride, 250.0)

	for nights := MinNights; nights <= MaxNights; nights++ {
		got, err := NightlyRateByFrequency(listing, nights)
		if err != nil {
			t.Fatalf("nights %d: %v", nights, err)
		}
		if got != 250 {
			t.Errorf("nights %d: got %v, want override 250", nights, got)
		}
	}
}

func TestNightlyRateByFrequencyZeroOverrideIgnored(t *testing.T) {
	for _, zero := range []any{0.0, 0, "0", "", false, math.NaN()} {
		listing := tieredListing()
		listing.Set(fields.PriceOverride, zero)

		got, err := NightlyRateByFrequency(listing, 4)
		if err != nil {
			t.Fatalf("override %#v: %v", zero, err)
		}
		if got != 100 {
			t.Errorf("override %#v: got %v, want tier rate 100", zero, got)
		}
	}
}

func TestNightlyRateByFrequencyInvalidOverride(t *testing.T) {
	for _, bad := range []any{-5.0, "abc"} {
		listing := tieredListing()
		listing.Set(fields.PriceOverride, bad)

		_, err := NightlyRateByFrequency(listing, 4)
		if !errors.Is(err, validate.ErrInvalidValue) {
			t.Fatalf("override %#v: err = %v, want invalid value", bad, err)
		}
		if !strings.Contains(err.Error(), "Invalid price override value") {
			t.Errorf("message = %q", err.Error())
		}
	}
}

func TestNightlyRateByFrequencyOutOfRange(t *testing.T) {
	for _, nights := range []int{0, 1, 8, 14} {
		_, err := NightlyRateByFrequency(tieredListing(), nights)
		if !errors.Is(err, validate.ErrOutOfRange) {
			t.Fatalf("nights %d: err = %v, want out of range", nights, err)
		}
		if !strings.Contains(err.Error(), "nightsSelected must be between 2-7") {
			t.Errorf("message = %q", err.Error())
		}
	}
}

func TestNightlyRateByFrequencyNilListing(t *testing.T) {
	_, err := NightlyRateByFrequency(nil, 4)
	if !errors.Is(err, validate.ErrInvalidArgumentType) {
		t.Errorf("err = %v, want invalid argument type", err)
	}
}

func TestNightlyRateByFrequencyMissing(t *testing.T) {
	tests := []struct {
		name  string
		value any
		set   bool
	}{
		{"absent", nil, false},
		{"null", nil, true},
		{"zero", 0.0, true},
		{"zero string", "0", true},
		{"false", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listing := fields.Record{}
			if tt.set {
				listing.Set(fields.NightlyRate3, tt.value)
			}
			_, err := NightlyRateByFrequency(listing, 3)
			if !errors.Is(err, validate.ErrMissingRate) {
				t.Fatalf("err = %v, want missing rate", err)
			}
			if !strings.Contains(err.Error(), "No price found for 3 nights in listing") {
				t.Errorf("message = %q", err.Error())
			}
		})
	}
}

func TestNightlyRateByFrequencyInvalidRate(t *testing.T) {
	for _, bad := range []any{-10.0, "cheap", []int{5}} {
		listing := fields.Record{string(fields.NightlyRate5): bad}
		_, err := NightlyRateByFrequency(listing, 5)
		if !errors.Is(err, validate.ErrInvalidValue) {
			t.Fatalf("rate %#v: err = %v, want invalid value", bad, err)
		}
		if !strings.Contains(err.Error(), "Invalid rate value") {
			t.Errorf("message = %q", err.Error())
		}
	}
}

func TestNightlyRateByFrequencyBoolRate(t *testing.T) {
	listing := fields.Record{string(fields.NightlyRate5): true}
	got, err := NightlyRateByFrequency(listing, 5)
	if err != nil {
		t.Fatalf("rate true: %v", err)
	}
	if got != 1 {
		t.Errorf("rate true: got %v, want 1", got)
	}
}

func TestNightlyRateByFrequencyNumericStrings(t *testing.T) {
	tests := []struct {
		value string
		want  float64
	}{
		{"120", 120},
		{"99.50", 99.5},
		{"1e2", 100},
		{"1.25E2", 125},
	}

	for _, tt := range tests {
		listing := fields.Record{string(fields.NightlyRate4): tt.value}
		got, err := NightlyRateByFrequency(listing, 4)
		if err != nil {
			t.Fatalf("%q: %v", tt.value, err)
		}
		if got != tt.want {
			t.Errorf("%q: got %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestFourWeekRent(t *testing.T) {
	for _, rate := range []float64{0, 1.5, 99.99, 100, 250} {
		for f := MinNights; f <= MaxNights; f++ {
			got, err := FourWeekRent(rate, f)
			if err != nil {
				t.Fatalf("FourWeekRent(%v, %d): %v", rate, f, err)
			}
			if want := rate * float64(f) * 4; got != want {
				t.Errorf("FourWeekRent(%v, %d) = %v, want %v", rate, f, got, want)
			}
		}
	}
}

func TestFourWeekRentRejects(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		freq int
		want error
	}{
		{"frequency one", 100, 1, validate.ErrOutOfRange},
		{"frequency eight", 100, 8, validate.ErrOutOfRange},
		{"negative rate", -1, 4, validate.ErrInvalidValue},
		{"nan rate", math.NaN(), 4, validate.ErrInvalidArgumentType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FourWeekRent(tt.rate, tt.freq); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFourWeekRentInfinityPropagates(t *testing.T) {
	got, err := FourWeekRent(math.Inf(1), 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsInf(got, 1) {
		t.Errorf("got %v, want +Inf", got)
	}
}

func TestGuestFacingPrice(t *testing.T) {
	tests := []struct {
		name   string
		rate   float64
		nights int
		want   float64
	}{
		{"four nights markup only", 100, 4, 117.00},
		{"six nights markup only", 100, 6, 117.00},
		{"seven nights discounted", 100, 7, 101.79},
		{"zero rate", 0, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GuestFacingPrice(tt.rate, tt.nights)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("GuestFacingPrice(%v, %d) = %v, want %v", tt.rate, tt.nights, got, tt.want)
			}
		})
	}
}

func TestGuestFacingPriceFullWeekIsCheaper(t *testing.T) {
	for _, rate := range []float64{50, 100, 137.25, 400} {
		six, err := GuestFacingPrice(rate, 6)
		if err != nil {
			t.Fatalf("six: %v", err)
		}
		seven, err := GuestFacingPrice(rate, 7)
		if err != nil {
			t.Fatalf("seven: %v", err)
		}
		if seven >= six {
			t.Errorf("rate %v: 7-night price %v not below 6-night price %v", rate, seven, six)
		}
	}
}

func TestGuestFacingPriceRejects(t *testing.T) {
	if _, err := GuestFacingPrice(-1, 4); !errors.Is(err, validate.ErrInvalidValue) {
		t.Errorf("negative rate: err = %v", err)
	}
	if _, err := GuestFacingPrice(100, 0); !errors.Is(err, validate.ErrOutOfRange) {
		t.Errorf("zero nights: err = %v", err)
	}
	if _, err := GuestFacingPrice(100, 8); !errors.Is(err, validate.ErrOutOfRange) {
		t.Errorf("eight nights: err = %v", err)
	}
}

func TestReservationTotal(t *testing.T) {
	tests := []struct {
		rent, weeks, want float64
	}{
		{1600, 13, 5200},
		{1600, 4, 1600},
		{1600, 2.5, 1000},
		{1600, 0.5, 200},
		{0, 8, 0},
	}

	for _, tt := range tests {
		got, err := ReservationTotal(tt.rent, tt.weeks)
		if err != nil {
			t.Fatalf("ReservationTotal(%v, %v): %v", tt.rent, tt.weeks, err)
		}
		if got != tt.want {
			t.Errorf("ReservationTotal(%v, %v) = %v, want %v", tt.rent, tt.weeks, got, tt.want)
		}
	}
}

func TestReservationTotalRejectsNonPositiveWeeks(t *testing.T) {
	for _, weeks := range []float64{0, -1, -0.5} {
		_, err := ReservationTotal(1600, weeks)
		if !errors.Is(err, validate.ErrOutOfRange) {
			t.Fatalf("weeks %v: err = %v, want out of range", weeks, err)
		}
		if !strings.Contains(err.Error(), "totalWeeks must be positive") {
			t.Errorf("message = %q", err.Error())
		}
	}
}
