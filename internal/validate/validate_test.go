package validate

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"float", 12.5, 12.5},
		{"int", 7, 7},
		{"int64", int64(9), 9},
		{"json number", json.Number("42"), 42},
		{"numeric string", "100", 100},
		{"padded string", "  80.5 ", 80.5},
		{"scientific", "1e2", 100},
		{"empty string", "", 0},
		{"infinity string", "Infinity", math.Inf(1)},
		{"signed infinity string", "-Infinity", math.Inf(-1)},
		{"hex string", "0x1A", 26},
		{"octal string", "0o17", 15},
		{"binary string", "0b101", 5},
		{"overflow", "1e400", math.Inf(1)},
		{"true", true, 1},
		{"false", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Coerce(tt.in); got != tt.want {
				t.Errorf("Coerce(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCoerceNaN(t *testing.T) {
	for _, in := range []any{"abc", "inf", "infinity", "+Inf", "NaN", "-0x1A", "0x-1", "0x1p4", "1_000", "0xZZ", "--5", []int{1}, map[string]any{}, nil} {
		if got := Coerce(in); !math.IsNaN(got) {
			t.Errorf("Coerce(%v) = %v, want NaN", in, got)
		}
	}
}

func TestNumber(t *testing.T) {
	if _, err := Number(nil, "nightlyRate", "test"); !errors.Is(err, ErrInvalidArgumentType) {
		t.Errorf("nil: err = %v, want invalid argument type", err)
	}
	if _, err := Number("abc", "nightlyRate", "test"); !errors.Is(err, ErrInvalidArgumentType) {
		t.Errorf("abc: err = %v, want invalid argument type", err)
	}
	f, err := Number("2.5e1", "nightlyRate", "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f != 25 {
		t.Errorf("got %v, want 25", f)
	}
	if f, err := Number(math.Inf(1), "nightlyRate", "test"); err != nil || !math.IsInf(f, 1) {
		t.Errorf("Inf: got (%v, %v), want (+Inf, nil)", f, err)
	}
}

func TestGuards(t *testing.T) {
	if err := NonNegative(-1, "rate", "op"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("NonNegative(-1) = %v", err)
	}
	if err := NonNegative(0, "rate", "op"); err != nil {
		t.Errorf("NonNegative(0) = %v", err)
	}
	if err := Positive(0, "totalWeeks", "op"); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Positive(0) = %v", err)
	}
	if err := Positive(math.NaN(), "totalWeeks", "op"); !errors.Is(err, ErrInvalidArgumentType) {
		t.Errorf("Positive(NaN) = %v", err)
	}
	err := IntInRange(8, 2, 7, "nightsSelected", "op")
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("IntInRange(8) = %v", err)
	}
	if !strings.Contains(err.Error(), "nightsSelected must be between 2-7") {
		t.Errorf("message = %q", err.Error())
	}
}

func TestErrorKinds(t *testing.T) {
	err := Errorf(MissingRate, "op", "No price found for %d nights in listing", 3)
	if !errors.Is(err, ErrMissingRate) {
		t.Error("expected ErrMissingRate match")
	}
	if errors.Is(err, ErrInvalidValue) {
		t.Error("unexpected ErrInvalidValue match")
	}
	if !IsKind(err, MissingRate) {
		t.Error("expected IsKind MissingRate")
	}
	if err.Error() != "op: No price found for 3 nights in listing" {
		t.Errorf("Error() = %q", err.Error())
	}
}
